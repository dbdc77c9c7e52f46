// Package property holds the frozen name to value mapping that backs every
// configuration provider, together with helpers for the flat
// mp.messaging.* key grammar used to address channels and connectors.
package property
