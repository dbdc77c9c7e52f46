// Package provider implements the typed configuration access contract used by
// the messaging runtime: required and optional lookups with checked type
// coercion, property name enumeration, and introspection of the sources that
// contributed the values. Backends include an in-memory store, YAML and
// .properties files, the process environment, a Redis hash snapshot and a
// composite that layers any of these by ordinal.
package provider
