// Package channel reconstructs the channel and connector topology encoded in
// mp.messaging.* property names and resolves per-channel attributes, falling
// back to the common attributes of the channel's connector.
package channel
