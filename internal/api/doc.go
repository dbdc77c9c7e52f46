// Package api serves a read-only HTTP view of a configuration provider:
// property names and values, contributing sources, and the channel topology
// with its validation problems.
package api
