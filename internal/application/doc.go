// Package application builds the configuration provider from the configured
// property sources and wires it into the introspection HTTP server, keeping
// the main package focused on CLI parsing and orchestration.
package application
