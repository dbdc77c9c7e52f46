// Package config loads the runtime configuration of the msgconfig harness from
// multiple sources (YAML file, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// It decides which property sources feed the provider and how the
// introspection server is exposed.
package config
