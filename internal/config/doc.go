// Package config loads, normalizes, and validates the TOML configuration
// that describes a translation job and the external tools it runs.
package config
