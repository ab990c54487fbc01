// Package config handles configuration management for utpm.
// Configuration is layered: embedded defaults, then the user file
// ($XDG_CONFIG_HOME/utpm/config.toml or UTPM_CONFIG_FILE), then UTPM_* environment
// variables, then explicit overrides supplied by the caller.
package config
