// Package config handles configuration management for wrench.
// Configuration is layered with koanf: embedded defaults, then the user's
// config.toml, then WRENCH_ environment variables. The merged result is
// decoded into Config and validated before use.
package config
