package config

import "time"

// Config is the complete wrench configuration
type Config struct {
	Settings Settings `koanf:"settings"`
	Backups  Backups  `koanf:"backups"`
	ESI      ESI      `koanf:"esi"`
	Watch    Watch    `koanf:"watch"`
	Output   Output   `koanf:"output"`
}

// Settings locates the game client's settings
type Settings struct {
	// Root replaces the platform default settings root. A custom root stored
	// with `wrench root set` still takes precedence.
	Root string `koanf:"root"`
}

// Backups holds backup naming configuration
type Backups struct {
	ImportName string `koanf:"import_name" validate:"required,excludesall=/\\"`
}

// ESI configures character name resolution
type ESI struct {
	Enabled   bool          `koanf:"enabled"`
	BaseURL   string        `koanf:"base_url" validate:"omitempty,url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout" validate:"gte=0"`
}

// Watch configures the filesystem watcher
type Watch struct {
	Enabled  bool          `koanf:"enabled"`
	Debounce time.Duration `koanf:"debounce" validate:"gte=0"`
}

// Output configures rendering
type Output struct {
	Format string `koanf:"format" validate:"oneof=auto term terminal text plain json"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		// The embedded defaults are part of the binary; failing here is a build defect.
		panic(err)
	}
	return cfg
}
