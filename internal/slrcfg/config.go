// Package slrcfg loads the optional TOML configuration overlay for the
// slrgen tool: everything that has a sane built-in default but can be
// overridden by a config file, following the same "read the whole file,
// toml.Unmarshal into a tagged struct" approach as the world-data loader
// this package is descended from.
package slrcfg

import (
	"os"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds the optional HTTP server overlay.
type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	JWTSecret   string `toml:"jwt_secret"`
}

// StoreConfig holds the optional persistence overlay.
type StoreConfig struct {
	// Driver is either "inmem" (the default) or "sqlite".
	Driver string `toml:"driver"`
	// DSN is the directory the sqlite database file is kept in when Driver
	// is "sqlite"; ignored otherwise.
	DSN string `toml:"dsn"`
}

// Config is the full set of overridable slrgen settings.
type Config struct {
	// Format is the default display format used by the CLI when --format
	// is not given: "text" or "json".
	Format string `toml:"format"`

	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// Default returns the configuration slrgen runs with when no config file
// is given.
func Default() Config {
	return Config{
		Format: "text",
		Server: ServerConfig{
			BindAddress: ":8080",
		},
		Store: StoreConfig{
			Driver: "inmem",
			DSN:    "slrgen.db",
		},
	}
}

// Load reads the TOML config file at path and overlays it onto Default. An
// empty path is not an error: it returns the default configuration
// unchanged, since a config file is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
