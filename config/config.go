// Package config loads fdiff's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the tool's configuration.
type Config struct {
	Compare CompareConfig `toml:"compare"`
	Output  OutputConfig  `toml:"output"`
	Serve   ServeConfig   `toml:"serve"`
}

type CompareConfig struct {
	// Context is the number of matching lines shown around changes.
	Context int `toml:"context"`
	// MaxCells rejects comparisons where the product of the two line counts
	// exceeds this value before the diff is computed. 0 disables the limit.
	MaxCells int64 `toml:"max_cells"`
}

type OutputConfig struct {
	Color string `toml:"color"` // auto, always, or never
	Width int    `toml:"width"` // side-by-side column width
}

type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Compare: CompareConfig{
			Context:  3,
			MaxCells: 100_000_000,
		},
		Output: OutputConfig{
			Color: "auto",
			Width: 40,
		},
		Serve: ServeConfig{
			Addr: "localhost:8080",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining config dir: %v", err)
	}
	return filepath.Join(dir, "fdiff", "config.toml"), nil
}

// Load reads the configuration from path on top of the defaults. A missing
// file is not an error and yields the defaults; invalid values are reset to
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %v", path, err)
	}
	cfg.validate()
	return cfg, nil
}

func (c *Config) validate() {
	def := Default()
	if c.Compare.Context < 0 {
		c.Compare.Context = def.Compare.Context
	}
	if c.Compare.MaxCells < 0 {
		c.Compare.MaxCells = 0
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		c.Output.Color = def.Output.Color
	}
	if c.Output.Width <= 0 {
		c.Output.Width = def.Output.Width
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = def.Serve.Addr
	}
}
