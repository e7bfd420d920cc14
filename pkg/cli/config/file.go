package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the optional TOML configuration file path
type File struct {
	Path string
}

// Flags returns CLI flags for config file selection
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML config file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("OPENDATA_CONFIG"),
		},
	}
}

// fileDoc is the TOML document layout:
//
//	[catalog]
//	base_url = "https://..."
//	api_key = "..."
//
//	[cache]
//	dir = "/path/to/cache"
type fileDoc struct {
	Catalog struct {
		BaseURL string `toml:"base_url"`
		APIKey  string `toml:"api_key"`
	} `toml:"catalog"`
	Cache struct {
		Dir string `toml:"dir"`
	} `toml:"cache"`
}

// Apply reads the config file if one is set and fills any catalog/cache
// fields that flags and environment left empty. Flags always win.
func (c *File) Apply(catalog *Catalog, cache *Cache) error {
	if c.Path == "" {
		return nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var doc fileDoc
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	if catalog.BaseURL == "" {
		catalog.BaseURL = doc.Catalog.BaseURL
	}
	if catalog.APIKey == "" {
		catalog.APIKey = doc.Catalog.APIKey
	}
	if cache.Dir == "" {
		cache.Dir = doc.Cache.Dir
	}

	return nil
}
