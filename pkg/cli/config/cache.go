package config

import (
	"github.com/m-mizutani/opendata/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Cache holds local cache configuration
type Cache struct {
	Dir string
}

// Flags returns CLI flags for cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Directory where downloaded files are stored",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("OPENDATA_CACHE_DIR"),
		},
	}
}

// ResolveDir returns the configured cache directory, falling back to the
// user cache directory.
func (c *Cache) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return types.DefaultCacheDir()
}
