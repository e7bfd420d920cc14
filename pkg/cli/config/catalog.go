package config

import (
	"github.com/m-mizutani/opendata/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Catalog holds portal endpoint configuration
type Catalog struct {
	BaseURL string
	APIKey  string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "CKAN portal base URL (default: Toronto Open Data)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("OPENDATA_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Portal API key",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("OPENDATA_API_KEY"),
		},
	}
}

// ResolveBaseURL returns the configured base URL, falling back to the
// default portal.
func (c *Catalog) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return types.DefaultBaseURL
}
