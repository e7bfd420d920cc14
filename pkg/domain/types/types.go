package types

import (
	"os"
	"path/filepath"
)

// Version is the application version, injected at build time
var Version = "dev"

// DefaultBaseURL is the portal queried when no base URL is configured.
// It points at the Toronto Open Data CKAN instance.
const DefaultBaseURL = "https://ckan0.cf.opendata.inter.prod-toronto.ca"

// DefaultCacheDir returns the cache root used when none is configured.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "opendata")
	}
	return ".opendata"
}
