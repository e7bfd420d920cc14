package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify the recoverable user errors of the facade. Catalog
// transport faults carry no tag and surface to the caller unchanged.
var (
	// TagNotFound marks a dataset or file missing from the catalog. Errors
	// with this tag list the valid alternatives in their message.
	TagNotFound = goerr.NewTag("not_found")

	// TagNoURL marks a resource that exists in catalog metadata but has
	// nothing to download.
	TagNoURL = goerr.NewTag("no_url")

	// TagBadFormat marks a format string reaching the loader without a
	// registered routine. This is a caller bug, not a runtime condition.
	TagBadFormat = goerr.NewTag("bad_format")
)

// IsNotFound reports whether err is a dataset/file not-found error.
func IsNotFound(err error) bool {
	return goerr.HasTag(err, TagNotFound)
}

// IsNoURL reports whether err is a missing-URL error.
func IsNoURL(err error) bool {
	return goerr.HasTag(err, TagNoURL)
}
