// Package loader maps declared file-format strings to deserialization
// routines. The format set is closed: callers are expected to check
// CanLoad before dispatching.
package loader

import (
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opendata/pkg/domain/types"
)

// LoadFunc deserializes one local file into an in-memory object.
type LoadFunc func(path string) (any, error)

var loaders = map[string]LoadFunc{
	"csv":     loadCSV,
	"json":    loadJSON,
	"geojson": loadJSON,
	"xlsx":    loadXLSX,
}

// CanLoad reports whether the format has a registered loader. Matching is
// case-insensitive.
func CanLoad(format string) bool {
	_, ok := loaders[strings.ToLower(format)]
	return ok
}

// Formats returns the recognized format set, sorted.
func Formats() []string {
	formats := make([]string, 0, len(loaders))
	for f := range loaders {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Load deserializes the file at path according to its declared format.
// An unrecognized format reaching here is a bug in the caller, which must
// filter with CanLoad first.
func Load(path, format string) (any, error) {
	fn, ok := loaders[strings.ToLower(format)]
	if !ok {
		return nil, goerr.New("no loader registered for format",
			goerr.V("format", format), goerr.V("path", path), goerr.T(types.TagBadFormat))
	}
	return fn(path)
}
