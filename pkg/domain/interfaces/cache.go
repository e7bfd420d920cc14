package interfaces

import (
	"context"

	"github.com/m-mizutani/opendata/pkg/domain/model"
)

// FileCache keeps downloaded resource bytes on local disk, keyed by
// dataset and resource name.
type FileCache interface {
	// FilePath returns the deterministic local path for a resource,
	// whether or not it has been downloaded yet.
	FilePath(dataset, resource string) string

	// FileExists reports whether the resource has been downloaded. It is
	// a pure presence check; content is never validated.
	FileExists(dataset, resource string) bool

	// DownloadFile fetches url into the cache and returns the local path.
	// An existing entry is returned as-is unless force is set.
	DownloadFile(ctx context.Context, dataset, resource, url string, force bool) (string, error)

	// DownloadDataset downloads every resource that has a URL, in input
	// order, and returns the names of the downloaded ones. Resources
	// without a URL are skipped silently. The first failure aborts the
	// whole batch.
	DownloadDataset(ctx context.Context, dataset string, resources []model.Resource, force bool) ([]string, error)
}
