package interfaces

import (
	"context"

	"github.com/m-mizutani/opendata/pkg/domain/model"
)

// CatalogClient defines read-only queries against the remote data catalog.
type CatalogClient interface {
	// ListDatasets returns every dataset name the portal knows.
	ListDatasets(ctx context.Context) ([]string, error)

	// SearchDatasets returns whatever the first response page matched.
	// No results means an empty slice, not an error.
	SearchDatasets(ctx context.Context, query string) ([]model.DatasetSummary, error)

	// GetDataset returns (nil, nil) when the portal reports that the
	// dataset does not exist. This is the only fault translated into a
	// value; every other fault is returned as an error.
	GetDataset(ctx context.Context, name string) (*model.Dataset, error)
}
