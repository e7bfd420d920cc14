package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opendata/pkg/domain/interfaces"
	"github.com/m-mizutani/opendata/pkg/domain/model"
	"github.com/m-mizutani/opendata/pkg/domain/types"
	"github.com/m-mizutani/opendata/pkg/loader"
)

// Portal is the single entry point binding dataset resolution, filename
// validation, download and optional in-memory loading. It keeps no state
// across calls beyond the injected catalog client and file cache.
type Portal struct {
	catalog      interfaces.CatalogClient
	cache        interfaces.FileCache
	smartFormats map[string]struct{}
}

// Option is a functional option for Portal configuration
type Option func(*Portal)

// WithSmartFormats overrides the set of formats eligible for smart
// return. The default is every format the loader recognizes.
func WithSmartFormats(formats ...string) Option {
	return func(p *Portal) {
		p.smartFormats = make(map[string]struct{}, len(formats))
		for _, f := range formats {
			p.smartFormats[strings.ToLower(f)] = struct{}{}
		}
	}
}

// New creates a Portal on top of a catalog client and a file cache.
func New(catalog interfaces.CatalogClient, cache interfaces.FileCache, opts ...Option) *Portal {
	p := &Portal{
		catalog: catalog,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.smartFormats == nil {
		p.smartFormats = make(map[string]struct{})
		for _, f := range loader.Formats() {
			p.smartFormats[f] = struct{}{}
		}
	}
	return p
}

// resolveDataset fetches dataset metadata and converts the catalog's
// absent-value sentinel into a tagged not-found error.
func (p *Portal) resolveDataset(ctx context.Context, name string) (*model.Dataset, error) {
	ds, err := p.catalog.GetDataset(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve dataset", goerr.V("dataset", name))
	}
	if ds == nil {
		return nil, goerr.New(fmt.Sprintf("dataset %q not found", name),
			goerr.V("dataset", name), goerr.T(types.TagNotFound))
	}
	return ds, nil
}

// Load fetches one file of a dataset into the cache and returns either
// its local path or, when smartReturn is set and the declared format is
// recognized, the decoded object. reload forces a fresh download even if
// the file is already cached.
func (p *Portal) Load(ctx context.Context, name, filename string, reload, smartReturn bool) (*model.LoadResult, error) {
	logger := ctxlog.From(ctx)

	ds, err := p.resolveDataset(ctx, name)
	if err != nil {
		return nil, err
	}

	available := ds.ResourceNames()
	if filename == "" {
		// Usage-discovery signal: the caller gets the option list.
		return nil, goerr.New(fmt.Sprintf("no file name given for dataset %q, choose one of: %s",
			name, strings.Join(available, ", ")),
			goerr.V("dataset", name), goerr.V("available", available), goerr.T(types.TagNotFound))
	}

	res, ok := ds.FindResource(filename)
	if !ok {
		return nil, goerr.New(fmt.Sprintf("file %q not found in dataset %q, available: %s",
			filename, name, strings.Join(available, ", ")),
			goerr.V("dataset", name), goerr.V("file", filename),
			goerr.V("available", available), goerr.T(types.TagNotFound))
	}

	if !res.HasURL() {
		return nil, goerr.New(fmt.Sprintf("file %q in dataset %q does not have a valid URL", filename, name),
			goerr.V("dataset", name), goerr.V("file", filename), goerr.T(types.TagNoURL))
	}

	path, err := p.cache.DownloadFile(ctx, name, filename, res.URL, reload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch file",
			goerr.V("dataset", name), goerr.V("file", filename))
	}

	format := strings.ToLower(res.Format)
	if smartReturn {
		if _, ok := p.smartFormats[format]; ok {
			data, err := loader.Load(path, format)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to load file",
					goerr.V("dataset", name), goerr.V("file", filename), goerr.V("format", format))
			}

			logger.Debug("loaded file", "dataset", name, "file", filename, "format", format)
			return &model.LoadResult{Path: path, Data: data}, nil
		}
	}

	return &model.LoadResult{Path: path}, nil
}

// DownloadDataset downloads every downloadable resource of the dataset
// and returns the downloaded names in catalog order.
func (p *Portal) DownloadDataset(ctx context.Context, name string, overwrite bool) ([]string, error) {
	ds, err := p.resolveDataset(ctx, name)
	if err != nil {
		return nil, err
	}
	return p.cache.DownloadDataset(ctx, name, ds.Resources, overwrite)
}

// GetAvailableFiles returns the resource names of the dataset.
func (p *Portal) GetAvailableFiles(ctx context.Context, name string) ([]string, error) {
	ds, err := p.resolveDataset(ctx, name)
	if err != nil {
		return nil, err
	}
	return ds.ResourceNames(), nil
}

// IsFileCached reports whether the file is present in the cache. It does
// not verify that filename is actually a resource of the dataset.
func (p *Portal) IsFileCached(name, filename string) bool {
	return p.cache.FileExists(name, filename)
}

// ListDatasets returns every dataset name the portal knows.
func (p *Portal) ListDatasets(ctx context.Context) ([]string, error) {
	return p.catalog.ListDatasets(ctx)
}

// SearchDatasets searches datasets by keyword.
func (p *Portal) SearchDatasets(ctx context.Context, query string) ([]model.DatasetSummary, error) {
	return p.catalog.SearchDatasets(ctx, query)
}

// SearchResourcesByName returns the resource list of a dataset, or
// (nil, nil) when the dataset does not exist. Unlike the operations
// above, absence here is passed through as the catalog's sentinel.
func (p *Portal) SearchResourcesByName(ctx context.Context, name string) ([]model.Resource, error) {
	ds, err := p.catalog.GetDataset(ctx, name)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, nil
	}
	return ds.Resources, nil
}

// GetDatasetInfo returns full dataset metadata, or (nil, nil) when the
// dataset does not exist.
func (p *Portal) GetDatasetInfo(ctx context.Context, name string) (*model.Dataset, error) {
	return p.catalog.GetDataset(ctx, name)
}
