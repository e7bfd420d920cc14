// Package cache stores downloaded resource files on local disk. Entries
// are keyed by dataset and resource name; the path mapping is pure, with
// no lookup table or metadata sidecar.
package cache

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opendata/pkg/domain/interfaces"
	"github.com/m-mizutani/opendata/pkg/domain/model"
)

type fileCache struct {
	root       string
	httpClient *http.Client
}

// Option is a functional option for cache configuration
type Option func(*fileCache)

// WithHTTPClient replaces the HTTP client used for downloads
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *fileCache) {
		c.httpClient = httpClient
	}
}

// New creates a file cache rooted at the given directory. The directory
// is created lazily on the first download.
func New(root string, opts ...Option) interfaces.FileCache {
	c := &fileCache{
		root:       root,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FilePath returns the deterministic path for a resource: one directory
// per dataset, one file per resource name.
func (c *fileCache) FilePath(dataset, resource string) string {
	return filepath.Join(c.root, dataset, resource)
}

// FileExists reports cache presence. Presence implies a prior successful
// download; absence does not distinguish "never requested" from "failed".
func (c *fileCache) FileExists(dataset, resource string) bool {
	_, err := os.Stat(c.FilePath(dataset, resource))
	return err == nil
}

// DownloadFile streams url into the cache and returns the local path. If
// the entry already exists and force is false, the existing path is
// returned without any network activity.
func (c *fileCache) DownloadFile(ctx context.Context, dataset, resource, url string, force bool) (string, error) {
	logger := ctxlog.From(ctx)
	path := c.FilePath(dataset, resource)

	if !force {
		if _, err := os.Stat(path); err == nil {
			logger.Debug("cache hit", "dataset", dataset, "resource", resource, "path", path)
			return path, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to download resource", goerr.V("url", url), goerr.V("resource", resource))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status downloading resource", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create cache directory", goerr.V("path", filepath.Dir(path)))
	}

	out, err := os.Create(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create cache file", goerr.V("path", path))
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		return "", goerr.Wrap(err, "failed to write cache file", goerr.V("path", path))
	}
	if err := out.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close cache file", goerr.V("path", path))
	}

	logger.Info("downloaded resource",
		"dataset", dataset,
		"resource", resource,
		"size_bytes", written,
		"path", path,
	)

	return path, nil
}

// DownloadDataset downloads every resource that has a URL, strictly one
// at a time and in input order. Resources without a URL are skipped
// silently and do not appear in the returned names. The first failure
// aborts the batch; already-downloaded files are left in place.
func (c *fileCache) DownloadDataset(ctx context.Context, dataset string, resources []model.Resource, force bool) ([]string, error) {
	logger := ctxlog.From(ctx)

	var downloaded []string
	for _, r := range resources {
		if !r.HasURL() {
			logger.Debug("skipping resource without URL", "dataset", dataset, "resource", r.Name)
			continue
		}

		if _, err := c.DownloadFile(ctx, dataset, r.Name, r.URL, force); err != nil {
			return nil, goerr.Wrap(err, "failed to download dataset resource",
				goerr.V("dataset", dataset), goerr.V("resource", r.Name))
		}
		downloaded = append(downloaded, r.Name)
	}

	return downloaded, nil
}
