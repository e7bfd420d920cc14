package cache_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/opendata/pkg/domain/model"
	"github.com/m-mizutani/opendata/pkg/infra/cache"
)

func TestDownloadFile(t *testing.T) {
	ctx := context.Background()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("name,value\nparks,42\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := cache.New(dir)

	gt.Value(t, c.FileExists("budget", "2023.csv")).Equal(false)

	path, err := c.DownloadFile(ctx, "budget", "2023.csv", srv.URL, false)
	gt.NoError(t, err)
	gt.Value(t, path).Equal(filepath.Join(dir, "budget", "2023.csv"))
	gt.Value(t, c.FileExists("budget", "2023.csv")).Equal(true)
	gt.Number(t, calls).Equal(1)

	content, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.String(t, string(content)).Contains("parks,42")

	// Cache hit: same path, no further transport call
	again, err := c.DownloadFile(ctx, "budget", "2023.csv", srv.URL, false)
	gt.NoError(t, err)
	gt.Value(t, again).Equal(path)
	gt.Number(t, calls).Equal(1)

	// Force always refetches
	_, err = c.DownloadFile(ctx, "budget", "2023.csv", srv.URL, true)
	gt.NoError(t, err)
	gt.Number(t, calls).Equal(2)
}

func TestDownloadFile_BadStatus(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := cache.New(t.TempDir())

	_, err := c.DownloadFile(ctx, "budget", "2023.csv", srv.URL, false)
	gt.Error(t, err)
	gt.Value(t, c.FileExists("budget", "2023.csv")).Equal(false)
}

func TestDownloadFile_NetworkError(t *testing.T) {
	ctx := context.Background()
	c := cache.New(t.TempDir())

	_, err := c.DownloadFile(ctx, "budget", "2023.csv", "http://127.0.0.1:1/nothing", false)
	gt.Error(t, err)
}

func TestDownloadDataset(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data for " + r.URL.Path))
	}))
	defer srv.Close()

	c := cache.New(t.TempDir())

	resources := []model.Resource{
		{Name: "2023.csv", Format: "csv", URL: srv.URL + "/2023.csv"},
		{Name: "2023.pdf", Format: "pdf"}, // no URL: skipped silently
		{Name: "2022.csv", Format: "csv", URL: srv.URL + "/2022.csv"},
	}

	downloaded, err := c.DownloadDataset(ctx, "budget", resources, false)
	gt.NoError(t, err)
	gt.Array(t, downloaded).Equal([]string{"2023.csv", "2022.csv"})

	gt.Value(t, c.FileExists("budget", "2023.csv")).Equal(true)
	gt.Value(t, c.FileExists("budget", "2022.csv")).Equal(true)
	gt.Value(t, c.FileExists("budget", "2023.pdf")).Equal(false)
}

func TestDownloadDataset_FirstFailureAborts(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.csv" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := cache.New(t.TempDir())

	resources := []model.Resource{
		{Name: "good.csv", Format: "csv", URL: srv.URL + "/good.csv"},
		{Name: "broken.csv", Format: "csv", URL: srv.URL + "/broken.csv"},
		{Name: "never.csv", Format: "csv", URL: srv.URL + "/never.csv"},
	}

	downloaded, err := c.DownloadDataset(ctx, "budget", resources, false)
	gt.Error(t, err)
	gt.Value(t, downloaded).Nil()

	// The batch stops at the failure; earlier files stay on disk.
	gt.Value(t, c.FileExists("budget", "good.csv")).Equal(true)
	gt.Value(t, c.FileExists("budget", "never.csv")).Equal(false)
}

func TestFilePath(t *testing.T) {
	c := cache.New("/tmp/cache-root")
	gt.Value(t, c.FilePath("budget", "2023.csv")).Equal(filepath.Join("/tmp/cache-root", "budget", "2023.csv"))
}
