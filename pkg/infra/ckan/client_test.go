package ckan_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/opendata/pkg/infra/ckan"
)

// newFakePortal serves a minimal CKAN action API with one dataset.
func newFakePortal(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/3/action/package_list", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "result": ["budget", "transit-ridership"]}`))
	})
	mux.HandleFunc("/api/3/action/package_search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "budget" {
			_, _ = w.Write([]byte(`{"success": true, "result": {"count": 1, "results": [{"name": "budget", "title": "City Budget", "notes": "Annual budget"}]}}`))
			return
		}
		// CKAN may answer without a results key at all
		_, _ = w.Write([]byte(`{"success": true, "result": {"count": 0}}`))
	})
	mux.HandleFunc("/api/3/action/package_show", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("id") != "budget" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success": false, "error": {"__type": "Not Found Error", "message": "Not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "result": {
			"id": "abc-123",
			"name": "budget",
			"title": "City Budget",
			"notes": "Annual budget",
			"metadata_modified": "2024-01-15T10:00:00",
			"resources": [
				{"id": "r1", "name": "2023.csv", "format": "CSV", "url": "http://example.com/2023.csv"},
				{"id": "r2", "name": "2023.pdf", "format": "PDF", "url": ""}
			]
		}}`))
	})

	return httptest.NewServer(mux)
}

func TestListDatasets(t *testing.T) {
	srv := newFakePortal(t)
	defer srv.Close()

	client := ckan.New(srv.URL)
	names, err := client.ListDatasets(context.Background())
	gt.NoError(t, err)
	gt.Array(t, names).Equal([]string{"budget", "transit-ridership"})
}

func TestSearchDatasets(t *testing.T) {
	srv := newFakePortal(t)
	defer srv.Close()

	client := ckan.New(srv.URL)

	results, err := client.SearchDatasets(context.Background(), "budget")
	gt.NoError(t, err)
	gt.Number(t, len(results)).Equal(1)
	gt.Value(t, results[0].Name).Equal("budget")
	gt.Value(t, results[0].Title).Equal("City Budget")
}

func TestSearchDatasets_NoResultsKey(t *testing.T) {
	srv := newFakePortal(t)
	defer srv.Close()

	client := ckan.New(srv.URL)

	results, err := client.SearchDatasets(context.Background(), "nothing-matches")
	gt.NoError(t, err)
	gt.Number(t, len(results)).Equal(0)
}

func TestGetDataset(t *testing.T) {
	srv := newFakePortal(t)
	defer srv.Close()

	client := ckan.New(srv.URL)

	ds, err := client.GetDataset(context.Background(), "budget")
	gt.NoError(t, err)
	gt.Value(t, ds).NotNil()
	gt.Value(t, ds.Name).Equal("budget")
	gt.Number(t, len(ds.Resources)).Equal(2)
	gt.Value(t, ds.Resources[0].Name).Equal("2023.csv")
	gt.Value(t, ds.Resources[0].Format).Equal("CSV")
	gt.Value(t, ds.Resources[1].HasURL()).Equal(false)

	// Catalog keys without a dedicated field are kept, not dropped
	gt.Value(t, ds.Extras["metadata_modified"]).Equal("2024-01-15T10:00:00")
}

func TestGetDataset_NotFound(t *testing.T) {
	srv := newFakePortal(t)
	defer srv.Close()

	client := ckan.New(srv.URL)

	// Dataset absence is a value, not an error
	ds, err := client.GetDataset(context.Background(), "no-such-dataset")
	gt.NoError(t, err)
	gt.Value(t, ds).Nil()
}

func TestGetDataset_NotFoundHTMLBody(t *testing.T) {
	// Some deployments put the portal behind a proxy that answers 404
	// with an HTML error page instead of the CKAN envelope.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><body>Not Found</body></html>"))
	}))
	defer srv.Close()

	client := ckan.New(srv.URL)

	ds, err := client.GetDataset(context.Background(), "no-such-dataset")
	gt.NoError(t, err)
	gt.Value(t, ds).Nil()
}

func TestServerFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "error": {"__type": "Internal Server Error", "message": "boom"}}`))
	}))
	defer srv.Close()

	client := ckan.New(srv.URL)

	_, err := client.ListDatasets(context.Background())
	gt.Error(t, err)

	ds, err := client.GetDataset(context.Background(), "budget")
	gt.Error(t, err)
	gt.Value(t, ds).Nil()
}

func TestAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success": true, "result": []}`))
	}))
	defer srv.Close()

	client := ckan.New(srv.URL, ckan.WithAPIKey("secret-key"))

	_, err := client.ListDatasets(context.Background())
	gt.NoError(t, err)
	gt.Value(t, gotAuth).Equal("secret-key")
}
