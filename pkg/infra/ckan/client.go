// Package ckan implements the catalog client for CKAN action API portals.
package ckan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opendata/pkg/domain/interfaces"
	"github.com/m-mizutani/opendata/pkg/domain/model"
)

const actionPath = "/api/3/action/"

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIKey sets the portal API key, sent as the Authorization header
func WithAPIKey(key string) Option {
	return func(c *client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a catalog client for the CKAN portal at baseURL.
func New(baseURL string, opts ...Option) interfaces.CatalogClient {
	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the CKAN action API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

const notFoundErrorType = "Not Found Error"

// call performs one action API request. The second return value is true
// when the portal answered with a not-found error; that case carries no
// error because dataset absence is an expected outcome, not a fault.
func (c *client) call(ctx context.Context, action string, params url.Values) (json.RawMessage, bool, error) {
	endpoint := c.baseURL + actionPath + action
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	ctxlog.From(ctx).Debug("calling catalog API", "action", action, "endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to create catalog request", goerr.V("action", action))
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to call catalog API", goerr.V("action", action), goerr.V("endpoint", endpoint))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read catalog response", goerr.V("action", action))
	}

	// Checked before decoding: a proxy may answer 404 with a non-JSON body
	if resp.StatusCode == http.StatusNotFound {
		return nil, true, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, goerr.Wrap(err, "malformed catalog response", goerr.V("action", action), goerr.V("status", resp.StatusCode))
	}

	if env.Error != nil && env.Error.Type == notFoundErrorType {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, goerr.New("catalog API returned unexpected status", goerr.V("action", action), goerr.V("status", resp.StatusCode))
	}
	if !env.Success {
		msg := "unknown error"
		if env.Error != nil {
			msg = env.Error.Message
		}
		return nil, false, goerr.New("catalog API reported failure", goerr.V("action", action), goerr.V("message", msg))
	}

	return env.Result, false, nil
}

// ListDatasets returns all dataset names via package_list.
func (c *client) ListDatasets(ctx context.Context) ([]string, error) {
	result, notFound, err := c.call(ctx, "package_list", nil)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, goerr.New("catalog API rejected package_list")
	}

	var names []string
	if err := json.Unmarshal(result, &names); err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset list")
	}
	return names, nil
}

// SearchDatasets queries package_search and returns the first page of
// matches. A response without a results key yields an empty slice.
func (c *client) SearchDatasets(ctx context.Context, query string) ([]model.DatasetSummary, error) {
	params := url.Values{"q": []string{query}}
	result, notFound, err := c.call(ctx, "package_search", params)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, goerr.New("catalog API rejected package_search", goerr.V("query", query))
	}

	var payload struct {
		Results []model.DatasetSummary `json:"results"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode search results", goerr.V("query", query))
	}
	return payload.Results, nil
}

// GetDataset fetches full dataset metadata via package_show. A portal
// not-found answer becomes (nil, nil).
func (c *client) GetDataset(ctx context.Context, name string) (*model.Dataset, error) {
	params := url.Values{"id": []string{name}}
	result, notFound, err := c.call(ctx, "package_show", params)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}

	var ds model.Dataset
	if err := json.Unmarshal(result, &ds); err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset metadata", goerr.V("dataset", name))
	}
	return &ds, nil
}
