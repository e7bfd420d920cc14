package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/opendata/pkg/domain/model"
)

func TestDatasetResources(t *testing.T) {
	ds := &model.Dataset{
		Name: "budget",
		Resources: []model.Resource{
			{Name: "2023.csv", Format: "csv", URL: "http://x/2023.csv"},
			{Name: "2023.pdf", Format: "pdf"},
		},
	}

	gt.Array(t, ds.ResourceNames()).Equal([]string{"2023.csv", "2023.pdf"})

	r, ok := ds.FindResource("2023.pdf")
	gt.Value(t, ok).Equal(true)
	gt.Value(t, r.Format).Equal("pdf")
	gt.Value(t, r.HasURL()).Equal(false)

	_, ok = ds.FindResource("missing.csv")
	gt.Value(t, ok).Equal(false)
}

func TestDataset_ExtrasRoundTrip(t *testing.T) {
	raw := []byte(`{
		"name": "budget",
		"title": "City Budget",
		"metadata_modified": "2024-01-15T10:00:00",
		"tags": [{"name": "finance"}],
		"organization": {"name": "city-finance"},
		"resources": [
			{"name": "2023.csv", "format": "csv", "url": "http://x/2023.csv", "datastore_active": true}
		]
	}`)

	var ds model.Dataset
	gt.NoError(t, json.Unmarshal(raw, &ds))

	// Dedicated fields and non-modeled catalog keys both survive decoding
	gt.Value(t, ds.Name).Equal("budget")
	gt.Value(t, ds.Extras["metadata_modified"]).Equal("2024-01-15T10:00:00")
	gt.Value(t, ds.Extras["tags"]).NotNil()
	gt.Value(t, ds.Extras["organization"]).NotNil()
	gt.Value(t, ds.Resources[0].Extras["datastore_active"]).Equal(true)

	// Re-encoding emits them again, so full metadata reaches callers
	encoded, err := json.Marshal(&ds)
	gt.NoError(t, err)

	var decoded map[string]any
	gt.NoError(t, json.Unmarshal(encoded, &decoded))
	gt.Value(t, decoded["metadata_modified"]).Equal("2024-01-15T10:00:00")
	gt.Value(t, decoded["tags"]).NotNil()
	gt.Value(t, decoded["name"]).Equal("budget")

	resources := gt.Cast[[]any](t, decoded["resources"])
	resource := gt.Cast[map[string]any](t, resources[0])
	gt.Value(t, resource["datastore_active"]).Equal(true)
	gt.Value(t, resource["name"]).Equal("2023.csv")
}
