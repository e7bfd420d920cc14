package loader

import (
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// loadJSON decodes a JSON or GeoJSON file into generic Go values.
func loadJSON(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open JSON file", goerr.V("path", path))
	}
	defer f.Close()

	var v any
	if err := json.NewDecoder(f).Decode(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to parse JSON file", goerr.V("path", path))
	}
	return v, nil
}
