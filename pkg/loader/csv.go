package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/encoding/charmap"
)

// loadCSV parses a CSV file into a Table. Some portals publish Latin-1
// encoded files, so bytes that are not valid UTF-8 are decoded from
// ISO-8859-1 first.
func loadCSV(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV file", goerr.V("path", path))
	}

	var reader io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		reader = charmap.ISO8859_1.NewDecoder().Reader(reader)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CSV file", goerr.V("path", path))
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}
