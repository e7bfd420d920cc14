package loader

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads the first sheet of a spreadsheet into a Table.
func loadXLSX(path string) (any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open spreadsheet", goerr.V("path", path))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sheet", goerr.V("path", path), goerr.V("sheet", sheets[0]))
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}
