package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load loads a Trace from the file at path. Files with an .xlsx
// extension are read as spreadsheets from the argument sheet, all
// other files are read as CSV and the sheet is ignored.
func Load(path, sheet string) (*Trace, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, sheet)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer file.Close()

	return LoadCSV(file)
}

// LoadCSV reads a Trace from CSV data. The first record names the
// observation fields and every following record is one step.
func LoadCSV(r io.Reader) (*Trace, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}

	t, err := parse(records)
	if err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}
	return t, nil
}

// LoadXLSX reads a Trace from a sheet of the spreadsheet at path. If
// sheet is empty, the first sheet is used. The first row names the
// observation fields and every following row is one step.
func LoadXLSX(path, sheet string) (*Trace, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadXLSX: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("loadXLSX: sheet %q: %w", sheet, err)
	}

	t, err := parse(rows)
	if err != nil {
		return nil, fmt.Errorf("loadXLSX: sheet %q: %w", sheet, err)
	}
	return t, nil
}

// parse converts a header row followed by rows of numeric cells into
// a Trace
func parse(records [][]string) (*Trace, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("parse: no header")
	}

	fields := make([]string, len(records[0]))
	for i, name := range records[0] {
		fields[i] = strings.TrimSpace(name)
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(fields) {
			return nil, fmt.Errorf("parse: row %v has %v cells, expected %v",
				i+1, len(record), len(fields))
		}

		row := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("parse: row %v column %q: %w", i+1,
					fields[j], err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return NewTrace(fields, rows)
}
