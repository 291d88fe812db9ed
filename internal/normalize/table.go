package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is one raw tabular extract: a header row plus data rows keyed by
// the raw column names
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// ReadCSV parses a comma-separated extract into a Table
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports occasionally pad short rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows)+1, err)
		}

		m := make(map[string]string, len(header))
		for i, col := range header {
			if i >= len(row) {
				continue
			}
			// Duplicate headers keep the first column, same rule as the
			// alias resolver
			if _, exists := m[col]; !exists {
				m[col] = row[i]
			}
		}
		t.Rows = append(t.Rows, m)
	}

	return t, nil
}

// ReadCSVFile parses a comma-separated extract from disk
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", path, err)
	}
	return t, nil
}
