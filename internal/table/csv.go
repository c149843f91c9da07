package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
)

// ReadCSV loads a comma- or semicolon-separated export. Exports produced
// on operator workstations are often Windows-1252 encoded; when the raw
// bytes are not valid UTF-8 they are decoded as 1252 before parsing.
func ReadCSV(fs afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode csv as windows-1252: %w", err)
		}
		data = decoded
	}

	records, err := parseCSV(data, ',')
	if err != nil || len(records) > 0 && len(records[0]) == 1 {
		// Single-column result usually means a semicolon-separated export
		if alt, altErr := parseCSV(data, ';'); altErr == nil && len(alt) > 0 && len(alt[0]) > 1 {
			records = alt
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty: %s", path)
	}

	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

func parseCSV(data []byte, sep rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sep
	r.FieldsPerRecord = -1 // exports have ragged rows
	r.LazyQuotes = true
	return r.ReadAll()
}
