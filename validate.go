package layerfill

import (
	"os"
	"strconv"
	"strings"
)

// FileProbe answers whether a path references an existing, readable file.
// It is injected so validation stays a pure check over in-memory rows in
// tests and headless runs.
type FileProbe func(path string) bool

// statProbe is the default probe backed by the real filesystem.
func statProbe(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks the parsed rows against the filler's schema. It returns
// the first violation found, in row order then field order, as a
// *ValidationError; it does not collect further errors. A nil return means
// every data row is safe to process.
func (f *Filler) Validate(rows [][]string) error {
	return validateRows(rows, f.opts.schema, f.opts.probe, f.opts.dataPath)
}

func validateRows(rows [][]string, schema Schema, probe FileProbe, basePath string) error {
	if len(rows) == 0 {
		return &ValidationError{Kind: EmptyInput}
	}
	if len(rows) < 2 {
		return &ValidationError{Kind: MissingDataRows}
	}

	header := rows[0]
	if len(header) != schema.Columns() {
		return &ValidationError{Kind: HeaderColumnCountMismatch, Got: len(header), Want: schema.Columns()}
	}
	for i, want := range schema.Headers {
		if got := strings.TrimSpace(header[i]); got != want {
			return &ValidationError{Kind: HeaderNameMismatch, Column: i, Expected: want, Actual: got}
		}
	}

	for i, row := range rows[1:] {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		if len(row) != schema.Columns() {
			return &ValidationError{Kind: RowColumnCountMismatch, Row: rowNum, Got: len(row), Want: schema.Columns()}
		}
		for _, col := range schema.Required {
			if col < 0 || col >= len(row) {
				continue
			}
			if strings.TrimSpace(row[col]) == "" {
				return &ValidationError{Kind: MissingRequiredField, Row: rowNum, Field: schema.Headers[col]}
			}
		}
		// Numeric and image checks apply only to columns the schema carries.
		for _, name := range []string{headerYear, headerAge} {
			col := schema.column(name)
			if col < 0 {
				continue
			}
			if _, err := strconv.Atoi(strings.TrimSpace(row[col])); err != nil {
				return &ValidationError{Kind: NotANumber, Row: rowNum, Field: name}
			}
		}
		if col := schema.column(headerImagePath); col >= 0 && probe != nil {
			if img := strings.TrimSpace(row[col]); img != "" {
				resolved := ResolveRelative(basePath, img)
				if !probe(resolved) {
					return &ValidationError{Kind: ImageNotFound, Row: rowNum, Actual: resolved}
				}
			}
		}
	}
	return nil
}
