package layerfill

import (
	"strconv"
	"strings"
)

// Schema describes the expected shape of the tabular input: an ordered list
// of header names and the subset of columns that must be non-empty. It is
// fixed for the lifetime of a run.
type Schema struct {
	Headers  []string
	Required []int // column indices that must be non-empty after trimming
}

// Columns returns the expected column count.
func (s Schema) Columns() int { return len(s.Headers) }

// column returns the index of the named header, or -1 when the schema does
// not carry that column.
func (s Schema) column(name string) int {
	for i, h := range s.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Header names with built-in meaning: the numeric checks, the image probe
// and Record fields find their columns by these names, wherever a schema
// places them. A schema without one of them simply skips that behavior.
const (
	headerName       = "Name"
	headerProfession = "Profession"
	headerCause      = "Overdose"
	headerYear       = "Year of Death"
	headerAge        = "Age"
	headerImagePath  = "Image Path"
)

// DefaultSchema is the six-column profile schema: five required text fields
// plus an optional image path.
var DefaultSchema = Schema{
	Headers:  []string{headerName, headerProfession, headerCause, headerYear, headerAge, headerImagePath},
	Required: []int{0, 1, 2, 3, 4},
}

// Record is one validated data row, immutable once built.
type Record struct {
	Row         int // 1-based data row index
	Name        string
	Profession  string
	Cause       string
	YearOfDeath int
	Age         int
	ImagePath   string // optional
}

// newRecord builds a Record from a validated row, locating each field by its
// schema header name; fields whose column the schema lacks stay zero. Values
// are re-trimmed so rows from any source (CSV or workbook) behave the same.
func newRecord(row int, fields []string, schema Schema) Record {
	get := func(name string) string {
		col := schema.column(name)
		if col < 0 || col >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[col])
	}
	year, _ := strconv.Atoi(get(headerYear))
	age, _ := strconv.Atoi(get(headerAge))
	return Record{
		Row:         row,
		Name:        get(headerName),
		Profession:  get(headerProfession),
		Cause:       get(headerCause),
		YearOfDeath: year,
		Age:         age,
		ImagePath:   get(headerImagePath),
	}
}

// Env exposes the record's fields to slot template expressions. Keys match
// the schema header names (spaces removed).
func (r Record) Env() map[string]any {
	return map[string]any{
		"Name":        r.Name,
		"Profession":  r.Profession,
		"Overdose":    r.Cause,
		"YearOfDeath": r.YearOfDeath,
		"Age":         r.Age,
		"ImagePath":   r.ImagePath,
	}
}

// ParseRows splits raw tabular text into rows of trimmed fields. The dialect
// is deliberately naive: lines split on \n (with \r\n and \r normalized),
// fields split on commas, no quoting or escaping. A literal comma inside a
// field value is indistinguishable from a delimiter.
func ParseRows(raw string) [][]string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")

	// A trailing newline yields one empty final line; drop it so it is not
	// mistaken for a blank data row.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		rows = append(rows, fields)
	}
	return rows
}

// isBlankRow reports whether a row is a single empty field, i.e. an empty
// input line. Blank rows are skipped by validation and processing alike.
func isBlankRow(row []string) bool {
	return len(row) == 1 && row[0] == ""
}
