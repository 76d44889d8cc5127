package layerfill

import "fmt"

// ValidationKind identifies the category of a validation failure.
type ValidationKind int

const (
	EmptyInput ValidationKind = iota
	MissingDataRows
	HeaderColumnCountMismatch
	HeaderNameMismatch
	RowColumnCountMismatch
	MissingRequiredField
	NotANumber
	ImageNotFound
)

// ValidationError describes the first schema or content violation found in
// the tabular input. Row is the 1-based data row index (the header is row 0
// of the raw input and is not counted). Validation is all-or-nothing: a
// non-nil ValidationError means nothing was processed.
type ValidationError struct {
	Kind     ValidationKind
	Row      int    // 1-based data row index, 0 when not row-specific
	Column   int    // 0-based column index for header mismatches
	Field    string // field name for MissingRequiredField / NotANumber
	Expected string
	Actual   string
	Want     int // expected column count
	Got      int // actual column count
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "input is empty"
	case MissingDataRows:
		return "input has no data rows (header only)"
	case HeaderColumnCountMismatch:
		return fmt.Sprintf("header has %d columns, expected %d", e.Got, e.Want)
	case HeaderNameMismatch:
		return fmt.Sprintf("header column %d is %q, expected %q", e.Column+1, e.Actual, e.Expected)
	case RowColumnCountMismatch:
		return fmt.Sprintf("row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
	case MissingRequiredField:
		return fmt.Sprintf("row %d is missing required field %q", e.Row, e.Field)
	case NotANumber:
		return fmt.Sprintf("row %d: field %q is not a number", e.Row, e.Field)
	case ImageNotFound:
		return fmt.Sprintf("row %d: image file %q does not exist", e.Row, e.Actual)
	}
	return "validation failed"
}

// SlotResolutionError reports that a named group, subgroup or slot could not
// be found in a template instance. It is recoverable: the orchestrator skips
// the slot and continues with the next one.
type SlotResolutionError struct {
	GroupPrefix string
	SubGroup    string
	Slot        string
	Reason      string
}

func (e *SlotResolutionError) Error() string {
	where := fmt.Sprintf("group %q", e.GroupPrefix)
	if e.GroupPrefix == "" {
		where = "document root"
	}
	if e.SubGroup != "" {
		where += fmt.Sprintf(", subgroup %q", e.SubGroup)
	}
	return fmt.Sprintf("slot %q not found in %s: %s", e.Slot, where, e.Reason)
}

// PathError reports a path that failed validation.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// ImageError wraps a failure while importing or placing one image. It is
// recoverable: the record's text slots keep whatever was already written and
// the batch moves on.
type ImageError struct {
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("process image %q: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }

// Issue records one recoverable failure encountered while processing a
// record, together with the 1-based data row it belongs to.
type Issue struct {
	Row int
	Err error
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d: %v", i.Row, i.Err)
}

// Summary is the result of one batch run: how many records were processed
// and every recoverable issue hit along the way. Per-slot and per-image
// failures do not roll back work already done on other slots or records.
type Summary struct {
	Processed int
	Issues    []Issue
}

func (s *Summary) addIssue(row int, err error) {
	s.Issues = append(s.Issues, Issue{Row: row, Err: err})
}

// Clean reports whether the run finished without any recoverable issues.
func (s *Summary) Clean() bool { return len(s.Issues) == 0 }
