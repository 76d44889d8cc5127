// Package layerfill fills layered design-document templates from tabular
// records. Each record is written into a set of named text slots inside a
// profile group, its image is imported and cover-fitted into a named frame,
// and up to a fixed number of records share one duplicated template
// instance. The host editing application is abstracted behind the Host,
// Canvas, Group, Slot and Layer interfaces; package memdoc provides an
// in-memory implementation for headless runs and tests.
package layerfill

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Filler orchestrates one or more batch runs against a host document.
type Filler struct {
	opts      *Options
	evaluator ExpressionEvaluator
	seq       int // instance sequence number across runs
}

// NewFiller creates a Filler with the given options.
func NewFiller(opts ...Option) *Filler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.bindings == nil {
		o.bindings = defaultBindings(o.maxTextWidth)
	}
	return &Filler{opts: o, evaluator: NewExpressionEvaluator()}
}

// FillCSV parses raw comma-separated text and runs the batch against host.
func FillCSV(host Host, raw string, opts ...Option) (*Summary, error) {
	return NewFiller(opts...).Run(host, ParseRows(raw))
}

// FillCSVFile reads a comma-separated file and runs the batch against host.
// Relative image paths in the file resolve against the file's directory.
func FillCSVFile(host Host, path string, opts ...Option) (*Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file %q: %w", path, err)
	}
	allOpts := append([]Option{WithDataPath(path)}, opts...)
	return NewFiller(allOpts...).Run(host, ParseRows(string(raw)))
}

// FillWorkbookFile reads rows from the first sheet of an .xlsx workbook and
// runs the batch against host.
func FillWorkbookFile(host Host, path string, opts ...Option) (*Summary, error) {
	f := NewFiller(append([]Option{WithDataPath(path)}, opts...)...)
	rows, err := ReadWorkbookRows(path, f.opts.schema.Columns())
	if err != nil {
		return nil, err
	}
	return f.Run(host, rows)
}

// Run validates the rows and processes them in order. Validation failures
// stop the run before any document mutation. Data rows are consumed in file
// order, skipping blank rows, until the rows are exhausted or the profile
// cap is reached. The first processed record duplicates the master into a
// single new instance that receives every record of the run: record i fills
// the slots of group prefix i and frame i. Per-record failures are recorded
// in the summary and do not abort the batch.
func (f *Filler) Run(host Host, rows [][]string) (*Summary, error) {
	if err := f.Validate(rows); err != nil {
		return nil, err
	}

	sum := &Summary{}
	var canvas Canvas
	pos := 0

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if pos >= f.opts.maxProfiles || pos >= len(f.opts.groupPrefixes) {
			break
		}

		if canvas == nil {
			f.seq++
			name := fmt.Sprintf("%s %d", f.opts.instancePrefix, f.seq)
			c, err := host.Duplicate(name)
			if err != nil {
				return sum, fmt.Errorf("duplicate template as %q: %w", name, err)
			}
			f.logf("INFO", "created instance %q", name)
			canvas = c
		}

		rec := newRecord(i+1, row, f.opts.schema)
		f.processRecord(canvas, rec, pos, sum)
		sum.Processed++
		pos++
	}

	f.logf("INFO", "run done: %d records processed, %d issues", sum.Processed, len(sum.Issues))
	return sum, nil
}

// processRecord fills one record's text slots and image frame. Failures are
// isolated per slot and per image; a panic anywhere in the record is
// recovered at this boundary and recorded, and the batch continues.
func (f *Filler) processRecord(canvas Canvas, rec Record, pos int, sum *Summary) {
	defer func() {
		if r := recover(); r != nil {
			sum.addIssue(rec.Row, fmt.Errorf("unexpected error: %v", r))
			f.logf("ERROR", "row %d: unexpected error: %v", rec.Row, r)
		}
	}()

	res := newResolver(canvas.Root(), f.opts.strictSubgroups, f.logf)
	ctx := NewContext(rec.Env(), f.evaluator, f.opts.notationBegin, f.opts.notationEnd)
	prefix := f.opts.groupPrefixes[pos]

	for _, b := range f.opts.bindings {
		slot, err := res.Text(SlotAddress{GroupPrefix: prefix, SubGroup: b.SubGroup, Slot: b.Slot})
		if err != nil {
			sum.addIssue(rec.Row, err)
			f.logf("WARN", "row %d: %v", rec.Row, err)
			continue
		}
		text, err := ctx.Render(b.Template)
		if err != nil {
			sum.addIssue(rec.Row, err)
			f.logf("WARN", "row %d: %v", rec.Row, err)
			continue
		}
		if err := SetText(slot, text); err != nil {
			sum.addIssue(rec.Row, fmt.Errorf("write slot %q: %w", b.Slot, err))
			continue
		}
		if b.MaxWidth > 0 {
			if err := FitWidth(slot, b.MaxWidth, f.opts.initialFontSize, f.opts.minFontSize); err != nil {
				sum.addIssue(rec.Row, fmt.Errorf("fit slot %q: %w", b.Slot, err))
			}
		}
	}

	if rec.ImagePath == "" {
		return
	}
	if pos >= len(f.opts.frames) {
		sum.addIssue(rec.Row, &SlotResolutionError{Slot: fmt.Sprintf("frame #%d", pos+1), Reason: "no frame configured for this position"})
		return
	}
	path := ResolveRelative(f.opts.dataPath, rec.ImagePath)
	if err := ValidatePath(path, f.opts.allowedExts, f.opts.maxPathLen); err != nil {
		sum.addIssue(rec.Row, &ImageError{Path: path, Err: err})
		f.logf("WARN", "row %d: %v", rec.Row, err)
		return
	}
	frame, err := res.Frame(f.opts.frames[pos])
	if err != nil {
		sum.addIssue(rec.Row, err)
		f.logf("WARN", "row %d: %v", rec.Row, err)
		return
	}
	if err := FitImage(canvas, path, frame); err != nil {
		sum.addIssue(rec.Row, err)
		f.logf("WARN", "row %d: %v", rec.Row, err)
	}
}

// logf writes one timestamped, leveled line to the configured logger.
func (f *Filler) logf(level, format string, args ...any) {
	if f.opts.logger == nil {
		return
	}
	writeLog(f.opts.logger, level, format, args...)
}

func writeLog(w io.Writer, level, format string, args ...any) {
	fmt.Fprintf(w, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, fmt.Sprintf(format, args...))
}
