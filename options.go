package layerfill

import "io"

// Binding maps one text slot inside a record's profile group to a template
// rendered from the record's fields. A positive MaxWidth requests a
// shrink-to-fit pass after the text is written.
type Binding struct {
	Slot     string  `yaml:"slot"`
	SubGroup string  `yaml:"subGroup,omitempty"`
	Template string  `yaml:"template"`
	MaxWidth float64 `yaml:"maxWidth,omitempty"`
}

// Options holds the filler's configuration, assembled once at construction
// and immutable afterwards.
type Options struct {
	schema          Schema
	bindings        []Binding
	groupPrefixes   []string
	frames          []string
	strictSubgroups bool
	maxProfiles     int
	instancePrefix  string
	initialFontSize float64
	minFontSize     float64
	maxTextWidth    float64
	allowedExts     []string
	maxPathLen      int
	probe           FileProbe
	logger          io.Writer
	dataPath        string
	notationBegin   string
	notationEnd     string
}

func defaultOptions() *Options {
	return &Options{
		schema:          DefaultSchema,
		groupPrefixes:   []string{"Profile 1", "Profile 2", "Profile 3"},
		frames:          []string{"Left Frame", "Middle Frame", "Right Frame"},
		maxProfiles:     3,
		instancePrefix:  "Poster",
		initialFontSize: 30,
		minFontSize:     18,
		maxTextWidth:    500,
		allowedExts:     []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
		maxPathLen:      DefaultMaxPathLength,
		probe:           statProbe,
		notationBegin:   "${",
		notationEnd:     "}",
	}
}

// defaultBindings fills the five profile slots in fixed order: name,
// profession, cause, year, age. Only the name shrinks to fit.
func defaultBindings(maxTextWidth float64) []Binding {
	return []Binding{
		{Slot: "Name", Template: "${Name}", MaxWidth: maxTextWidth},
		{Slot: "Profession", Template: "${Profession}"},
		{Slot: "Cause", Template: "${Overdose}"},
		{Slot: "Year", Template: "${YearOfDeath}"},
		{Slot: "Age", SubGroup: "Details", Template: "${Age}"},
	}
}

// Option configures the Filler.
type Option func(*Options)

// WithSchema replaces the tabular input schema. Any column count and order
// is accepted: the numeric, image and record-field checks locate their
// columns by header name ("Year of Death", "Age", "Image Path", ...) and are
// skipped for columns the schema does not carry.
func WithSchema(schema Schema) Option {
	return func(o *Options) { o.schema = schema }
}

// WithBindings replaces the slot bindings, applied per record in order.
func WithBindings(bindings []Binding) Option {
	return func(o *Options) { o.bindings = bindings }
}

// WithGroupPrefixes sets the per-position profile group name prefixes.
// Their count caps the records written into one instance.
func WithGroupPrefixes(prefixes ...string) Option {
	return func(o *Options) { o.groupPrefixes = prefixes }
}

// WithFrames sets the per-position image frame names at the document root.
func WithFrames(frames ...string) Option {
	return func(o *Options) { o.frames = frames }
}

// WithStrictSubgroups makes a missing subgroup a resolution failure instead
// of the historical fall-back to the parent group.
func WithStrictSubgroups(strict bool) Option {
	return func(o *Options) { o.strictSubgroups = strict }
}

// WithMaxProfiles caps how many records are processed per run (default: 3).
func WithMaxProfiles(n int) Option {
	return func(o *Options) { o.maxProfiles = n }
}

// WithInstancePrefix sets the name prefix for duplicated template instances.
func WithInstancePrefix(prefix string) Option {
	return func(o *Options) { o.instancePrefix = prefix }
}

// WithFontSizes sets the initial and minimum font sizes for shrink-to-fit.
func WithFontSizes(initial, min float64) Option {
	return func(o *Options) {
		o.initialFontSize = initial
		o.minFontSize = min
	}
}

// WithMaxTextWidth sets the width cap used by the default name binding.
func WithMaxTextWidth(width float64) Option {
	return func(o *Options) { o.maxTextWidth = width }
}

// WithAllowedExtensions sets the image extension allow-list (leading dots).
func WithAllowedExtensions(exts ...string) Option {
	return func(o *Options) { o.allowedExts = exts }
}

// WithMaxPathLength sets the longest accepted image path.
func WithMaxPathLength(n int) Option {
	return func(o *Options) { o.maxPathLen = n }
}

// WithFileProbe replaces the file-existence probe used during validation.
func WithFileProbe(probe FileProbe) Option {
	return func(o *Options) { o.probe = probe }
}

// WithLogger directs warning and debug lines to w. Nil disables logging.
func WithLogger(w io.Writer) Option {
	return func(o *Options) { o.logger = w }
}

// WithDataPath records the tabular file's path so relative image paths
// resolve against its directory.
func WithDataPath(path string) Option {
	return func(o *Options) { o.dataPath = path }
}

// WithExpressionNotation sets the template delimiters (default: "${", "}").
func WithExpressionNotation(begin, end string) Option {
	return func(o *Options) {
		o.notationBegin = begin
		o.notationEnd = end
	}
}
