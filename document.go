package layerfill

// Bounds is an axis-aligned rectangle in the host document's unit,
// as (left, top, right, bottom).
type Bounds struct {
	Left, Top, Right, Bottom float64
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

func (b Bounds) CenterX() float64 { return (b.Left + b.Right) / 2 }
func (b Bounds) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Host abstracts the document-editing application that owns the master
// template. Layerfill never mutates the master: each run duplicates it and
// works on the duplicate.
type Host interface {
	// Duplicate copies the master document under the given name and returns
	// the duplicate as the new editing target.
	Duplicate(name string) (Canvas, error)
}

// Canvas is one template instance: a duplicated document being filled.
// It is exclusively owned by the run that created it.
type Canvas interface {
	// Root is the document's top-level container.
	Root() Group

	// PlaceImage imports the image at path, copies its entire extent and
	// pastes it as a new layer immediately in front of frame, returning a
	// handle to the pasted content. It fails if the source cannot be opened
	// or has zero extent.
	PlaceImage(path string, frame Frame) (Layer, error)
}

// Group is a container in the document's hierarchy, holding child groups
// and leaf slots.
type Group interface {
	Name() string
	Groups() []Group
	Slots() []Slot
}

// SlotKind discriminates leaf slot types.
type SlotKind int

const (
	TextKind SlotKind = iota
	FrameKind
)

// Slot is a named leaf placement target. Concrete slots are either
// TextSlot or Frame.
type Slot interface {
	Name() string
	Kind() SlotKind
	// Bounds is the slot's rendered extent. For text slots it must be
	// re-queried after every content or font-size change; layout is not
	// stable across changes.
	Bounds() Bounds
}

// TextSlot is a slot holding editable text.
type TextSlot interface {
	Slot
	Text() string
	SetText(text string) error
	FontSize() float64
	SetFontSize(size float64) error
}

// Frame is an image-bearing slot whose shape clips placed content.
type Frame interface {
	Slot
}

// Layer is pasted image content inside a Canvas.
type Layer interface {
	Bounds() Bounds
	// ScaleAboutCenter applies a uniform scale anchored at the content's
	// own center.
	ScaleAboutCenter(factor float64) error
	// ClipTo constrains the content to exactly the frame's shape, hiding
	// any overflow.
	ClipTo(frame Frame) error
	// MoveCenterTo translates the content so its center lands on (x, y).
	MoveCenterTo(x, y float64) error
}
