// Package memdoc is an in-memory implementation of layerfill's host
// document interfaces. Text width is modeled as a fixed fraction of the font
// size per rune, and image extents come from decoding the file's header, so
// batch runs and tests work without a real editing application.
package memdoc

import (
	"fmt"
	"image"
	"os"
	"unicode/utf8"

	// Extent probing for the allow-listed image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/javajack/layerfill"
)

// charWidthRatio approximates rendered glyph width as a fraction of the
// font size.
const charWidthRatio = 0.6

// Template is a master document. It implements layerfill.Host: each
// Duplicate deep-copies the group tree into a fresh Canvas, so the master is
// never mutated.
type Template struct {
	name string
	root *Group
}

// NewTemplate creates a master document with the given root group.
func NewTemplate(name string, root *Group) *Template {
	return &Template{name: name, root: root}
}

// Duplicate copies the master under a new name.
func (t *Template) Duplicate(name string) (layerfill.Canvas, error) {
	if t.root == nil {
		return nil, fmt.Errorf("template %q has no content", t.name)
	}
	return &Canvas{name: name, root: t.root.clone()}, nil
}

// Canvas is one duplicated instance being filled.
type Canvas struct {
	name   string
	root   *Group
	layers []*ImageLayer
}

func (c *Canvas) Name() string { return c.name }

func (c *Canvas) Root() layerfill.Group { return c.root }

// Layers returns the image layers pasted so far, in stacking order.
func (c *Canvas) Layers() []*ImageLayer { return c.layers }

// PlaceImage decodes the image header at path and pastes a layer of that
// extent in front of frame. The file is only probed for dimensions; pixels
// are never loaded.
func (c *Canvas) PlaceImage(path string, frame layerfill.Frame) (layerfill.Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has zero extent")
	}

	layer := &ImageLayer{
		Source: path,
		Front:  frame.Name(),
		bounds: layerfill.Bounds{Right: float64(cfg.Width), Bottom: float64(cfg.Height)},
	}
	c.layers = append(c.layers, layer)
	return layer, nil
}

// Group is a container node.
type Group struct {
	name   string
	groups []*Group
	slots  []layerfill.Slot
}

// NewGroup creates a group with the given children. Children must be
// *Group, *TextSlot or *FrameSlot.
func NewGroup(name string, children ...any) *Group {
	g := &Group{name: name}
	for _, c := range children {
		switch child := c.(type) {
		case *Group:
			g.groups = append(g.groups, child)
		case *TextSlot:
			g.slots = append(g.slots, child)
		case *FrameSlot:
			g.slots = append(g.slots, child)
		default:
			panic(fmt.Sprintf("memdoc: unsupported child type %T", c))
		}
	}
	return g
}

func (g *Group) Name() string { return g.name }

func (g *Group) Groups() []layerfill.Group {
	out := make([]layerfill.Group, len(g.groups))
	for i, child := range g.groups {
		out[i] = child
	}
	return out
}

func (g *Group) Slots() []layerfill.Slot { return g.slots }

func (g *Group) clone() *Group {
	out := &Group{name: g.name}
	for _, child := range g.groups {
		out.groups = append(out.groups, child.clone())
	}
	for _, s := range g.slots {
		switch slot := s.(type) {
		case *TextSlot:
			copied := *slot
			out.slots = append(out.slots, &copied)
		case *FrameSlot:
			copied := *slot
			out.slots = append(out.slots, &copied)
		}
	}
	return out
}

// TextSlot is an editable text layer. Its rendered width is
// charWidthRatio * fontSize per rune, so bounds change with both content
// and size.
type TextSlot struct {
	name string
	x, y float64 // top-left anchor
	size float64
	text string
}

// NewTextSlot creates a text slot anchored at (x, y) with the given initial
// font size.
func NewTextSlot(name string, x, y, size float64) *TextSlot {
	return &TextSlot{name: name, x: x, y: y, size: size}
}

func (s *TextSlot) Name() string             { return s.name }
func (s *TextSlot) Kind() layerfill.SlotKind { return layerfill.TextKind }

func (s *TextSlot) Bounds() layerfill.Bounds {
	width := charWidthRatio * s.size * float64(utf8.RuneCountInString(s.text))
	return layerfill.Bounds{
		Left:   s.x,
		Top:    s.y,
		Right:  s.x + width,
		Bottom: s.y + s.size,
	}
}

func (s *TextSlot) Text() string { return s.text }

func (s *TextSlot) SetText(text string) error {
	s.text = text
	return nil
}

func (s *TextSlot) FontSize() float64 { return s.size }

func (s *TextSlot) SetFontSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", size)
	}
	s.size = size
	return nil
}

// FrameSlot is an image-bearing slot with fixed bounds.
type FrameSlot struct {
	name   string
	bounds layerfill.Bounds
}

// NewFrameSlot creates a frame with the given bounds.
func NewFrameSlot(name string, bounds layerfill.Bounds) *FrameSlot {
	return &FrameSlot{name: name, bounds: bounds}
}

func (s *FrameSlot) Name() string             { return s.name }
func (s *FrameSlot) Kind() layerfill.SlotKind { return layerfill.FrameKind }
func (s *FrameSlot) Bounds() layerfill.Bounds { return s.bounds }

// ImageLayer is pasted image content.
type ImageLayer struct {
	Source string // originating file path
	Front  string // name of the frame the layer was pasted in front of
	bounds layerfill.Bounds
	clip   *layerfill.Bounds
}

func (l *ImageLayer) Bounds() layerfill.Bounds { return l.bounds }

// Clip returns the clip shape applied to the layer, or nil if unclipped.
func (l *ImageLayer) Clip() *layerfill.Bounds { return l.clip }

func (l *ImageLayer) ScaleAboutCenter(factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %v", factor)
	}
	cx, cy := l.bounds.CenterX(), l.bounds.CenterY()
	halfW := l.bounds.Width() * factor / 2
	halfH := l.bounds.Height() * factor / 2
	l.bounds = layerfill.Bounds{
		Left:   cx - halfW,
		Top:    cy - halfH,
		Right:  cx + halfW,
		Bottom: cy + halfH,
	}
	return nil
}

func (l *ImageLayer) ClipTo(frame layerfill.Frame) error {
	b := frame.Bounds()
	l.clip = &b
	return nil
}

func (l *ImageLayer) MoveCenterTo(x, y float64) error {
	dx := x - l.bounds.CenterX()
	dy := y - l.bounds.CenterY()
	l.bounds.Left += dx
	l.bounds.Right += dx
	l.bounds.Top += dy
	l.bounds.Bottom += dy
	return nil
}
