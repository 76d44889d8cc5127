package memdoc

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javajack/layerfill"
)

// Layout is the YAML description of a master document's group/slot tree.
//
//	name: master
//	slots:
//	  - {name: Left Frame, kind: frame, left: 0, top: 0, right: 300, bottom: 450}
//	groups:
//	  - name: Profile 1
//	    slots:
//	      - {name: Name, kind: text, x: 20, y: 40, size: 30}
//	    groups:
//	      - name: Details
//	        slots:
//	          - {name: Age, kind: text, x: 20, y: 200, size: 18}
type Layout struct {
	Name   string        `yaml:"name"`
	Groups []GroupLayout `yaml:"groups,omitempty"`
	Slots  []SlotLayout  `yaml:"slots,omitempty"`
}

// GroupLayout describes one group node.
type GroupLayout struct {
	Name   string        `yaml:"name"`
	Groups []GroupLayout `yaml:"groups,omitempty"`
	Slots  []SlotLayout  `yaml:"slots,omitempty"`
}

// SlotLayout describes one leaf slot. Kind is "text" or "frame"; text slots
// use x/y/size, frames use left/top/right/bottom.
type SlotLayout struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	X    float64 `yaml:"x,omitempty"`
	Y    float64 `yaml:"y,omitempty"`
	Size float64 `yaml:"size,omitempty"`

	Left   float64 `yaml:"left,omitempty"`
	Top    float64 `yaml:"top,omitempty"`
	Right  float64 `yaml:"right,omitempty"`
	Bottom float64 `yaml:"bottom,omitempty"`
}

// LoadLayout reads a YAML layout and builds the master template.
func LoadLayout(r io.Reader) (*Template, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var layout Layout
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return BuildTemplate(layout)
}

// LoadLayoutFile reads a YAML layout file and builds the master template.
func LoadLayoutFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout %q: %w", path, err)
	}
	defer f.Close()
	return LoadLayout(f)
}

// BuildTemplate constructs a Template from an in-memory layout.
func BuildTemplate(layout Layout) (*Template, error) {
	name := layout.Name
	if name == "" {
		name = "master"
	}
	root, err := buildGroup(GroupLayout{Name: name, Groups: layout.Groups, Slots: layout.Slots})
	if err != nil {
		return nil, err
	}
	return NewTemplate(name, root), nil
}

func buildGroup(gl GroupLayout) (*Group, error) {
	g := &Group{name: gl.Name}
	for _, child := range gl.Groups {
		built, err := buildGroup(child)
		if err != nil {
			return nil, err
		}
		g.groups = append(g.groups, built)
	}
	for _, sl := range gl.Slots {
		switch sl.Kind {
		case "text":
			g.slots = append(g.slots, NewTextSlot(sl.Name, sl.X, sl.Y, sl.Size))
		case "frame":
			g.slots = append(g.slots, NewFrameSlot(sl.Name, layerfill.Bounds{
				Left: sl.Left, Top: sl.Top, Right: sl.Right, Bottom: sl.Bottom,
			}))
		default:
			return nil, fmt.Errorf("slot %q: unknown kind %q", sl.Name, sl.Kind)
		}
	}
	return g, nil
}
