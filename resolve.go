package layerfill

import "strings"

// SlotAddress identifies a placement target inside a template instance.
// An empty GroupPrefix addresses the document root; an empty SubGroup stays
// at the group's own level.
type SlotAddress struct {
	GroupPrefix string
	SubGroup    string
	Slot        string
}

// resolver finds named slots in one template instance's group tree.
type resolver struct {
	root            Group
	strictSubgroups bool
	logf            func(level, format string, args ...any)
}

func newResolver(root Group, strictSubgroups bool, logf func(level, format string, args ...any)) *resolver {
	if logf == nil {
		logf = func(string, string, ...any) {}
	}
	return &resolver{root: root, strictSubgroups: strictSubgroups, logf: logf}
}

// findGroup scans root's immediate child groups and returns the first whose
// name starts with prefix. Prefix matching tolerates suffixed group names;
// two groups sharing a prefix are ambiguous and first-match wins.
func findGroup(root Group, prefix string) Group {
	for _, g := range root.Groups() {
		if strings.HasPrefix(g.Name(), prefix) {
			return g
		}
	}
	return nil
}

// descend moves into the exactly-named immediate subgroup. Historically a
// missing subgroup silently fell back to the parent, mis-addressing the
// slot; the fallback is kept as default behavior but logged, and strict
// mode turns it into a resolution failure.
func (r *resolver) descend(group Group, subGroup string) (Group, bool) {
	if subGroup == "" {
		return group, true
	}
	for _, g := range group.Groups() {
		if g.Name() == subGroup {
			return g, true
		}
	}
	if r.strictSubgroups {
		return nil, false
	}
	r.logf("WARN", "subgroup %q not found under %q, falling back to parent group", subGroup, group.Name())
	return group, true
}

// container resolves the group portion of an address.
func (r *resolver) container(addr SlotAddress) (Group, *SlotResolutionError) {
	group := r.root
	if addr.GroupPrefix != "" {
		group = findGroup(r.root, addr.GroupPrefix)
		if group == nil {
			return nil, &SlotResolutionError{
				GroupPrefix: addr.GroupPrefix, SubGroup: addr.SubGroup, Slot: addr.Slot,
				Reason: "no group with that prefix",
			}
		}
	}
	group, ok := r.descend(group, addr.SubGroup)
	if !ok {
		return nil, &SlotResolutionError{
			GroupPrefix: addr.GroupPrefix, SubGroup: addr.SubGroup, Slot: addr.Slot,
			Reason: "no subgroup with that name",
		}
	}
	return group, nil
}

// Text resolves addr to a text slot.
func (r *resolver) Text(addr SlotAddress) (TextSlot, error) {
	group, rerr := r.container(addr)
	if rerr != nil {
		return nil, rerr
	}
	for _, s := range group.Slots() {
		if s.Name() != addr.Slot || s.Kind() != TextKind {
			continue
		}
		if ts, ok := s.(TextSlot); ok {
			return ts, nil
		}
	}
	return nil, &SlotResolutionError{
		GroupPrefix: addr.GroupPrefix, SubGroup: addr.SubGroup, Slot: addr.Slot,
		Reason: "no text slot with that name",
	}
}

// Frame resolves a bare frame name at the document root.
func (r *resolver) Frame(name string) (Frame, error) {
	for _, s := range r.root.Slots() {
		if s.Name() == name && s.Kind() == FrameKind {
			return s, nil
		}
	}
	return nil, &SlotResolutionError{Slot: name, Reason: "no image frame with that name"}
}
