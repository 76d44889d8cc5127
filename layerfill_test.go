package layerfill_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/layerfill"
	"github.com/javajack/layerfill/memdoc"
)

const header = "Name,Profession,Overdose,Year of Death,Age,Image Path"

func profileGroup(name string) *memdoc.Group {
	return memdoc.NewGroup(name,
		memdoc.NewTextSlot("Name", 20, 40, 30),
		memdoc.NewTextSlot("Profession", 20, 80, 18),
		memdoc.NewTextSlot("Cause", 20, 120, 18),
		memdoc.NewTextSlot("Year", 20, 160, 18),
		memdoc.NewGroup("Details",
			memdoc.NewTextSlot("Age", 20, 200, 18),
		),
	)
}

func masterTemplate() *memdoc.Template {
	root := memdoc.NewGroup("master",
		profileGroup("Profile 1"),
		profileGroup("Profile 2"),
		profileGroup("Profile 3"),
		memdoc.NewFrameSlot("Left Frame", layerfill.Bounds{Left: 0, Top: 300, Right: 200, Bottom: 600}),
		memdoc.NewFrameSlot("Middle Frame", layerfill.Bounds{Left: 220, Top: 300, Right: 420, Bottom: 600}),
		memdoc.NewFrameSlot("Right Frame", layerfill.Bounds{Left: 440, Top: 300, Right: 640, Bottom: 600}),
	)
	return memdoc.NewTemplate("master", root)
}

// captureHost wraps a memdoc template so tests can inspect the instance the
// run created.
type captureHost struct {
	tpl    *memdoc.Template
	canvas *memdoc.Canvas
	names  []string
}

func (h *captureHost) Duplicate(name string) (layerfill.Canvas, error) {
	c, err := h.tpl.Duplicate(name)
	if err != nil {
		return nil, err
	}
	h.canvas = c.(*memdoc.Canvas)
	h.names = append(h.names, name)
	return c, nil
}

func childGroup(t *testing.T, g layerfill.Group, name string) layerfill.Group {
	t.Helper()
	for _, child := range g.Groups() {
		if child.Name() == name {
			return child
		}
	}
	t.Fatalf("group %q not found under %q", name, g.Name())
	return nil
}

func textValue(t *testing.T, g layerfill.Group, slot string) string {
	t.Helper()
	for _, s := range g.Slots() {
		if s.Name() == slot {
			ts, ok := s.(layerfill.TextSlot)
			require.True(t, ok, "slot %q is not a text slot", slot)
			return ts.Text()
		}
	}
	t.Fatalf("slot %q not found in group %q", slot, g.Name())
	return ""
}

const threeRecords = header + `
Janis Joplin,Singer,Heroin,1970,27,
Jim Morrison,Singer,Heart Failure,1971,27,
John Belushi,Actor,Speedball,1982,33,`

func TestRun_ThreeRecordsFillOneInstance(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}

	sum, err := layerfill.FillCSV(host, threeRecords)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)
	assert.True(t, sum.Clean(), "unexpected issues: %v", sum.Issues)

	// A single instance receives all three records.
	require.Equal(t, []string{"Poster 1"}, host.names)
	root := host.canvas.Root()

	want := []struct {
		group, name, profession, cause, year, age string
	}{
		{"Profile 1", "Janis Joplin", "Singer", "Heroin", "1970", "27"},
		{"Profile 2", "Jim Morrison", "Singer", "Heart Failure", "1971", "27"},
		{"Profile 3", "John Belushi", "Actor", "Speedball", "1982", "33"},
	}
	for _, w := range want {
		g := childGroup(t, root, w.group)
		assert.Equal(t, w.name, textValue(t, g, "Name"))
		assert.Equal(t, w.profession, textValue(t, g, "Profession"))
		assert.Equal(t, w.cause, textValue(t, g, "Cause"))
		assert.Equal(t, w.year, textValue(t, g, "Year"))
		assert.Equal(t, w.age, textValue(t, childGroup(t, g, "Details"), "Age"))
	}

	// No image paths, no placements.
	assert.Empty(t, host.canvas.Layers())
}

func TestRun_CapsAtMaxProfiles(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	raw := threeRecords + "\nEdie Sedgwick,Actress,Barbiturates,1971,28,"

	sum, err := layerfill.FillCSV(host, raw)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, "John Belushi", textValue(t, childGroup(t, host.canvas.Root(), "Profile 3"), "Name"))
}

func TestRun_BlankRowsDoNotConsumePositions(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	raw := header + "\n\nJanis Joplin,Singer,Heroin,1970,27,\n\nJim Morrison,Singer,Heart Failure,1971,27,"

	sum, err := layerfill.FillCSV(host, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, "Jim Morrison", textValue(t, childGroup(t, host.canvas.Root(), "Profile 2"), "Name"))
}

func TestRun_ValidationFailureStopsBeforeAnyMutation(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	raw := "Name,Job,Overdose,Year of Death,Age,Image Path\nJanis,Singer,Heroin,1970,27,"

	sum, err := layerfill.FillCSV(host, raw)
	require.Error(t, err)
	var verr *layerfill.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, sum)
	assert.Nil(t, host.canvas, "no instance may be created on validation failure")
}

func TestRun_ImageGoneAfterValidationIsIsolated(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	raw := header + `
Janis Joplin,Singer,Heroin,1970,27,/missing/janis.png
Jim Morrison,Singer,Heart Failure,1971,27,`

	// The probe passes validation; the file is gone by processing time.
	sum, err := layerfill.FillCSV(host, raw, layerfill.WithFileProbe(func(string) bool { return true }))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)

	require.Len(t, sum.Issues, 1)
	var ierr *layerfill.ImageError
	require.ErrorAs(t, sum.Issues[0].Err, &ierr)
	assert.Equal(t, 1, sum.Issues[0].Row)

	// The failed record's text slots are still filled, and the next record
	// processed normally.
	root := host.canvas.Root()
	assert.Equal(t, "Janis Joplin", textValue(t, childGroup(t, root, "Profile 1"), "Name"))
	assert.Equal(t, "Jim Morrison", textValue(t, childGroup(t, root, "Profile 2"), "Name"))
	assert.Empty(t, host.canvas.Layers())
}

func TestRun_PlacesImagesByPosition(t *testing.T) {
	dir := t.TempDir()
	first := writePNG(t, dir, "janis.png", 50, 50)
	second := writePNG(t, dir, "jim.png", 80, 40)

	host := &captureHost{tpl: masterTemplate()}
	raw := fmt.Sprintf(header+`
Janis Joplin,Singer,Heroin,1970,27,%s
Jim Morrison,Singer,Heart Failure,1971,27,%s`, first, second)

	sum, err := layerfill.FillCSV(host, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.True(t, sum.Clean(), "unexpected issues: %v", sum.Issues)

	layers := host.canvas.Layers()
	require.Len(t, layers, 2)
	assert.Equal(t, "Left Frame", layers[0].Front)
	assert.Equal(t, "Middle Frame", layers[1].Front)
	require.NotNil(t, layers[0].Clip())
}

func TestRun_DisallowedExtensionIsIsolated(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	raw := header + "\nJanis Joplin,Singer,Heroin,1970,27,/pics/janis.xcf"

	sum, err := layerfill.FillCSV(host, raw, layerfill.WithFileProbe(func(string) bool { return true }))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	require.Len(t, sum.Issues, 1)
	var ierr *layerfill.ImageError
	assert.ErrorAs(t, sum.Issues[0].Err, &ierr)
	assert.Empty(t, host.canvas.Layers())
}

func TestRun_MissingSlotIsNonFatal(t *testing.T) {
	// Profile 2 lacks its Profession slot; everything else still fills.
	root := memdoc.NewGroup("master",
		profileGroup("Profile 1"),
		memdoc.NewGroup("Profile 2",
			memdoc.NewTextSlot("Name", 20, 40, 30),
			memdoc.NewTextSlot("Cause", 20, 120, 18),
			memdoc.NewTextSlot("Year", 20, 160, 18),
			memdoc.NewGroup("Details", memdoc.NewTextSlot("Age", 20, 200, 18)),
		),
		profileGroup("Profile 3"),
	)
	host := &captureHost{tpl: memdoc.NewTemplate("master", root)}

	sum, err := layerfill.FillCSV(host, threeRecords)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)

	require.Len(t, sum.Issues, 1)
	var rerr *layerfill.SlotResolutionError
	require.ErrorAs(t, sum.Issues[0].Err, &rerr)
	assert.Equal(t, "Profession", rerr.Slot)
	assert.Equal(t, 2, sum.Issues[0].Row)

	assert.Equal(t, "Jim Morrison", textValue(t, childGroup(t, host.canvas.Root(), "Profile 2"), "Name"))
}

func TestRun_NameShrinksToConfiguredWidth(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}

	_, err := layerfill.FillCSV(host, threeRecords, layerfill.WithMaxTextWidth(100))
	require.NoError(t, err)

	g := childGroup(t, host.canvas.Root(), "Profile 1")
	for _, s := range g.Slots() {
		if s.Name() == "Name" {
			ts := s.(layerfill.TextSlot)
			assert.Less(t, ts.FontSize(), 30.0, "name should have shrunk")
			assert.InDelta(t, 18.0, ts.FontSize(), 1e-9, "unreachable cap bottoms out at min size")
		}
	}
}

func TestRun_InstanceNamesAreSequential(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	f := layerfill.NewFiller()

	_, err := f.Run(host, layerfill.ParseRows(threeRecords))
	require.NoError(t, err)
	_, err = f.Run(host, layerfill.ParseRows(threeRecords))
	require.NoError(t, err)

	assert.Equal(t, []string{"Poster 1", "Poster 2"}, host.names)
}

func TestRun_CustomBindingsAndLogging(t *testing.T) {
	host := &captureHost{tpl: masterTemplate()}
	var log strings.Builder

	bindings := []layerfill.Binding{
		{Slot: "Name", Template: "${Name} (${Age})"},
		{Slot: "Year", Template: "† ${YearOfDeath}"},
	}
	sum, err := layerfill.FillCSV(host, threeRecords,
		layerfill.WithBindings(bindings),
		layerfill.WithLogger(&log),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)

	g := childGroup(t, host.canvas.Root(), "Profile 1")
	assert.Equal(t, "Janis Joplin (27)", textValue(t, g, "Name"))
	assert.Equal(t, "† 1970", textValue(t, g, "Year"))
	assert.Contains(t, log.String(), "created instance")
}
