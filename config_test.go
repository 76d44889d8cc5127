package layerfill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
groupPrefixes: [Left Profile, Right Profile]
frames: [Frame A, Frame B]
maxProfiles: 2
instancePrefix: Sheet
initialFontSize: 24
minFontSize: 12
maxTextWidth: 320
allowedExtensions: [".png"]
strictSubgroups: true
bindings:
  - slot: Name
    template: "${Name}"
    maxWidth: 320
  - slot: Age
    subGroup: Details
    template: "${Age} years"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Left Profile", "Right Profile"}, cfg.GroupPrefixes)
	assert.Equal(t, 2, cfg.MaxProfiles)
	require.Len(t, cfg.Bindings, 2)
	assert.Equal(t, "Details", cfg.Bindings[1].SubGroup)
	assert.Equal(t, "${Age} years", cfg.Bindings[1].Template)
}

func TestConfigOptions_ApplyOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(o)
	}
	assert.Equal(t, []string{"Left Profile", "Right Profile"}, o.groupPrefixes)
	assert.Equal(t, []string{"Frame A", "Frame B"}, o.frames)
	assert.Equal(t, 2, o.maxProfiles)
	assert.Equal(t, "Sheet", o.instancePrefix)
	assert.Equal(t, 24.0, o.initialFontSize)
	assert.Equal(t, 12.0, o.minFontSize)
	assert.Equal(t, 320.0, o.maxTextWidth)
	assert.Equal(t, []string{".png"}, o.allowedExts)
	assert.True(t, o.strictSubgroups)
	require.Len(t, o.bindings, 2)
}

func TestConfigOptions_EmptyConfigKeepsDefaults(t *testing.T) {
	cfg := &Config{}
	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(o)
	}
	assert.Equal(t, 3, o.maxProfiles)
	assert.Equal(t, "Poster", o.instancePrefix)
	assert.False(t, o.strictSubgroups)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/run.yaml")
	assert.Error(t, err)
}
