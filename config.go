package layerfill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-serializable run configuration. Zero-valued fields keep
// their defaults; Bindings, GroupPrefixes and Frames replace the defaults
// wholesale when set.
type Config struct {
	GroupPrefixes     []string  `yaml:"groupPrefixes,omitempty"`
	Frames            []string  `yaml:"frames,omitempty"`
	Bindings          []Binding `yaml:"bindings,omitempty"`
	MaxProfiles       int       `yaml:"maxProfiles,omitempty"`
	InstancePrefix    string    `yaml:"instancePrefix,omitempty"`
	InitialFontSize   float64   `yaml:"initialFontSize,omitempty"`
	MinFontSize       float64   `yaml:"minFontSize,omitempty"`
	MaxTextWidth      float64   `yaml:"maxTextWidth,omitempty"`
	AllowedExtensions []string  `yaml:"allowedExtensions,omitempty"`
	MaxPathLength     int       `yaml:"maxPathLength,omitempty"`
	StrictSubgroups   bool      `yaml:"strictSubgroups,omitempty"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

// Options converts the config into filler options.
func (c *Config) Options() []Option {
	var opts []Option
	if len(c.GroupPrefixes) > 0 {
		opts = append(opts, WithGroupPrefixes(c.GroupPrefixes...))
	}
	if len(c.Frames) > 0 {
		opts = append(opts, WithFrames(c.Frames...))
	}
	if len(c.Bindings) > 0 {
		opts = append(opts, WithBindings(c.Bindings))
	}
	if c.MaxProfiles > 0 {
		opts = append(opts, WithMaxProfiles(c.MaxProfiles))
	}
	if c.InstancePrefix != "" {
		opts = append(opts, WithInstancePrefix(c.InstancePrefix))
	}
	if c.InitialFontSize > 0 || c.MinFontSize > 0 {
		initial, min := c.InitialFontSize, c.MinFontSize
		if initial <= 0 {
			initial = defaultOptions().initialFontSize
		}
		if min <= 0 {
			min = defaultOptions().minFontSize
		}
		opts = append(opts, WithFontSizes(initial, min))
	}
	if c.MaxTextWidth > 0 {
		opts = append(opts, WithMaxTextWidth(c.MaxTextWidth))
	}
	if len(c.AllowedExtensions) > 0 {
		opts = append(opts, WithAllowedExtensions(c.AllowedExtensions...))
	}
	if c.MaxPathLength > 0 {
		opts = append(opts, WithMaxPathLength(c.MaxPathLength))
	}
	if c.StrictSubgroups {
		opts = append(opts, WithStrictSubgroups(true))
	}
	return opts
}
