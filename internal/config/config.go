package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/brim/internal/core"
)

const DefaultPreset = "rolling_disc"

// Config describes a model graph to build and the parameter set to
// evaluate it with.
type Config struct {
	Name string `yaml:"name"`
	// Params is a parameter file path. Empty means the benchmark set.
	Params string          `yaml:"params,omitempty"`
	Root   ComponentConfig `yaml:"root"`
}

// ComponentConfig is one node of the model graph. Slots map attribute names
// to child components; connection slots that the parent wires itself, such
// as the ground of a tyre, are left out.
type ComponentConfig struct {
	Type       string                      `yaml:"type"`
	Name       string                      `yaml:"name"`
	Options    map[string]any              `yaml:"options,omitempty"`
	Slots      map[string]*ComponentConfig `yaml:"slots,omitempty"`
	LoadGroups []*ComponentConfig          `yaml:"load_groups,omitempty"`
}

func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every node names a type and has an identifier
// name. Type lookups happen when the graph is assembled.
func (c *Config) Validate() error {
	return c.Root.validate("root")
}

func (c *ComponentConfig) validate(path string) error {
	if c == nil {
		return fmt.Errorf("%s: empty component", path)
	}
	if c.Type == "" {
		return fmt.Errorf("%s: missing type", path)
	}
	if !core.IsIdentifier(c.Name) {
		return fmt.Errorf("%s: %w: %q", path, core.ErrInvalidName, c.Name)
	}
	for slot, child := range c.Slots {
		if err := child.validate(path + "." + slot); err != nil {
			return err
		}
	}
	for i, lg := range c.LoadGroups {
		if err := lg.validate(fmt.Sprintf("%s.load_groups[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	out.Root = *c.Root.clone()
	return &out
}

func (c *ComponentConfig) clone() *ComponentConfig {
	if c == nil {
		return nil
	}
	out := &ComponentConfig{Type: c.Type, Name: c.Name}
	if c.Options != nil {
		out.Options = make(map[string]any, len(c.Options))
		for k, v := range c.Options {
			out.Options[k] = v
		}
	}
	if c.Slots != nil {
		out.Slots = make(map[string]*ComponentConfig, len(c.Slots))
		for k, v := range c.Slots {
			out.Slots[k] = v.clone()
		}
	}
	for _, lg := range c.LoadGroups {
		out.LoadGroups = append(out.LoadGroups, lg.clone())
	}
	return out
}
