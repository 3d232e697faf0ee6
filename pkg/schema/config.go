// Package schema defines the bridge configuration document, its
// validation pipeline, and JSON Schema export for the configuration and
// the tool result shapes.
package schema

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the bridge configuration (mmbridge.yaml). Everything is
// optional; the zero value plus defaults is a working setup against a
// standard MediaMonkey 5/2024 install.
type Config struct {
	// ProgID overrides the COM automation entry point, for hosts where
	// more than one registration exists. Read once at session creation.
	ProgID string `yaml:"progid,omitempty" json:"progid,omitempty" jsonschema:"example=SongsDB5.SDBApplication"`

	// ScriptTimeout bounds how long a script run waits for its callback
	// delivery, as a Go duration string.
	ScriptTimeout string `yaml:"script_timeout,omitempty" json:"script_timeout,omitempty" jsonschema:"example=30s"`

	// DefaultPersist is the persist mode used when a config write does
	// not name one: none, flush, or apply.
	DefaultPersist string `yaml:"default_persist,omitempty" json:"default_persist,omitempty" jsonschema:"enum=none,enum=flush,enum=apply"`

	// MenuMatch is the match strategy used when a menu invocation does
	// not name one: exact, startswith, or contains.
	MenuMatch string `yaml:"menu_match,omitempty" json:"menu_match,omitempty" jsonschema:"enum=exact,enum=startswith,enum=contains"`
}

// DefaultScriptTimeout bounds script runs when the config does not.
const DefaultScriptTimeout = 30 * time.Second

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ScriptTimeout:  "30s",
		DefaultPersist: "none",
		MenuMatch:      "exact",
	}
}

// LoadFile reads and strictly decodes a configuration file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a configuration document with strict unknown-field
// rejection, then fills unset fields from Default.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	def := Default()
	if cfg.ScriptTimeout == "" {
		cfg.ScriptTimeout = def.ScriptTimeout
	}
	if cfg.DefaultPersist == "" {
		cfg.DefaultPersist = def.DefaultPersist
	}
	if cfg.MenuMatch == "" {
		cfg.MenuMatch = def.MenuMatch
	}
	return &cfg, nil
}

// Timeout parses ScriptTimeout, falling back to DefaultScriptTimeout for
// empty or unparseable values. Validation reports the unparseable case;
// runtime code just wants a usable bound.
func (c *Config) Timeout() time.Duration {
	if c.ScriptTimeout == "" {
		return DefaultScriptTimeout
	}
	d, err := time.ParseDuration(c.ScriptTimeout)
	if err != nil || d <= 0 {
		return DefaultScriptTimeout
	}
	return d
}
