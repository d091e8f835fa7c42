// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a config file, merges the optional devices database,
// validates and normalizes the result. Files ending in .toml are decoded
// as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}

	cfg, err := parse(b)
	if err != nil {
		return nil, err
	}

	if cfg.Scanner.DevicesDB != "" {
		devs, err := LoadDevicesDB(cfg.Scanner.DevicesDB)
		if err != nil {
			return nil, err
		}
		cfg.Scanner.Devices = append(cfg.Scanner.Devices, devs...)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	Normalize(cfg)

	return cfg, nil
}

// Parse decodes YAML without validating it. Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ParseTOML is Parse for TOML documents.
func ParseTOML(b []byte) (*Config, error) {
	var cfg Config

	meta, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	return &cfg, nil
}
