// Copyright (c) 2025 Michael D Henderson. All rights reserved.

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
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path from fs.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Defaults and CALC_* environment overrides are applied before validation.
// An empty path returns the defaults with environment overrides.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("read configuration file %q: %w", path, err)
		}
		if err := Decode(cfg, filepath.Ext(path), data); err != nil {
			return nil, fmt.Errorf("parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes data into cfg. ext selects the format (".toml", ".yaml" or ".yml").
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return fmt.Errorf("unknown field(s) %s", strings.Join(keys, ", "))
		}
		return nil
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unsupported configuration format %q", ext)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format CALC_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CALC_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("CALC_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
	if val := os.Getenv("CALC_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("CALC_SERVER_ADDR"); val != "" {
		cfg.Server.Addr = val
	}
	if val := os.Getenv("CALC_BATCH_PATTERN"); val != "" {
		cfg.Batch.Pattern = val
	}
}
