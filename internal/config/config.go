// Package config loads .dtogen.toml generation settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/calumari/dtogen/internal/generator"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".dtogen.toml"

// ErrUnknownKey is returned when the file sets keys this version does not know.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config mirrors the file layout.
type Config struct {
	// ContinuationIndent is spaces or tabs; empty means the generator default.
	ContinuationIndent string `toml:"continuation_indent"`
	FactoryMethod      string `toml:"factory_method"`
	BuildMethod        string `toml:"build_method"`
	LogLevel           int    `toml:"log_level"`

	// Path is the file the settings came from; empty for defaults.
	Path string `toml:"-"`
}

// Default returns the settings used without a file.
func Default() *Config {
	return &Config{}
}

// Generator converts the settings into generator options. Unset values fall
// back to the generator defaults.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		ContinuationIndent: c.ContinuationIndent,
		FactoryMethod:      c.FactoryMethod,
		BuildMethod:        c.BuildMethod,
	}
}

// Load parses the file at path.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if strings.TrimFunc(c.ContinuationIndent, isIndent) != "" {
		return nil, fmt.Errorf("%s: continuation_indent must be spaces or tabs, got %q", path, c.ContinuationIndent)
	}
	c.Path = path
	return &c, nil
}

func isIndent(r rune) bool { return r == ' ' || r == '\t' }

// FindAndLoad walks up from startDir looking for FileName. Without one it
// returns Default().
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
