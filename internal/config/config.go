// Package config loads the palette server's settings from YAML, applies
// environment overrides and validates the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// Environment variables consulted by ApplyEnv and the CLI.
const (
	EnvConfigPath = "PALETTE_MCP_CONFIG"
	EnvLogLevel   = "PALETTE_MCP_LOG_LEVEL"
	EnvBaseColor  = "PALETTE_MCP_BASE_COLOR"
	EnvScheme     = "PALETTE_MCP_SCHEME"
)

// Config is the complete server configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Palette  PaletteConfig  `yaml:"palette"`
	Display  DisplayConfig  `yaml:"display"`
	Dominant DominantConfig `yaml:"dominant"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level         string `yaml:"level" validate:"required,oneof=trace debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
}

// PaletteConfig holds the colour and scheme a new session starts with.
type PaletteConfig struct {
	Base   string `yaml:"base" validate:"required,palette_hex"`
	Scheme string `yaml:"scheme" validate:"required,scheme"`
}

// DisplayConfig bounds the size loaded images are scaled down to. Zero
// leaves an axis unconstrained.
type DisplayConfig struct {
	MaxWidth  int `yaml:"max_width" validate:"gte=0,lte=16384"`
	MaxHeight int `yaml:"max_height" validate:"gte=0,lte=16384"`
}

// DominantConfig tunes dominant colour extraction.
type DominantConfig struct {
	Count         int     `yaml:"count" validate:"gte=1,lte=64"`
	MergeDistance float64 `yaml:"merge_distance" validate:"gte=0,lte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Palette: PaletteConfig{
			Base:   "#3b82f6",
			Scheme: palette.Complementary.String(),
		},
		Display:  DisplayConfig{MaxWidth: 1024, MaxHeight: 600},
		Dominant: DominantConfig{Count: 5, MergeDistance: 0.03},
	}
}

// SchemeValue returns the configured scheme. It assumes the config has been
// validated and falls back to complementary otherwise.
func (c *Config) SchemeValue() palette.Scheme {
	s, err := palette.ParseScheme(c.Palette.Scheme)
	if err != nil {
		return palette.Complementary
	}
	return s
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path yields the validated defaults. Keys missing from the
// file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, Validate(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewParseError(path, 0, err)
	}
	defer f.Close()

	if err := decode(f, cfg); err != nil {
		return nil, NewParseError(path, extractLine(err), err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(bytes.NewReader(data), cfg); err != nil {
		return nil, NewParseError("<inline>", extractLine(err), err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg from environment variables obtained through
// lookup, normally os.LookupEnv, and revalidates it.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvBaseColor); ok && v != "" {
		cfg.Palette.Base = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvScheme); ok && v != "" {
		cfg.Palette.Scheme = strings.ToLower(strings.TrimSpace(v))
	}
	return Validate(cfg)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
