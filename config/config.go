// Package config loads code generation settings from YAML, TOML or JSON
// files.
//
// A config file names the template, an optional data file whose top-level
// keys become template globals, and the output settings:
//
//	template: templates/model.tmpl
//	globals: data/model.yaml
//	output: gen
//	new_line: lf
//	indent: tab
//	snake_case: true
//	culture: de-DE
//
// Relative paths are resolved against the directory of the config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/codegen"
)

// FileNames are the config file names Find looks for, in order.
var FileNames = []string{"codegen.yaml", "codegen.yml", "codegen.toml", "codegen.json"}

// Config holds the settings of one generation run.
type Config struct {
	// Template is the path of the template file. Required.
	Template string `json:"template" yaml:"template" toml:"template" jsonschema:"description=Path of the template file"`

	// Globals is the path of a YAML, TOML or JSON data file whose top-level
	// keys are bound as template globals. Optional.
	Globals string `json:"globals,omitempty" yaml:"globals,omitempty" toml:"globals,omitempty" jsonschema:"description=Path of a data file bound as template globals"`

	// Output is the directory generated files are written to.
	// Default: the config file's directory.
	Output string `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" jsonschema:"description=Output directory"`

	// NewLine is the line terminator: "lf", "crlf" or "cr".
	// Empty means the platform default.
	NewLine string `json:"new_line,omitempty" yaml:"new_line,omitempty" toml:"new_line,omitempty" jsonschema:"enum=lf,enum=crlf,enum=cr"`

	// Indent re-expresses template indentation: "tab", a number of spaces,
	// or a literal run of spaces and tabs. Empty keeps indentation as is.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty" jsonschema:"description=tab or a number of spaces"`

	// SnakeCase exposes globals under snake_case names.
	SnakeCase bool `json:"snake_case,omitempty" yaml:"snake_case,omitempty" toml:"snake_case,omitempty"`

	// Culture is a BCP 47 language tag for the number and format helpers.
	Culture string `json:"culture,omitempty" yaml:"culture,omitempty" toml:"culture,omitempty" jsonschema:"description=BCP 47 language tag,example=en-US"`

	// SingleFile, when set, writes the whole rendered text to one file with
	// this name instead of splitting at markers.
	SingleFile string `json:"single_file,omitempty" yaml:"single_file,omitempty" toml:"single_file,omitempty"`

	// Dir is the directory of the loaded config file. Relative paths are
	// resolved against it.
	Dir string `json:"-" yaml:"-" toml:"-"`
}

// Load reads a config file, choosing the decoder by extension.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := decode(path, data, &cfg, true); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg.Dir = dir

	return &cfg, nil
}

// Find looks for a config file in dir and its parents and returns the path
// of the first one found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve dir: %w", err)
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// LoadFromEnv overrides fields from CODEGEN_* environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("CODEGEN_TEMPLATE"); v != "" {
		c.Template = v
	}
	if v := os.Getenv("CODEGEN_GLOBALS"); v != "" {
		c.Globals = v
	}
	if v := os.Getenv("CODEGEN_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("CODEGEN_NEW_LINE"); v != "" {
		c.NewLine = v
	}
	if v := os.Getenv("CODEGEN_INDENT"); v != "" {
		c.Indent = v
	}
	if v := os.Getenv("CODEGEN_SNAKE_CASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SnakeCase = b
		}
	}
	if v := os.Getenv("CODEGEN_CULTURE"); v != "" {
		c.Culture = v
	}
	if v := os.Getenv("CODEGEN_SINGLE_FILE"); v != "" {
		c.SingleFile = v
	}
}

// Validate checks that the config can be used for generation.
func (c *Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("%w: template is required", ErrInvalid)
	}
	_, err := c.Settings()
	return err
}

// Path resolves p against the config directory. Absolute and empty paths
// are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// TemplatePath returns the resolved template path.
func (c *Config) TemplatePath() string {
	return c.Path(c.Template)
}

// GlobalsPath returns the resolved globals data path, or "" if unset.
func (c *Config) GlobalsPath() string {
	return c.Path(c.Globals)
}

// OutputDir returns the resolved output directory.
func (c *Config) OutputDir() string {
	if c.Output == "" {
		if c.Dir == "" {
			return "."
		}
		return c.Dir
	}
	return c.Path(c.Output)
}

// Settings converts the config to generation settings.
func (c *Config) Settings() (codegen.Settings, error) {
	var s codegen.Settings

	newLine, err := ParseNewLine(c.NewLine)
	if err != nil {
		return s, err
	}
	indent, err := ParseIndent(c.Indent)
	if err != nil {
		return s, err
	}

	s.NewLine = newLine
	s.IndentText = indent
	s.UseSnakeCase = c.SnakeCase
	s.SingleFileName = c.SingleFile

	if c.Culture != "" {
		tag, err := language.Parse(c.Culture)
		if err != nil {
			return s, fmt.Errorf("%w: culture %q: %w", ErrInvalid, c.Culture, err)
		}
		s.Culture = tag
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return s, nil
}

// ParseNewLine converts a new_line value to a line terminator.
// Literal terminators are accepted as well as their names.
func ParseNewLine(v string) (string, error) {
	switch strings.ToLower(v) {
	case "":
		return "", nil
	case "lf", "\n", `\n`:
		return "\n", nil
	case "crlf", "\r\n", `\r\n`:
		return "\r\n", nil
	case "cr", "\r", `\r`:
		return "\r", nil
	default:
		return "", fmt.Errorf("%w: new_line %q is not lf, crlf or cr", ErrInvalid, v)
	}
}

// ParseIndent converts an indent value to an indent unit.
func ParseIndent(v string) (string, error) {
	switch {
	case v == "":
		return "", nil
	case strings.EqualFold(v, "tab"), v == `\t`:
		return "\t", nil
	case strings.Trim(v, " \t") == "":
		return v, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 16 {
		return "", fmt.Errorf("%w: indent %q is not tab or a number of spaces from 1 to 16", ErrInvalid, v)
	}
	return strings.Repeat(" ", n), nil
}

// LoadData reads a YAML, TOML or JSON data file into a map.
func LoadData(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	values := make(map[string]any)
	if err := decode(path, data, &values, false); err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return values, nil
}

// decode unmarshals data by the extension of path. JSON is decoded as YAML.
func decode(path string, data []byte, v any, strict bool) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
