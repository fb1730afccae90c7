// Package config loads the YAML configuration file of the adocbib CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/fileutil"
	"github.com/alnah/go-adocbib/internal/style"
	"github.com/alnah/go-adocbib/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxStyleLength    = 100  // "association-for-computing-machinery"
	MaxLocaleLength   = 35   // BCP 47 tags with extensions
	MaxTemplateLength = 50   // "[$id]", "($id)"
	MaxFieldLength    = 50   // BibTeX field name
	MaxSearchPaths    = 32
)

// AppName names the user config directory.
const AppName = "go-adocbib"

// Config holds all configuration for citation processing.
type Config struct {
	Input        InputConfig        `yaml:"input"`
	Output       OutputConfig       `yaml:"output"`
	Bibliography BibliographyConfig `yaml:"bibliography"`
	Styles       StylesConfig       `yaml:"styles"`
	Macros       MacrosConfig       `yaml:"macros"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Format     string `yaml:"format"`     // "asciidoc", "markdown" (empty = by extension)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir     string `yaml:"defaultDir"`     // Default output directory (empty = next to source)
	HTML           bool   `yaml:"html"`           // Also write HTML for Markdown inputs
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for HTML code blocks
}

// BibliographyConfig defines where BibTeX files are found and how cited
// entries are ordered.
type BibliographyConfig struct {
	File        string   `yaml:"file"`        // Used when a document names none
	SearchPaths []string `yaml:"searchPaths"` // Tried after the document directory
	Order       string   `yaml:"order"`       // "appearance", "alphabetical"
	Locale      string   `yaml:"locale"`      // BCP 47 tag (default: "en-US")
	Strict      bool     `yaml:"strict"`      // Unknown keys abort the document
}

// StylesConfig defines citation style options.
type StylesConfig struct {
	Name             string `yaml:"name"`             // Default style
	Dir              string `yaml:"dir"`              // Custom style directory (empty = built-in only)
	CitationTemplate string `yaml:"citationTemplate"` // "<prefix>$id<suffix>"
	ShortNameField   string `yaml:"shortNameField"`   // BibTeX field used as label (default: "refname")
}

// MacrosConfig toggles macro handling.
type MacrosConfig struct {
	DisableLinks  bool `yaml:"disableLinks"`  // Plain text citations, no anchors
	DisableInline bool `yaml:"disableInline"` // Leave github:, man: and sidenote: as is
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Input.Format) {
	case "", "asciidoc", "markdown":
		// valid
	default:
		return fmt.Errorf("%w: input.format %q (must be asciidoc or markdown)", ErrInvalidValue, c.Input.Format)
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.highlightStyle", c.Output.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}

	if err := c.validateBibliography(); err != nil {
		return err
	}
	return c.validateStyles()
}

func (c *Config) validateBibliography() error {
	b := c.Bibliography
	if err := validateFieldLength("bibliography.file", b.File, MaxPathLength); err != nil {
		return err
	}
	if len(b.SearchPaths) > MaxSearchPaths {
		return fmt.Errorf("%w: bibliography.searchPaths (%d entries, max %d)", ErrFieldTooLong, len(b.SearchPaths), MaxSearchPaths)
	}
	for i, p := range b.SearchPaths {
		if err := validateFieldLength(fmt.Sprintf("bibliography.searchPaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(b.Order) {
	case "", "appearance", "alphabetical":
		// valid
	default:
		return fmt.Errorf("%w: bibliography.order %q (must be appearance or alphabetical)", ErrInvalidValue, b.Order)
	}

	if err := validateFieldLength("bibliography.locale", b.Locale, MaxLocaleLength); err != nil {
		return err
	}
	if b.Locale != "" {
		if _, err := language.Parse(b.Locale); err != nil {
			return fmt.Errorf("%w: bibliography.locale %q: %v", ErrInvalidValue, b.Locale, err)
		}
	}
	return nil
}

func (c *Config) validateStyles() error {
	s := c.Styles
	if err := validateFieldLength("styles.name", s.Name, MaxStyleLength); err != nil {
		return err
	}
	if s.Name != "" {
		if err := style.ValidateName(s.Name); err != nil {
			return fmt.Errorf("%w: styles.name: %v", ErrInvalidValue, err)
		}
	}
	if err := validateFieldLength("styles.dir", s.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("styles.citationTemplate", s.CitationTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if s.CitationTemplate != "" && !strings.Contains(s.CitationTemplate, "$id") {
		return fmt.Errorf("%w: styles.citationTemplate %q (must contain $id)", ErrInvalidValue, s.CitationTemplate)
	}
	return validateFieldLength("styles.shortNameField", s.ShortNameField, MaxFieldLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: built-in styles, links and
// inline macros on, no bibliography file.
func DefaultConfig() *Config {
	return &Config{
		Input:        InputConfig{DefaultDir: ""},
		Output:       OutputConfig{DefaultDir: ""},
		Bibliography: BibliographyConfig{SearchPaths: []string{"source"}},
		Styles:       StylesConfig{},
		Macros:       MacrosConfig{},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchedPaths lists the files LoadConfig tries for a config name, in
// order.
func SearchedPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: the current
// directory first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	tried := SearchedPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
