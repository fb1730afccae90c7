package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Bibliography.File != "" {
		t.Errorf("Bibliography.File = %q, want empty", cfg.Bibliography.File)
	}
	if diff := cmp.Diff([]string{"source"}, cfg.Bibliography.SearchPaths); diff != "" {
		t.Errorf("Bibliography.SearchPaths mismatch (-want +got):\n%s", diff)
	}
	if cfg.Macros.DisableLinks || cfg.Macros.DisableInline {
		t.Error("macros disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name: "valid config passes",
			modify: func(c *Config) {
				c.Input.Format = "Markdown"
				c.Bibliography.File = "refs.bib"
				c.Bibliography.Order = "alphabetical"
				c.Bibliography.Locale = "fr-FR"
				c.Styles.Name = "ieee"
				c.Styles.CitationTemplate = "($id)"
			},
		},
		{
			name:    "unknown input format",
			modify:  func(c *Config) { c.Input.Format = "rst" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown order",
			modify:  func(c *Config) { c.Bibliography.Order = "shuffled" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "malformed locale",
			modify:  func(c *Config) { c.Bibliography.Locale = "not a locale" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "style name with path separator",
			modify:  func(c *Config) { c.Styles.Name = "../ieee" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "template without placeholder",
			modify:  func(c *Config) { c.Styles.CitationTemplate = "[]" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "template too long",
			modify:  func(c *Config) { c.Styles.CitationTemplate = "[$id" + strings.Repeat("]", MaxTemplateLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name: "too many search paths",
			modify: func(c *Config) {
				c.Bibliography.SearchPaths = make([]string, MaxSearchPaths+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "search path too long",
			modify:  func(c *Config) { c.Bibliography.SearchPaths = []string{strings.Repeat("a", MaxPathLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "short name field too long",
			modify:  func(c *Config) { c.Styles.ShortNameField = strings.Repeat("f", MaxFieldLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `bibliography:
  file: "refs.bib"
  order: "alphabetical"
  strict: true
styles:
  name: "ieee"
  citationTemplate: "($id)"
macros:
  disableLinks: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		want := DefaultConfig()
		want.Bibliography.File = "refs.bib"
		want.Bibliography.Order = "alphabetical"
		want.Bibliography.Strict = true
		want.Styles.Name = "ieee"
		want.Styles.CitationTemplate = "($id)"
		want.Macros.DisableLinks = true
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit search paths replace defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "bibliography:\n  searchPaths: [refs, shared/refs]\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if diff := cmp.Diff([]string{"refs", "shared/refs"}, cfg.Bibliography.SearchPaths); diff != "" {
			t.Errorf("SearchPaths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("adocbib-missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "adocbib-missing-config.yml") {
			t.Errorf("error %q does not list tried paths", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "styles: [unclosed"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "styles:\n  name: ieee\nfooter: true\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "bibliography:\n  order: random\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestSearchedPaths(t *testing.T) {
	t.Parallel()

	paths := SearchedPaths("work")
	if len(paths) < 2 {
		t.Fatalf("SearchedPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("local candidates = %v, want work.yaml then work.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q outside %s", p, AppName)
		}
	}
}
