package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "ADOCBIB_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Citation settings, applied above document attributes
	BibtexFile       string // ADOCBIB_BIBTEX_FILE: bibliography file or glob
	Style            string // ADOCBIB_STYLE: citation style name
	Locale           string // ADOCBIB_LOCALE: BCP 47 tag
	Order            string // ADOCBIB_ORDER: appearance, alphabetical
	Strict           *bool  // ADOCBIB_STRICT: unknown keys abort
	CitationTemplate string // ADOCBIB_CITATION_TEMPLATE: "[$id]"

	// I/O and runtime
	ConfigPath string     // ADOCBIB_CONFIG: config file name or path
	StyleDir   string     // ADOCBIB_STYLE_DIR: custom style directory
	InputDir   string     // ADOCBIB_INPUT_DIR: default input directory
	OutputDir  string     // ADOCBIB_OUTPUT_DIR: default output directory
	Workers    int        // ADOCBIB_WORKERS: parallel workers
	LogLevel   slog.Level // ADOCBIB_LOG_LEVEL: debug, info, warn, error
	HasLevel   bool
}

// knownEnvVars lists valid ADOCBIB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ADOCBIB_BIBTEX_FILE":       true,
	"ADOCBIB_STYLE":             true,
	"ADOCBIB_LOCALE":            true,
	"ADOCBIB_ORDER":             true,
	"ADOCBIB_STRICT":            true,
	"ADOCBIB_CITATION_TEMPLATE": true,
	"ADOCBIB_CONFIG":            true,
	"ADOCBIB_STYLE_DIR":         true,
	"ADOCBIB_INPUT_DIR":         true,
	"ADOCBIB_OUTPUT_DIR":        true,
	"ADOCBIB_WORKERS":           true,
	"ADOCBIB_LOG_LEVEL":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, booleans and levels are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		BibtexFile:       getenv("ADOCBIB_BIBTEX_FILE"),
		Style:            getenv("ADOCBIB_STYLE"),
		Locale:           getenv("ADOCBIB_LOCALE"),
		Order:            getenv("ADOCBIB_ORDER"),
		CitationTemplate: getenv("ADOCBIB_CITATION_TEMPLATE"),
		ConfigPath:       getenv("ADOCBIB_CONFIG"),
		StyleDir:         getenv("ADOCBIB_STYLE_DIR"),
		InputDir:         getenv("ADOCBIB_INPUT_DIR"),
		OutputDir:        getenv("ADOCBIB_OUTPUT_DIR"),
	}

	if strict := getenv("ADOCBIB_STRICT"); strict != "" {
		if b, err := strconv.ParseBool(strict); err == nil {
			cfg.Strict = &b
		}
	}

	if workers := getenv("ADOCBIB_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if level := getenv("ADOCBIB_LOG_LEVEL"); level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			cfg.LogLevel = l
			cfg.HasLevel = true
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized ADOCBIB_* variables.
// Helps catch typos like ADOCBIB_STYEL instead of ADOCBIB_STYLE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies the I/O variables to cfg. Environment values win
// over the config file and lose to flags, which are merged later.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.StyleDir != "" {
		cfg.Styles.Dir = env.StyleDir
	}
}

// settings returns the citation settings carried by the environment.
func (e *envConfig) settings() adocbib.Settings {
	return adocbib.Settings{
		Bibliography:     e.BibtexFile,
		Style:            e.Style,
		Locale:           e.Locale,
		Order:            e.Order,
		Strict:           e.Strict,
		CitationTemplate: e.CitationTemplate,
	}
}
