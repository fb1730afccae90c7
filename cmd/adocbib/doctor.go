package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/bib"
	"github.com/alnah/go-adocbib/internal/config"
	"github.com/alnah/go-adocbib/internal/yamlutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status       string           `json:"status"` // "ready", "warnings", "errors"
	Config       configInfo       `json:"config"`
	Styles       stylesInfo       `json:"styles"`
	Bibliography bibliographyInfo `json:"bibliography"`
	System       systemInfo       `json:"system"`
	Warnings     []string         `json:"warnings,omitempty"`
	Errors       []string         `json:"errors,omitempty"`

	effective *config.Config
}

// configInfo holds config file results.
type configInfo struct {
	Source string `json:"source"` // file path or "defaults"
	Valid  bool   `json:"valid"`
}

// stylesInfo holds style loading results.
type stylesInfo struct {
	Dir     string   `json:"dir,omitempty"`
	Count   int      `json:"count"`
	Invalid []string `json:"invalid,omitempty"`
}

// bibliographyInfo holds bibliography resolution results.
type bibliographyInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Entries int    `json:"entries"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config     string
	bibtexFile string
	styleDir   string
	json       bool
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var f doctorFlags
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.bibtexFile, "bibtex-file", "b", "", "bibliography to parse")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory of custom YAML styles")
	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(f, loadEnvConfig(env.Getenv))

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(f doctorFlags, envCfg *envConfig) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	cfg := checkConfig(result, f, envCfg)
	result.effective = cfg
	checkStyles(result, cfg)
	checkBibliography(result, f, envCfg, cfg)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the configuration the render command would use.
func checkConfig(result *doctorResult, f doctorFlags, envCfg *envConfig) *config.Config {
	cfg := config.DefaultConfig()
	result.Config.Source = "defaults"

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
			return cfg
		}
		cfg = loaded
		result.Config.Source = name
	}
	result.Config.Valid = true

	applyEnvConfig(envCfg, cfg)
	if f.styleDir != "" {
		cfg.Styles.Dir = f.styleDir
	}
	return cfg
}

// checkStyles parses every available style.
func checkStyles(result *doctorResult, cfg *config.Config) {
	result.Styles.Dir = cfg.Styles.Dir

	opts := []adocbib.Option{adocbib.WithLogger(slog.New(slog.DiscardHandler))}
	if cfg.Styles.Dir != "" {
		opts = append(opts, adocbib.WithStyleDir(cfg.Styles.Dir))
	}
	conv, err := adocbib.NewConverter(opts...)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Styles: %v", err))
		return
	}
	names, err := conv.Styles()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Styles: %v", err))
		return
	}

	result.Styles.Count = len(names)
	for _, name := range names {
		if _, err := conv.Style(name); err != nil {
			result.Styles.Invalid = append(result.Styles.Invalid, name)
			result.Errors = append(result.Errors, fmt.Sprintf("Style %s: %v", name, err))
		}
	}

	if cfg.Styles.Name != "" {
		if _, err := conv.Style(cfg.Styles.Name); err != nil && !contains(result.Styles.Invalid, cfg.Styles.Name) {
			result.Errors = append(result.Errors, fmt.Sprintf("Configured style %s: %v", cfg.Styles.Name, err))
		}
	}
}

// checkBibliography resolves and parses the bibliography a document without
// its own setting would use. Finding none is only a warning.
func checkBibliography(result *doctorResult, f doctorFlags, envCfg *envConfig, cfg *config.Config) {
	name := f.bibtexFile
	if name == "" {
		name = envCfg.BibtexFile
	}
	if name == "" {
		name = cfg.Bibliography.File
	}

	dirs := append([]string{"."}, cfg.Bibliography.SearchPaths...)
	path, err := bib.Resolve(name, dirs...)
	if err != nil {
		if name == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("No %s found in %s; documents must name their bibliography", bib.DefaultPattern, strings.Join(dirs, ", ")))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Bibliography: %v", err))
		return
	}

	store, err := bib.Load(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Bibliography: %v", err))
		return
	}
	result.Bibliography.Found = true
	result.Bibliography.Path = path
	result.Bibliography.Entries = store.Len()
	if store.Len() == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Bibliography %s has no entries", path))
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	// Check temp directory is writable
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "adocbib-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "adocbib doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintln(w, "  [ERROR] Config file could not be loaded")
	}
	if r.effective != nil {
		if out, err := yamlutil.Marshal(r.effective); err == nil {
			for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
				fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Styles")
	if len(r.Styles.Invalid) == 0 && r.Styles.Count > 0 {
		fmt.Fprintf(w, "  [OK] %d styles parsed\n", r.Styles.Count)
	} else {
		fmt.Fprintf(w, "  [ERROR] %d of %d styles invalid\n", len(r.Styles.Invalid), r.Styles.Count)
	}
	if r.Styles.Dir != "" {
		fmt.Fprintf(w, "  [OK] Custom directory: %s\n", r.Styles.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bibliography")
	if r.Bibliography.Found {
		fmt.Fprintf(w, "  [OK] %s (%d entries)\n", r.Bibliography.Path, r.Bibliography.Entries)
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.System.OS, r.System.Arch)
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
