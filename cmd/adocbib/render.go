package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/config"
	"github.com/alnah/go-adocbib/internal/logfields"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrInvalidFlags    = errors.New("invalid flags")
	ErrInvalidFormat   = errors.New("format must be asciidoc or markdown")
	ErrStdoutBatch     = errors.New("output \"-\" needs a single input file")
	ErrReadDocument    = errors.New("failed to read document")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrLoadEnvFile     = errors.New("failed to load env file")
)

// stdoutOutput selects standard output as the render destination.
const stdoutOutput = "-"

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input adocbib.Input) (*adocbib.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*adocbib.Converter)(nil)

// renderSetup holds everything resolved once per invocation: the merged
// configuration, the converter options and the batch size.
type renderSetup struct {
	cfg     *config.Config
	flags   *renderFlags
	env     *envConfig
	logger  *slog.Logger
	workers int
	output  string // file, directory, "-" or empty (next to sources)
}

// runRenderCmd implements "adocbib render".
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	setup, err := prepareRender(flags, env)
	if err != nil {
		return err
	}
	conv, err := newConverter(setup)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, setup.cfg)
	if err != nil {
		return err
	}
	return runRender(ctx, conv, inputPath, setup, env)
}

// runRender discovers documents under inputPath and converts them.
func runRender(ctx context.Context, conv CLIConverter, inputPath string, setup *renderSetup, env *Environment) error {
	if setup.output == stdoutOutput {
		return renderToStdout(ctx, conv, inputPath, setup, env.Stdout)
	}

	files, err := discoverFiles(inputPath, setup.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no documents found in %s", ErrNoInput, inputPath)
	}

	setup.logger.Debug("rendering", logfields.Count(len(files)), logfields.Workers(setup.workers))
	results := convertBatch(ctx, conv, files, setup.workers, batchParamsFor(setup, len(files)))

	failed := printResults(results, setup.flags.common.quiet, setup.flags.common.verbose, env)
	if failed > 0 {
		return newBatchError(results)
	}
	return nil
}

// renderToStdout converts a single file and writes its text to w.
func renderToStdout(ctx context.Context, conv CLIConverter, inputPath string, setup *renderSetup, w io.Writer) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrStdoutBatch
	}
	if err := validateDocumentExtension(inputPath); err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	res, err := conv.Convert(ctx, adocbib.Input{
		Content: string(content),
		Path:    inputPath,
		Syntax:  setup.cfg.Input.Format,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	_, err = io.WriteString(w, res.Text)
	return err
}

// prepareRender layers the env file, environment variables, config file
// and flags.
func prepareRender(flags *renderFlags, env *Environment) (*renderSetup, error) {
	if flags.common.envFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(flags.common.envFile); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadEnvFile, err)
		}
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg := env.Config
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}

	workers := flags.workers
	if !flags.set["workers"] {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}

	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	return &renderSetup{
		cfg:     cfg,
		flags:   flags,
		env:     envCfg,
		logger:  newLogger(env.Stderr, flags.common, envCfg),
		workers: adocbib.ResolveWorkers(workers),
		output:  output,
	}, nil
}

// mergeFlags merges the non-citation CLI flags into config. CLI values
// override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) error {
	if flags.outputMode.format != "" {
		switch flags.outputMode.format {
		case "asciidoc", "markdown":
			cfg.Input.Format = flags.outputMode.format
		default:
			return fmt.Errorf("%w: got %q", ErrInvalidFormat, flags.outputMode.format)
		}
	}
	if flags.outputMode.html {
		cfg.Output.HTML = true
	}
	if flags.outputMode.highlight != "" {
		cfg.Output.HighlightStyle = flags.outputMode.highlight
	}
	if flags.citation.styleDir != "" {
		cfg.Styles.Dir = flags.citation.styleDir
	}
	if flags.citation.shortNameField != "" {
		cfg.Styles.ShortNameField = flags.citation.shortNameField
	}
	if flags.citation.noLinks {
		cfg.Macros.DisableLinks = true
	}
	if flags.citation.noInline {
		cfg.Macros.DisableInline = true
	}
	return nil
}

// newConverter builds the library converter. Config values are defaults the
// document may override; environment and flags override the document.
func newConverter(setup *renderSetup) (*adocbib.Converter, error) {
	cfg := setup.cfg
	opts := []adocbib.Option{
		adocbib.WithDefaults(configSettings(cfg)),
		adocbib.WithOverrides(setup.env.settings()),
		adocbib.WithOverrides(flagSettings(setup.flags)),
		adocbib.WithLinks(!cfg.Macros.DisableLinks),
		adocbib.WithInlineMacros(!cfg.Macros.DisableInline),
		adocbib.WithSearchPaths(cfg.Bibliography.SearchPaths...),
		adocbib.WithLogger(setup.logger),
	}
	if cfg.Styles.ShortNameField != "" {
		opts = append(opts, adocbib.WithShortNameField(cfg.Styles.ShortNameField))
	}
	if cfg.Styles.Dir != "" {
		opts = append(opts, adocbib.WithStyleDir(cfg.Styles.Dir))
	}
	if cfg.Output.HighlightStyle != "" {
		opts = append(opts, adocbib.WithHighlightStyle(cfg.Output.HighlightStyle))
	}

	conv, err := adocbib.NewConverter(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing converter: %w", err)
	}
	return conv, nil
}

// configSettings maps the config file onto library settings.
func configSettings(cfg *config.Config) adocbib.Settings {
	s := adocbib.Settings{
		Bibliography:     cfg.Bibliography.File,
		Style:            cfg.Styles.Name,
		Locale:           cfg.Bibliography.Locale,
		Order:            cfg.Bibliography.Order,
		CitationTemplate: cfg.Styles.CitationTemplate,
	}
	if cfg.Bibliography.Strict {
		strict := true
		s.Strict = &strict
	}
	return s
}

// flagSettings maps explicitly given citation flags onto library settings.
func flagSettings(flags *renderFlags) adocbib.Settings {
	f := flags.citation
	s := adocbib.Settings{
		Bibliography:     f.bibtexFile,
		Style:            f.style,
		Locale:           f.locale,
		Order:            f.order,
		CitationTemplate: f.citationTemplate,
	}
	if flags.set["strict"] {
		strict := f.strict
		s.Strict = &strict
	}
	return s
}

// resolveInputPath determines the input from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// newLogger returns a text logger on w. Degraded citations log at warn, so
// that is the default level.
func newLogger(w io.Writer, common commonFlags, env *envConfig) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	case env.HasLevel:
		level = env.LogLevel
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
