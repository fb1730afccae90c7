package main

import (
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/config"
)

// runStylesCmd implements "adocbib styles": one line per style with its
// citation kind, the default marked with "*".
func runStylesCmd(args []string, env *Environment) error {
	var configName, styleDir string
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.StringVar(&styleDir, "style-dir", "", "directory of custom YAML styles")
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	if styleDir == "" {
		styleDir = loadEnvConfig(env.Getenv).StyleDir
	}
	if styleDir == "" && configName != "" {
		cfg, err := config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		styleDir = cfg.Styles.Dir
	}

	opts := []adocbib.Option{adocbib.WithLogger(slog.New(slog.DiscardHandler))}
	if styleDir != "" {
		opts = append(opts, adocbib.WithStyleDir(styleDir))
	}
	conv, err := adocbib.NewConverter(opts...)
	if err != nil {
		return fmt.Errorf("initializing converter: %w", err)
	}

	names, err := conv.Styles()
	if err != nil {
		return err
	}
	for _, name := range names {
		kind := "author-date"
		st, err := conv.Style(name)
		switch {
		case err != nil:
			kind = "invalid: " + err.Error()
		case st.Numeric():
			kind = "numeric"
		}
		marker := " "
		if name == adocbib.DefaultStyle {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %-40s %s\n", marker, name, kind)
	}
	return nil
}
