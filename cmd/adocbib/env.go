package main

import (
	"io"
	"os"

	"github.com/alnah/go-adocbib/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, the process environment and the loaded configuration.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Config  *config.Config // Replaced by --config, shared across the batch
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Config:  config.DefaultConfig(),
	}
}
