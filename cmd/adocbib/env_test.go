package main

import (
	"os"
	"testing"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("DefaultEnv() does not write to the process streams")
	}
	if env.Getenv == nil || env.Environ == nil {
		t.Fatal("DefaultEnv() has nil environment accessors")
	}
	if env.Config == nil {
		t.Fatal("DefaultEnv() Config is nil")
	}
	if err := env.Config.Validate(); err != nil {
		t.Errorf("DefaultEnv() Config invalid: %v", err)
	}
}
