package main

// Notes:
// - Test infrastructure shared by the command tests: an injectable
//   Environment over buffers and a map, a recording mock converter, and
//   document fixtures written to t.TempDir.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/config"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// newTestEnv returns an Environment writing to buffers and reading vars.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		Config: config.DefaultConfig(),
	}
	return env, stdout, stderr
}

// ---------------------------------------------------------------------------
// Mock converter
// ---------------------------------------------------------------------------

// mockConverter records inputs and upper-cases the content. Paths listed in
// fail return failErr.
type mockConverter struct {
	mu      sync.Mutex
	inputs  []adocbib.Input
	fail    map[string]bool
	failErr error
}

func (m *mockConverter) Convert(_ context.Context, input adocbib.Input) (*adocbib.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.fail[filepath.Base(input.Path)] {
		err := m.failErr
		if err == nil {
			err = errors.New("mock failure")
		}
		return nil, err
	}
	res := &adocbib.Result{
		Text:      strings.ToUpper(input.Content),
		Citations: []string{"knuth84"},
	}
	if input.HTML {
		res.HTML = "<p>" + input.Content + "</p>"
		res.ReadingTime = 1
	}
	return res, nil
}

func (m *mockConverter) calls() []adocbib.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adocbib.Input(nil), m.inputs...)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const refsBib = `@book{knuth84,
  author    = {Donald E. Knuth},
  title     = {The TeXbook},
  publisher = {Addison-Wesley},
  year      = {1984}
}
`

const citingDoc = `= Notes

See cite:[knuth84].

bibliography::refs.bib[]
`

// writeFiles creates files under dir; keys are slash-separated paths.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// testSetup returns a renderSetup with defaults and a discarded logger.
func testSetup(t *testing.T, output string) *renderSetup {
	t.Helper()

	env, _, _ := newTestEnv(nil)
	flags, _, err := parseRenderFlags([]string{"--quiet"})
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}
	flags.output = output
	setup, err := prepareRender(flags, env)
	if err != nil {
		t.Fatalf("prepareRender() error = %v", err)
	}
	return setup
}
