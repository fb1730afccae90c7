package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions), which no caller passes.
// - TestInputSizeLimit modifies the package-level MaxInputSize and does not
//   run in parallel.

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-adocbib/internal/yamlutil"
)

type testStyle struct {
	Name    string            `yaml:"name"`
	Format  string            `yaml:"format"`
	Authors int               `yaml:"authors"`
	Types   map[string]string `yaml:"types"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML, rejecting unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		want    *testStyle
		wantErr error
		errText string
	}{
		{
			name: "valid YAML",
			data: []byte("name: ieee\nformat: numeric\nauthors: 6\ntypes:\n  book: '{{.Title}}'\n"),
			dest: &testStyle{},
			want: &testStyle{Name: "ieee", Format: "numeric", Authors: 6, Types: map[string]string{"book": "{{.Title}}"}},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testStyle{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: ieee"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "unknown field",
			data:    []byte("name: ieee\ncolour: red\n"),
			dest:    &testStyle{},
			errText: "colour",
		},
		{
			name:    "syntax error",
			data:    []byte("name: [unclosed"),
			dest:    &testStyle{},
			errText: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.errText != "":
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("error = %v, want mention of %q", err, tt.errText)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.dest); diff != "" {
				t.Errorf("UnmarshalStrict() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeFile - Reads and decodes a file
// ---------------------------------------------------------------------------

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	t.Run("decodes file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "style.yaml")
		if err := os.WriteFile(path, []byte("name: apa\nformat: author-date\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		var got testStyle
		if err := yamlutil.DecodeFile(path, &got); err != nil {
			t.Fatalf("DecodeFile() error = %v", err)
		}
		if got.Name != "apa" || got.Format != "author-date" {
			t.Errorf("DecodeFile() = %+v", got)
		}
	})

	t.Run("missing file keeps fs.ErrNotExist", func(t *testing.T) {
		t.Parallel()

		var got testStyle
		err := yamlutil.DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"), &got)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Encodes values back to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	original := testStyle{Name: "apa", Format: "author-date", Authors: 20}
	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "name: apa") {
		t.Errorf("Marshal() = %q, want name field", data)
	}

	var decoded testStyle
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 101)
		copy(data, []byte("name: x"))
		var s testStyle
		err := yamlutil.UnmarshalStrict(data, &s)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "101 bytes") {
			t.Errorf("error should contain actual size, got: %s", err)
		}
	})

	t.Run("DecodeFile checks size before reading", func(t *testing.T) {
		yamlutil.MaxInputSize = 10
		path := filepath.Join(t.TempDir(), "big.yaml")
		if err := os.WriteFile(path, []byte("name: much-longer-than-ten\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		var s testStyle
		err := yamlutil.DecodeFile(path, &s)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}
