package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper keys stay stable for log consumers.
func TestHelperKeyNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		key  string
		attr slog.Attr
	}{
		{"CitationKey", KeyCitationKey, CitationKey("knuth84")},
		{"File", KeyFile, File("paper.adoc")},
		{"Output", KeyOutput, Output("paper.out.adoc")},
		{"Style", KeyStyle, Style("ieee")},
		{"Locale", KeyLocale, Locale("en-US")},
		{"Macro", KeyMacro, Macro("cite:[a]")},
		{"Line", KeyLine, Line(3)},
		{"Stage", KeyStage, Stage("scan")},
		{"Count", KeyCount, Count(2)},
		{"Workers", KeyWorkers, Workers(4)},
		{"DurationMS", KeyDurationMS, DurationMS(1.5)},
		{"Error", KeyError, Error(errors.New("boom"))},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.key {
			t.Errorf("%s: key = %q, want %q", tc.name, tc.attr.Key, tc.key)
		}
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) = %q, want empty", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error(boom) = %q, want boom", got)
	}
}
