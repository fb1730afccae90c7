// Package logfields holds the canonical slog attribute names used across
// the module.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCitationKey = "key"
	KeyFile        = "file"
	KeyOutput      = "output"
	KeyStyle       = "style"
	KeyLocale      = "locale"
	KeyMacro       = "macro"
	KeyLine        = "line"
	KeyStage       = "stage"
	KeyCount       = "count"
	KeyWorkers     = "workers"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

func CitationKey(k string) slog.Attr  { return slog.String(KeyCitationKey, k) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Style(name string) slog.Attr     { return slog.String(KeyStyle, name) }
func Locale(tag string) slog.Attr     { return slog.String(KeyLocale, tag) }
func Macro(text string) slog.Attr     { return slog.String(KeyMacro, text) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Error returns an error attribute; a nil error logs as "".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
