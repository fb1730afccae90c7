package main

import (
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Usage: adocbib <command>"},
		{[]string{"render"}, "Usage: adocbib render"},
		{[]string{"watch"}, "--debounce"},
		{[]string{"postprocess"}, "Usage: adocbib postprocess"},
		{[]string{"styles"}, "Usage: adocbib styles"},
		{[]string{"doctor"}, "--json"},
		{[]string{"version"}, "Usage: adocbib version"},
		{[]string{"help"}, "Usage: adocbib help"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := newTestEnv(nil)
			runHelp(tt.args, env)
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("runHelp(%v) = %q, want to contain %q", tt.args, stdout, tt.want)
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv(nil)
	runHelp([]string{"convert"}, env)

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr.String(), "Unknown command: convert") {
		t.Errorf("stderr = %q", stderr)
	}
}

// TestRenderUsage_ListsEveryFlag keeps the help text in sync with the flag set.
func TestRenderUsage_ListsEveryFlag(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil)
	runHelp([]string{"watch"}, env)
	help := stdout.String()

	f := &renderFlags{}
	fs := newRenderFlagSet("watch", f, printWatchUsage)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "")
	fs.VisitAll(func(fl *flag.Flag) {
		if !strings.Contains(help, "--"+fl.Name) {
			t.Errorf("help does not mention --%s", fl.Name)
		}
	})
}
