package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-adocbib/internal/fileutil"
	"github.com/alnah/go-adocbib/internal/logfields"
)

// defaultDebounce is the quiet period between the last change and a render.
const defaultDebounce = 300 * time.Millisecond

// Files whose change triggers a render besides documents.
var watchedExtensions = []string{".bib", ".yaml", ".yml"}

// runWatchCmd implements "adocbib watch": one render up front, then one per
// burst of changes until ctx is canceled.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if flags.debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidFlags, flags.debounce)
	}

	setup, err := prepareRender(flags, env)
	if err != nil {
		return err
	}
	if setup.output == stdoutOutput {
		return fmt.Errorf("%w: watch writes files", ErrStdoutBatch)
	}
	conv, err := newConverter(setup)
	if err != nil {
		return err
	}
	inputPath, err := resolveInputPath(positional, setup.cfg)
	if err != nil {
		return err
	}

	render := func() {
		if err := runRender(ctx, conv, inputPath, setup, env); err != nil && ctx.Err() == nil {
			setup.logger.Error("render failed", logfields.Error(err))
		}
	}
	render()

	watcher, err := setupFileWatcher(watchRoots(inputPath, setup), setup.logger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	renderReq, trigger := setupDebouncer(flags.debounce)
	ignoreDir := outputDirOf(setup.output)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, ignoreDir, setup.logger, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			setup.logger.Warn("watcher error", logfields.Error(err))
		case <-renderReq:
			setup.logger.Info("change detected; rendering")
			render()
		}
	}
}

// watchRoots returns the directories to watch: the input tree and the
// directory of a configured bibliography.
func watchRoots(inputPath string, setup *renderSetup) []string {
	roots := []string{inputPath}
	if !fileutil.DirExists(inputPath) {
		roots[0] = filepath.Dir(inputPath)
	}

	bib := setup.flags.citation.bibtexFile
	if bib == "" {
		bib = setup.env.BibtexFile
	}
	if bib == "" {
		bib = setup.cfg.Bibliography.File
	}
	if bib != "" {
		dir := filepath.Dir(bib)
		if !strings.ContainsAny(dir, "*?[") && fileutil.DirExists(dir) {
			roots = append(roots, dir)
		}
	}
	if setup.cfg.Styles.Dir != "" && fileutil.DirExists(setup.cfg.Styles.Dir) {
		roots = append(roots, setup.cfg.Styles.Dir)
	}
	return roots
}

// outputDirOf returns the output directory whose writes must not trigger
// renders, or "" when outputs land next to their sources.
func outputDirOf(output string) string {
	if output == "" || isDocumentPath(output) {
		return ""
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return ""
	}
	return abs
}

// setupFileWatcher creates a watcher over every directory under roots.
func setupFileWatcher(roots []string, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range roots {
		if err := addDirsRecursive(watcher, root, logger); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return watcher, nil
}

// setupDebouncer returns a render request channel and a trigger that sends
// on it once no trigger has fired for the quiet period.
func setupDebouncer(quiet time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	renderReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, func() {
			select {
			case renderReq <- struct{}{}:
			default:
			}
		})
	}

	return renderReq, trigger
}

// handleFileEvent starts watching new directories and triggers a render for
// relevant changes.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, ignoreDir string, logger *slog.Logger, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || isUnder(ev.Name, ignoreDir) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name, logger)
			return
		}
	}
	if !isDocumentPath(ev.Name) && !fileutil.HasExtension(ev.Name, watchedExtensions...) {
		return
	}
	logger.Debug("file change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("watch add failed", slog.String("dir", path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger renders: hidden files, editor leftovers and rendered outputs.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}

	return isDocumentPath(path) && isRenderedOutput(path)
}

// isUnder reports whether path lies inside dir.
func isUnder(path, dir string) bool {
	if dir == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
