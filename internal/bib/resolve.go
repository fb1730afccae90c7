package bib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern is searched when no bibliography name is given.
const DefaultPattern = "*.bib"

// Resolve locates a bibliography file. name may be a path or a glob pattern.
// An existing file at name wins; otherwise name is globbed in each of dirs in
// order and the first regular file, lexically, is returned.
func Resolve(name string, dirs ...string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPattern
	}

	if isRegularFile(name) {
		return name, nil
	}
	if filepath.IsAbs(name) {
		if p := firstMatch(name); p != "" {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if p := firstMatch(filepath.Join(dir, name)); p != "" {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q (searched %s)", ErrNotFound, name, strings.Join(nonEmpty(dirs), ", "))
}

func firstMatch(pattern string) string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return ""
	}
	sort.Strings(matches)
	for _, m := range matches {
		if isRegularFile(m) {
			return m
		}
	}
	return ""
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func nonEmpty(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
