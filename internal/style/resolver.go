package style

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Resolver combines a custom directory with the built-in styles. Custom
// styles win; the built-in set is used only when a style is not found.
// Parsed styles are cached, so a Resolver is safe for concurrent use.
type Resolver struct {
	custom   Loader // nil without a custom directory
	embedded Loader

	mu     sync.Mutex
	parsed map[string]parsedStyle
}

// parsedStyle is reused while the definition it was parsed from is unchanged.
type parsedStyle struct {
	data  []byte
	style *Style
}

// NewResolver creates a Resolver. An empty customBasePath uses built-in
// styles only.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{
		embedded: NewEmbeddedLoader(),
		parsed:   make(map[string]parsedStyle),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadStyle returns the raw definition, custom first.
func (r *Resolver) LoadStyle(name string) ([]byte, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	// validation and I/O errors are not masked by the built-in set
	if !errors.Is(err, ErrStyleNotFound) {
		return nil, err
	}
	return r.embedded.LoadStyle(name)
}

// ListStyles returns the union of custom and built-in style names.
func (r *Resolver) ListStyles() ([]string, error) {
	names, err := r.embedded.ListStyles()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.ListStyles()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	var all []string
	for _, name := range append(names, custom...) {
		if !seen[name] {
			seen[name] = true
			all = append(all, name)
		}
	}
	sort.Strings(all)
	return all, nil
}

// Style loads and parses a style. The definition is read on every call and
// parsed again only when its content changed, so edits to a custom style
// are picked up by a long-lived Resolver.
func (r *Resolver) Style(name string) (*Style, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.LoadStyle(name)
	if err != nil {
		return nil, err
	}
	if cached, ok := r.parsed[name]; ok && bytes.Equal(cached.data, data) {
		return cached.style, nil
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("style %q: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}

	r.parsed[name] = parsedStyle{data: data, style: s}
	return s, nil
}

// HasCustomLoader reports whether a custom style directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
