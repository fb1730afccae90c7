package bib

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nickng/bibtex"
)

// MaxFileSize bounds bibliography files read from disk.
const MaxFileSize = 16 * 1024 * 1024

// Store is an immutable key-indexed set of entries.
// It is safe for concurrent reads.
type Store struct {
	path    string
	entries map[string]*Entry
	keys    []string // file order
}

// NewStore builds a store from entries. Later duplicates replace earlier ones.
func NewStore(entries ...*Entry) *Store {
	s := &Store{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		if e == nil || e.Key == "" {
			continue
		}
		if _, dup := s.entries[e.Key]; !dup {
			s.keys = append(s.keys, e.Key)
		}
		s.entries[e.Key] = e
	}
	return s
}

// Parse reads a BibTeX database from r.
func Parse(r io.Reader) (*Store, error) {
	parsed, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	entries := make([]*Entry, 0, len(parsed.Entries))
	for _, be := range parsed.Entries {
		if be == nil {
			continue
		}
		e := &Entry{
			Key:    be.CiteName,
			Type:   strings.ToLower(be.Type),
			Fields: make(map[string]string, len(be.Fields)),
		}
		for name, value := range be.Fields {
			if value == nil {
				continue
			}
			e.Fields[strings.ToLower(name)] = strings.TrimSpace(value.String())
		}
		entries = append(entries, e)
	}
	return NewStore(entries...), nil
}

// Load reads and parses the BibTeX file at path.
func Load(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- bibliography path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the entry for key.
func (s *Store) Lookup(key string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Keys returns entry keys in file order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// SortedKeys returns entry keys in lexical order.
func (s *Store) SortedKeys() []string {
	keys := s.Keys()
	sort.Strings(keys)
	return keys
}
