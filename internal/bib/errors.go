package bib

import "errors"

// Sentinel errors for bibliography loading.
var (
	ErrNotFound = errors.New("bibliography not found")
	ErrParse    = errors.New("bibliography parse error")
	ErrTooLarge = errors.New("bibliography too large")
)
