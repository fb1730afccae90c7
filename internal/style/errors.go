package style

import "errors"

// Sentinel errors for style loading and rendering.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidStyleName indicates the style name contains path separators
	// or dots.
	ErrInvalidStyleName = errors.New("invalid style name")

	// ErrInvalidStyle indicates a style file failed to parse or validate.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrInvalidBasePath indicates the custom style directory is unusable.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrStyleRead indicates an I/O error while reading a style file.
	ErrStyleRead = errors.New("failed to read style")

	// ErrPathTraversal indicates an attempt to read outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrKeyAbsent indicates the key has no entry in the bibliography.
	ErrKeyAbsent = errors.New("key absent from bibliography")

	// ErrRender indicates a template failed for an entry that exists.
	ErrRender = errors.New("render failed")
)
