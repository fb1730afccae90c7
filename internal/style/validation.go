package style

import (
	"fmt"
	"strings"
)

// ValidateName checks that a style name is safe for use as a filename.
// Hyphens are allowed; separators and dots are not.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	}
	if strings.ContainsAny(name, "/\\.") || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
	}
	return nil
}
