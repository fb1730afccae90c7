package style

// Loader reads raw style definitions by name.
type Loader interface {
	// LoadStyle returns the YAML definition of the named style.
	// Returns ErrStyleNotFound if it does not exist and ErrInvalidStyleName
	// for unsafe names.
	LoadStyle(name string) ([]byte, error)

	// ListStyles returns the names of the available styles, sorted.
	ListStyles() ([]string, error)
}

// DefaultName is the style used when none is configured.
const DefaultName = "association-for-computing-machinery"
