package main

import (
	"errors"
	"os"

	"github.com/alnah/go-adocbib"
	"github.com/alnah/go-adocbib/internal/config"
	"github.com/alnah/go-adocbib/internal/hints"
)

// Exit codes for the adocbib CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitCitation = 4 // Strict unknown key, missing bibliography
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Citation errors (exit 4)
	if errors.Is(err, adocbib.ErrUnknownKey) ||
		errors.Is(err, adocbib.ErrMissingBibliography) ||
		errors.Is(err, adocbib.ErrBibliographyParse) {
		return ExitCitation
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, adocbib.ErrInvalidLocale) ||
		errors.Is(err, adocbib.ErrInvalidOrder) ||
		errors.Is(err, adocbib.ErrStyleNotFound) ||
		errors.Is(err, adocbib.ErrHTMLUnsupported) ||
		errors.Is(err, adocbib.ErrEmptyDocument) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrNotHTML) ||
		errors.Is(err, ErrLoadEnvFile) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var batch *batchError
	if errors.As(err, &batch) && len(batch.errs) > 1 {
		return ""
	}

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchedPaths("adocbib"))
	case errors.Is(err, adocbib.ErrMissingBibliography):
		return hints.ForBibliographyNotFound(config.DefaultConfig().Bibliography.SearchPaths)
	case errors.Is(err, adocbib.ErrUnknownKey):
		return hints.ForUnknownKey()
	case errors.Is(err, adocbib.ErrHTMLUnsupported):
		return hints.ForHTMLUnsupported()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, adocbib.ErrStyleNotFound):
		if conv, convErr := adocbib.NewConverter(); convErr == nil {
			if names, listErr := conv.Styles(); listErr == nil {
				return hints.ForStyleNotFound(names)
			}
		}
	}
	return ""
}
