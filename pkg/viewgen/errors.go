package viewgen

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := regenerator.Regenerate(ctx, config)
//	if errors.Is(err, viewgen.ErrModelUnavailable) {
//	    // No model document could be located or instantiated
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrModelUnavailable indicates no model document could be located or
	// instantiated from the configured locator.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrMalformedDocument indicates the composite document could not be
	// parsed, or its root element is not a recognized wrapper.
	ErrMalformedDocument = errors.New("malformed composite document")

	// ErrUnknownNamespace indicates the document's root namespace does not
	// belong to any supported schema version.
	ErrUnknownNamespace = errors.New("unknown schema namespace")

	// ErrSectionNotFound indicates a required section is absent from the
	// composite document.
	ErrSectionNotFound = errors.New("section not found")

	// ErrAmbiguousSection indicates a section appears more than once and the
	// strict-unique policy is in effect.
	ErrAmbiguousSection = errors.New("ambiguous section")

	// ErrInvalidLanguageOption indicates the language selector is not one of
	// the recognized tokens.
	ErrInvalidLanguageOption = errors.New("invalid language option")

	// ErrGenerationFailed indicates the merged diagnostic list contains
	// Error-severity diagnostics. The artifact may still have been written.
	ErrGenerationFailed = errors.New("generation reported errors")

	// ErrArtifactIO indicates reading, writing, or touching the generated
	// artifact failed at the filesystem level.
	ErrArtifactIO = errors.New("artifact I/O failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidLanguageOption):
		return ExitConfigError
	case errors.Is(err, ErrModelUnavailable):
		return ExitModelUnavailable
	case errors.Is(err, ErrMalformedDocument), errors.Is(err, ErrUnknownNamespace):
		return ExitMalformedDocument
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrAmbiguousSection):
		return ExitSectionError
	case errors.Is(err, ErrGenerationFailed):
		return ExitGenerationFailed
	case errors.Is(err, ErrArtifactIO):
		return ExitArtifactIOError
	}

	// Cobra reports flag/argument misuse as plain errors; classify the
	// common patterns as usage errors.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "accepts ") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
