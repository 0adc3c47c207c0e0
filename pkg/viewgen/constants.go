package viewgen

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Run completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitModelUnavailable  = 20 // No model document could be located or instantiated
	ExitMalformedDocument = 21 // Composite document malformed or namespace unknown
	ExitSectionError      = 22 // Required section missing or ambiguous
	ExitGenerationFailed  = 23 // Loading or generation reported Error diagnostics
	ExitArtifactIOError   = 24 // Artifact read/write/touch failed
)

const (
	// FingerprintMarker is the fixed literal prefix of the artifact's first
	// line. The remainder of that line is the fingerprint of the composite
	// document that produced the artifact. The marker is comment-safe in
	// both target languages and is never localized.
	FingerprintMarker = "// Fingerprint: "

	// ModelFileExtension is the extension model documents are discovered by
	// when the locator is a directory.
	ModelFileExtension = ".model.xml"

	// DefaultOutputBase is the artifact file name without extension used
	// when the caller does not configure an output path.
	DefaultOutputBase = "views.generated"
)

// DefaultArtifactName returns the conventional artifact file name for a
// target language.
func DefaultArtifactName(lang Language) string {
	switch lang {
	case LanguageVB:
		return DefaultOutputBase + ".vb"
	default:
		return DefaultOutputBase + ".cs"
	}
}
