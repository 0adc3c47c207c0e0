package viewgen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerationConfig contains all parameters needed for one regeneration run.
type GenerationConfig struct {
	// ModelPath is the locator for the composite model document: either a
	// single .model.xml file or a directory containing candidate files.
	ModelPath string

	// ModelName optionally narrows among multiple candidate documents by
	// case-insensitive file-stem suffix match. Empty means "first candidate".
	ModelName string

	// OutputPath is the generated-artifact file. The first line carries the
	// fingerprint stamp; the remainder is generator output.
	OutputPath string

	// Language selects the target source language for the generated body.
	Language Language

	// SectionPolicy controls how duplicate sections in the composite
	// document are treated during splitting.
	SectionPolicy SectionPolicy

	// Timeout is the global timeout for the run. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the GenerationConfig has all required fields and valid
// values. It returns a multi-error if multiple validation failures occur.
func (c *GenerationConfig) Validate() error {
	var errs []error

	if c.ModelPath == "" {
		errs = append(errs, fmt.Errorf("ModelPath is required: %w", ErrInvalidConfig))
	}

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if !c.Language.IsValid() {
		errs = append(errs, fmt.Errorf("unrecognized language option: %w", ErrInvalidLanguageOption))
	}

	if !c.SectionPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("unrecognized section policy: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Language identifies the target source language for generated view code.
// The core does not interpret it beyond validating it is one of the two
// recognized tokens; the generator decides what it means.
type Language int

const (
	LanguageCSharp Language = iota
	LanguageVB
)

// ParseLanguage resolves a language token case-insensitively.
// Recognized tokens are "csharp" and "vb"; an empty token defaults to csharp.
func ParseLanguage(token string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "csharp":
		return LanguageCSharp, nil
	case "vb":
		return LanguageVB, nil
	default:
		return 0, fmt.Errorf("unrecognized language %q (expected csharp or vb): %w",
			token, ErrInvalidLanguageOption)
	}
}

// String returns the canonical token for the language.
func (l Language) String() string {
	switch l {
	case LanguageCSharp:
		return "csharp"
	case LanguageVB:
		return "vb"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid returns true if the Language is a valid, defined value.
func (l Language) IsValid() bool {
	return l == LanguageCSharp || l == LanguageVB
}

// SectionPolicy controls how the splitter treats composite documents that
// contain more than one element for the same section kind.
type SectionPolicy int

const (
	// SectionPolicyFirstMatch takes the first matching element in document
	// order and reports a Warning diagnostic for each duplicate. This is the
	// permissive legacy behavior and the default.
	SectionPolicyFirstMatch SectionPolicy = iota

	// SectionPolicyStrictUnique rejects documents with duplicate sections as
	// a structural error before any artifact write.
	SectionPolicyStrictUnique
)

// ParseSectionPolicy resolves a policy token case-insensitively.
// An empty token defaults to first-match.
func ParseSectionPolicy(token string) (SectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "first-match":
		return SectionPolicyFirstMatch, nil
	case "strict-unique":
		return SectionPolicyStrictUnique, nil
	default:
		return 0, fmt.Errorf("unrecognized section policy %q (expected first-match or strict-unique): %w",
			token, ErrInvalidConfig)
	}
}

// String returns the canonical token for the policy.
func (p SectionPolicy) String() string {
	switch p {
	case SectionPolicyFirstMatch:
		return "first-match"
	case SectionPolicyStrictUnique:
		return "strict-unique"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IsValid returns true if the SectionPolicy is a valid, defined value.
func (p SectionPolicy) IsValid() bool {
	return p == SectionPolicyFirstMatch || p == SectionPolicyStrictUnique
}

// SchemaVersion identifies one of the three supported generations of the
// composite document schema. It drives which namespace URIs are expected for
// each section kind.
type SchemaVersion int

const (
	SchemaV1 SchemaVersion = iota + 1
	SchemaV2
	SchemaV3
)

// SchemaVersions returns all supported schema versions in ascending order.
func SchemaVersions() []SchemaVersion {
	return []SchemaVersion{SchemaV1, SchemaV2, SchemaV3}
}

// String returns a human-readable version label.
func (v SchemaVersion) String() string {
	switch v {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	case SchemaV3:
		return "v3"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// IsValid returns true if the SchemaVersion is a valid, defined value.
func (v SchemaVersion) IsValid() bool {
	return v >= SchemaV1 && v <= SchemaV3
}

// SectionKind identifies one of the four element roles inside a composite
// document: the three sub-schemas plus the version-bearing wrapper.
type SectionKind int

const (
	SectionConceptual SectionKind = iota
	SectionStorage
	SectionMapping
	SectionComposite
)

// SectionKinds returns all section kinds in canonical order.
func SectionKinds() []SectionKind {
	return []SectionKind{SectionConceptual, SectionStorage, SectionMapping, SectionComposite}
}

// String returns the section's local element name, which doubles as its
// human-readable label.
func (k SectionKind) String() string {
	switch k {
	case SectionConceptual:
		return "Conceptual"
	case SectionStorage:
		return "Storage"
	case SectionMapping:
		return "Mapping"
	case SectionComposite:
		return "Model"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Severity classifies a diagnostic as a warning or an error.
// Only Error-severity diagnostics flip a run's success flag.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity label.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Diagnostic is a structured warning or error emitted by the loading or
// generation phase. Diagnostics accumulate in insertion order: loader phase
// first, then generation phase.
type Diagnostic struct {
	Severity Severity
	Message  string

	// Location optionally names where the diagnostic originated, e.g. a
	// section kind or a source file position. Empty if unknown.
	Location string
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	if d.Location != "" {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Location, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// DiagnosticList is an ordered collection of diagnostics.
type DiagnosticList []Diagnostic

// HasErrors returns true if any diagnostic has Error severity.
func (l DiagnosticList) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the number of Warning-severity diagnostics.
func (l DiagnosticList) Warnings() int {
	n := 0
	for _, d := range l {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Errors returns the number of Error-severity diagnostics.
func (l DiagnosticList) Errors() int {
	n := 0
	for _, d := range l {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Merge appends other after l, preserving each phase's internal order.
func (l DiagnosticList) Merge(other DiagnosticList) DiagnosticList {
	if len(other) == 0 {
		return l
	}
	merged := make(DiagnosticList, 0, len(l)+len(other))
	merged = append(merged, l...)
	merged = append(merged, other...)
	return merged
}

// Model is the composite model description handed back by a ModelProvider.
type Model struct {
	// Path is the source file the document was read from.
	Path string

	// ID is the deterministic identity of the model, derived from its
	// normalized path. Stable across runs and machines.
	ID uuid.UUID

	// Version is the schema generation the document declares.
	Version SchemaVersion

	// Text is the exact serialized document text. This is the fingerprint
	// input; no normalization of any kind is applied to it.
	Text string
}

// Section is one extracted sub-schema of a composite document, independently
// parseable as its own XML document.
type Section struct {
	Kind    SectionKind
	Version SchemaVersion

	// XML is the section's serialized element tree.
	XML string
}

// Entity is one conceptual entity discovered by the schema loader.
type Entity struct {
	Name string

	// Mapped is true if the mapping section references the entity.
	Mapped bool
}

// ValidatedModel is the typed result of successfully loading all three
// extracted sections together. It cannot be constructed if any section fails
// to parse against its expected namespace.
type ValidatedModel struct {
	Version    SchemaVersion
	Conceptual Section
	Storage    Section
	Mapping    Section

	// Entities is the conceptual entity inventory with mapping coverage.
	Entities []Entity
}

// Outcome describes how a regeneration run concluded.
type Outcome int

const (
	// OutcomeUpToDate means the artifact's stamp matched the current
	// fingerprint; the artifact was touched, not rewritten.
	OutcomeUpToDate Outcome = iota

	// OutcomeRegenerated means a new artifact was written.
	OutcomeRegenerated

	// OutcomeValidated means a validation-only run completed without
	// touching the artifact.
	OutcomeValidated

	// OutcomeFailed means the run stopped before writing an artifact.
	OutcomeFailed
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeRegenerated:
		return "regenerated"
	case OutcomeValidated:
		return "validated"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// Result is what a regeneration run reports back to the host.
// Success is the only thing a build step needs to observe; the diagnostic
// list carries the detail.
type Result struct {
	Outcome     Outcome
	Fingerprint string
	ModelID     uuid.UUID
	Diagnostics DiagnosticList

	// Success is true iff no diagnostic has Error severity. Warning-only
	// runs still count as success.
	Success bool
}
