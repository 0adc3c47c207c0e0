package viewgen

import "context"

// ModelProvider locates and instantiates the composite model document.
// Implementations scan the locator for candidate definitions, optionally
// narrowed by selector, and return the first successfully instantiable one.
//
// A failure to produce any model is reported by wrapping ErrModelUnavailable
// with a human-readable reason.
type ModelProvider interface {
	GetModel(ctx context.Context, locator, selector string) (*Model, error)
}

// SchemaLoader turns the three extracted sections into validated in-memory
// metadata. Non-fatal findings are reported as diagnostics; the returned
// model is nil iff the diagnostic list contains Error severity.
//
// The error return is reserved for infrastructure failures; schema problems
// are diagnostics, not errors.
type SchemaLoader interface {
	Load(conceptual, storage, mapping Section) (*ValidatedModel, DiagnosticList, error)
}

// Generator consumes a validated model and produces generated source text
// plus diagnostics for the requested target language.
type Generator interface {
	// Generate emits the generated body text. Diagnostics may include
	// Error severity; by policy the caller still writes the artifact and
	// reports failure through the success flag.
	Generate(ctx context.Context, model *ValidatedModel, lang Language) (string, DiagnosticList, error)

	// ValidateOnly runs only the diagnostic-producing phase without
	// emitting text.
	ValidateOnly(ctx context.Context, model *ValidatedModel, lang Language) (DiagnosticList, error)
}

// Regenerator is the decision core: it decides whether the generated
// artifact is stale and orchestrates touch or regeneration accordingly.
type Regenerator interface {
	// Regenerate runs the full skip/touch/regenerate decision for one
	// model/artifact pair. The returned Result is non-nil whenever the run
	// progressed far enough to produce diagnostics, even on error.
	Regenerate(ctx context.Context, config GenerationConfig) (*Result, error)

	// Validate runs model acquisition, splitting, loading, and the
	// generator's validation phase without writing or touching the
	// artifact.
	Validate(ctx context.Context, config GenerationConfig) (*Result, error)
}
