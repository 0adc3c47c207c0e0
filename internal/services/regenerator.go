// Package services contains the regeneration orchestrator: the decision core
// that ties the model provider, splitter, schema loader, generator, and
// artifact store together and decides skip, touch, or regenerate.
package services

import (
	"context"
	"fmt"

	"github.com/vkm-labs/viewgen/internal/artifact"
	"github.com/vkm-labs/viewgen/internal/edm"
	"github.com/vkm-labs/viewgen/internal/fingerprint"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// RegenerationService implements the viewgen.Regenerator interface.
//
// One invocation processes exactly one model/artifact pair to completion; the
// service holds no mutable state between invocations and is safe to share
// across goroutines as long as each invocation targets a distinct artifact
// path.
type RegenerationService struct {
	provider   viewgen.ModelProvider
	loader     viewgen.SchemaLoader
	generator  viewgen.Generator
	store      artifact.Store
	calculator fingerprint.Calculator
	ns         *edm.Namespaces
	logger     viewgen.Logger
}

// NewRegenerationService creates a RegenerationService with all dependencies
// injected.
//
// Nil dependencies are programmer errors and panic at construction time;
// runtime conditions (unavailable model, unreadable artifact) are returned as
// errors from the run methods.
func NewRegenerationService(
	provider viewgen.ModelProvider,
	loader viewgen.SchemaLoader,
	generator viewgen.Generator,
	store artifact.Store,
	calculator fingerprint.Calculator,
	ns *edm.Namespaces,
	logger viewgen.Logger,
) *RegenerationService {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if ns == nil {
		panic("ns cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &RegenerationService{
		provider:   provider,
		loader:     loader,
		generator:  generator,
		store:      store,
		calculator: calculator,
		ns:         ns,
		logger:     logger,
	}
}

// Regenerate runs the full skip/touch/regenerate decision for one
// model/artifact pair.
//
// The fast path (stamp matches) costs one first-line read plus a touch; the
// split, load, and generation phases never run on it. On the stale path the
// artifact is written even when generation diagnostics contain errors — the
// caller gets a partial artifact to inspect, and failure is reported through
// Result.Success and the returned error.
func (s *RegenerationService) Regenerate(ctx context.Context, config viewgen.GenerationConfig) (*viewgen.Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	ctx, cancel := runContext(ctx, config)
	defer cancel()

	model, err := s.acquire(ctx, config)
	if err != nil {
		return nil, err
	}

	fp := s.calculator.Calculate(model.Text)
	s.logger.Verbose("Document fingerprint: %s", fp)

	stamp, status, err := s.store.ReadFingerprint(config.OutputPath)
	if err != nil {
		return nil, err
	}

	if status == artifact.StampFound && stamp == fp {
		// Up to date: freshen mtime only, never rewrite content.
		if err := s.store.Touch(config.OutputPath); err != nil {
			return nil, err
		}
		s.logger.Info("✓ Artifact %s is up to date, touched", config.OutputPath)
		return &viewgen.Result{
			Outcome:     viewgen.OutcomeUpToDate,
			Fingerprint: fp,
			ModelID:     model.ID,
			Success:     true,
		}, nil
	}

	switch status {
	case artifact.StampMissing:
		s.logger.Verbose("Artifact %s does not exist. Regenerating.", config.OutputPath)
	case artifact.StampEmpty:
		s.logger.Verbose("Artifact %s has no recognizable stamp. Regenerating.", config.OutputPath)
	default:
		s.logger.Verbose("Artifact stamp %s differs from document fingerprint. Regenerating.", stamp)
	}

	validated, diags, err := s.loadModel(model, config)
	if err != nil {
		return nil, err
	}
	if validated == nil {
		// A section failed to load: Failed state, generator never runs, no
		// artifact write.
		result := &viewgen.Result{
			Outcome:     viewgen.OutcomeFailed,
			Fingerprint: fp,
			ModelID:     model.ID,
			Diagnostics: diags,
			Success:     false,
		}
		return result, fmt.Errorf("schema loading reported %d error(s): %w",
			diags.Errors(), viewgen.ErrGenerationFailed)
	}

	body, genDiags, err := s.generator.Generate(ctx, validated, config.Language)
	if err != nil {
		return nil, err
	}
	diags = diags.Merge(genDiags)

	// Written regardless of Error-severity generation diagnostics: partial
	// artifacts are reported as failures but left for inspection.
	if err := s.store.Write(config.OutputPath, fp, body); err != nil {
		return nil, err
	}

	result := &viewgen.Result{
		Outcome:     viewgen.OutcomeRegenerated,
		Fingerprint: fp,
		ModelID:     model.ID,
		Diagnostics: diags,
		Success:     !diags.HasErrors(),
	}

	if !result.Success {
		s.logger.Error("✗ Regenerated %s with %d error(s), %d warning(s)",
			config.OutputPath, diags.Errors(), diags.Warnings())
		return result, fmt.Errorf("generation reported %d error(s): %w",
			diags.Errors(), viewgen.ErrGenerationFailed)
	}

	s.logger.Info("✓ Regenerated %s (%d warning(s))", config.OutputPath, diags.Warnings())
	return result, nil
}

// Validate runs model acquisition, splitting, loading, and the generator's
// validation phase without writing or touching the artifact.
func (s *RegenerationService) Validate(ctx context.Context, config viewgen.GenerationConfig) (*viewgen.Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	ctx, cancel := runContext(ctx, config)
	defer cancel()

	model, err := s.acquire(ctx, config)
	if err != nil {
		return nil, err
	}

	fp := s.calculator.Calculate(model.Text)

	validated, diags, err := s.loadModel(model, config)
	if err != nil {
		return nil, err
	}
	if validated == nil {
		result := &viewgen.Result{
			Outcome:     viewgen.OutcomeFailed,
			Fingerprint: fp,
			ModelID:     model.ID,
			Diagnostics: diags,
			Success:     false,
		}
		return result, fmt.Errorf("schema loading reported %d error(s): %w",
			diags.Errors(), viewgen.ErrGenerationFailed)
	}

	genDiags, err := s.generator.ValidateOnly(ctx, validated, config.Language)
	if err != nil {
		return nil, err
	}
	diags = diags.Merge(genDiags)

	result := &viewgen.Result{
		Outcome:     viewgen.OutcomeValidated,
		Fingerprint: fp,
		ModelID:     model.ID,
		Diagnostics: diags,
		Success:     !diags.HasErrors(),
	}
	if !result.Success {
		return result, fmt.Errorf("validation reported %d error(s): %w",
			diags.Errors(), viewgen.ErrGenerationFailed)
	}
	return result, nil
}

// runContext derives the per-run context. With no timeout configured the
// cancel func is a no-op, so callers can defer it unconditionally.
func runContext(ctx context.Context, config viewgen.GenerationConfig) (context.Context, context.CancelFunc) {
	if config.Timeout > 0 {
		return context.WithTimeout(ctx, config.Timeout)
	}
	return ctx, func() {}
}

// acquire obtains the model. Failure here is fatal for the run; no further
// states are reached.
func (s *RegenerationService) acquire(ctx context.Context, config viewgen.GenerationConfig) (*viewgen.Model, error) {
	s.logger.Verbose("Acquiring model from %s (selector %q)", config.ModelPath, config.ModelName)
	model, err := s.provider.GetModel(ctx, config.ModelPath, config.ModelName)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// loadModel splits the document and passes the sections through the schema
// loader. Structural failures (malformed document, unknown namespace, missing
// or ambiguous section) are returned as errors and abort before any write;
// loader findings come back as diagnostics with a nil model on Error
// severity.
func (s *RegenerationService) loadModel(model *viewgen.Model, config viewgen.GenerationConfig) (*viewgen.ValidatedModel, viewgen.DiagnosticList, error) {
	doc, err := edm.Parse(model.Text, model.Path)
	if err != nil {
		return nil, nil, err
	}

	split, err := edm.Split(doc, s.ns, config.SectionPolicy)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range split.Diagnostics {
		s.logger.Verbose("Section extraction: %s", d)
	}

	validated, loaderDiags, err := s.loader.Load(split.Conceptual, split.Storage, split.Mapping)
	if err != nil {
		return nil, nil, fmt.Errorf("schema loader failed: %w", err)
	}

	return validated, split.Diagnostics.Merge(loaderDiags), nil
}
