package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/vkm-labs/viewgen/internal/artifact"
	"github.com/vkm-labs/viewgen/internal/edm"
	"github.com/vkm-labs/viewgen/internal/logging"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

const compositeDoc = `<Model xmlns="urn:schemas-vkm:model:composite:v3">
  <Conceptual xmlns="urn:schemas-vkm:model:conceptual:v3">
    <Entity Name="Customer"/>
  </Conceptual>
  <Storage xmlns="urn:schemas-vkm:model:storage:v3">
    <Table Name="customers"/>
  </Storage>
  <Mapping xmlns="urn:schemas-vkm:model:mapping:v3">
    <EntityMapping Entity="Customer" Table="customers"/>
  </Mapping>
</Model>`

func testModel() *viewgen.Model {
	return &viewgen.Model{
		Path:    "models/shop.model.xml",
		ID:      uuid.MustParse("9b2f1a40-0000-4000-8000-000000000001"),
		Version: viewgen.SchemaV3,
		Text:    compositeDoc,
	}
}

func testConfig() viewgen.GenerationConfig {
	return viewgen.GenerationConfig{
		ModelPath:  "models",
		OutputPath: "out/views.generated.cs",
		Language:   viewgen.LanguageCSharp,
	}
}

type serviceDeps struct {
	provider   *fakeProvider
	loader     *fakeLoader
	generator  *fakeGenerator
	store      *fakeStore
	calculator *fakeCalculator
}

func newTestService(deps serviceDeps) *RegenerationService {
	if deps.provider == nil {
		deps.provider = &fakeProvider{model: testModel()}
	}
	if deps.loader == nil {
		deps.loader = &fakeLoader{model: &viewgen.ValidatedModel{Version: viewgen.SchemaV3}}
	}
	if deps.generator == nil {
		deps.generator = &fakeGenerator{body: "// generated\n"}
	}
	if deps.store == nil {
		deps.store = &fakeStore{status: artifact.StampMissing}
	}
	if deps.calculator == nil {
		deps.calculator = &fakeCalculator{result: "fp-current"}
	}
	return NewRegenerationService(
		deps.provider,
		deps.loader,
		deps.generator,
		deps.store,
		deps.calculator,
		edm.MustNamespaces(),
		logging.NewNullLogger(),
	)
}

func TestRegenerate_UpToDateTouchesWithoutRegenerating(t *testing.T) {
	store := &fakeStore{stamp: "fp-current", status: artifact.StampFound}
	loader := &fakeLoader{}
	generator := &fakeGenerator{}
	svc := newTestService(serviceDeps{store: store, loader: loader, generator: generator})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	if result.Outcome != viewgen.OutcomeUpToDate {
		t.Errorf("Outcome = %s, want up-to-date", result.Outcome)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.Fingerprint != "fp-current" {
		t.Errorf("Fingerprint = %q", result.Fingerprint)
	}
	if len(store.touches) != 1 || store.touches[0] != "out/views.generated.cs" {
		t.Errorf("touches = %v, want exactly the artifact path", store.touches)
	}
	if len(store.writes) != 0 {
		t.Errorf("writes = %v, want none on the up-to-date path", store.writes)
	}
	// The fast path never splits, loads, or generates.
	if loader.calls != 0 {
		t.Errorf("loader called %d times on the up-to-date path", loader.calls)
	}
	if generator.generateCalls != 0 {
		t.Errorf("generator called %d times on the up-to-date path", generator.generateCalls)
	}
}

func TestRegenerate_UpToDateIsIdempotent(t *testing.T) {
	store := &fakeStore{stamp: "fp-current", status: artifact.StampFound}
	svc := newTestService(serviceDeps{store: store})

	for i := 0; i < 3; i++ {
		result, err := svc.Regenerate(context.Background(), testConfig())
		if err != nil {
			t.Fatalf("run %d: Regenerate() error = %v", i, err)
		}
		if result.Outcome != viewgen.OutcomeUpToDate {
			t.Fatalf("run %d: Outcome = %s", i, result.Outcome)
		}
	}
	if len(store.writes) != 0 {
		t.Errorf("writes = %v, want none across repeated runs", store.writes)
	}
	if len(store.touches) != 3 {
		t.Errorf("touches = %d, want one per run", len(store.touches))
	}
}

func TestRegenerate_MissingArtifactRegenerates(t *testing.T) {
	store := &fakeStore{status: artifact.StampMissing}
	generator := &fakeGenerator{body: "// body\n"}
	svc := newTestService(serviceDeps{store: store, generator: generator})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	if result.Outcome != viewgen.OutcomeRegenerated {
		t.Errorf("Outcome = %s, want regenerated", result.Outcome)
	}
	if len(store.writes) != 1 {
		t.Fatalf("writes = %v, want exactly one", store.writes)
	}
	w := store.writes[0]
	if w.path != "out/views.generated.cs" || w.fingerprint != "fp-current" || w.body != "// body\n" {
		t.Errorf("write = %+v", w)
	}
	if len(store.touches) != 0 {
		t.Errorf("touches = %v, want none when regenerating", store.touches)
	}
}

func TestRegenerate_StaleStampRegenerates(t *testing.T) {
	// A stamp from an older document revision forces regeneration even though
	// the artifact exists and is well-formed.
	store := &fakeStore{stamp: "fp-previous", status: artifact.StampFound}
	svc := newTestService(serviceDeps{store: store})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if result.Outcome != viewgen.OutcomeRegenerated {
		t.Errorf("Outcome = %s, want regenerated", result.Outcome)
	}
	if len(store.writes) != 1 || store.writes[0].fingerprint != "fp-current" {
		t.Errorf("writes = %v, want one write stamped with the current fingerprint", store.writes)
	}
}

func TestRegenerate_UnstampedArtifactRegenerates(t *testing.T) {
	store := &fakeStore{status: artifact.StampEmpty}
	svc := newTestService(serviceDeps{store: store})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if result.Outcome != viewgen.OutcomeRegenerated {
		t.Errorf("Outcome = %s, want regenerated", result.Outcome)
	}
}

func TestRegenerate_FingerprintsExactDocumentText(t *testing.T) {
	calc := &fakeCalculator{result: "fp-current"}
	svc := newTestService(serviceDeps{calculator: calc})

	if _, err := svc.Regenerate(context.Background(), testConfig()); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if calc.gotText != compositeDoc {
		t.Error("calculator must receive the exact document text, unnormalized")
	}
}

func TestRegenerate_MissingSectionAbortsWithoutWrite(t *testing.T) {
	provider := &fakeProvider{model: &viewgen.Model{
		Path:    "models/broken.model.xml",
		Version: viewgen.SchemaV3,
		Text: `<Model xmlns="urn:schemas-vkm:model:composite:v3">
		  <Conceptual xmlns="urn:schemas-vkm:model:conceptual:v3"/>
		  <Storage xmlns="urn:schemas-vkm:model:storage:v3"/>
		</Model>`,
	}}
	store := &fakeStore{status: artifact.StampMissing}
	loader := &fakeLoader{}
	generator := &fakeGenerator{}
	svc := newTestService(serviceDeps{provider: provider, store: store, loader: loader, generator: generator})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrSectionNotFound) {
		t.Fatalf("Regenerate() error = %v, want ErrSectionNotFound", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on structural failure", result)
	}
	if len(store.writes) != 0 || len(store.touches) != 0 {
		t.Error("artifact must not be written or touched on structural failure")
	}
	if loader.calls != 0 || generator.generateCalls != 0 {
		t.Error("loader and generator must not run on structural failure")
	}
}

func TestRegenerate_MalformedDocumentAbortsWithoutWrite(t *testing.T) {
	provider := &fakeProvider{model: &viewgen.Model{
		Path: "models/broken.model.xml",
		Text: `<Model xmlns="urn:schemas-vkm:model:composite:v3">`,
	}}
	store := &fakeStore{status: artifact.StampMissing}
	svc := newTestService(serviceDeps{provider: provider, store: store})

	_, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrMalformedDocument) {
		t.Fatalf("Regenerate() error = %v, want ErrMalformedDocument", err)
	}
	if len(store.writes) != 0 {
		t.Error("artifact must not be written for a malformed document")
	}
}

func TestRegenerate_LoaderErrorsSkipGeneratorAndWrite(t *testing.T) {
	loader := &fakeLoader{
		model: nil,
		diags: viewgen.DiagnosticList{
			{Severity: viewgen.SeverityError, Message: "duplicate entity 'Customer'", Location: "Conceptual"},
		},
	}
	store := &fakeStore{status: artifact.StampMissing}
	generator := &fakeGenerator{}
	svc := newTestService(serviceDeps{loader: loader, store: store, generator: generator})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrGenerationFailed) {
		t.Fatalf("Regenerate() error = %v, want ErrGenerationFailed", err)
	}
	if result == nil {
		t.Fatal("result = nil, want a failed result carrying diagnostics")
	}
	if result.Outcome != viewgen.OutcomeFailed {
		t.Errorf("Outcome = %s, want failed", result.Outcome)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.Diagnostics.Errors() != 1 {
		t.Errorf("Diagnostics = %v, want the loader error carried through", result.Diagnostics)
	}
	if generator.generateCalls != 0 {
		t.Error("generator must not run when schema loading fails")
	}
	if len(store.writes) != 0 {
		t.Error("artifact must not be written when schema loading fails")
	}
}

func TestRegenerate_GeneratorErrorDiagnosticsStillWrite(t *testing.T) {
	// Legacy best-effort behavior: error diagnostics from generation do not
	// suppress the write. The run is still reported as a failure.
	generator := &fakeGenerator{
		body: "// partial\n",
		diags: viewgen.DiagnosticList{
			{Severity: viewgen.SeverityError, Message: "cannot map view for 'Customer'"},
		},
	}
	store := &fakeStore{status: artifact.StampMissing}
	svc := newTestService(serviceDeps{generator: generator, store: store})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrGenerationFailed) {
		t.Fatalf("Regenerate() error = %v, want ErrGenerationFailed", err)
	}
	if result == nil {
		t.Fatal("result = nil, want a result describing the failed regeneration")
	}
	if result.Outcome != viewgen.OutcomeRegenerated {
		t.Errorf("Outcome = %s, want regenerated", result.Outcome)
	}
	if result.Success {
		t.Error("Success = true, want false when diagnostics contain errors")
	}
	if len(store.writes) != 1 || store.writes[0].body != "// partial\n" {
		t.Errorf("writes = %v, want the partial artifact written", store.writes)
	}
}

func TestRegenerate_WarningsOnlyIsSuccess(t *testing.T) {
	loader := &fakeLoader{
		model: &viewgen.ValidatedModel{Version: viewgen.SchemaV3},
		diags: viewgen.DiagnosticList{
			{Severity: viewgen.SeverityWarning, Message: "conceptual section declares no entities"},
		},
	}
	generator := &fakeGenerator{
		body: "// generated\n",
		diags: viewgen.DiagnosticList{
			{Severity: viewgen.SeverityWarning, Message: "entity 'Customer' has no mapping"},
		},
	}
	svc := newTestService(serviceDeps{loader: loader, generator: generator})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true for warning-only runs")
	}
	if result.Diagnostics.Warnings() != 2 {
		t.Errorf("Warnings = %d, want loader and generator warnings merged", result.Diagnostics.Warnings())
	}
	// Loader findings precede generator findings.
	if result.Diagnostics[0].Message != "conceptual section declares no entities" {
		t.Errorf("diagnostic order wrong: %v", result.Diagnostics)
	}
}

func TestRegenerate_ModelUnavailable(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("no candidates under models: %w", viewgen.ErrModelUnavailable)}
	store := &fakeStore{}
	svc := newTestService(serviceDeps{provider: provider, store: store})

	result, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrModelUnavailable) {
		t.Fatalf("Regenerate() error = %v, want ErrModelUnavailable", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
	if store.readCalls != 0 || len(store.writes) != 0 || len(store.touches) != 0 {
		t.Error("store must not be consulted when the model is unavailable")
	}
}

func TestRegenerate_InvalidConfig(t *testing.T) {
	svc := newTestService(serviceDeps{})

	_, err := svc.Regenerate(context.Background(), viewgen.GenerationConfig{})
	if !errors.Is(err, viewgen.ErrInvalidConfig) {
		t.Errorf("Regenerate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRegenerate_StampReadErrorAborts(t *testing.T) {
	store := &fakeStore{readErr: fmt.Errorf("open out/views.generated.cs: %w", viewgen.ErrArtifactIO)}
	loader := &fakeLoader{}
	svc := newTestService(serviceDeps{store: store, loader: loader})

	_, err := svc.Regenerate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrArtifactIO) {
		t.Fatalf("Regenerate() error = %v, want ErrArtifactIO", err)
	}
	if loader.calls != 0 {
		t.Error("loader must not run when the stamp cannot be read")
	}
}

func TestRegenerate_PassesLanguageAndConfigThrough(t *testing.T) {
	provider := &fakeProvider{model: testModel()}
	generator := &fakeGenerator{body: "' generated\n"}
	svc := newTestService(serviceDeps{provider: provider, generator: generator})

	config := testConfig()
	config.ModelName = "shop"
	config.Language = viewgen.LanguageVB

	if _, err := svc.Regenerate(context.Background(), config); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if provider.gotLocator != "models" || provider.gotSelector != "shop" {
		t.Errorf("provider got (%q, %q)", provider.gotLocator, provider.gotSelector)
	}
	if generator.gotLanguage != viewgen.LanguageVB {
		t.Errorf("generator got language %s", generator.gotLanguage)
	}
}

func TestRegenerate_LoaderReceivesSplitSections(t *testing.T) {
	loader := &fakeLoader{model: &viewgen.ValidatedModel{Version: viewgen.SchemaV3}}
	svc := newTestService(serviceDeps{loader: loader})

	if _, err := svc.Regenerate(context.Background(), testConfig()); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if loader.gotConceptual.Kind != viewgen.SectionConceptual {
		t.Errorf("conceptual section kind = %s", loader.gotConceptual.Kind)
	}
	if loader.gotStorage.Version != viewgen.SchemaV3 {
		t.Errorf("storage section version = %s", loader.gotStorage.Version)
	}
	if loader.gotMapping.XML == "" {
		t.Error("mapping section XML is empty")
	}
}

func TestRegenerate_StrictPolicyRejectsDuplicateSections(t *testing.T) {
	provider := &fakeProvider{model: &viewgen.Model{
		Path: "models/dup.model.xml",
		Text: `<Model xmlns="urn:schemas-vkm:model:composite:v3">
		  <Conceptual xmlns="urn:schemas-vkm:model:conceptual:v3"/>
		  <Storage xmlns="urn:schemas-vkm:model:storage:v3"/>
		  <Storage xmlns="urn:schemas-vkm:model:storage:v3"/>
		  <Mapping xmlns="urn:schemas-vkm:model:mapping:v3"/>
		</Model>`,
	}}
	store := &fakeStore{status: artifact.StampMissing}
	svc := newTestService(serviceDeps{provider: provider, store: store})

	config := testConfig()
	config.SectionPolicy = viewgen.SectionPolicyStrictUnique

	_, err := svc.Regenerate(context.Background(), config)
	if !errors.Is(err, viewgen.ErrAmbiguousSection) {
		t.Fatalf("Regenerate() error = %v, want ErrAmbiguousSection", err)
	}
	if len(store.writes) != 0 {
		t.Error("artifact must not be written when duplicate sections are rejected")
	}
}

func TestValidate_NeverTouchesTheArtifact(t *testing.T) {
	store := &fakeStore{stamp: "fp-current", status: artifact.StampFound}
	generator := &fakeGenerator{}
	svc := newTestService(serviceDeps{store: store, generator: generator})

	result, err := svc.Validate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Outcome != viewgen.OutcomeValidated {
		t.Errorf("Outcome = %s, want validated", result.Outcome)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if store.readCalls != 0 || len(store.writes) != 0 || len(store.touches) != 0 {
		t.Error("validate must not interact with the artifact store")
	}
	if generator.validateCalls != 1 || generator.generateCalls != 0 {
		t.Errorf("generator calls: validate=%d generate=%d", generator.validateCalls, generator.generateCalls)
	}
}

func TestValidate_ReportsLoaderErrors(t *testing.T) {
	loader := &fakeLoader{
		diags: viewgen.DiagnosticList{
			{Severity: viewgen.SeverityError, Message: "EntityMapping references unknown table 'orders'", Location: "Mapping"},
		},
	}
	svc := newTestService(serviceDeps{loader: loader})

	result, err := svc.Validate(context.Background(), testConfig())
	if !errors.Is(err, viewgen.ErrGenerationFailed) {
		t.Fatalf("Validate() error = %v, want ErrGenerationFailed", err)
	}
	if result == nil || result.Outcome != viewgen.OutcomeFailed {
		t.Fatalf("result = %+v, want failed outcome", result)
	}
	if result.Diagnostics.Errors() != 1 {
		t.Errorf("Diagnostics = %v", result.Diagnostics)
	}
}

func TestNewRegenerationService_NilDependencyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil provider")
		}
	}()
	NewRegenerationService(nil, &fakeLoader{}, &fakeGenerator{}, &fakeStore{},
		&fakeCalculator{}, edm.MustNamespaces(), logging.NewNullLogger())
}
