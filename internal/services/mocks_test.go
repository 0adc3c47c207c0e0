package services

import (
	"context"

	"github.com/vkm-labs/viewgen/internal/artifact"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

type fakeProvider struct {
	model *viewgen.Model
	err   error

	gotLocator  string
	gotSelector string
}

func (f *fakeProvider) GetModel(_ context.Context, locator, selector string) (*viewgen.Model, error) {
	f.gotLocator = locator
	f.gotSelector = selector
	return f.model, f.err
}

type fakeLoader struct {
	model *viewgen.ValidatedModel
	diags viewgen.DiagnosticList
	err   error

	calls         int
	gotConceptual viewgen.Section
	gotStorage    viewgen.Section
	gotMapping    viewgen.Section
}

func (f *fakeLoader) Load(conceptual, storage, mapping viewgen.Section) (*viewgen.ValidatedModel, viewgen.DiagnosticList, error) {
	f.calls++
	f.gotConceptual = conceptual
	f.gotStorage = storage
	f.gotMapping = mapping
	return f.model, f.diags, f.err
}

type fakeGenerator struct {
	body          string
	diags         viewgen.DiagnosticList
	err           error
	validateDiags viewgen.DiagnosticList
	validateErr   error

	generateCalls int
	validateCalls int
	gotLanguage   viewgen.Language
}

func (f *fakeGenerator) Generate(_ context.Context, _ *viewgen.ValidatedModel, lang viewgen.Language) (string, viewgen.DiagnosticList, error) {
	f.generateCalls++
	f.gotLanguage = lang
	return f.body, f.diags, f.err
}

func (f *fakeGenerator) ValidateOnly(_ context.Context, _ *viewgen.ValidatedModel, lang viewgen.Language) (viewgen.DiagnosticList, error) {
	f.validateCalls++
	f.gotLanguage = lang
	return f.validateDiags, f.validateErr
}

type storeWrite struct {
	path        string
	fingerprint string
	body        string
}

type fakeStore struct {
	stamp   string
	status  artifact.StampStatus
	readErr error

	writeErr error
	touchErr error

	readCalls int
	writes    []storeWrite
	touches   []string
}

func (f *fakeStore) ReadFingerprint(_ string) (string, artifact.StampStatus, error) {
	f.readCalls++
	return f.stamp, f.status, f.readErr
}

func (f *fakeStore) Write(path, fingerprint, body string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, storeWrite{path: path, fingerprint: fingerprint, body: body})
	return nil
}

func (f *fakeStore) Touch(path string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touches = append(f.touches, path)
	return nil
}

// fakeCalculator returns a scripted fingerprint so tests can compare stamps
// without computing real digests.
type fakeCalculator struct {
	result  string
	gotText string
}

func (f *fakeCalculator) Calculate(text string) string {
	f.gotText = text
	return f.result
}
