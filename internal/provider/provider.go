package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vkm-labs/viewgen/internal/edm"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// FileProvider implements viewgen.ModelProvider against a filesystem.
type FileProvider struct {
	ns     *edm.Namespaces
	fs     FileSystem
	logger viewgen.Logger
}

// NewFileProvider creates a provider using the OS filesystem.
// Panics if ns or logger is nil.
func NewFileProvider(ns *edm.Namespaces, logger viewgen.Logger) *FileProvider {
	return NewFileProviderWithFS(ns, NewOSFileSystem(), logger)
}

// NewFileProviderWithFS creates a provider with a custom filesystem.
// This is primarily useful for testing with in-memory filesystems.
// Panics if any argument is nil.
func NewFileProviderWithFS(ns *edm.Namespaces, fs FileSystem, logger viewgen.Logger) *FileProvider {
	if ns == nil {
		panic("ns cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &FileProvider{ns: ns, fs: fs, logger: logger}
}

// GetModel implements viewgen.ModelProvider. The first candidate that parses
// as a version-recognized composite document wins; if none does, the error
// wraps viewgen.ErrModelUnavailable and summarizes every candidate's failure.
func (p *FileProvider) GetModel(ctx context.Context, locator, selector string) (*viewgen.Model, error) {
	candidates, err := p.candidates(locator, selector)
	if err != nil {
		return nil, err
	}

	var reasons []string
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		model, err := p.instantiate(candidate)
		if err != nil {
			p.logger.Verbose("candidate %s rejected: %v", candidate, err)
			reasons = append(reasons, fmt.Sprintf("%s: %v", candidate, err))
			continue
		}

		p.logger.Verbose("model %s (id %s, schema %s) selected", candidate, model.ID, model.Version)
		return model, nil
	}

	return nil, fmt.Errorf("no candidate document could be instantiated from %s:\n  %s\n%w",
		locator, strings.Join(reasons, "\n  "), viewgen.ErrModelUnavailable)
}

// candidates resolves the locator into an ordered list of document paths.
func (p *FileProvider) candidates(locator, selector string) ([]string, error) {
	info, err := p.fs.Stat(locator)
	if err != nil {
		return nil, fmt.Errorf("locator %s is not accessible: %v: %w", locator, err, viewgen.ErrModelUnavailable)
	}

	if !info.IsDir() {
		return []string{locator}, nil
	}

	names, err := p.fs.ListFiles(locator)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %v: %w", locator, err, viewgen.ErrModelUnavailable)
	}

	var paths []string
	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), viewgen.ModelFileExtension) {
			continue
		}
		if selector != "" && !stemMatches(name, selector) {
			continue
		}
		paths = append(paths, filepath.Join(locator, name))
	}

	if len(paths) == 0 {
		if selector != "" {
			return nil, fmt.Errorf("no %s documents in %s match selector %q: %w",
				viewgen.ModelFileExtension, locator, selector, viewgen.ErrModelUnavailable)
		}
		return nil, fmt.Errorf("no %s documents found in %s: %w",
			viewgen.ModelFileExtension, locator, viewgen.ErrModelUnavailable)
	}
	return paths, nil
}

// stemMatches reports whether the file's stem (name without the model
// extension) ends with the selector, case-insensitively.
func stemMatches(name, selector string) bool {
	stem := strings.TrimSuffix(strings.ToLower(name), viewgen.ModelFileExtension)
	return strings.HasSuffix(stem, strings.ToLower(selector))
}

// instantiate reads and parses one candidate, verifying it declares a
// supported schema version.
func (p *FileProvider) instantiate(path string) (*viewgen.Model, error) {
	content, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	text := string(content)
	doc, err := edm.Parse(text, path)
	if err != nil {
		return nil, err
	}

	version, err := p.ns.VersionFromDocument(doc)
	if err != nil {
		return nil, err
	}

	return &viewgen.Model{
		Path:    path,
		ID:      ModelID(path),
		Version: version,
		Text:    text,
	}, nil
}
