// Package generator implements the baseline view generator: a deterministic
// emitter that turns a validated model into mapping-view source stubs for
// either target language.
//
// The emitted body is plain text to the rest of the system; the orchestrator
// stamps it with the document fingerprint and never inspects it.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// ViewGenerator implements viewgen.Generator.
// It is stateless and safe for concurrent use.
type ViewGenerator struct{}

// New creates a baseline view generator.
func New() ViewGenerator {
	return ViewGenerator{}
}

// Generate implements viewgen.Generator. Output depends only on the model
// and the language: no timestamps, no environment, no locale.
func (g ViewGenerator) Generate(ctx context.Context, model *viewgen.ValidatedModel, lang viewgen.Language) (string, viewgen.DiagnosticList, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if model == nil {
		return "", nil, fmt.Errorf("model cannot be nil")
	}

	diags := g.analyze(model)

	var b strings.Builder
	switch lang {
	case viewgen.LanguageVB:
		g.emitVB(&b, model)
	default:
		g.emitCSharp(&b, model)
	}
	return b.String(), diags, nil
}

// ValidateOnly implements viewgen.Generator: it runs only the
// diagnostic-producing phase without emitting text.
func (g ViewGenerator) ValidateOnly(ctx context.Context, model *viewgen.ValidatedModel, lang viewgen.Language) (viewgen.DiagnosticList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	return g.analyze(model), nil
}

// analyze produces the generation diagnostics shared by Generate and
// ValidateOnly.
func (g ViewGenerator) analyze(model *viewgen.ValidatedModel) viewgen.DiagnosticList {
	var diags viewgen.DiagnosticList
	for _, entity := range model.Entities {
		if !entity.Mapped {
			diags = append(diags, viewgen.Diagnostic{
				Severity: viewgen.SeverityWarning,
				Location: viewgen.SectionMapping.String(),
				Message:  fmt.Sprintf("entity %q has no mapping; no view emitted for it", entity.Name),
			})
		}
	}
	return diags
}

func (g ViewGenerator) emitCSharp(b *strings.Builder, model *viewgen.ValidatedModel) {
	fmt.Fprintf(b, "// <auto-generated>\n")
	fmt.Fprintf(b, "//     Mapping views generated from a %s composite model. Do not edit.\n", model.Version)
	fmt.Fprintf(b, "// </auto-generated>\n\n")
	fmt.Fprintf(b, "namespace Generated.Views\n{\n")
	fmt.Fprintf(b, "    internal static class MappingViews\n    {\n")
	for _, entity := range model.Entities {
		if !entity.Mapped {
			continue
		}
		fmt.Fprintf(b, "        public const string %s = \"view:%s\";\n", entity.Name, entity.Name)
	}
	fmt.Fprintf(b, "    }\n}\n")
}

func (g ViewGenerator) emitVB(b *strings.Builder, model *viewgen.ValidatedModel) {
	fmt.Fprintf(b, "' <auto-generated>\n")
	fmt.Fprintf(b, "'     Mapping views generated from a %s composite model. Do not edit.\n", model.Version)
	fmt.Fprintf(b, "' </auto-generated>\n\n")
	fmt.Fprintf(b, "Namespace Generated.Views\n")
	fmt.Fprintf(b, "    Friend Module MappingViews\n")
	for _, entity := range model.Entities {
		if !entity.Mapped {
			continue
		}
		fmt.Fprintf(b, "        Public Const %s As String = \"view:%s\"\n", entity.Name, entity.Name)
	}
	fmt.Fprintf(b, "    End Module\nEnd Namespace\n")
}
