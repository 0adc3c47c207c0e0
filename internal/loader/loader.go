// Package loader implements the default schema loader: it turns the three
// extracted sections into a validated model, reporting schema problems as
// diagnostics rather than errors.
//
// The structural rules are deliberately shallow — declarations are inspected
// by element name and attributes, not against a full grammar. A section that
// fails them produces Error diagnostics and no model; recoverable oddities
// produce Warnings.
package loader

import (
	"fmt"

	"github.com/vkm-labs/viewgen/internal/edm"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// Element names recognized inside sections.
const (
	ElementEntity        = "Entity"
	ElementTable         = "Table"
	ElementEntityMapping = "EntityMapping"

	AttrName   = "Name"
	AttrEntity = "Entity"
	AttrTable  = "Table"
)

// StructuralLoader implements viewgen.SchemaLoader.
// It is stateless and safe for concurrent use.
type StructuralLoader struct {
	ns *edm.Namespaces
}

// New creates a structural loader. Panics if ns is nil.
func New(ns *edm.Namespaces) *StructuralLoader {
	if ns == nil {
		panic("ns cannot be nil")
	}
	return &StructuralLoader{ns: ns}
}

// Load implements viewgen.SchemaLoader. The returned model is nil iff the
// diagnostic list contains Error severity; the error return is reserved for
// infrastructure failures and is always nil here.
func (l *StructuralLoader) Load(conceptual, storage, mapping viewgen.Section) (*viewgen.ValidatedModel, viewgen.DiagnosticList, error) {
	var diags viewgen.DiagnosticList

	conceptualRoot := l.parseSection(conceptual, &diags)
	storageRoot := l.parseSection(storage, &diags)
	mappingRoot := l.parseSection(mapping, &diags)

	if diags.HasErrors() {
		return nil, diags, nil
	}

	entities := collectNamed(conceptualRoot, ElementEntity, AttrName, conceptual.Kind, &diags)
	tables := collectNamed(storageRoot, ElementTable, AttrName, storage.Kind, &diags)

	if len(entities) == 0 {
		diags = append(diags, viewgen.Diagnostic{
			Severity: viewgen.SeverityWarning,
			Location: conceptual.Kind.String(),
			Message:  "section declares no entities; generated views will be empty",
		})
	}

	mapped := map[string]bool{}
	mappingRoot.Walk(func(e *edm.Element) bool {
		if e.Name.Local != ElementEntityMapping {
			return true
		}
		entity := attrValue(e, AttrEntity)
		table := attrValue(e, AttrTable)

		if entity == "" {
			diags = append(diags, viewgen.Diagnostic{
				Severity: viewgen.SeverityError,
				Location: mapping.Kind.String(),
				Message:  "<EntityMapping> is missing the Entity attribute",
			})
			return true
		}
		if _, ok := entities[entity]; !ok {
			diags = append(diags, viewgen.Diagnostic{
				Severity: viewgen.SeverityError,
				Location: mapping.Kind.String(),
				Message:  fmt.Sprintf("mapping references undeclared entity %q", entity),
			})
			return true
		}
		if table != "" {
			if _, ok := tables[table]; !ok {
				diags = append(diags, viewgen.Diagnostic{
					Severity: viewgen.SeverityError,
					Location: mapping.Kind.String(),
					Message:  fmt.Sprintf("mapping of entity %q references undeclared table %q", entity, table),
				})
				return true
			}
		}
		mapped[entity] = true
		return true
	})

	if diags.HasErrors() {
		return nil, diags, nil
	}

	model := &viewgen.ValidatedModel{
		Version:    conceptual.Version,
		Conceptual: conceptual,
		Storage:    storage,
		Mapping:    mapping,
	}
	for _, name := range orderOf(conceptualRoot, ElementEntity, AttrName) {
		model.Entities = append(model.Entities, viewgen.Entity{Name: name, Mapped: mapped[name]})
	}

	return model, diags, nil
}

// parseSection re-parses a section document and checks its root against the
// expected qualified name for the section's kind and version. Problems are
// reported as Error diagnostics; a nil root signals failure.
func (l *StructuralLoader) parseSection(section viewgen.Section, diags *viewgen.DiagnosticList) *edm.Element {
	doc, err := edm.Parse(section.XML, "")
	if err != nil {
		*diags = append(*diags, viewgen.Diagnostic{
			Severity: viewgen.SeverityError,
			Location: section.Kind.String(),
			Message:  fmt.Sprintf("section is not parseable: %v", err),
		})
		return nil
	}

	expectedNS, err := l.ns.NamespaceFor(section.Version, section.Kind)
	if err != nil {
		*diags = append(*diags, viewgen.Diagnostic{
			Severity: viewgen.SeverityError,
			Location: section.Kind.String(),
			Message:  err.Error(),
		})
		return nil
	}

	if doc.Root.Name.Local != section.Kind.String() || doc.Root.Name.Space != expectedNS {
		*diags = append(*diags, viewgen.Diagnostic{
			Severity: viewgen.SeverityError,
			Location: section.Kind.String(),
			Message: fmt.Sprintf("section root is <%s> in %q, expected <%s> in %q",
				doc.Root.Name.Local, doc.Root.Name.Space, section.Kind, expectedNS),
		})
		return nil
	}

	return doc.Root
}

// collectNamed gathers declarations by their Name attribute, reporting
// duplicates and anonymous declarations as Error diagnostics.
func collectNamed(root *edm.Element, element, attr string, kind viewgen.SectionKind, diags *viewgen.DiagnosticList) map[string]bool {
	found := map[string]bool{}
	if root == nil {
		return found
	}

	root.Walk(func(e *edm.Element) bool {
		if e.Name.Local != element {
			return true
		}
		name := attrValue(e, attr)
		if name == "" {
			*diags = append(*diags, viewgen.Diagnostic{
				Severity: viewgen.SeverityError,
				Location: kind.String(),
				Message:  fmt.Sprintf("<%s> is missing the %s attribute", element, attr),
			})
			return true
		}
		if found[name] {
			*diags = append(*diags, viewgen.Diagnostic{
				Severity: viewgen.SeverityError,
				Location: kind.String(),
				Message:  fmt.Sprintf("duplicate <%s> declaration %q", element, name),
			})
			return true
		}
		found[name] = true
		return true
	})
	return found
}

// orderOf returns declaration names in document order.
func orderOf(root *edm.Element, element, attr string) []string {
	var names []string
	seen := map[string]bool{}
	root.Walk(func(e *edm.Element) bool {
		if e.Name.Local == element {
			if name := attrValue(e, attr); name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		return true
	})
	return names
}

func attrValue(e *edm.Element, name string) string {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
