package edm

import (
	"fmt"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// SplitResult holds the three extracted sections plus any diagnostics the
// splitter produced (duplicate-section warnings under the first-match
// policy).
type SplitResult struct {
	Version     viewgen.SchemaVersion
	Conceptual  viewgen.Section
	Storage     viewgen.Section
	Mapping     viewgen.Section
	Diagnostics viewgen.DiagnosticList
}

// Split extracts the conceptual, storage, and mapping sections from a
// composite document as independent sub-documents.
//
// The document's schema version is resolved from the root element; each
// section is then located by qualified name (expected local name plus the
// expected namespace for that kind and version) among all descendants, not
// just direct children, since sections may be nested under wrapper elements.
//
// Duplicate handling is policy-driven: first-match takes the first element
// in document order and reports a Warning for the duplicates; strict-unique
// rejects the document. A section with zero matches is always a structural
// error, never a diagnostic.
func Split(doc *Document, ns *Namespaces, policy viewgen.SectionPolicy) (*SplitResult, error) {
	version, err := ns.VersionFromDocument(doc)
	if err != nil {
		return nil, err
	}

	result := &SplitResult{Version: version}

	sections := map[viewgen.SectionKind]*viewgen.Section{
		viewgen.SectionConceptual: &result.Conceptual,
		viewgen.SectionStorage:    &result.Storage,
		viewgen.SectionMapping:    &result.Mapping,
	}

	for _, kind := range []viewgen.SectionKind{viewgen.SectionConceptual, viewgen.SectionStorage, viewgen.SectionMapping} {
		uri, err := ns.NamespaceFor(version, kind)
		if err != nil {
			return nil, err
		}

		matches := findAll(doc.Root, kind.String(), uri)
		switch {
		case len(matches) == 0:
			return nil, fmt.Errorf("composite document has no <%s> section in namespace %q: %w",
				kind, uri, viewgen.ErrSectionNotFound)

		case len(matches) > 1 && policy == viewgen.SectionPolicyStrictUnique:
			return nil, fmt.Errorf("composite document has %d <%s> sections, expected exactly one: %w",
				len(matches), kind, viewgen.ErrAmbiguousSection)

		case len(matches) > 1:
			result.Diagnostics = append(result.Diagnostics, viewgen.Diagnostic{
				Severity: viewgen.SeverityWarning,
				Location: kind.String(),
				Message: fmt.Sprintf("%d <%s> sections found; using the first in document order",
					len(matches), kind),
			})
		}

		*sections[kind] = viewgen.Section{
			Kind:    kind,
			Version: version,
			XML:     matches[0].XMLString(),
		}
	}

	return result, nil
}

// findAll collects every descendant element (the root included) whose
// qualified name matches, in document order.
func findAll(root *Element, local, space string) []*Element {
	var matches []*Element
	root.Walk(func(e *Element) bool {
		if e.Name.Local == local && e.Name.Space == space {
			matches = append(matches, e)
		}
		return true
	})
	return matches
}
