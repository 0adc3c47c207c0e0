package edm

import (
	"fmt"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// forwardTable is the fixed version -> kind -> namespace URI mapping covering
// the three supported schema generations. The reverse table is derived from
// it at construction time.
var forwardTable = map[viewgen.SchemaVersion]map[viewgen.SectionKind]string{
	viewgen.SchemaV1: {
		viewgen.SectionConceptual: "urn:schemas-vkm:model:conceptual:v1",
		viewgen.SectionStorage:    "urn:schemas-vkm:model:storage:v1",
		viewgen.SectionMapping:    "urn:schemas-vkm:model:mapping:v1",
		viewgen.SectionComposite:  "urn:schemas-vkm:model:composite:v1",
	},
	viewgen.SchemaV2: {
		viewgen.SectionConceptual: "urn:schemas-vkm:model:conceptual:v2",
		viewgen.SectionStorage:    "urn:schemas-vkm:model:storage:v2",
		viewgen.SectionMapping:    "urn:schemas-vkm:model:mapping:v2",
		viewgen.SectionComposite:  "urn:schemas-vkm:model:composite:v2",
	},
	viewgen.SchemaV3: {
		viewgen.SectionConceptual: "urn:schemas-vkm:model:conceptual:v3",
		viewgen.SectionStorage:    "urn:schemas-vkm:model:storage:v3",
		viewgen.SectionMapping:    "urn:schemas-vkm:model:mapping:v3",
		viewgen.SectionComposite:  "urn:schemas-vkm:model:composite:v3",
	},
}

// Namespaces resolves between schema versions and the namespace URIs used
// for each section kind. Immutable after construction; safe to share
// read-only across goroutines.
type Namespaces struct {
	forward map[viewgen.SchemaVersion]map[viewgen.SectionKind]string
	reverse map[string]viewgen.SchemaVersion
}

// NewNamespaces builds the bidirectional namespace tables and validates that
// the forward table is invertible. A duplicate URI across versions would make
// the reverse mapping ambiguous; that is a configuration error surfaced here,
// at process start, not at call time.
func NewNamespaces() (*Namespaces, error) {
	reverse := make(map[string]viewgen.SchemaVersion, len(forwardTable)*len(viewgen.SectionKinds()))

	for _, version := range viewgen.SchemaVersions() {
		kinds, ok := forwardTable[version]
		if !ok {
			return nil, fmt.Errorf("namespace table missing version %s", version)
		}
		for _, kind := range viewgen.SectionKinds() {
			uri, ok := kinds[kind]
			if !ok || uri == "" {
				return nil, fmt.Errorf("namespace table missing entry for %s/%s", version, kind)
			}
			if existing, dup := reverse[uri]; dup {
				return nil, fmt.Errorf("namespace table not invertible: %q maps to both %s and %s",
					uri, existing, version)
			}
			reverse[uri] = version
		}
	}

	return &Namespaces{forward: forwardTable, reverse: reverse}, nil
}

// MustNamespaces is NewNamespaces for wiring paths where a table error is
// unrecoverable. It panics on construction failure.
func MustNamespaces() *Namespaces {
	ns, err := NewNamespaces()
	if err != nil {
		panic(err)
	}
	return ns
}

// NamespaceFor returns the namespace URI expected for a section kind under a
// schema version. Total over the fixed table; fails only for undefined enum
// values.
func (n *Namespaces) NamespaceFor(version viewgen.SchemaVersion, kind viewgen.SectionKind) (string, error) {
	kinds, ok := n.forward[version]
	if !ok {
		return "", fmt.Errorf("unsupported schema version %s", version)
	}
	uri, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("unsupported section kind %s", kind)
	}
	return uri, nil
}

// VersionFor resolves a namespace URI back to its schema version.
func (n *Namespaces) VersionFor(uri string) (viewgen.SchemaVersion, error) {
	version, ok := n.reverse[uri]
	if !ok {
		return 0, fmt.Errorf("namespace %q is not a supported schema namespace: %w",
			uri, viewgen.ErrUnknownNamespace)
	}
	return version, nil
}

// VersionFromDocument inspects the document's root element and resolves the
// schema version it declares. The root's local name must be the composite
// wrapper name; its namespace must be a known composite namespace.
func (n *Namespaces) VersionFromDocument(doc *Document) (viewgen.SchemaVersion, error) {
	if doc == nil || doc.Root == nil {
		return 0, fmt.Errorf("document has no root element: %w", viewgen.ErrMalformedDocument)
	}

	wrapper := viewgen.SectionComposite.String()
	if doc.Root.Name.Local != wrapper {
		return 0, fmt.Errorf("root element is <%s>, expected <%s>: %w",
			doc.Root.Name.Local, wrapper, viewgen.ErrMalformedDocument)
	}

	return n.VersionFor(doc.Root.Name.Space)
}
