// Package edm models the composite model document: the version-bearing
// namespace tables, the parsed element tree, and the splitter that extracts
// the conceptual, storage, and mapping sections as independent documents.
//
// # Composite document shape
//
// A composite document is a single XML file whose root element is a
// version-namespaced <Model> wrapper containing exactly one <Conceptual>,
// one <Storage>, and one <Mapping> section, each in its own
// version-specific namespace:
//
//	<Model xmlns="urn:schemas-vkm:model:composite:v3">
//	  <Conceptual xmlns="urn:schemas-vkm:model:conceptual:v3">...</Conceptual>
//	  <Storage xmlns="urn:schemas-vkm:model:storage:v3">...</Storage>
//	  <Mapping xmlns="urn:schemas-vkm:model:mapping:v3">...</Mapping>
//	</Model>
//
// Three schema generations are supported. The namespace tables are immutable
// after construction and safe to share read-only across concurrent runs.
//
// # Design principles
//
//  1. Fail Fast: table invertibility is validated at construction, not at
//     lookup time.
//  2. Exact text is king: Document keeps the source text untouched; the
//     fingerprint is computed over it, never over a re-serialization.
//  3. Pure Go: stdlib encoding/xml only.
package edm
