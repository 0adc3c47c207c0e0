package edm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// DocumentError is a structural parse failure with location context and an
// actionable hint. It unwraps to viewgen.ErrMalformedDocument so callers can
// classify it with errors.Is.
type DocumentError struct {
	Path    string // Source path, empty if the document came from memory
	Line    int    // Line number (0 if unknown)
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *DocumentError) Error() string {
	location := e.Path
	if location == "" {
		location = "composite document"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("malformed document %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap ties DocumentError into the sentinel taxonomy.
func (e *DocumentError) Unwrap() error {
	return viewgen.ErrMalformedDocument
}

// Element is one node of the parsed composite document. Element names carry
// the resolved namespace URI in Name.Space.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element

	// Text is the element's concatenated character data.
	Text string
}

// Document is a parsed composite document plus the exact text it was parsed
// from. Text is the fingerprint input and must never be normalized.
type Document struct {
	Root *Element
	Text string

	// Path is the source file, for error reporting. Empty for in-memory
	// documents.
	Path string
}

// Parse reads a composite document from its exact serialized text.
// It keeps text verbatim on the returned Document and builds an element tree
// with namespace-resolved names.
func Parse(text, path string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapXMLError(err, path)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attrs: copyAttrs(t.Attr)}
			if len(stack) == 0 {
				if root != nil {
					return nil, &DocumentError{
						Path:    path,
						Message: "multiple root elements",
						Hint:    "A composite document has exactly one root <Model> element.",
					}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, &DocumentError{
			Path:    path,
			Message: "document contains no elements",
			Hint:    "Expected a version-namespaced <Model> root element.",
		}
	}

	return &Document{Root: root, Text: text, Path: path}, nil
}

// copyAttrs detaches the attribute slice from the decoder's internal buffer.
func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// wrapXMLError converts xml package errors to DocumentError with line numbers.
func wrapXMLError(err error, path string) error {
	if syntaxErr, ok := err.(*xml.SyntaxError); ok {
		return &DocumentError{
			Path:    path,
			Line:    syntaxErr.Line,
			Message: syntaxErr.Msg,
			Hint:    "Check that all XML tags are properly closed and attributes are quoted.",
		}
	}
	return &DocumentError{Path: path, Message: err.Error()}
}

// Walk visits the tree rooted at e in document order, e first.
// Walking stops when fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// XMLString serializes the subtree rooted at e as an independently parseable
// XML document. Namespaces are re-declared as default xmlns attributes
// wherever they change, so the output does not depend on prefix declarations
// inherited from ancestors in the original document.
//
// This is a deep-copy representation for downstream consumers; the
// fingerprint is computed over Document.Text, never over this output.
func (e *Element) XMLString() string {
	var b strings.Builder
	e.appendXML(&b, "")
	return b.String()
}

func (e *Element) appendXML(b *strings.Builder, parentNS string) {
	b.WriteByte('<')
	b.WriteString(e.Name.Local)

	if e.Name.Space != parentNS {
		// Covers the empty-namespace case too: a child that opted out with
		// xmlns="" must not re-inherit the parent's default namespace.
		b.WriteString(` xmlns="`)
		escapeInto(b, e.Name.Space)
		b.WriteByte('"')
	}

	for _, attr := range e.Attrs {
		if isNamespaceDecl(attr) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Name.Local)
		b.WriteString(`="`)
		escapeInto(b, attr.Value)
		b.WriteByte('"')
	}

	text := strings.TrimSpace(e.Text)
	if text == "" && len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	if text != "" {
		escapeInto(b, text)
	}
	for _, child := range e.Children {
		child.appendXML(b, e.Name.Space)
	}
	b.WriteString("</")
	b.WriteString(e.Name.Local)
	b.WriteByte('>')
}

// isNamespaceDecl reports whether an attribute is an xmlns declaration from
// the original document. Those are dropped on serialization; XMLString emits
// its own declarations.
func isNamespaceDecl(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns")
}

func escapeInto(b *strings.Builder, s string) {
	// xml.EscapeText cannot fail on a strings.Builder.
	_ = xml.EscapeText(b, []byte(s))
}
