// Package junit builds JUnit-style XML reports from parsed cargo test modules.
package junit

import (
	"io"
	"strings"
)

// Declaration is the first line of every serialized report.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Node is a child of an Element: *Element, Text or CData.
type Node interface {
	write(b *strings.Builder)
}

// Attr is a single attribute. Elements keep attributes in insertion order
// and allow duplicate names.
type Attr struct {
	Name  string
	Value string
}

// Element is an XML element with ordered attributes and children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Text is character content that is escaped on output.
type Text string

// CData is character content written verbatim inside a CDATA section.
// Content containing "]]>" produces malformed XML; it is not split.
type CData string

// NewElement creates an element with the given attributes.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// AddElement appends a new child element and returns it.
func (e *Element) AddElement(name string, attrs ...Attr) *Element {
	child := NewElement(name, attrs...)
	e.Children = append(e.Children, child)
	return child
}

// AddText appends escaped text content.
func (e *Element) AddText(s string) *Element {
	e.Children = append(e.Children, Text(s))
	return e
}

// AddCData appends a CDATA section.
func (e *Element) AddCData(s string) *Element {
	e.Children = append(e.Children, CData(s))
	return e
}

// Elements returns the child elements, skipping text and CDATA nodes.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Attr returns the value of the first attribute with the given name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// String renders the element without the XML declaration.
func (e *Element) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Element) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(Escape(a.Value))
		b.WriteByte('"')
	}
	if len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

func (t Text) write(b *strings.Builder) {
	b.WriteString(Escape(string(t)))
}

func (c CData) write(b *strings.Builder) {
	b.WriteString("<![CDATA[")
	b.WriteString(string(c))
	b.WriteString("]]>")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML special characters with named entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Serialize renders the full document: declaration line, element tree and a
// trailing newline.
func Serialize(root *Element) string {
	var b strings.Builder
	b.WriteString(Declaration)
	b.WriteByte('\n')
	root.write(&b)
	b.WriteByte('\n')
	return b.String()
}

// Write serializes root to w in a single write.
func Write(w io.Writer, root *Element) error {
	_, err := io.WriteString(w, Serialize(root))
	return err
}
