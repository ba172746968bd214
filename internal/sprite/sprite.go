// Package sprite splits an SVG sprite into one standalone SVG document per symbol.
package sprite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Size markers for icon filenames. Symbol ids carrying smallMarker are
// small icons promoted to 24px; all others are large 100px icons.
const (
	smallMarker = "-12"
	smallSuffix = "-24px.svg"
	largeSuffix = "-100px.svg"
)

const (
	xmlnsPrefix = "xmlns"
	xmlURL      = "http://www.w3.org/XML/1998/namespace"
	header      = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Document is a parsed sprite.
type Document struct {
	XMLName xml.Name   `xml:"svg"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Symbols []Symbol   `xml:"symbol"`
}

// Symbol is one icon definition. Content holds the inner markup verbatim.
type Symbol struct {
	Attrs   []xml.Attr `xml:",any,attr"`
	Content []byte     `xml:",innerxml"`
}

// Parse decodes a sprite document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid sprite: %w", err)
	}
	return &doc, nil
}

// ID returns the symbol's id attribute.
func (s Symbol) ID() (string, bool) {
	for _, a := range s.Attrs {
		if a.Name.Space == "" && a.Name.Local == "id" {
			return a.Value, true
		}
	}
	return "", false
}

// FileName derives the output filename for a symbol id. Only the first
// occurrence of the small-size marker matters:
//
//	river-12px    -> river-24px.svg
//	peak-12-extra -> peak-24px.svg
//	mountain      -> mountain-100px.svg
func FileName(id string) string {
	if before, _, found := strings.Cut(id, smallMarker); found {
		return before + smallSuffix
	}
	return id + largeSuffix
}

// Render builds a standalone SVG document whose root carries the symbol's
// attributes and content. Namespace declarations of the sprite root that
// the symbol does not redeclare are carried over so that prefixed content
// stays resolvable.
func (d *Document) Render(s Symbol) []byte {
	prefixes := d.namespacePrefixes()
	addPrefixes(prefixes, s.Attrs)

	attrs := make([]xml.Attr, 0, len(s.Attrs)+len(d.Attrs))
	attrs = append(attrs, s.Attrs...)
	declared := make(map[string]bool)
	for _, a := range s.Attrs {
		if isNamespaceDecl(a) {
			declared[qualifiedName(a.Name, prefixes)] = true
		}
	}
	for _, a := range d.Attrs {
		if isNamespaceDecl(a) && !declared[qualifiedName(a.Name, prefixes)] {
			attrs = append(attrs, a)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("<svg")
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(qualifiedName(a.Name, prefixes))
		buf.WriteString(`="`)
		_ = xml.EscapeText(&buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(bytes.TrimSpace(s.Content)) == 0 {
		buf.WriteString("/>")
		return buf.Bytes()
	}
	buf.WriteByte('>')
	buf.Write(s.Content)
	buf.WriteString("</svg>")
	return buf.Bytes()
}

// namespacePrefixes maps namespace URLs declared on the root to their prefixes.
func (d *Document) namespacePrefixes() map[string]string {
	prefixes := map[string]string{xmlURL: "xml"}
	addPrefixes(prefixes, d.Attrs)
	return prefixes
}

// addPrefixes records the prefixed namespace declarations among attrs.
// Later declarations of the same URL replace earlier ones.
func addPrefixes(prefixes map[string]string, attrs []xml.Attr) {
	for _, a := range attrs {
		if a.Name.Space == xmlnsPrefix {
			prefixes[a.Value] = a.Name.Local
		}
	}
}

func isNamespaceDecl(a xml.Attr) bool {
	return a.Name.Space == xmlnsPrefix || (a.Name.Space == "" && a.Name.Local == xmlnsPrefix)
}

// qualifiedName turns a decoded attribute name back into its prefixed form.
// The decoder replaces prefixes with namespace URLs.
func qualifiedName(n xml.Name, prefixes map[string]string) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == xmlnsPrefix:
		return xmlnsPrefix + ":" + n.Local
	}
	if prefix, ok := prefixes[n.Space]; ok {
		return prefix + ":" + n.Local
	}
	return n.Local
}
