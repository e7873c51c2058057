package parser

import (
	"errors"
	"fmt"
	"strings"

	"bilingual-export/internal/format"
	"bilingual-export/internal/textutil"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// xliffNamespace is the XLIFF 1.2 namespace shared by .xlf, .sdlxliff,
// .mxliff and .mqxliff files.
const xliffNamespace = "urn:oasis:names:tc:xliff:document:1.2"

// XLIFFParser extracts translation units from XLIFF-family documents.
type XLIFFParser struct{}

func NewXLIFFParser() *XLIFFParser { return &XLIFFParser{} }

func (p *XLIFFParser) CanParse(kind format.Kind) bool {
	return kind == format.XLIFF
}

func (p *XLIFFParser) Parse(filePath string) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := tree.ReadFromFile(filePath); err != nil {
		return nil, &MalformedInputError{Path: filePath, Format: format.XLIFF, Err: err}
	}
	root := tree.Root()
	if root == nil {
		return nil, &MalformedInputError{Path: filePath, Format: format.XLIFF, Err: errors.New("no root element")}
	}

	file := findFirst(root, "file")
	if file == nil {
		return nil, &MissingMetadataError{Path: filePath, Attribute: "file"}
	}
	sourceLang, ok := attr(file, "source-language")
	if !ok {
		return nil, &MissingMetadataError{Path: filePath, Attribute: "source-language"}
	}
	targetLang, ok := attr(file, "target-language")
	if !ok {
		return nil, &MissingMetadataError{Path: filePath, Attribute: "target-language"}
	}

	doc := &Document{
		Path:           filePath,
		Format:         format.XLIFF,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	}

	for _, unit := range findAll(root, "trans-unit") {
		doc.Units = append(doc.Units, TranslationUnit{
			Source: textutil.StripTags(elementToString(findFirst(unit, "source"))),
			Target: textutil.StripTags(elementToString(findFirst(unit, "target"))),
		})
	}

	return doc, nil
}

// attr returns the value of an unprefixed attribute.
func attr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// findFirst returns the first descendant of e, in document order, with the
// given local name in the XLIFF namespace.
func findFirst(e *etree.Element, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if isXLIFF(c, local) {
			return c
		}
		if found := findFirst(c, local); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of e, in document order, with the given
// local name in the XLIFF namespace.
func findAll(e *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if isXLIFF(c, local) {
			out = append(out, c)
		}
		out = append(out, findAll(c, local)...)
	}
	return out
}

func isXLIFF(e *etree.Element, local string) bool {
	return e.Tag == local && e.NamespaceURI() == xliffNamespace
}

// elementToString returns the text of e up to its first child element,
// followed by the XML serialization of every child element and the text
// trailing it. Text inside and after child elements stays escaped. The
// result is trimmed; a nil element yields "".
func elementToString(e *etree.Element) string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	inChildren := false
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if inChildren {
				b.WriteString(escapeText(t.Data))
			} else {
				b.WriteString(t.Data)
			}
		case *etree.Element:
			inChildren = true
			writeElement(&b, t)
		}
	}
	return strings.TrimSpace(b.String())
}

// writeElement serializes e and its subtree. Comments and processing
// instructions are dropped.
func writeElement(b *strings.Builder, e *etree.Element) {
	b.WriteByte('<')
	b.WriteString(e.FullTag())
	for _, a := range e.Attr {
		fmt.Fprintf(b, " %s=\"%s\"", a.FullKey(), escapeAttr(a.Value))
	}

	hasContent := false
	for _, tok := range e.Child {
		switch tok.(type) {
		case *etree.CharData, *etree.Element:
			hasContent = true
		}
	}
	if !hasContent {
		b.WriteString(" />")
		return
	}

	b.WriteByte('>')
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(escapeText(t.Data))
		case *etree.Element:
			writeElement(b, t)
		}
	}
	b.WriteString("</")
	b.WriteString(e.FullTag())
	b.WriteByte('>')
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\r", "&#13;", "\n", "&#10;", "\t", "&#09;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
