package parser

import "bilingual-export/internal/format"

// TranslationUnit is one source/target pair. Its position in
// Document.Units is its ordinal.
type TranslationUnit struct {
	Source string
	Target string
}

// Document is the format-independent result of parsing a translation file.
type Document struct {
	// Path is the file the document was read from.
	Path string
	// Format is the strategy that produced the document.
	Format format.Kind
	// SourceLanguage is the source language tag, possibly empty for PO input.
	SourceLanguage string
	// TargetLanguage is the target language tag.
	TargetLanguage string
	// Units are the translation units in document order.
	Units []TranslationUnit
}

// Sources returns the source strings, index-aligned with Targets.
func (d *Document) Sources() []string {
	out := make([]string, len(d.Units))
	for i, u := range d.Units {
		out[i] = u.Source
	}
	return out
}

// Targets returns the target strings, index-aligned with Sources.
func (d *Document) Targets() []string {
	out := make([]string, len(d.Units))
	for i, u := range d.Units {
		out[i] = u.Target
	}
	return out
}

// Parser is the interface for all translation file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given format.
	CanParse(kind format.Kind) bool
	// Parse extracts the translation units of a file.
	Parse(filePath string) (*Document, error)
}
