package parser

import (
	"fmt"

	"bilingual-export/internal/format"

	"github.com/rs/zerolog/log"
)

// Registry dispatches a detected format to the parser that handles it.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a Registry with the XLIFF and PO parsers.
func NewRegistry() *Registry {
	return &Registry{
		parsers: []Parser{
			NewXLIFFParser(),
			NewPOParser(),
		},
	}
}

// Parse detects the format of filePath (hint first, extension second) and
// parses it. Unsupported formats fail before the file is opened.
func (r *Registry) Parse(filePath, hint string) (*Document, error) {
	kind, err := format.Detect(filePath, hint)
	if err != nil {
		return nil, err
	}

	for _, p := range r.parsers {
		if !p.CanParse(kind) {
			continue
		}
		doc, err := p.Parse(filePath)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("file", filePath).
			Stringer("format", kind).
			Int("units", len(doc.Units)).
			Msg("Parsed document")
		return doc, nil
	}

	return nil, fmt.Errorf("no parser registered for %s", kind)
}

// Parse parses filePath with the default registry.
func Parse(filePath, hint string) (*Document, error) {
	return NewRegistry().Parse(filePath, hint)
}
