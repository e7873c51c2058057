package parser

import (
	"fmt"

	"bilingual-export/internal/format"
)

// MalformedInputError reports that the underlying reader could not build a
// document from the file.
type MalformedInputError struct {
	Path   string
	Format format.Kind
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s input %s: %v", e.Format, e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// MissingMetadataError reports a required language attribute absent from
// XLIFF input.
type MissingMetadataError struct {
	Path      string
	Attribute string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("missing metadata %q in %s", e.Attribute, e.Path)
}
