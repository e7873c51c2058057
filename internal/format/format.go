// Package format maps input files to the extraction strategy that handles them.
package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Kind identifies an extraction strategy.
type Kind int

const (
	// Unknown is the zero Kind; it never reaches a parser.
	Unknown Kind = iota
	// XLIFF covers every XML interchange format sharing the XLIFF 1.2
	// trans-unit/source/target structure.
	XLIFF
	// PO is a gettext catalogue.
	PO
)

func (k Kind) String() string {
	switch k {
	case XLIFF:
		return "xliff"
	case PO:
		return "po"
	default:
		return "unknown"
	}
}

// SupportedExtensions lists the file extensions handled by the tool.
var SupportedExtensions = map[string]Kind{
	".xlf":      XLIFF,
	".sdlxliff": XLIFF,
	".mxliff":   XLIFF,
	".mqxliff":  XLIFF,
	".po":       PO,
}

// names lets a hint name the strategy instead of an extension.
var names = map[string]Kind{
	"xliff": XLIFF,
	"xlf":   XLIFF,
	"po":    PO,
}

// UnsupportedFormatError is returned when neither the hint nor the file
// extension selects a known strategy.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported format %q: %s", e.Ext, e.Path)
}

// Detect selects the Kind for path. A non-empty hint takes precedence over
// the extension and may be a strategy name ("xliff", "po") or an extension
// with or without the leading dot.
func Detect(path, hint string) (Kind, error) {
	if hint = strings.ToLower(strings.TrimSpace(hint)); hint != "" {
		if k, ok := names[hint]; ok {
			return k, nil
		}
		ext := hint
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if k, ok := SupportedExtensions[ext]; ok {
			return k, nil
		}
		return Unknown, &UnsupportedFormatError{Path: path, Ext: hint}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if k, ok := SupportedExtensions[ext]; ok {
		return k, nil
	}
	return Unknown, &UnsupportedFormatError{Path: path, Ext: ext}
}

// Extensions returns the supported extensions for kind, sorted. Unknown
// returns every supported extension.
func Extensions(kind Kind) []string {
	var exts []string
	for ext, k := range SupportedExtensions {
		if kind == Unknown || k == kind {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
