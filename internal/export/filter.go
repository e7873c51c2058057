package export

import (
	"bilingual-export/internal/parser"
	"bilingual-export/internal/textutil"
)

// Filter returns the units with at least one non-blank side, in their
// original relative order. The input is not modified.
func Filter(units []parser.TranslationUnit) []parser.TranslationUnit {
	rows := make([]parser.TranslationUnit, 0, len(units))
	for _, u := range units {
		if textutil.IsBlank(u.Source) && textutil.IsBlank(u.Target) {
			continue
		}
		rows = append(rows, u)
	}
	return rows
}
