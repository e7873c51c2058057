// Package export filters a parsed document and writes it as a tab-separated
// text file and a spreadsheet.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bilingual-export/internal/parser"

	"github.com/rs/zerolog/log"
)

// ErrOverwritesInput is wrapped by a WriteError when an output path is the
// input file itself.
var ErrOverwritesInput = errors.New("output path is the input file")

// Target names an output artifact.
type Target string

const (
	TargetText  Target = "txt"
	TargetSheet Target = "xlsx"
)

// WriteError reports a failed write of one output target.
type WriteError struct {
	Target Target
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s output %s: %v", e.Target, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Artifact describes one output target of a run.
type Artifact struct {
	Target Target
	Path   string
	Rows   int
	Err    error
}

// Written reports whether the artifact was written successfully.
func (a Artifact) Written() bool { return a.Err == nil }

// Result holds both output artifacts.
type Result struct {
	Text  Artifact
	Sheet Artifact
}

// Paths returns the paths of the artifacts that were written.
func (r *Result) Paths() []string {
	var paths []string
	for _, a := range []Artifact{r.Text, r.Sheet} {
		if a.Written() {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// OutputPaths derives the .txt and .xlsx paths from basePath by replacing
// its extension.
func OutputPaths(basePath string) (txtPath, xlsxPath string) {
	stem := strings.TrimSuffix(basePath, filepath.Ext(basePath))
	return stem + ".txt", stem + ".xlsx"
}

// FilterAndWrite drops blank pairs from doc and writes the remaining rows to
// both targets. Both writes are always attempted; a failure of one does not
// undo the other. The returned error joins a *WriteError per failed target.
func FilterAndWrite(doc *parser.Document, basePath string) (*Result, error) {
	rows := Filter(doc.Units)
	txtPath, xlsxPath := OutputPaths(basePath)

	result := &Result{
		Text:  Artifact{Target: TargetText, Path: txtPath, Rows: len(rows)},
		Sheet: Artifact{Target: TargetSheet, Path: xlsxPath, Rows: len(rows)},
	}

	if err := guardInput(txtPath, basePath); err != nil {
		result.Text.Err = &WriteError{Target: TargetText, Path: txtPath, Err: err}
		log.Error().Err(err).Str("path", txtPath).Msg("Text export skipped")
	} else if err := WriteTSV(txtPath, doc, rows); err != nil {
		result.Text.Err = &WriteError{Target: TargetText, Path: txtPath, Err: err}
		log.Error().Err(err).Str("path", txtPath).Msg("Text export failed")
	} else {
		log.Info().Str("path", txtPath).Int("rows", len(rows)).Msg("Exported text file")
	}

	if err := guardInput(xlsxPath, basePath); err != nil {
		result.Sheet.Err = &WriteError{Target: TargetSheet, Path: xlsxPath, Err: err}
		log.Error().Err(err).Str("path", xlsxPath).Msg("Spreadsheet export skipped")
	} else if err := WriteXLSX(xlsxPath, rows); err != nil {
		result.Sheet.Err = &WriteError{Target: TargetSheet, Path: xlsxPath, Err: err}
		log.Error().Err(err).Str("path", xlsxPath).Msg("Spreadsheet export failed")
	} else {
		log.Info().Str("path", xlsxPath).Int("rows", len(rows)).Msg("Exported spreadsheet")
	}

	return result, errors.Join(result.Text.Err, result.Sheet.Err)
}

// guardInput fails when writing outPath would clobber the input, as happens
// for a "notes.txt" input parsed with a format hint.
func guardInput(outPath, inputPath string) error {
	if filepath.Clean(outPath) == filepath.Clean(inputPath) {
		return ErrOverwritesInput
	}
	return nil
}
