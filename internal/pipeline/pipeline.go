// Package pipeline runs a single extraction: pick a file, parse it, write the
// text and spreadsheet exports, and report the outcome.
package pipeline

import (
	"errors"
	"fmt"

	"bilingual-export/internal/export"
	"bilingual-export/internal/format"
	"bilingual-export/internal/parser"

	"github.com/rs/zerolog/log"
)

// ErrNoSelection is returned by a FilePicker when no file was chosen.
var ErrNoSelection = errors.New("no file selected")

// FilePicker supplies the input path.
type FilePicker interface {
	Pick() (string, error)
}

// Notifier receives the outcome of every run, successful or not.
type Notifier interface {
	Notify(Outcome)
}

// Outcome summarizes one run.
type Outcome struct {
	Input          string
	Format         format.Kind
	SourceLanguage string
	TargetLanguage string
	// Units is the number of translation units parsed.
	Units int
	// Retained is the number of units left after dropping blank pairs.
	Retained int
	// Preview holds up to PreviewRows of the retained units.
	Preview []parser.TranslationUnit
	// Result is nil when the run failed before exporting or did not export.
	Result *export.Result
	Err    error
}

// PreviewRows caps Outcome.Preview.
const PreviewRows = 5

// Runner wires the collaborators of a run.
type Runner struct {
	Picker   FilePicker
	Notifier Notifier
	// FormatHint overrides extension-based detection when set.
	FormatHint string

	parsers *parser.Registry
}

// NewRunner creates a Runner with the default parsers.
func NewRunner(picker FilePicker, notifier Notifier, formatHint string) *Runner {
	return &Runner{
		Picker:     picker,
		Notifier:   notifier,
		FormatHint: formatHint,
		parsers:    parser.NewRegistry(),
	}
}

// Run picks a file, parses it and writes both exports next to it. Parse
// failures leave no output behind. When the picker returns ErrNoSelection
// the run does nothing and returns it.
func (r *Runner) Run() (Outcome, error) {
	path, err := r.Picker.Pick()
	if err != nil {
		if errors.Is(err, ErrNoSelection) {
			log.Warn().Msg("No file selected, nothing to do")
			return Outcome{}, err
		}
		return r.finish(Outcome{Err: fmt.Errorf("pick file: %w", err)})
	}

	out, doc := r.parse(path)
	if out.Err != nil {
		return r.finish(out)
	}

	result, err := export.FilterAndWrite(doc, path)
	out.Result = result
	out.Err = err
	return r.finish(out)
}

// Inspect parses path and counts the rows an export would keep, without
// writing anything.
func (r *Runner) Inspect(path string) (Outcome, error) {
	out, _ := r.parse(path)
	return r.finish(out)
}

func (r *Runner) parse(path string) (Outcome, *parser.Document) {
	out := Outcome{Input: path}

	doc, err := r.registry().Parse(path, r.FormatHint)
	if err != nil {
		out.Err = err
		return out, nil
	}

	out.Format = doc.Format
	out.SourceLanguage = doc.SourceLanguage
	out.TargetLanguage = doc.TargetLanguage
	out.Units = len(doc.Units)
	rows := export.Filter(doc.Units)
	out.Retained = len(rows)
	out.Preview = rows[:min(len(rows), PreviewRows)]
	return out, doc
}

func (r *Runner) finish(out Outcome) (Outcome, error) {
	if r.Notifier != nil {
		r.Notifier.Notify(out)
	}
	return out, out.Err
}

func (r *Runner) registry() *parser.Registry {
	if r.parsers == nil {
		r.parsers = parser.NewRegistry()
	}
	return r.parsers
}
