// Package report turns run outcomes into log lines and human or machine
// readable summaries.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"bilingual-export/internal/export"
	"bilingual-export/internal/format"
	"bilingual-export/internal/parser"
	"bilingual-export/internal/pipeline"
	"bilingual-export/internal/textutil"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// Format selects how a Summary is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatNone Format = "none"
)

// ParseFormat validates a report format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON, FormatNone:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, yaml, json or none)", s)
	}
}

// Artifact is the rendered form of one output file.
type Artifact struct {
	Path  string `json:"path" yaml:"path"`
	Rows  int    `json:"rows" yaml:"rows"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Row is one previewed translation unit.
type Row struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// previewWidth caps each previewed field in text reports.
const previewWidth = 40

// Summary is the rendered form of a pipeline.Outcome.
type Summary struct {
	Input          string              `json:"input" yaml:"input"`
	Format         string              `json:"format,omitempty" yaml:"format,omitempty"`
	SourceLanguage string              `json:"source_language" yaml:"source_language"`
	TargetLanguage string              `json:"target_language" yaml:"target_language"`
	Units          int                 `json:"units" yaml:"units"`
	Retained       int                 `json:"retained" yaml:"retained"`
	Preview        []Row               `json:"preview,omitempty" yaml:"preview,omitempty"`
	Outputs        map[string]Artifact `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Status         string              `json:"status" yaml:"status"`
	ErrorKind      string              `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error          string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summarize converts an outcome into a Summary.
func Summarize(o pipeline.Outcome) Summary {
	s := Summary{
		Input:          o.Input,
		SourceLanguage: o.SourceLanguage,
		TargetLanguage: o.TargetLanguage,
		Units:          o.Units,
		Retained:       o.Retained,
		Status:         "ok",
	}
	if o.Format != format.Unknown {
		s.Format = o.Format.String()
	}
	for _, u := range o.Preview {
		s.Preview = append(s.Preview, Row{Source: u.Source, Target: u.Target})
	}
	if o.Result != nil {
		s.Outputs = map[string]Artifact{
			string(o.Result.Text.Target):  artifact(o.Result.Text),
			string(o.Result.Sheet.Target): artifact(o.Result.Sheet),
		}
	}
	if o.Err != nil {
		s.Status = "failed"
		if o.Result != nil && len(o.Result.Paths()) > 0 {
			s.Status = "partial"
		}
		s.ErrorKind = ErrorKind(o.Err)
		s.Error = o.Err.Error()
	}
	return s
}

func artifact(a export.Artifact) Artifact {
	out := Artifact{Path: a.Path, Rows: a.Rows}
	if a.Err != nil {
		out.Rows = 0
		out.Error = a.Err.Error()
	}
	return out
}

// ErrorKind names the error class of err for reports.
func ErrorKind(err error) string {
	var (
		unsupported *format.UnsupportedFormatError
		malformed   *parser.MalformedInputError
		missing     *parser.MissingMetadataError
		write       *export.WriteError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &malformed):
		return "malformed_input"
	case errors.As(err, &missing):
		return "missing_metadata"
	case errors.As(err, &write):
		return "write_failed"
	default:
		return "error"
	}
}

// Render writes s to w in the given format.
func Render(w io.Writer, f Format, s Summary) error {
	switch f {
	case FormatNone:
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return renderText(w, s)
	}
}

func renderText(w io.Writer, s Summary) error {
	var b strings.Builder
	switch s.Status {
	case "ok":
		if s.Outputs == nil {
			fmt.Fprintf(&b, "%s: %d of %d units would be exported (%s -> %s)\n", s.Input, s.Retained, s.Units, s.SourceLanguage, s.TargetLanguage)
			for _, r := range s.Preview {
				fmt.Fprintf(&b, "  %s\t%s\n", textutil.Truncate(r.Source, previewWidth), textutil.Truncate(r.Target, previewWidth))
			}
			if s.Retained > len(s.Preview) {
				fmt.Fprintf(&b, "  ... %d more\n", s.Retained-len(s.Preview))
			}
			break
		}
		fmt.Fprintf(&b, "%s: %d of %d units exported (%s -> %s)\n", s.Input, s.Retained, s.Units, s.SourceLanguage, s.TargetLanguage)
	case "partial":
		fmt.Fprintf(&b, "%s: export partially failed: %s\n", s.Input, s.Error)
	default:
		fmt.Fprintf(&b, "%s: %s\n", s.Input, s.Error)
	}
	for _, key := range []string{string(export.TargetText), string(export.TargetSheet)} {
		a, ok := s.Outputs[key]
		if !ok {
			continue
		}
		if a.Error != "" {
			fmt.Fprintf(&b, "  %-4s failed  %s\n", key, a.Path)
			continue
		}
		fmt.Fprintf(&b, "  %-4s written %s\n", key, a.Path)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriterNotifier renders every outcome to W.
type WriterNotifier struct {
	W      io.Writer
	Format Format
}

func (n *WriterNotifier) Notify(o pipeline.Outcome) {
	if err := Render(n.W, n.Format, Summarize(o)); err != nil {
		log.Error().Err(err).Msg("Failed to render report")
	}
}

// LogNotifier logs every outcome.
type LogNotifier struct{}

func (LogNotifier) Notify(o pipeline.Outcome) {
	if o.Err != nil {
		log.Error().
			Err(o.Err).
			Str("input", o.Input).
			Str("kind", ErrorKind(o.Err)).
			Msg("Export failed")
		return
	}
	ev := log.Info().
		Str("input", o.Input).
		Stringer("format", o.Format).
		Str("source_language", o.SourceLanguage).
		Str("target_language", o.TargetLanguage).
		Int("units", o.Units).
		Int("retained", o.Retained)
	if o.Result != nil {
		ev = ev.Strs("outputs", o.Result.Paths())
	}
	ev.Msg("Export complete")
}

// Multi fans an outcome out to several notifiers.
type Multi []pipeline.Notifier

func (m Multi) Notify(o pipeline.Outcome) {
	for _, n := range m {
		n.Notify(o)
	}
}
