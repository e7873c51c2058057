package export_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bilingual-export/internal/export"
	"bilingual-export/internal/format"
	"bilingual-export/internal/parser"
)

// ---------------------------------------------------------------------------
// Filter
// ---------------------------------------------------------------------------

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		units []parser.TranslationUnit
		want  []parser.TranslationUnit
	}{
		{
			name:  "nil input",
			units: nil,
			want:  []parser.TranslationUnit{},
		},
		{
			name: "both blank dropped",
			units: []parser.TranslationUnit{
				{Source: "", Target: ""},
				{Source: "  ", Target: "\t\n"},
			},
			want: []parser.TranslationUnit{},
		},
		{
			name: "one side is enough",
			units: []parser.TranslationUnit{
				{Source: "only source", Target: ""},
				{Source: " ", Target: "only target"},
			},
			want: []parser.TranslationUnit{
				{Source: "only source", Target: ""},
				{Source: " ", Target: "only target"},
			},
		},
		{
			name: "order preserved and values untouched",
			units: []parser.TranslationUnit{
				{Source: "a", Target: "A"},
				{Source: "", Target: ""},
				{Source: " b ", Target: " B "},
				{Source: "   ", Target: ""},
				{Source: "c", Target: "C"},
			},
			want: []parser.TranslationUnit{
				{Source: "a", Target: "A"},
				{Source: " b ", Target: " B "},
				{Source: "c", Target: "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := export.Filter(tt.units)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_StableSubsequence(t *testing.T) {
	samples := []string{"", " ", "x", "\t", "word", "\n \n"}
	var units []parser.TranslationUnit
	for _, s := range samples {
		for _, tgt := range samples {
			units = append(units, parser.TranslationUnit{Source: s, Target: tgt})
		}
	}

	got := export.Filter(units)

	// Every retained row appears in the input, in the same relative order.
	j := 0
	for _, u := range got {
		for j < len(units) && units[j] != u {
			j++
		}
		require.Less(t, j, len(units), "row %+v out of order", u)
		j++
	}
	// Blank samples: "", " ", "\t", "\n \n"; 4*4 pairs are dropped.
	assert.Len(t, got, len(units)-16)
}

// ---------------------------------------------------------------------------
// TSV
// ---------------------------------------------------------------------------

func TestEncodeTSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []parser.TranslationUnit{
		{Source: "Hello", Target: "Hallo"},
		{Source: "with\ttab", Target: "plain"},
		{Source: "", Target: "target only"},
	}

	require.NoError(t, export.EncodeTSV(&buf, "en", "de", rows))
	assert.Equal(t, "en\tde\nHello\tHallo\n\"with\ttab\"\tplain\n\ttarget only\n", buf.String())
}

func TestOutputPaths(t *testing.T) {
	txt, xlsx := export.OutputPaths(filepath.Join("dir", "job.final.sdlxliff"))
	assert.Equal(t, filepath.Join("dir", "job.final.txt"), txt)
	assert.Equal(t, filepath.Join("dir", "job.final.xlsx"), xlsx)
}

// ---------------------------------------------------------------------------
// FilterAndWrite
// ---------------------------------------------------------------------------

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	return rows
}

func readText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFilterAndWrite(t *testing.T) {
	base := filepath.Join(t.TempDir(), "greeting.xlf")
	doc := &parser.Document{
		Path:           base,
		Format:         format.XLIFF,
		SourceLanguage: "en",
		TargetLanguage: "de",
		Units: []parser.TranslationUnit{
			{Source: "Hello world", Target: "Hallo Welt"},
			{Source: "", Target: " "},
			{Source: "Bye", Target: ""},
		},
	}

	result, err := export.FilterAndWrite(doc, base)
	require.NoError(t, err)

	wantTxt := filepath.Join(filepath.Dir(base), "greeting.txt")
	wantXlsx := filepath.Join(filepath.Dir(base), "greeting.xlsx")
	assert.Equal(t, wantTxt, result.Text.Path)
	assert.Equal(t, wantXlsx, result.Sheet.Path)
	assert.Equal(t, []string{wantTxt, wantXlsx}, result.Paths())
	assert.Equal(t, 2, result.Text.Rows)
	assert.Equal(t, 2, result.Sheet.Rows)

	assert.Equal(t, "en\tde\nHello world\tHallo Welt\nBye\t\n", readText(t, wantTxt))

	want := [][]string{
		{"Source", "Target"},
		{"Hello world", "Hallo Welt"},
		{"Bye"},
	}
	if diff := cmp.Diff(want, readSheet(t, wantXlsx)); diff != "" {
		t.Errorf("sheet rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterAndWrite_EmptyDocumentWritesHeaders(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty.po")
	doc := &parser.Document{
		Format:         format.PO,
		SourceLanguage: "",
		TargetLanguage: "en",
		Units:          []parser.TranslationUnit{{Source: " ", Target: ""}},
	}

	result, err := export.FilterAndWrite(doc, base)
	require.NoError(t, err)

	assert.Equal(t, "\ten\n", readText(t, result.Text.Path))
	assert.Equal(t, [][]string{{"Source", "Target"}}, readSheet(t, result.Sheet.Path))
}

func TestFilterAndWrite_TextFailureDoesNotBlockSheet(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "job.xlf")
	// A directory in place of the text output makes that write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "job.txt"), 0o755))

	doc := &parser.Document{
		SourceLanguage: "en",
		TargetLanguage: "de",
		Units:          []parser.TranslationUnit{{Source: "Yes", Target: "Ja"}},
	}

	result, err := export.FilterAndWrite(doc, base)
	require.Error(t, err)

	var writeErr *export.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, export.TargetText, writeErr.Target)
	assert.False(t, result.Text.Written())
	assert.True(t, result.Sheet.Written())
	assert.Equal(t, []string{result.Sheet.Path}, result.Paths())

	assert.Equal(t, [][]string{{"Source", "Target"}, {"Yes", "Ja"}}, readSheet(t, result.Sheet.Path))
}

func TestFilterAndWrite_SheetFailureKeepsText(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "job.po")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "job.xlsx"), 0o755))

	doc := &parser.Document{
		SourceLanguage: "fr",
		TargetLanguage: "en",
		Units:          []parser.TranslationUnit{{Source: "Cat", Target: "Chat"}},
	}

	result, err := export.FilterAndWrite(doc, base)

	var writeErr *export.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, export.TargetSheet, writeErr.Target)
	assert.True(t, result.Text.Written())
	assert.Equal(t, "fr\ten\nCat\tChat\n", readText(t, result.Text.Path))
}

func TestFilterAndWrite_NeverOverwritesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	original := "<xliff/>"
	require.NoError(t, os.WriteFile(input, []byte(original), 0o644))

	doc := &parser.Document{
		Path:           input,
		Format:         format.XLIFF,
		SourceLanguage: "en",
		TargetLanguage: "de",
		Units:          []parser.TranslationUnit{{Source: "Yes", Target: "Ja"}},
	}

	result, err := export.FilterAndWrite(doc, input)
	require.ErrorIs(t, err, export.ErrOverwritesInput)

	var writeErr *export.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, export.TargetText, writeErr.Target)
	assert.False(t, result.Text.Written())
	assert.True(t, result.Sheet.Written())
	assert.Equal(t, original, readText(t, input))
}

func TestEncodeTSV_Quoting(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{name: "leading space stays bare", field: " indented", want: " indented"},
		{name: "backslash dot stays bare", field: `\.`, want: `\.`},
		{name: "quote doubled", field: `say "hi"`, want: `"say ""hi"""`},
		{name: "newline quoted", field: "two\nlines", want: "\"two\nlines\""},
		{name: "carriage return quoted", field: "a\rb", want: "\"a\rb\""},
		{name: "comma stays bare", field: "a, b", want: "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rows := []parser.TranslationUnit{{Source: tt.field, Target: "x"}}
			require.NoError(t, export.EncodeTSV(&buf, "fr", "en", rows))
			assert.Equal(t, "fr\ten\n"+tt.want+"\tx\n", buf.String())
		})
	}
}
