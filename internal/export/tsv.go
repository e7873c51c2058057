package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"bilingual-export/internal/parser"
)

// EncodeTSV writes a header of the two column names followed by one
// tab-separated line per row. A field is quoted, with inner quotes doubled,
// only when it contains a tab, a double quote or a line break.
func EncodeTSV(w io.Writer, sourceColumn, targetColumn string, rows []parser.TranslationUnit) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, sourceColumn, targetColumn)
	for _, r := range rows {
		writeLine(bw, r.Source, r.Target)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tsv: %w", err)
	}
	return nil
}

func writeLine(w *bufio.Writer, source, target string) {
	w.WriteString(quoteField(source))
	w.WriteByte('\t')
	w.WriteString(quoteField(target))
	w.WriteByte('\n')
}

func quoteField(s string) string {
	if !strings.ContainsAny(s, "\t\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteTSV writes rows to path, headed by the document's language tags.
// A partially written file is removed on failure.
func WriteTSV(path string, doc *parser.Document, rows []parser.TranslationUnit) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tsv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close tsv file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return EncodeTSV(f, doc.SourceLanguage, doc.TargetLanguage, rows)
}
