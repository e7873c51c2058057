package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"bilingual-export/internal/format"

	"github.com/chai2010/gettext-go/po"
	"github.com/rs/zerolog/log"
)

// POTargetLanguage is the target language tag assigned to every PO
// catalogue. Catalogues are not inspected for their real target language.
const POTargetLanguage = "en"

// POParser extracts translation units from gettext PO catalogues.
type POParser struct{}

func NewPOParser() *POParser { return &POParser{} }

func (p *POParser) CanParse(kind format.Kind) bool {
	return kind == format.PO
}

func (p *POParser) Parse(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &MalformedInputError{Path: filePath, Format: format.PO, Err: fmt.Errorf("read po file: %w", err)}
	}
	if !utf8.Valid(data) {
		return nil, &MalformedInputError{Path: filePath, Format: format.PO, Err: errors.New("invalid UTF-8")}
	}

	data, obsolete := dropObsolete(data)
	if obsolete > 0 {
		log.Debug().Str("file", filePath).Int("lines", obsolete).Msg("Skipped obsolete PO entries")
	}

	catalogue, err := po.Load(data)
	if err != nil {
		return nil, &MalformedInputError{Path: filePath, Format: format.PO, Err: err}
	}

	doc := &Document{
		Path:           filePath,
		Format:         format.PO,
		SourceLanguage: catalogue.MimeHeader.Language,
		TargetLanguage: POTargetLanguage,
		Units:          make([]TranslationUnit, 0, len(catalogue.Messages)),
	}

	for _, msg := range catalogue.Messages {
		// The header entry is metadata, not a message.
		if msg.MsgId == "" && msg.MsgContext == "" {
			continue
		}
		doc.Units = append(doc.Units, TranslationUnit{
			Source: msg.MsgId,
			Target: msg.MsgStr,
		})
	}

	if doc.SourceLanguage == "" {
		log.Debug().Str("file", filePath).Msg("PO catalogue has no Language header")
	}
	log.Debug().
		Str("file", filePath).
		Str("target_language", POTargetLanguage).
		Msg("Assuming fixed target language for PO catalogue")

	return doc, nil
}

// dropObsolete removes "#~" lines. Obsolete entries are retired
// translations and are not exported.
func dropObsolete(data []byte) ([]byte, int) {
	lines := bytes.SplitAfter(data, []byte("\n"))
	kept := lines[:0]
	dropped := 0
	for _, line := range lines {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("#~")) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}
	return bytes.Join(kept, nil), dropped
}
