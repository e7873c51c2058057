package export

import (
	"fmt"

	"bilingual-export/internal/parser"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the name of the only worksheet in the workbook.
	SheetName = "Source and Target"

	sourceHeader = "Source"
	targetHeader = "Target"
)

// WriteXLSX writes rows to a single-sheet workbook at path. The header row
// is always "Source", "Target", whatever the document's language tags.
func WriteXLSX(path string, rows []parser.TranslationUnit) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]any{sourceHeader, targetHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{r.Source, r.Target}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
