package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

// extractExcel renders every sheet as a plain textual table, sheets in
// workbook order, cells tab-separated. Empty sheets are skipped but still
// counted.
func extractExcel(doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Bytes))
	if err != nil {
		return docModel.ExtractedText{}, fmt.Errorf("%w: %v", ErrCorruptOrUnsupported, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()

	var full strings.Builder
	for i, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return docModel.ExtractedText{}, fmt.Errorf("%w: %v", ErrCorruptOrUnsupported, err)
		}

		var sheet strings.Builder
		for _, row := range rows {
			sheet.WriteString(strings.Join(row, "\t"))
			sheet.WriteString("\n")
		}

		if strings.TrimSpace(sheet.String()) != "" {
			full.WriteString(fmt.Sprintf("Sheet %d (%s):\n%s\n", i+1, name, sheet.String()))
		}
	}

	content := strings.TrimSpace(full.String())
	if content == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}
	return docModel.ExtractedText{Content: content, PageCount: len(sheets)}, nil
}
