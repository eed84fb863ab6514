package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

func extractText(doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	if !utf8.Valid(doc.Bytes) {
		return docModel.ExtractedText{}, fmt.Errorf("%w: not valid utf-8 text", ErrCorruptOrUnsupported)
	}

	content := strings.TrimSpace(string(doc.Bytes))
	if content == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}
	return docModel.ExtractedText{Content: content}, nil
}
