package extract

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

// extractWord pulls the raw text runs out of a Word document, formatting is
// ignored.
func extractWord(doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	text, err := cat.FromBytes(doc.Bytes)
	if err != nil {
		return docModel.ExtractedText{}, fmt.Errorf("%w: %v", ErrCorruptOrUnsupported, err)
	}

	content := strings.TrimSpace(text)
	if content == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}
	return docModel.ExtractedText{Content: content}, nil
}
