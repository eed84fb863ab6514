package extract

import (
	"context"
	"strings"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

// extractImage runs the whole image through one recognition session.
// Single-shot: acquire, recognize, release.
func (s *service) extractImage(ctx context.Context, doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	handle, err := s.engine.Acquire(config.OCRLanguage)
	if err != nil {
		return docModel.ExtractedText{}, err
	}
	defer handle.Release()

	rec, err := handle.Recognize(ctx, doc.Bytes)
	if err != nil {
		return docModel.ExtractedText{}, err
	}

	content := strings.TrimSpace(rec.Text)
	if content == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}
	return docModel.ExtractedText{Content: content, Confidence: rec.Confidence}, nil
}
