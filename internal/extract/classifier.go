package extract

import (
	"mime"
	"strings"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

const (
	mimePDF       = "application/pdf"
	mimeWordOpen  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeWordOld   = "application/msword"
	mimeExcelOpen = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeExcelOld  = "application/vnd.ms-excel"
	mimeText      = "text/plain"
)

// Classify routes a document to exactly one extraction strategy based on its
// declared media type. Pure and total - anything unrecognized maps to
// docModel.Unsupported, it never fails.
func Classify(doc docModel.SourceDocument) docModel.Format {
	mediaType := strings.ToLower(strings.TrimSpace(doc.MediaType))
	if parsed, _, err := mime.ParseMediaType(doc.MediaType); err == nil {
		mediaType = parsed
	}

	switch {
	case mediaType == mimePDF:
		return docModel.PDF
	case strings.HasPrefix(mediaType, "image/"):
		return docModel.Image
	case mediaType == mimeWordOpen || mediaType == mimeWordOld:
		return docModel.Word
	case mediaType == mimeExcelOpen || mediaType == mimeExcelOld:
		return docModel.Excel
	case mediaType == mimeText:
		return docModel.Text
	default:
		return docModel.Unsupported
	}
}
