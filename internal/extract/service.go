package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/metrics"
	"github.com/doculens/SummarizeAPI/internal/ocr"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

// Service is the only entry point callers get - it classifies, dispatches to
// the right extractor and normalizes everything into one result shape.
// Extractor internals (OCR handles, renderers) never leak past it.
type Service interface {
	Extract(ctx context.Context, doc docModel.SourceDocument) (docModel.ExtractedText, error)
}

// Renderer rasterizes one PDF page for OCR. Satisfied by *ocr.PageRenderer,
// kept as an interface so tests can swap it out.
type Renderer interface {
	Render(ctx context.Context, pdfPath string, pageNum int, scale float64) ([]byte, error)
}

type service struct {
	engine   ocr.Engine
	renderer Renderer
	logger   *logger_i.Logger
}

// NewService constructor
func NewService(engine ocr.Engine, renderer Renderer) Service {
	return &service{
		engine:   engine,
		renderer: renderer,
		logger:   logger_i.NewLogger("Extraction Service"),
	}
}

func (s *service) Extract(ctx context.Context, doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	log := s.logger.With("document", doc.Name, "mediaType", doc.MediaType)

	format := Classify(doc)
	log.Debug("classified document", "format", format)

	start := time.Now()
	defer func() { metrics.CaptureExtractionMetrics(string(format), time.Since(start)) }()

	var result docModel.ExtractedText
	var err error

	switch format {
	case docModel.PDF:
		result, err = s.extractPDF(ctx, doc)
	case docModel.Image:
		result, err = s.extractImage(ctx, doc)
	case docModel.Word:
		result, err = extractWord(doc)
	case docModel.Excel:
		result, err = extractExcel(doc)
	case docModel.Text:
		result, err = extractText(doc)
	default:
		return docModel.ExtractedText{}, fmt.Errorf("%w: supported formats are %s", ErrUnsupportedType, SupportedTypesLabel)
	}

	if err != nil {
		log.Error("extraction failed", "format", format, "error", err)
		return docModel.ExtractedText{}, err
	}

	if strings.TrimSpace(result.Content) == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}

	log.Info("extraction complete",
		"format", format,
		"contentBytes", len(result.Content),
		"pages", result.PageCount,
	)
	return result, nil
}
