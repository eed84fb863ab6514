package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/ocr"
)

// pdfDocument abstracts the parsed PDF so the hybrid per-page loop can be
// exercised without real PDF bytes.
type pdfDocument interface {
	PageCount() int
	// PageText returns the direct text layer of page i (1-based), tokens
	// joined with single spaces and trimmed. Empty when the page has no
	// usable text layer.
	PageText(i int) string
}

// pageAttempt is transient per-page bookkeeping, discarded after assembly.
type pageAttempt struct {
	pageNumber int
	text       string
	usedOCR    bool
}

func (s *service) extractPDF(ctx context.Context, doc docModel.SourceDocument) (docModel.ExtractedText, error) {
	parsed, err := s.openPDF(doc)
	if err != nil {
		return docModel.ExtractedText{}, fmt.Errorf("%w: %v", ErrCorruptOrUnsupported, err)
	}
	return s.hybridExtract(ctx, doc.Bytes, parsed)
}

// hybridExtract walks pages in order. Pages with a rich text layer are taken
// directly, scan-only pages are rendered and pushed through OCR. One engine
// handle serves the whole document and is released exactly once, on every
// exit path.
func (s *service) hybridExtract(ctx context.Context, data []byte, d pdfDocument) (docModel.ExtractedText, error) {
	numPages := d.PageCount()

	var handle ocr.Handle
	var tmpPath string
	defer func() {
		if handle != nil {
			handle.Release()
		}
		if tmpPath != "" {
			if err := os.Remove(tmpPath); err != nil {
				s.logger.Warn("failed to remove temp pdf", "path", tmpPath, "error", err)
			}
		}
	}()

	var full strings.Builder
	for i := 1; i <= numPages; i++ {
		attempt := pageAttempt{pageNumber: i, text: d.PageText(i)}

		if len(attempt.text) < config.DirectTextThreshold {
			// scan-only page, go through OCR
			attempt.usedOCR = true

			if handle == nil {
				h, err2 := s.engine.Acquire(config.OCRLanguage)
				if err2 != nil {
					return docModel.ExtractedText{}, err2
				}
				handle = h
			}
			if tmpPath == "" {
				p, err2 := writeTempPDF(data)
				if err2 != nil {
					return docModel.ExtractedText{}, err2
				}
				tmpPath = p
			}

			img, err2 := s.renderer.Render(ctx, tmpPath, i, config.OCRRenderScale)
			if err2 != nil {
				return docModel.ExtractedText{}, err2
			}
			rec, err2 := handle.Recognize(ctx, img)
			if err2 != nil {
				return docModel.ExtractedText{}, err2
			}
			attempt.text = rec.Text
		}

		s.logger.Debug("extracted page", "page", attempt.pageNumber, "usedOCR", attempt.usedOCR, "bytes", len(attempt.text))
		full.WriteString(fmt.Sprintf("Page %d:\n%s\n\n", attempt.pageNumber, attempt.text))
	}

	content := strings.TrimSpace(full.String())
	if content == "" {
		return docModel.ExtractedText{}, ErrEmptyContent
	}
	return docModel.ExtractedText{Content: content, PageCount: numPages}, nil
}

func writeTempPDF(data []byte) (string, error) {
	f, err := os.CreateTemp("", "ds-doc-*.pdf")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// --- dslipak-backed document ---

type dslipakDocument struct {
	reader *pdf.Reader
	svc    *service
}

func (s *service) openPDF(doc docModel.SourceDocument) (pdfDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc.Bytes), int64(len(doc.Bytes)))
	if err != nil {
		return nil, err
	}
	return &dslipakDocument{reader: reader, svc: s}, nil
}

func (d *dslipakDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *dslipakDocument) PageText(i int) string {
	page := d.reader.Page(i)
	if page.V.IsNull() {
		return ""
	}
	text, err := protectPageText(page)
	if err != nil {
		// a broken text layer is treated like a scan, the OCR fallback
		// will have a go at it
		d.svc.logger.Warn("direct text extraction failed", "page", i, "error", err)
		return ""
	}
	return text
}

// protectPageText guards against the parser hanging on malformed content
// streams.
func protectPageText(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content := page.Content()
		var sb strings.Builder
		for _, token := range content.Text {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(token.S)
		}
		resChan <- result{strings.TrimSpace(sb.String()), nil}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
