package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

// ErrEngineUnavailable means the recognition runtime could not initialize,
// usually missing traineddata for the requested language.
var ErrEngineUnavailable = errors.New("recognition engine unavailable")

// Recognition is one OCR pass over a raster image.
// Confidence is the mean word confidence, 0..100. No threshold is applied
// here - policy belongs to the caller.
type Recognition struct {
	Text       string
	Confidence float64
}

// Handle is a leased recognition session bound to one language profile.
// It holds a live native worker, so Release must run on every exit path.
// A handle is owned by exactly one extraction call and is not safe for
// concurrent use.
type Handle interface {
	Recognize(ctx context.Context, image []byte) (Recognition, error)
	// Release is idempotent. Call it exactly once per successful Acquire.
	Release()
}

// Engine hands out recognition sessions. Sessions are expensive (model load),
// callers reuse one handle across the pages of a single document instead of
// re-acquiring per page.
type Engine interface {
	Acquire(lang string) (Handle, error)
}

type tesseractEngine struct {
	logger *logger_i.Logger
}

func NewTesseractEngine() Engine {
	return &tesseractEngine{logger: logger_i.NewLogger("OCR Engine")}
}

func (e *tesseractEngine) Acquire(lang string) (Handle, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			e.logger.Warn("closing failed client", "error", closeErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	e.logger.Debug("acquired recognition session", "lang", lang)
	return &tesseractHandle{client: client, logger: e.logger}, nil
}

type tesseractHandle struct {
	client  *gosseract.Client
	logger  *logger_i.Logger
	release sync.Once
}

func (h *tesseractHandle) Recognize(ctx context.Context, image []byte) (Recognition, error) {
	select {
	case <-ctx.Done():
		return Recognition{}, ctx.Err()
	default:
	}

	if err := h.client.SetImageFromBytes(image); err != nil {
		return Recognition{}, fmt.Errorf("set image: %w", err)
	}
	text, err := h.client.Text()
	if err != nil {
		return Recognition{}, fmt.Errorf("recognize text: %w", err)
	}

	return Recognition{Text: text, Confidence: h.meanWordConfidence()}, nil
}

func (h *tesseractHandle) meanWordConfidence() float64 {
	boxes, err := h.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}

func (h *tesseractHandle) Release() {
	h.release.Do(func() {
		if err := h.client.Close(); err != nil {
			h.logger.Warn("closing recognition session", "error", err)
		}
		h.logger.Debug("released recognition session")
	})
}
