package ocr

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

// PageRenderer rasterizes single PDF pages for OCR via pdftoppm.
type PageRenderer struct {
	pdftoppm string
	runner   Runner
	logger   *logger_i.Logger
}

func NewPageRenderer(pdftoppm string) *PageRenderer {
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	logger := logger_i.NewLogger("Page Renderer")
	return &PageRenderer{
		pdftoppm: pdftoppm,
		runner:   execRunner{logger: logger},
		logger:   logger,
	}
}

// Render produces PNG bytes for one page (1-based). Scale multiplies the PDF
// baseline of 72 DPI, so 2.0 renders at 144 DPI.
func (r *PageRenderer) Render(ctx context.Context, pdfPath string, pageNum int, scale float64) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "ds-render-*")
	if err != nil {
		return nil, err
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			r.logger.Warn("failed to remove temp dir", "path", path, "error", err)
		}
	}(tmpDir)

	dpi := int(math.Round(config.PDFBaseDPI * scale))
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f <n> -l <n> -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.pdftoppm,
		"-f", fmt.Sprintf("%d", pageNum),
		"-l", fmt.Sprintf("%d", pageNum),
		"-r", fmt.Sprintf("%d", dpi),
		"-png", pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w (%s)", pageNum, err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("render page %d: pdftoppm produced no image", pageNum)
	}

	return os.ReadFile(matches[0])
}
