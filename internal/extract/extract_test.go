package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/ocr"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

// --- Fakes ---

type fakeHandle struct {
	recognize func(image []byte) (ocr.Recognition, error)
	released  int
}

func (h *fakeHandle) Recognize(ctx context.Context, image []byte) (ocr.Recognition, error) {
	if h.recognize != nil {
		return h.recognize(image)
	}
	return ocr.Recognition{Text: "ocr text", Confidence: 90}, nil
}

func (h *fakeHandle) Release() { h.released++ }

type fakeEngine struct {
	acquired   int
	acquireErr error
	handle     *fakeHandle
}

func (e *fakeEngine) Acquire(lang string) (ocr.Handle, error) {
	e.acquired++
	if e.acquireErr != nil {
		return nil, e.acquireErr
	}
	if e.handle == nil {
		e.handle = &fakeHandle{}
	}
	return e.handle, nil
}

type renderCall struct {
	page  int
	scale float64
}

type fakeRenderer struct {
	calls []renderCall
	err   error
}

func (r *fakeRenderer) Render(ctx context.Context, pdfPath string, pageNum int, scale float64) ([]byte, error) {
	r.calls = append(r.calls, renderCall{page: pageNum, scale: scale})
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png"), nil
}

type fakePDF struct {
	pages []string
}

func (f *fakePDF) PageCount() int       { return len(f.pages) }
func (f *fakePDF) PageText(i int) string { return f.pages[i-1] }

func newTestService(engine *fakeEngine, renderer *fakeRenderer) *service {
	return &service{engine: engine, renderer: renderer, logger: logger_i.NewLogger("test")}
}

var richPage = strings.Repeat("sufficiently long direct text layer ", 3) // well over the 50 char threshold

// --- Classifier ---

func TestClassify(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  docModel.Format
	}{
		{"application/pdf", docModel.PDF},
		{"image/png", docModel.Image},
		{"image/jpeg", docModel.Image},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", docModel.Word},
		{"application/msword", docModel.Word},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", docModel.Excel},
		{"application/vnd.ms-excel", docModel.Excel},
		{"text/plain", docModel.Text},
		{"text/plain; charset=utf-8", docModel.Text},
		{"application/zip", docModel.Unsupported},
		{"", docModel.Unsupported},
	}

	for _, tt := range tests {
		doc := docModel.SourceDocument{MediaType: tt.mediaType}
		if got := Classify(doc); got != tt.expected {
			t.Errorf("Classify(%q) = %v; want %v", tt.mediaType, got, tt.expected)
		}
	}
}

// --- PDF hybrid loop ---

func TestHybridExtract_RichPagesNeverTouchOCR(t *testing.T) {
	engine := &fakeEngine{}
	renderer := &fakeRenderer{}
	s := newTestService(engine, renderer)

	result, err := s.hybridExtract(context.Background(), []byte("%PDF"), &fakePDF{pages: []string{richPage, richPage}})
	if err != nil {
		t.Fatalf("hybridExtract failed: %v", err)
	}

	if engine.acquired != 0 {
		t.Errorf("Expected no engine acquisition for rich pages, got %d", engine.acquired)
	}
	if len(renderer.calls) != 0 {
		t.Errorf("Expected no page renders, got %d", len(renderer.calls))
	}
	if result.PageCount != 2 {
		t.Errorf("Expected pageCount 2, got %d", result.PageCount)
	}
	for _, marker := range []string{"Page 1:", "Page 2:"} {
		if !strings.Contains(result.Content, marker) {
			t.Errorf("Content missing %q block", marker)
		}
	}
}

func TestHybridExtract_OneHandleForAllScanPages(t *testing.T) {
	engine := &fakeEngine{}
	renderer := &fakeRenderer{}
	s := newTestService(engine, renderer)

	// page 1 rich, pages 2-3 blank scans
	doc := &fakePDF{pages: []string{richPage, "", "  "}}
	result, err := s.hybridExtract(context.Background(), []byte("%PDF"), doc)
	if err != nil {
		t.Fatalf("hybridExtract failed: %v", err)
	}

	if engine.acquired != 1 {
		t.Errorf("Expected exactly 1 acquire for the whole document, got %d", engine.acquired)
	}
	if engine.handle.released != 1 {
		t.Errorf("Expected exactly 1 release, got %d", engine.handle.released)
	}
	if len(renderer.calls) != 2 {
		t.Fatalf("Expected 2 page renders, got %d", len(renderer.calls))
	}
	for i, call := range renderer.calls {
		if call.page != i+2 {
			t.Errorf("Render call %d hit page %d; want %d", i, call.page, i+2)
		}
		if call.scale != 2.0 {
			t.Errorf("Expected 2.0x render scale, got %v", call.scale)
		}
	}
	if result.PageCount != 3 {
		t.Errorf("Expected pageCount 3, got %d", result.PageCount)
	}
	if got := strings.Count(result.Content, "Page "); got != 3 {
		t.Errorf("Expected 3 page blocks, got %d", got)
	}
}

func TestHybridExtract_ReleaseOnRecognitionFailure(t *testing.T) {
	handle := &fakeHandle{}
	calls := 0
	handle.recognize = func(image []byte) (ocr.Recognition, error) {
		calls++
		if calls == 2 {
			return ocr.Recognition{}, errors.New("recognition blew up")
		}
		return ocr.Recognition{Text: "ok"}, nil
	}
	engine := &fakeEngine{handle: handle}
	s := newTestService(engine, &fakeRenderer{})

	_, err := s.hybridExtract(context.Background(), []byte("%PDF"), &fakePDF{pages: []string{"", "", ""}})
	if err == nil {
		t.Fatal("Expected recognition failure to propagate")
	}
	if handle.released != 1 {
		t.Errorf("Handle must be released exactly once on failure, got %d", handle.released)
	}
}

func TestHybridExtract_EngineUnavailable(t *testing.T) {
	engine := &fakeEngine{acquireErr: ocr.ErrEngineUnavailable}
	s := newTestService(engine, &fakeRenderer{})

	_, err := s.hybridExtract(context.Background(), []byte("%PDF"), &fakePDF{pages: []string{""}})
	if !errors.Is(err, ocr.ErrEngineUnavailable) {
		t.Errorf("Expected ErrEngineUnavailable, got %v", err)
	}
}

func TestHybridExtract_NoPages(t *testing.T) {
	s := newTestService(&fakeEngine{}, &fakeRenderer{})

	_, err := s.hybridExtract(context.Background(), []byte("%PDF"), &fakePDF{})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent for a document with no pages, got %v", err)
	}
}

func TestHybridExtract_Deterministic(t *testing.T) {
	doc := &fakePDF{pages: []string{richPage, ""}}

	run := func() string {
		s := newTestService(&fakeEngine{}, &fakeRenderer{})
		result, err := s.hybridExtract(context.Background(), []byte("%PDF"), doc)
		if err != nil {
			t.Fatalf("hybridExtract failed: %v", err)
		}
		return result.Content
	}

	if run() != run() {
		t.Error("Re-extracting the same document must yield identical content")
	}
}

// --- Image ---

func TestExtractImage(t *testing.T) {
	handle := &fakeHandle{recognize: func(image []byte) (ocr.Recognition, error) {
		return ocr.Recognition{Text: "  scanned words  ", Confidence: 87.5}, nil
	}}
	engine := &fakeEngine{handle: handle}
	s := newTestService(engine, &fakeRenderer{})

	result, err := s.extractImage(context.Background(), docModel.SourceDocument{Bytes: []byte("img")})
	if err != nil {
		t.Fatalf("extractImage failed: %v", err)
	}
	if result.Content != "scanned words" {
		t.Errorf("Expected trimmed content, got %q", result.Content)
	}
	if result.Confidence != 87.5 {
		t.Errorf("Expected confidence 87.5, got %v", result.Confidence)
	}
	if handle.released != 1 {
		t.Errorf("Expected 1 release, got %d", handle.released)
	}
}

func TestExtractImage_EmptyResult(t *testing.T) {
	handle := &fakeHandle{recognize: func(image []byte) (ocr.Recognition, error) {
		return ocr.Recognition{Text: "   "}, nil
	}}
	engine := &fakeEngine{handle: handle}
	s := newTestService(engine, &fakeRenderer{})

	_, err := s.extractImage(context.Background(), docModel.SourceDocument{Bytes: []byte("img")})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
	if handle.released != 1 {
		t.Errorf("Handle must be released on the empty-content path, got %d releases", handle.released)
	}
}

// --- Word / Excel / Text ---

func TestExtractWord_Corrupt(t *testing.T) {
	// binary garbage, not text and not a zip container
	_, err := extractWord(docModel.SourceDocument{Bytes: []byte{0x00, 0x01, 0x02, 0xff, 0xfe}})
	if !errors.Is(err, ErrCorruptOrUnsupported) {
		t.Errorf("Expected ErrCorruptOrUnsupported, got %v", err)
	}
}

func buildWorkbook(t *testing.T, fill bool) []byte {
	t.Helper()
	f := excelize.NewFile()
	if fill {
		_ = f.SetCellValue("Sheet1", "A1", "Quarter")
		_ = f.SetCellValue("Sheet1", "B1", "Revenue")
		_ = f.SetCellValue("Sheet1", "A2", "Q1")
		_ = f.SetCellValue("Sheet1", "B2", "1200")
		if _, err := f.NewSheet("Notes"); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}
		_ = f.SetCellValue("Notes", "A1", "reviewed")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestExtractExcel(t *testing.T) {
	result, err := extractExcel(docModel.SourceDocument{Bytes: buildWorkbook(t, true)})
	if err != nil {
		t.Fatalf("extractExcel failed: %v", err)
	}

	if !strings.Contains(result.Content, "Sheet 1 (Sheet1):") {
		t.Errorf("Missing sheet 1 header in:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "Sheet 2 (Notes):") {
		t.Errorf("Missing sheet 2 header in:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "Quarter\tRevenue") {
		t.Errorf("Expected tab-joined row in:\n%s", result.Content)
	}
	if result.PageCount != 2 {
		t.Errorf("Expected sheet count 2, got %d", result.PageCount)
	}
}

func TestExtractExcel_Empty(t *testing.T) {
	_, err := extractExcel(docModel.SourceDocument{Bytes: buildWorkbook(t, false)})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestExtractExcel_Corrupt(t *testing.T) {
	_, err := extractExcel(docModel.SourceDocument{Bytes: []byte("nope")})
	if !errors.Is(err, ErrCorruptOrUnsupported) {
		t.Errorf("Expected ErrCorruptOrUnsupported, got %v", err)
	}
}

func TestExtractText(t *testing.T) {
	result, err := extractText(docModel.SourceDocument{Bytes: []byte("  plain words \n")})
	if err != nil {
		t.Fatalf("extractText failed: %v", err)
	}
	if result.Content != "plain words" {
		t.Errorf("Expected trimmed content, got %q", result.Content)
	}
	if result.PageCount != 0 || result.Confidence != 0 {
		t.Error("Plain text must populate neither pageCount nor confidence")
	}
}

func TestExtractText_Empty(t *testing.T) {
	_, err := extractText(docModel.SourceDocument{Bytes: []byte("   \n  ")})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestExtractText_InvalidEncoding(t *testing.T) {
	_, err := extractText(docModel.SourceDocument{Bytes: []byte{0xff, 0xfe, 0xfd}})
	if !errors.Is(err, ErrCorruptOrUnsupported) {
		t.Errorf("Expected ErrCorruptOrUnsupported, got %v", err)
	}
}

// --- Orchestrator ---

func TestService_UnsupportedType(t *testing.T) {
	svc := NewService(&fakeEngine{}, &fakeRenderer{})

	_, err := svc.Extract(context.Background(), docModel.SourceDocument{
		Name:      "archive.zip",
		MediaType: "application/zip",
		Bytes:     []byte("zip"),
	})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Expected ErrUnsupportedType, got %v", err)
	}
	if !strings.Contains(err.Error(), "PDF") {
		t.Errorf("Error should name the supported formats, got: %v", err)
	}
}

func TestService_DispatchesText(t *testing.T) {
	svc := NewService(&fakeEngine{}, &fakeRenderer{})

	result, err := svc.Extract(context.Background(), docModel.SourceDocument{
		Name:      "notes.txt",
		MediaType: "text/plain",
		Bytes:     []byte("line one\nline two"),
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Content != "line one\nline two" {
		t.Errorf("Unexpected content: %q", result.Content)
	}
}
