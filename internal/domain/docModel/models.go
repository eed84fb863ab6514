package docModel

// Format is the single extraction route a document is classified into.
type Format string

const (
	PDF         Format = "PDF"
	Image       Format = "IMAGE"
	Word        Format = "WORD"
	Excel       Format = "EXCEL"
	Text        Format = "TEXT"
	Unsupported Format = "UNSUPPORTED"
)

// SourceDocument is the uploaded file as accepted by the pipeline.
// It is consumed once by extraction and never retained.
type SourceDocument struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
	Bytes     []byte `json:"-"`
}

// ExtractedText is the one result shape every extractor is normalized into.
// Content is trimmed and never empty. PageCount is set for multi-page sources
// (PDF pages, Excel sheets), Confidence for OCR sources - never both.
type ExtractedText struct {
	Content    string  `json:"content"`
	PageCount  int     `json:"pageCount,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Summary is produced atomically, either all six fields passed validation or
// the whole response was rejected.
type Summary struct {
	Short        string   `json:"short"`
	Medium       string   `json:"medium"`
	Long         string   `json:"long"`
	KeyPoints    []string `json:"keyPoints"`
	MainIdeas    []string `json:"mainIdeas"`
	Improvements []string `json:"improvements"`
}
