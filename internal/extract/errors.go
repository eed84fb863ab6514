package extract

import "errors"

// Failure classifications shared by all extractors. Handlers map these to
// user-facing responses, extractors themselves never produce display strings.
var (
	// ErrUnsupportedType - the declared media type matches no extraction route.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyContent - extraction ran but the trimmed result is empty.
	// This is a failure, never a degenerate success.
	ErrEmptyContent = errors.New("no structured content found")
	// ErrCorruptOrUnsupported - the file could not be read at all.
	ErrCorruptOrUnsupported = errors.New("file is corrupted or in an unsupported format")
)

// SupportedTypesLabel is what the orchestrator reports when rejecting a file.
const SupportedTypesLabel = "PDF, Word (.docx), Excel (.xlsx), Text (.txt), and Image files"
