package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doculens/SummarizeAPI/internal/api"
	"github.com/doculens/SummarizeAPI/internal/customHttpClient"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

var (
	// ErrUnreachable - the backend never produced a response.
	ErrUnreachable = errors.New("summarization service is unreachable")
	// ErrRequestSetup - the request could not be built or the response
	// could not be read locally.
	ErrRequestSetup = errors.New("failed to prepare summarization request")
)

// ServerError - the backend answered with a non-success status. Message is
// whatever the body carried, never raw model output.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("summarization service returned %d: %s", e.Status, e.Message)
}

// Summarizer posts extracted text to a summarization backend. It performs
// exactly one attempt per call - credential failover lives server-side.
type Summarizer struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger_i.Logger
}

func NewSummarizer(baseURL string) *Summarizer {
	return &Summarizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: customHttpClient.Pooled(),
		logger:     logger_i.NewLogger("Summarizer Client"),
	}
}

func (c *Summarizer) Summarize(ctx context.Context, text string) (docModel.Summary, error) {
	body, err := json.Marshal(api.SummarizeRequest{Text: text})
	if err != nil {
		return docModel.Summary{}, fmt.Errorf("%w: %v", ErrRequestSetup, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/summarize", bytes.NewReader(body))
	if err != nil {
		return docModel.Summary{}, fmt.Errorf("%w: %v", ErrRequestSetup, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable", "error", err)
		return docModel.Summary{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return docModel.Summary{}, fmt.Errorf("%w: %v", ErrRequestSetup, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return docModel.Summary{}, &ServerError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	var summary docModel.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return docModel.Summary{}, fmt.Errorf("%w: %v", ErrRequestSetup, err)
	}
	return summary, nil
}

// errorMessage pulls the error out of a failure body, checking the "error"
// field first, then "message".
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return "summarization request failed"
}
