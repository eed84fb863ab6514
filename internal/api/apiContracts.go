package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status  string           `json:"status"`
	Summary *SummaryResponse `json:"summary,omitempty"`
}

type SummaryResponse struct {
	Short        string   `json:"short"`
	Medium       string   `json:"medium"`
	Long         string   `json:"long"`
	KeyPoints    []string `json:"keyPoints"`
	MainIdeas    []string `json:"mainIdeas"`
	Improvements []string `json:"improvements"`
}

type ExtractResponse struct {
	Text       string   `json:"text"`
	PageCount  int      `json:"pageCount,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Text is required"`
}

// requests---------------------

type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
