package adapter

import (
	"fmt"
	"time"

	"github.com/doculens/SummarizeAPI/internal/api"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:  string(job.Status),
		Summary: ToSummaryResponse(job.JobPayload.Summary),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToSummaryResponse(summary *docModel.Summary) *api.SummaryResponse {
	if summary == nil {
		return nil
	}

	return &api.SummaryResponse{
		Short:        summary.Short,
		Medium:       summary.Medium,
		Long:         summary.Long,
		KeyPoints:    summary.KeyPoints,
		MainIdeas:    summary.MainIdeas,
		Improvements: summary.Improvements,
	}
}

func ToExtractResponse(extracted docModel.ExtractedText) api.ExtractResponse {
	response := api.ExtractResponse{
		Text:      extracted.Content,
		PageCount: extracted.PageCount,
	}
	if extracted.PageCount == 0 && extracted.Confidence > 0 {
		confidence := extracted.Confidence
		response.Confidence = &confidence
	}
	return response
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:  string(api.JobStatusError),
			Summary: nil,
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
