package worker

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	jobmodel "github.com/doculens/SummarizeAPI/internal/domain/jobModel"
	"github.com/doculens/SummarizeAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 120*time.Second)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job.CurrentStep = jobmodel.ExtractCall
	job = extractDocument(job, ctx)

	if job.Status != jobmodel.JobStatusError {
		job.CurrentStep = jobmodel.SummarizeCall
		saveJobState(ctx, job, jobmodel.JobStatusRunning)
		job = summarizeDocument(job, ctx)
	}

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		job.CurrentStep = jobmodel.Error
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	job.CurrentStep = jobmodel.Complete
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func extractDocument(job jobmodel.Job, ctx context.Context) jobmodel.Job {
	data, err := os.ReadFile(job.JobPayload.DocumentPath)
	//the uploaded file is consumed exactly once
	defer func() {
		if removeErr := os.Remove(job.JobPayload.DocumentPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", job.JobPayload.DocumentPath, "err", removeErr)
		}
	}()
	if err != nil {
		logger.Error("Failed to read uploaded document", "err", err)
		return failJob(job, http.StatusInternalServerError, "Could not read uploaded document")
	}

	doc := docModel.SourceDocument{
		Name:      job.JobPayload.DocumentName,
		MediaType: job.JobPayload.MediaType,
		Size:      int64(len(data)),
		Bytes:     data,
	}

	extracted, err := _extractService.Extract(ctx, doc)
	if err != nil {
		logger.Error("Extraction failed", "document", doc.Name, "err", err)
		return failJob(job, http.StatusUnprocessableEntity, err.Error())
	}

	job.JobPayload.Extracted = &extracted
	return job
}

func summarizeDocument(job jobmodel.Job, ctx context.Context) jobmodel.Job {
	summary, err := _summarizeService.Summarize(ctx, job.JobPayload.Extracted.Content)
	if err != nil {
		logger.Error("Summarization failed", "err", err)
		return failJob(job, http.StatusServiceUnavailable, err.Error())
	}
	job.JobPayload.Summary = &summary
	return job
}

func failJob(job jobmodel.Job, code int, message string) jobmodel.Job {
	job.Status = jobmodel.JobStatusError
	job.Error = jobmodel.JobError{Code: code, Message: message, Retry: code == http.StatusServiceUnavailable}
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
