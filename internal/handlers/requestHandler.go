package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doculens/SummarizeAPI/internal/adapter"
	"github.com/doculens/SummarizeAPI/internal/adapter/utils"
	"github.com/doculens/SummarizeAPI/internal/api"
	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/extract"
	"github.com/doculens/SummarizeAPI/internal/ocr"
	"github.com/doculens/SummarizeAPI/internal/summarize"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

var (
	pipelineInstance *PipelineHandler //private singleton
	pipelineOnce     sync.Once
	logRH            *logger_i.Logger
)

// PipelineHandler holds the synchronous extraction and summarization
// services behind the /api endpoints.
type PipelineHandler struct {
	extractor  extract.Service
	summarizer summarize.Service
}

type newJobData struct {
	id             string
	traceId        string
	documentName   string
	documentSource string
	mediaType      string
}

func InitPipelineHandler(extractor extract.Service, summarizer summarize.Service) {
	pipelineOnce.Do(func() {
		pipelineInstance = &PipelineHandler{extractor: extractor, summarizer: summarizer}
		logRH = logger_i.NewLogger("RequestHandler")
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// SummarizeHandler godoc
// @Summary      Summarize a block of text
// @Description  Runs the text through the model credential pool and returns a structured six-part summary.
// @Tags         Summarization
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummarizeRequest  true  "Text to summarize"
// @Success      200      {object}  api.SummaryResponse   "Validated summary"
// @Failure      400      {object}  api.ErrorResponse     "Missing or empty text"
// @Failure      503      {object}  api.ErrorResponse     "All credentials exhausted"
// @Failure      500      {object}  api.ErrorResponse     "Unexpected internal failure"
// @Router       /api/summarize [post]
func SummarizeHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.SummarizeRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Summarize handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
			logRH.Warn("Bad Summarize Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "Text is required")
			return
		}

		summary, err := pipelineInstance.summarizer.Summarize(request.Context(), requestData.Text)
		if err != nil {
			code, message := summarizeStatusCode(err)
			logRH.Warn("Summarize failed: ", "code:", code, "error:", err)
			WriteErrorResponse(w, code, message)
			return
		}

		writeJsonResponse(w, http.StatusOK, summary)
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// ExtractHandler godoc
// @Summary      Extract text from an uploaded document
// @Description  Accepts a file via multipart/form-data and returns its extracted text.
// @Tags         Extraction
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "PDF, Word, Excel, text or image file"
// @Success      200  {object}  api.ExtractResponse  "Extracted text"
// @Failure      400  {object}  api.ErrorResponse    "Unsupported type or no content"
// @Failure      422  {object}  api.ErrorResponse    "Corrupt or unreadable file"
// @Failure      500  {object}  api.ErrorResponse    "Extraction engine failure"
// @Router       /api/extract [post]
func ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		doc, errMessage := readUploadedDocument(r)
		if errMessage != "" {
			WriteErrorResponse(w, http.StatusBadRequest, errMessage)
			return
		}

		extracted, err := pipelineInstance.extractor.Extract(r.Context(), doc)
		if err != nil {
			code, message := extractStatusCode(err)
			logRH.Warn("Extraction failed: ", "document:", doc.Name, "code:", code, "error:", err)
			WriteErrorResponse(w, code, message)
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToExtractResponse(extracted))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ProcessHandler handles the uploading of documents for background processing.
// @Summary      Queue a document for extraction and summarization
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues a processing job.
// @Tags         Processing
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The document to process"
// @Success      202  {object}  api.InitJobResponse  "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.ErrorResponse    "Missing file or file too large"
// @Failure      500  {object}  api.ErrorResponse    "Storage or write error"
// @Router       /api/process [post]
func ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, errString)
			return
		}

		err := r.ParseMultipartForm(config.MaxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
			return
		}

		processNewJobData(r, w, fileMetadata.Filename, tempFilePath, fileMetadata.Header.Get("Content-Type"))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			writeJsonResponse(w, http.StatusNotFound, adapter.BadRequest(idString, "Job not found", http.StatusNotFound))
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

func readUploadedDocument(r *http.Request) (docModel.SourceDocument, string) {
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		return docModel.SourceDocument{}, "File too large or bad request"
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		return docModel.SourceDocument{}, "Could not retrieve file"
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		return docModel.SourceDocument{}, "Could not read file"
	}

	mediaType := fileMetadata.Header.Get("Content-Type")
	return docModel.SourceDocument{
		Name:      fileMetadata.Filename,
		MediaType: strings.TrimSpace(mediaType),
		Size:      fileMetadata.Size,
		Bytes:     data,
	}, ""
}

func summarizeStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, summarize.ErrEmptyText):
		return http.StatusBadRequest, "Text is required"
	case errors.Is(err, summarize.ErrAllCredentialsFailed):
		return http.StatusServiceUnavailable, summarize.ErrAllCredentialsFailed.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func extractStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, extract.ErrEmptyContent):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, extract.ErrCorruptOrUnsupported):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, ocr.ErrEngineUnavailable):
		return http.StatusInternalServerError, "Text recognition engine unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
