package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//extraction tunables
	//pages with less direct text than this are treated as scans and go through OCR
	DirectTextThreshold = 50
	//upscale factor applied when rendering a PDF page for OCR
	OCRRenderScale = 2.0
	//pdftoppm wants a DPI, the pdf baseline is 72
	PDFBaseDPI  = 72
	OCRLanguage = "eng"

	//upload limit for multipart bodies
	MaxUploadSize = 32 << 20 //32mb

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	//IdleWorkerTimeout = 1 * time.Second //fo tests

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3001"

	//job requests buffer limit
	BufferLimit = 100

	//llm
	GeminiModelName = "gemini-1.5-flash"
	OpenAIModelName = "gpt-4o-mini"
	LLMCallTimeout  = 45 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)
