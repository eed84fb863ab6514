// @title           Document Summarize API
// @version         1.0
// @description     This API extracts text from documents and produces structured summaries
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3001
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/data/store"
	jobmodel "github.com/doculens/SummarizeAPI/internal/domain/jobModel"
	"github.com/doculens/SummarizeAPI/internal/extract"
	"github.com/doculens/SummarizeAPI/internal/handlers"
	"github.com/doculens/SummarizeAPI/internal/job"
	"github.com/doculens/SummarizeAPI/internal/middleware"
	"github.com/doculens/SummarizeAPI/internal/ocr"
	"github.com/doculens/SummarizeAPI/internal/server"
	"github.com/doculens/SummarizeAPI/internal/summarize"
	"github.com/doculens/SummarizeAPI/internal/summarize/gemini"
	"github.com/doculens/SummarizeAPI/internal/summarize/openai"
	"github.com/doculens/SummarizeAPI/internal/worker"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	appConfig, err := config.LoadAppConfig()
	if err != nil {
		//no credentials means no summarization, refuse to serve at all
		logger.Error("Configuration error", "error", err.Error())
		os.Exit(1)
	}
	middleware.SetAllowedOrigin(appConfig.FrontendOrigin)

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	var jobStore jobmodel.JobStore
	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		jobStore = redisJobStore
	} else {
		logger.Error("Redis store is offline")
		jobStore = store.InitInMemoryJobStore()
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	var llmProvider summarize.Provider
	if appConfig.Provider == config.ProviderOpenAI {
		llmProvider = openai.NewProvider(config.OpenAIModelName)
	} else {
		llmProvider = gemini.NewProvider(config.GeminiModelName)
	}

	engine := ocr.NewTesseractEngine()
	renderer := ocr.NewPageRenderer("pdftoppm")

	extractService := extract.NewService(engine, renderer)
	summarizeService := summarize.NewService(appConfig.Credentials, llmProvider)

	handlers.InitJobHandler(service)
	handlers.InitPipelineHandler(extractService, summarizeService)

	//init worker pool
	worker.InitServices(service, extractService, summarizeService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
