package summarize

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/doculens/SummarizeAPI/internal/config"
	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
	"github.com/doculens/SummarizeAPI/internal/metrics"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

var (
	// ErrEmptyText - the request carried no text, rejected before any
	// credential is touched.
	ErrEmptyText = errors.New("text is required")
	// ErrAllCredentialsFailed - the whole pool was exhausted. Carries no
	// model output, the last failure stays server-side.
	ErrAllCredentialsFailed = errors.New("all available credentials have failed")
)

// Service runs one summarization request against the credential pool.
type Service interface {
	Summarize(ctx context.Context, text string) (docModel.Summary, error)
}

type service struct {
	credentials []string
	provider    Provider
	logger      *logger_i.Logger
}

// NewService constructor. The credential slice is ordered and must not be
// mutated after this call - order defines retry priority.
func NewService(credentials []string, provider Provider) Service {
	return &service{
		credentials: credentials,
		provider:    provider,
		logger:      logger_i.NewLogger("Summarize Service"),
	}
}

// Summarize walks the pool in order, one model call per credential, stopping
// at the first response that survives sanitizing, JSON parsing and schema
// validation. Any failure - quota, auth, network, malformed output - moves
// on to the next credential. Only the last failure is kept, for logging.
func (s *service) Summarize(ctx context.Context, text string) (docModel.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return docModel.Summary{}, ErrEmptyText
	}

	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	prompt := BuildPrompt(text)
	poolSize := len(s.credentials)

	var lastErr error
	for state := Start(poolSize); !state.Terminal; {
		log.Debug("attempting model call", "credential", state.Index+1)

		start := time.Now()
		summary, err := s.tryCredential(ctx, s.credentials[state.Index], prompt)
		if err == nil {
			metrics.CaptureCredentialAttempt("success")
			log.Info("model call succeeded", "credential", state.Index+1, "elapsed_ms", time.Since(start).Milliseconds())
			return summary, nil
		}

		metrics.CaptureCredentialAttempt("failure")
		log.Warn("credential failed", "credential", state.Index+1, "error", err)
		lastErr = err
		state = Advance(state, false, poolSize)
	}

	metrics.IncrementCredentialExhausted()
	log.Error("all credentials failed", "poolSize", poolSize, "lastError", lastErr)
	return docModel.Summary{}, ErrAllCredentialsFailed
}

func (s *service) tryCredential(ctx context.Context, credential string, prompt string) (docModel.Summary, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	raw, err := s.provider.Generate(callCtx, credential, prompt)
	if err != nil {
		return docModel.Summary{}, err
	}
	return ParseSummary(StripCodeFences(raw))
}
