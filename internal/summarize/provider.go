package summarize

import "context"

// Provider performs one model call with one credential. The rotation service
// owns the failover loop, a provider never retries on its own.
type Provider interface {
	Generate(ctx context.Context, credential string, prompt string) (string, error)
}
