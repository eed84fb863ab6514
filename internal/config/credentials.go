package config

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted in MODEL_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// AppConfig is loaded once at startup and read-only afterwards.
// The credential pool is ordered, key #1 is always tried first.
type AppConfig struct {
	Provider       string
	Credentials    []string
	FrontendOrigin string
}

func credentialPrefix(provider string) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY_"
	}
	return "GEMINI_API_KEY_"
}

// LoadAppConfig scans <PREFIX>_1, <PREFIX>_2, ... until the first gap so the
// pool size is driven by the environment, not hard-coded.
// It fails when zero credentials are configured - the server must not start
// without a way to reach the model provider.
func LoadAppConfig() (*AppConfig, error) {
	provider := strings.ToLower(os.Getenv("MODEL_PROVIDER"))
	if provider == "" {
		provider = ProviderGemini
	}
	if provider != ProviderGemini && provider != ProviderOpenAI {
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", provider)
	}

	prefix := credentialPrefix(provider)
	var credentials []string
	for i := 1; ; i++ {
		key := os.Getenv(fmt.Sprintf("%s%d", prefix, i))
		if key == "" {
			break
		}
		credentials = append(credentials, key)
	}

	if len(credentials) == 0 {
		return nil, fmt.Errorf("no %s<n> credentials configured", prefix)
	}

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "*"
	}

	return &AppConfig{
		Provider:       provider,
		Credentials:    credentials,
		FrontendOrigin: origin,
	}, nil
}
