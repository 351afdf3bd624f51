package factory

import (
	"fmt"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/config"
	"github.com/KhadijaXD/NoteNova/pkg/llm"
	"github.com/KhadijaXD/NoteNova/pkg/llm/ollama"
	"github.com/KhadijaXD/NoteNova/pkg/llm/openrouter"
)

func NewProvider(cfg *config.AIConfig) (llm.Provider, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("openrouter provider requires an API key")
		}
		return openrouter.NewOpenRouterProvider(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel,
			cfg.OpenRouterReferer,
			cfg.OpenRouterSiteName,
			timeout,
		), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
