package di

import (
	"context"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"
	"ecofin-advisor/internal/infrastructure/llm/gemini"
	"ecofin-advisor/internal/infrastructure/llm/ollama"
	"ecofin-advisor/internal/infrastructure/llm/openai"
	"ecofin-advisor/internal/infrastructure/llm/stub"
)

// NewProviderRegistry registers every built-in provider.
func NewProviderRegistry(ctx context.Context) *service.ProviderRegistry {
	registry := service.NewProviderRegistry()

	registry.Register("openai", func(cfg output.ProviderConfig) (output.GeneratorPort, error) {
		c := openai.DefaultConfig(cfg.APIKey, cfg.Model)
		c.Timeout = cfg.Timeout
		c.Logger = cfg.Logger
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return openai.NewOpenAIAdapter(c)
	})

	registry.Register("openrouter", func(cfg output.ProviderConfig) (output.GeneratorPort, error) {
		c := openai.DefaultConfig(cfg.APIKey, cfg.Model)
		c.Name = "openrouter"
		c.BaseURL = openai.DefaultOpenRouterBaseURL
		c.Timeout = cfg.Timeout
		c.Logger = cfg.Logger
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return openai.NewOpenAIAdapter(c)
	})

	registry.Register("gemini", func(cfg output.ProviderConfig) (output.GeneratorPort, error) {
		return gemini.NewGeminiAdapter(ctx, gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
			Logger:  cfg.Logger,
		})
	})

	registry.Register("ollama", func(cfg output.ProviderConfig) (output.GeneratorPort, error) {
		return ollama.NewOllamaAdapter(ollama.Config{
			Model:      cfg.Model,
			ServerURL:  cfg.BaseURL,
			Timeout:    cfg.Timeout,
			JSONFormat: cfg.JSONMode,
			Logger:     cfg.Logger,
		})
	})

	registry.Register("stub", func(cfg output.ProviderConfig) (output.GeneratorPort, error) {
		return stub.NewStubAdapter(), nil
	})

	return registry
}
