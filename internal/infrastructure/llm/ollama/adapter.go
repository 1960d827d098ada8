package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

var _ output.GeneratorPort = (*OllamaAdapter)(nil)

const (
	DefaultServerURL = "http://localhost:11434"
	DefaultModel     = "llama3.1"
)

// OllamaAdapter runs prompts against a local model through langchaingo.
type OllamaAdapter struct {
	llm    llms.Model
	model  string
	logger output.LoggerPort
}

type Config struct {
	Model     string
	ServerURL string
	Timeout   time.Duration
	// JSONFormat makes the server constrain output to JSON for every call.
	JSONFormat bool
	Logger     output.LoggerPort
}

func NewOllamaAdapter(cfg Config) (*OllamaAdapter, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.JSONFormat {
		opts = append(opts, ollama.WithFormat("json"))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewWithModel(llm, cfg.Model, cfg.Logger), nil
}

// NewWithModel wraps any langchaingo model.
func NewWithModel(llm llms.Model, model string, logger output.LoggerPort) *OllamaAdapter {
	return &OllamaAdapter{
		llm:    llm,
		model:  model,
		logger: logger,
	}
}

func (a *OllamaAdapter) Name() string {
	return "ollama"
}

func (a *OllamaAdapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	if a.logger != nil {
		a.logger.Debug("Calling local model", "model", a.model, "payloadLen", len(req.Payload))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, a.llm, req.Payload,
		llms.WithTemperature(float64(req.Temperature)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama generate failed: %w", entity.ErrUpstreamUnavailable, err)
	}

	return &output.GenerateResponse{
		Text:  text,
		Model: a.model,
	}, nil
}
