package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"google.golang.org/genai"
)

var _ output.GeneratorPort = (*GeminiAdapter)(nil)

const DefaultModel = "gemini-2.5-flash"

type GeminiAdapter struct {
	client *genai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func NewGeminiAdapter(ctx context.Context, cfg Config) (*GeminiAdapter, error) {
	if cfg.APIKey == "" {
		return nil, entity.ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiAdapter{
		client: client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.JSONMode {
		genCfg.ResponseMIMEType = "application/json"
	}

	if a.logger != nil {
		a.logger.Debug("Generating content", "model", a.model, "payloadLen", len(req.Payload))
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(req.Payload), genCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: GenAI generate failed: %w", entity.ErrUpstreamUnavailable, err)
	}

	result := &output.GenerateResponse{
		Text:  resp.Text(),
		Model: a.model,
	}
	if resp.ModelVersion != "" {
		result.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		result.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}
