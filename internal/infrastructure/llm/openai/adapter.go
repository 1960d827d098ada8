package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.GeneratorPort = (*OpenAIAdapter)(nil)

const (
	DefaultBaseURL           = "https://api.openai.com/v1"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel             = "gpt-4o-mini"
)

// OpenAIAdapter talks to any OpenAI-compatible chat completions API (OpenAI, OpenRouter).
type OpenAIAdapter struct {
	client *openai.Client
	name   string
	model  string
	logger output.LoggerPort
}

type Config struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
	// Transport overrides http.DefaultTransport. Used by tests.
	Transport http.RoundTripper
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		Name:    "openai",
		APIKey:  apiKey,
		Model:   model,
		BaseURL: DefaultBaseURL,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var requestData map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &requestData)
	}

	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("HTTP Request failed", "error", err, "elapsed", time.Since(start))
		return resp, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return resp, nil
}

func NewOpenAIAdapter(cfg Config) (*OpenAIAdapter, error) {
	if cfg.APIKey == "" {
		return nil, entity.ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Name == "" {
		cfg.Name = "openai"
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Logger != nil {
		transport = &loggingTransport{
			base:   transport,
			logger: cfg.Logger,
		}
	}
	config.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(config),
		name:   cfg.Name,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

func (a *OpenAIAdapter) Name() string {
	return a.name
}

func (a *OpenAIAdapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	resp, err := a.client.CreateChatCompletion(ctx, buildRequest(a.model, req))
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion failed: %w", entity.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return &output.GenerateResponse{Model: resp.Model}, nil
	}

	return &output.GenerateResponse{
		Text:         resp.Choices[0].Message.Content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func buildRequest(model string, req output.GenerateRequest) openai.ChatCompletionRequest {
	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Payload},
		},
		Temperature: req.Temperature,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return chatReq
}
