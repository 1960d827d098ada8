package advisorclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecofin-advisor/internal/application/port/input"
	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"
)

var _ input.Advisor = (*Client)(nil)

const (
	// ApologyUnprocessed replaces a successful reply that carries no answer.
	ApologyUnprocessed = "I apologize, but I couldn't process your request at the moment. Please try again."
	// ApologyUnreachable replaces a non-200 status or a transport failure.
	ApologyUnreachable = "I'm sorry, I'm having trouble connecting to my services right now. Please check your connection and try again."
)

const DefaultBaseURL = "http://localhost:8000"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     output.LoggerPort
	now        func() time.Time
}

func New(baseURL string, httpClient *http.Client, logger output.LoggerPort) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.Named("advisor-client"),
		now:        time.Now,
	}
}

// Generate performs the raw POST /generate call.
func (c *Client) Generate(ctx context.Context, prompt string) (*entity.AnswerResponse, error) {
	payload, err := json.Marshal(entity.GenerationRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody entity.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, fmt.Errorf("failed to get response from server: %d %s: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), errBody.Error)
	}

	var out entity.AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// Ask sends the prompt and always returns an assistant message.
func (c *Client) Ask(ctx context.Context, prompt string) entity.Message {
	msg := entity.Message{
		Role: entity.RoleAssistant,
		Type: entity.ClassifyPrompt(prompt),
	}

	resp, err := c.Generate(ctx, prompt)
	msg.Timestamp = c.now()

	switch {
	case err != nil:
		c.logger.Warn("Error calling API", "error", err)
		msg.Content = ApologyUnreachable
		msg.Type = entity.MessageTypeText
		msg.Failed = true
	case resp.Ans == nil || *resp.Ans == "":
		msg.Content = ApologyUnprocessed
		msg.Failed = true
	default:
		msg.Content = *resp.Ans
	}
	return msg
}
