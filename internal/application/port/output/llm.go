package output

import (
	"context"
	"time"
)

// GeneratorPort is a text-generation provider: given text, it returns text or fails.
type GeneratorPort interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type GenerateRequest struct {
	Payload     string
	Temperature float32
	// JSONMode asks the provider to constrain its output to a JSON object.
	JSONMode bool
}

type GenerateResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ProviderConfig carries everything a provider factory needs.
type ProviderConfig struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// JSONMode is forwarded to providers that fix the output format per client.
	JSONMode bool
	Logger   LoggerPort
}
