package stub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"ecofin-advisor/internal/application/port/output"
)

var _ output.GeneratorPort = (*StubAdapter)(nil)

// StubAdapter is a deterministic, no-network provider for local runs and CI.
// It returns a valid answer object so the whole pipeline is exercised.
type StubAdapter struct{}

func NewStubAdapter() *StubAdapter { return &StubAdapter{} }

func (a *StubAdapter) Name() string { return "stub" }

func (a *StubAdapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt, _, _ := strings.Cut(req.Payload, "\n\n")
	sum := sha256.Sum256([]byte(req.Payload))
	short := hex.EncodeToString(sum[:4])

	answer := fmt.Sprintf("Stub answer %s for: %s", short, truncate(prompt, 120))
	b, err := json.Marshal(map[string]string{"response": answer})
	if err != nil {
		return nil, err
	}

	return &output.GenerateResponse{
		Text:         string(b),
		Model:        "stub",
		InputTokens:  len(strings.Fields(req.Payload)),
		OutputTokens: len(strings.Fields(answer)),
	}, nil
}

// truncate keeps at most max runes.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
