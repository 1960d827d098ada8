package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiAdapter_MissingKey(t *testing.T) {
	_, err := NewGeminiAdapter(context.Background(), Config{})
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
}

func TestNewGeminiAdapter_DefaultModel(t *testing.T) {
	adapter, err := NewGeminiAdapter(context.Background(), Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", adapter.model)
}

func TestGenerate_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"response\":\"Use the train.\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 20, "candidatesTokenCount": 6}
		}`)
	}))
	defer srv.Close()

	adapter, err := NewGeminiAdapter(context.Background(), Config{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)

	resp, err := adapter.Generate(context.Background(), output.GenerateRequest{
		Payload:  "commute?\n\nctx",
		JSONMode: true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"response":"Use the train."}`, resp.Text)
	assert.Equal(t, 20, resp.InputTokens)
	assert.Equal(t, 6, resp.OutputTokens)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-test:generateContent"), gotPath)
	assert.Contains(t, gotBody, "contents")
}

func TestGenerate_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	adapter, err := NewGeminiAdapter(context.Background(), Config{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = adapter.Generate(context.Background(), output.GenerateRequest{Payload: "p"})
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}
