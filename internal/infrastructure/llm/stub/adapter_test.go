package stub

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DeterministicAndDecodable(t *testing.T) {
	a := NewStubAdapter()
	req := output.GenerateRequest{Payload: "How much CO2 from £150 petrol?\n\ncontext"}

	first, err := a.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)

	answer, err := service.NewResponseNormalizer(service.DecodeStrict).Normalize(first.Text)
	require.NoError(t, err)
	assert.True(t, answer.Present)
	assert.Contains(t, answer.Text, "How much CO2 from £150 petrol?")
	assert.NotContains(t, answer.Text, "context")
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStubAdapter().Generate(ctx, output.GenerateRequest{Payload: "p"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_LongMultiBytePrompt(t *testing.T) {
	prompt := strings.Repeat("£", 200)

	resp, err := NewStubAdapter().Generate(context.Background(), output.GenerateRequest{Payload: prompt + "\n\nctx"})
	require.NoError(t, err)

	answer, err := service.NewResponseNormalizer(service.DecodeStrict).Normalize(resp.Text)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(answer.Text))
	assert.NotContains(t, answer.Text, "\uFFFD")
	assert.Contains(t, answer.Text, strings.Repeat("£", 120))
	assert.NotContains(t, answer.Text, strings.Repeat("£", 121))
}
