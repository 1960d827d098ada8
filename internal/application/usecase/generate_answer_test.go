package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"
	"ecofin-advisor/internal/domain/entity"
	"ecofin-advisor/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testContext = "REFERENCE DATA"

type mockGenerator struct {
	text     string
	err      error
	requests []output.GenerateRequest
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &output.GenerateResponse{Text: m.text, Model: "mock-1"}, nil
}

type recordingMetrics struct {
	outcomes []entity.GenerationOutcome
}

func (r *recordingMetrics) ObserveGeneration(provider string, outcome entity.GenerationOutcome, elapsed time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

func newUseCase(gen *mockGenerator, mode service.DecodeMode) (*GenerateAnswerUseCase, *recordingMetrics) {
	m := &recordingMetrics{}
	uc := NewGenerateAnswerUseCase(
		gen,
		service.NewPromptAssembler(testContext),
		service.NewResponseNormalizer(mode),
		logger.NewNopLogger(),
		m,
		DefaultGenerateAnswerConfig(),
	)
	return uc, m
}

func TestAnswer_Success(t *testing.T) {
	gen := &mockGenerator{text: `{"response":"About 0.5 tonnes."}`}
	uc, m := newUseCase(gen, service.DecodeStrict)

	ans, err := uc.Answer(context.Background(), "How much CO2 from £150 petrol?")
	require.NoError(t, err)

	assert.Equal(t, &entity.Answer{Text: "About 0.5 tonnes.", Present: true}, ans)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "How much CO2 from £150 petrol?\n\n"+testContext, gen.requests[0].Payload)
	assert.Equal(t, float32(0.2), gen.requests[0].Temperature)
	assert.True(t, gen.requests[0].JSONMode)
	assert.Equal(t, []entity.GenerationOutcome{entity.OutcomeOK}, m.outcomes)
}

func TestAnswer_EmptyPromptStillCallsProvider(t *testing.T) {
	gen := &mockGenerator{text: `{"response":"Ask me about emissions."}`}
	uc, _ := newUseCase(gen, service.DecodeStrict)

	_, err := uc.Answer(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "\n\n"+testContext, gen.requests[0].Payload)
}

func TestAnswer_ProviderFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("connection refused")}
	uc, m := newUseCase(gen, service.DecodeStrict)

	ans, err := uc.Answer(context.Background(), "hi")

	assert.Nil(t, ans)
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, []entity.GenerationOutcome{entity.OutcomeUpstreamErr}, m.outcomes)
}

func TestAnswer_ProviderFailureAlreadyWrapped(t *testing.T) {
	wrapped := errors.Join(entity.ErrUpstreamUnavailable, errors.New("429"))
	uc, _ := newUseCase(&mockGenerator{err: wrapped}, service.DecodeStrict)

	_, err := uc.Answer(context.Background(), "hi")
	assert.Same(t, wrapped, err)
}

func TestAnswer_EmptyCompletion(t *testing.T) {
	for _, text := range []string{"", "   \n"} {
		uc, m := newUseCase(&mockGenerator{text: text}, service.DecodeLenient)

		_, err := uc.Answer(context.Background(), "hi")
		assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
		assert.Equal(t, []entity.GenerationOutcome{entity.OutcomeEmpty}, m.outcomes)
	}
}

func TestAnswer_MalformedStrict(t *testing.T) {
	uc, m := newUseCase(&mockGenerator{text: "I think about half a tonne"}, service.DecodeStrict)

	_, err := uc.Answer(context.Background(), "hi")
	assert.ErrorIs(t, err, entity.ErrMalformedCompletion)
	assert.Equal(t, []entity.GenerationOutcome{entity.OutcomeMalformed}, m.outcomes)
}

func TestAnswer_MalformedLenient(t *testing.T) {
	uc, m := newUseCase(&mockGenerator{text: "I think about half a tonne"}, service.DecodeLenient)

	ans, err := uc.Answer(context.Background(), "hi")
	require.NoError(t, err)
	assert.False(t, ans.Present)
	assert.Equal(t, []entity.GenerationOutcome{entity.OutcomeAbsent}, m.outcomes)
}

func TestAnswer_NilMetrics(t *testing.T) {
	uc := NewGenerateAnswerUseCase(
		&mockGenerator{text: `{"response":"ok"}`},
		service.NewPromptAssembler(testContext),
		service.NewResponseNormalizer(service.DecodeStrict),
		logger.NewNopLogger(),
		nil,
		DefaultGenerateAnswerConfig(),
	)

	ans, err := uc.Answer(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", ans.Text)
}

func TestAnswer_LogsPayloadAndResultAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gen := &mockGenerator{text: `{"response":"About 0.5 tonnes."}`}
	uc := NewGenerateAnswerUseCase(
		gen,
		service.NewPromptAssembler(testContext),
		service.NewResponseNormalizer(service.DecodeStrict),
		logger.FromZap(zap.New(core)),
		nil,
		DefaultGenerateAnswerConfig(),
	)

	_, err := uc.Answer(context.Background(), "petrol?")
	require.NoError(t, err)

	requests := logs.FilterMessage("Generation request").All()
	require.Len(t, requests, 1)
	assert.Equal(t, zapcore.DebugLevel, requests[0].Level)
	assert.Equal(t, "petrol?\n\n"+testContext, requests[0].ContextMap()["payload"])
	assert.Equal(t, "mock", requests[0].ContextMap()["provider"])

	results := logs.FilterMessage("Generation result").All()
	require.Len(t, results, 1)
	assert.Equal(t, `{"response":"About 0.5 tonnes."}`, results[0].ContextMap()["text"])
}
