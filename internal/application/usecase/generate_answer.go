package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecofin-advisor/internal/application/port/input"
	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"
	"ecofin-advisor/internal/domain/entity"
)

var _ input.Answerer = (*GenerateAnswerUseCase)(nil)

type GenerateAnswerUseCase struct {
	llm        output.GeneratorPort
	assembler  *service.PromptAssembler
	normalizer *service.ResponseNormalizer
	logger     output.LoggerPort
	metrics    output.MetricsPort
	cfg        GenerateAnswerConfig
}

type GenerateAnswerConfig struct {
	Temperature float32
	JSONMode    bool
}

func DefaultGenerateAnswerConfig() GenerateAnswerConfig {
	return GenerateAnswerConfig{
		Temperature: 0.2,
		JSONMode:    true,
	}
}

func NewGenerateAnswerUseCase(
	llm output.GeneratorPort,
	assembler *service.PromptAssembler,
	normalizer *service.ResponseNormalizer,
	logger output.LoggerPort,
	metrics output.MetricsPort,
	cfg GenerateAnswerConfig,
) *GenerateAnswerUseCase {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	return &GenerateAnswerUseCase{
		llm:        llm,
		assembler:  assembler,
		normalizer: normalizer,
		logger:     logger.Named("answer"),
		metrics:    metrics,
		cfg:        cfg,
	}
}

func (uc *GenerateAnswerUseCase) Answer(ctx context.Context, prompt string) (*entity.Answer, error) {
	payload := uc.assembler.Assemble(prompt)
	log := uc.logger.With("provider", uc.llm.Name())

	log.Debug("Generation request", "prompt", prompt, "payload", payload, "payloadLen", len(payload))

	start := time.Now()
	resp, err := uc.llm.Generate(ctx, output.GenerateRequest{
		Payload:     payload,
		Temperature: uc.cfg.Temperature,
		JSONMode:    uc.cfg.JSONMode,
	})
	elapsed := time.Since(start)

	if err != nil {
		uc.metrics.ObserveGeneration(uc.llm.Name(), entity.OutcomeUpstreamErr, elapsed)
		log.Error("Generation failed", "error", err, "elapsed", elapsed)
		if !errors.Is(err, entity.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", entity.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	log.Debug("Generation result", "text", resp.Text, "model", resp.Model,
		"inputTokens", resp.InputTokens, "outputTokens", resp.OutputTokens, "elapsed", elapsed)

	if strings.TrimSpace(resp.Text) == "" {
		uc.metrics.ObserveGeneration(uc.llm.Name(), entity.OutcomeEmpty, elapsed)
		log.Warn("Provider returned no text")
		return nil, entity.ErrEmptyCompletion
	}

	answer, err := uc.normalizer.Normalize(resp.Text)
	if err != nil {
		uc.metrics.ObserveGeneration(uc.llm.Name(), entity.OutcomeMalformed, elapsed)
		log.Warn("Provider output could not be decoded", "error", err)
		return nil, err
	}

	if !answer.Present {
		uc.metrics.ObserveGeneration(uc.llm.Name(), entity.OutcomeAbsent, elapsed)
		log.Warn("Provider output carried no answer, returning empty result", "mode", uc.normalizer.Mode())
		return answer, nil
	}

	uc.metrics.ObserveGeneration(uc.llm.Name(), entity.OutcomeOK, elapsed)
	return answer, nil
}
