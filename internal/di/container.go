package di

import (
	"context"
	"fmt"
	"net/http"

	"ecofin-advisor/internal/application/port/input"
	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"
	"ecofin-advisor/internal/application/usecase"
	"ecofin-advisor/internal/infrastructure/httpserver"
	"ecofin-advisor/internal/infrastructure/logger"
	"ecofin-advisor/internal/infrastructure/metrics"
	"ecofin-advisor/internal/infrastructure/prompts"
	"ecofin-advisor/internal/version"
)

type Container struct {
	Config   Config
	Logger   output.LoggerPort
	LLM      output.GeneratorPort
	Metrics  *metrics.Metrics
	Context  string
	Answerer input.Answerer
	Handler  *httpserver.Handler
	Router   http.Handler
	Server   *httpserver.Server
}

// NewLogger builds the process logger from Config.
func NewLogger(cfg Config) (*logger.LoggerAdapter, error) {
	return logger.NewLoggerAdapter(logger.Options{
		Service: version.Service,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Dir:     cfg.LogDir,
	})
}

// NewContainer wires the whole server. The context block is rendered here
// once and never changes afterwards.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newContainer(ctx, cfg, log)
}

func newContainer(ctx context.Context, cfg Config, log output.LoggerPort) (*Container, error) {
	contextBlock, err := prompts.LoadContextBlock(cfg.ContextFile)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load context: %w", err)
	}

	registry := NewProviderRegistry(ctx)
	llm, err := registry.Build(cfg.ProviderConfig(log.Named(cfg.Provider)))
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create provider %q: %w", cfg.Provider, err)
	}

	var m *metrics.Metrics
	var observer output.MetricsPort
	if cfg.MetricsEnabled {
		m = metrics.NewDefault()
		observer = m
	}

	uc := usecase.NewGenerateAnswerUseCase(
		llm,
		service.NewPromptAssembler(contextBlock),
		service.NewResponseNormalizer(cfg.DecodeMode),
		log,
		observer,
		usecase.GenerateAnswerConfig{
			Temperature: cfg.Temperature,
			JSONMode:    cfg.JSONMode,
		},
	)

	handler := httpserver.NewHandler(uc, llm.Name(), log, cfg.MaxBodyBytes)
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      cfg.AccessLog,
		JSONLogs:       cfg.LogFormat != "console",
		Metrics:        m,
	})
	server := httpserver.NewServer(router, httpserver.ServerConfig{
		Addr:            cfg.HTTPAddr,
		MaxConnections:  cfg.MaxConnections,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, log)

	log.Info("Container ready",
		"provider", llm.Name(),
		"decodeMode", string(cfg.DecodeMode),
		"contextBytes", len(contextBlock),
		"metrics", cfg.MetricsEnabled,
	)

	return &Container{
		Config:   cfg,
		Logger:   log,
		LLM:      llm,
		Metrics:  m,
		Context:  contextBlock,
		Answerer: uc,
		Handler:  handler,
		Router:   router,
		Server:   server,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
