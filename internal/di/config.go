package di

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/application/service"
)

const (
	DefaultProvider        = "gemini"
	DefaultHTTPAddr        = ":8000"
	DefaultAdvisorURL      = "http://localhost:8000"
	DefaultTemperature     = 0.2
	DefaultLLMTimeout      = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	LLMTimeout  time.Duration
	JSONMode    bool

	ContextFile string
	DecodeMode  service.DecodeMode

	HTTPAddr        string
	AllowedOrigins  []string
	MaxConnections  int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	AccessLog       bool

	LogLevel  string
	LogFormat string
	LogDir    string

	MetricsEnabled bool

	AdvisorURL string
}

// LoadConfig reads and validates every setting once at startup.
func LoadConfig(env output.ConfigPort) (Config, error) {
	mode, err := service.ParseDecodeMode(env.GetWithDefault("DECODE_MODE", string(service.DecodeStrict)))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Provider:    strings.ToLower(env.GetWithDefault("LLM_PROVIDER", DefaultProvider)),
		APIKey:      env.Get("LLM_API_KEY"),
		Model:       env.Get("LLM_MODEL"),
		BaseURL:     env.Get("LLM_BASE_URL"),
		Temperature: float32(env.GetFloat("LLM_TEMPERATURE", DefaultTemperature)),
		LLMTimeout:  env.GetDuration("LLM_TIMEOUT", DefaultLLMTimeout),
		JSONMode:    env.GetBool("LLM_JSON_MODE", true),

		ContextFile: env.Get("CONTEXT_FILE"),
		DecodeMode:  mode,

		HTTPAddr:        env.GetWithDefault("HTTP_ADDR", DefaultHTTPAddr),
		AllowedOrigins:  splitList(env.GetWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		MaxConnections:  env.GetInt("MAX_CONNECTIONS", 0),
		MaxBodyBytes:    int64(env.GetInt("MAX_BODY_BYTES", 0)),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		AccessLog:       env.GetBool("ACCESS_LOG", true),

		LogLevel:  env.GetWithDefault("LOG_LEVEL", "info"),
		LogFormat: env.GetWithDefault("LOG_FORMAT", "json"),
		LogDir:    env.Get("LOG_DIR"),

		MetricsEnabled: env.GetBool("METRICS_ENABLED", true),

		AdvisorURL: env.GetWithDefault("ADVISOR_URL", DefaultAdvisorURL),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be within [0, 2], got %v", c.Temperature))
	}
	if c.LLMTimeout < 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must not be negative"))
	}
	if c.MaxConnections < 0 {
		errs = append(errs, fmt.Errorf("MAX_CONNECTIONS must not be negative"))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must not be negative"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, fmt.Errorf("HTTP_ADDR is empty"))
	}
	return errors.Join(errs...)
}

// ProviderConfig is the slice of Config a provider factory sees.
func (c Config) ProviderConfig(logger output.LoggerPort) output.ProviderConfig {
	return output.ProviderConfig{
		Name:     c.Provider,
		APIKey:   c.APIKey,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
		Timeout:  c.LLMTimeout,
		JSONMode: c.JSONMode,
		Logger:   logger,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
