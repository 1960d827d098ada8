package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ecofin-advisor/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct {
	appEnv string
	loaded []string
}

// NewEnvService loads dir/.env and then dir/.env.$APP_ENV over it.
// Missing files are not an error; Loaded reports what was actually read.
func NewEnvService(dir string) *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	svc := &EnvService{appEnv: appEnv}

	base := filepath.Join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		svc.loaded = append(svc.loaded, base)
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err == nil {
		svc.loaded = append(svc.loaded, envFile)
	}

	return svc
}

func (e *EnvService) AppEnv() string {
	return e.appEnv
}

func (e *EnvService) Loaded() []string {
	return e.loaded
}

func (e *EnvService) Get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	if val := e.Get(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) Require(key string) (string, error) {
	val := e.Get(key)
	if val == "" {
		return "", fmt.Errorf("env %s is missing", key)
	}
	return val, nil
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetFloat(key string, defaultValue float64) float64 {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
