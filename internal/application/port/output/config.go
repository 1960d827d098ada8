package output

import "time"

type ConfigPort interface {
	Get(key string) string
	GetWithDefault(key string, defaultValue string) string
	Require(key string) (string, error)
	GetBool(key string, defaultValue bool) bool
	GetInt(key string, defaultValue int) int
	GetFloat(key string, defaultValue float64) float64
	GetDuration(key string, defaultValue time.Duration) time.Duration
}
