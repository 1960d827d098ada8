package output

import (
	"time"

	"ecofin-advisor/internal/domain/entity"
)

type MetricsPort interface {
	ObserveGeneration(provider string, outcome entity.GenerationOutcome, elapsed time.Duration)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveGeneration(string, entity.GenerationOutcome, time.Duration) {}
