package input

import (
	"context"

	"ecofin-advisor/internal/domain/entity"
)

// Answerer runs the assemble → generate → normalize pipeline for one prompt.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (*entity.Answer, error)
}
