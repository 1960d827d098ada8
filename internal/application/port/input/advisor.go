package input

import (
	"context"

	"ecofin-advisor/internal/domain/entity"
)

// Advisor is the chat-side view of the service. It never fails: transport and
// server errors come back as an assistant message carrying an apology.
type Advisor interface {
	Ask(ctx context.Context, prompt string) entity.Message
}
