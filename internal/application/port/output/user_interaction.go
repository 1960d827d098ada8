package output

import (
	"context"

	"ecofin-advisor/internal/domain/entity"
)

type ConsolePort interface {
	// ReadPrompt blocks for the next line of user input. io.EOF ends the session.
	ReadPrompt(ctx context.Context) (string, error)

	ShowGreeting(ctx context.Context, msg entity.Message)
	ShowSuggestions(ctx context.Context, suggestions []string)
	ShowTyping(ctx context.Context)
	ShowReply(ctx context.Context, msg entity.Message)
}
