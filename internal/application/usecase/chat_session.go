package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ecofin-advisor/internal/application/port/input"
	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"
)

const Greeting = "Hello! I'm your AI financial and environmental advisor. I can help you analyze your spending patterns, reduce your carbon footprint, and optimize your finances. What would you like to know?"

var SampleSuggestions = []string{
	"Analyze my recent transactions",
	"How can I reduce my carbon footprint?",
	"Show me my spending patterns",
	"Suggest eco-friendly alternatives",
}

// ChatSession drives an interactive conversation on a console.
type ChatSession struct {
	advisor input.Advisor
	console output.ConsolePort
	logger  output.LoggerPort

	transcript []entity.Message
}

func NewChatSession(advisor input.Advisor, console output.ConsolePort, logger output.LoggerPort) *ChatSession {
	return &ChatSession{
		advisor: advisor,
		console: console,
		logger:  logger.Named("chat"),
	}
}

// Run loops until the user types exit/quit, input ends, or ctx is done.
func (s *ChatSession) Run(ctx context.Context) error {
	greeting := entity.Message{
		Role:      entity.RoleAssistant,
		Content:   Greeting,
		Type:      entity.MessageTypeText,
		Timestamp: time.Now(),
	}
	s.transcript = append(s.transcript, greeting)
	s.console.ShowGreeting(ctx, greeting)
	s.console.ShowSuggestions(ctx, SampleSuggestions)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := s.console.ReadPrompt(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read prompt: %w", err)
		}

		prompt := s.resolve(strings.TrimSpace(line))
		if prompt == "" {
			continue
		}
		if isExit(prompt) {
			return nil
		}

		s.transcript = append(s.transcript, entity.Message{
			Role:      entity.RoleUser,
			Content:   prompt,
			Timestamp: time.Now(),
		})

		s.console.ShowTyping(ctx)
		reply := s.advisor.Ask(ctx, prompt)
		if reply.Failed {
			s.logger.Warn("Advisor reply replaced by apology", "prompt", prompt)
		}
		s.transcript = append(s.transcript, reply)
		s.console.ShowReply(ctx, reply)
	}
}

// Transcript returns the messages exchanged so far, greeting included.
func (s *ChatSession) Transcript() []entity.Message {
	out := make([]entity.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// resolve maps "1".."n" to the matching sample suggestion.
func (s *ChatSession) resolve(line string) string {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(SampleSuggestions) {
		return line
	}
	return SampleSuggestions[n-1]
}

func isExit(s string) bool {
	switch strings.ToLower(s) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}
