package userinteraction

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"ecofin-advisor/internal/application/usecase"
	"ecofin-advisor/internal/domain/entity"
	"ecofin-advisor/internal/infrastructure/logger"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(t *testing.T, input string) (*ConsoleChat, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	out := &bytes.Buffer{}
	return NewConsoleChatWith(strings.NewReader(input), out), out
}

func TestReadPrompt(t *testing.T) {
	c, out := newConsole(t, "  hello there \nlast")

	line, err := c.ReadPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello there", line)
	assert.Contains(t, out.String(), "You > ")

	line, err = c.ReadPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = c.ReadPrompt(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadPrompt_CancelledContext(t *testing.T) {
	c, _ := newConsole(t, "hello\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReadPrompt(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadPrompt_CancelWhileWaitingForInput(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	c := NewConsoleChatWith(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.ReadPrompt(ctx)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("ReadPrompt still blocked after cancel")
	}

	// the line typed after the cancel is not lost
	go func() { _, _ = io.WriteString(pw, "later\n") }()
	line, err := c.ReadPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "later", line)
}

type silentAdvisor struct{}

func (silentAdvisor) Ask(ctx context.Context, prompt string) entity.Message {
	return entity.Message{Role: entity.RoleAssistant, Content: prompt}
}

func TestChatSession_StopsOnCancelAtPrompt(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	session := usecase.NewChatSession(silentAdvisor{}, NewConsoleChatWith(pr, io.Discard), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("chat session did not stop after cancel")
	}
}

func TestShowSuggestions_Numbered(t *testing.T) {
	c, out := newConsole(t, "")

	c.ShowSuggestions(context.Background(), []string{"first", "second"})

	assert.Contains(t, out.String(), "  1. first\n")
	assert.Contains(t, out.String(), "  2. second\n")
}

func TestShowReply(t *testing.T) {
	c, out := newConsole(t, "")
	ts := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)

	c.ShowReply(context.Background(), entity.Message{Content: "Cut beef.", Type: entity.MessageTypeSuggestion, Timestamp: ts})
	assert.Contains(t, out.String(), "Suggestion: Cut beef.")
	assert.Contains(t, out.String(), "09:30")

	out.Reset()
	c.ShowReply(context.Background(), entity.Message{Content: "sorry", Failed: true})
	assert.Equal(t, "Advisor: sorry\n", out.String())
}
