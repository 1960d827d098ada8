package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ConsolePort = (*ConsoleChat)(nil)

type ConsoleChat struct {
	reader *bufio.Reader
	out    io.Writer

	startOnce sync.Once
	lines     chan readResult
}

type readResult struct {
	line string
	err  error
}

func NewConsoleChat() *ConsoleChat {
	return NewConsoleChatWith(os.Stdin, os.Stdout)
}

func NewConsoleChatWith(in io.Reader, out io.Writer) *ConsoleChat {
	return &ConsoleChat{
		reader: bufio.NewReader(in),
		out:    out,
		lines:  make(chan readResult, 1),
	}
}

// ReadPrompt returns as soon as ctx is done, even while the user has not
// pressed Enter. The pending read is handed to the next call.
func (c *ConsoleChat) ReadPrompt(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.startOnce.Do(func() { go c.readLines() })

	bold := color.New(color.FgWhite, color.Bold)
	bold.Fprint(c.out, "\nYou > ")

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			if res.err == io.EOF {
				return "", io.EOF
			}
			return "", fmt.Errorf("failed to read user input: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}

func (c *ConsoleChat) readLines() {
	defer close(c.lines)
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line != "" {
				c.lines <- readResult{line: line}
			}
			c.lines <- readResult{err: err}
			return
		}
		c.lines <- readResult{line: line}
	}
}

func (c *ConsoleChat) ShowGreeting(ctx context.Context, msg entity.Message) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintln(c.out, "━━━ EcoFin AI Advisor ━━━")
	fmt.Fprintln(c.out, msg.Content)
}

func (c *ConsoleChat) ShowSuggestions(ctx context.Context, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	dim := color.New(color.Faint)
	dim.Fprintln(c.out, "\nTry one of these (type the number), or \"exit\" to leave:")
	for i, s := range suggestions {
		dim.Fprintf(c.out, "  %d. %s\n", i+1, s)
	}
}

func (c *ConsoleChat) ShowTyping(ctx context.Context) {
	dim := color.New(color.Faint)
	dim.Fprintln(c.out, "Advisor is typing...")
}

func (c *ConsoleChat) ShowReply(ctx context.Context, msg entity.Message) {
	if msg.Failed {
		red := color.New(color.FgRed)
		red.Fprint(c.out, "Advisor: ")
		fmt.Fprintln(c.out, msg.Content)
		return
	}

	icon, label := replyDisplay(msg.Type)
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(c.out, "%s %s: ", icon, label)
	fmt.Fprintln(c.out, msg.Content)

	dim := color.New(color.Faint)
	dim.Fprintf(c.out, "   %s\n", msg.Timestamp.Format("15:04"))
}

func replyDisplay(t entity.MessageType) (string, string) {
	displays := map[entity.MessageType][2]string{
		entity.MessageTypeAnalysis:   {"📊", "Analysis"},
		entity.MessageTypeSuggestion: {"🌱", "Suggestion"},
	}

	if display, ok := displays[t]; ok {
		return display[0], display[1]
	}
	return "💬", "Advisor"
}
