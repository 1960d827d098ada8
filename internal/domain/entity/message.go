package entity

import (
	"strings"
	"time"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageType tags a chat turn for display.
type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeAnalysis   MessageType = "analysis"
	MessageTypeSuggestion MessageType = "suggestion"
)

type Message struct {
	Role      MessageRole
	Content   string
	Type      MessageType
	Timestamp time.Time
	// Failed marks an assistant turn whose content is a fallback apology.
	Failed bool
}

var (
	analysisKeywords   = []string{"transaction", "spending", "analyze", "budget"}
	suggestionKeywords = []string{"carbon", "footprint", "environment", "eco", "green"}
)

// ClassifyPrompt decides how the reply to a user prompt is displayed.
// Analysis keywords win over suggestion keywords.
func ClassifyPrompt(prompt string) MessageType {
	input := strings.ToLower(prompt)

	if containsAny(input, analysisKeywords) {
		return MessageTypeAnalysis
	}
	if containsAny(input, suggestionKeywords) {
		return MessageTypeSuggestion
	}
	return MessageTypeText
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
