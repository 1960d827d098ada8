package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"ecofin-advisor/internal/domain/entity"
)

type DecodeMode string

const (
	// DecodeStrict reports provider output that is not {"response": "<string>"} as an error.
	DecodeStrict DecodeMode = "strict"
	// DecodeLenient treats such output as a successful call with no answer.
	DecodeLenient DecodeMode = "lenient"
)

func ParseDecodeMode(s string) (DecodeMode, error) {
	switch DecodeMode(strings.ToLower(strings.TrimSpace(s))) {
	case DecodeStrict, "":
		return DecodeStrict, nil
	case DecodeLenient:
		return DecodeLenient, nil
	default:
		return "", fmt.Errorf("unknown decode mode %q", s)
	}
}

const answerField = "response"

type ResponseNormalizer struct {
	mode DecodeMode
}

func NewResponseNormalizer(mode DecodeMode) *ResponseNormalizer {
	return &ResponseNormalizer{mode: mode}
}

func (n *ResponseNormalizer) Mode() DecodeMode {
	return n.mode
}

// Normalize extracts the answer field from raw provider text.
func (n *ResponseNormalizer) Normalize(raw string) (*entity.Answer, error) {
	text, err := decodeAnswer(raw)
	if err != nil {
		if n.mode == DecodeLenient {
			return &entity.Answer{}, nil
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedCompletion, err)
	}
	return &entity.Answer{Text: text, Present: true}, nil
}

// decodeAnswer tries the raw text as-is first. Fence and prose stripping only
// runs when that fails, so answers that quote ``` blocks survive intact.
func decodeAnswer(raw string) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err != nil {
		obj = nil
		if err := json.Unmarshal([]byte(ExtractJSON(raw)), &obj); err != nil {
			return "", fmt.Errorf("decode object: %w", err)
		}
	}
	if obj == nil {
		return "", fmt.Errorf("decode object: null")
	}

	field, ok := obj[answerField]
	if !ok {
		return "", fmt.Errorf("missing %q field", answerField)
	}

	var text string
	if err := json.Unmarshal(field, &text); err != nil {
		return "", fmt.Errorf("field %q is not a string: %w", answerField, err)
	}
	return text, nil
}

// ExtractJSON strips a Markdown code fence around a JSON object, or the prose
// around a bare one. Text with neither is returned trimmed.
func ExtractJSON(response string) string {
	const fence = "```"

	trimmed := strings.TrimSpace(response)
	start := strings.Index(trimmed, fence)
	if start == -1 {
		open := strings.Index(trimmed, "{")
		closing := strings.LastIndex(trimmed, "}")
		if open == -1 || closing < open {
			return trimmed
		}
		return trimmed[open : closing+1]
	}

	rest := trimmed[start+len(fence):]
	end := strings.Index(rest, fence)
	if end == -1 {
		return trimmed
	}
	content := rest[:end]

	// drop the language tag, e.g. ```json
	if nl := strings.Index(content, "\n"); nl != -1 {
		tag := strings.TrimSpace(content[:nl])
		if tag == "" || !strings.ContainsAny(tag, "{[") {
			content = content[nl+1:]
		}
	}
	return strings.TrimSpace(content)
}
