package service

// PromptAssembler joins a caller prompt with the fixed context block.
// The context is captured at construction and never changes.
type PromptAssembler struct {
	context string
}

const payloadSeparator = "\n\n"

func NewPromptAssembler(contextBlock string) *PromptAssembler {
	return &PromptAssembler{context: contextBlock}
}

// Assemble returns prompt + "\n\n" + context, verbatim. An empty prompt is not an error.
func (a *PromptAssembler) Assemble(prompt string) string {
	return prompt + payloadSeparator + a.context
}

func (a *PromptAssembler) Context() string {
	return a.context
}
