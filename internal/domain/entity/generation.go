package entity

// GenerationRequest is the body accepted by POST /generate.
// A missing prompt decodes to the empty string.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
}

// Answer is the normalized result of one round trip to the provider.
// Present is false when the provider output carried no usable answer and
// lenient decoding let the request succeed anyway.
type Answer struct {
	Text    string
	Present bool
}

// AnswerResponse is the success body. Ans is omitted when the answer is absent.
type AnswerResponse struct {
	Ans *string `json:"ans,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAnswerResponse renders an Answer for the wire.
func NewAnswerResponse(a *Answer) AnswerResponse {
	if a == nil || !a.Present {
		return AnswerResponse{}
	}
	text := a.Text
	return AnswerResponse{Ans: &text}
}

type GenerationOutcome string

const (
	OutcomeOK          GenerationOutcome = "ok"
	OutcomeAbsent      GenerationOutcome = "absent"
	OutcomeUpstreamErr GenerationOutcome = "upstream_error"
	OutcomeEmpty       GenerationOutcome = "empty"
	OutcomeMalformed   GenerationOutcome = "malformed"
)
