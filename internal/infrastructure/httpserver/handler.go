package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ecofin-advisor/internal/application/port/input"
	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"
	"ecofin-advisor/internal/version"
)

const (
	msgInvalidRequest    = "Invalid request body"
	msgGenerationFailed  = "Failed to generate response"
	msgMalformedProvider = "Malformed provider response"
)

type Handler struct {
	answerer     input.Answerer
	provider     string
	logger       output.LoggerPort
	maxBodyBytes int64
}

func NewHandler(answerer input.Answerer, provider string, logger output.LoggerPort, maxBodyBytes int64) *Handler {
	return &Handler{
		answerer:     answerer,
		provider:     provider,
		logger:       logger.Named("http"),
		maxBodyBytes: maxBodyBytes,
	}
}

// Generate handles POST /generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req entity.GenerationRequest
	if err := decodeBody(r.Body, &req); err != nil {
		h.logger.Warn("Rejected request body", "error", err)
		h.writeError(w, err)
		return
	}

	h.logger.Info("Received prompt", "prompt", req.Prompt)

	answer, err := h.answerer.Answer(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("Error in /generate route", "error", err)
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity.NewAnswerResponse(answer))
}

type healthResponse struct {
	Status   string       `json:"status"`
	Provider string       `json:"provider"`
	Build    version.Info `json:"build"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Provider: h.provider,
		Build:    version.Get(),
	})
}

// decodeBody accepts an empty body as an empty prompt.
func decodeBody(body io.Reader, req *entity.GenerationRequest) error {
	err := json.NewDecoder(body).Decode(req)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", entity.ErrInvalidRequest, err)
}

// StatusFor maps a pipeline error to the HTTP status and public message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		return http.StatusBadRequest, msgInvalidRequest
	case errors.Is(err, entity.ErrMalformedCompletion):
		return http.StatusBadGateway, msgMalformedProvider
	default:
		return http.StatusInternalServerError, msgGenerationFailed
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, msg := StatusFor(err)
	writeJSON(w, status, entity.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
