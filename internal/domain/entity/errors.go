package entity

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUpstreamUnavailable = errors.New("provider unavailable")
	ErrEmptyCompletion     = errors.New("provider returned no text")
	ErrMalformedCompletion = errors.New("provider response is not a valid answer object")
	ErrMissingAPIKey       = errors.New("missing api key")
	ErrUnknownProvider     = errors.New("unknown provider")
)
