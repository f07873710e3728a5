// Package types holds the JSON envelopes shared by the API and its clients.
package types

// SuccessEnvelope wraps every successful response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorEnvelope wraps every failed response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Envelope is the decoding side of both envelopes.
type Envelope[T any] struct {
	Data  T         `json:"data"`
	Error *APIError `json:"error,omitempty"`
}
