package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Scopes int    `json:"scopes,omitempty"`
}

// TokensResponse is the body of the token echo endpoint.
type TokensResponse struct {
	Path   string      `json:"path"`
	Scope  string      `json:"scope,omitempty"`
	Tokens []TokenItem `json:"tokens"`
}

// TokenItem is one generated token.
type TokenItem struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Header string `json:"header,omitempty"`
	Cached bool   `json:"cached"`
}
