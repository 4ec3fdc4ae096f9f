package notion

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeUnauthorized       = "unauthorized"
	CodeRestrictedResource = "restricted_resource"
	CodeObjectNotFound     = "object_not_found"
)

// AuthError means Notion rejected the token or the integration lacks access.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Message)
}

// APIError is any other structured rejection of a well-formed request.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means the request could not be completed at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func classifyFailure(operation string, status int, body []byte) error {
	var payload errorResponse
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = fmt.Sprintf("%s failed with status %d %s", operation, status, http.StatusText(status))
	}

	switch {
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		payload.Code == CodeUnauthorized,
		payload.Code == CodeRestrictedResource:
		return &AuthError{Status: status, Code: payload.Code, Message: message}
	default:
		return &APIError{Status: status, Code: payload.Code, Message: message}
	}
}
