package arlula

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ErrDecode is matched by every decode failure.
var ErrDecode = errors.New("decode failure")

// Static errors for err113 compliance.
var (
	ErrInvalidSearchRequest      = errors.New("invalid search request")
	ErrInvalidOrderRequest       = errors.New("invalid order request")
	ErrInvalidBatchOrderRequest  = errors.New("invalid batch order request")
	ErrInvalidCollectionRequest  = errors.New("invalid collection request")
	ErrInvalidItemRequest        = errors.New("invalid item request")
	ErrNoLoader                  = errors.New("entity has no loader for sub-resources")
	ErrWKTMissingPrefix          = errors.New("WKT polygon must start with POLYGON(")
	ErrWKTMalformed              = errors.New("malformed WKT polygon")
	ErrConfigRequired            = errors.New("config is required")
	ErrAPIEndpointRequired       = errors.New("API endpoint is required")
	ErrCredentialsRequired       = errors.New("API key and secret are required")
	ErrIDRequired                = errors.New("id is required")
	ErrUnsupportedCacheType      = errors.New("unsupported cache type")
	ErrNATSConfigRequired        = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired       = errors.New("redis configuration required for redis cache")
	ErrCacheDisabled             = errors.New("cache disabled")
	ErrCacheKeyNotFound          = errors.New("key not found")
	ErrCacheEntryExpired         = errors.New("entry expired")
	ErrUnexpectedResponsePayload = errors.New("unexpected response payload")
)

// DecodeError describes why a server payload could not be decoded into an entity.
type DecodeError struct {
	Entity string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decoding %s: %s", e.Entity, e.Reason)
	}

	return fmt.Sprintf("decoding %s: field %q %s", e.Entity, e.Field, e.Reason)
}

// Is reports ErrDecode so callers can branch on the failure class.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsDecodeError checks if the error is a response-shape mismatch.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// ResponseError represents a non-2xx response from the API.
type ResponseError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}

	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

// ParseResponseError converts a failed response body into a ResponseError.
// The server answers either with a JSON object carrying "message" or "error",
// or with plain text.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(data)),
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(data, &payload); err == nil {
		respErr.Message = payload.Message
		if respErr.Message == "" {
			respErr.Message = payload.Error
		}
	}

	return respErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}
