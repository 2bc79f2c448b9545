package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the class of failure an API or storage operation hit
type ErrorType string

const (
	ErrorTypeTransport         ErrorType = "transport"
	ErrorTypeHTTPStatus        ErrorType = "http_status"
	ErrorTypeMalformedResponse ErrorType = "malformed_response"
	ErrorTypeFilesystem        ErrorType = "filesystem"
)

// maxBodyPreview bounds how much of a response body is carried in messages
const maxBodyPreview = 200

// Error is the uniform failure value returned by the API client and storage layer
type Error struct {
	Type     ErrorType
	Endpoint string
	Status   int
	Body     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Endpoint != "" {
		msg += " for " + e.Endpoint
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + BodyPreview(e.Body)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport wraps a connection failure or timeout
func Transport(endpoint string, err error) *Error {
	return &Error{Type: ErrorTypeTransport, Endpoint: endpoint, Err: err}
}

// HTTPStatus reports a non-2xx response together with its body
func HTTPStatus(endpoint string, status int, body string) *Error {
	return &Error{Type: ErrorTypeHTTPStatus, Endpoint: endpoint, Status: status, Body: body}
}

// Malformed reports a response that decoded but lacked an expected field
func Malformed(endpoint, message string) *Error {
	return &Error{Type: ErrorTypeMalformedResponse, Endpoint: endpoint, Message: message}
}

// Filesystem wraps a failed write or read under the output tree
func Filesystem(path string, err error) *Error {
	return &Error{Type: ErrorTypeFilesystem, Endpoint: path, Err: err}
}

// TypeOf returns the ErrorType carried by err, or "" when err is not an *Error
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsTransport reports whether err is a connection or timeout failure
func IsTransport(err error) bool {
	return TypeOf(err) == ErrorTypeTransport
}

// IsHTTPStatus reports whether err is a non-2xx response
func IsHTTPStatus(err error) bool {
	return TypeOf(err) == ErrorTypeHTTPStatus
}

// IsMalformed reports whether err is a response missing an expected field
func IsMalformed(err error) bool {
	return TypeOf(err) == ErrorTypeMalformedResponse
}

// IsFilesystem reports whether err is a storage failure
func IsFilesystem(err error) bool {
	return TypeOf(err) == ErrorTypeFilesystem
}

// StatusCode returns the HTTP status attached to err, or 0
func StatusCode(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Status
	}
	return 0
}

// BodyPreview truncates a response body for log lines
func BodyPreview(body string) string {
	if len(body) > maxBodyPreview {
		return body[:maxBodyPreview] + "..."
	}
	return body
}
