package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown preference backend or file format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyDocument indicates the uploaded file contained no text.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrInvalidTab indicates an unknown result tab.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrStaleResponse indicates a response arrived after a newer result was installed.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrPreferenceUnavailable indicates durable preference storage cannot be used.
	ErrPreferenceUnavailable = errors.New("preference storage unavailable")

	// Triage failure kinds. TriageError values match these with errors.Is.

	// ErrFileRead indicates the file content could not be extracted.
	ErrFileRead = errors.New("file read error")

	// ErrNetwork indicates the request could not reach the triage service.
	ErrNetwork = errors.New("network error")

	// ErrNetworkTimeout indicates the request did not complete in time.
	ErrNetworkTimeout = errors.New("network timeout")

	// ErrService indicates the triage service answered with a non-2xx status.
	ErrService = errors.New("service error")

	// ErrMalformedResponse indicates the body was not JSON or lacked a result object.
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind classifies a triage failure.
type ErrorKind int

// Triage failure kinds.
const (
	KindFileRead ErrorKind = iota + 1
	KindNetwork
	KindNetworkTimeout
	KindService
	KindMalformedResponse
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindFileRead:
		return "FileReadError"
	case KindNetwork:
		return "NetworkError"
	case KindNetworkTimeout:
		return "NetworkTimeout"
	case KindService:
		return "ServiceError"
	case KindMalformedResponse:
		return "MalformedResponse"
	default:
		return "UnknownError"
	}
}

// sentinel returns the package-level error matching the kind.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileRead:
		return ErrFileRead
	case KindNetwork:
		return ErrNetwork
	case KindNetworkTimeout:
		return ErrNetworkTimeout
	case KindService:
		return ErrService
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return nil
	}
}

// TriageError is the failure value returned by every submission.
type TriageError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status for KindService, zero otherwise.
	StatusCode int

	// Message is a short human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewTriageError creates a triage error of the given kind.
func NewTriageError(kind ErrorKind, message string, err error) *TriageError {
	return &TriageError{Kind: kind, Message: message, Err: err}
}

// NewServiceError creates a KindService error for a non-2xx status.
// detail is the optional error text returned by the service.
func NewServiceError(statusCode int, detail string) *TriageError {
	msg := fmt.Sprintf("triage service returned HTTP %d", statusCode)
	if detail != "" {
		msg += ": " + detail
	}
	return &TriageError{Kind: KindService, StatusCode: statusCode, Message: msg}
}

// Error implements error.
func (e *TriageError) Error() string {
	if e == nil {
		return "triage error"
	}
	msg := e.Message
	if msg == "" {
		if s := e.Kind.sentinel(); s != nil {
			msg = s.Error()
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *TriageError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel, so errors.Is(err, ErrService) works.
func (e *TriageError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// UserMessage returns the line shown to the user.
func (e *TriageError) UserMessage() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindFileRead:
		return "Could not read the document: " + e.detail()
	case KindNetwork:
		return "Could not reach the triage service: " + e.detail()
	case KindNetworkTimeout:
		return "The triage service did not respond in time."
	case KindService:
		return e.detail()
	case KindMalformedResponse:
		return "The triage service returned an unexpected response: " + e.detail()
	default:
		return e.Error()
	}
}

func (e *TriageError) detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.sentinel().Error()
}

// Clone returns a copy of the error value.
func (e *TriageError) Clone() *TriageError {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// AsTriageError extracts a TriageError from an error chain.
func AsTriageError(err error) (*TriageError, bool) {
	var te *TriageError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
