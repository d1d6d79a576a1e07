package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an outcome of the acquisition or inference path. Every
// failure a handler can observe carries exactly one Kind; the HTTP formatter
// maps it to a status code.
type Kind string

const (
	KindMissingInput      Kind = "missing_input"
	KindInvalidEncoding   Kind = "invalid_encoding"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindUnsupportedScheme Kind = "unsupported_scheme"
	KindTLSUnavailable    Kind = "tls_unavailable"
	KindFetchFailed       Kind = "fetch_failed"
	KindPayloadTooLarge   Kind = "payload_too_large"
	KindMalformedBody     Kind = "malformed_body"
	KindEngine            Kind = "engine"
	KindConfig            Kind = "config"
	KindBootstrap         Kind = "bootstrap"
	KindUnknown           Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}

// KindOf returns the Kind of the first classified error in the chain, or
// KindUnknown when the chain carries none.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindUnknown
}

// PublicMessage returns the message a caller may see. Classified errors
// expose their message, with the cause text attached when present; anything
// unclassified is reported as an internal error with its diagnostic.
func PublicMessage(err error) string {
	var target *Error
	if errors.As(err, &target) {
		if target.Cause != nil {
			return fmt.Sprintf("%s: %v", target.Message, target.Cause)
		}
		return target.Message
	}
	return fmt.Sprintf("Internal server error: %v", err)
}

// HTTPStatus maps a classification to the wire status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindMissingInput,
		KindInvalidEncoding,
		KindUnsupportedFormat,
		KindUnsupportedScheme,
		KindTLSUnavailable,
		KindFetchFailed,
		KindMalformedBody:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
