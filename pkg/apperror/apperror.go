package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error and fixes its HTTP status and code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindGone
)

const fallbackMessage = "An unexpected error occurred"

var kinds = map[Kind]struct {
	status int
	code   string
}{
	KindInternal:       {http.StatusInternalServerError, "INTERNAL_ERROR"},
	KindValidation:     {http.StatusBadRequest, "VALIDATION_ERROR"},
	KindAuthentication: {http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
	KindForbidden:      {http.StatusForbidden, "FORBIDDEN"},
	KindNotFound:       {http.StatusNotFound, "NOT_FOUND"},
	KindConflict:       {http.StatusConflict, "CONFLICT"},
	KindGone:           {http.StatusGone, "GONE"},
}

// Status returns the HTTP status bound to the kind.
func (k Kind) Status() int { return kinds[k].status }

// Code returns the machine readable code bound to the kind.
func (k Kind) Code() string { return kinds[k].code }

// Error is a tagged application failure. Cause is kept for logging and is
// never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Wrap attaches the underlying cause.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

func Validation(msg string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}
func Authentication(msg string) *Error { return newErr(KindAuthentication, msg) }
func Forbidden(msg string) *Error      { return newErr(KindForbidden, msg) }
func NotFound(msg string) *Error       { return newErr(KindNotFound, msg) }
func Conflict(msg string) *Error       { return newErr(KindConflict, msg) }
func Gone(msg string) *Error           { return newErr(KindGone, msg) }
func Internal(msg string) *Error       { return newErr(KindInternal, msg) }

// Resolved is the client facing view of any error.
type Resolved struct {
	Message    string   `json:"error"`
	StatusCode int      `json:"-"`
	Code       string   `json:"code"`
	Details    []string `json:"details,omitempty"`
}

// Translate maps any error to its client facing form. Known kinds keep
// their own status and code, everything else is reported as internal.
func Translate(err error) Resolved {
	var ae *Error
	if errors.As(err, &ae) {
		msg := ae.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return Resolved{Message: msg, StatusCode: ae.Kind.Status(), Code: ae.Kind.Code(), Details: ae.Details}
	}
	msg := fallbackMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Resolved{Message: msg, StatusCode: KindInternal.Status(), Code: KindInternal.Code()}
}

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of kind k.
func Is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// ShouldLog is false for validation failures, which are client mistakes.
func ShouldLog(err error) bool {
	return !Is(err, KindValidation)
}
