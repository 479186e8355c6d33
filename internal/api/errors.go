package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend interaction. Handlers map kinds to HTTP
// statuses and user-facing messages; synchronizers never hide them.
type Kind int

const (
	// KindNotAuthenticated means no token is present; the caller must
	// redirect to login. Not a network failure.
	KindNotAuthenticated Kind = iota
	// KindSessionExpired means the backend rejected the token; it has
	// already been cleared by the time the error is returned.
	KindSessionExpired
	// KindValidation means a client-side field check failed; no network
	// call was made.
	KindValidation
	// KindRemote means the backend returned non-2xx for a well-formed
	// request.
	KindRemote
	// KindNetwork means the request never completed (offline, DNS, timeout).
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindSessionExpired:
		return "session_expired"
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the taxonomy carrier for every failure surfaced by the client and
// the synchronizers.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, set for remote errors
	Field   string // offending field, set for validation errors
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotAuthenticated reports the absence of a token.
func NotAuthenticated() *Error {
	return &Error{Kind: KindNotAuthenticated, Message: "not logged in"}
}

// SessionExpired reports a backend-rejected token.
func SessionExpired() *Error {
	return &Error{Kind: KindSessionExpired, Message: "session expired, please log in again"}
}

// Validation reports a failed client-side field check.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Remote reports a non-2xx backend response. An empty message falls back to
// a generic one so the presentation layer always has something to show.
func Remote(status int, message string) *Error {
	if message == "" {
		message = "request failed"
	}
	return &Error{Kind: KindRemote, Status: status, Message: message}
}

// Network wraps a transport-level failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "could not reach the server", Err: err}
}

// KindOf extracts the taxonomy kind, or -1 for foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Kind(-1)
}

// IsNotAuthenticated reports whether err means "no token present".
func IsNotAuthenticated(err error) bool { return KindOf(err) == KindNotAuthenticated }

// IsSessionExpired reports whether err means the backend rejected the token.
func IsSessionExpired(err error) bool { return KindOf(err) == KindSessionExpired }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsRemote reports whether err is a backend-originated failure.
func IsRemote(err error) bool { return KindOf(err) == KindRemote }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// wrap annotates a foreign error without losing the taxonomy of nested
// *Error values.
func wrap(op string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("api: %s: %w", op, err)
}
