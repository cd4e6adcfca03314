package fyle

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed Fyle API call by the HTTP status it returned
type ErrorKind int

const (
	// KindGeneric is any status without a dedicated kind
	KindGeneric ErrorKind = iota
	// KindInvalidParameters maps 400
	KindInvalidParameters
	// KindUnauthorized maps 401
	KindUnauthorized
	// KindForbidden maps 403
	KindForbidden
	// KindNotFound maps 404
	KindNotFound
	// KindTokenExpired maps 498
	KindTokenExpired
	// KindInternalServerError maps 500
	KindInternalServerError
)

// StatusTokenExpired is the non-standard status the Fyle API uses for stale access tokens.
const StatusTokenExpired = 498

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameters:
		return "INVALID_PARAMETERS"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindTokenExpired:
		return "TOKEN_EXPIRED"
	case KindInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "GENERIC"
	}
}

// Error is returned for every non-200 response from the Fyle API
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("fyle API error: status %d: %s", e.StatusCode, e.Message)
}

// Is reports whether target is an *Error of the same kind, so the package
// sentinels can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsTokenExpired checks if the caller should re-authenticate
func (e *Error) IsTokenExpired() bool {
	return e.Kind == KindTokenExpired
}

// IsUnauthorized checks if the credentials or token were rejected
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrInvalidParameters = &Error{Kind: KindInvalidParameters, Message: "Some of the parameters are wrong", StatusCode: 400}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized, Message: "Wrong client secret or/and refresh token", StatusCode: 401}
	ErrForbidden         = &Error{Kind: KindForbidden, Message: "Forbidden, the user has insufficient privilege", StatusCode: 403}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "Client ID doesn't exist", StatusCode: 404}
	ErrTokenExpired      = &Error{Kind: KindTokenExpired, Message: "Expired token, try to refresh it", StatusCode: StatusTokenExpired}
	ErrInternalServer    = &Error{Kind: KindInternalServerError, Message: "Internal server error", StatusCode: 500}
	ErrGeneric           = &Error{Kind: KindGeneric, Message: "Error"}
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid fyle configuration")
	// ErrMissingAccessToken indicates a 200 token response without an access_token
	ErrMissingAccessToken = errors.New("token response did not contain an access_token")
)

// resourceStatuses is the status mapping used by every resource endpoint.
var resourceStatuses = map[int]*Error{
	400:                ErrInvalidParameters,
	401:                ErrUnauthorized,
	403:                ErrForbidden,
	404:                ErrNotFound,
	StatusTokenExpired: ErrTokenExpired,
	500:                ErrInternalServer,
}

// tokenStatuses is the narrower mapping used by the token endpoint.
var tokenStatuses = map[int]*Error{
	401: ErrUnauthorized,
	404: ErrNotFound,
	500: ErrInternalServer,
}

// statusError builds the error for a non-200 status using the given mapping.
// Statuses outside the mapping become KindGeneric carrying the raw code.
func statusError(status int, mapping map[int]*Error) *Error {
	if known, ok := mapping[status]; ok {
		return &Error{Kind: known.Kind, Message: known.Message, StatusCode: status}
	}
	return &Error{
		Kind:       KindGeneric,
		Message:    fmt.Sprintf("Error: %d", status),
		StatusCode: status,
	}
}

// KindOf extracts the ErrorKind from err, if err wraps an *Error
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindGeneric, false
}

// TransportError reports a failure that happened before a status could be
// mapped: building the request, the round trip itself, reading or decoding
// the body.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fyle transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
