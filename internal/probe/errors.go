package probe

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a probe or a session call failed
type ErrorKind int

const (
	// NotInitialized means the session was closed or never created
	NotInitialized ErrorKind = iota + 1
	// GenericFailure covers transport failures with no finer classification
	GenericFailure
	// InvalidArguments means a caller passed an empty or malformed argument
	InvalidArguments
	InvalidURLFormat
	ProxyResolutionFailed
	HostResolutionFailed
	ConnectionFailed
	AccessDenied
	// HTTPError is only produced when FailOnHTTPError is set
	HTTPError

	// kindEnd bounds the valid kinds and is never returned
	kindEnd
)

var kindNames = map[ErrorKind]string{
	NotInitialized:        "not_initialized",
	GenericFailure:        "generic_failure",
	InvalidArguments:      "invalid_arguments",
	InvalidURLFormat:      "invalid_url_format",
	ProxyResolutionFailed: "proxy_resolution_failed",
	HostResolutionFailed:  "host_resolution_failed",
	ConnectionFailed:      "connection_failed",
	AccessDenied:          "access_denied",
	HTTPError:             "http_error",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error_kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds
func (k ErrorKind) Valid() bool {
	return k >= NotInitialized && k < kindEnd
}

// Error is returned by every failing probe operation
type Error struct {
	Kind ErrorKind
	Op   string
	URL  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* values below work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

var (
	ErrNotInitialized   = &Error{Kind: NotInitialized}
	ErrGeneric          = &Error{Kind: GenericFailure}
	ErrInvalidArguments = &Error{Kind: InvalidArguments}
	ErrInvalidURL       = &Error{Kind: InvalidURLFormat}
	ErrProxyResolution  = &Error{Kind: ProxyResolutionFailed}
	ErrHostResolution   = &Error{Kind: HostResolutionFailed}
	ErrConnection       = &Error{Kind: ConnectionFailed}
	ErrAccessDenied     = &Error{Kind: AccessDenied}
	ErrHTTP             = &Error{Kind: HTTPError}
)

func newError(kind ErrorKind, op, url string, err error) *Error {
	return &Error{Kind: kind, Op: op, URL: url, Err: err}
}

// KindOf extracts the kind of a probe error. Errors from outside this package
// and errors with an undeclared kind are reported as GenericFailure; nil
// yields zero.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	var pe *Error
	if errors.As(err, &pe) && pe.Kind.Valid() {
		return pe.Kind
	}
	return GenericFailure
}
