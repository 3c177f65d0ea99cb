package xkcd

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindTransport covers network failures and non-2xx responses,
	// including the not-found answer for comic numbers that do not exist.
	KindTransport ErrorKind = iota + 1
	// KindDecode means the body was not a JSON comic object.
	KindDecode
	// KindParse means year, month or day was not an integer.
	KindParse
	// KindDate means year, month and day do not form a calendar date.
	KindDate
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindParse:
		return "parse"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches the one of its kind.
var (
	ErrTransport = &Error{Kind: KindTransport}
	ErrDecode    = &Error{Kind: KindDecode}
	ErrParse     = &Error{Kind: KindParse}
	ErrDate      = &Error{Kind: KindDate}
)

// Error is returned by every failing call in this package.
type Error struct {
	Kind ErrorKind
	// URL that was requested, when the failure happened while fetching.
	URL string
	// StatusCode is set for transport errors caused by a non-2xx response.
	StatusCode int
	// Field and Value name the offending date component for parse errors.
	Field string
	Value string
	// Message carries detail that has no underlying error.
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := "xkcd: " + e.Kind.String() + " error"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	switch {
	case e.StatusCode != 0:
		msg += fmt.Sprintf(": unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Field != "":
		msg += fmt.Sprintf(": invalid %s %q", e.Field, e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrDecode) works
// regardless of the details carried by err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or 0 if err was not produced by this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a transport error caused by a 404, which
// is how xkcd answers for comic numbers that were never published.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport && e.StatusCode == http.StatusNotFound
}
