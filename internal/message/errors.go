package message

import "fmt"

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// KindStructural means the input split into the wrong number of parts.
	KindStructural ErrorKind = iota
	// KindUnrecognizedKind means a type tag matched neither "block" nor "transaction".
	KindUnrecognizedKind
	// KindInvalidField means a single field failed its validation rule.
	KindInvalidField
)

// Error is returned by every decode function. Callers branch on Kind; the
// message text is for display and its wording is not part of the contract.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func structural(format string, args ...any) *Error {
	return &Error{Kind: KindStructural, Msg: fmt.Sprintf(format, args...)}
}

func unrecognized(format string, args ...any) *Error {
	return &Error{Kind: KindUnrecognizedKind, Msg: fmt.Sprintf(format, args...)}
}

func invalidField(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidField, Msg: fmt.Sprintf(format, args...)}
}
