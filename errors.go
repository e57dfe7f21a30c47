// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import "fmt"

// ErrorKind classifies the errors reported by a Parser.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	Truncated     ErrorKind = iota + 1 // input ended inside a value
	Syntax                             // no valid transition for the input
	InvalidEscape                      // malformed backslash escape in a string
	Unicode                            // invalid UTF-8 in a string or number
	IO                                 // failure reading input or delivering output
)

var kindStr = [...]string{
	Truncated:     "truncated",
	Syntax:        "syntax",
	InvalidEscape: "invalid escape",
	Unicode:       "unicode",
	IO:            "I/O",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) || kindStr[k] == "" {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return kindStr[k]
}

// Error is the concrete type of errors reported by Parse.
type Error struct {
	Location LineCol   // the location of the byte being processed
	Kind     ErrorKind // the kind of error
	Message  string    // a human-readable description

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping. For errors of kind IO, it reports the
// underlying failure.
func (e *Error) Unwrap() error { return e.err }

// fail constructs an *Error of the given kind at the current location.
func (m *machine) fail(kind ErrorKind, err error) *Error {
	var msg string
	switch kind {
	case Truncated:
		msg = "JSON truncated"
	case Syntax:
		msg = "invalid JSON syntax"
	case InvalidEscape:
		msg = "invalid string escape sequence: " + err.Error()
		err = nil
	case Unicode:
		msg = "invalid UTF-8: " + err.Error()
	case IO:
		msg = "I/O error: " + err.Error()
	}
	return &Error{Location: m.pos, Kind: kind, Message: msg, err: err}
}

// escapef constructs an InvalidEscape error at the current location.
func (m *machine) escapef(msg string, args ...any) *Error {
	return m.fail(InvalidEscape, fmt.Errorf(msg, args...))
}
