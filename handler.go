// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import "io"

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller wrapped in
// an *Error of kind IO.
type Handler interface {
	// Begin a new top-level value. The index of the first value is 0.
	BeginValue(index int) error

	// Report a leaf at the given path. A leaf is a scalar value, or an empty
	// array or object that is the value of an object member. The path is only
	// valid for the duration of the call.
	Leaf(path Path, v Value) error

	// End the current top-level value.
	EndValue(index int) error
}

// Printer is a Handler that writes one "path = value" line for each leaf to
// an io.Writer. Consecutive top-level values are separated by a blank line.
type Printer struct {
	w   io.Writer
	buf []byte
}

// NewPrinter constructs a Printer that writes to w. The Printer does no
// buffering of its own beyond a single line.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// BeginValue implements part of the Handler interface.
func (p *Printer) BeginValue(index int) error {
	if index > 0 {
		_, err := io.WriteString(p.w, "\n")
		return err
	}
	return nil
}

// Leaf implements part of the Handler interface.
func (p *Printer) Leaf(path Path, v Value) error {
	p.buf = path.appendTo(p.buf[:0])
	p.buf = append(p.buf, " = "...)
	p.buf = v.appendTo(p.buf)
	p.buf = append(p.buf, '\n')
	_, err := p.w.Write(p.buf)
	return err
}

// EndValue implements part of the Handler interface.
func (p *Printer) EndValue(int) error { return nil }

// Flatten parses JSON values from r and writes their flattened form to w.
// In case of error, the error has concrete type *Error.
func Flatten(r io.Reader, w io.Writer) error {
	return NewParser(r).Parse(NewPrinter(w))
}
