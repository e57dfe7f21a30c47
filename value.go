// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import (
	"strconv"

	"github.com/creachadair/catj/internal/escape"
	"go4.org/mem"
)

// Kind is the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Null        Kind = iota // constant: null
	Bool                    // constant: true or false
	Number                  // number, kept as written
	String                  // decoded string
	EmptyArray              // array: []
	EmptyObject             // object: {}
)

var kindText = [...]string{
	Null:        "null",
	Bool:        "bool",
	Number:      "number",
	String:      "string",
	EmptyArray:  "empty array",
	EmptyObject: "empty object",
}

func (k Kind) String() string {
	if int(k) >= len(kindText) {
		return "invalid kind"
	}
	return kindText[k]
}

// A Value is a leaf of a JSON document: a scalar, or an empty array or object.
type Value struct {
	kind Kind
	b    bool
	text string
}

// Kind reports the type of v.
func (v Value) Kind() Kind { return v.kind }

// Bool reports the value of a Bool. It reports false for other kinds.
func (v Value) Bool() bool { return v.b }

// Text reports the text of a Number exactly as it appeared in the input, or the
// decoded contents of a String. It returns "" for other kinds.
func (v Value) Text() string { return v.text }

// String returns the value formatted for output: null, true, false, the
// number text verbatim, a quoted and escaped string, [] or {}.
func (v Value) String() string { return string(v.appendTo(nil)) }

func (v Value) appendTo(buf []byte) []byte {
	switch v.kind {
	case Null:
		return append(buf, "null"...)
	case Bool:
		return strconv.AppendBool(buf, v.b)
	case Number:
		return append(buf, v.text...)
	case String:
		return escape.AppendQuote(buf, mem.S(v.text))
	case EmptyArray:
		return append(buf, "[]"...)
	case EmptyObject:
		return append(buf, "{}"...)
	}
	panic("catj: invalid value kind " + v.kind.String())
}

// frameTag distinguishes the entries of the value stack.
type frameTag byte

const (
	tagObject frameTag = iota
	tagList
	tagScalar
)

// A frame is one entry of the value stack.
type frame struct {
	tag   frameTag
	empty bool  // object: no member has been bound
	n     int   // list: number of elements appended
	val   Value // scalar
}

func scalar(v Value) frame { return frame{tag: tagScalar, val: v} }

// A Path is the location of a value within a top-level value. A Path passed to
// a Handler is only valid for the duration of that call.
type Path struct{ frames []frame }

// A Step is one element of a Path, selecting either an object member or an
// array element.
type Step struct {
	Key   string // the member key, when Index < 0
	Index int    // the array offset, or -1 for an object member
}

// Steps returns the steps of p from the root.
func (p Path) Steps() []Step {
	var out []Step
	for _, f := range p.frames {
		switch f.tag {
		case tagList:
			out = append(out, Step{Index: f.n})
		case tagScalar:
			out = append(out, Step{Key: f.val.text, Index: -1})
		}
	}
	return out
}

// String returns the printed form of p, for example .a[0]."b c".
func (p Path) String() string { return string(p.appendTo(nil)) }

// appendTo writes "." for each object, "[n]" for each list element, and each
// member key, bare if it is an identifier or quoted otherwise.
func (p Path) appendTo(buf []byte) []byte {
	for _, f := range p.frames {
		switch f.tag {
		case tagObject:
			buf = append(buf, '.')
		case tagList:
			buf = append(buf, '[')
			buf = strconv.AppendInt(buf, int64(f.n), 10)
			buf = append(buf, ']')
		case tagScalar:
			if f.val.kind != String {
				panic("catj: invalid item in a path: " + f.val.kind.String())
			}
			if key := mem.S(f.val.text); escape.IsIdent(key) {
				buf = mem.Append(buf, key)
			} else {
				buf = escape.AppendQuote(buf, key)
			}
		}
	}
	return buf
}
