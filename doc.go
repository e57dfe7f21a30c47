// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package catj implements a streaming parser that flattens JSON into a
// listing of "path = value" lines.
//
// # Flattening
//
// Each leaf of the input is reported as one line giving its path from the
// root and its value, in document order:
//
//	{"name": "catj", "tags": ["json", "cli"], "meta": {}}
//
// becomes
//
//	.name = "catj"
//	.tags[0] = "json"
//	.tags[1] = "cli"
//	.meta = {}
//
// Object members are written ".key", with the key quoted if it is not made
// entirely of ASCII letters, digits, and underscores. Array elements are
// written "[n]". Numbers are reproduced exactly as written in the input, and
// strings are quoted with escapes only for quotation marks, backslashes, and
// control characters.
//
// The simplest way to flatten an input is to call Flatten:
//
//	if err := catj.Flatten(os.Stdin, os.Stdout); err != nil {
//	   log.Fatalf("Flatten failed: %v", err)
//	}
//
// # Parsing
//
// The Parser type reads its input one byte at a time and drives a table of
// state transitions with an explicit control stack, rather than recursing
// over the structure of the input. It never holds more of the input than the
// path to the current value and the text of the current string or number, so
// arbitrarily large documents can be processed in bounded memory.
//
// Construct a Parser from an io.Reader, and call its Parse method with a
// Handler to receive the leaves:
//
//	p := catj.NewParser(input)
//	if err := p.Parse(catj.NewPrinter(output)); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The input may contain any number of concatenated top-level values. The
// Printer separates the output for consecutive values with a blank line.
//
// # Errors
//
// Parsing stops at the first error, which has concrete type *Error. The error
// reports the line and column of the byte being processed when the error was
// detected, and its Kind:
//
//	Kind          | Meaning
//	------------- | ---------------------------------------------------
//	Truncated     | the input ended inside a value
//	Syntax        | the input is not valid JSON at this point
//	InvalidEscape | a string contains a malformed backslash escape
//	Unicode       | a string is not valid UTF-8
//	IO            | reading the input or delivering output failed
package catj
