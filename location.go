// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import "strconv"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of the last-consumed byte in its line, 1-based; 0 after a newline
}

func (lc LineCol) String() string {
	return strconv.Itoa(lc.Line) + ":" + strconv.Itoa(lc.Column)
}

// advance updates lc to account for consuming b.
func (lc *LineCol) advance(b byte) {
	if b == '\n' {
		lc.Line++
		lc.Column = 0
	} else {
		lc.Column++
	}
}
