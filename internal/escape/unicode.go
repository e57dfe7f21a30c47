// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and decoding of Unicode
// escape sequences.
package escape

import (
	"fmt"
	"unicode/utf16"

	"go4.org/mem"
)

// Surrogate ranges of UTF-16.
const (
	highFirst = 0xD800
	highLast  = 0xDBFF
	lowFirst  = 0xDC00
	lowLast   = 0xDFFF
)

// IsHexDigit reports whether b is a hexadecimal digit.
func IsHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// DecodeUnicode decodes the hex digits of a \u escape. The digits are either a
// single 4-digit code unit, or two 4-digit code units forming a surrogate
// pair.
//
// If digits holds a single high surrogate, DecodeUnicode reports pending ==
// true and the caller must append the digits of the following escape before
// calling again. A lone low surrogate, a high surrogate followed by anything
// but a low surrogate, or a digit count other than 4 or 8 is reported as an
// error whose text names the offending escape.
func DecodeUnicode(digits mem.RO) (r rune, pending bool, err error) {
	switch digits.Len() {
	case 4:
		v, err := parseHex(digits)
		if err != nil {
			return 0, false, fmt.Errorf(`\u%s: %w`, digits.StringCopy(), err)
		}
		if highFirst <= v && v <= highLast {
			return 0, true, nil
		} else if lowFirst <= v && v <= lowLast {
			return 0, false, fmt.Errorf(`\u%s: unpaired low surrogate`, digits.StringCopy())
		}
		return rune(v), false, nil

	case 8:
		hs, ls := digits.SliceTo(4), digits.SliceFrom(4)
		hi, err := parseHex(hs)
		if err != nil {
			return 0, false, fmt.Errorf(`\u%s: %w`, hs.StringCopy(), err)
		} else if hi < highFirst || hi > highLast {
			return 0, false, fmt.Errorf(`\u%s: not a high surrogate`, hs.StringCopy())
		}
		lo, err := parseHex(ls)
		if err != nil {
			return 0, false, fmt.Errorf(`\u%s: %w`, ls.StringCopy(), err)
		} else if lo < lowFirst || lo > lowLast {
			return 0, false, fmt.Errorf(`\u%s\u%s: unpaired high surrogate`, hs.StringCopy(), ls.StringCopy())
		}
		return utf16.DecodeRune(rune(hi), rune(lo)), false, nil

	default:
		return 0, false, fmt.Errorf(`\u%s: wrong number of digits`, digits.StringCopy())
	}
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
