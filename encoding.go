// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import (
	"github.com/creachadair/catj/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value the way the flattened output does.
// Quotation marks, backslashes, and control characters are escaped, and
// double quotation marks are added. Other characters are not escaped.
func Quote(src string) string { return mem.B(escape.Quote(mem.S(src))).StringCopy() }
