// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/creachadair/catj"
	"github.com/google/go-cmp/cmp"
)

// Recorder is a catj.Handler that records a line of text for each event, and
// keeps the values of the leaves it receives.
type Recorder struct {
	buf    bytes.Buffer
	Values []catj.Value
}

func (r *Recorder) pr(msg string, args ...any) {
	fmt.Fprintf(&r.buf, msg, args...)
	r.buf.WriteByte('\n')
}

// Output returns the text recorded so far.
func (r *Recorder) Output() string { return r.buf.String() }

func (r *Recorder) BeginValue(i int) error { r.pr("Begin %d", i); return nil }
func (r *Recorder) EndValue(i int) error   { r.pr("End %d", i); return nil }

func (r *Recorder) Leaf(p catj.Path, v catj.Value) error {
	r.Values = append(r.Values, v)
	r.pr("Leaf %s = %s %v", p, v, p.Steps())
	return nil
}

// DiffLines reports the line-wise differences between want and got, ignoring
// leading and trailing whitespace. It returns "" if they are equal.
func DiffLines(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}
