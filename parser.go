// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/creachadair/catj/internal/escape"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go4.org/mem"
)

// Parser is a streaming parser that consumes JSON input one byte at a time and
// delivers the leaves of each value to a Handler.
type Parser struct {
	r   *bufio.Reader
	log log.Logger
}

// NewParser constructs a new Parser that consumes input from r.
func NewParser(r io.Reader) *Parser {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Parser{r: br, log: log.NewNopLogger()}
}

// SetLogger configures p to log parsing progress to logger. By default
// nothing is logged. A nil logger disables logging.
func (p *Parser) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	p.log = logger
}

// Parse consumes the input to the end and delivers events to h. The input may
// contain any number of concatenated top-level values. Parse returns nil if
// the input was fully processed without error; otherwise the error has
// concrete type *Error.
func (p *Parser) Parse(h Handler) error {
	m := &machine{h: h, log: p.log, pos: LineCol{Line: 1}}
	for {
		b, err := p.r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return m.logError(m.fail(IO, err))
		}
		m.pos.advance(b)
		if err := m.step(classify(b), b); err != nil {
			return m.logError(err)
		}
	}

	// Feed a final end-of-input marker, to finish any pending number and close
	// out the last top-level value.
	if err := m.step(catEnd, ' '); err != nil {
		return m.logError(err)
	} else if m.state != stDoc {
		return m.logError(m.fail(Truncated, nil))
	}
	level.Debug(p.log).Log("msg", "end of input", "values", m.nvals, "leaves", m.leaves, "lines", m.pos.Line)
	return nil
}

// A machine holds the state of a single call to Parse.
type machine struct {
	h     Handler
	log   log.Logger
	state state
	ctl   []state // control stack
	vals  []frame // value stack
	buf   []byte  // current string or number literal
	esc   []byte  // pending \u escape digits
	pos   LineCol

	nvals  int // completed top-level values
	leaves int // leaves delivered
}

// step feeds one input byte of category cat through the transition table,
// following returns until the byte is consumed by a concrete transition.
func (m *machine) step(cat category, ch byte) *Error {
	for {
		t := transitions[m.state][cat]
		if t.isError() {
			if cat == catEnd {
				return m.fail(Truncated, nil)
			}
			return m.fail(Syntax, nil)
		}
		if t.push {
			m.ctl = append(m.ctl, gotos[m.state])
		}
		if m.state == stDoc {
			if len(m.vals) != 0 {
				if err := m.endValue(); err != nil {
					return err
				}
			}
			if t.push {
				if err := m.h.BeginValue(m.nvals); err != nil {
					return m.fail(IO, err)
				}
			}
		}
		if t.act != actNone {
			if err := m.do(t.act, ch); err != nil {
				return err
			}
		}
		if t.next != stReturn {
			m.state = t.next
			return nil
		}
		m.state = m.ctl[len(m.ctl)-1]
		m.ctl = m.ctl[:len(m.ctl)-1]
	}
}

// endValue discards the completed top-level value.
func (m *machine) endValue() *Error {
	m.vals = m.vals[:0]
	if err := m.h.EndValue(m.nvals); err != nil {
		return m.fail(IO, err)
	}
	level.Debug(m.log).Log("msg", "value complete", "index", m.nvals, "line", m.pos.Line, "column", m.pos.Column)
	m.nvals++
	return nil
}

func (m *machine) logError(err *Error) error {
	level.Debug(m.log).Log("msg", "parse failed", "kind", err.Kind, "at", err.Location, "values", m.nvals)
	return err
}

func (m *machine) push(f frame) { m.vals = append(m.vals, f) }

func (m *machine) pop() frame {
	f := m.vals[len(m.vals)-1]
	m.vals = m.vals[:len(m.vals)-1]
	return f
}

func (m *machine) top() *frame {
	if len(m.vals) == 0 {
		panic("catj: value stack is empty")
	}
	return &m.vals[len(m.vals)-1]
}

// leaf delivers v to the handler at the path described by the value stack.
func (m *machine) leaf(v Value) *Error {
	m.leaves++
	if err := m.h.Leaf(Path{frames: m.vals}, v); err != nil {
		return m.fail(IO, err)
	}
	return nil
}

// unpaired reports a pending high surrogate that was not completed.
func (m *machine) unpaired() *Error {
	return m.escapef(`\u%s: unpaired high surrogate`, m.esc)
}

var simpleEscape = [...]byte{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}

// do performs the semantic action act for the input byte ch.
func (m *machine) do(act action, ch byte) *Error {
	switch act {
	case actPushList:
		m.push(frame{tag: tagList})

	case actPushObject:
		m.push(frame{tag: tagObject, empty: true})

	case actAppend:
		if v := m.pop(); v.tag == tagScalar {
			if err := m.leaf(v.val); err != nil {
				return err
			}
		}
		top := m.top()
		if top.tag != tagList {
			panic("catj: append to a non-list")
		}
		top.n++

	case actBind:
		var err *Error
		switch v := m.pop(); {
		case v.tag == tagScalar:
			err = m.leaf(v.val)
		case v.tag == tagList && v.n == 0:
			err = m.leaf(Value{kind: EmptyArray})
		case v.tag == tagObject && v.empty:
			err = m.leaf(Value{kind: EmptyObject})
		}
		if err != nil {
			return err
		}
		m.pop() // the key
		top := m.top()
		if top.tag != tagObject {
			panic("catj: bind to a non-object")
		}
		top.empty = false

	case actPushNull:
		m.push(scalar(Value{kind: Null}))

	case actPushTrue:
		m.push(scalar(Value{kind: Bool, b: true}))

	case actPushFalse:
		m.push(scalar(Value{kind: Bool}))

	case actPushString:
		if len(m.esc) != 0 {
			return m.unpaired()
		}
		if err := checkUTF8(m.buf); err != nil {
			return m.fail(Unicode, err)
		}
		m.push(scalar(Value{kind: String, text: string(m.buf)}))
		m.buf = m.buf[:0]

	case actPushNumber:
		if err := checkUTF8(m.buf); err != nil {
			return m.fail(Unicode, err)
		}
		m.push(scalar(Value{kind: Number, text: string(m.buf)}))
		m.buf = m.buf[:0]

	case actAddByte:
		if len(m.esc) != 0 {
			return m.unpaired()
		}
		m.buf = append(m.buf, ch)

	case actAddHex:
		if !escape.IsHexDigit(ch) {
			return m.escapef("%s is not a hex digit", quoteByte(ch))
		}
		m.esc = append(m.esc, ch)

	case actEscape:
		if int(ch) >= len(simpleEscape) || simpleEscape[ch] == 0 {
			return m.escapef(`\%s`, printable(ch))
		} else if len(m.esc) != 0 {
			return m.unpaired()
		}
		m.buf = append(m.buf, simpleEscape[ch])

	case actUnicode:
		r, pending, err := escape.DecodeUnicode(mem.B(m.esc))
		if err != nil {
			return m.fail(InvalidEscape, err)
		} else if pending {
			return nil // wait for the low surrogate
		}
		m.buf = utf8.AppendRune(m.buf, r)
		m.esc = m.esc[:0]

	default:
		panic(fmt.Sprintf("catj: unknown action %d", act))
	}
	return nil
}

// checkUTF8 reports an error if buf is not valid UTF-8.
func checkUTF8(buf []byte) error {
	for i := 0; i < len(buf); {
		r, n := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && n == 1 {
			return fmt.Errorf("invalid byte %#02x at offset %d", buf[i], i)
		}
		i += n
	}
	return nil
}

// printable renders ch for an error message.
func printable(ch byte) string {
	if ch < ' ' || ch >= 0x7f {
		return fmt.Sprintf("x%02x", ch)
	}
	return string(rune(ch))
}

func quoteByte(ch byte) string { return "'" + printable(ch) + "'" }
