// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		b    byte
		want category
	}{
		{' ', catSpace}, {'\t', catWhite}, {'\n', catWhite}, {'\r', catWhite},
		{0, catCtrl}, {0x1f, catCtrl}, {'{', catLBrace}, {'}', catRBrace},
		{'[', catLSquare}, {']', catRSquare}, {':', catColon}, {',', catComma},
		{'"', catQuote}, {'\\', catBacks}, {'/', catSlash}, {'+', catPlus},
		{'-', catMinus}, {'.', catPoint}, {'0', catZero}, {'5', catDigit},
		{'9', catDigit}, {'a', catLowA}, {'e', catLowE}, {'u', catLowU},
		{'c', catHex}, {'D', catHex}, {'F', catHex}, {'E', catCapE},
		{'g', catOther}, {'T', catOther}, {'~', catOther}, {0x7f, catOther},
		{0xc3, catOther}, {0xff, catOther},
	}
	for _, test := range tests {
		if got := classify(test.b); got != test.want {
			t.Errorf("classify(%#02x): got %d, want %d", test.b, got, test.want)
		}
	}
}

func TestTransitions(t *testing.T) {
	t.Run("EndOfInput", func(t *testing.T) {
		// At the end of input, a state must either fail, finish its construct,
		// or already be at the top level.
		for s := range numStates {
			tr := transitions[s][catEnd]
			switch {
			case tr.isError(), tr.next == stReturn:
			case s == stDoc && tr.next == stDoc:
			default:
				t.Errorf("State %d on end of input: unexpected transition %+v", s, tr)
			}
			if tr.push {
				t.Errorf("State %d pushes on end of input", s)
			}
		}
	})

	t.Run("Gotos", func(t *testing.T) {
		want := map[state]state{
			stDoc:      stDoc,
			stArrFirst: stArrNext,
			stArrElem:  stArrNext,
			stObjFirst: stObjColon,
			stObjKey:   stObjColon,
			stObjValue: stObjNext,
			stStr:      stStr,
		}
		for s := range numStates {
			for c, tr := range transitions[s] {
				if !tr.push {
					continue
				}
				g, ok := want[s]
				if !ok {
					t.Errorf("State %d pushes on category %d but has no goto", s, c)
				} else if gotos[s] != g {
					t.Errorf("State %d: goto is %d, want %d", s, gotos[s], g)
				}
			}
		}
	})

	t.Run("Errors", func(t *testing.T) {
		for s := range numStates {
			for c, tr := range transitions[s] {
				if tr.isError() != (tr.act == actError) {
					t.Errorf("State %d category %d: inconsistent error transition %+v", s, c, tr)
				}
			}
		}
	})

	t.Run("Strings", func(t *testing.T) {
		// Raw control bytes are never string content.
		for _, c := range []category{catCtrl, catWhite, catEnd} {
			if tr := transitions[stStr][c]; !tr.isError() {
				t.Errorf("String on category %d: got %+v, want error", c, tr)
			}
		}
		for _, b := range []byte("aZ~ \x7f\xc3\xff/") {
			if tr := transitions[stStr][classify(b)]; tr.next != stStr || tr.act != actAddByte {
				t.Errorf("String on %#02x: got %+v, want content", b, tr)
			}
		}
	})
}

func TestPathPanic(t *testing.T) {
	p := Path{frames: []frame{
		{tag: tagObject},
		scalar(Value{kind: Number, text: "1"}),
	}}
	mtest.MustPanic(t, func() { _ = p.String() })

	v := Value{kind: Kind(99)}
	mtest.MustPanic(t, func() { _ = v.String() })
}

func TestPathString(t *testing.T) {
	p := Path{frames: []frame{
		{tag: tagObject},
		scalar(Value{kind: String, text: "a"}),
		{tag: tagList, n: 3},
		{tag: tagObject},
		scalar(Value{kind: String, text: "b c"}),
	}}
	if got, want := p.String(), `.a[3]."b c"`; got != want {
		t.Errorf("Path: got %q, want %q", got, want)
	}
	steps := p.Steps()
	if len(steps) != 3 || steps[0].Key != "a" || steps[1].Index != 3 || steps[2].Key != "b c" {
		t.Errorf("Steps: got %+v", steps)
	}
}
