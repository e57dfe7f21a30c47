// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catj

// A category is the lexical class of an input byte. Categories index the
// columns of the transition table.
type category uint8

const (
	catSpace   category = iota // space
	catWhite                   // tab, LF, CR
	catCtrl                    // other control bytes
	catLBrace                  // {
	catRBrace                  // }
	catLSquare                 // [
	catRSquare                 // ]
	catColon                   // :
	catComma                   // ,
	catQuote                   // "
	catBacks                   // \
	catSlash                   // /
	catPlus                    // +
	catMinus                   // -
	catPoint                   // .
	catZero                    // 0
	catDigit                   // 1-9
	catLowA                    // a
	catLowB                    // b
	catLowE                    // e
	catLowF                    // f
	catLowL                    // l
	catLowN                    // n
	catLowR                    // r
	catLowS                    // s
	catLowT                    // t
	catLowU                    // u
	catHex                     // c d A B C D F
	catCapE                    // E
	catOther                   // everything else, including bytes >= 0x7f
	catEnd                     // end of input
	numCategories
)

// categories maps each byte up to 0x7e to its category. Larger bytes are
// clamped to 0x7e, which shares catOther with ordinary string content.
var categories [0x7f]category

// classify reports the category of the input byte b.
func classify(b byte) category { return categories[min(b, 0x7e)] }

// A state is a position in the parsing automaton.
type state uint8

const (
	stDoc      state = iota // top level: expecting a value or end of input
	stDone                  // a value is complete; return on the next byte
	stArrFirst              // after "[": expecting a value or "]"
	stArrElem               // after ",": expecting a value
	stArrNext               // after an element: expecting "," or "]"
	stObjFirst              // after "{": expecting a key or "}"
	stObjKey                // after ",": expecting a key
	stObjColon              // after a key: expecting ":"
	stObjValue              // after ":": expecting a value
	stObjNext               // after a member: expecting "," or "}"

	stStr    // inside a string
	stEsc    // after "\" in a string
	stEscEnd // a simple escape is complete
	stU1     // \u, expecting hex digit 1
	stU2     // expecting hex digit 2
	stU3     // expecting hex digit 3
	stU4     // expecting hex digit 4
	stUEnd   // \uXXXX is complete

	stNumMinus // -
	stNumZero  // leading 0
	stNumInt   // integer digits
	stNumPoint // decimal point
	stNumFrac  // fraction digits
	stNumExp   // e or E
	stNumSign  // exponent sign
	stNumPow   // exponent digits

	stT1 // t
	stT2 // tr
	stT3 // tru
	stF1 // f
	stF2 // fa
	stF3 // fal
	stF4 // fals
	stN1 // n
	stN2 // nu
	stN3 // nul

	numStates

	stReturn = numStates     // pop the control stack and reconsider the byte
	stError  = numStates + 1 // no valid transition
)

// An action is a semantic operation performed during a transition.
type action uint8

const (
	actNone       action = iota
	actPushList          // push an empty list
	actPushObject        // push an empty object
	actAppend            // pop a value and append it to the enclosing list
	actBind              // pop a value and its key and bind them in the enclosing object
	actPushNull          // push null
	actPushTrue          // push true
	actPushFalse         // push false
	actPushString        // push the decoded string literal
	actPushNumber        // push the number literal
	actAddByte           // append the byte to the literal buffer
	actAddHex            // append the byte to the escape buffer
	actEscape            // resolve a single-character escape
	actUnicode           // resolve a \u escape or surrogate pair
	actError
)

// A transition is an entry in the transition table. If push is set, the goto
// state of the current state is pushed on the control stack before act runs.
type transition struct {
	next state
	act  action
	push bool
}

func (t transition) isError() bool { return t.next == stError }

var errTransition = transition{next: stError, act: actError}

var (
	transitions [numStates][numCategories]transition

	// gotos gives the state to resume after a nested construct entered from
	// each state completes.
	gotos [numStates]state
)

func init() {
	initCategories()
	initTransitions()
}

func initCategories() {
	for i := range categories {
		if i < ' ' {
			categories[i] = catCtrl
		} else {
			categories[i] = catOther
		}
	}
	categories[' '] = catSpace
	for _, b := range []byte("\t\n\r") {
		categories[b] = catWhite
	}
	for _, b := range []byte("123456789") {
		categories[b] = catDigit
	}
	for _, b := range []byte("cdABCDF") {
		categories[b] = catHex
	}
	for b, c := range map[byte]category{
		'{': catLBrace, '}': catRBrace, '[': catLSquare, ']': catRSquare,
		':': catColon, ',': catComma, '"': catQuote, '\\': catBacks,
		'/': catSlash, '+': catPlus, '-': catMinus, '.': catPoint,
		'0': catZero, 'E': catCapE,
		'a': catLowA, 'b': catLowB, 'e': catLowE, 'f': catLowF, 'l': catLowL,
		'n': catLowN, 'r': catLowR, 's': catLowS, 't': catLowT, 'u': catLowU,
	} {
		categories[b] = c
	}
}

// Transition constructors.
func goTo(next state, act action) transition { return transition{next: next, act: act} }
func call(next state, act action) transition { return transition{next: next, act: act, push: true} }
func ret(act action) transition              { return transition{next: stReturn, act: act} }

// Groups of categories.
var (
	space    = []category{catSpace, catWhite}
	digits   = []category{catZero, catDigit}
	exponent = []category{catLowE, catCapE}
	numEnd   = []category{catSpace, catWhite, catComma, catRSquare, catRBrace, catEnd}
)

// on sets the transition for state s on each of the given categories.
func on(s state, t transition, cats ...category) {
	for _, c := range cats {
		transitions[s][c] = t
	}
}

// onAll sets the transition for state s on every category except the end of
// input and those listed in except.
func onAll(s state, t transition, except ...category) {
next:
	for c := range numCategories - 1 {
		for _, x := range except {
			if c == x {
				continue next
			}
		}
		transitions[s][c] = t
	}
}

// values adds the transitions that begin a nested value from state s, which
// resumes in gotos[s] once the value is complete.
func values(s state) {
	on(s, goTo(s, actNone), space...)
	on(s, call(stObjFirst, actPushObject), catLBrace)
	on(s, call(stArrFirst, actPushList), catLSquare)
	on(s, call(stStr, actNone), catQuote)
	on(s, call(stNumMinus, actAddByte), catMinus)
	on(s, call(stNumZero, actAddByte), catZero)
	on(s, call(stNumInt, actAddByte), catDigit)
	on(s, call(stT1, actNone), catLowT)
	on(s, call(stF1, actNone), catLowF)
	on(s, call(stN1, actNone), catLowN)
}

// keyword adds the transitions that spell out a keyword from the given states,
// performing act when the last letter is consumed.
func keyword(act action, letters []category, states ...state) {
	for i, s := range states {
		if i == len(states)-1 {
			on(s, goTo(stDone, act), letters[i])
		} else {
			on(s, goTo(states[i+1], actNone), letters[i])
		}
	}
}

func initTransitions() {
	for s := range transitions {
		for c := range transitions[s] {
			transitions[s][c] = errTransition
		}
	}

	// Top level.
	values(stDoc)
	on(stDoc, goTo(stDoc, actNone), catEnd)
	gotos[stDoc] = stDoc

	for c := range numCategories {
		transitions[stDone][c] = ret(actNone)
	}

	// Arrays.
	values(stArrFirst)
	on(stArrFirst, goTo(stDone, actNone), catRSquare)
	gotos[stArrFirst] = stArrNext

	values(stArrElem)
	gotos[stArrElem] = stArrNext

	on(stArrNext, goTo(stArrNext, actNone), space...)
	on(stArrNext, goTo(stArrElem, actAppend), catComma)
	on(stArrNext, goTo(stDone, actAppend), catRSquare)

	// Objects.
	on(stObjFirst, goTo(stObjFirst, actNone), space...)
	on(stObjFirst, call(stStr, actNone), catQuote)
	on(stObjFirst, goTo(stDone, actNone), catRBrace)
	gotos[stObjFirst] = stObjColon

	on(stObjKey, goTo(stObjKey, actNone), space...)
	on(stObjKey, call(stStr, actNone), catQuote)
	gotos[stObjKey] = stObjColon

	on(stObjColon, goTo(stObjColon, actNone), space...)
	on(stObjColon, goTo(stObjValue, actNone), catColon)

	values(stObjValue)
	gotos[stObjValue] = stObjNext

	on(stObjNext, goTo(stObjNext, actNone), space...)
	on(stObjNext, goTo(stObjKey, actBind), catComma)
	on(stObjNext, goTo(stDone, actBind), catRBrace)

	// Strings. Escapes are entered as a nested construct that returns to stStr.
	onAll(stStr, goTo(stStr, actAddByte), catCtrl, catWhite)
	on(stStr, goTo(stDone, actPushString), catQuote)
	on(stStr, call(stEsc, actNone), catBacks)
	gotos[stStr] = stStr

	onAll(stEsc, goTo(stEscEnd, actEscape))
	on(stEsc, goTo(stEscEnd, actAddByte), catQuote, catBacks, catSlash)
	on(stEsc, goTo(stU1, actNone), catLowU)

	for c := range numCategories {
		transitions[stEscEnd][c] = ret(actNone)
		transitions[stUEnd][c] = ret(actUnicode)
	}
	on(stUEnd, errTransition, catEnd)

	onAll(stU1, goTo(stU2, actAddHex))
	onAll(stU2, goTo(stU3, actAddHex))
	onAll(stU3, goTo(stU4, actAddHex))
	onAll(stU4, goTo(stUEnd, actAddHex))

	// Numbers.
	on(stNumMinus, goTo(stNumZero, actAddByte), catZero)
	on(stNumMinus, goTo(stNumInt, actAddByte), catDigit)

	on(stNumZero, goTo(stNumPoint, actAddByte), catPoint)
	on(stNumZero, goTo(stNumExp, actAddByte), exponent...)
	on(stNumZero, ret(actPushNumber), numEnd...)

	on(stNumInt, goTo(stNumInt, actAddByte), digits...)
	on(stNumInt, goTo(stNumPoint, actAddByte), catPoint)
	on(stNumInt, goTo(stNumExp, actAddByte), exponent...)
	on(stNumInt, ret(actPushNumber), numEnd...)

	on(stNumPoint, goTo(stNumFrac, actAddByte), digits...)

	on(stNumFrac, goTo(stNumFrac, actAddByte), digits...)
	on(stNumFrac, goTo(stNumExp, actAddByte), exponent...)
	on(stNumFrac, ret(actPushNumber), numEnd...)

	on(stNumExp, goTo(stNumSign, actAddByte), catPlus, catMinus)
	on(stNumExp, goTo(stNumPow, actAddByte), digits...)

	on(stNumSign, goTo(stNumPow, actAddByte), digits...)

	on(stNumPow, goTo(stNumPow, actAddByte), digits...)
	on(stNumPow, ret(actPushNumber), numEnd...)

	// Keywords.
	keyword(actPushTrue, []category{catLowR, catLowU, catLowE}, stT1, stT2, stT3)
	keyword(actPushFalse, []category{catLowA, catLowL, catLowS, catLowE}, stF1, stF2, stF3, stF4)
	keyword(actPushNull, []category{catLowU, catLowL, catLowL}, stN1, stN2, stN3)
}
