package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gexpr"
)

// ParseState is returned by predicates to steer ParseToken.
type ParseState int8

const (
	Continue   ParseState = iota // consume the rune and continue
	StopBefore                   // stop, do not consume the rune
	StopAfter                    // consume the rune, then stop
	Cancel                       // abandon the token altogether
)

// Predicate is called for every rune by ParseToken.
type Predicate func(r rune) ParseState

// ErrorContextLength is the number of runes ErrorContext reports.
const ErrorContextLength = 32

// --- String tokens ---------------------------------------------------------

// StringToken is a run of input text, produced by the parse operations of a
// token stream. A string token is a view into the stream's input; it does not
// copy text.
type StringToken struct {
	input       string
	start, end  int // byte offsets
	line, col   int // position of start
	eline, ecol int // position of end
}

// Text returns the input covered by the token.
func (st StringToken) Text() string {
	return st.input[st.start:st.end]
}

// Len returns the length of the token in bytes.
func (st StringToken) Len() int {
	return st.end - st.start
}

// Span returns the input positions covered by the token.
func (st StringToken) Span() gexpr.Span {
	return gexpr.Span{uint64(st.start), uint64(st.end)}
}

// Location returns span, line and column of the token.
func (st StringToken) Location() gexpr.Location {
	return gexpr.Location{Span: st.Span(), Line: st.line, Column: st.col}
}

func (st *StringToken) accumulate(other StringToken) {
	st.end = other.end
	st.eline, st.ecol = other.eline, other.ecol
}

// --- Token stream ----------------------------------------------------------

// TokenStream is a forward-only cursor over source text. It borrows the text
// and owns nothing.
type TokenStream struct {
	input     string
	pos       int // read position, byte offset
	line, col int // human readable read position
}

// NewTokenStream creates a token stream positioned at the start of input.
func NewTokenStream(input string) *TokenStream {
	return &TokenStream{
		input: input,
		line:  1,
	}
}

// IsEmpty is a predicate: has all input been consumed?
func (ts *TokenStream) IsEmpty() bool {
	return ts.pos >= len(ts.input)
}

// Position returns the read position as a byte offset.
func (ts *TokenStream) Position() int {
	return ts.pos
}

// Location returns the read position as a zero-length location.
func (ts *TokenStream) Location() gexpr.Location {
	return gexpr.Location{
		Span:   gexpr.Span{uint64(ts.pos), uint64(ts.pos)},
		Line:   ts.line,
		Column: ts.col,
	}
}

// Remainder returns the not yet consumed input.
func (ts *TokenStream) Remainder() string {
	return ts.input[ts.pos:]
}

// ErrorContext returns a short snippet of input at the read position, for use
// in error messages.
func (ts *TokenStream) ErrorContext() string {
	rest := ts.Remainder()
	n := 0
	for i := range rest {
		if n == ErrorContextLength {
			return rest[:i] + "…"
		}
		n++
	}
	return rest
}

// Peek returns the rune offset runes ahead of the read position.
// Peek(0) is the next rune to read. If the offset is beyond the end of input,
// Peek returns false.
func (ts *TokenStream) Peek(offset int) (rune, bool) {
	rest := ts.Remainder()
	for offset >= 0 && len(rest) > 0 {
		r, sz := utf8.DecodeRuneInString(rest)
		if offset == 0 {
			return r, true
		}
		rest = rest[sz:]
		offset--
	}
	return utf8.RuneError, false
}

// ParseToken consumes runes for as long as pred accepts them and returns the
// resulting token. The read position is not changed; use Commit to advance it.
//
// If accumulate is non-nil, parsing starts at the end of accumulate instead of
// the read position, and on success accumulate is extended by the new token.
// The returned token covers the newly parsed part only.
//
// ParseToken returns false if pred cancels or if no rune has been accepted.
func (ts *TokenStream) ParseToken(pred Predicate, accumulate *StringToken) (StringToken, bool) {
	tok := ts.startToken(accumulate)
	for tok.end < len(ts.input) {
		r, sz := utf8.DecodeRuneInString(ts.input[tok.end:])
		state := pred(r)
		if state == Cancel {
			return StringToken{}, false
		}
		if state == StopBefore {
			break
		}
		tok.advance(r, sz)
		if state == StopAfter {
			break
		}
	}
	return ts.finishToken(tok, accumulate)
}

// ParseSymbol consumes a single rune.
func (ts *TokenStream) ParseSymbol(accumulate *StringToken) (StringToken, bool) {
	return ts.ParseToken(func(rune) ParseState {
		return StopAfter
	}, accumulate)
}

// ParseWhitespace consumes a run of white space.
func (ts *TokenStream) ParseWhitespace() (StringToken, bool) {
	return ts.ParseToken(func(r rune) ParseState {
		if unicode.IsSpace(r) {
			return Continue
		}
		return StopBefore
	}, nil)
}

// ParseLiteral consumes a literal text. If caseSensitive is false, runes are
// compared with simple Unicode case folding. Returns false if the input does
// not start with the literal.
func (ts *TokenStream) ParseLiteral(lit string, caseSensitive bool, accumulate *StringToken) (StringToken, bool) {
	if lit == "" {
		return StringToken{}, false
	}
	rest := lit
	var acc *StringToken // accumulate only if the literal matches completely
	if accumulate != nil {
		cp := *accumulate
		acc = &cp
	}
	tok, ok := ts.ParseToken(func(r rune) ParseState {
		l, sz := utf8.DecodeRuneInString(rest)
		if r != l && (caseSensitive || !equalFold(r, l)) {
			return Cancel
		}
		rest = rest[sz:]
		if rest == "" {
			return StopAfter
		}
		return Continue
	}, acc)
	if !ok || rest != "" { // input ended before the literal did
		return StringToken{}, false
	}
	if accumulate != nil {
		*accumulate = *acc
	}
	return tok, true
}

// ParseLength consumes n bytes of input. n must fall on a rune boundary.
// Returns false if fewer than n bytes are left.
func (ts *TokenStream) ParseLength(n int, accumulate *StringToken) (StringToken, bool) {
	if n <= 0 || n > len(ts.remainderAfter(accumulate)) {
		return StringToken{}, false
	}
	count := 0
	return ts.ParseToken(func(r rune) ParseState {
		count += utf8.RuneLen(r)
		if count >= n {
			return StopAfter
		}
		return Continue
	}, accumulate)
}

// remainderAfter returns the input following accumulate, or following the read
// position if accumulate is nil.
func (ts *TokenStream) remainderAfter(accumulate *StringToken) string {
	if accumulate != nil {
		return ts.input[accumulate.end:]
	}
	return ts.Remainder()
}

// Commit advances the read position to the end of tok. The read position
// never moves backwards; tokens ending before it are ignored.
func (ts *TokenStream) Commit(tok StringToken) {
	if tok.end < ts.pos {
		tracer().Errorf("attempt to move token stream backwards from %d to %d", ts.pos, tok.end)
		return
	}
	ts.pos = tok.end
	ts.line, ts.col = tok.eline, tok.ecol
}

func (ts *TokenStream) startToken(accumulate *StringToken) StringToken {
	if accumulate != nil {
		return StringToken{
			input: ts.input,
			start: accumulate.end, end: accumulate.end,
			line: accumulate.eline, col: accumulate.ecol,
			eline: accumulate.eline, ecol: accumulate.ecol,
		}
	}
	return StringToken{
		input: ts.input,
		start: ts.pos, end: ts.pos,
		line: ts.line, col: ts.col,
		eline: ts.line, ecol: ts.col,
	}
}

func (ts *TokenStream) finishToken(tok StringToken, accumulate *StringToken) (StringToken, bool) {
	if tok.Len() == 0 {
		return StringToken{}, false
	}
	if accumulate != nil {
		accumulate.accumulate(tok)
	}
	return tok, true
}

func (st *StringToken) advance(r rune, sz int) {
	st.end += sz
	if r == '\n' {
		st.eline++
		st.ecol = 0
	} else {
		st.ecol++
	}
}

func equalFold(a, b rune) bool {
	return strings.EqualFold(string(a), string(b))
}
