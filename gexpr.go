package gexpr

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input text. Every token
// tracks which input positions it covers. A span denotes a start position
// and the position just behind the end, both as byte offsets.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns a span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Locations --------------------------------------------------------

// Location is a span together with the human readable position of its start.
// Line numbers are 1-based, columns are 0-based and count runes, not bytes.
type Location struct {
	Span   Span
	Line   int
	Column int
}

// Extend returns a location covering l and other. Line and column are
// taken from whichever location starts first.
func (l Location) Extend(other Location) Location {
	ext := l
	if other.Span.From() < l.Span.From() {
		ext = other
	}
	ext.Span = l.Span.Extend(other.Span)
	return ext
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
