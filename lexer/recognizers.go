package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/node"
)

// This module provides recognizers for frequent kinds of tokens.

// Symbol creates a recognizer for a fixed symbol, e.g. "+" or "<=".
// The token will carry value v.
func Symbol[T any](sym string, v T) Recognizer {
	n := node.New(v)
	return func(c *Consumer) error {
		if tok, ok := c.Stream().ParseLiteral(sym, true, nil); ok {
			c.Add(tok, n)
		}
		return nil
	}
}

// Keyword creates a recognizer for a word, e.g. "AND". Different from Symbol, the
// word must not be followed by a letter, digit or underscore.
func Keyword[T any](word string, caseSensitive bool, v T) Recognizer {
	n := node.New(v)
	return func(c *Consumer) error {
		tok, ok := c.Stream().ParseLiteral(word, caseSensitive, nil)
		if !ok {
			return nil
		}
		if r, ok := c.Stream().Peek(len([]rune(tok.Text()))); ok && IsWordRune(r) {
			return nil
		}
		c.Add(tok, n)
		return nil
	}
}

// IsWordRune is true for letters, digits and underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Identifier creates a recognizer for identifiers (a letter or underscore, followed
// by letters, digits or underscores). mk is called with the identifier's text.
func Identifier[T any](mk func(string) T) Recognizer {
	return func(c *Consumer) error {
		first := true
		tok, ok := c.Stream().ParseToken(func(r rune) ParseState {
			if first {
				first = false
				if r == '_' || unicode.IsLetter(r) {
					return Continue
				}
				return Cancel
			}
			if IsWordRune(r) {
				return Continue
			}
			return StopBefore
		}, nil)
		if ok {
			c.Add(tok, node.New(mk(tok.Text())))
		}
		return nil
	}
}

// --- Numbers ---------------------------------------------------------------

// ParseNumber parses an unsigned decimal number with optional fraction and
// exponent, e.g. "3", "3.14", ".5" or "1e-3". Signs are left to unary operators.
func ParseNumber(ts *TokenStream, accumulate *StringToken) (StringToken, float64, bool) {
	n := scanNumber(ts.remainderAfter(accumulate))
	if n == 0 {
		return StringToken{}, 0, false
	}
	tok, ok := ts.ParseLength(n, accumulate)
	if !ok {
		return StringToken{}, 0, false
	}
	f, err := strconv.ParseFloat(tok.Text(), 64)
	if err != nil {
		tracer().Errorf("cannot convert number %q: %v", tok.Text(), err)
		return StringToken{}, 0, false
	}
	return tok, f, true
}

// scanNumber returns the length in bytes of the number at the start of s.
// An exponent marker not followed by digits is not part of the number (as in "3em").
func scanNumber(s string) int {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Number creates a recognizer for numbers (see ParseNumber). The token will carry a
// float64 value.
func Number() Recognizer {
	return func(c *Consumer) error {
		if tok, f, ok := ParseNumber(c.Stream(), nil); ok {
			c.Add(tok, node.New(f))
		}
		return nil
	}
}

// --- Quoted strings ------------------------------------------------------------

// ParseQuoted parses a string enclosed in quote runes. Within the string, escape
// makes the following rune literal. It returns the token and the unescaped content.
// If the closing quote is missing, ParseQuoted returns a *gexpr.LexError.
func ParseQuoted(ts *TokenStream, quote rune, escape rune) (StringToken, string, bool, error) {
	if r, ok := ts.Peek(0); !ok || r != quote {
		return StringToken{}, "", false, nil
	}
	var b strings.Builder
	start, escaped, closed := true, false, false
	tok, _ := ts.ParseToken(func(r rune) ParseState {
		switch {
		case start:
			start = false
			return Continue
		case escaped:
			escaped = false
			b.WriteRune(r)
			return Continue
		case r == escape:
			escaped = true
			return Continue
		case r == quote:
			closed = true
			return StopAfter
		}
		b.WriteRune(r)
		return Continue
	}, nil)
	if !closed {
		return StringToken{}, "", false, gexpr.NewLexError(gexpr.ErrUnrecognizedToken, ts.Location(),
			ts.ErrorContext(), "unterminated string, missing %q", quote)
	}
	return tok, b.String(), true, nil
}

// Quoted creates a recognizer for quoted strings. mk is called with the unescaped
// content of the string.
func Quoted[T any](quote rune, escape rune, mk func(string) T) Recognizer {
	return func(c *Consumer) error {
		tok, s, ok, err := ParseQuoted(c.Stream(), quote, escape)
		if err != nil {
			return err
		}
		if ok {
			c.Add(tok, node.New(mk(s)))
		}
		return nil
	}
}
