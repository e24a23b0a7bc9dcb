package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/node"
)

// Token is a lexed unit: a typed value together with its position in the input.
type Token struct {
	Node   node.Node      // the token's value
	Loc    gexpr.Location // the token's position
	Lexeme string         // input text the token has been created from
}

// MakeToken creates a token from a string token and a node.
func MakeToken(st StringToken, n node.Node) Token {
	return Token{
		Node:   n,
		Loc:    st.Location(),
		Lexeme: st.Text(),
	}
}

// TypeID is a shortcut for t.Node.TypeID().
func (t Token) TypeID() node.TypeID {
	return t.Node.TypeID()
}

// Span is a shortcut for t.Loc.Span.
func (t Token) Span() gexpr.Span {
	return t.Loc.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Node, t.Loc)
}

// --- Consumer --------------------------------------------------------------

// Consumer collects the tokens produced by recognizers.
type Consumer struct {
	stream *TokenStream
	tokens []Token
}

// NewConsumer creates a consumer for a token stream.
func NewConsumer(stream *TokenStream) *Consumer {
	return &Consumer{stream: stream}
}

// Stream returns the token stream recognizers read from.
func (c *Consumer) Stream() *TokenStream {
	return c.stream
}

// Add appends a token and moves the stream's read position behind it.
func (c *Consumer) Add(st StringToken, n node.Node) {
	c.tokens = append(c.tokens, MakeToken(st, n))
	c.stream.Commit(st)
	tracer().Debugf("token %s = %q", c.tokens[len(c.tokens)-1], st.Text())
}

// Tokens returns the tokens collected so far.
func (c *Consumer) Tokens() []Token {
	return c.tokens
}

// --- Definitions -----------------------------------------------------------

// Recognizer is a function which tries to recognize a token at the read position
// of the consumer's stream. If it does, it adds the token to the consumer.
// Recognizers return an error only if lexing must stop altogether; a recognizer
// which does not match simply returns nil without adding a token.
type Recognizer func(c *Consumer) error

// Definitions is an ordered list of recognizers.
type Definitions struct {
	name        string
	recognizers []Recognizer
	skipWS      bool
}

// NewDefinitions creates an empty list of token definitions.
func NewDefinitions(name string) *Definitions {
	return &Definitions{name: name}
}

// Name returns the name the definitions have been created with.
func (d *Definitions) Name() string {
	return d.name
}

// SkipWhitespace sets or clears skipping of white space between tokens.
// Returns d for chaining.
func (d *Definitions) SkipWhitespace(b bool) *Definitions {
	d.skipWS = b
	return d
}

// Define appends recognizers. Returns d for chaining.
func (d *Definitions) Define(recognizers ...Recognizer) *Definitions {
	for _, r := range recognizers {
		if r == nil {
			panic("lexer: nil recognizer")
		}
		d.recognizers = append(d.recognizers, r)
	}
	return d
}

// ConsumeToken tries all recognizers at the read position, in order.
// If none of them commits a token, ConsumeToken returns a *gexpr.LexError.
func (d *Definitions) ConsumeToken(c *Consumer) error {
	pos := c.stream.Position()
	for _, recognize := range d.recognizers {
		if err := recognize(c); err != nil {
			return err
		}
		if c.stream.Position() != pos {
			return nil
		}
	}
	tracer().Errorf("no token recognized at %s", c.stream.Location())
	return gexpr.NewLexError(gexpr.ErrUnrecognizedToken, c.stream.Location(), c.stream.ErrorContext(),
		"unrecognized token")
}

// Lex splits input into tokens.
func (d *Definitions) Lex(input string) ([]Token, error) {
	stream := NewTokenStream(input)
	consumer := NewConsumer(stream)
	for !stream.IsEmpty() {
		if d.skipWS {
			if ws, ok := stream.ParseWhitespace(); ok {
				stream.Commit(ws)
			}
			if stream.IsEmpty() {
				break
			}
		}
		if err := d.ConsumeToken(consumer); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("%s: lexed %d tokens from %q", d.name, len(consumer.tokens), abbrev(input))
	return consumer.Tokens(), nil
}

// Lex splits input into tokens, using a list of token definitions.
func Lex(input string, defs *Definitions) ([]Token, error) {
	return defs.Lex(input)
}

func abbrev(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	n := limit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n]) + "…"
}
