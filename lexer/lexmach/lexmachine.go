package lexmach

import (
	"strings"

	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'gexpr.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.lexer")
}

// LMAdapter is a lexmachine adapter to use lexmachine DFAs as token recognizers.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if init != nil { // added last, so keywords win over general patterns of equal length
		init(adapter.Lexer)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Converter turns a lexmachine match into an expression node. id is the token id
// given to MakeToken. Returning the empty node declines the match.
type Converter func(id int, lexeme string) (node.Node, error)

// Recognizer creates a token recognizer for the adapter's DFA.
func (lm *LMAdapter) Recognizer(convert Converter) lexer.Recognizer {
	return func(c *lexer.Consumer) error {
		stream := c.Stream()
		scanner, err := lm.Lexer.Scanner([]byte(stream.Remainder()))
		if err != nil {
			return err
		}
		tok, err, eof := scanner.Next()
		if eof {
			return nil
		}
		if err != nil {
			if _, is := err.(*machines.UnconsumedInput); !is {
				tracer().Errorf("scanner error: %v", err)
			}
			return nil // no pattern matches at read position
		}
		token, ok := tok.(*lexmachine.Token)
		if !ok || token.TC != 0 || len(token.Lexeme) == 0 {
			return nil
		}
		tracer().Debugf("DFA match %d | %q", token.Type, token.Lexeme)
		n, err := convert(token.Type, string(token.Lexeme))
		if err != nil || n.IsEmpty() {
			return err
		}
		if st, ok := stream.ParseLength(len(token.Lexeme), nil); ok {
			c.Add(st, n)
		}
		return nil
	}
}

// ---------------------------------------------------------------------------

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
