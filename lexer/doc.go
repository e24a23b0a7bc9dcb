/*
Package lexer provides a token stream over source text and a lexer driven by
pluggable token recognizers.

A TokenStream is a read-only cursor over the input. Recognizers inspect the
stream with predicate-driven parse operations (ParseToken, ParseLiteral, …),
which never move the read position. Only when a recognizer decides to produce
a token, it hands it to a Consumer, which commits the stream to the end of the
token:

    defs := lexer.NewDefinitions("calc").SkipWhitespace(true)
    defs.Define(lexer.Symbol("+", Plus{}))
    defs.Define(func(c *lexer.Consumer) error {
        digits, ok := c.Stream().ParseToken(func(r rune) lexer.ParseState {
            if unicode.IsDigit(r) {
                return lexer.Continue
            }
            return lexer.StopBefore
        }, nil)
        if ok {
            n, _ := strconv.Atoi(digits.Text())
            c.Add(digits, node.New(n))
        }
        return nil
    })
    tokens, err := defs.Lex("1 + 2")

Recognizers are tried in order of definition; the first one committing a token
wins the current position. If none does, lexing fails with a *gexpr.LexError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.lexer")
}
