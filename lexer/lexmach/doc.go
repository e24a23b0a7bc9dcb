/*
Package lexmach provides an adapter to use the lexmachine scanner generator as
a token recognizer for package lexer.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.
Package lexmach is very opinionated on how to do the setup of lexmachine.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match
		// into a lexmachine token
	}

Having that, clients use `NewLMAdapter` to compile the DFA.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		// do error handling
	}

The adapter then creates recognizers, which may be mixed freely with other
recognizers of a lexer.Definitions list. The DFA is always run on the input at
the read position; the longest match wins. A conversion function turns the match
into an expression node. Returning the empty node declines the match.

	defs.Define(LM.Recognizer(func(id int, lexeme string) (node.Node, error) {
		…
	}))

Patterns must not skip input: a recognizer only accepts matches starting at the
read position.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
