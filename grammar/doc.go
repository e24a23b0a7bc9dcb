/*
Package grammar declares the syntax of an expression language.

Expression grammars are not given as production rules, but as a set of roles
for node types:

■ Groupings: an opening type and the matching closing type, e.g. '(' and ')'.

■ Pre-unary operators, e.g. a negation '-x'.

■ Post-unary operators, e.g. a factorial 'x!'.

■ Binary operators with a precedence level and an associativity.

Lower precedence levels bind tighter. All binary operators sharing a level
must share the associativity, too.

Example:

    g := grammar.New("calc")
    grammar.Grouping[LParen, RParen](g)
    grammar.PreUnary[Minus](g)
    grammar.Binary[Star](g, 4, grammar.LeftToRight)
    grammar.Binary[Minus](g, 5, grammar.LeftToRight) // Minus is pre-unary and binary
    grammar.Binary[Power](g, 2, grammar.RightToLeft)

A grammar is built once and must not be changed after it has been handed to
the compiler. Afterwards it may be shared between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.grammar")
}
