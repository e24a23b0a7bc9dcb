/*
Package compiler translates token lists into postfix programs.

The compiler reads a list of tokens, as produced by a lexer, and re-orders it
according to the operator definitions of a grammar. The result is a flat
program in postfix order (also called reverse Polish notation), where every
operator follows its operands:

    2 + 3 * 4   ⇒   2 3 4 * +
    (2 + 3) * 4 ⇒   2 3 + 4 *

The algorithm is a variant of Dijkstra's shunting-yard algorithm. Each
nesting level of groupings is compiled by a recursive call, with a state
machine of two states: either an operand (possibly preceded by pre-unary
operators) is expected, or a post-unary or binary operator. Operators wait on
a stack until all operators binding tighter have been output.

Pre-unary operators bind tighter than any binary operator, so with the usual
definitions "-2^2" is "(-2)^2". Post-unary operators are output as soon as
they are read, and apply to the operand before them.

Configuration

Compilation may be restricted with options, which default to configuration
values:

    gexpr.max-group-depth         maximum nesting of groupings (0 = unlimited)
    gexpr.allow-adjacent-operands accept two operands without an operator in between

Without permission for adjacent operands, "1 2" is a syntax error. With
permission, it compiles to a program which will fail to evaluate to a single
result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.compiler")
}
