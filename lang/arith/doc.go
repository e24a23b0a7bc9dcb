/*
Package arith implements a calculator language.

Expressions consist of numbers, the binary operators

    ^            power (right-associative, binds tightest)
    *  /  %      multiplication, division, modulo
    +  -         addition, subtraction
    =            assignment (right-associative, binds loosest)

the prefix operators '+', '-' and 'sqrt', and parentheses. Prefix operators
bind tighter than any binary operator, thus "-2^2" is 4.

The calculator comes in two variants. Evaluate knows numbers only; any word
in the input is an error. EvaluateIn accepts variables, which are held in an
environment Env. Environments know the constants 'pi', 'e' and 'phi'.
Compound assignments

    x += 2 * y

are rewritten to

    x = x + (2 * y)

before compilation. The operators -=, *=, /=, %= and ^= work alike.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arith

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.arith'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.arith")
}
