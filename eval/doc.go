/*
Package eval executes compiled expression programs.

Evaluation walks a postfix program from left to right, pushing operands onto a
stack. An operator pops its operands and pushes the result of an operator
function. Operator functions are found in a jump table, keyed by the type ids
of the operator and of its operands:

    jt := eval.NewJumpTable("calc")
    eval.Binary[Plus](jt, func(a, b float64) (float64, error) {
        return a + b, nil
    })
    eval.Binary[Plus](jt, func(a, b string) (string, error) {
        return a + b, nil
    })

Lookup is exact: a '+' for (float64, string) is not found in the table above,
and evaluation fails with an error of kind gexpr.ErrNoOperator. Operators may
therefore be overloaded for any combination of operand types, but conversions
between operand types are the business of the operator functions.

Operator functions may receive an evaluation context. The context is provided
by the caller of Evaluate and handed through to every operator function
untouched. If operator functions modify a context shared between concurrent
evaluations, synchronization is up to the client.

A jump table must not be changed after evaluation with it has begun. It may
then be used by concurrent evaluations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.eval'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.eval")
}
