/*
Package textfilter implements boolean filter expressions for searching text.

A filter consists of atoms, which are single words or quoted strings, combined
with boolean operators and comparisons:

    apple pie                     both "apple" and "pie" must match
    apple OR cherry               either one
    -pie, !pie, NOT pie           "pie" must not match
    price < 5                     compare a key to a value
    name:pie                      key contains value
    (apple || cherry) && "pie crust"

Operators AND, OR and NOT are case-insensitive words, with alternative forms
&&, || and ! (or - as a prefix). Adjacent atoms and groups are joined by an
implicit AND. Comparisons bind tightest, AND binds tighter than OR.

Filters are evaluated against items supplied by the client, which decide what
matching a text and comparing a key means for them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textfilter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.textfilter'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.textfilter")
}
