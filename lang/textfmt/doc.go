/*
Package textfmt formats text templates with placeholders.

A template is a mix of literal text and placeholders in braces. Placeholders
either name an argument ("{user}") or refer to a positional argument by index
("{0}"). A backtick makes the following character literal, so "`{" is an
opening brace which does not start a placeholder.

    textfmt.Format("{0}, {1}!", "Hello", "World")                     ⇒ "Hello, World!"
    textfmt.FormatNamed("Dear {name}", map[string]interface{}{"name": "Jo"}) ⇒ "Dear Jo"

Templates are compiled into a program of literals and placeholders, joined by
an implicit concatenation operator. Placeholders are wrapped by a
substitution operator, which replaces them by the textual representation of
an argument.

Templates come in two flavours: lenient templates let missing arguments and
malformed placeholders pass through literally, strict templates report them
as errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textfmt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.textfmt'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.textfmt")
}
