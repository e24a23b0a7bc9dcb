/*
Command gexpr is a command line front end for the expression languages of
this module.

    gexpr calc "2 * (3 + 4)^2"
    gexpr units "90min + 2h in h"
    gexpr format "{0}, {1}!" Hello World
    gexpr program "a = b += 2 * c"
    gexpr repl --init definitions.txt

Sub-command 'repl' starts an interactive calculator. Variables assigned in
one line are available in the following lines. Lines starting with a colon
are commands:

    :vars           list variables
    :reset          remove all variables
    :program expr   show the compiled form of an expression
    :quit           leave the REPL (as does <ctrl>D)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.cli'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.cli")
}
