/*
Package node implements type-erased values for expressions.

Tokens, operators and intermediate results of an expression are all held
in a Node. A Node carries a value of an arbitrary Go type together with a
type identifier (TypeID). Type identifiers are handed out by a process-wide
registry, one per Go type, and are stable for the lifetime of the process.
Checking the type of a node is therefore a single integer comparison,
done before any downcast:

    type Plus struct{}                      // an operator type of a client language
    node.Register[Plus]("+")                // optional: give it a readable name

    n := node.New(3.1416)                   // n wraps a float64
    if f, ok := node.As[float64](n); ok {   // safe downcast
        …
    }
    n.TypeID() == node.TypeOf[float64]()    // true

Clients add new node types simply by using them; the engine is not aware of
any concrete type. Registration should happen before lexing starts, usually
during the one-time setup of a language (see the packages in gexpr/lang).
Registering lazily from TypeOf is supported, but the readable name will
then be the Go type name.

Nodes have value semantics. Values are boxed on creation and never
changed by the engine. Values which contain references (pointers, slices,
maps) should implement Cloner if copies of a node must not share state.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package node

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.node'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.node")
}
