/*
Package path resolves dotted paths into Go values.

A path like

    customer.orders.2.items."gift card"

starts at a root value, given by the client, and descends into it one
segment at a time. Segments select struct fields, map entries and slice or
array elements:

    - a word selects a struct field, either by its name or by its name with
      the first letter in lower case, or an entry of a map with string keys
    - a number selects an element of a slice or array, or an entry of a map
      with integer keys
    - a quoted string selects a map entry with a key which is not a word

Pointers and interfaces are followed transparently. Unexported struct fields
cannot be selected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package path

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.path'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.path")
}
