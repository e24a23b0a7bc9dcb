/*
Package units implements a language for numbers with units.

A quantity is a number immediately followed by a unit symbol, e.g. "3.5km" or
"250g". Quantities and plain numbers may be combined with the usual
operators, as long as this makes sense physically:

    5km + 300m       = 5.3 km   (result is in the unit of the left operand)
    2 * 3h           = 6 h
    90min / 2        = 45 min
    5km in mi        = 3.10686 mi
    5km + 3kg        ⇒ error: dimension mismatch
    2m * 3m          ⇒ error: quantities cannot be multiplied

Units are defined by a table, which maps unit symbols to a dimension and a
factor to the base unit of the dimension. A default table is built in; other
tables may be loaded from TOML files of the form

    [[unit]]
    symbol    = "km"
    name      = "kilometre"
    dimension = "distance"
    factor    = 1000.0

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package units

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.units'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.units")
}
