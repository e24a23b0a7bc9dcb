package units

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefaultTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.units")
	defer teardown()
	//
	table := DefaultTable()
	km, err := table.Lookup("km")
	if err != nil || km.Dimension != "distance" || km.Factor != 1000 {
		t.Errorf("expected km to be 1000 m, is %v (%v)", km, err)
	}
	if _, err = table.Lookup("parsec"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected parsec to be unknown, got %v", err)
	}
	units := table.Units()
	if len(units) == 0 || units[0].Dimension != "distance" || units[0].Symbol != "mm" {
		t.Errorf("expected units to be sorted by dimension and factor, first is %v", units[0])
	}
	if table.symbols[0] != "inch" {
		t.Errorf("expected longest symbol first, have %v", table.symbols)
	}
}

func TestParseTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.units")
	defer teardown()
	//
	table, err := ParseTable(strings.NewReader(`
[[unit]]
symbol = "px"
name = "pixel"
dimension = "screen"
factor = 1.0

[[unit]]
symbol = "pt"
name = "point"
dimension = "screen"
factor = 1.333
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Units()) != 2 {
		t.Errorf("expected 2 units, have %d", len(table.Units()))
	}
	for _, bad := range []string{
		`[[unit]]
symbol = "px"
dimension = "screen"
factor = 0.0`,
		`[[unit]]
symbol = "3d"
dimension = "screen"
factor = 1.0`,
		`[[unit]]
symbol = "px"
dimension = "screen"
factor = 1.0
colour = "red"`,
		`[[unit]]
symbol = "in"
dimension = "distance"
factor = 0.0254`,
		`[[unit]
symbol = "px"`,
	} {
		if _, err := ParseTable(strings.NewReader(bad)); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("expected table to be rejected: %q, got %v", bad, err)
		}
	}
}

func TestQuantities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.units")
	defer teardown()
	//
	for _, x := range []struct {
		expr  string
		value float64
		unit  string
	}{
		{"5km + 300m", 5.3, "km"},
		{"300m + 5km", 5300, "m"},
		{"2 * 3h", 6, "h"},
		{"90min / 2", 45, "min"},
		{"90min in h", 1.5, "h"},
		{"5km in mi", 3.106856, "mi"},
		{"1lb in g", 453.59237, "g"},
		{"(1h + 30min) in min", 90, "min"},
		{"-2ms", -2, "ms"},
		{"1.5e3g in kg", 1.5, "kg"},
		{"3 in l", 3, "l"},
		{"2 + 3 * 4", 14, ""},
		{"12inch in ft", 1, "ft"},
	} {
		q, err := Evaluate(x.expr)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.expr, err)
			continue
		}
		if math.Abs(q.Value-x.value) > 1e-6 || q.Unit.Symbol != x.unit {
			t.Errorf("%q: expected %g %s, got %s", x.expr, x.value, x.unit, q)
		}
	}
}

func TestDimensionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.units")
	defer teardown()
	//
	for _, x := range []struct {
		expr string
		kind error
	}{
		{"5km + 3kg", ErrDimensionMismatch},
		{"5km - 3", ErrDimensionMismatch},
		{"1h in m", ErrDimensionMismatch},
		{"2m * 3m", ErrCompoundUnit},
		{"2 / 3s", ErrCompoundUnit},
		{"2m / 0", ErrDivisionByZero},
	} {
		_, err := Evaluate(x.expr)
		var everr *gexpr.EvalError
		if !errors.As(err, &everr) || !errors.Is(err, x.kind) {
			t.Errorf("%q: expected evaluation error %q, got %v", x.expr, x.kind, err)
		}
	}
	// "5km + 3kg": the error is located at the operator
	_, err := Evaluate("5km + 3kg")
	var everr *gexpr.EvalError
	if errors.As(err, &everr) && everr.At.Span.From() != 4 {
		t.Errorf("expected error at offset 4, got %s", everr.At)
	}
}

func TestUnitLexing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.units")
	defer teardown()
	//
	var lexerr *gexpr.LexError
	if _, err := Evaluate("5 parsec"); !errors.As(err, &lexerr) {
		t.Errorf("expected unknown unit to be a lex error, got %v", err)
	}
	if _, err := Evaluate("5kmh"); !errors.As(err, &lexerr) {
		t.Errorf("expected attached unknown unit to be a lex error, got %v", err)
	}
	if _, err := Evaluate("5 km"); !errors.Is(err, gexpr.ErrMissingOperator) {
		t.Errorf("expected detached unit to be a syntax error, got %v", err)
	}
	q, err := Evaluate("3min")
	if err != nil || q.Unit.Symbol != "min" {
		t.Errorf("expected 3min to be minutes, not %s (%v)", q, err)
	}
	q, err = Evaluate("3mi")
	if err != nil || q.Unit.Symbol != "mi" {
		t.Errorf("expected 3mi to be miles, not %s (%v)", q, err)
	}
}
