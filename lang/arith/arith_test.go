package arith

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCalculator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.arith")
	defer teardown()
	//
	for _, x := range []struct {
		expr   string
		result float64
	}{
		{"2+3*4", 14},
		{"(1+2)*3*(4+1)", 45},
		{"((1+2)/(3+1)+2)*3", 8.25},
		{"2^3^2", 512},
		{"-2^2", 4},
		{"-(2^2)", -4},
		{"+7 % 4", 3},
		{"sqrt 16 + 9", 13},
		{"sqrt(16 + 9)", 5},
		{"1.5e2 / .5", 300},
		{"10 - 2 - 3", 5},
	} {
		r, err := Evaluate(x.expr)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.expr, err)
			continue
		}
		if r != x.result {
			t.Errorf("%q: expected %g, got %g", x.expr, x.result, r)
		}
	}
}

func TestCalculatorErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.arith")
	defer teardown()
	//
	_, err := Evaluate("8/0")
	var everr *gexpr.EvalError
	if !errors.As(err, &everr) || !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected 8/0 to be an EvalError 'division by zero', is %v", err)
	}
	if _, err = Evaluate("5 % 0"); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected 5%%0 to fail, got %v", err)
	}
	if _, err = Evaluate("sqrt -1"); !errors.Is(err, ErrNegativeRoot) {
		t.Errorf("expected sqrt -1 to fail, got %v", err)
	}
	r, err := Evaluate("gobbledegook")
	var lexerr *gexpr.LexError
	if !errors.As(err, &lexerr) {
		t.Errorf("expected 'gobbledegook' to be a LexError, got %v (result %g)", err, r)
	}
	if _, err = Evaluate("2 + * 3"); !errors.Is(err, gexpr.ErrNoLeftOperand) {
		t.Errorf("expected compile error, got %v", err)
	}
	if _, err = Evaluate("(2 + 3"); !errors.Is(err, gexpr.ErrUnterminatedGroup) {
		t.Errorf("expected unterminated group, got %v", err)
	}
}

func TestVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.arith")
	defer teardown()
	//
	env := NewEnv()
	for _, x := range []struct {
		expr   string
		result float64
	}{
		{"x = 3", 3},
		{"y = x = 4", 4},
		{"x * y", 16},
		{"x += 2 * y", 12},
		{"x", 12},
		{"x -= 2", 10},
		{"z = (y ^= 2) + 1", 17},
		{"y", 16},
		{"x %= 3", 1},
		{"2 * pi", 2 * math.Pi},
		{"-x", -1},
	} {
		r, err := EvaluateIn(x.expr, env)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.expr, err)
			continue
		}
		if r != x.result {
			t.Errorf("%q: expected %g, got %g", x.expr, x.result, r)
		}
	}
	vars := env.Variables()
	if len(vars) != 3 || vars["z"] != 17 {
		t.Errorf("expected variables x, y, z, have %v", vars)
	}
	if _, err := EvaluateIn("pi = 3", env); err == nil {
		t.Errorf("expected assignment to constant to fail")
	}
	if _, err := EvaluateIn("w + 1", env); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("expected undefined variable, got %v", err)
	}
	if _, err := EvaluateIn("3 += 1", env); !errors.Is(err, gexpr.ErrNoLeftOperand) {
		t.Errorf("expected compound assignment to a number to fail, got %v", err)
	}
	if _, err := EvaluateIn("x +=", env); !errors.Is(err, gexpr.ErrMissingOperand) {
		t.Errorf("expected compound assignment without operand to fail, got %v", err)
	}
	env.Reset()
	if _, ok := env.Get("x"); ok {
		t.Errorf("expected x to be removed by reset")
	}
	if e, ok := env.Get("e"); !ok || e != math.E {
		t.Errorf("expected constants to survive reset")
	}
}

func TestCompoundRewrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.arith")
	defer teardown()
	//
	prog, err := Compile("a *= (b += 1) - 2", true)
	if err != nil {
		t.Fatal(err)
	}
	// a = a * ((b = b + (1)) - 2)
	if prog.String() != "a a b b 1 + = 2 - * =" {
		t.Errorf("unexpected program %s", prog)
	}
}
