package textfilter

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type record map[string]string

func (r record) MatchesText(text string) bool {
	for _, v := range r {
		if strings.Contains(strings.ToLower(v), strings.ToLower(text)) {
			return true
		}
	}
	return false
}

func (r record) Compare(key, value string, op Comparison) bool {
	v, ok := r[key]
	if !ok {
		return op == NotEqual
	}
	if op == Partial {
		return strings.Contains(strings.ToLower(v), strings.ToLower(value))
	}
	c := strings.Compare(strings.ToLower(v), strings.ToLower(value))
	if a, err := strconv.ParseFloat(v, 64); err == nil {
		if b, err := strconv.ParseFloat(value, 64); err == nil {
			switch {
			case a < b:
				c = -1
			case a > b:
				c = 1
			default:
				c = 0
			}
		}
	}
	switch op {
	case Equal:
		return c == 0
	case NotEqual:
		return c != 0
	case Less:
		return c < 0
	case LessOrEqual:
		return c <= 0
	case Greater:
		return c > 0
	case GreaterOrEqual:
		return c >= 0
	}
	return false
}

var menu = []Item{
	record{"name": "Apple pie", "price": "4.5", "kind": "dessert"},
	record{"name": "Cherry cake", "price": "12", "kind": "dessert"},
	record{"name": "Tomato soup", "price": "6", "kind": "starter"},
}

func names(items []Item) string {
	var n []string
	for _, item := range items {
		n = append(n, item.(record)["name"])
	}
	return strings.Join(n, ", ")
}

func TestFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfilter")
	defer teardown()
	//
	for _, x := range []struct {
		filter string
		result string
	}{
		{"apple", "Apple pie"},
		{"apple pie", "Apple pie"},
		{"apple OR cherry", "Apple pie, Cherry cake"},
		{"apple || soup", "Apple pie, Tomato soup"},
		{"dessert -apple", "Cherry cake"},
		{"dessert !apple", "Cherry cake"},
		{"NOT dessert", "Tomato soup"},
		{"not dessert", "Tomato soup"},
		{"price < 5", "Apple pie"},
		{"price>=6", "Cherry cake, Tomato soup"},
		{"kind = dessert AND price > 10", "Cherry cake"},
		{"kind=dessert price>10", "Cherry cake"},
		{"kind == dessert && price <= 4.5", "Apple pie"},
		{"name:cake OR name:soup", "Cherry cake, Tomato soup"},
		{"-kind=dessert", "Tomato soup"},
		{"kind != starter", "Apple pie, Cherry cake"},
		{`"tomato soup"`, "Tomato soup"},
		{`name = "cherry cake"`, "Cherry cake"},
		{"(apple OR cherry) cake", "Cherry cake"},
		{"apple OR cherry cake", "Apple pie, Cherry cake"},
		{"NOT (apple OR soup)", "Cherry cake"},
		{"NOT price > 5", "Apple pie"},
		{"", "Apple pie, Cherry cake, Tomato soup"},
	} {
		f, err := Compile(x.filter)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.filter, err)
			continue
		}
		selected, err := f.Select(menu)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.filter, err)
			continue
		}
		if names(selected) != x.result {
			t.Errorf("%q: expected [%s], got [%s]", x.filter, x.result, names(selected))
		}
	}
}

func TestImplicitAnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfilter")
	defer teardown()
	//
	f, err := Compile("a b OR -c")
	if err != nil {
		t.Fatal(err)
	}
	if f.Program().String() != "a b AND c -/1 OR" {
		t.Errorf("unexpected program %s", f.Program())
	}
	f, err = Compile("x (y) k=v")
	if err != nil {
		t.Fatal(err)
	}
	if f.Program().String() != "x y AND k v = AND" {
		t.Errorf("unexpected program %s", f.Program())
	}
}

func TestFilterErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfilter")
	defer teardown()
	//
	item := menu[0]
	for _, x := range []struct {
		filter string
		kind   error
	}{
		{"apple AND", gexpr.ErrMissingOperand},
		{"(apple", gexpr.ErrUnterminatedGroup},
		{"apple)", gexpr.ErrUnmatchedGroup},
		{"= apple", gexpr.ErrNoLeftOperand},
		{"AND apple", gexpr.ErrNoLeftOperand},
		{`"open`, gexpr.ErrUnrecognizedToken},
		{"apple & pie", gexpr.ErrUnrecognizedToken},
		{"a = (b OR c)", gexpr.ErrNoOperator},
	} {
		if _, err := Matches(x.filter, item); !errors.Is(err, x.kind) {
			t.Errorf("%q: expected error %q, got %v", x.filter, x.kind, err)
		}
	}
}

func TestNilItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfilter")
	defer teardown()
	//
	for _, filter := range []string{"apple", ""} {
		if _, err := Matches(filter, nil); !errors.Is(err, ErrNilItem) {
			t.Errorf("%q: expected nil item to be rejected, got %v", filter, err)
		}
	}
	f, err := Compile("cake")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = f.Select([]Item{menu[1], nil}); !errors.Is(err, ErrNilItem) {
		t.Errorf("expected Select to reject nil item, got %v", err)
	}
}
