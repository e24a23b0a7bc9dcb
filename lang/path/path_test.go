package path

import (
	"errors"
	"testing"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type item struct {
	Name  string
	Price float64
}

type order struct {
	ID    int
	Items []item
	Notes map[string]string
}

type customer struct {
	Name    string
	Orders  []*order
	Tags    map[int]string
	Extra   interface{}
	secret  string
	Address *struct{ City string }
}

func sample() *customer {
	return &customer{
		Name: "Jo",
		Orders: []*order{
			{ID: 1, Items: []item{{"tea", 3.5}}},
			{ID: 2, Items: []item{{"cake", 2}, {"gift card", 20}},
				Notes: map[string]string{"gift wrap": "yes", "7": "seven"}},
		},
		Tags:   map[int]string{42: "vip"},
		Extra:  map[string]interface{}{"level": []int{1, 2, 3}},
		secret: "psst",
	}
}

func TestResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.path")
	defer teardown()
	//
	c := sample()
	for _, x := range []struct {
		path   string
		result interface{}
	}{
		{"name", "Jo"},
		{"Name", "Jo"},
		{"orders.1.id", 2},
		{"orders.1.items.1.name", "gift card"},
		{"orders.0.items.0.price", 3.5},
		{`orders.1.notes."gift wrap"`, "yes"},
		{"orders.1.notes.7", "seven"},
		{"tags.42", "vip"},
		{"extra.level.2", 3},
		{"orders . 1 . ID", 2},
	} {
		r, err := Resolve(x.path, c)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.path, err)
			continue
		}
		if r != x.result {
			t.Errorf("%q: expected %v, got %v", x.path, x.result, r)
		}
	}
	r, err := Resolve("", c)
	if err != nil || r != c {
		t.Errorf("expected empty path to resolve to root, got %v (%v)", r, err)
	}
	r, err = Resolve("1", []string{"a", "b"})
	if err != nil || r != "b" {
		t.Errorf("expected path '1' to select element of root slice, got %v (%v)", r, err)
	}
}

func TestResolveErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.path")
	defer teardown()
	//
	c := sample()
	for _, x := range []struct {
		path string
		kind error
	}{
		{"nickname", ErrNotFound},
		{"orders.5", ErrOutOfRange},
		{"orders.0.notes.x", ErrNotFound},
		{"orders.0.id.x", ErrNotSelectable},
		{"secret", ErrUnexported},
		{"address.city", ErrNil},
		{"tags.vip", ErrNotFound},
	} {
		_, err := Resolve(x.path, c)
		var everr *gexpr.EvalError
		if !errors.As(err, &everr) || !errors.Is(err, x.kind) {
			t.Errorf("%q: expected evaluation error %q, got %v", x.path, x.kind, err)
		}
	}
	if _, err := Resolve("orders..1", c); !errors.Is(err, gexpr.ErrNoLeftOperand) {
		t.Errorf("expected syntax error for empty segment, got %v", err)
	}
	if _, err := Resolve("orders.1-x", c); !errors.Is(err, gexpr.ErrUnrecognizedToken) {
		t.Errorf("expected lex error for '-', got %v", err)
	}
}

func TestCompiledPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.path")
	defer teardown()
	//
	p, err := Compile("orders.0.id")
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range []*customer{sample(), {Orders: []*order{{ID: 99}}}} {
		r, err := p.Resolve(c)
		if err != nil {
			t.Fatal(err)
		}
		if expected := []int{1, 99}[i]; r != expected {
			t.Errorf("expected order id %d, got %v", expected, r)
		}
	}
}

func TestFieldNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.path")
	defer teardown()
	//
	type request struct {
		ID       int
		HTTPCode int
		UserName string
	}
	rq := request{ID: 7, HTTPCode: 404, UserName: "jo"}
	for _, x := range []struct {
		path   string
		result interface{}
	}{
		{"ID", 7},
		{"id", 7},
		{"Id", 7},
		{"httpcode", 404},
		{"httpCode", 404},
		{"userName", "jo"},
		{"USERNAME", "jo"},
	} {
		r, err := Resolve(x.path, rq)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.path, err)
			continue
		}
		if r != x.result {
			t.Errorf("%q: expected %v, got %v", x.path, x.result, r)
		}
	}
	if _, err := Resolve("user_name", rq); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected 'user_name' not to be found, got %v", err)
	}
}
