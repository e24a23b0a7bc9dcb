package node

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type plus struct{}

type vector []float64

func (v vector) Clone() interface{} {
	c := make(vector, len(v))
	copy(c, v)
	return c
}

func TestTypeIDsAreStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.node")
	defer teardown()
	//
	id1 := TypeOf[float64]()
	id2 := TypeOf[float64]()
	if id1 != id2 {
		t.Errorf("expected type ids for float64 to be identical, are %d and %d", id1, id2)
	}
	if id1 == TypeOf[int]() {
		t.Errorf("expected float64 and int to have different type ids")
	}
	if New(1.0).TypeID() != id1 {
		t.Errorf("expected node of float64 to carry type id %d", id1)
	}
}

func TestRegisterName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.node")
	defer teardown()
	//
	id := Register[plus]("+")
	if id != TypeOf[plus]() {
		t.Errorf("registering twice should not change the type id")
	}
	if id.String() != "+" {
		t.Errorf("expected type name to be '+', is %q", id.String())
	}
	if found, ok := Lookup("+"); !ok || found != id {
		t.Errorf("expected to find type '+' by name")
	}
	if s := New(plus{}).String(); s != "+" {
		t.Errorf("expected operator node to print as '+', is %q", s)
	}
}

func TestDowncast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.node")
	defer teardown()
	//
	n := New("hello")
	if s, ok := As[string](n); !ok || s != "hello" {
		t.Errorf("expected downcast to string to succeed")
	}
	if _, ok := As[int](n); ok {
		t.Errorf("expected downcast of string node to int to fail")
	}
	if !Is[string](n) || Is[float64](n) {
		t.Errorf("type predicate Is is broken")
	}
	if _, ok := As[string](Empty); ok {
		t.Errorf("expected downcast of empty node to fail")
	}
}

func TestWrapUsesDynamicType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.node")
	defer teardown()
	//
	var v interface{} = 42
	n := Wrap(v)
	if n.TypeID() != TypeOf[int]() {
		t.Errorf("expected wrapped interface to carry dynamic type int, has %s", n.TypeID())
	}
	if Wrap(n).TypeID() != n.TypeID() {
		t.Errorf("wrapping a node should not wrap it twice")
	}
	if !Wrap(nil).IsEmpty() {
		t.Errorf("expected Wrap(nil) to be empty")
	}
}

func TestCopySemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.node")
	defer teardown()
	//
	n := New(vector{1, 2, 3})
	c := n.Copy()
	v, _ := As[vector](c)
	v[0] = 99
	orig, _ := As[vector](n)
	if orig[0] != 1 {
		t.Errorf("copy of a cloneable node shares state with the original")
	}
	if c.TypeID() != n.TypeID() {
		t.Errorf("copy changed the type id")
	}
}
