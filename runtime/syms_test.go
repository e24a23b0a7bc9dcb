package runtime

import (
	"errors"
	"testing"

	"github.com/npillmayer/gexpr/node"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewSymbol(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if sym == nil {
		t.Fatal("no symbol created for table")
	}
	if !sym.Value().IsEmpty() {
		t.Errorf("expected new tag to have no value")
	}
}

func TestTwoSymbolsDistinct(t *testing.T) {
	symtab := NewSymbolTable()
	sym1, _ := symtab.DefineTag("new-sym1")
	sym2, _ := symtab.DefineTag("new-sym2")
	if sym1 == sym2 || symtab.Size() != 2 {
		t.Error("expected 2 distinct symbols")
	}
}

func TestResolveOrDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if s := symtab.ResolveTag(sym.Name()); s != sym {
		t.Error("cannot find stored symbol in table")
	}
	if _, found := symtab.ResolveOrDefineTag(sym.Name()); !found {
		t.Error("cannot find stored symbol in table")
	}
	if _, found := symtab.ResolveOrDefineTag("other"); found {
		t.Error("expected 'other' to be defined on the fly")
	}
}

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if _, old := symtab.DefineTag("new-sym"); old != sym {
		t.Error("symbol should have been replaced")
	}
}

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.runtime")
	defer teardown()
	//
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.DefineTag("new-sym")
	if sym, sc := scope.ResolveTag("new-sym"); sym == nil || sc != scopep {
		t.Errorf("expected to find symbol in parent scope")
	}
	if sym, sc := scope.ResolveTag("none"); sym != nil || sc != nil {
		t.Errorf("expected unknown symbol not to be found")
	}
}

func TestAssign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.runtime")
	defer teardown()
	//
	rt := NewRuntimeEnvironment()
	rt.Globals().Tags().InsertTag(NewTag("pi").WithValue(node.New(3.14)).ReadOnly())
	rt.Globals().Assign("x", node.New(1.0))
	user := rt.ScopeTree.PushNewScope("user")
	if err := user.Assign("pi", node.New(3.0)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected constant to be read-only, got %v", err)
	}
	if err := user.Assign("x", node.New(2.0)); err != nil {
		t.Fatal(err)
	}
	tag, sc := rt.Current().ResolveTag("x")
	if x, _ := node.As[float64](tag.Value()); x != 2 || sc != user {
		t.Errorf("expected x=2 to shadow global x, have %s in %s", tag, sc)
	}
	rt.ScopeTree.PopScope()
	tag, _ = rt.Current().ResolveTag("x")
	if x, _ := node.As[float64](tag.Value()); x != 1 {
		t.Errorf("expected global x=1 after popping scope, have %s", tag)
	}
	var names []string
	rt.Globals().Tags().Each(func(name string, _ *Tag) {
		names = append(names, name)
	})
	if len(names) != 2 || names[0] != "pi" || names[1] != "x" {
		t.Errorf("expected ordered names [pi x], have %v", names)
	}
}
