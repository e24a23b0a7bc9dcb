package node

import (
	"fmt"
	"reflect"
)

// Node is a type-erased value. Create nodes with New or Wrap, get the value
// back with As.
type Node struct {
	id    TypeID
	value interface{}
}

// Empty is the empty node.
var Empty = Node{}

// Cloner may be implemented by node values holding references.
// Copy will call Clone to create an independent value.
type Cloner interface {
	Clone() interface{}
}

// New wraps a value of type T into a node. The node's type id is the id of
// the static type T, even if T is an interface type.
func New[T any](v T) Node {
	return Node{id: TypeOf[T](), value: v}
}

// Wrap wraps a value into a node, using the dynamic type of v.
// Wrap(nil) returns the empty node.
func Wrap(v interface{}) Node {
	if v == nil {
		return Empty
	}
	if n, ok := v.(Node); ok {
		return n
	}
	return Node{id: TypeOfValue(v), value: v}
}

// As downcasts a node to a value of type T. The type check is done on the type
// id; if it does not match, As returns the zero value of T and false.
func As[T any](n Node) (T, bool) {
	var zero T
	if n.id == NoType || n.id != TypeOf[T]() {
		return zero, false
	}
	v, ok := n.value.(T)
	return v, ok
}

// Is is a predicate: does n hold a value of type T?
func Is[T any](n Node) bool {
	return n.id != NoType && n.id == TypeOf[T]()
}

// TypeID returns the type id of the node's value.
func (n Node) TypeID() TypeID {
	return n.id
}

// IsEmpty is a predicate: is n the empty node?
func (n Node) IsEmpty() bool {
	return n.id == NoType
}

// Value returns the node's value as an interface.
func (n Node) Value() interface{} {
	return n.value
}

// Copy returns a copy of n. Values implementing Cloner are cloned, all other
// values are copied by assignment.
func (n Node) Copy() Node {
	if c, ok := n.value.(Cloner); ok {
		return Node{id: n.id, value: c.Clone()}
	}
	return n
}

func (n Node) String() string {
	if n.IsEmpty() {
		return "<empty>"
	}
	if s, ok := n.value.(fmt.Stringer); ok {
		return s.String()
	}
	if isMarker(n.value) {
		return n.id.String()
	}
	return fmt.Sprintf("%v", n.value)
}

// isMarker is true for values of empty struct types, which are typical for
// operator and punctuation tokens. They print as their registered name.
func isMarker(v interface{}) bool {
	rt := reflect.TypeOf(v)
	return rt != nil && rt.Kind() == reflect.Struct && rt.NumField() == 0
}
