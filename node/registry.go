package node

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeID identifies the Go type of a node's value.
// The zero value NoType denotes the empty node.
type TypeID uint32

// NoType is the type of an empty node.
const NoType TypeID = 0

// String returns the name a type has been registered with.
func (id TypeID) String() string {
	if id == NoType {
		return "<none>"
	}
	reg.RLock()
	defer reg.RUnlock()
	if int(id) >= len(reg.names) {
		return fmt.Sprintf("<type #%d>", id)
	}
	return reg.names[id]
}

// GoType returns the Go type for a type id, or nil for unknown ids.
func (id TypeID) GoType() reflect.Type {
	reg.RLock()
	defer reg.RUnlock()
	if id == NoType || int(id) >= len(reg.types) {
		return nil
	}
	return reg.types[id]
}

// The registry is filled during set-up of expression languages and read-only
// afterwards. It is guarded anyway, as languages may be set up lazily from
// concurrent goroutines.
var reg = struct {
	sync.RWMutex
	ids   map[reflect.Type]TypeID
	names []string       // indexed by TypeID
	types []reflect.Type // indexed by TypeID
}{
	ids:   make(map[reflect.Type]TypeID),
	names: []string{"<none>"},
	types: []reflect.Type{nil},
}

// Register assigns a type id to type T and associates a readable name with it.
// Register is idempotent; if T is already known, its id is returned and its
// name is replaced by name (if name is non-empty).
func Register[T any](name string) TypeID {
	return idFor(staticType[T](), name)
}

// TypeOf returns the type id of type T. Unknown types are registered on the fly.
func TypeOf[T any]() TypeID {
	return idFor(staticType[T](), "")
}

// TypeOfValue returns the type id for the dynamic type of v. Unknown types are
// registered on the fly. TypeOfValue(nil) is NoType.
func TypeOfValue(v interface{}) TypeID {
	if v == nil {
		return NoType
	}
	return idFor(reflect.TypeOf(v), "")
}

// Lookup returns the type id of a type registered with a given name.
func Lookup(name string) (TypeID, bool) {
	reg.RLock()
	defer reg.RUnlock()
	for i, n := range reg.names {
		if i > 0 && n == name {
			return TypeID(i), true
		}
	}
	return NoType, false
}

func staticType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func idFor(rt reflect.Type, name string) TypeID {
	reg.RLock()
	id, found := reg.ids[rt]
	reg.RUnlock()
	if found && name == "" {
		return id
	}
	reg.Lock()
	defer reg.Unlock()
	if id, found = reg.ids[rt]; !found { // re-check under write lock
		id = TypeID(len(reg.names))
		reg.ids[rt] = id
		reg.names = append(reg.names, rt.String())
		reg.types = append(reg.types, rt)
		tracer().Debugf("registered node type %s as #%d", rt, id)
	}
	if name != "" {
		reg.names[id] = name
	}
	return id
}
