package runtime

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/gexpr/node"
)

// ErrReadOnly is returned when assigning to a constant.
var ErrReadOnly = errors.New("tag is read-only")

// --- Tags -------------------------------------------------------

// Tag is the symbol type to be stored into symbol tables. A tag is a named
// value; a read-only tag is a constant.
type Tag struct {
	name     string
	value    node.Node
	readOnly bool
}

// NewTag creates a new tag without a value.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// WithValue sets the initial value of a tag. Use as
//
//    tag := NewTag("pi").WithValue(node.New(math.Pi)).ReadOnly()
//
func (t *Tag) WithValue(v node.Node) *Tag {
	t.value = v
	return t
}

// ReadOnly marks a tag as a constant.
func (t *Tag) ReadOnly() *Tag {
	t.readOnly = true
	return t
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	if t.readOnly {
		return fmt.Sprintf("<const '%s'=%s>", t.name, t.value)
	}
	return fmt.Sprintf("<tag '%s'=%s>", t.name, t.value)
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

// Value returns the tag's value, which may be node.Empty.
func (t *Tag) Value() node.Node {
	return t.value
}

// IsReadOnly is a predicate: is t a constant?
func (t *Tag) IsReadOnly() bool {
	return t.readOnly
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	sync.RWMutex
	table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (st *SymbolTable) ResolveTag(tagname string) *Tag {
	st.RLock()
	defer st.RUnlock()
	return st.table[tagname]
}

// ResolveOrDefineTag finds a tag in the table, inserts a new one if not found.
// Returns the tag and a flag, signalling wether the tag has already been present.
func (st *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	st.Lock()
	defer st.Unlock()
	if tag, found := st.table[tagname]; found {
		return tag, true
	}
	tag := NewTag(tagname)
	st.table[tagname] = tag
	return tag, false
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites an existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (st *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := st.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created tag. Returns the previously stored tag (or nil).
func (st *SymbolTable) InsertTag(tag *Tag) *Tag {
	st.Lock()
	defer st.Unlock()
	old := st.table[tag.name]
	st.table[tag.name] = tag
	return old
}

// Assign sets the value of a tag, defining it if necessary. Constants cannot
// be assigned to.
func (st *SymbolTable) Assign(tagname string, v node.Node) (*Tag, error) {
	if len(tagname) == 0 {
		return nil, fmt.Errorf("cannot assign to tag without name")
	}
	st.Lock()
	defer st.Unlock()
	tag, found := st.table[tagname]
	if !found {
		tag = NewTag(tagname)
		st.table[tagname] = tag
	} else if tag.readOnly {
		return tag, fmt.Errorf("%w: %s", ErrReadOnly, tagname)
	}
	tag.value = v
	return tag, nil
}

// Size counts the tags in a symbol table.
func (st *SymbolTable) Size() int {
	st.RLock()
	defer st.RUnlock()
	return len(st.table)
}

// Each iterates over each tag in the table in order of names, executing a
// mapper function. mapper must not modify the symbol table.
func (st *SymbolTable) Each(mapper func(string, *Tag)) {
	st.RLock()
	defer st.RUnlock()
	names := make([]string, 0, len(st.table))
	for k := range st.table {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		mapper(k, st.table[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// DefineTag defines a tag in the scope. Returns the new tag and the previously
// stored tag under this key, if any.
func (s *Scope) DefineTag(tagname string) (*Tag, *Tag) {
	return s.symtab.DefineTag(tagname)
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// Assign sets the value of a tag. If the tag is found in an enclosing scope, it
// is shadowed in s, unless it is a constant.
func (s *Scope) Assign(tagname string, v node.Node) error {
	if tag, _ := s.ResolveTag(tagname); tag != nil && tag.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, tagname)
	}
	tag, err := s.symtab.Assign(tagname, v)
	if err == nil {
		tracer().Debugf("%s: %s", s, tag)
	}
	return err
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during static analysis, thus
// building a tree from scopes which are pushed an popped to/from the stack.
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeTree) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a scope onto the stack of scopes. A scope is constructed,
// including a symbol table for variable declarations.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc // make new scope anchor
	}
	scst.ScopeTOS = newsc // new scope now TOS
	tracer().Debugf("pushing new scope %s", newsc.Name)
	return newsc
}

// PopScope pops the top-most (recent) scope. The global scope cannot be popped.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil || scst.ScopeTOS == scst.ScopeBase {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}
