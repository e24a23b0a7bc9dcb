package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/gexpr/node"
)

// Associativity decides between binary operators of equal precedence.
type Associativity int8

const (
	LeftToRight Associativity = iota // a $ b $ c = (a $ b) $ c
	RightToLeft                      // a ~ b ~ c = a ~ (b ~ c)
)

func (a Associativity) String() string {
	if a == RightToLeft {
		return "right-to-left"
	}
	return "left-to-right"
}

// Precedence holds the parameters of a binary operator. Lower levels bind tighter.
type Precedence struct {
	Level int
	Assoc Associativity
}

func (p Precedence) String() string {
	return fmt.Sprintf("%d/%s", p.Level, p.Assoc)
}

// Grammar is a set of groupings and operators.
type Grammar struct {
	name      string
	groupings map[node.TypeID]node.TypeID // open → close
	closers   map[node.TypeID]node.TypeID // close → open
	preUnary  map[node.TypeID]bool
	postUnary map[node.TypeID]bool
	binary    map[node.TypeID]Precedence
	levels    *treeset.Set          // all precedence levels in use
	assoc     map[int]Associativity // associativity per level
}

// New creates an empty grammar.
func New(name string) *Grammar {
	return &Grammar{
		name:      name,
		groupings: make(map[node.TypeID]node.TypeID),
		closers:   make(map[node.TypeID]node.TypeID),
		preUnary:  make(map[node.TypeID]bool),
		postUnary: make(map[node.TypeID]bool),
		binary:    make(map[node.TypeID]Precedence),
		levels:    treeset.NewWithIntComparator(),
		assoc:     make(map[int]Associativity),
	}
}

// Name returns the name of the grammar.
func (g *Grammar) Name() string {
	return g.name
}

// --- Definitions -----------------------------------------------------------

// DefineGrouping declares a pair of grouping types. A group starts with a token of
// type open and extends to the next token of type close at the same nesting level.
func (g *Grammar) DefineGrouping(open, close node.TypeID) {
	g.groupings[open] = close
	g.closers[close] = open
	tracer().Debugf("%s: grouping %s … %s", g.name, open, close)
}

// DefinePreUnary declares a prefix operator.
func (g *Grammar) DefinePreUnary(op node.TypeID) {
	g.preUnary[op] = true
	tracer().Debugf("%s: pre-unary %s", g.name, op)
}

// DefinePostUnary declares a postfix operator.
func (g *Grammar) DefinePostUnary(op node.TypeID) {
	g.postUnary[op] = true
	tracer().Debugf("%s: post-unary %s", g.name, op)
}

// DefineBinary declares a binary operator. It is an error to use a precedence level
// with two different associativities, or to re-define an operator with different
// parameters.
func (g *Grammar) DefineBinary(op node.TypeID, level int, assoc Associativity) error {
	if a, exists := g.assoc[level]; exists && a != assoc {
		return fmt.Errorf("grammar %s: operator %s at level %d is %s, but level is %s",
			g.name, op, level, assoc, a)
	}
	prec := Precedence{Level: level, Assoc: assoc}
	if p, exists := g.binary[op]; exists && p != prec {
		return fmt.Errorf("grammar %s: operator %s already defined with precedence %s",
			g.name, op, p)
	}
	g.binary[op] = prec
	g.assoc[level] = assoc
	g.levels.Add(level)
	tracer().Debugf("%s: binary %s at %s", g.name, op, prec)
	return nil
}

// Generic shortcuts for the definition methods.

// Grouping declares type Open as the start of a group terminated by type Close.
func Grouping[Open, Close any](g *Grammar) {
	g.DefineGrouping(node.TypeOf[Open](), node.TypeOf[Close]())
}

// PreUnary declares type Op as a prefix operator.
func PreUnary[Op any](g *Grammar) {
	g.DefinePreUnary(node.TypeOf[Op]())
}

// PostUnary declares type Op as a postfix operator.
func PostUnary[Op any](g *Grammar) {
	g.DefinePostUnary(node.TypeOf[Op]())
}

// Binary declares type Op as a binary operator.
func Binary[Op any](g *Grammar, level int, assoc Associativity) error {
	return g.DefineBinary(node.TypeOf[Op](), level, assoc)
}

// --- Queries ---------------------------------------------------------------

// Grouping returns the closing type for an opening type of a group.
func (g *Grammar) Grouping(open node.TypeID) (node.TypeID, bool) {
	close, ok := g.groupings[open]
	return close, ok
}

// IsGroupCloser is a predicate: does type id close any group?
func (g *Grammar) IsGroupCloser(id node.TypeID) bool {
	_, ok := g.closers[id]
	return ok
}

// IsPreUnary is a predicate: is op a prefix operator?
func (g *Grammar) IsPreUnary(op node.TypeID) bool {
	return g.preUnary[op]
}

// IsPostUnary is a predicate: is op a postfix operator?
func (g *Grammar) IsPostUnary(op node.TypeID) bool {
	return g.postUnary[op]
}

// Binary returns the precedence of a binary operator.
func (g *Grammar) Binary(op node.TypeID) (Precedence, bool) {
	p, ok := g.binary[op]
	return p, ok
}

// IsOperator is a predicate: has op any operator role?
func (g *Grammar) IsOperator(op node.TypeID) bool {
	_, bin := g.binary[op]
	return bin || g.preUnary[op] || g.postUnary[op]
}

// Levels returns the precedence levels in use, tightest first.
func (g *Grammar) Levels() []int {
	values := g.levels.Values()
	levels := make([]int, len(values))
	for i, v := range values {
		levels[i] = v.(int)
	}
	return levels
}

// --- Diagnostics -----------------------------------------------------------

// Dump traces the grammar's definitions, binary operators ordered by level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- Grammar %s ---------------------------", g.name)
	for _, line := range g.describe().lines() {
		tracer().Debugf("    %s", line)
	}
	tracer().Debugf("-------------------------------------------")
}

// Fingerprint returns a hash over the grammar's definitions. Grammars with equal
// definitions have equal fingerprints, within one process.
func (g *Grammar) Fingerprint() string {
	h, err := structhash.Hash(g.describe(), 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %s: %v", g.name, err)
		return ""
	}
	return h
}

// description is a normalized, exported view of a grammar, suited for hashing.
type description struct {
	Name      string
	Groupings []string
	PreUnary  []string
	PostUnary []string
	Binary    []string
}

func (g *Grammar) describe() description {
	d := description{Name: g.name}
	for open, close := range g.groupings {
		d.Groupings = append(d.Groupings, fmt.Sprintf("%s…%s", open, close))
	}
	for op := range g.preUnary {
		d.PreUnary = append(d.PreUnary, op.String())
	}
	for op := range g.postUnary {
		d.PostUnary = append(d.PostUnary, op.String())
	}
	for _, level := range g.Levels() {
		var ops []string
		for op, p := range g.binary {
			if p.Level == level {
				ops = append(ops, fmt.Sprintf("%d:%s:%s", level, op, p.Assoc))
			}
		}
		sort.Strings(ops)
		d.Binary = append(d.Binary, ops...)
	}
	sort.Strings(d.Groupings)
	sort.Strings(d.PreUnary)
	sort.Strings(d.PostUnary)
	return d
}

func (d description) lines() []string {
	var l []string
	for _, s := range d.Groupings {
		l = append(l, "group  "+s)
	}
	for _, s := range d.PreUnary {
		l = append(l, "prefix "+s)
	}
	for _, s := range d.PostUnary {
		l = append(l, "suffix "+s)
	}
	for _, s := range d.Binary {
		l = append(l, "binary "+s)
	}
	return l
}
