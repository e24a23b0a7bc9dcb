package path

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/eval"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
)

// Errors of path resolution.
var (
	ErrNotFound      = errors.New("no such field or key")
	ErrOutOfRange    = errors.New("index out of range")
	ErrNotSelectable = errors.New("value has no fields or elements")
	ErrNil           = errors.New("nil value")
	ErrUnexported    = errors.New("field is not exported")
)

// Segment is a named path segment.
type Segment string

// Index is a numeric path segment.
type Index int

// Dot is the operator between path segments.
type Dot struct{}

// Value is a value reached by following a path.
type Value struct {
	v    reflect.Value
	path string
}

// Interface returns the Go value.
func (v Value) Interface() interface{} {
	return v.v.Interface()
}

func (v Value) String() string {
	return fmt.Sprintf("%s=%v", v.path, v.v)
}

// root is the evaluation context: the value paths start at.
type root struct {
	v reflect.Value
}

func (r *root) value() Value {
	return Value{v: r.v, path: "$"}
}

// --- Selection -------------------------------------------------------------

func (v Value) field(name string) (Value, error) {
	x, err := deref(v)
	if err != nil {
		return Value{}, err
	}
	p := v.path + "." + name
	switch x.Kind() {
	case reflect.Struct:
		f, ok := structField(x.Type(), name)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if !f.IsExported() {
			return Value{}, fmt.Errorf("%w: %s", ErrUnexported, p)
		}
		return Value{v: x.FieldByIndex(f.Index), path: p}, nil
	case reflect.Map:
		if x.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: %s has %s keys", ErrNotFound, v.path, x.Type().Key())
		}
		e := x.MapIndex(reflect.ValueOf(name).Convert(x.Type().Key()))
		if !e.IsValid() {
			return Value{}, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return Value{v: e, path: p}, nil
	}
	return Value{}, fmt.Errorf("%w: %s is %s", ErrNotSelectable, v.path, x.Kind())
}

func (v Value) element(i int) (Value, error) {
	x, err := deref(v)
	if err != nil {
		return Value{}, err
	}
	p := v.path + "." + strconv.Itoa(i)
	switch x.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= x.Len() {
			return Value{}, fmt.Errorf("%w: %s (length %d)", ErrOutOfRange, p, x.Len())
		}
		return Value{v: x.Index(i), path: p}, nil
	case reflect.Map:
		kt := x.Type().Key()
		var key reflect.Value
		switch {
		case kt.Kind() == reflect.String:
			key = reflect.ValueOf(strconv.Itoa(i)).Convert(kt)
		case reflect.TypeOf(i).ConvertibleTo(kt) && isInteger(kt.Kind()):
			key = reflect.ValueOf(i).Convert(kt)
		default:
			return Value{}, fmt.Errorf("%w: %s has %s keys", ErrNotFound, v.path, kt)
		}
		e := x.MapIndex(key)
		if !e.IsValid() {
			return Value{}, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return Value{v: e, path: p}, nil
	case reflect.Struct:
		return v.field(strconv.Itoa(i))
	}
	return Value{}, fmt.Errorf("%w: %s is %s", ErrNotSelectable, v.path, x.Kind())
}

// deref follows pointers and interfaces.
func deref(v Value) (reflect.Value, error) {
	x := v.v
	for x.Kind() == reflect.Pointer || x.Kind() == reflect.Interface {
		if x.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w at %s", ErrNil, v.path)
		}
		x = x.Elem()
	}
	if !x.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w at %s", ErrNil, v.path)
	}
	return x, nil
}

// structField finds a field by name, by name with a lower-case first letter,
// or by case-insensitive name ("id" selects field ID).
func structField(t reflect.Type, name string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(name); ok {
		return f, true
	}
	r, sz := utf8.DecodeRuneInString(name)
	if unicode.IsLower(r) {
		if f, ok := t.FieldByName(string(unicode.ToUpper(r)) + name[sz:]); ok {
			return f, true
		}
	}
	return t.FieldByNameFunc(func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uint64
}

// --- Language set-up -------------------------------------------------------

func digits(c *lexer.Consumer) error {
	tok, ok := c.Stream().ParseToken(func(r rune) lexer.ParseState {
		if r >= '0' && r <= '9' {
			return lexer.Continue
		}
		return lexer.StopBefore
	}, nil)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(tok.Text())
	if err != nil {
		return fmt.Errorf("path index %q: %w", tok.Text(), err)
	}
	c.Add(tok, node.New(Index(i)))
	return nil
}

var language struct {
	once    sync.Once
	defs    *lexer.Definitions
	grammar *grammar.Grammar
	ops     *eval.JumpTable
	err     error
}

func setup() error {
	language.once.Do(func() {
		language.defs = lexer.NewDefinitions("path").SkipWhitespace(true).Define(
			digits,
			lexer.Identifier(func(s string) Segment { return Segment(s) }),
			lexer.Quoted('"', '\\', func(s string) Segment { return Segment(s) }),
			lexer.Symbol(".", Dot{}),
		)
		g := grammar.New("path")
		if language.err = grammar.Binary[Dot](g, 1, grammar.LeftToRight); language.err != nil {
			return
		}
		language.grammar = g
		language.ops = makeJumpTable()
	})
	return language.err
}

func makeJumpTable() *eval.JumpTable {
	jt := eval.NewJumpTable("path")
	eval.Binary[Dot](jt, func(v Value, s Segment) (Value, error) {
		return v.field(string(s))
	})
	eval.Binary[Dot](jt, func(v Value, i Index) (Value, error) {
		return v.element(int(i))
	})
	// the first segment of a path is resolved against the root
	eval.BinaryCtx[Dot](jt, func(s, t Segment, r *root) (Value, error) {
		v, err := r.value().field(string(s))
		if err != nil {
			return Value{}, err
		}
		return v.field(string(t))
	})
	eval.BinaryCtx[Dot](jt, func(s Segment, i Index, r *root) (Value, error) {
		v, err := r.value().field(string(s))
		if err != nil {
			return Value{}, err
		}
		return v.element(int(i))
	})
	eval.BinaryCtx[Dot](jt, func(i Index, s Segment, r *root) (Value, error) {
		v, err := r.value().element(int(i))
		if err != nil {
			return Value{}, err
		}
		return v.field(string(s))
	})
	eval.BinaryCtx[Dot](jt, func(i, j Index, r *root) (Value, error) {
		v, err := r.value().element(int(i))
		if err != nil {
			return Value{}, err
		}
		return v.element(int(j))
	})
	return jt
}

// --- API -------------------------------------------------------------------

// Path is a compiled path. Paths may be used by concurrent goroutines.
type Path struct {
	source string
	prog   *compiler.Program
}

// Compile compiles a path.
func Compile(path string) (*Path, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	prog, err := compiler.CompileText(path, language.defs, language.grammar)
	if err != nil {
		return nil, err
	}
	return &Path{source: path, prog: prog}, nil
}

func (p *Path) String() string {
	return p.source
}

// Resolve follows the path, starting at value rt. An empty path resolves
// to rt.
func (p *Path) Resolve(rt interface{}) (interface{}, error) {
	r := &root{v: reflect.ValueOf(rt)}
	if p.prog.IsEmpty() {
		return rt, nil
	}
	res, err := eval.EvaluateToken(p.prog, language.ops, r)
	if err != nil {
		return nil, err
	}
	var v Value
	switch x := res.Node.Value().(type) {
	case Value:
		v = x
	case Segment: // single segment
		v, err = r.value().field(string(x))
	case Index:
		v, err = r.value().element(int(x))
	default:
		return nil, fmt.Errorf("path: unexpected result %s", res)
	}
	if err != nil {
		return nil, gexpr.NewEvalError(gexpr.ErrOperatorFailed, res.Loc, err, "cannot select %q", res.Lexeme)
	}
	tracer().Debugf("%s resolved to %s", p.source, v)
	if !v.v.CanInterface() {
		return nil, fmt.Errorf("%w: %s", ErrUnexported, v.path)
	}
	return v.Interface(), nil
}

// Resolve compiles a path and follows it, starting at value rt.
func Resolve(path string, rt interface{}) (interface{}, error) {
	p, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return p.Resolve(rt)
}
