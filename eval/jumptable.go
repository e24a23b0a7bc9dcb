package eval

import (
	"fmt"
	"sort"

	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/node"
)

// Context is an evaluation context, handed through to operator functions.
type Context interface{}

// UnaryFunc is an operator function for pre-unary and post-unary operators.
type UnaryFunc func(operand node.Node, ctx Context) (node.Node, error)

// BinaryFunc is an operator function for binary operators.
type BinaryFunc func(left, right node.Node, ctx Context) (node.Node, error)

// key identifies an operator function. For unary operators, right is node.NoType.
type key struct {
	role        compiler.Role
	op          node.TypeID
	left, right node.TypeID
}

func (k key) String() string {
	if k.role == compiler.BinaryOperator {
		return fmt.Sprintf("%s(%s, %s)", k.op, k.left, k.right)
	}
	return fmt.Sprintf("%s(%s)", k.op, k.left)
}

// JumpTable maps operators and operand types to operator functions.
type JumpTable struct {
	name   string
	unary  map[key]UnaryFunc
	binary map[key]BinaryFunc
}

// NewJumpTable creates an empty jump table.
func NewJumpTable(name string) *JumpTable {
	return &JumpTable{
		name:   name,
		unary:  make(map[key]UnaryFunc),
		binary: make(map[key]BinaryFunc),
	}
}

// Name returns the name of the jump table.
func (jt *JumpTable) Name() string {
	return jt.name
}

// MapPreUnary registers an operator function for a pre-unary operator and an
// operand type. An existing entry is replaced.
func (jt *JumpTable) MapPreUnary(op, operand node.TypeID, f UnaryFunc) {
	jt.mapUnary(compiler.PreUnaryOperator, op, operand, f)
}

// MapPostUnary registers an operator function for a post-unary operator and an
// operand type. An existing entry is replaced.
func (jt *JumpTable) MapPostUnary(op, operand node.TypeID, f UnaryFunc) {
	jt.mapUnary(compiler.PostUnaryOperator, op, operand, f)
}

func (jt *JumpTable) mapUnary(role compiler.Role, op, operand node.TypeID, f UnaryFunc) {
	if f == nil {
		panic("eval: nil operator function")
	}
	k := key{role: role, op: op, left: operand}
	jt.unary[k] = f
	tracer().Debugf("%s: %s %s", jt.name, role, k)
}

// MapBinary registers an operator function for a binary operator and a pair of
// operand types. An existing entry is replaced.
func (jt *JumpTable) MapBinary(op, left, right node.TypeID, f BinaryFunc) {
	if f == nil {
		panic("eval: nil operator function")
	}
	k := key{role: compiler.BinaryOperator, op: op, left: left, right: right}
	jt.binary[k] = f
	tracer().Debugf("%s: binary %s", jt.name, k)
}

// LookupUnary finds the operator function for a unary operator.
// role is either compiler.PreUnaryOperator or compiler.PostUnaryOperator.
func (jt *JumpTable) LookupUnary(role compiler.Role, op, operand node.TypeID) (UnaryFunc, bool) {
	f, ok := jt.unary[key{role: role, op: op, left: operand}]
	return f, ok
}

// LookupBinary finds the operator function for a binary operator.
func (jt *JumpTable) LookupBinary(op, left, right node.TypeID) (BinaryFunc, bool) {
	f, ok := jt.binary[key{role: compiler.BinaryOperator, op: op, left: left, right: right}]
	return f, ok
}

// Len returns the number of operator functions in the table.
func (jt *JumpTable) Len() int {
	return len(jt.unary) + len(jt.binary)
}

// Signatures lists the entries of the table in a readable form, sorted.
func (jt *JumpTable) Signatures() []string {
	sigs := make([]string, 0, jt.Len())
	for k := range jt.unary {
		sigs = append(sigs, k.role.String()+" "+k.String())
	}
	for k := range jt.binary {
		sigs = append(sigs, k.role.String()+" "+k.String())
	}
	sort.Strings(sigs)
	return sigs
}

// --- Typed registration ----------------------------------------------------

// The following functions register operator functions on Go types, instead
// of type ids. Op is the type of the operator token, all other type parameters
// are usually inferred from the function argument. Results of type node.Node
// are taken as they are, results of any other type are wrapped into a node.

// PreUnary registers f as pre-unary operator Op for operands of type T.
func PreUnary[Op, T, R any](jt *JumpTable, f func(T) (R, error)) {
	jt.MapPreUnary(node.TypeOf[Op](), node.TypeOf[T](), unary(f))
}

// PreUnaryCtx registers f as pre-unary operator Op for operands of type T,
// receiving a context of type C.
func PreUnaryCtx[Op, T, C, R any](jt *JumpTable, f func(T, C) (R, error)) {
	jt.MapPreUnary(node.TypeOf[Op](), node.TypeOf[T](), unaryCtx(f))
}

// PostUnary registers f as post-unary operator Op for operands of type T.
func PostUnary[Op, T, R any](jt *JumpTable, f func(T) (R, error)) {
	jt.MapPostUnary(node.TypeOf[Op](), node.TypeOf[T](), unary(f))
}

// PostUnaryCtx registers f as post-unary operator Op for operands of type T,
// receiving a context of type C.
func PostUnaryCtx[Op, T, C, R any](jt *JumpTable, f func(T, C) (R, error)) {
	jt.MapPostUnary(node.TypeOf[Op](), node.TypeOf[T](), unaryCtx(f))
}

// Binary registers f as binary operator Op for operands of types L and R.
func Binary[Op, L, R, Res any](jt *JumpTable, f func(L, R) (Res, error)) {
	jt.MapBinary(node.TypeOf[Op](), node.TypeOf[L](), node.TypeOf[R](),
		func(left, right node.Node, _ Context) (node.Node, error) {
			l, r, err := operands[L, R](left, right)
			if err != nil {
				return node.Empty, err
			}
			res, err := f(l, r)
			if err != nil {
				return node.Empty, err
			}
			return result(res), nil
		})
}

// BinaryCtx registers f as binary operator Op for operands of types L and R,
// receiving a context of type C.
func BinaryCtx[Op, L, R, C, Res any](jt *JumpTable, f func(L, R, C) (Res, error)) {
	jt.MapBinary(node.TypeOf[Op](), node.TypeOf[L](), node.TypeOf[R](),
		func(left, right node.Node, ctx Context) (node.Node, error) {
			l, r, err := operands[L, R](left, right)
			if err != nil {
				return node.Empty, err
			}
			c, err := contextAs[C](ctx)
			if err != nil {
				return node.Empty, err
			}
			res, err := f(l, r, c)
			if err != nil {
				return node.Empty, err
			}
			return result(res), nil
		})
}

func unary[T, R any](f func(T) (R, error)) UnaryFunc {
	return func(operand node.Node, _ Context) (node.Node, error) {
		v, ok := node.As[T](operand)
		if !ok {
			return node.Empty, fmt.Errorf("operand %s is not of type %s", operand, node.TypeOf[T]())
		}
		res, err := f(v)
		if err != nil {
			return node.Empty, err
		}
		return result(res), nil
	}
}

func unaryCtx[T, C, R any](f func(T, C) (R, error)) UnaryFunc {
	return func(operand node.Node, ctx Context) (node.Node, error) {
		v, ok := node.As[T](operand)
		if !ok {
			return node.Empty, fmt.Errorf("operand %s is not of type %s", operand, node.TypeOf[T]())
		}
		c, err := contextAs[C](ctx)
		if err != nil {
			return node.Empty, err
		}
		res, err := f(v, c)
		if err != nil {
			return node.Empty, err
		}
		return result(res), nil
	}
}

func operands[L, R any](left, right node.Node) (L, R, error) {
	l, okl := node.As[L](left)
	r, okr := node.As[R](right)
	if !okl || !okr {
		return l, r, fmt.Errorf("operands %s, %s are not of types %s, %s", left, right,
			node.TypeOf[L](), node.TypeOf[R]())
	}
	return l, r, nil
}

// contextAs downcasts an evaluation context. A nil context results in the zero
// value of C.
func contextAs[C any](ctx Context) (C, error) {
	var zero C
	if ctx == nil {
		return zero, nil
	}
	c, ok := ctx.(C)
	if !ok {
		return zero, fmt.Errorf("evaluation context of type %T, expected %s", ctx,
			node.TypeOf[C]())
	}
	return c, nil
}

func result[R any](res R) node.Node {
	if n, ok := interface{}(res).(node.Node); ok {
		return n
	}
	return node.New(res)
}
