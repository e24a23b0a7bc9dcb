package eval

import (
	"context"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
	"golang.org/x/sync/errgroup"
)

// Evaluate runs a compiled program. Operator functions are found in jump table
// jt and receive the evaluation context ctx, which may be nil.
//
// Errors are of type *gexpr.EvalError. Errors returned by operator functions
// are wrapped, and may be unwrapped with errors.Is or errors.As.
func Evaluate(prog *compiler.Program, jt *JumpTable, ctx Context) (node.Node, error) {
	res, err := EvaluateToken(prog, jt, ctx)
	return res.Node, err
}

// EvaluateToken is like Evaluate, but returns the result as a token. The result
// token is located at the leftmost operand of the expression.
func EvaluateToken(prog *compiler.Program, jt *JumpTable, ctx Context) (lexer.Token, error) {
	if prog.IsEmpty() {
		return lexer.Token{}, gexpr.NewEvalError(gexpr.ErrInvalidExpression, gexpr.Location{}, nil,
			"empty program")
	}
	res, err := evaluate(prog, jt, ctx)
	if err != nil {
		tracer().Errorf("%s: %v", jt.Name(), err)
		return lexer.Token{}, err
	}
	return *res, nil
}

// EvaluateText lexes, compiles and evaluates an input text.
func EvaluateText(text string, defs *lexer.Definitions, g *grammar.Grammar, jt *JumpTable,
	ctx Context, opts ...compiler.Option) (node.Node, error) {
	//
	prog, err := compiler.CompileText(text, defs, g, opts...)
	if err != nil {
		return node.Empty, err
	}
	return Evaluate(prog, jt, ctx)
}

// The operand stack holds references to tokens, either into the program's code
// or to results of operator functions.
func evaluate(prog *compiler.Program, jt *JumpTable, ctx Context) (*lexer.Token, error) {
	stack := arraystack.New() // of *lexer.Token
	for i := range prog.Code {
		instr := &prog.Code[i]
		switch instr.Role {
		case compiler.Benign:
			continue
		case compiler.Operand:
			stack.Push(&instr.Token)
		case compiler.PreUnaryOperator, compiler.PostUnaryOperator:
			if stack.Size() < 1 {
				return nil, gexpr.NewEvalError(gexpr.ErrNotEnoughOperands, instr.Loc, nil,
					"no operand for %q", instr.Lexeme)
			}
			x, _ := stack.Pop()
			operand := x.(*lexer.Token)
			f, ok := jt.LookupUnary(instr.Role, instr.TypeID(), operand.TypeID())
			if !ok {
				return nil, gexpr.NewEvalError(gexpr.ErrNoOperator, instr.Loc, nil,
					"operator %q not defined for %s", instr.Lexeme, operand.TypeID())
			}
			r, err := f(operand.Node, ctx)
			if err != nil {
				return nil, gexpr.NewEvalError(gexpr.ErrOperatorFailed, instr.Loc, err,
					"%q", instr.Lexeme)
			}
			stack.Push(resultToken(r, operand))
		case compiler.BinaryOperator:
			if stack.Size() < 2 {
				return nil, gexpr.NewEvalError(gexpr.ErrNotEnoughOperands, instr.Loc, nil,
					"operator %q needs two operands", instr.Lexeme)
			}
			y, _ := stack.Pop()
			x, _ := stack.Pop()
			left, right := x.(*lexer.Token), y.(*lexer.Token)
			f, ok := jt.LookupBinary(instr.TypeID(), left.TypeID(), right.TypeID())
			if !ok {
				return nil, gexpr.NewEvalError(gexpr.ErrNoOperator, instr.Loc, nil,
					"operator %q not defined for %s and %s", instr.Lexeme,
					left.TypeID(), right.TypeID())
			}
			r, err := f(left.Node, right.Node, ctx)
			if err != nil {
				return nil, gexpr.NewEvalError(gexpr.ErrOperatorFailed, instr.Loc, err,
					"%q", instr.Lexeme)
			}
			stack.Push(resultToken(r, left))
		}
	}
	if stack.Size() != 1 {
		var at gexpr.Location
		if stack.Size() > 1 {
			x, _ := stack.Peek()
			at = x.(*lexer.Token).Loc
		}
		return nil, gexpr.NewEvalError(gexpr.ErrInvalidExpression, at, nil,
			"%d operands left after evaluation", stack.Size())
	}
	x, _ := stack.Pop()
	res := x.(*lexer.Token)
	tracer().Debugf("%s: [%s] = %s", jt.Name(), prog, res.Node)
	return res, nil
}

// resultToken creates a token for the result of an operator function. The result
// inherits the location of the (left) operand.
func resultToken(n node.Node, operand *lexer.Token) *lexer.Token {
	return &lexer.Token{
		Node:   n,
		Loc:    operand.Loc,
		Lexeme: operand.Lexeme,
	}
}

// --- Concurrent evaluation -------------------------------------------------

// EvaluateAll evaluates independent programs concurrently. The programs share
// jump table jt and evaluation context ectx. Results are returned in the order
// of the programs. If any evaluation fails, EvaluateAll returns the first error
// and evaluations not yet started are canceled. limit restricts the number of
// concurrent evaluations, with limit < 1 meaning no restriction.
func EvaluateAll(ctx context.Context, progs []*compiler.Program, jt *JumpTable, ectx Context,
	limit int) ([]node.Node, error) {
	//
	results := make([]node.Node, len(progs))
	group, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, prog := range progs {
		i, prog := i, prog
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return gexpr.NewEvalError(gexpr.ErrEvaluationCanceled, gexpr.Location{}, err,
					"program #%d not evaluated", i)
			}
			r, err := Evaluate(prog, jt, ectx)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
