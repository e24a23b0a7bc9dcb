package arith

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/eval"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/lexer/lexmach"
	"github.com/npillmayer/gexpr/node"
	"github.com/timtadh/lexmachine"
)

// Errors of operators.
var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrNegativeRoot      = errors.New("square root of negative number")
	ErrNoEnvironment     = errors.New("no environment for variables")
)

// Token types of the calculator.
type (
	LParen struct{}
	RParen struct{}
	Plus   struct{}
	Minus  struct{}
	Times  struct{}
	Divide struct{}
	Modulo struct{}
	Power  struct{}
	Sqrt   struct{}
	Assign struct{}
)

// Name is a variable reference.
type Name string

// compoundAssign is an operator like "+=". It never reaches the compiler.
type compoundAssign struct {
	op     node.Node // the binary operator
	lexeme string    // the binary operator's text
}

var operators = map[string]node.Node{
	"(":    node.New(LParen{}),
	")":    node.New(RParen{}),
	"+":    node.New(Plus{}),
	"-":    node.New(Minus{}),
	"*":    node.New(Times{}),
	"/":    node.New(Divide{}),
	"%":    node.New(Modulo{}),
	"^":    node.New(Power{}),
	"=":    node.New(Assign{}),
	"sqrt": node.New(Sqrt{}),
}

var literals = []string{"(", ")", "+", "-", "*", "/", "%", "^", "=",
	"+=", "-=", "*=", "/=", "%=", "^="}
var keywords = []string{"sqrt"}

const (
	tokNumber = iota + 1
	tokName
	tokOperator
)

// --- Language set-up -------------------------------------------------------

type language struct {
	numbers   *lexer.Definitions // numbers only
	variables *lexer.Definitions // numbers and variables
	grammar   *grammar.Grammar
	ops       *eval.JumpTable
}

var calculator struct {
	once sync.Once
	lang *language
	err  error
}

func setup() (*language, error) {
	calculator.once.Do(func() {
		calculator.lang, calculator.err = makeLanguage()
		if calculator.err != nil {
			tracer().Errorf("cannot set up calculator: %v", calculator.err)
		}
	})
	return calculator.lang, calculator.err
}

func makeLanguage() (*language, error) {
	tokenIds := make(map[string]int)
	for _, lit := range literals {
		tokenIds[lit] = tokOperator
	}
	tokenIds["sqrt"] = tokOperator
	init := func(lx *lexmachine.Lexer) {
		lx.Add([]byte(`([0-9]+(\.[0-9]*)?|\.[0-9]+)((e|E)(\+|-)?[0-9]+)?`), lexmach.MakeToken("NUM", tokNumber))
		lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("ID", tokName))
	}
	lm, err := lexmach.NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		return nil, err
	}
	lang := &language{
		numbers:   lexer.NewDefinitions("arith").SkipWhitespace(true).Define(lm.Recognizer(converter(false))),
		variables: lexer.NewDefinitions("arith+vars").SkipWhitespace(true).Define(lm.Recognizer(converter(true))),
	}
	if lang.grammar, err = makeGrammar(); err != nil {
		return nil, err
	}
	lang.ops = makeJumpTable()
	lang.grammar.Dump()
	return lang, nil
}

// converter creates nodes from DFA matches. Without variables, words are declined
// and will be reported as unrecognized tokens.
func converter(withVariables bool) lexmach.Converter {
	return func(id int, lexeme string) (node.Node, error) {
		switch id {
		case tokNumber:
			f, err := strconv.ParseFloat(lexeme, 64)
			if err != nil {
				return node.Empty, fmt.Errorf("number %q: %w", lexeme, err)
			}
			return node.New(f), nil
		case tokName:
			if !withVariables {
				return node.Empty, nil
			}
			return node.New(Name(lexeme)), nil
		}
		if op, ok := operators[lexeme]; ok {
			return op, nil
		}
		if len(lexeme) == 2 && lexeme[1] == '=' { // compound assignment
			op := lexeme[:1]
			return node.New(compoundAssign{op: operators[op], lexeme: op}), nil
		}
		return node.Empty, nil
	}
}

func makeGrammar() (*grammar.Grammar, error) {
	g := grammar.New("arith")
	grammar.Grouping[LParen, RParen](g)
	grammar.PreUnary[Plus](g)
	grammar.PreUnary[Minus](g)
	grammar.PreUnary[Sqrt](g)
	for _, err := range []error{
		grammar.Binary[Power](g, 2, grammar.RightToLeft),
		grammar.Binary[Times](g, 4, grammar.LeftToRight),
		grammar.Binary[Divide](g, 4, grammar.LeftToRight),
		grammar.Binary[Modulo](g, 4, grammar.LeftToRight),
		grammar.Binary[Plus](g, 5, grammar.LeftToRight),
		grammar.Binary[Minus](g, 5, grammar.LeftToRight),
		grammar.Binary[Assign](g, 10, grammar.RightToLeft),
	} {
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func makeJumpTable() *eval.JumpTable {
	jt := eval.NewJumpTable("arith")
	numeric[Plus](jt, func(a, b float64) (float64, error) { return a + b, nil })
	numeric[Minus](jt, func(a, b float64) (float64, error) { return a - b, nil })
	numeric[Times](jt, func(a, b float64) (float64, error) { return a * b, nil })
	numeric[Divide](jt, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	})
	numeric[Modulo](jt, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(a, b), nil
	})
	numeric[Power](jt, func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
	prefix[Plus](jt, func(a float64) (float64, error) { return a, nil })
	prefix[Minus](jt, func(a float64) (float64, error) { return -a, nil })
	prefix[Sqrt](jt, func(a float64) (float64, error) {
		if a < 0 {
			return 0, ErrNegativeRoot
		}
		return math.Sqrt(a), nil
	})
	eval.BinaryCtx[Assign](jt, func(a Name, b float64, env *Env) (float64, error) {
		return b, env.Set(string(a), b)
	})
	eval.BinaryCtx[Assign](jt, func(a, b Name, env *Env) (float64, error) {
		v, err := env.value(b)
		if err != nil {
			return 0, err
		}
		return v, env.Set(string(a), v)
	})
	return jt
}

// numeric registers a binary operator for numbers and variables, in any
// combination.
func numeric[Op any](jt *eval.JumpTable, f func(a, b float64) (float64, error)) {
	eval.Binary[Op](jt, f)
	eval.BinaryCtx[Op](jt, func(a Name, b float64, env *Env) (float64, error) {
		x, err := env.value(a)
		if err != nil {
			return 0, err
		}
		return f(x, b)
	})
	eval.BinaryCtx[Op](jt, func(a float64, b Name, env *Env) (float64, error) {
		y, err := env.value(b)
		if err != nil {
			return 0, err
		}
		return f(a, y)
	})
	eval.BinaryCtx[Op](jt, func(a, b Name, env *Env) (float64, error) {
		x, err := env.value(a)
		if err != nil {
			return 0, err
		}
		y, err := env.value(b)
		if err != nil {
			return 0, err
		}
		return f(x, y)
	})
}

// prefix registers a pre-unary operator for numbers and variables.
func prefix[Op any](jt *eval.JumpTable, f func(a float64) (float64, error)) {
	eval.PreUnary[Op](jt, f)
	eval.PreUnaryCtx[Op](jt, func(a Name, env *Env) (float64, error) {
		x, err := env.value(a)
		if err != nil {
			return 0, err
		}
		return f(x)
	})
}

// --- API -------------------------------------------------------------------

// Compile compiles an expression. If withVariables is false, words in the
// input (other than 'sqrt') are lexical errors.
func Compile(expr string, withVariables bool) (*compiler.Program, error) {
	lang, err := setup()
	if err != nil {
		return nil, err
	}
	defs := lang.numbers
	if withVariables {
		defs = lang.variables
	}
	tokens, err := defs.Lex(expr)
	if err != nil {
		return nil, err
	}
	if tokens, err = rewriteCompound(tokens); err != nil {
		return nil, err
	}
	return compiler.Compile(tokens, lang.grammar)
}

// Run evaluates a compiled expression. env may be nil for programs without
// variables.
func Run(prog *compiler.Program, env *Env) (float64, error) {
	lang, err := setup()
	if err != nil {
		return 0, err
	}
	var ctx eval.Context
	if env != nil {
		ctx = env
	}
	r, err := eval.Evaluate(prog, lang.ops, ctx)
	if err != nil {
		return 0, err
	}
	if name, ok := node.As[Name](r); ok {
		return env.value(name)
	}
	f, ok := node.As[float64](r)
	if !ok {
		return 0, fmt.Errorf("calculator: unexpected result %s", r)
	}
	return f, nil
}

// Evaluate evaluates an expression without variables.
func Evaluate(expr string) (float64, error) {
	prog, err := Compile(expr, false)
	if err != nil {
		return 0, err
	}
	return Run(prog, nil)
}

// EvaluateIn evaluates an expression with variables from env. Assignments
// change env.
func EvaluateIn(expr string, env *Env) (float64, error) {
	prog, err := Compile(expr, true)
	if err != nil {
		return 0, err
	}
	return Run(prog, env)
}
