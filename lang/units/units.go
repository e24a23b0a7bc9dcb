package units

import (
	"fmt"
	"sync"

	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/eval"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
)

// Token types of the units language.
type (
	LParen struct{}
	RParen struct{}
	Plus   struct{}
	Minus  struct{}
	Times  struct{}
	Divide struct{}
	In     struct{}
)

// Converter evaluates expressions with quantities, using a unit table.
// A converter may be used by concurrent goroutines.
type Converter struct {
	table *Table
	defs  *lexer.Definitions
}

// NewConverter creates a converter for a unit table.
func NewConverter(table *Table) *Converter {
	return &Converter{
		table: table,
		defs:  definitions(table),
	}
}

// Table returns the unit table of the converter.
func (conv *Converter) Table() *Table {
	return conv.table
}

// definitions creates the lexer for a unit table. Quantities are recognized
// before the keyword 'in', which is recognized before bare unit symbols.
func definitions(table *Table) *lexer.Definitions {
	defs := lexer.NewDefinitions("units").SkipWhitespace(true)
	defs.Define(quantity(table), lexer.Keyword("in", true, In{}))
	for _, sym := range table.symbols {
		defs.Define(lexer.Keyword(sym, true, table.units[sym]))
	}
	return defs.Define(
		lexer.Symbol("(", LParen{}),
		lexer.Symbol(")", RParen{}),
		lexer.Symbol("+", Plus{}),
		lexer.Symbol("-", Minus{}),
		lexer.Symbol("*", Times{}),
		lexer.Symbol("/", Divide{}),
	)
}

// quantity recognizes a number, optionally followed by a unit symbol. The unit
// must be attached to the number; "5km" is a quantity, "5 km" is not.
func quantity(table *Table) lexer.Recognizer {
	return func(c *lexer.Consumer) error {
		ts := c.Stream()
		num, v, ok := lexer.ParseNumber(ts, nil)
		if !ok {
			return nil
		}
		for _, sym := range table.symbols { // longest match wins
			acc := num
			if _, ok := ts.ParseLiteral(sym, true, &acc); !ok {
				continue
			}
			if r, ok := ts.Peek(len([]rune(acc.Text()))); ok && lexer.IsWordRune(r) {
				continue
			}
			c.Add(acc, node.New(Quantity{Value: v, Unit: table.units[sym]}))
			return nil
		}
		c.Add(num, node.New(Scalar(v)))
		return nil
	}
}

// --- Grammar and operators ---------------------------------------------------

var shared struct {
	once    sync.Once
	grammar *grammar.Grammar
	ops     *eval.JumpTable
	err     error
}

func setup() (*grammar.Grammar, *eval.JumpTable, error) {
	shared.once.Do(func() {
		shared.grammar, shared.err = makeGrammar()
		shared.ops = makeJumpTable()
		if shared.err != nil {
			tracer().Errorf("cannot set up units grammar: %v", shared.err)
		}
	})
	return shared.grammar, shared.ops, shared.err
}

func makeGrammar() (*grammar.Grammar, error) {
	g := grammar.New("units")
	grammar.Grouping[LParen, RParen](g)
	grammar.PreUnary[Minus](g)
	for _, err := range []error{
		grammar.Binary[Times](g, 4, grammar.LeftToRight),
		grammar.Binary[Divide](g, 4, grammar.LeftToRight),
		grammar.Binary[Plus](g, 5, grammar.LeftToRight),
		grammar.Binary[Minus](g, 5, grammar.LeftToRight),
		grammar.Binary[In](g, 6, grammar.LeftToRight),
	} {
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func makeJumpTable() *eval.JumpTable {
	jt := eval.NewJumpTable("units")
	eval.Binary[Plus](jt, Quantity.Add)
	eval.Binary[Minus](jt, Quantity.Sub)
	eval.Binary[Times](jt, Quantity.Mul)
	eval.Binary[Divide](jt, Quantity.Div)
	eval.Binary[In](jt, Quantity.In)
	eval.PreUnary[Minus](jt, func(q Quantity) (Quantity, error) {
		return Quantity{Value: -q.Value, Unit: q.Unit}, nil
	})
	return jt
}

// --- API -------------------------------------------------------------------

// Compile compiles an expression.
func (conv *Converter) Compile(expr string) (*compiler.Program, error) {
	g, _, err := setup()
	if err != nil {
		return nil, err
	}
	return compiler.CompileText(expr, conv.defs, g)
}

// Evaluate evaluates an expression. Errors of operators, e.g. adding a mass to
// a distance, are returned as *gexpr.EvalError.
func (conv *Converter) Evaluate(expr string) (Quantity, error) {
	prog, err := conv.Compile(expr)
	if err != nil {
		return Quantity{}, err
	}
	_, ops, err := setup()
	if err != nil {
		return Quantity{}, err
	}
	r, err := eval.Evaluate(prog, ops, nil)
	if err != nil {
		return Quantity{}, err
	}
	q, ok := node.As[Quantity](r)
	if !ok {
		return Quantity{}, fmt.Errorf("units: expression %q does not denote a quantity", expr)
	}
	return q, nil
}

// Evaluate evaluates an expression using the built-in unit table.
func Evaluate(expr string) (Quantity, error) {
	return defaultConverter().Evaluate(expr)
}

var builtinConverter struct {
	once sync.Once
	conv *Converter
}

func defaultConverter() *Converter {
	builtinConverter.once.Do(func() {
		builtinConverter.conv = NewConverter(DefaultTable())
	})
	return builtinConverter.conv
}
