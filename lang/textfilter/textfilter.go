package textfilter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/eval"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/lexer/lexmach"
	"github.com/npillmayer/gexpr/node"
)

// ErrNilItem is returned when a filter is applied to a nil item.
var ErrNilItem = errors.New("textfilter: nil item")

// Comparison is a comparison operator between a key and a value.
type Comparison int8

// Comparison operators.
const (
	Equal          Comparison = iota // = or ==
	NotEqual                         // !=
	Less                             // <
	LessOrEqual                      // <=
	Greater                          // >
	GreaterOrEqual                   // >=
	Partial                          // :
)

func (cmp Comparison) String() string {
	switch cmp {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Partial:
		return ":"
	}
	return "?"
}

// Item is something a filter is applied to.
type Item interface {
	// MatchesText is true if the item matches a single atom of a filter.
	MatchesText(text string) bool
	// Compare compares the item's value for key to value.
	Compare(key, value string, op Comparison) bool
}

// Text is an atom of a filter.
type Text string

// Token types for operators.
type (
	lparen     struct{}
	rparen     struct{}
	and        struct{}
	or         struct{}
	not        struct{}
	cmpEQ      struct{}
	cmpNE      struct{}
	cmpLT      struct{}
	cmpLE      struct{}
	cmpGT      struct{}
	cmpGE      struct{}
	cmpPartial struct{}
)

var comparisons = map[string]node.Node{
	"=":  node.New(cmpEQ{}),
	"==": node.New(cmpEQ{}),
	"!=": node.New(cmpNE{}),
	"<":  node.New(cmpLT{}),
	"<=": node.New(cmpLE{}),
	">":  node.New(cmpGT{}),
	">=": node.New(cmpGE{}),
	":":  node.New(cmpPartial{}),
}

const tokComparison = 1

// --- Lexing ----------------------------------------------------------------

// comparisonOperators creates a DFA recognizer for the comparison operators,
// choosing the longest match.
func comparisonOperators() (lexer.Recognizer, error) {
	literals := make([]string, 0, len(comparisons))
	tokenIds := make(map[string]int, len(comparisons))
	for lit := range comparisons {
		literals = append(literals, lit)
		tokenIds[lit] = tokComparison
	}
	sort.Strings(literals)
	lm, err := lexmach.NewLMAdapter(nil, literals, nil, tokenIds)
	if err != nil {
		return nil, err
	}
	return lm.Recognizer(func(id int, lexeme string) (node.Node, error) {
		return comparisons[lexeme], nil
	}), nil
}

// atom recognizes an unquoted atom: a run of characters other than white space,
// parentheses, quotes and the characters of comparison operators.
func atom(c *lexer.Consumer) error {
	tok, ok := c.Stream().ParseToken(func(r rune) lexer.ParseState {
		if unicode.IsSpace(r) || strings.ContainsRune(`()"=!<>:&|`, r) {
			return lexer.StopBefore
		}
		return lexer.Continue
	}, nil)
	if ok {
		c.Add(tok, node.New(Text(tok.Text())))
	}
	return nil
}

// Comparisons are wrapped in parentheses, so that prefix operators apply to
// a comparison as a whole, and operands are joined by AND where no operator
// is given.
func insertOperators(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens)+len(tokens)/2)
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if len(out) > 0 && endsOperand(out[len(out)-1]) && startsOperand(t) {
			out = append(out, lexer.Token{Node: node.New(and{}), Loc: t.Loc, Lexeme: "AND"})
		}
		if i+2 < len(tokens) && isAtom(t) && isComparison(tokens[i+1]) && isAtom(tokens[i+2]) {
			out = append(out, lexer.Token{Node: node.New(lparen{}), Loc: t.Loc, Lexeme: "("})
			out = append(out, tokens[i:i+3]...)
			out = append(out, lexer.Token{Node: node.New(rparen{}), Loc: tokens[i+2].Loc, Lexeme: ")"})
			i += 2
			continue
		}
		out = append(out, t)
	}
	return out
}

func isAtom(t lexer.Token) bool {
	return node.Is[Text](t.Node)
}

func isComparison(t lexer.Token) bool {
	for _, n := range comparisons {
		if n.TypeID() == t.TypeID() {
			return true
		}
	}
	return false
}

func endsOperand(t lexer.Token) bool {
	return isAtom(t) || node.Is[rparen](t.Node)
}

func startsOperand(t lexer.Token) bool {
	return isAtom(t) || node.Is[lparen](t.Node) || node.Is[not](t.Node)
}

// --- Language set-up -------------------------------------------------------

var language struct {
	once    sync.Once
	defs    *lexer.Definitions
	grammar *grammar.Grammar
	ops     *eval.JumpTable
	err     error
}

func setup() error {
	language.once.Do(func() {
		var cmp lexer.Recognizer
		if cmp, language.err = comparisonOperators(); language.err != nil {
			tracer().Errorf("cannot set up comparison operators: %v", language.err)
			return
		}
		language.defs = lexer.NewDefinitions("textfilter").SkipWhitespace(true).Define(
			lexer.Quoted('"', '\\', func(s string) Text { return Text(s) }),
			cmp,
			lexer.Symbol("(", lparen{}),
			lexer.Symbol(")", rparen{}),
			lexer.Symbol("&&", and{}),
			lexer.Symbol("||", or{}),
			lexer.Symbol("!", not{}),
			lexer.Symbol("-", not{}),
			lexer.Keyword("AND", false, and{}),
			lexer.Keyword("OR", false, or{}),
			lexer.Keyword("NOT", false, not{}),
			atom,
		)
		if language.grammar, language.err = makeGrammar(); language.err != nil {
			return
		}
		language.ops = makeJumpTable()
	})
	return language.err
}

func makeGrammar() (*grammar.Grammar, error) {
	g := grammar.New("textfilter")
	grammar.Grouping[lparen, rparen](g)
	grammar.PreUnary[not](g)
	for _, err := range []error{
		grammar.Binary[cmpEQ](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpNE](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpLT](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpLE](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpGT](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpGE](g, 1, grammar.LeftToRight),
		grammar.Binary[cmpPartial](g, 1, grammar.LeftToRight),
		grammar.Binary[and](g, 2, grammar.LeftToRight),
		grammar.Binary[or](g, 3, grammar.LeftToRight),
	} {
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func makeJumpTable() *eval.JumpTable {
	jt := eval.NewJumpTable("textfilter")
	logical[and](jt, func(a, b bool) bool { return a && b })
	logical[or](jt, func(a, b bool) bool { return a || b })
	eval.PreUnary[not](jt, func(a bool) (bool, error) { return !a, nil })
	eval.PreUnaryCtx[not](jt, func(a Text, item Item) (bool, error) {
		return !item.MatchesText(string(a)), nil
	})
	compare[cmpEQ](jt, Equal)
	compare[cmpNE](jt, NotEqual)
	compare[cmpLT](jt, Less)
	compare[cmpLE](jt, LessOrEqual)
	compare[cmpGT](jt, Greater)
	compare[cmpGE](jt, GreaterOrEqual)
	compare[cmpPartial](jt, Partial)
	return jt
}

// logical registers a boolean operator. Atoms are operands as well; they are
// true if the item matches them.
func logical[Op any](jt *eval.JumpTable, f func(a, b bool) bool) {
	eval.Binary[Op](jt, func(a, b bool) (bool, error) { return f(a, b), nil })
	eval.BinaryCtx[Op](jt, func(a Text, b bool, item Item) (bool, error) {
		return f(item.MatchesText(string(a)), b), nil
	})
	eval.BinaryCtx[Op](jt, func(a bool, b Text, item Item) (bool, error) {
		return f(a, item.MatchesText(string(b))), nil
	})
	eval.BinaryCtx[Op](jt, func(a, b Text, item Item) (bool, error) {
		return f(item.MatchesText(string(a)), item.MatchesText(string(b))), nil
	})
}

func compare[Op any](jt *eval.JumpTable, cmp Comparison) {
	eval.BinaryCtx[Op](jt, func(key, value Text, item Item) (bool, error) {
		return item.Compare(string(key), string(value), cmp), nil
	})
}

// --- Filters ---------------------------------------------------------------

// Filter is a compiled filter expression. Filters may be used by concurrent
// goroutines.
type Filter struct {
	source string
	prog   *compiler.Program
}

// Compile compiles a filter expression.
func Compile(expr string) (*Filter, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	tokens, err := language.defs.Lex(expr)
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(insertOperators(tokens), language.grammar)
	if err != nil {
		return nil, err
	}
	return &Filter{source: expr, prog: prog}, nil
}

func (f *Filter) String() string {
	return f.source
}

// Program returns the compiled form of the filter.
func (f *Filter) Program() *compiler.Program {
	return f.prog
}

// Matches applies the filter to an item. An empty filter matches every item.
func (f *Filter) Matches(item Item) (bool, error) {
	if item == nil {
		return false, ErrNilItem
	}
	if f.prog.IsEmpty() {
		return true, nil
	}
	r, err := eval.Evaluate(f.prog, language.ops, item)
	if err != nil {
		return false, err
	}
	switch v := r.Value().(type) {
	case bool:
		return v, nil
	case Text:
		return item.MatchesText(string(v)), nil
	}
	return false, fmt.Errorf("textfilter: unexpected result %s", r)
}

// Select returns the items matching the filter.
func (f *Filter) Select(items []Item) ([]Item, error) {
	var selected []Item
	for _, item := range items {
		ok, err := f.Matches(item)
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, item)
		}
	}
	return selected, nil
}

// Matches compiles a filter expression and applies it to an item.
func Matches(expr string, item Item) (bool, error) {
	f, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return f.Matches(item)
}
