package textfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/eval"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
)

// ErrMissingArgument is reported by strict templates for placeholders without
// an argument.
var ErrMissingArgument = errors.New("missing argument")

// Escape is the escape character of templates.
const Escape = '`'

// Literal is a run of literal text.
type Literal string

// Placeholder is a reference to an argument. Index is -1 for named placeholders.
type Placeholder struct {
	Name  string
	Index int
}

func (p Placeholder) String() string {
	return "{" + p.Name + "}"
}

func makePlaceholder(name string) Placeholder {
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && name[0] != '+' {
		return Placeholder{Name: name, Index: i}
	}
	return Placeholder{Name: name, Index: -1}
}

// Operator token types. Both are never written in a template but inserted
// after lexing.
type (
	Concat     struct{}
	Substitute struct{}
)

// --- Lexing ----------------------------------------------------------------

// literalRun recognizes literal text up to the next unescaped opening brace.
func literalRun(c *lexer.Consumer) error {
	var b strings.Builder
	escaped := false
	tok, ok := c.Stream().ParseToken(func(r rune) lexer.ParseState {
		switch {
		case escaped:
			escaped = false
		case r == Escape:
			escaped = true
			return lexer.Continue
		case r == '{':
			return lexer.StopBefore
		}
		b.WriteRune(r)
		return lexer.Continue
	}, nil)
	if !ok {
		return nil
	}
	if escaped { // escape character at end of input
		b.WriteRune(Escape)
	}
	c.Add(tok, node.New(Literal(b.String())))
	return nil
}

// placeholder recognizes "{name}". A malformed placeholder is a lexical error
// for strict templates. Lenient templates take its opening brace literally.
func placeholder(strict bool) lexer.Recognizer {
	return func(c *lexer.Consumer) error {
		ts := c.Stream()
		open, ok := ts.ParseLiteral("{", true, nil)
		if !ok {
			return nil
		}
		acc := open
		if name, ok := ts.ParseToken(word, &acc); ok {
			if _, closed := ts.ParseLiteral("}", true, &acc); closed {
				c.Add(acc, node.New(makePlaceholder(name.Text())))
				return nil
			}
		}
		if strict {
			return gexpr.NewLexError(gexpr.ErrUnrecognizedToken, open.Location(), ts.ErrorContext(),
				"malformed placeholder")
		}
		tracer().Debugf("malformed placeholder at %s taken literally", open.Location())
		c.Add(open, node.New(Literal("{")))
		return nil
	}
}

func word(r rune) lexer.ParseState {
	if lexer.IsWordRune(r) {
		return lexer.Continue
	}
	return lexer.StopBefore
}

// insertOperators joins adjacent parts with Concat and wraps placeholders
// with Substitute.
func insertOperators(tokens []lexer.Token) []lexer.Token {
	concat, subst := node.New(Concat{}), node.New(Substitute{})
	out := make([]lexer.Token, 0, 3*len(tokens))
	for i, t := range tokens {
		if i > 0 {
			out = append(out, lexer.Token{Node: concat, Loc: t.Loc, Lexeme: "⌒"})
		}
		if node.Is[Placeholder](t.Node) {
			out = append(out, lexer.Token{Node: subst, Loc: t.Loc, Lexeme: "$"})
		}
		out = append(out, t)
	}
	return out
}

// --- Language set-up -------------------------------------------------------

var language struct {
	once    sync.Once
	lenient *lexer.Definitions
	strict  *lexer.Definitions
	grammar *grammar.Grammar
	ops     *eval.JumpTable
	err     error
}

func setup() error {
	language.once.Do(func() {
		language.lenient = lexer.NewDefinitions("textfmt").Define(placeholder(false), literalRun)
		language.strict = lexer.NewDefinitions("textfmt-strict").Define(placeholder(true), literalRun)
		g := grammar.New("textfmt")
		grammar.PreUnary[Substitute](g)
		if language.err = grammar.Binary[Concat](g, 1, grammar.LeftToRight); language.err != nil {
			return
		}
		language.grammar = g
		jt := eval.NewJumpTable("textfmt")
		eval.Binary[Concat](jt, func(a, b string) (string, error) { return a + b, nil })
		eval.Binary[Concat](jt, func(a string, b Literal) (string, error) { return a + string(b), nil })
		eval.Binary[Concat](jt, func(a Literal, b string) (string, error) { return string(a) + b, nil })
		eval.Binary[Concat](jt, func(a, b Literal) (string, error) { return string(a) + string(b), nil })
		eval.PreUnaryCtx[Substitute](jt, func(p Placeholder, args *arguments) (string, error) {
			return args.substitute(p)
		})
		language.ops = jt
	})
	return language.err
}

// --- Templates -------------------------------------------------------------

// Template is a compiled template. Templates may be used by concurrent
// goroutines.
type Template struct {
	source string
	strict bool
	prog   *compiler.Program
}

// Compile compiles a lenient template.
func Compile(template string) (*Template, error) {
	return compile(template, false)
}

// CompileStrict compiles a strict template.
func CompileStrict(template string) (*Template, error) {
	return compile(template, true)
}

func compile(template string, strict bool) (*Template, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	defs := language.lenient
	if strict {
		defs = language.strict
	}
	tokens, err := defs.Lex(template)
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(insertOperators(tokens), language.grammar)
	if err != nil {
		return nil, err
	}
	return &Template{source: template, strict: strict, prog: prog}, nil
}

// Program returns the compiled form of the template.
func (t *Template) Program() *compiler.Program {
	return t.prog
}

func (t *Template) String() string {
	return t.source
}

// Format replaces placeholders by positional arguments.
func (t *Template) Format(args ...interface{}) (string, error) {
	return t.run(&arguments{positional: args, strict: t.strict})
}

// FormatNamed replaces placeholders by named arguments.
func (t *Template) FormatNamed(args map[string]interface{}) (string, error) {
	return t.run(&arguments{named: args, strict: t.strict})
}

func (t *Template) run(args *arguments) (string, error) {
	if t.prog.IsEmpty() {
		return "", nil
	}
	r, err := eval.Evaluate(t.prog, language.ops, args)
	if err != nil {
		return "", err
	}
	switch v := r.Value().(type) {
	case string:
		return v, nil
	case Literal:
		return string(v), nil
	}
	return "", fmt.Errorf("textfmt: unexpected result %s", r)
}

// arguments is the evaluation context of templates.
type arguments struct {
	positional []interface{}
	named      map[string]interface{}
	strict     bool
}

func (args *arguments) substitute(p Placeholder) (string, error) {
	var v interface{}
	var ok bool
	if p.Index >= 0 && args.named == nil {
		if ok = p.Index < len(args.positional); ok {
			v = args.positional[p.Index]
		}
	} else {
		v, ok = args.named[p.Name]
	}
	if !ok {
		if args.strict {
			return "", fmt.Errorf("%w: %s", ErrMissingArgument, p)
		}
		return p.String(), nil
	}
	return fmt.Sprint(v), nil
}

// --- Convenience functions -------------------------------------------------

// Format formats a lenient template with positional arguments.
func Format(template string, args ...interface{}) (string, error) {
	t, err := Compile(template)
	if err != nil {
		return "", err
	}
	return t.Format(args...)
}

// FormatNamed formats a lenient template with named arguments.
func FormatNamed(template string, args map[string]interface{}) (string, error) {
	t, err := Compile(template)
	if err != nil {
		return "", err
	}
	return t.FormatNamed(args)
}

// FormatStrict formats a strict template with positional arguments.
func FormatStrict(template string, args ...interface{}) (string, error) {
	t, err := CompileStrict(template)
	if err != nil {
		return "", err
	}
	return t.Format(args...)
}

// FormatNamedStrict formats a strict template with named arguments.
func FormatNamedStrict(template string, args map[string]interface{}) (string, error) {
	t, err := CompileStrict(template)
	if err != nil {
		return "", err
	}
	return t.FormatNamed(args)
}
