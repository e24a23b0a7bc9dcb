package compiler

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/grammar"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
	"github.com/npillmayer/schuko/gconf"
)

// --- Options ---------------------------------------------------------------

type config struct {
	maxDepth      int
	allowAdjacent bool
}

// Option configures a compilation.
type Option func(*config)

// WithMaxDepth restricts the nesting depth of groupings. A depth of 0 means
// unlimited nesting.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// AllowAdjacentOperands switches acceptance of two consecutive operands without
// an operator in between.
func AllowAdjacentOperands(b bool) Option {
	return func(c *config) {
		c.allowAdjacent = b
	}
}

func defaultConfig() config {
	return config{
		maxDepth:      gconf.GetInt("gexpr.max-group-depth"),
		allowAdjacent: gconf.GetBool("gexpr.allow-adjacent-operands"),
	}
}

// --- Compilation -----------------------------------------------------------

type state int8

const (
	expectPreUnary state = iota
	expectPostUnaryOrBinary
)

func (s state) String() string {
	if s == expectPreUnary {
		return "expect-pre-unary"
	}
	return "expect-post-unary-or-binary"
}

// pending is an operator waiting on the operator stack.
type pending struct {
	ct   CompiledToken
	prec grammar.Precedence // only for binary operators
}

// compilation holds the state of one call to Compile.
type compilation struct {
	g      *grammar.Grammar
	conf   config
	tokens []lexer.Token
	pos    int // next token to read
	code   []CompiledToken
}

// Compile re-orders a token list into a postfix program, driven by the operator
// definitions of grammar g. Errors are of type *gexpr.CompileError.
//
// An empty token list compiles to an empty program.
func Compile(tokens []lexer.Token, g *grammar.Grammar, opts ...Option) (*Program, error) {
	conf := defaultConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	c := &compilation{
		g:      g,
		conf:   conf,
		tokens: tokens,
		code:   make([]CompiledToken, 0, len(tokens)),
	}
	if err := c.compileGroup(nil, 0); err != nil {
		tracer().Errorf("%s: %v", g.Name(), err)
		return nil, err
	}
	prog := &Program{Grammar: g.Name(), Code: c.code}
	tracer().Debugf("%s: compiled %d tokens to [%s]", g.Name(), len(tokens), prog)
	return prog, nil
}

// CompileText lexes a text with token definitions defs and compiles the
// resulting tokens.
func CompileText(text string, defs *lexer.Definitions, g *grammar.Grammar, opts ...Option) (*Program, error) {
	tokens, err := defs.Lex(text)
	if err != nil {
		return nil, err
	}
	return Compile(tokens, g, opts...)
}

// compileGroup compiles tokens up to the closing token of a group. opener is the
// token which opened the group, or nil at top level.
func (c *compilation) compileGroup(opener *lexer.Token, depth int) error {
	if c.conf.maxDepth > 0 && depth > c.conf.maxDepth {
		return gexpr.NewCompileError(gexpr.ErrTooDeep, opener.Loc,
			"grouping %q nested deeper than %d levels", opener.Lexeme, c.conf.maxDepth)
	}
	var closer node.TypeID
	if opener != nil {
		closer, _ = c.g.Grouping(opener.TypeID())
	}
	ops := arraystack.New() // of pending
	st := expectPreUnary
	start := len(c.code)
	for c.pos < len(c.tokens) {
		tok := c.tokens[c.pos]
		c.pos++
		id := tok.TypeID()
		//tracer().Debugf("%s ← %s", st, tok)
		if c.g.IsGroupCloser(id) {
			if opener == nil || id != closer {
				return gexpr.NewCompileError(gexpr.ErrUnmatchedGroup, tok.Loc,
					"unmatched %q", tok.Lexeme)
			}
			if len(c.code) == start && ops.Empty() {
				return gexpr.NewCompileError(gexpr.ErrEmptyGroup, opener.Loc,
					"empty group %s…%s", opener.Lexeme, tok.Lexeme)
			}
			return c.endGroup(ops, st)
		}
		if _, isOpener := c.g.Grouping(id); isOpener {
			if st == expectPostUnaryOrBinary {
				if err := c.adjacent(tok); err != nil {
					return err
				}
			}
			if err := c.compileGroup(&tok, depth+1); err != nil {
				return err
			}
			st = expectPostUnaryOrBinary
			continue
		}
		var err error
		if st == expectPreUnary {
			st, err = c.expectingOperand(ops, tok)
		} else {
			st, err = c.expectingOperator(ops, tok)
		}
		if err != nil {
			return err
		}
	}
	if opener != nil {
		return gexpr.NewCompileError(gexpr.ErrUnterminatedGroup, opener.Loc,
			"group opened by %q at %s is not closed", opener.Lexeme, opener.Loc)
	}
	return c.endGroup(ops, st)
}

// expectingOperand handles a token in state expectPreUnary.
func (c *compilation) expectingOperand(ops *arraystack.Stack, tok lexer.Token) (state, error) {
	id := tok.TypeID()
	if c.g.IsPreUnary(id) {
		ops.Push(pending{ct: CompiledToken{Token: tok, Role: PreUnaryOperator}})
		return expectPreUnary, nil
	}
	if _, isBinary := c.g.Binary(id); isBinary {
		return expectPreUnary, gexpr.NewCompileError(gexpr.ErrNoLeftOperand, tok.Loc,
			"no left operand for operator %q", tok.Lexeme)
	}
	if c.g.IsPostUnary(id) {
		c.postUnary(ops, tok)
		return expectPostUnaryOrBinary, nil
	}
	c.emit(CompiledToken{Token: tok, Role: Operand})
	return expectPostUnaryOrBinary, nil
}

// expectingOperator handles a token in state expectPostUnaryOrBinary.
func (c *compilation) expectingOperator(ops *arraystack.Stack, tok lexer.Token) (state, error) {
	id := tok.TypeID()
	prec, isBinary := c.g.Binary(id)
	if c.g.IsPostUnary(id) && (!isBinary || !c.operandFollows()) {
		c.postUnary(ops, tok)
		return expectPostUnaryOrBinary, nil
	}
	if isBinary {
		c.flushBinary(ops, prec)
		ops.Push(pending{ct: CompiledToken{Token: tok, Role: BinaryOperator}, prec: prec})
		return expectPreUnary, nil
	}
	if err := c.adjacent(tok); err != nil {
		return expectPostUnaryOrBinary, err
	}
	if c.g.IsPreUnary(id) {
		ops.Push(pending{ct: CompiledToken{Token: tok, Role: PreUnaryOperator}})
		return expectPreUnary, nil
	}
	c.emit(CompiledToken{Token: tok, Role: Operand})
	return expectPostUnaryOrBinary, nil
}

// postUnary outputs a postfix operator. It applies to the operand just
// output, including the prefix operators pending for it.
func (c *compilation) postUnary(ops *arraystack.Stack, tok lexer.Token) {
	c.flushUnary(ops)
	c.emit(CompiledToken{Token: tok, Role: PostUnaryOperator})
}

// adjacent checks if a second operand may follow an operand.
func (c *compilation) adjacent(tok lexer.Token) error {
	if c.conf.allowAdjacent {
		tracer().Debugf("accepting adjacent operand %q", tok.Lexeme)
		return nil
	}
	return gexpr.NewCompileError(gexpr.ErrMissingOperator, tok.Loc,
		"missing operator before %q", tok.Lexeme)
}

// operandFollows is a predicate: may the next token start an operand?
// Used to resolve operators which are both post-unary and binary.
func (c *compilation) operandFollows() bool {
	if c.pos >= len(c.tokens) {
		return false
	}
	id := c.tokens[c.pos].TypeID()
	if c.g.IsGroupCloser(id) {
		return false
	}
	if _, isBinary := c.g.Binary(id); isBinary && !c.g.IsPreUnary(id) {
		return false
	}
	return !c.g.IsPostUnary(id) || c.g.IsPreUnary(id)
}

// flushUnary outputs the unary operators on top of the operator stack.
func (c *compilation) flushUnary(ops *arraystack.Stack) {
	for !ops.Empty() {
		top, _ := ops.Peek()
		if top.(pending).ct.Role == BinaryOperator {
			return
		}
		ops.Pop()
		c.emit(top.(pending).ct)
	}
}

// flushBinary outputs all operators which resolve before a binary operator of
// precedence prec.
func (c *compilation) flushBinary(ops *arraystack.Stack, prec grammar.Precedence) {
	for !ops.Empty() {
		top, _ := ops.Peek()
		p := top.(pending)
		if p.ct.Role == BinaryOperator {
			if prec.Assoc == grammar.LeftToRight && p.prec.Level > prec.Level {
				return
			}
			if prec.Assoc == grammar.RightToLeft && p.prec.Level >= prec.Level {
				return
			}
		}
		ops.Pop()
		c.emit(p.ct)
	}
}

// endGroup flushes the operator stack at the end of a group or of the input.
func (c *compilation) endGroup(ops *arraystack.Stack, st state) error {
	if st == expectPreUnary && !ops.Empty() {
		top, _ := ops.Peek()
		op := top.(pending).ct
		return gexpr.NewCompileError(gexpr.ErrMissingOperand, op.Loc,
			"operator %q requires an operand", op.Lexeme)
	}
	for !ops.Empty() {
		top, _ := ops.Pop()
		c.emit(top.(pending).ct)
	}
	return nil
}

func (c *compilation) emit(ct CompiledToken) {
	c.code = append(c.code, ct)
}
