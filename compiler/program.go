package compiler

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/gexpr/lexer"
)

// Role is the role a token plays in a compiled program.
type Role int8

const (
	Operand Role = iota
	PreUnaryOperator
	PostUnaryOperator
	BinaryOperator
	Benign // structural token, skipped by evaluation
)

func (r Role) String() string {
	switch r {
	case Operand:
		return "operand"
	case PreUnaryOperator:
		return "pre-unary"
	case PostUnaryOperator:
		return "post-unary"
	case BinaryOperator:
		return "binary"
	case Benign:
		return "benign"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// IsOperator is a predicate: is r one of the operator roles?
func (r Role) IsOperator() bool {
	return r == PreUnaryOperator || r == PostUnaryOperator || r == BinaryOperator
}

// Arity returns the number of operands an operator role consumes.
func (r Role) Arity() int {
	switch r {
	case PreUnaryOperator, PostUnaryOperator:
		return 1
	case BinaryOperator:
		return 2
	}
	return 0
}

// CompiledToken is a token together with its role in a program.
type CompiledToken struct {
	lexer.Token
	Role Role
}

func (ct CompiledToken) String() string {
	text := ct.Lexeme
	if text == "" {
		text = ct.Node.String()
	}
	if ct.Role == PreUnaryOperator || ct.Role == PostUnaryOperator {
		return text + "/1"
	}
	return text
}

// Program is a sequence of tokens in postfix order.
type Program struct {
	Grammar string          // name of the grammar the program has been compiled with
	Code    []CompiledToken // postfix code
}

// Len returns the number of instructions of a program.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Code)
}

// IsEmpty is a predicate: does p hold no code?
func (p *Program) IsEmpty() bool {
	return p.Len() == 0
}

// String renders a program in postfix notation. Unary operators are marked
// with their arity, e.g. "2 -/1 3 *".
func (p *Program) String() string {
	if p == nil {
		return "<nil>"
	}
	parts := make([]string, len(p.Code))
	for i, ct := range p.Code {
		parts[i] = ct.String()
	}
	return strings.Join(parts, " ")
}

// Fingerprint returns a hash over the code of a program. Compiling identical token
// lists with the same grammar results in identical fingerprints.
func (p *Program) Fingerprint() string {
	type instr struct {
		Role   int
		Type   string
		Lexeme string
		From   uint64
		To     uint64
	}
	code := make([]instr, p.Len())
	for i, ct := range p.Code {
		code[i] = instr{
			Role:   int(ct.Role),
			Type:   ct.TypeID().String(),
			Lexeme: ct.Lexeme,
			From:   ct.Span().From(),
			To:     ct.Span().To(),
		}
	}
	h, err := structhash.Hash(struct {
		Grammar string
		Code    []instr
	}{Grammar: p.Grammar, Code: code}, 1)
	if err != nil {
		tracer().Errorf("cannot hash program: %v", err)
		return ""
	}
	return h
}
