package gexpr

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the pipeline wraps exactly one of these,
// so clients may check for a kind with errors.Is.
var (
	ErrUnrecognizedToken = errors.New("unrecognized token")

	ErrNoLeftOperand     = errors.New("no left operand for operator")
	ErrUnterminatedGroup = errors.New("unterminated group")
	ErrUnmatchedGroup    = errors.New("unmatched closing group")
	ErrMissingOperand    = errors.New("operator requires an operand")
	ErrEmptyGroup        = errors.New("empty group")
	ErrMissingOperator   = errors.New("missing operator between operands")
	ErrTooDeep           = errors.New("maximum group depth exceeded")

	ErrNoOperator         = errors.New("no operator defined for operand types")
	ErrNotEnoughOperands  = errors.New("not enough operands")
	ErrInvalidExpression  = errors.New("invalid expression")
	ErrOperatorFailed     = errors.New("operator failed")
	ErrEvaluationCanceled = errors.New("evaluation canceled")
)

// LexError is returned if the input text cannot be split into tokens.
type LexError struct {
	Kind    error    // one of the error kinds of this package
	Msg     string   // human readable message
	At      Location // position of the offending input
	Context string   // input text following the error position
}

func (e *LexError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("lex error at %s: %s", e.At, e.Msg)
	}
	return fmt.Sprintf("lex error at %s: %s near %q", e.At, e.Msg, e.Context)
}

func (e *LexError) Unwrap() error {
	return e.Kind
}

// CompileError is returned if a token list does not form a valid expression
// for a grammar.
type CompileError struct {
	Kind error
	Msg  string
	At   Location
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.At, e.Msg)
}

func (e *CompileError) Unwrap() error {
	return e.Kind
}

// EvalError is returned if a compiled program cannot be evaluated. Err is the
// error returned by an operator function, if any.
type EvalError struct {
	Kind error
	Msg  string
	At   Location
	Err  error
}

func (e *EvalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation error at %s: %s: %v", e.At, e.Msg, e.Err)
	}
	return fmt.Sprintf("evaluation error at %s: %s", e.At, e.Msg)
}

// Is matches both the error kind and the error of an operator function.
func (e *EvalError) Is(target error) bool {
	return target == e.Kind
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// --- Constructors ----------------------------------------------------------

// NewLexError creates a LexError of a given kind.
func NewLexError(kind error, at Location, context string, format string, args ...interface{}) *LexError {
	return &LexError{
		Kind:    kind,
		Msg:     fmt.Sprintf(format, args...),
		At:      at,
		Context: context,
	}
}

// NewCompileError creates a CompileError of a given kind.
func NewCompileError(kind error, at Location, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		At:   at,
	}
}

// NewEvalError creates an EvalError of a given kind. cause may be nil.
func NewEvalError(kind error, at Location, cause error, format string, args ...interface{}) *EvalError {
	return &EvalError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		At:   at,
		Err:  cause,
	}
}
