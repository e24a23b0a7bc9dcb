package arith

import (
	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
)

// rewriteCompound replaces compound assignments
//
//    x op= rest  ⇒  x = x op ( rest )
//
// where rest extends to the end of the enclosing group. Synthetic tokens are
// located at the compound operator.
func rewriteCompound(tokens []lexer.Token) ([]lexer.Token, error) {
	var out []lexer.Token
	for i := 0; i < len(tokens); i++ {
		c, ok := node.As[compoundAssign](tokens[i].Node)
		if !ok {
			out = append(out, tokens[i])
			continue
		}
		at := tokens[i].Loc
		if len(out) == 0 || !node.Is[Name](out[len(out)-1].Node) {
			return nil, gexpr.NewCompileError(gexpr.ErrNoLeftOperand, at,
				"assignment %q needs a variable", tokens[i].Lexeme)
		}
		target := out[len(out)-1]
		end := endOfGroup(tokens, i+1)
		rest, err := rewriteCompound(tokens[i+1 : end])
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return nil, gexpr.NewCompileError(gexpr.ErrMissingOperand, at,
				"operator %q requires an operand", tokens[i].Lexeme)
		}
		out = append(out,
			synthetic(node.New(Assign{}), "=", at),
			target,
			synthetic(c.op, c.lexeme, at),
			synthetic(node.New(LParen{}), "(", at))
		out = append(out, rest...)
		out = append(out, synthetic(node.New(RParen{}), ")", at))
		tracer().Debugf("rewrote %q at %s", tokens[i].Lexeme, at)
		i = end - 1
	}
	return out, nil
}

// endOfGroup finds the index of the closing parenthesis of the group tokens[start]
// is in, or len(tokens).
func endOfGroup(tokens []lexer.Token, start int) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch {
		case node.Is[LParen](tokens[i].Node):
			depth++
		case node.Is[RParen](tokens[i].Node):
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return len(tokens)
}

func synthetic(n node.Node, lexeme string, at gexpr.Location) lexer.Token {
	return lexer.Token{Node: n, Loc: at, Lexeme: lexeme}
}
