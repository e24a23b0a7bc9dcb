package lexmach

import (
	"strconv"
	"testing"

	"github.com/npillmayer/gexpr/lexer"
	"github.com/npillmayer/gexpr/node"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello World",
	`x="mystring"`,
	"nil * (a-22)",
}

var tokenCounts = []int{1, 3, 2, 3, 7}

type ident string
type literal string
type keyword string

func convert(id int, lexeme string) (node.Node, error) {
	switch id {
	case tokenIds["NUM"]:
		n, err := strconv.Atoi(lexeme)
		return node.New(n), err
	case tokenIds["ID"]:
		return node.New(ident(lexeme)), nil
	case tokenIds["STRING"]:
		return node.New(lexeme[1 : len(lexeme)-1]), nil
	case tokenIds["nil"]:
		return node.New(keyword(lexeme)), nil
	}
	return node.New(literal(lexeme)), nil
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.lexer")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	defs := lexer.NewDefinitions("lm").SkipWhitespace(true).Define(LM.Recognizer(convert))
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		tokens, err := defs.Lex(input)
		if err != nil {
			t.Error(err)
			continue
		}
		for _, token := range tokens {
			t.Logf(" %4d | %15s | @%5d", token.TypeID(), token.Lexeme, token.Span().From())
		}
		if len(tokens) != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], len(tokens))
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.lexer")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z])+`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	defs := lexer.NewDefinitions("lm").SkipWhitespace(true).Define(LM.Recognizer(convert))
	tokens, err := defs.Lex("nil nilly 42")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if !node.Is[keyword](tokens[0].Node) {
		t.Errorf("expected 'nil' to be a keyword, is %s", tokens[0].TypeID())
	}
	if id, _ := node.As[ident](tokens[1].Node); id != "nilly" {
		t.Errorf("expected longest match 'nilly' to be an identifier, is %v", tokens[1].Node)
	}
	if n, _ := node.As[int](tokens[2].Node); n != 42 {
		t.Errorf("expected 42, is %v", tokens[2].Node)
	}
	if tokens[2].Loc.Column != 10 {
		t.Errorf("expected '42' at column 10, is %d", tokens[2].Loc.Column)
	}
	if _, err = defs.Lex("42 ?"); err == nil {
		t.Errorf("expected '?' to be unrecognized")
	}
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"(",
		")",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
	}
	tokens = []string{
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	for i, tok := range tokens {
		tokenIds[tok] = i + 10
	}
}
