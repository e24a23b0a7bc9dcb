package textfmt

import (
	"errors"
	"testing"

	"github.com/npillmayer/gexpr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfmt")
	defer teardown()
	//
	for _, x := range []struct {
		template string
		args     []interface{}
		result   string
	}{
		{"{0}, {1}", []interface{}{"a", "b"}, "a, b"},
		{"{1}{0}{1}", []interface{}{"a", "b"}, "bab"},
		{"no placeholders", nil, "no placeholders"},
		{"", nil, ""},
		{"{0}", []interface{}{42}, "42"},
		{"{0} and {2}", []interface{}{"a", "b"}, "a and {2}"},
		{"`{0} is {0}", []interface{}{"x"}, "{0} is x"},
		{"back``tick", nil, "back`tick"},
		{"open {0", []interface{}{"x"}, "open {0"},
		{"{} and {0}", []interface{}{"x"}, "{} and x"},
		{"{ 0 }", []interface{}{"x"}, "{ 0 }"},
		{"trailing `", nil, "trailing `"},
	} {
		r, err := Format(x.template, x.args...)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", x.template, err)
			continue
		}
		if r != x.result {
			t.Errorf("%q: expected %q, got %q", x.template, x.result, r)
		}
	}
}

func TestFormatNamed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfmt")
	defer teardown()
	//
	args := map[string]interface{}{"name": "Jo", "n": 3, "0": "zero"}
	r, err := FormatNamed("Dear {name}, you have {n} new messages. {0} {missing}", args)
	if err != nil {
		t.Fatal(err)
	}
	if r != "Dear Jo, you have 3 new messages. zero {missing}" {
		t.Errorf("unexpected result %q", r)
	}
}

func TestStrict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfmt")
	defer teardown()
	//
	r, err := FormatStrict("{0}, {1}", "a", "b")
	if err != nil || r != "a, b" {
		t.Errorf("expected 'a, b', got %q (%v)", r, err)
	}
	_, err = FormatStrict("{0} and {2}", "a", "b")
	var everr *gexpr.EvalError
	if !errors.As(err, &everr) || !errors.Is(err, ErrMissingArgument) {
		t.Errorf("expected missing argument to be an evaluation error, got %v", err)
	} else if everr.At.Span.From() != 8 {
		t.Errorf("expected error at placeholder {2} (offset 8), got %s", everr.At.Span)
	}
	_, err = FormatNamedStrict("Dear {name}", map[string]interface{}{})
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("expected missing named argument to fail, got %v", err)
	}
	_, err = FormatStrict("open {0", "x")
	var lexerr *gexpr.LexError
	if !errors.As(err, &lexerr) || lexerr.At.Span.From() != 5 {
		t.Errorf("expected unclosed brace to be a lex error at offset 5, got %v", err)
	}
}

func TestTemplateReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gexpr.textfmt")
	defer teardown()
	//
	tmpl, err := Compile("<{0}>")
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Program().String() != "< {0} $/1 ⌒ > ⌒" {
		t.Errorf("unexpected program %s", tmpl.Program())
	}
	done := make(chan string)
	for _, arg := range []string{"a", "b", "c"} {
		go func(arg string) {
			r, _ := tmpl.Format(arg)
			done <- r
		}(arg)
	}
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		seen[<-done] = true
	}
	if !seen["<a>"] || !seen["<b>"] || !seen["<c>"] {
		t.Errorf("expected results for a, b and c, have %v", seen)
	}
}
