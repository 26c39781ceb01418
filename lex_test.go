package tinyjs

import "testing"

// TestLexSingles tests that individual tokens have the correct kind and
// text.
func TestLexSingles(t *testing.T) {
	cases := map[string]struct {
		text string
		kind tokenKind
	}{
		"ident":           {"abcd", tkIdent},
		"ident-underscore": {"_foo", tkIdent},
		"keyword-var":     {"var", tkKeyword},
		"keyword-function": {"function", tkKeyword},
		"number-int":      {"1234", tkNumber},
		"number-float":    {"12.34", tkNumber},
		"number-exp":      {"1.2e9", tkNumber},
		"number-hex":      {"0xFF", tkNumber},
		"string-double":   {`"abcd"`, tkString},
		"string-single":   {`'abcd'`, tkString},
		"punct-arrow":     {"=>", tkPunct},
		"punct-eqeqeq":    {"===", tkPunct},
		"punct-plus":      {"+", tkPunct},
		"bad-char":        {"`", tkBad},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			lx := newLexer(c.text, "test.js", 1)
			tok := lx.next()
			if tok.Kind != c.kind {
				t.Errorf("%q lexed as wrong kind: wanted %v, got %v", c.text, c.kind, tok.Kind)
			}
		})
	}
}

// TestLexSequence tests that a short program lexes into the expected
// sequence of token kinds, skipping whitespace and comments.
func TestLexSequence(t *testing.T) {
	src := "var x = 1; // comment\nfunction f(a) { return a + x; }"
	lx := newLexer(src, "test.js", 1)
	var kinds []tokenKind
	for {
		tok := lx.next()
		if tok.Kind == tkEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []tokenKind{
		tkKeyword, tkIdent, tkPunct, tkNumber, tkPunct,
		tkKeyword, tkIdent, tkPunct, tkIdent, tkPunct, tkPunct,
		tkKeyword, tkIdent, tkPunct, tkIdent, tkPunct, tkPunct,
	}
	if len(kinds) != len(want) {
		t.Fatalf("wrong token count: wanted %d, got %d (%v)", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: wanted %v, got %v", i, want[i], kinds[i])
		}
	}
}

// TestLexASI tests that line-break-before state is tracked, the signal
// consumeSemicolon relies on for automatic semicolon insertion.
func TestLexASI(t *testing.T) {
	lx := newLexer("a\nb", "test.js", 1)
	first := lx.next()
	if first.LineBreakBefore {
		t.Errorf("first token should not report a line break before it")
	}
	second := lx.next()
	if !second.LineBreakBefore {
		t.Errorf("second token should report a line break before it")
	}
}
