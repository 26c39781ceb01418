package tinyjs

import "testing"

// TestBinaryPrecedence tests that multiplication binds tighter than
// addition and that parentheses override precedence.
func TestBinaryPrecedence(t *testing.T) {
	cases := map[string]string{
		"2 + 3 * 4":      "14",
		"(2 + 3) * 4":    "20",
		"2 * 3 + 4 * 5":  "26",
		"10 - 2 - 3":     "5",
		"2 + 2 == 4":     "true",
		"1 < 2 && 2 < 3": "true",
		"1 > 2 || 2 < 3": "true",
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			c := NewContext()
			got := evalString(t, c, src+";")
			if got != want {
				t.Errorf("%q = %q, want %q", src, got, want)
			}
		})
	}
}

// TestAssignmentRightAssociative tests that chained assignment evaluates
// right to left.
func TestAssignmentRightAssociative(t *testing.T) {
	c := NewContext()
	got := evalString(t, c, "var a, b; a = b = 5; a + b;")
	if got != "10" {
		t.Errorf("chained assignment = %q, want 10", got)
	}
}

// TestConditionalExpression tests the ternary operator.
func TestConditionalExpression(t *testing.T) {
	c := NewContext()
	got := evalString(t, c, "true ? 1 : 2;")
	if got != "1" {
		t.Errorf("ternary = %q, want 1", got)
	}
}

// TestLogicalShortCircuit tests that && does not evaluate its right operand
// when the left operand is falsy.
func TestLogicalShortCircuit(t *testing.T) {
	c := NewContext()
	got := evalString(t, c, "var called = false; function sideEffect() { called = true; return true; } false && sideEffect(); called;")
	if got != "false" {
		t.Errorf("&& evaluated its right operand despite a falsy left operand: called = %q", got)
	}
}

// TestUnaryOperators tests typeof, void, and logical negation.
func TestUnaryOperators(t *testing.T) {
	cases := map[string]string{
		"typeof 1":         "number",
		"typeof 'x'":       "string",
		"typeof undefined": "undefined",
		"typeof unbound":   "undefined",
		"void 0":           "undefined",
		"!true":            "false",
		"!!1":              "true",
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			c := NewContext()
			got := evalString(t, c, src+";")
			if got != want {
				t.Errorf("%q = %q, want %q", src, got, want)
			}
		})
	}
}
