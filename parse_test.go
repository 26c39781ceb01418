package tinyjs

import "testing"

// TestTokenizeCallArgs tests that Tokenize records the correct number of
// call arguments for a range of call expressions.
func TestTokenizeCallArgs(t *testing.T) {
	cases := map[string]struct {
		text string
		n    int
	}{
		"none":       {"f();", 0},
		"one":        {"f(x);", 1},
		"two":        {"f(x, y);", 2},
		"nested":     {"f(g(x));", 1},
		"trailing":   {"f(x, y, z,);", 3},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			prog, err := Tokenize(c.text, "test.js", 1)
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			call := prog.List[0].Left
			if call.Kind != NodeCall {
				t.Fatalf("wanted a call expression, got %v", call.Kind)
			}
			if len(call.List) != c.n {
				t.Errorf("wanted %d args, got %d", c.n, len(call.List))
			}
		})
	}
}

// TestASISemicolon tests that automatic semicolon insertion allows
// statements to omit their trailing semicolon across a line break.
func TestASISemicolon(t *testing.T) {
	c := NewContext()
	got := evalString(t, c, "var x = 1\nvar y = 2\nx + y;")
	if got != "3" {
		t.Errorf("ASI-joined program = %q, want 3", got)
	}
}

// TestSyntaxErrorReportsPosition tests that a parse failure surfaces a
// non-nil error, carrying the offending token's line and column, rather
// than panicking.
func TestSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Tokenize("var = ;", "test.js", 1)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	ce, ok := err.(*compileError)
	if !ok || ce.Line != 1 || ce.Col != 5 {
		t.Errorf("syntax error = %v, want one at line 1, column 5", err)
	}
}

// TestForLoopSum tests a complete for-loop program, exercising the parser
// and evaluator together end to end.
func TestForLoopSum(t *testing.T) {
	c := NewContext()
	src := `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		sum;
	`
	got := evalString(t, c, src)
	if got != "10" {
		t.Errorf("for-loop sum = %q, want 10", got)
	}
}

// TestNestedLoopUnlabeledContinue tests that an unlabeled continue inside a
// nested loop only advances the inner loop, leaving the outer loop's own
// iteration count untouched.
func TestNestedLoopUnlabeledContinue(t *testing.T) {
	c := NewContext()
	src := `
		var outerRuns = 0;
		var innerSum = 0;
		for (var i = 0; i < 3; i = i + 1) {
			outerRuns = outerRuns + 1;
			for (var j = 0; j < 3; j = j + 1) {
				if (j == 1) {
					continue;
				}
				innerSum = innerSum + 1;
			}
		}
		outerRuns + "," + innerSum;
	`
	got := evalString(t, c, src)
	if got != "3,6" {
		t.Errorf("nested unlabeled continue = %q, want 3,6", got)
	}
}

// TestLabeledContinueResumesOuterLoop tests that `continue outer;` from
// within a nested inner loop resumes the outer loop's next iteration rather
// than terminating it.
func TestLabeledContinueResumesOuterLoop(t *testing.T) {
	c := NewContext()
	src := `
		var outerRuns = 0;
		var innerTotal = 0;
		outer: for (var i = 0; i < 3; i = i + 1) {
			outerRuns = outerRuns + 1;
			for (var j = 0; j < 3; j = j + 1) {
				if (j == 1) {
					continue outer;
				}
				innerTotal = innerTotal + 1;
			}
		}
		outerRuns + "," + innerTotal;
	`
	got := evalString(t, c, src)
	if got != "3,3" {
		t.Errorf("labeled continue outer = %q, want 3,3", got)
	}
}

// TestLabeledBreakStopsOuterLoop tests that `break outer;` from within a
// nested inner loop terminates the outer loop entirely.
func TestLabeledBreakStopsOuterLoop(t *testing.T) {
	c := NewContext()
	src := `
		var outerRuns = 0;
		outer: for (var i = 0; i < 3; i = i + 1) {
			outerRuns = outerRuns + 1;
			for (var j = 0; j < 3; j = j + 1) {
				if (j == 1) {
					break outer;
				}
			}
		}
		outerRuns;
	`
	got := evalString(t, c, src)
	if got != "1" {
		t.Errorf("labeled break outer = %q, want 1", got)
	}
}

// TestTryCatchFinally tests that a thrown error is caught and that finally
// always runs.
func TestTryCatchFinally(t *testing.T) {
	c := NewContext()
	src := `
		var log = "";
		try {
			throw "boom";
		} catch (e) {
			log = log + "caught:" + e;
		} finally {
			log = log + ":done";
		}
		log;
	`
	got := evalString(t, c, src)
	if got != "caught:boom:done" {
		t.Errorf("try/catch/finally = %q, want caught:boom:done", got)
	}
}
