package tinyjs

import "testing"

// newTestContext returns a fresh Context with the standard library
// installed, for tests that exercise Array/String/Math/JSON builtins
// alongside the bare core.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext()
	c.InstallStandardLibrary()
	return c
}

// evalString runs source as a program and returns its string result,
// failing the test on any error.
func evalString(t *testing.T, c *Context, source string) string {
	t.Helper()
	s, err := c.Evaluate(source, "test.js", 1)
	if err != nil {
		t.Fatalf("evaluate %q: %v", source, err)
	}
	return s
}
