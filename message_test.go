package tinyjs

import "testing"

// TestNodeStringLiteral tests that Tokenize produces a program whose only
// statement is the expected expression-statement node.
func TestNodeStringLiteral(t *testing.T) {
	prog, err := Tokenize(`"hello";`, "test.js", 1)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if prog.Kind != NodeProgram {
		t.Fatalf("root node has wrong kind: %v", prog.Kind)
	}
	if len(prog.List) != 1 {
		t.Fatalf("wanted 1 statement, got %d", len(prog.List))
	}
	stmt := prog.List[0]
	if stmt.Kind != NodeExprStmt {
		t.Fatalf("statement has wrong kind: %v", stmt.Kind)
	}
	lit := stmt.Left
	if lit.Kind != NodeLiteral || lit.Str != "hello" {
		t.Fatalf("wrong literal: %+v", lit)
	}
}

// TestForwarderHoistsVar tests that a var declared inside a nested block is
// hoisted to the enclosing function's forwarder, not the block's own.
func TestForwarderHoistsVar(t *testing.T) {
	prog, err := Tokenize(`function f() { if (true) { var x = 1; } return x; }`, "test.js", 1)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	fnDecl := prog.List[0]
	if fnDecl.Kind != NodeFunctionDecl {
		t.Fatalf("wanted function declaration, got %v", fnDecl.Kind)
	}
	fw := fnDecl.Function.Forwarder
	if fw == nil {
		t.Fatal("function payload has no forwarder")
	}
	found := false
	for _, name := range fw.VarNames {
		if name == "x" {
			found = true
		}
	}
	if !found {
		t.Errorf("var x was not hoisted to the function's forwarder: %v", fw.VarNames)
	}
}

// TestForwarderTracksLet tests that let bindings are recorded separately
// from hoisted vars.
func TestForwarderTracksLet(t *testing.T) {
	prog, err := Tokenize(`{ let y = 2; }`, "test.js", 1)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	block := prog.List[0]
	if block.Kind != NodeBlock {
		t.Fatalf("wanted block, got %v", block.Kind)
	}
	fw := block.Forwarder
	if fw == nil || len(fw.LetNames) != 1 || fw.LetNames[0] != "y" {
		t.Fatalf("let y not tracked correctly: %+v", fw)
	}
}
