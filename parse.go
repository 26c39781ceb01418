package tinyjs

/*
This file turns a token stream into the preprocessed Node tree: declaration
hoisting, let scoping, redefinition checks, destructuring, object/array
literal normalisation, and block markers all happen here, so the evaluator
in control.go/block.go/call.go never has to re-derive structure. If you're
looking for operator precedence, check optable.go.
*/

import (
	"strconv"
)

// parser turns a lexer's raw token stream into a Node tree. It holds one
// token of lookahead, matching the reference design's single-token-ahead
// pre-parser.
type parser struct {
	lx   *lexer
	file string
	tok  rawToken
	err  *compileError

	// labelStack tracks enclosing statement labels so break/continue with a
	// label can be validated against it; "__loop__"-prefixed synthetic
	// labels mark anonymous loops so unlabeled break/continue always finds
	// an innermost target.
	labelStack []string
}

// Tokenize lexes and parses source into a program Node, or returns a
// *compileError (always wrapped as a plain error so callers can type-assert
// it back out when they want structured Kind/File/Line/Col access).
func Tokenize(source, file string, startLine int) (*Node, error) {
	p := &parser{lx: newLexer(source, file, startLine), file: file}
	p.advance()
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	t := p.lx.next()
	if t.Kind == tkBad {
		p.err = t.Err
		return
	}
	p.tok = t
}

func (p *parser) failf(format string, args ...any) {
	if p.err == nil {
		p.err = newCompileError(SyntaxError, p.file, p.tok.Line, p.tok.Col, format, args...)
	}
}

func (p *parser) atEOF() bool { return p.tok.Kind == tkEOF }

func (p *parser) isPunct(s string) bool { return p.tok.Kind == tkPunct && p.tok.Text == s }
func (p *parser) isKeyword(s string) bool { return p.tok.Kind == tkKeyword && p.tok.Text == s }

func (p *parser) expectPunct(s string) {
	if !p.isPunct(s) {
		p.failf("expected %q, found %q", s, p.tok.Text)
		return
	}
	p.advance()
}

// consumeSemicolon implements automatic semicolon insertion: an explicit
// ';' is consumed; otherwise a line break before the next token, a '}', or
// EOF all terminate the statement silently.
func (p *parser) consumeSemicolon() {
	if p.isPunct(";") {
		p.advance()
		return
	}
	if p.isPunct("}") || p.atEOF() || p.tok.LineBreakBefore {
		return
	}
	p.failf("expected ; or newline, found %q", p.tok.Text)
}

// parseProgram parses the whole token stream as a program body, hoisting
// var/function declarations into a program-level forwarder.
func (p *parser) parseProgram() *Node {
	prog := &Node{Kind: NodeProgram}
	hoist := newHoister()
	for !p.atEOF() && p.err == nil {
		stmt := p.parseStatement(hoist)
		if stmt != nil {
			prog.List = append(prog.List, stmt)
		}
	}
	prog.Forwarder = hoist.forwarder()
	return prog
}

// hoister accumulates the var/let/function names declared directly inside
// one hoisting scope (function body or program), checking for redefinition
// as it goes: a let/const name declared again in the same scope (with var,
// let, const or function), or a var/function name later declared with
// let/const, is a SyntaxError. Repeating a var or function declaration of
// the same name is accepted without error.
type hoister struct {
	vars  map[string]bool
	lets  map[string]bool
	funcs map[string]*FunctionPayload
	order []string
}

func newHoister() *hoister {
	return &hoister{vars: map[string]bool{}, lets: map[string]bool{}, funcs: map[string]*FunctionPayload{}}
}

func (h *hoister) declareVar(p *parser, name string) {
	if h.lets[name] {
		p.failf("identifier %q has already been declared", name)
		return
	}
	if !h.vars[name] {
		h.vars[name] = true
		h.order = append(h.order, name)
	}
}

func (h *hoister) declareLet(p *parser, name string) {
	if h.lets[name] || h.vars[name] {
		p.failf("identifier %q has already been declared", name)
		return
	}
	h.lets[name] = true
	h.order = append(h.order, name)
}

func (h *hoister) declareFunction(p *parser, name string, fn *FunctionPayload) {
	if h.lets[name] {
		p.failf("identifier %q has already been declared", name)
		return
	}
	h.vars[name] = true
	h.funcs[name] = fn
}

func (h *hoister) forwarder() *ForwarderPayload {
	fw := newForwarder()
	for _, name := range h.order {
		if h.lets[name] {
			fw.LetNames = append(fw.LetNames, name)
		} else if _, isFn := h.funcs[name]; !isFn {
			fw.VarNames = append(fw.VarNames, name)
		}
	}
	for name, fn := range h.funcs {
		fw.Functions[name] = fn
	}
	if fw.empty() {
		return nil
	}
	return fw
}

// parseStatement parses one statement, registering any var/let/function
// declarations it introduces into hoist.
func (p *parser) parseStatement(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	switch {
	case p.isPunct("{"):
		return p.parseBlock(hoist)
	case p.isPunct(";"):
		p.advance()
		return &Node{Kind: NodeEmpty, Line: line, Col: col}
	case p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const"):
		return p.parseVarStatement(hoist)
	case p.isKeyword("function"):
		return p.parseFunctionDeclaration(hoist)
	case p.isKeyword("if"):
		return p.parseIf(hoist)
	case p.isKeyword("while"):
		return p.parseWhile(hoist)
	case p.isKeyword("do"):
		return p.parseDoWhile(hoist)
	case p.isKeyword("for"):
		return p.parseFor(hoist)
	case p.isKeyword("break"):
		return p.parseBreakContinue(NodeBreak, line, col)
	case p.isKeyword("continue"):
		return p.parseBreakContinue(NodeContinue, line, col)
	case p.isKeyword("return"):
		return p.parseReturn(line, col)
	case p.isKeyword("throw"):
		return p.parseThrow(hoist, line, col)
	case p.isKeyword("try"):
		return p.parseTry(hoist)
	case p.isKeyword("switch"):
		return p.parseSwitch(hoist)
	case p.isKeyword("with"):
		return p.parseWith(hoist)
	case p.tok.Kind == tkIdent:
		return p.parseIdentOrLabel(hoist, line, col)
	default:
		expr := p.parseExpression(hoist)
		p.consumeSemicolon()
		return &Node{Kind: NodeExprStmt, Left: expr, Line: line, Col: col}
	}
}

func (p *parser) parseBlock(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectPunct("{")
	block := &Node{Kind: NodeBlock, Line: line, Col: col}
	inner := newHoister()
	for !p.isPunct("}") && !p.atEOF() && p.err == nil {
		block.List = append(block.List, p.parseStatement(inner))
	}
	p.expectPunct("}")
	block.Forwarder = inner.forwarder()
	mergeHoist(hoist, inner)
	return block
}

// mergeHoist propagates a nested block's var (not let) declarations up to
// the enclosing function/program scope, per spec's var-is-function-scoped,
// let-is-block-scoped rule; the nested block keeps its own forwarder for
// its let names.
func mergeHoist(outer, inner *hoister) {
	for name := range inner.vars {
		if _, isFn := inner.funcs[name]; isFn {
			continue
		}
		if !outer.vars[name] && !outer.lets[name] {
			outer.vars[name] = true
			outer.order = append(outer.order, name)
		}
	}
}

func (p *parser) parseVarStatement(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	isLet := p.isKeyword("let") || p.isKeyword("const")
	p.advance()
	decl := &Node{Kind: NodeVarDecl, Line: line, Col: col}
	for {
		if p.isPunct("[") || p.isPunct("{") {
			d := p.parseDestructurePattern()
			var init *Node
			if p.isPunct("=") {
				p.advance()
				init = p.parseAssignExpr(hoist)
			}
			decl.VarDecls = append(decl.VarDecls, &VarDeclarator{Destructure: d, Init: init})
			for _, t := range d.Targets {
				if isLet {
					hoist.declareLet(p, t.Name)
				} else {
					hoist.declareVar(p, t.Name)
				}
			}
		} else {
			if p.tok.Kind != tkIdent {
				p.failf("expected identifier, found %q", p.tok.Text)
				return decl
			}
			name := p.tok.Text
			p.advance()
			var init *Node
			if p.isPunct("=") {
				p.advance()
				init = p.parseAssignExpr(hoist)
			}
			decl.VarDecls = append(decl.VarDecls, &VarDeclarator{Name: name, Init: init})
			if isLet {
				hoist.declareLet(p, name)
			} else {
				hoist.declareVar(p, name)
			}
		}
		if !p.isPunct(",") {
			break
		}
		p.advance()
	}
	p.consumeSemicolon()
	return decl
}

// parseDestructurePattern parses an array or object destructuring pattern
// into a flattened DestructurePayload (spec section 4.B: "Nested patterns
// are flattened: the path records field accesses from the source value to
// each target").
func (p *parser) parseDestructurePattern() *DestructurePayload {
	d := &DestructurePayload{}
	p.collectDestructure(d, nil)
	return d
}

func (p *parser) collectDestructure(d *DestructurePayload, prefix []string) {
	switch {
	case p.isPunct("["):
		p.advance()
		idx := 0
		for !p.isPunct("]") && !p.atEOF() {
			if p.isPunct(",") {
				p.advance()
				idx++
				continue
			}
			path := append(append([]string{}, prefix...), strconv.Itoa(idx))
			if p.isPunct("[") || p.isPunct("{") {
				p.collectDestructure(d, path)
			} else {
				name := p.tok.Text
				p.advance()
				d.Targets = append(d.Targets, DestructureTarget{Path: path, Name: name})
			}
			idx++
			if p.isPunct(",") {
				p.advance()
			}
		}
		p.expectPunct("]")
	case p.isPunct("{"):
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			key := p.tok.Text
			p.advance()
			path := append(append([]string{}, prefix...), key)
			if p.isPunct(":") {
				p.advance()
				if p.isPunct("[") || p.isPunct("{") {
					p.collectDestructure(d, path)
				} else {
					name := p.tok.Text
					p.advance()
					d.Targets = append(d.Targets, DestructureTarget{Path: path, Name: name})
				}
			} else {
				d.Targets = append(d.Targets, DestructureTarget{Path: path, Name: key})
			}
			if p.isPunct(",") {
				p.advance()
			}
		}
		p.expectPunct("}")
	default:
		p.failf("expected destructuring pattern, found %q", p.tok.Text)
	}
}

func (p *parser) parseFunctionDeclaration(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	fn := p.parseFunctionPayload(false)
	if hoist != nil {
		hoist.declareFunction(p, fn.Name, fn)
	}
	return &Node{Kind: NodeFunctionDecl, Function: fn, Line: line, Col: col}
}

func (p *parser) parseFunctionPayload(anonymousOK bool) *FunctionPayload {
	p.expectKeyword("function")
	name := ""
	if p.tok.Kind == tkIdent {
		name = p.tok.Text
		p.advance()
	} else if !anonymousOK {
		p.failf("expected function name")
	}
	p.expectPunct("(")
	var params []string
	for !p.isPunct(")") && !p.atEOF() {
		params = append(params, p.tok.Text)
		p.advance()
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.expectPunct(")")
	bodyHoist := newHoister()
	bodyLine, bodyCol := p.tok.Line, p.tok.Col
	p.expectPunct("{")
	body := &Node{Kind: NodeBlock, Line: bodyLine, Col: bodyCol}
	for !p.isPunct("}") && !p.atEOF() && p.err == nil {
		body.List = append(body.List, p.parseStatement(bodyHoist))
	}
	p.expectPunct("}")
	return &FunctionPayload{Name: name, Params: params, Body: body, Forwarder: bodyHoist.forwarder()}
}

func (p *parser) expectKeyword(s string) {
	if !p.isKeyword(s) {
		p.failf("expected %q", s)
		return
	}
	p.advance()
}

func (p *parser) parseIf(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("if")
	p.expectPunct("(")
	cond := p.parseExpression(hoist)
	p.expectPunct(")")
	then := p.parseStatement(hoist)
	var els *Node
	if p.isKeyword("else") {
		p.advance()
		els = p.parseStatement(hoist)
	}
	return &Node{Kind: NodeIf, Cond: cond, Then: then, Else: els, Line: line, Col: col}
}

func (p *parser) pushLoopLabel(label string) {
	if label == "" {
		label = "__loop__"
	}
	p.labelStack = append(p.labelStack, label)
}

func (p *parser) popLabel() {
	p.labelStack = p.labelStack[:len(p.labelStack)-1]
}

func (p *parser) parseWhile(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("while")
	p.expectPunct("(")
	cond := p.parseExpression(hoist)
	p.expectPunct(")")
	p.pushLoopLabel("")
	body := p.parseStatement(hoist)
	p.popLabel()
	return &Node{Kind: NodeWhile, Cond: cond, Body: body, Line: line, Col: col}
}

func (p *parser) parseDoWhile(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("do")
	p.pushLoopLabel("")
	body := p.parseStatement(hoist)
	p.popLabel()
	p.expectKeyword("while")
	p.expectPunct("(")
	cond := p.parseExpression(hoist)
	p.expectPunct(")")
	p.consumeSemicolon()
	return &Node{Kind: NodeDoWhile, Cond: cond, Body: body, Line: line, Col: col}
}

func (p *parser) parseFor(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("for")
	forEach := false
	if p.tok.Kind == tkIdent && p.tok.Text == "each" {
		forEach = true
		p.advance()
	}
	p.expectPunct("(")

	var initDecl *Node
	var initExpr *Node
	isDeclInit := p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const")
	if isDeclInit {
		isLet := p.isKeyword("let") || p.isKeyword("const")
		p.advance()
		name := p.tok.Text
		p.advance()
		if p.isKeyword("in") {
			p.advance()
			obj := p.parseExpression(hoist)
			p.expectPunct(")")
			if isLet {
				hoist.declareLet(p, name)
			} else {
				hoist.declareVar(p, name)
			}
			p.pushLoopLabel("")
			body := p.parseStatement(hoist)
			p.popLabel()
			return &Node{Kind: NodeForIn, Left: &Node{Kind: NodeIdentifier, Text: name}, Right: obj, Body: body, ForEach: forEach, Line: line, Col: col}
		}
		var init *Node
		if p.isPunct("=") {
			p.advance()
			init = p.parseAssignExpr(hoist)
		}
		if isLet {
			hoist.declareLet(p, name)
		} else {
			hoist.declareVar(p, name)
		}
		initDecl = &Node{Kind: NodeVarDecl, VarDecls: []*VarDeclarator{{Name: name, Init: init}}}
		for p.isPunct(",") {
			p.advance()
			n2 := p.tok.Text
			p.advance()
			var i2 *Node
			if p.isPunct("=") {
				p.advance()
				i2 = p.parseAssignExpr(hoist)
			}
			if isLet {
				hoist.declareLet(p, n2)
			} else {
				hoist.declareVar(p, n2)
			}
			initDecl.VarDecls = append(initDecl.VarDecls, &VarDeclarator{Name: n2, Init: i2})
		}
	} else if !p.isPunct(";") {
		initExpr = p.parseExpression(hoist)
		if p.isKeyword("in") {
			p.advance()
			obj := p.parseExpression(hoist)
			p.expectPunct(")")
			p.pushLoopLabel("")
			body := p.parseStatement(hoist)
			p.popLabel()
			return &Node{Kind: NodeForIn, Left: initExpr, Right: obj, Body: body, ForEach: forEach, Line: line, Col: col}
		}
	}
	p.expectPunct(";")
	var cond *Node
	if !p.isPunct(";") {
		cond = p.parseExpression(hoist)
	}
	p.expectPunct(";")
	var update *Node
	if !p.isPunct(")") {
		update = p.parseExpression(hoist)
	}
	p.expectPunct(")")
	p.pushLoopLabel("")
	body := p.parseStatement(hoist)
	p.popLabel()
	var init *Node
	if initDecl != nil {
		init = initDecl
	} else {
		init = initExpr
	}
	return &Node{Kind: NodeFor, Init: init, Cond: cond, Update: update, Body: body, Line: line, Col: col}
}

func (p *parser) parseBreakContinue(kind NodeKind, line, col int) *Node {
	p.advance()
	label := ""
	if p.tok.Kind == tkIdent && !p.tok.LineBreakBefore {
		label = p.tok.Text
		p.advance()
	}
	target := label
	if target == "" {
		target = "__loop__"
	}
	if !labelIn(p.labelStack, target) && p.err == nil {
		if label == "" {
			p.err = newCompileError(SyntaxError, p.file, line, col, "break or continue outside of a loop or switch")
		} else {
			p.err = newCompileError(SyntaxError, p.file, line, col, "undefined label %q", label)
		}
	}
	p.consumeSemicolon()
	return &Node{Kind: kind, Label: label, Line: line, Col: col}
}

func (p *parser) parseReturn(line, col int) *Node {
	p.advance()
	var val *Node
	if !p.isPunct(";") && !p.isPunct("}") && !p.atEOF() && !p.tok.LineBreakBefore {
		val = p.parseExpression(nil)
	}
	p.consumeSemicolon()
	return &Node{Kind: NodeReturn, Left: val, Line: line, Col: col}
}

func (p *parser) parseThrow(hoist *hoister, line, col int) *Node {
	p.advance()
	val := p.parseExpression(hoist)
	p.consumeSemicolon()
	return &Node{Kind: NodeThrow, Left: val, Line: line, Col: col}
}

func (p *parser) parseTry(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("try")
	body := p.parseBlock(hoist)
	n := &Node{Kind: NodeTry, Body: body, Line: line, Col: col}
	if p.isKeyword("catch") {
		p.advance()
		p.expectPunct("(")
		n.CatchParam = p.tok.Text
		p.advance()
		p.expectPunct(")")
		n.CatchBody = p.parseBlock(hoist)
	}
	if p.isKeyword("finally") {
		p.advance()
		n.FinallyBody = p.parseBlock(hoist)
	}
	if n.CatchBody == nil && n.FinallyBody == nil {
		p.failf("missing catch or finally after try")
	}
	return n
}

func (p *parser) parseSwitch(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("switch")
	p.expectPunct("(")
	disc := p.parseExpression(hoist)
	p.expectPunct(")")
	p.expectPunct("{")
	n := &Node{Kind: NodeSwitch, Left: disc, Line: line, Col: col}
	p.pushLoopLabel("")
	for !p.isPunct("}") && !p.atEOF() && p.err == nil {
		c := &SwitchCase{}
		if p.isKeyword("case") {
			p.advance()
			c.Test = p.parseExpression(hoist)
		} else if p.isKeyword("default") {
			p.advance()
		} else {
			p.failf("expected case or default")
			break
		}
		p.expectPunct(":")
		for !p.isKeyword("case") && !p.isKeyword("default") && !p.isPunct("}") && !p.atEOF() {
			c.Body = append(c.Body, p.parseStatement(hoist))
		}
		n.Cases = append(n.Cases, c)
	}
	p.popLabel()
	p.expectPunct("}")
	return n
}

func (p *parser) parseWith(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectKeyword("with")
	p.expectPunct("(")
	target := p.parseExpression(hoist)
	p.expectPunct(")")
	body := p.parseStatement(hoist)
	return &Node{Kind: NodeWith, Left: target, Body: body, Line: line, Col: col}
}

// parseIdentOrLabel disambiguates `ident: statement` (a labeled statement)
// from an ordinary expression statement starting with an identifier.
func (p *parser) parseIdentOrLabel(hoist *hoister, line, col int) *Node {
	save := *p.lx
	saveTok := p.tok
	name := p.tok.Text
	p.advance()
	if p.isPunct(":") {
		p.advance()
		p.labelStack = append(p.labelStack, name)
		body := p.parseStatement(hoist)
		p.labelStack = p.labelStack[:len(p.labelStack)-1]
		return &Node{Kind: NodeLabeled, Label: name, Body: body, Line: line, Col: col}
	}
	*p.lx = save
	p.tok = saveTok
	expr := p.parseExpression(hoist)
	p.consumeSemicolon()
	return &Node{Kind: NodeExprStmt, Left: expr, Line: line, Col: col}
}
