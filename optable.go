package tinyjs

import (
	"strconv"
	"strings"
)

// binaryPrec gives each binary operator's binding power; higher binds
// tighter. Ordering follows spec section 4.E's precedence ladder from
// logical OR up through multiplicative - everything above unary is parsed
// by its own dedicated function (parseUnary, parsePostfix, parseCallMemberNew)
// rather than through this table, the same split the reference design
// draws between its generic operator table and its dedicated call/member
// grammar.
var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6, "===": 6, "!==": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7, "in": 7, "instanceof": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, ">>>=": true,
}

// logicalOps short-circuit, so their right operand is evaluated lazily
// (NodeLogical), unlike every other binary operator (NodeBinary).
var logicalOps = map[string]bool{"&&": true, "||": true}

func (p *parser) parseExpression(hoist *hoister) *Node {
	first := p.parseAssignExpr(hoist)
	if !p.isPunct(",") {
		return first
	}
	seq := &Node{Kind: NodeSequence, List: []*Node{first}, Line: first.Line, Col: first.Col}
	for p.isPunct(",") {
		p.advance()
		seq.List = append(seq.List, p.parseAssignExpr(hoist))
	}
	return seq
}

// parseAssignExpr implements right-associative assignment, with compound
// assignment operators (`+=` and friends) dispatching to mathsOp at
// evaluation time rather than being expanded here.
func (p *parser) parseAssignExpr(hoist *hoister) *Node {
	left := p.parseConditional(hoist)
	if p.tok.Kind == tkPunct && assignOps[p.tok.Text] {
		op := p.tok.Text
		line, col := p.tok.Line, p.tok.Col
		p.advance()
		right := p.parseAssignExpr(hoist)
		return &Node{Kind: NodeAssign, Text: op, Left: left, Right: right, Line: line, Col: col}
	}
	return left
}

func (p *parser) parseConditional(hoist *hoister) *Node {
	cond := p.parseBinary(hoist, 1)
	if p.isPunct("?") {
		line, col := p.tok.Line, p.tok.Col
		p.advance()
		then := p.parseAssignExpr(hoist)
		p.expectPunct(":")
		els := p.parseAssignExpr(hoist)
		return &Node{Kind: NodeConditional, Cond: cond, Then: then, Else: els, Line: line, Col: col}
	}
	return cond
}

// parseBinary is a standard precedence-climbing parser driven by
// binaryPrec; minPrec is the lowest precedence level this call is willing
// to consume.
func (p *parser) parseBinary(hoist *hoister, minPrec int) *Node {
	left := p.parseUnary(hoist)
	for {
		op, prec, ok := p.peekBinaryOp()
		if !ok || prec < minPrec {
			return left
		}
		line, col := p.tok.Line, p.tok.Col
		p.advance()
		right := p.parseBinary(hoist, prec+1)
		kind := NodeBinary
		if logicalOps[op] {
			kind = NodeLogical
		}
		left = &Node{Kind: kind, Text: op, Left: left, Right: right, Line: line, Col: col}
	}
}

func (p *parser) peekBinaryOp() (string, int, bool) {
	if p.tok.Kind == tkPunct {
		if prec, ok := binaryPrec[p.tok.Text]; ok {
			return p.tok.Text, prec, true
		}
		return "", 0, false
	}
	if p.isKeyword("in") || p.isKeyword("instanceof") {
		return p.tok.Text, binaryPrec[p.tok.Text], true
	}
	return "", 0, false
}

var unaryOps = map[string]bool{
	"!": true, "~": true, "+": true, "-": true, "++": true, "--": true,
}

func (p *parser) parseUnary(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	if p.isKeyword("typeof") || p.isKeyword("void") || p.isKeyword("delete") {
		op := p.tok.Text
		p.advance()
		operand := p.parseUnary(hoist)
		return &Node{Kind: NodeUnary, Text: op, Left: operand, Line: line, Col: col}
	}
	if p.tok.Kind == tkPunct && unaryOps[p.tok.Text] {
		op := p.tok.Text
		p.advance()
		operand := p.parseUnary(hoist)
		return &Node{Kind: NodeUnary, Text: op, Left: operand, Line: line, Col: col}
	}
	return p.parsePostfix(hoist)
}

func (p *parser) parsePostfix(hoist *hoister) *Node {
	expr := p.parseCallMemberNew(hoist)
	if (p.isPunct("++") || p.isPunct("--")) && !p.tok.LineBreakBefore {
		op := p.tok.Text
		line, col := p.tok.Line, p.tok.Col
		p.advance()
		return &Node{Kind: NodePostfix, Text: op, Left: expr, Line: line, Col: col}
	}
	return expr
}

// parseCallMemberNew parses the call/member/new precedence level: a chain
// of `.prop`, `[expr]`, `(args)`, and `new Ctor(args)` applications left to
// right over a primary expression.
func (p *parser) parseCallMemberNew(hoist *hoister) *Node {
	var expr *Node
	if p.isKeyword("new") {
		line, col := p.tok.Line, p.tok.Col
		p.advance()
		callee := p.parseCallMemberNoCall(hoist)
		var args []*Node
		if p.isPunct("(") {
			args = p.parseArgs(hoist)
		}
		expr = &Node{Kind: NodeNew, Left: callee, List: args, Line: line, Col: col}
	} else {
		expr = p.parsePrimary(hoist)
	}
	return p.parseTrailers(hoist, expr)
}

// parseCallMemberNoCall parses a `new` callee expression: member access
// only, stopping before a call so `new Foo().bar()` parses Foo() as the
// constructor call and .bar() as a trailer on the result.
func (p *parser) parseCallMemberNoCall(hoist *hoister) *Node {
	expr := p.parsePrimary(hoist)
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			name := p.tok.Text
			p.advance()
			expr = &Node{Kind: NodeMember, Left: expr, Text: name}
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpression(hoist)
			p.expectPunct("]")
			expr = &Node{Kind: NodeIndex, Left: expr, Right: idx}
		default:
			return expr
		}
	}
}

func (p *parser) parseTrailers(hoist *hoister, expr *Node) *Node {
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			name := p.tok.Text
			p.advance()
			expr = &Node{Kind: NodeMember, Left: expr, Text: name}
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpression(hoist)
			p.expectPunct("]")
			expr = &Node{Kind: NodeIndex, Left: expr, Right: idx}
		case p.isPunct("("):
			args := p.parseArgs(hoist)
			expr = &Node{Kind: NodeCall, Left: expr, List: args}
		default:
			return expr
		}
	}
}

func (p *parser) parseArgs(hoist *hoister) []*Node {
	p.expectPunct("(")
	var args []*Node
	for !p.isPunct(")") && !p.atEOF() {
		args = append(args, p.parseAssignExpr(hoist))
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.expectPunct(")")
	return args
}

func (p *parser) parsePrimary(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	switch {
	case p.isPunct("("):
		p.advance()
		expr := p.parseExpression(hoist)
		p.expectPunct(")")
		return expr
	case p.isKeyword("this"):
		p.advance()
		return &Node{Kind: NodeThis, Line: line, Col: col}
	case p.isKeyword("null"):
		p.advance()
		return &Node{Kind: NodeLiteral, Text: "null", Line: line, Col: col}
	case p.isKeyword("true"), p.isKeyword("false"):
		b := p.tok.Text == "true"
		p.advance()
		return &Node{Kind: NodeLiteral, Text: "bool", Bool: b, Line: line, Col: col}
	case p.isKeyword("function"):
		fn := p.parseFunctionPayload(true)
		return &Node{Kind: NodeFunctionExpr, Function: fn, Line: line, Col: col}
	case p.tok.Kind == tkNumber:
		n := parseNumericLiteral(p.tok.Text)
		p.advance()
		return &Node{Kind: NodeLiteral, Text: "number", Num: n, Line: line, Col: col}
	case p.tok.Kind == tkString:
		s := p.tok.Text
		p.advance()
		return &Node{Kind: NodeLiteral, Text: "string", Str: s, Line: line, Col: col}
	case p.tok.Kind == tkRegexp:
		src, flags := splitRegexpLiteral(p.tok.Text)
		p.advance()
		return &Node{Kind: NodeRegexpLiteral, Text: flags, Str: src, Line: line, Col: col}
	case p.isPunct("["):
		return p.parseArrayLiteral(hoist)
	case p.isPunct("{"):
		return p.parseObjectLiteral(hoist)
	case p.tok.Kind == tkIdent:
		name := p.tok.Text
		p.advance()
		return &Node{Kind: NodeIdentifier, Text: name, Line: line, Col: col}
	default:
		p.failf("unexpected token %q", p.tok.Text)
		p.advance()
		return &Node{Kind: NodeLiteral, Text: "undefined", Line: line, Col: col}
	}
}

func parseNumericLiteral(text string) float64 {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		n, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return 0
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return n
}

func splitRegexpLiteral(text string) (source, flags string) {
	end := strings.LastIndex(text, "/")
	return text[1:end], text[end+1:]
}

func (p *parser) parseArrayLiteral(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectPunct("[")
	n := &Node{Kind: NodeArrayLiteral, Line: line, Col: col}
	for !p.isPunct("]") && !p.atEOF() {
		if p.isPunct(",") {
			n.List = append(n.List, nil) // elided element
			p.advance()
			continue
		}
		n.List = append(n.List, p.parseAssignExpr(hoist))
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.expectPunct("]")
	return n
}

func (p *parser) parseObjectLiteral(hoist *hoister) *Node {
	line, col := p.tok.Line, p.tok.Col
	p.expectPunct("{")
	n := &Node{Kind: NodeObjectLiteral, Line: line, Col: col}
	for !p.isPunct("}") && !p.atEOF() {
		entry := p.parseObjectEntry(hoist)
		n.ObjectEntries = append(n.ObjectEntries, entry)
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.expectPunct("}")
	return n
}

// parseObjectEntry normalises `get x() {...}`, `set x(v) {...}`, method
// shorthand, and ordinary `key: value` into one ObjectEntry shape, per
// spec section 4.B.
func (p *parser) parseObjectEntry(hoist *hoister) *ObjectEntry {
	if (p.isKeyword("get") || p.isKeyword("set")) && !p.peekIsColonOrComma() {
		isGetter := p.tok.Text == "get"
		p.advance()
		key := p.tok.Text
		p.advance()
		fn := p.parseMethodTail()
		if isGetter {
			return &ObjectEntry{Key: key, Getter: fn}
		}
		return &ObjectEntry{Key: key, Setter: fn}
	}
	var key string
	var computed *Node
	if p.isPunct("[") {
		p.advance()
		computed = p.parseAssignExpr(hoist)
		p.expectPunct("]")
	} else {
		key = p.tok.Text
		p.advance()
	}
	if p.isPunct("(") {
		fn := p.parseMethodTail()
		return &ObjectEntry{Key: key, Computed: computed, Value: &Node{Kind: NodeFunctionExpr, Function: fn}}
	}
	p.expectPunct(":")
	value := p.parseAssignExpr(hoist)
	return &ObjectEntry{Key: key, Computed: computed, Value: value}
}

// peekIsColonOrComma distinguishes `get: 1` (an ordinary property literally
// named "get") from `get x() {...}` (an accessor) without backtracking: a
// following ':' or ',' or '}' means "get"/"set" was used as a plain key.
func (p *parser) peekIsColonOrComma() bool {
	save := *p.lx
	saveTok := p.tok
	p.advance()
	next := p.tok
	*p.lx = save
	p.tok = saveTok
	return next.Kind == tkPunct && (next.Text == ":" || next.Text == "," || next.Text == "}")
}

func (p *parser) parseMethodTail() *FunctionPayload {
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
	line, col := p.tok.Line, p.tok.Col
	p.expectPunct("{")
	body := &Node{Kind: NodeBlock, Line: line, Col: col}
	for !p.isPunct("}") && !p.atEOF() && p.err == nil {
		body.List = append(body.List, p.parseStatement(bodyHoist))
	}
	p.expectPunct("}")
	return &FunctionPayload{Params: params, Body: body, Forwarder: bodyHoist.forwarder()}
}
