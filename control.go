package tinyjs

// evalStatement evaluates one preprocessed statement Node against scope,
// returning the value of the last expression it produced (only
// NodeExprStmt ever does) and a signal describing any non-local exit. This
// is the reference design's `execute` boolean made explicit as a return
// value: callers check sig.stops() exactly where the teacher's evaluator
// checked `if !execute`.
func (c *Context) evalStatement(n *Node, scope *Value) (*Value, signal) {
	if n == nil {
		return c.undefinedVal, none
	}
	c.curLine, c.curCol = n.Line, n.Col
	switch n.Kind {
	case NodeEmpty, NodeFunctionDecl:
		return c.undefinedVal, none
	case NodeExprStmt:
		return c.evalExpr(n.Left, scope)
	case NodeBlock:
		return c.evalBlockBody(n.List, n.Forwarder, c.pushLetScope(scope))
	case NodeVarDecl:
		return c.evalVarDecl(n, scope)
	case NodeIf:
		cond, sig := c.evalExpr(n.Cond, scope)
		if sig.stops() {
			return nil, sig
		}
		if c.ToBoolean(cond) {
			return c.evalStatement(n.Then, scope)
		} else if n.Else != nil {
			return c.evalStatement(n.Else, scope)
		}
		return c.undefinedVal, none
	case NodeWhile:
		return c.evalWhile(n, scope, nil)
	case NodeDoWhile:
		return c.evalDoWhile(n, scope, nil)
	case NodeFor:
		return c.evalFor(n, scope, nil)
	case NodeForIn:
		return c.evalForIn(n, scope, nil)
	case NodeBreak:
		return c.undefinedVal, brk(n.Label)
	case NodeContinue:
		return c.undefinedVal, cont(n.Label)
	case NodeReturn:
		if n.Left == nil {
			return c.undefinedVal, retWith(c.undefinedVal)
		}
		v, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return v, retWith(v)
	case NodeThrow:
		v, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return nil, thrown(v)
	case NodeTry:
		return c.evalTry(n, scope)
	case NodeSwitch:
		return c.evalSwitch(n, scope)
	case NodeWith:
		target, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.evalStatement(n.Body, c.pushWithScope(scope, target))
	case NodeLabeled:
		return c.evalLabeled(n, scope)
	default:
		return nil, c.ThrowError(GenericError, "unhandled statement kind %d", n.Kind)
	}
}

// evalLabeled evaluates a labeled statement. A run of directly-nested labels
// (`outer: inner: for (...) {}`) is peeled off and collected so that a loop
// wrapped in more than one label answers to any of them. When the labeled
// statement is itself a loop, its labels are threaded straight into the
// loop's own evaluation so that a `continue` naming one of them resumes the
// loop's next iteration instead of unwinding out of it - only the loop
// itself, via consumeLoopSignal, is in a position to turn a matching
// continue back into "keep looping". For a non-loop body (e.g. a labeled
// block), only break naming the label makes sense, and is absorbed here
// once the body has already returned.
func (c *Context) evalLabeled(n *Node, scope *Value) (*Value, signal) {
	labels := []string{n.Label}
	body := n.Body
	for body.Kind == NodeLabeled {
		labels = append(labels, body.Label)
		body = body.Body
	}
	var v *Value
	var sig signal
	switch body.Kind {
	case NodeWhile:
		v, sig = c.evalWhile(body, scope, labels)
	case NodeDoWhile:
		v, sig = c.evalDoWhile(body, scope, labels)
	case NodeFor:
		v, sig = c.evalFor(body, scope, labels)
	case NodeForIn:
		v, sig = c.evalForIn(body, scope, labels)
	default:
		v, sig = c.evalStatement(body, scope)
	}
	if sig.kind == sigBreak && labelIn(labels, sig.label) {
		return v, none
	}
	return v, sig
}

func labelIn(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func (c *Context) evalVarDecl(n *Node, scope *Value) (*Value, signal) {
	for _, d := range n.VarDecls {
		initVal := c.undefinedVal
		if d.Init != nil {
			v, sig := c.evalExpr(d.Init, scope)
			if sig.stops() {
				return nil, sig
			}
			initVal = v
		}
		if d.Destructure != nil {
			c.bindDestructure(scope, d.Destructure, initVal)
			continue
		}
		if d.Init != nil {
			c.declareBinding(scope, d.Name, initVal, DefaultVarFlags)
		} else if _, ok := scope.ownProperty(d.Name); !ok {
			c.declareBinding(scope, d.Name, c.undefinedVal, DefaultVarFlags)
		}
	}
	return c.undefinedVal, none
}

// bindDestructure walks each target's path from src and binds the result
// in scope, implementing the flattened destructuring payload from parse.go.
func (c *Context) bindDestructure(scope *Value, d *DestructurePayload, src *Value) {
	for _, t := range d.Targets {
		v := src
		for _, step := range t.Path {
			v = c.GetProperty(v, step)
		}
		c.declareBinding(scope, t.Name, v, DefaultVarFlags)
	}
}

func (c *Context) evalWhile(n *Node, scope *Value, labels []string) (*Value, signal) {
	for {
		cond, sig := c.evalExpr(n.Cond, scope)
		if sig.stops() {
			return nil, sig
		}
		if !c.ToBoolean(cond) {
			return c.undefinedVal, none
		}
		_, sig = c.evalStatement(n.Body, scope)
		if res, done := consumeLoopSignal(sig, labels); done {
			return c.undefinedVal, res
		}
	}
}

func (c *Context) evalDoWhile(n *Node, scope *Value, labels []string) (*Value, signal) {
	for {
		_, sig := c.evalStatement(n.Body, scope)
		if res, done := consumeLoopSignal(sig, labels); done {
			return c.undefinedVal, res
		}
		cond, sig := c.evalExpr(n.Cond, scope)
		if sig.stops() {
			return nil, sig
		}
		if !c.ToBoolean(cond) {
			return c.undefinedVal, none
		}
	}
}

func (c *Context) evalFor(n *Node, scope *Value, labels []string) (*Value, signal) {
	loopScope := c.pushLetScope(scope)
	if n.Init != nil {
		var sig signal
		if n.Init.Kind == NodeVarDecl {
			_, sig = c.evalVarDecl(n.Init, loopScope)
		} else {
			_, sig = c.evalExpr(n.Init, loopScope)
		}
		if sig.stops() {
			return nil, sig
		}
	}
	for {
		if n.Cond != nil {
			cond, sig := c.evalExpr(n.Cond, loopScope)
			if sig.stops() {
				return nil, sig
			}
			if !c.ToBoolean(cond) {
				return c.undefinedVal, none
			}
		}
		_, sig := c.evalStatement(n.Body, loopScope)
		if res, done := consumeLoopSignal(sig, labels); done {
			return c.undefinedVal, res
		}
		if n.Update != nil {
			if _, sig := c.evalExpr(n.Update, loopScope); sig.stops() {
				return nil, sig
			}
		}
	}
}

// evalForIn iterates own+inherited enumerable property names of the
// right-hand object (for-in), or their values when ForEach is set
// (for-each-in), per spec section 4.E.
func (c *Context) evalForIn(n *Node, scope *Value, labels []string) (*Value, signal) {
	obj, sig := c.evalExpr(n.Right, scope)
	if sig.stops() {
		return nil, sig
	}
	seen := map[string]bool{}
	var names []string
	for o := obj; o != nil; o = o.proto {
		for _, name := range o.OwnPropertyNames(true) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for _, name := range names {
		loopScope := c.pushLetScope(scope)
		var bound *Value
		if n.ForEach {
			bound = c.GetProperty(obj, name)
		} else {
			bound = c.NewString(name)
		}
		if n.Left.Kind == NodeIdentifier {
			c.declareBinding(loopScope, n.Left.Text, bound, DefaultVarFlags)
		} else if sig := c.assignToTarget(n.Left, loopScope, bound); sig.stops() {
			return nil, sig
		}
		_, sig := c.evalStatement(n.Body, loopScope)
		if res, done := consumeLoopSignal(sig, labels); done {
			return c.undefinedVal, res
		}
	}
	return c.undefinedVal, none
}

// consumeLoopSignal interprets a statement-body signal as the loop guarded
// by labels (nil or empty for an unlabeled loop) would: sigBreak/sigContinue
// targeting the innermost construct (empty label) or naming one of this
// loop's own labels are absorbed - a continue resumes the loop, a break
// stops it without propagating further, since the label has already been
// satisfied. A labeled signal naming some other, outer loop propagates, as
// does anything else (return, throw).
func consumeLoopSignal(sig signal, labels []string) (propagate signal, stopLoop bool) {
	switch sig.kind {
	case sigNone:
		return none, false
	case sigContinue:
		if sig.label == "" || labelIn(labels, sig.label) {
			return none, false
		}
		return sig, true
	case sigBreak:
		if sig.label == "" || labelIn(labels, sig.label) {
			return none, true
		}
		return sig, true
	default:
		return sig, true
	}
}

func (c *Context) evalTry(n *Node, scope *Value) (*Value, signal) {
	v, sig := c.evalStatement(n.Body, scope)
	if sig.kind == sigThrow && n.CatchBody != nil {
		catchScope := c.pushLetScope(scope)
		c.declareBinding(catchScope, n.CatchParam, sig.thrown, DefaultVarFlags)
		v, sig = c.evalStatement(n.CatchBody, catchScope)
	}
	if n.FinallyBody != nil {
		_, finSig := c.evalStatement(n.FinallyBody, scope)
		if finSig.stops() {
			return c.undefinedVal, finSig
		}
	}
	return v, sig
}

func (c *Context) evalSwitch(n *Node, scope *Value) (*Value, signal) {
	disc, sig := c.evalExpr(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	switchScope := c.pushLetScope(scope)
	matched := -1
	for i, cs := range n.Cases {
		if cs.Test == nil {
			continue
		}
		test, sig := c.evalExpr(cs.Test, switchScope)
		if sig.stops() {
			return nil, sig
		}
		if c.StrictEquals(disc, test) {
			matched = i
			break
		}
	}
	if matched == -1 {
		for i, cs := range n.Cases {
			if cs.Test == nil {
				matched = i
				break
			}
		}
	}
	if matched == -1 {
		return c.undefinedVal, none
	}
	for i := matched; i < len(n.Cases); i++ {
		for _, stmt := range n.Cases[i].Body {
			_, sig := c.evalStatement(stmt, switchScope)
			if sig.kind == sigBreak && sig.label == "" {
				return c.undefinedVal, none
			}
			if sig.stops() {
				return c.undefinedVal, sig
			}
		}
	}
	return c.undefinedVal, none
}
