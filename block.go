package tinyjs

// applyForwarder pre-binds a hoisting scope's var names (to undefined,
// unless already bound) and inner function declarations (to their closure
// values) before the scope's statement list runs, per spec section 4.B's
// declaration-hoisting rule: "function bodies are stored inline in the
// forwarder and referenced by name."
func (c *Context) applyForwarder(fw *ForwarderPayload, scope *Value) {
	if fw == nil {
		return
	}
	for _, name := range fw.VarNames {
		if _, ok := scope.ownProperty(name); !ok {
			c.declareBinding(scope, name, c.undefinedVal, DefaultVarFlags)
		}
	}
	for name, payload := range fw.Functions {
		fn := c.newScriptedFunction(payload, scope)
		c.declareBinding(scope, name, fn, DefaultVarFlags)
	}
}

// evalBlockBody hoists fw's declarations into scope and then runs list in
// order, returning the last expression statement's value and the first
// non-local signal encountered.
func (c *Context) evalBlockBody(list []*Node, fw *ForwarderPayload, scope *Value) (*Value, signal) {
	c.applyForwarder(fw, scope)
	result := c.undefinedVal
	for _, stmt := range list {
		v, sig := c.evalStatement(stmt, scope)
		if sig.stops() {
			return v, sig
		}
		if v != nil {
			result = v
		}
	}
	return result, none
}

// evalProgram runs a top-level NodeProgram tree against scope: the host API
// entry point for Execute/Evaluate/EvaluateComplex and eval().
func (c *Context) evalProgram(prog *Node, scope *Value) (*Value, signal) {
	v, sig := c.evalBlockBody(prog.List, prog.Forwarder, scope)
	if sig.kind == sigThrow {
		return nil, sig
	}
	return v, none
}

// evalFunctionBody runs a scripted function's body in its freshly pushed
// function scope, per spec section 4.E's function-call procedure: hoist,
// then evaluate the body; a sigReturn is absorbed into the function's
// result, a sigThrow propagates to the caller, and normal exit yields
// undefined.
func (c *Context) evalFunctionBody(token *FunctionPayload, scope *Value) (*Value, signal) {
	_, sig := c.evalBlockBody(token.Body.List, token.Forwarder, scope)
	switch sig.kind {
	case sigReturn:
		return sig.value, none
	case sigThrow:
		return nil, sig
	default:
		return c.undefinedVal, none
	}
}
