package tinyjs

// evalExpr evaluates one preprocessed expression Node against scope. Every
// arm returns (value, none) on normal completion; a sigThrow is the only
// signal an expression can itself originate (a nested statement, reachable
// only through a function call, is what can return break/continue/return).
func (c *Context) evalExpr(n *Node, scope *Value) (*Value, signal) {
	if n == nil {
		return c.undefinedVal, none
	}
	c.curLine, c.curCol = n.Line, n.Col
	switch n.Kind {
	case NodeLiteral:
		return c.evalLiteral(n), none
	case NodeThis:
		return c.thisOf(scope), none
	case NodeIdentifier:
		return c.resolveIdentifier(scope, n.Text)
	case NodeRegexpLiteral:
		return c.NewRegexp(n.Str, n.Text)
	case NodeArrayLiteral:
		return c.evalArrayLiteral(n, scope)
	case NodeObjectLiteral:
		return c.evalObjectLiteral(n, scope)
	case NodeFunctionExpr:
		return c.newScriptedFunction(n.Function, scope), none
	case NodeSequence:
		var v *Value = c.undefinedVal
		for _, e := range n.List {
			var sig signal
			v, sig = c.evalExpr(e, scope)
			if sig.stops() {
				return nil, sig
			}
		}
		return v, none
	case NodeConditional:
		cond, sig := c.evalExpr(n.Cond, scope)
		if sig.stops() {
			return nil, sig
		}
		if c.ToBoolean(cond) {
			return c.evalExpr(n.Then, scope)
		}
		return c.evalExpr(n.Else, scope)
	case NodeLogical:
		left, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		truthy := c.ToBoolean(left)
		if (n.Text == "&&" && !truthy) || (n.Text == "||" && truthy) {
			return left, none
		}
		return c.evalExpr(n.Right, scope)
	case NodeBinary:
		return c.evalBinary(n, scope)
	case NodeUnary:
		return c.evalUnary(n, scope)
	case NodePostfix:
		return c.evalPostfix(n, scope)
	case NodeAssign:
		return c.evalAssign(n, scope)
	case NodeMember:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.GetProperty(obj, n.Text), none
	case NodeIndex:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		idx, sig := c.evalExpr(n.Right, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.GetProperty(obj, c.ToString(idx)), none
	case NodeCall:
		return c.evalCall(n, scope)
	case NodeNew:
		return c.evalNew(n, scope)
	default:
		return nil, c.ThrowError(GenericError, "unhandled expression kind %d", n.Kind)
	}
}

func (c *Context) evalLiteral(n *Node) *Value {
	switch n.Text {
	case "null":
		return c.nullVal
	case "bool":
		return c.Bool(n.Bool)
	case "number":
		return c.NewNumber(n.Num)
	case "string":
		return c.NewString(n.Str)
	default:
		return c.undefinedVal
	}
}

func (c *Context) evalArrayLiteral(n *Node, scope *Value) (*Value, signal) {
	arr := c.NewArray()
	idx := int64(0)
	for _, el := range n.List {
		if el == nil {
			idx++
			continue
		}
		v, sig := c.evalExpr(el, scope)
		if sig.stops() {
			return nil, sig
		}
		c.setOwnProperty(arr, quoteForIndex(idx), v, DefaultUserFlags)
		idx++
	}
	return arr, none
}

func (c *Context) evalObjectLiteral(n *Node, scope *Value) (*Value, signal) {
	obj := c.NewObject()
	for _, entry := range n.ObjectEntries {
		key := entry.Key
		if entry.Computed != nil {
			kv, sig := c.evalExpr(entry.Computed, scope)
			if sig.stops() {
				return nil, sig
			}
			key = c.ToString(kv)
		}
		switch {
		case entry.Getter != nil || entry.Setter != nil:
			var get, set *Value
			if existing, ok := obj.ownProperty(key); ok && existing.Value != nil && existing.Value.kind == kindAccessor {
				get, set = existing.Value.accessorData.Get, existing.Value.accessorData.Set
			}
			if entry.Getter != nil {
				get = c.newScriptedFunction(entry.Getter, scope)
			}
			if entry.Setter != nil {
				set = c.newScriptedFunction(entry.Setter, scope)
			}
			c.DefineAccessor(obj, key, get, set)
		default:
			v, sig := c.evalExpr(entry.Value, scope)
			if sig.stops() {
				return nil, sig
			}
			c.setOwnProperty(obj, key, v, DefaultUserFlags)
		}
	}
	return obj, none
}

func (c *Context) evalBinary(n *Node, scope *Value) (*Value, signal) {
	left, sig := c.evalExpr(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	right, sig := c.evalExpr(n.Right, scope)
	if sig.stops() {
		return nil, sig
	}
	switch n.Text {
	case "===":
		return c.Bool(c.StrictEquals(left, right)), none
	case "!==":
		return c.Bool(!c.StrictEquals(left, right)), none
	case "==":
		eq, sig := c.AbstractEquals(left, right)
		if sig.stops() {
			return nil, sig
		}
		return c.Bool(eq), none
	case "!=":
		eq, sig := c.AbstractEquals(left, right)
		if sig.stops() {
			return nil, sig
		}
		return c.Bool(!eq), none
	case "<", "<=", ">", ">=":
		return c.evalRelational(n.Text, left, right)
	case "in":
		if !isObjectLikeKind(right.kind) {
			return nil, c.ThrowError(TypeError, "cannot use 'in' operator on non-object")
		}
		return c.Bool(c.HasProperty(right, c.ToString(left))), none
	case "instanceof":
		if right.kind != kindFunction {
			return nil, c.ThrowError(TypeError, "right-hand side of instanceof is not callable")
		}
		proto, _ := right.ownProperty("prototype")
		var protoVal *Value
		if proto != nil {
			protoVal = proto.Value
		}
		return c.Bool(c.InstanceOf(left, protoVal)), none
	default:
		return c.mathsOp(left, right, n.Text)
	}
}

func (c *Context) evalRelational(op string, left, right *Value) (*Value, signal) {
	cmp, ok, sig := c.Compare(left, right)
	if sig.stops() {
		return nil, sig
	}
	if !ok {
		return c.falseVal, none
	}
	switch op {
	case "<":
		return c.Bool(cmp < 0), none
	case "<=":
		return c.Bool(cmp <= 0), none
	case ">":
		return c.Bool(cmp > 0), none
	default:
		return c.Bool(cmp >= 0), none
	}
}

func (c *Context) evalUnary(n *Node, scope *Value) (*Value, signal) {
	switch n.Text {
	case "typeof":
		if n.Left.Kind == NodeIdentifier {
			if _, p := c.lookupIdentifier(scope, n.Left.Text); p == nil {
				return c.NewString("undefined"), none
			}
		}
		v, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.NewString(v.Kind().String()), none
	case "void":
		_, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.undefinedVal, none
	case "delete":
		return c.evalDelete(n.Left, scope)
	}
	v, sig := c.evalExpr(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	switch n.Text {
	case "!":
		return c.Bool(!c.ToBoolean(v)), none
	case "~":
		return c.NewNumber(float64(^c.ToInt32(v))), none
	case "+":
		return c.NewNumber(c.ToNumber(v)), none
	case "-":
		return c.NewNumber(-c.ToNumber(v)), none
	case "++", "--":
		return c.evalPrefixIncDec(n, scope, v)
	default:
		return nil, c.ThrowError(TypeError, "unsupported unary operator %q", n.Text)
	}
}

func (c *Context) evalDelete(target *Node, scope *Value) (*Value, signal) {
	switch target.Kind {
	case NodeMember:
		obj, sig := c.evalExpr(target.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.Bool(c.deleteOwnProperty(obj, target.Text)), none
	case NodeIndex:
		obj, sig := c.evalExpr(target.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		idx, sig := c.evalExpr(target.Right, scope)
		if sig.stops() {
			return nil, sig
		}
		return c.Bool(c.deleteOwnProperty(obj, c.ToString(idx))), none
	default:
		return c.trueVal, none
	}
}

func (c *Context) evalPrefixIncDec(n *Node, scope *Value, cur *Value) (*Value, signal) {
	delta := 1.0
	if n.Text == "--" {
		delta = -1
	}
	next := c.NewNumber(c.ToNumber(cur) + delta)
	if sig := c.assignToTarget(n.Left, scope, next); sig.stops() {
		return nil, sig
	}
	return next, none
}

func (c *Context) evalPostfix(n *Node, scope *Value) (*Value, signal) {
	cur, sig := c.evalExpr(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	delta := 1.0
	if n.Text == "--" {
		delta = -1
	}
	numeric := c.NewNumber(c.ToNumber(cur))
	next := c.NewNumber(c.ToNumber(cur) + delta)
	if sig := c.assignToTarget(n.Left, scope, next); sig.stops() {
		return nil, sig
	}
	return numeric, none
}

// evalAssign implements both plain `=` and compound assignment (`+=` etc,
// dispatching the combine step to mathsOp per spec section 4.E).
func (c *Context) evalAssign(n *Node, scope *Value) (*Value, signal) {
	right, sig := c.evalExpr(n.Right, scope)
	if sig.stops() {
		return nil, sig
	}
	value := right
	if n.Text != "=" {
		left, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, sig
		}
		op := n.Text[:len(n.Text)-1]
		value, sig = c.mathsOp(left, right, op)
		if sig.stops() {
			return nil, sig
		}
	}
	if sig := c.assignToTarget(n.Left, scope, value); sig.stops() {
		return nil, sig
	}
	return value, none
}

// assignToTarget writes value into the location n describes: an
// identifier, a member access, or an index access.
func (c *Context) assignToTarget(n *Node, scope *Value, value *Value) signal {
	switch n.Kind {
	case NodeIdentifier:
		return c.assignIdentifier(scope, n.Text, value)
	case NodeMember:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return sig
		}
		return c.writeProperty(obj, n.Text, value)
	case NodeIndex:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return sig
		}
		idx, sig := c.evalExpr(n.Right, scope)
		if sig.stops() {
			return sig
		}
		return c.writeProperty(obj, c.ToString(idx), value)
	default:
		return c.ThrowError(ReferenceError, "invalid assignment target")
	}
}

// evalCall evaluates a function-call expression, resolving `this` from a
// member/index callee (obj.method()) the way spec section 4.E's call
// procedure implies: `this` binds to the object the method was looked up
// on, not the enclosing scope.
func (c *Context) evalCall(n *Node, scope *Value) (*Value, signal) {
	fn, this, sig := c.evalCallee(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	args, sig := c.evalArgs(n.List, scope)
	if sig.stops() {
		return nil, sig
	}
	return c.callFunction(fn, this, args)
}

func (c *Context) evalCallee(n *Node, scope *Value) (fn, this *Value, sig signal) {
	switch n.Kind {
	case NodeMember:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, nil, sig
		}
		return c.GetProperty(obj, n.Text), obj, none
	case NodeIndex:
		obj, sig := c.evalExpr(n.Left, scope)
		if sig.stops() {
			return nil, nil, sig
		}
		idx, sig := c.evalExpr(n.Right, scope)
		if sig.stops() {
			return nil, nil, sig
		}
		return c.GetProperty(obj, c.ToString(idx)), obj, none
	default:
		fn, sig := c.evalExpr(n, scope)
		return fn, c.undefinedVal, sig
	}
}

func (c *Context) evalArgs(list []*Node, scope *Value) ([]*Value, signal) {
	args := make([]*Value, 0, len(list))
	for _, a := range list {
		v, sig := c.evalExpr(a, scope)
		if sig.stops() {
			return nil, sig
		}
		args = append(args, v)
	}
	return args, none
}

func (c *Context) evalNew(n *Node, scope *Value) (*Value, signal) {
	fn, sig := c.evalExpr(n.Left, scope)
	if sig.stops() {
		return nil, sig
	}
	args, sig := c.evalArgs(n.List, scope)
	if sig.stops() {
		return nil, sig
	}
	return c.Construct(fn, args)
}
