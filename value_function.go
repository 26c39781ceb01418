package tinyjs

// NativeFunc is the Go signature for a host-registered function, the
// counterpart of the reference design's CFunction callback. args excludes
// `this`, which is passed separately; userData is whatever AddNative was
// given when the binding was registered.
type NativeFunc func(c *Context, this *Value, args []*Value, userData any) (*Value, signal)

// functionData is the payload of a KindFunction value. Exactly one of
// native or token is set: a function-native value wraps a Go callback, a
// function-scripted value wraps a preprocessed function-token payload plus
// the scope chain captured at its definition site.
type functionData struct {
	name   string
	params []string

	native   NativeFunc
	userData any

	token  *FunctionPayload
	scope  *Value // captured closure scope, nil for native functions

	isConstructor bool
}

// NewNativeFunction wraps fn as a callable *Value with Function.prototype as
// its prototype and a prototype object of its own (so `new` can attach
// instances to it), per AddNative's binding contract.
func (c *Context) NewNativeFunction(name string, params []string, fn NativeFunc, userData any) *Value {
	v := c.newValue(kindFunction)
	v.proto = c.Retain(c.protos.function)
	v.functionData = &functionData{name: name, params: params, native: fn, userData: userData}
	proto := c.NewObject()
	c.setOwnProperty(proto, "constructor", v, DefaultNativeFlags)
	c.setOwnProperty(v, "prototype", proto, FlagWritable)
	return v
}

// newScriptedFunction wraps a preprocessed function token as a callable
// *Value, capturing closureScope as its lexical parent - spec's "function
// bodies evaluated later see the captured scope chain of their definition
// site, not their call site".
func (c *Context) newScriptedFunction(token *FunctionPayload, closureScope *Value) *Value {
	v := c.newValue(kindFunction)
	v.proto = c.Retain(c.protos.function)
	v.functionData = &functionData{
		name:   token.Name,
		params: token.Params,
		token:  token,
		scope:  c.Retain(closureScope),
	}
	proto := c.NewObject()
	c.setOwnProperty(proto, "constructor", v, DefaultNativeFlags)
	c.setOwnProperty(v, "prototype", proto, FlagWritable)
	return v
}

// callFunction implements call(args, this): spec section 4.E's "Function
// call" procedure. Native functions run their Go callback directly;
// scripted functions get a fresh function scope parented to their captured
// closure, have their parameters and `arguments` bound, run their
// forwarder (hoisting var/function declarations), then evaluate their body.
func (c *Context) callFunction(fn, this *Value, args []*Value) (*Value, signal) {
	if fn == nil || fn.kind != kindFunction || fn.functionData == nil {
		return nil, c.ThrowError(TypeError, "value is not callable")
	}
	if c.callDepth >= c.maxCallDepth {
		return nil, c.ThrowError(RangeError, "call stack size exceeded")
	}
	c.callDepth++
	defer func() { c.callDepth-- }()

	fd := fn.functionData
	if fd.native != nil {
		return fd.native(c, this, args, fd.userData)
	}
	scope := c.pushFunctionScope(fd.scope, this)
	c.bindParameters(scope, fd.params, args)
	c.bindArguments(scope, fn, args)
	return c.evalFunctionBody(fd.token, scope)
}

// bindParameters declares each named parameter in scope, binding missing
// trailing arguments to undefined.
func (c *Context) bindParameters(scope *Value, params []string, args []*Value) {
	for i, name := range params {
		var v *Value
		if i < len(args) {
			v = args[i]
		} else {
			v = c.undefinedVal
		}
		c.declareBinding(scope, name, v, DefaultVarFlags)
	}
}

// bindArguments builds the array-like `arguments` object for a function
// invocation and binds it in scope, per spec section 4.D: mutating its
// indexed elements is visible but does not alias named parameters.
func (c *Context) bindArguments(scope, callee *Value, args []*Value) {
	_ = callee
	arr := c.NewArray()
	for i, a := range args {
		c.setOwnProperty(arr, quoteForIndex(int64(i)), a, DefaultUserFlags)
	}
	scope.scopeData.argumentsVal = c.Retain(arr)
	c.declareBinding(scope, "arguments", arr, FlagWritable)
}

// Construct implements `new F(args)`: allocate a plain object chained to
// F.prototype, call F with that object as `this`; if the call itself
// returns an object, that replaces the constructed object, otherwise the
// constructed object is the result.
func (c *Context) Construct(fn *Value, args []*Value) (*Value, signal) {
	if fn == nil || fn.kind != kindFunction {
		return nil, c.ThrowError(TypeError, "value is not a constructor")
	}
	instance := c.NewObject()
	if p, ok := fn.ownProperty("prototype"); ok && p.Value != nil && isObjectLikeKind(p.Value.kind) {
		c.SetPrototype(instance, p.Value)
	}
	result, sig := c.callFunction(fn, instance, args)
	if sig.stops() {
		return nil, sig
	}
	if result != nil && isObjectLikeKind(result.kind) {
		return result, none
	}
	return instance, none
}

// Apply calls fn with this and an explicit argument slice, the Go entry
// point mirroring Function.prototype.apply.
func (c *Context) Apply(fn, this *Value, args []*Value) (*Value, signal) {
	return c.callFunction(fn, this, args)
}
