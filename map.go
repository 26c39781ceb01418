package tinyjs

// installFunctionPrototype registers Function.prototype.call, .apply,
// .bind, and .toString, the methods every callable value inherits.
func (c *Context) installFunctionPrototype() {
	reg := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("Function."+name, nil, fn, nil)
		c.setOwnProperty(c.protos.function, name, nf, DefaultNativeFlags)
	}

	reg("call", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		var thisArg *Value
		var rest []*Value
		if len(args) > 0 {
			thisArg = args[0]
			rest = args[1:]
		} else {
			thisArg = c.undefinedVal
		}
		return c.callFunction(this, thisArg, rest)
	})

	reg("apply", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		thisArg := c.argOr(args, 0)
		if thisArg == nil {
			thisArg = c.undefinedVal
		}
		var rest []*Value
		if len(args) > 1 && args[1] != nil && args[1].kind == kindArray {
			for _, idx := range c.ArrayIndices(args[1]) {
				rest = append(rest, c.ArrayGet(args[1], idx))
			}
		}
		return c.callFunction(this, thisArg, rest)
	})

	reg("bind", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		boundThis := c.argOr(args, 0)
		if boundThis == nil {
			boundThis = c.undefinedVal
		}
		boundArgs := append([]*Value(nil), args[min(1, len(args)):]...)
		target := this
		bound := c.NewNativeFunction("bound", nil, func(c *Context, _ *Value, callArgs []*Value, _ any) (*Value, signal) {
			full := append(append([]*Value(nil), boundArgs...), callArgs...)
			return c.callFunction(target, boundThis, full)
		}, nil)
		return bound, none
	})

	reg("toString", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(c.functionToString(this)), none
	})
}
