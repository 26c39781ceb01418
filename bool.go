package tinyjs

// installBooleanPrototype registers Boolean.prototype.toString and valueOf,
// and the Boolean(value) constructor function, following the same reg
// pattern as installObjectPrototype.
func (c *Context) installBooleanPrototype() {
	boolCtor := c.NewNativeFunction("Boolean", []string{"value"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.Bool(c.ToBoolean(c.argOr(args, 0))), none
	}, nil)
	c.setOwnProperty(boolCtor, "prototype", c.protos.boolean, FlagWritable)
	c.setOwnProperty(c.root, "Boolean", boolCtor, DefaultNativeFlags)

	reg := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("Boolean."+name, nil, fn, nil)
		c.setOwnProperty(c.protos.boolean, name, nf, DefaultNativeFlags)
	}

	reg("toString", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if c.ToBoolean(this) {
			return c.NewString("true"), none
		}
		return c.NewString("false"), none
	})

	reg("valueOf", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.Bool(c.ToBoolean(this)), none
	})
}
