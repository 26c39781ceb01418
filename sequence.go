package tinyjs

// installRegexpPrototype registers RegExp.prototype.exec/test/toString and
// the RegExp(source, flags) constructor, wiring the Matcher seam used by
// value_regexp.go into script-visible bindings.
func (c *Context) installRegexpPrototype() {
	regexpCtor := c.NewNativeFunction("RegExp", []string{"source", "flags"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		source := c.ToString(c.argOr(args, 0))
		flags := ""
		if len(args) > 1 && args[1].kind != kindUndefined {
			flags = c.ToString(args[1])
		}
		return c.NewRegexp(source, flags)
	}, nil)
	c.setOwnProperty(regexpCtor, "prototype", c.protos.regexp, FlagWritable)
	c.setOwnProperty(c.root, "RegExp", regexpCtor, DefaultNativeFlags)

	reg := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("RegExp."+name, nil, fn, nil)
		c.setOwnProperty(c.protos.regexp, name, nf, DefaultNativeFlags)
	}

	reg("exec", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		subject := c.ToString(c.argOr(args, 0))
		return c.RegexpExec(this, subject), none
	})

	reg("test", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		subject := c.ToString(c.argOr(args, 0))
		return c.Bool(c.RegexpTest(this, subject)), none
	})

	reg("toString", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(c.regexpToString(this)), none
	})
}
