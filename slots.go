package tinyjs

// installObjectStatics registers the Object constructor's static methods:
// Object.keys, Object.create, Object.getPrototypeOf, and
// Object.defineProperty. These live on the Object function value itself
// rather than on Object.prototype.
func (c *Context) installObjectStatics() {
	objectCtor := c.NewNativeFunction("Object", []string{"value"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		arg := c.argOr(args, 0)
		if arg == nil || arg.kind == kindUndefined || arg.kind == kindNull {
			return c.NewObject(), none
		}
		return arg, none
	}, nil)
	objectCtor.proto = c.Retain(c.protos.function)
	c.setOwnProperty(objectCtor, "prototype", c.protos.object, FlagWritable)
	c.setOwnProperty(c.root, "Object", objectCtor, DefaultNativeFlags)

	reg := func(name string, params []string, fn NativeFunc) {
		nf := c.NewNativeFunction("Object."+name, params, fn, nil)
		c.setOwnProperty(objectCtor, name, nf, DefaultNativeFlags)
	}

	reg("keys", []string{"o"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		obj := c.argOr(args, 0)
		out := c.NewArray()
		if obj == nil {
			return out, none
		}
		for _, name := range obj.OwnPropertyNames(true) {
			c.ArrayPush(out, c.NewString(name))
		}
		return out, none
	})

	reg("getPrototypeOf", []string{"o"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		obj := c.argOr(args, 0)
		if obj == nil || obj.proto == nil {
			return c.nullVal, none
		}
		return obj.proto, none
	})

	reg("create", []string{"proto"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		proto := c.argOr(args, 0)
		obj := c.bareObject()
		if proto != nil && proto.kind != kindNull {
			c.SetPrototype(obj, proto)
		}
		return obj, none
	})

	reg("defineProperty", []string{"o", "name", "descriptor"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		obj := c.argOr(args, 0)
		name := c.ToString(c.argOr(args, 1))
		descriptor := c.argOr(args, 2)
		if obj == nil || descriptor == nil {
			return obj, none
		}
		getter, hasGetter := descriptor.ownProperty("get")
		setter, hasSetter := descriptor.ownProperty("set")
		if hasGetter || hasSetter {
			var getFn, setFn *Value
			if hasGetter {
				getFn = getter.Value
			}
			if hasSetter {
				setFn = setter.Value
			}
			c.DefineAccessor(obj, name, getFn, setFn)
			return obj, none
		}
		valProp, _ := descriptor.ownProperty("value")
		var val *Value
		if valProp != nil {
			val = valProp.Value
		} else {
			val = c.undefinedVal
		}
		flags := PropertyFlags(0)
		if truthyField(c, descriptor, "writable") {
			flags |= FlagWritable
		}
		if truthyField(c, descriptor, "enumerable") {
			flags |= FlagEnumerable
		}
		if truthyField(c, descriptor, "configurable") {
			flags |= FlagDeletable
		}
		c.setOwnProperty(obj, name, val, flags)
		return obj, none
	})
}

func truthyField(c *Context, descriptor *Value, name string) bool {
	p, ok := descriptor.ownProperty(name)
	if !ok {
		return false
	}
	return c.ToBoolean(p.Value)
}
