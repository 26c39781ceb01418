package tinyjs

// installObjectPrototype registers Object.prototype's own methods
// (toString/valueOf/hasOwnProperty/isPrototypeOf) as native functions set
// directly on Object.prototype, the same way every other prototype gets its
// methods - grounded
// alongside installArrayPrototype/installStringPrototype in list.go and
// sequence-string.go.
func (c *Context) installObjectPrototype() {
	reg := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("Object."+name, nil, fn, nil)
		c.setOwnProperty(c.protos.object, name, nf, DefaultNativeFlags)
	}

	reg("toString", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if this == nil {
			return c.NewString("[object Undefined]"), none
		}
		return c.NewString("[object " + objectTag(this.Kind()) + "]"), none
	})

	reg("valueOf", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return this, none
	})

	reg("hasOwnProperty", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		name := c.ToString(c.argOr(args, 0))
		_, ok := this.ownProperty(name)
		if !ok && this.kind == kindArray && name == "length" {
			ok = true
		}
		return c.Bool(ok), none
	})

	reg("isPrototypeOf", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		other := c.argOr(args, 0)
		if other == nil {
			return c.falseVal, none
		}
		for o := other.proto; o != nil; o = o.proto {
			if o == this {
				return c.trueVal, none
			}
		}
		return c.falseVal, none
	})
}

func objectTag(k Kind) string {
	switch k {
	case kindArray:
		return "Array"
	case kindFunction:
		return "Function"
	case kindError:
		return "Error"
	case kindRegexp:
		return "RegExp"
	default:
		return "Object"
	}
}
