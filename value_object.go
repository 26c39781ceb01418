package tinyjs

// findProperty walks v's prototype chain (starting at v itself) looking for
// an own property named name. This is the single lookup path used by both
// plain property reads and identifier resolution through a with-target.
func findProperty(v *Value, name string) (*Property, bool) {
	for o := v; o != nil; o = o.proto {
		if p, ok := o.ownProperty(name); ok {
			return p, true
		}
	}
	return nil, false
}

// readProperty dereferences a resolved property, invoking its getter when
// it is an accessor rather than a plain value slot.
func (c *Context) readProperty(p *Property) *Value {
	if p.Value != nil && p.Value.kind == kindAccessor {
		return c.invokeAccessorGet(p.Value, p.Owner)
	}
	if p.Value == nil {
		return c.undefinedVal
	}
	return p.Value
}

// GetProperty looks up name on v, walking the prototype chain, and returns
// undefined (not an error) if no such property exists - ordinary property
// read semantics, distinct from identifier resolution which raises
// ReferenceError on a miss (spec section 5).
func (c *Context) GetProperty(v *Value, name string) *Value {
	if v == nil {
		return c.undefinedVal
	}
	if v.kind == kindString {
		if special := c.stringSpecialProperty(v, name); special != nil {
			return special
		}
	}
	if v.kind == kindArray && name == "length" {
		return c.arrayLengthValue(v)
	}
	p, ok := findProperty(v, name)
	if !ok {
		return c.undefinedVal
	}
	return c.readProperty(p)
}

// writeProperty assigns name = value on v: if an inherited or own accessor
// with a setter is found, the setter is invoked; otherwise an own data
// property is created or overwritten, refusing silently if v is not
// extensible and name is not already an own property (spec's non-strict
// "assignment to a non-extensible object's absent property is a no-op").
func (c *Context) writeProperty(v *Value, name string, value *Value) signal {
	if v == nil {
		return none
	}
	if v.kind == kindArray && name == "length" {
		return c.setArrayLength(v, value)
	}
	if p, ok := findProperty(v, name); ok && p.Value != nil && p.Value.kind == kindAccessor {
		return c.invokeAccessorSet(p.Value, v, value)
	}
	if _, ok := v.ownProperty(name); !ok && !v.extensible {
		return none
	}
	c.setOwnProperty(v, name, value, DefaultUserFlags)
	return none
}

// invokeAccessorGet calls the getter function of accessor acc with this
// bound to receiver, returning undefined if no getter was defined.
func (c *Context) invokeAccessorGet(acc, receiver *Value) *Value {
	get := acc.accessorData.Get
	if get == nil {
		return c.undefinedVal
	}
	v, sig := c.callFunction(get, receiver, nil)
	if sig.stops() {
		return c.undefinedVal
	}
	return v
}

// invokeAccessorSet calls the setter function of accessor acc with this
// bound to receiver and the assigned value as its sole argument.
func (c *Context) invokeAccessorSet(acc, receiver, value *Value) signal {
	set := acc.accessorData.Set
	if set == nil {
		return none
	}
	_, sig := c.callFunction(set, receiver, []*Value{value})
	return sig
}

// NewObject allocates a plain object chained to Object.prototype, the
// runtime counterpart of an object literal or `new Object()`.
func (c *Context) NewObject() *Value {
	v := c.newValue(kindObject)
	v.proto = c.Retain(c.protos.object)
	return v
}

// DefineAccessor installs name as an accessor property on v with the given
// getter and/or setter (either may be nil), per spec's get/set object
// literal and Object.defineProperty-equivalent support.
func (c *Context) DefineAccessor(v *Value, name string, get, set *Value) {
	acc := c.newValue(kindAccessor)
	acc.accessorData = &accessorData{Get: get, Set: set}
	c.setOwnProperty(v, name, acc, DefaultUserFlags)
}

// HasProperty reports whether name resolves to a property on v or any of
// its prototypes (the `in` operator's right-hand evaluation, and instanceof
// groundwork).
func (c *Context) HasProperty(v *Value, name string) bool {
	if v == nil {
		return false
	}
	if v.kind == kindArray && name == "length" {
		return true
	}
	_, ok := findProperty(v, name)
	return ok
}

// InstanceOf walks v's prototype chain looking for ctorProto, implementing
// the `instanceof` operator.
func (c *Context) InstanceOf(v, ctorProto *Value) bool {
	if ctorProto == nil {
		return false
	}
	for o := v.proto; o != nil; o = o.proto {
		if o == ctorProto {
			return true
		}
	}
	return false
}
