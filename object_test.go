package tinyjs

import "testing"

// TestPrototypeChainLookup tests that GetProperty walks the prototype
// chain when a name is missing on the receiver itself.
func TestPrototypeChainLookup(t *testing.T) {
	c := NewContext()
	base := c.NewObject()
	c.setOwnProperty(base, "greeting", c.NewString("hi"), DefaultUserFlags)

	child := c.NewObject()
	c.SetPrototype(child, base)

	got := c.GetProperty(child, "greeting")
	if c.ToString(got) != "hi" {
		t.Errorf("child did not inherit greeting: got %v", got)
	}
}

// TestOwnPropertyShadowsPrototype tests that setting a property directly on
// an object shadows the same-named property on its prototype.
func TestOwnPropertyShadowsPrototype(t *testing.T) {
	c := NewContext()
	base := c.NewObject()
	c.setOwnProperty(base, "x", c.NewInt(1), DefaultUserFlags)

	child := c.NewObject()
	c.SetPrototype(child, base)
	c.setOwnProperty(child, "x", c.NewInt(2), DefaultUserFlags)

	if c.ToNumber(c.GetProperty(child, "x")) != 2 {
		t.Error("own property did not shadow prototype property")
	}
	if c.ToNumber(c.GetProperty(base, "x")) != 1 {
		t.Error("setting the child's own property mutated the prototype")
	}
}

// TestSetPrototypeRejectsCycle tests that SetPrototype refuses to create a
// prototype cycle.
func TestSetPrototypeRejectsCycle(t *testing.T) {
	c := NewContext()
	a := c.NewObject()
	b := c.NewObject()
	if err := c.SetPrototype(b, a); err != nil {
		t.Fatalf("unexpected error setting up chain: %v", err)
	}
	if err := c.SetPrototype(a, b); err == nil {
		t.Error("expected an error creating a prototype cycle")
	}
}

// TestOwnPropertyNamesOrder tests that own property names are reported in
// insertion order, the order for-in must iterate.
func TestOwnPropertyNamesOrder(t *testing.T) {
	c := NewContext()
	o := c.NewObject()
	c.setOwnProperty(o, "z", c.oneVal, DefaultUserFlags)
	c.setOwnProperty(o, "a", c.oneVal, DefaultUserFlags)
	c.setOwnProperty(o, "m", c.oneVal, DefaultUserFlags)

	names := o.OwnPropertyNames(true)
	want := []string{"z", "a", "m"}
	if len(names) != len(want) {
		t.Fatalf("wrong number of names: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: wanted %s, got %s", i, want[i], names[i])
		}
	}
}

// TestHasPropertyWalksPrototype tests that HasProperty reports true for
// inherited properties, not just own ones.
func TestHasPropertyWalksPrototype(t *testing.T) {
	c := NewContext()
	base := c.NewObject()
	c.setOwnProperty(base, "inherited", c.trueVal, DefaultUserFlags)
	child := c.NewObject()
	c.SetPrototype(child, base)

	if !c.HasProperty(child, "inherited") {
		t.Error("HasProperty should find inherited properties")
	}
	if c.HasProperty(child, "nope") {
		t.Error("HasProperty should not find a missing property")
	}
}

// TestDefineAccessor tests that a defined accessor is invoked on get and
// set rather than treated as a plain data property.
func TestDefineAccessor(t *testing.T) {
	c := NewContext()
	o := c.NewObject()
	var stored *Value
	getFn := c.NewNativeFunction("get", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if stored == nil {
			return c.undefinedVal, none
		}
		return stored, none
	}, nil)
	setFn := c.NewNativeFunction("set", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		stored = c.argOr(args, 0)
		return c.undefinedVal, none
	}, nil)
	c.DefineAccessor(o, "prop", getFn, setFn)

	if sig := c.writeProperty(o, "prop", c.NewInt(42)); sig.stops() {
		t.Fatalf("unexpected signal writing accessor: %v", sig)
	}
	got := c.GetProperty(o, "prop")
	if c.ToNumber(got) != 42 {
		t.Errorf("accessor did not round-trip: got %v", got)
	}
}
