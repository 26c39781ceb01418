package tinyjs

// Kind discriminates the tagged union that is *Value. The reference design
// gives every value kind its own C++ subclass; per spec's Design Notes this
// implementation instead uses a closed tag with per-kind fields and switch
// statements keyed on Kind.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindInfinity
	KindNaN
	KindString
	KindObject
	KindArray
	KindError
	KindRegexp
	KindFunction
	KindAccessor
	KindScope
)

// short aliases used pervasively inside the package.
const (
	kindUndefined = KindUndefined
	kindNull      = KindNull
	kindBool      = KindBool
	kindInt       = KindInt
	kindFloat     = KindFloat
	kindInfinity  = KindInfinity
	kindNaN       = KindNaN
	kindString    = KindString
	kindObject    = KindObject
	kindArray     = KindArray
	kindError     = KindError
	kindRegexp    = KindRegexp
	kindFunction  = KindFunction
	kindAccessor  = KindAccessor
	kindScope     = KindScope
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindFloat, KindInfinity, KindNaN:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindError:
		return "error"
	case KindRegexp:
		return "regexp"
	case KindFunction:
		return "function"
	case KindAccessor:
		return "accessor"
	case KindScope:
		return "scope"
	default:
		return "unknown"
	}
}

// scopeKind distinguishes the four scope flavors a KindScope value can be.
type scopeKind uint8

const (
	scopeRoot scopeKind = iota
	scopeFunction
	scopeLet
	scopeWith
)

// PropertyFlags governs what may be done to a property link, per spec's
// property-link defaults: user properties are writable+deletable+enumerable,
// native bindings are writable only, var bindings are writable+enumerable.
type PropertyFlags uint8

const (
	FlagWritable PropertyFlags = 1 << iota
	FlagDeletable
	FlagEnumerable
	FlagHidden // skipped by for-in even when enumerable
)

// DefaultUserFlags is the flag set installed for an ordinary script-level
// assignment like o.a = 1.
const DefaultUserFlags = FlagWritable | FlagDeletable | FlagEnumerable

// DefaultNativeFlags is the flag set installed for a native binding
// registered through AddNative.
const DefaultNativeFlags = FlagWritable

// DefaultVarFlags is the flag set installed for a var binding: writable and
// enumerable, but never deletable.
const DefaultVarFlags = FlagWritable | FlagEnumerable

// Property is a named slot binding a parent Value to a child Value. It is
// the unit of own-property storage described in spec section 3.
type Property struct {
	Name  string
	Value *Value
	Owner *Value // back-reference to the value that stores this link
	Flags PropertyFlags
	Owned bool // this link is the canonical storage for Value, not an alias
}

func (p *Property) Writable() bool   { return p.Flags&FlagWritable != 0 }
func (p *Property) Deletable() bool  { return p.Flags&FlagDeletable != 0 }
func (p *Property) Enumerable() bool { return p.Flags&FlagEnumerable != 0 }
func (p *Property) Hidden() bool     { return p.Flags&FlagHidden != 0 }

// Value is the interpreter's single polymorphic, reference-counted,
// GC-tracked runtime value. Every kind of script value - undefined, null,
// booleans, the four number flavors, strings, objects, arrays, errors,
// regexes, functions, accessors, and scopes - is one of these, discriminated
// by kind rather than by a class hierarchy.
type Value struct {
	kind       Kind
	extensible bool

	// property storage: insertion-ordered own properties.
	propOrder []string
	props     map[string]*Property
	proto     *Value

	refcount int32
	tempID   uint32 // GC mark stamp

	// intrusive doubly-linked live list, threaded by the owning Context.
	prev, next *Value

	// per-kind payloads. Only the field matching kind is meaningful.
	boolData     bool
	intData      int32
	floatData    float64
	infSign      int8 // +1 or -1, only meaningful when kind == KindInfinity
	stringData   string
	errorData    *errorData
	regexpData   *regexpData
	functionData *functionData
	accessorData *accessorData
	scopeData    *scopeData
}

type accessorData struct {
	Get *Value
	Set *Value
}

// Kind reports the value's tag.
func (v *Value) Kind() Kind { return v.kind }

// Extensible reports whether new own properties may be added to v.
func (v *Value) Extensible() bool { return v.extensible }

// newValue allocates a bare Value of the given kind, links it onto the
// context's live list, and gives it a fresh (unreferenced) refcount of
// zero. Callers finish initializing kind-specific fields and then either
// retain it into a property or return it to script code, which retains it
// on the caller's behalf. This mirrors the reference design's context-scoped
// factory: nothing is ever constructed except through the owning context.
func (c *Context) newValue(kind Kind) *Value {
	v := &Value{
		kind:       kind,
		extensible: kind != KindUndefined && kind != KindNull,
		props:      make(map[string]*Property),
	}
	c.link(v)
	return v
}

// link threads v onto the context's intrusive live list so that it is
// immediately visible to the next sweep; its GC stamp is left at zero until
// a sweep marks it.
func (c *Context) link(v *Value) {
	v.next = c.liveHead
	v.prev = nil
	if c.liveHead != nil {
		c.liveHead.prev = v
	}
	c.liveHead = v
	c.liveCount++
}

// unlink removes v from the context's live list. Called only when v's
// refcount reaches zero (ordinary reference counting) or during a GC sweep
// (cycle collection).
func (c *Context) unlink(v *Value) {
	if v.prev != nil {
		v.prev.next = v.next
	} else if c.liveHead == v {
		c.liveHead = v.next
	}
	if v.next != nil {
		v.next.prev = v.prev
	}
	v.prev, v.next = nil, nil
	c.liveCount--
}

// Retain increments v's reference count. Every *Property.Value assignment
// and every value handed back across the host boundary must be paired with
// a Retain; Release undoes it.
func (c *Context) Retain(v *Value) *Value {
	if v == nil {
		return v
	}
	v.refcount++
	return v
}

// Release decrements v's reference count, freeing it immediately if it
// reaches zero and the context is not mid-teardown or mid-sweep (in either
// of which cases the sweep itself owns disposal).
func (c *Context) Release(v *Value) {
	if v == nil || c.tearingDown || c.sweeping {
		return
	}
	v.refcount--
	if v.refcount <= 0 {
		c.destroy(v)
	}
}

// destroy clears v's own property list (breaking any cycles routed only
// through v) and unlinks it from the live list.
func (c *Context) destroy(v *Value) {
	for _, name := range v.propOrder {
		p := v.props[name]
		if p != nil && p.Owned && p.Value != nil {
			c.Release(p.Value)
		}
	}
	v.propOrder = nil
	v.props = nil
	c.unlink(v)
}

// setOwnProperty installs or replaces an own property on v. This is the
// single property-insertion path; the reference design's deprecated
// addChildNoDup/addChildOrReplace split collapses to this one function
// (see DESIGN.md Open Questions).
func (c *Context) setOwnProperty(v *Value, name string, value *Value, flags PropertyFlags) *Property {
	if p, ok := v.props[name]; ok {
		if p.Owned && p.Value != value {
			c.Release(p.Value)
			c.Retain(value)
		}
		p.Value = value
		p.Flags = flags
		return p
	}
	p := &Property{
		Name:  name,
		Value: c.Retain(value),
		Owner: v,
		Flags: flags,
		Owned: true,
	}
	v.props[name] = p
	v.propOrder = append(v.propOrder, name)
	if v.kind == KindArray {
		c.updateArrayLength(v, name)
	}
	return p
}

// deleteOwnProperty removes an own property if it is deletable. It reports
// false only when the property exists and is not deletable; an absent name
// reports true.
func (c *Context) deleteOwnProperty(v *Value, name string) bool {
	p, ok := v.props[name]
	if !ok {
		return true
	}
	if !p.Deletable() {
		return false
	}
	delete(v.props, name)
	for i, n := range v.propOrder {
		if n == name {
			v.propOrder = append(v.propOrder[:i], v.propOrder[i+1:]...)
			break
		}
	}
	if p.Owned {
		c.Release(p.Value)
	}
	return true
}

// ownProperty returns v's own property named name, without walking the
// prototype chain.
func (v *Value) ownProperty(name string) (*Property, bool) {
	p, ok := v.props[name]
	return p, ok
}

// OwnPropertyNames returns v's own property names in insertion order,
// always skipping hidden ones and, when enumerableOnly is set, also the
// non-enumerable ones - the order for-in
// iterates own properties, per spec section 5's ordering guarantee.
func (v *Value) OwnPropertyNames(enumerableOnly bool) []string {
	names := make([]string, 0, len(v.propOrder))
	for _, name := range v.propOrder {
		p := v.props[name]
		if p == nil || p.Hidden() {
			continue
		}
		if enumerableOnly && !p.Enumerable() {
			continue
		}
		names = append(names, name)
	}
	return names
}

// SetPrototype assigns v's prototype link after checking that doing so does
// not introduce a cycle, per the invariant that prototype links never form
// a cycle.
func (c *Context) SetPrototype(v, proto *Value) error {
	for p := proto; p != nil; p = p.proto {
		if p == v {
			return &compileError{Kind: TypeError, Message: "cyclic prototype value"}
		}
	}
	if v.proto != nil {
		c.Release(v.proto)
	}
	v.proto = c.Retain(proto)
	return nil
}

// Prototype returns v's prototype link, or nil for the top of a chain.
func (v *Value) Prototype() *Value { return v.proto }
