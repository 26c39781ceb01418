package tinyjs

// scopeData is the payload of a KindScope value. A scope is just another
// Value so that closures can retain their defining scope the same way any
// other object retains a property; property storage on the scope itself
// holds the bound identifiers (var/let/function/parameter bindings).
type scopeData struct {
	flavor scopeKind
	parent *Value // enclosing scope, nil only for the root
	with   *Value // consultation target, only set when flavor == scopeWith

	// thisVal is the value `this` resolves to when evaluating inside this
	// function scope. Inherited by lookup through non-function scopes.
	thisVal *Value

	// argumentsVal is the array-like bound to `arguments` inside a function
	// scope; nil for root/let/with scopes.
	argumentsVal *Value
}

// newScope allocates a KindScope value. parent is the enclosing scope in the
// chain; withTarget is non-nil only for a with(...) block scope. This
// generalizes the teacher's Call/Locals split (a Call carries an Actor, a
// Locals carries slots) into a single chained Value per spec's scope model.
func (c *Context) newScope(flavor scopeKind, parent, withTarget, thisVal *Value) *Value {
	v := c.newValue(kindScope)
	v.scopeData = &scopeData{
		flavor:  flavor,
		parent:  c.Retain(parent),
		with:    c.Retain(withTarget),
		thisVal: c.Retain(thisVal),
	}
	return v
}

// pushFunctionScope creates a new function-flavored scope chained to
// closureScope (the scope captured at the function's definition site, not
// the caller's scope: lexical, not dynamic, scoping).
func (c *Context) pushFunctionScope(closureScope, thisVal *Value) *Value {
	return c.newScope(scopeFunction, closureScope, nil, thisVal)
}

// pushLetScope creates a new block-scoped (let/const/catch-binding) scope
// chained to parent.
func (c *Context) pushLetScope(parent *Value) *Value {
	return c.newScope(scopeLet, parent, nil, c.thisOf(parent))
}

// pushWithScope creates a with(target) block scope: identifier lookups
// consult target's properties before falling through to parent.
func (c *Context) pushWithScope(parent, target *Value) *Value {
	return c.newScope(scopeWith, parent, target, c.thisOf(parent))
}

// thisOf returns the `this` binding visible from scope, walking up through
// non-function scopes (let/with scopes don't rebind `this`).
func (c *Context) thisOf(scope *Value) *Value {
	for s := scope; s != nil; s = s.scopeData.parent {
		if s.scopeData.thisVal != nil {
			return s.scopeData.thisVal
		}
	}
	return c.undefinedVal
}

// lookupIdentifier resolves name by walking the scope chain outward from
// scope. A with-flavored scope's target is consulted for a property named
// name, own or inherited, before falling through to its parent, per the
// with-statement's defined
// shadowing behavior. Returns the scope (or with-target object) that owns
// the binding, or nil if name is unbound anywhere in the chain.
func (c *Context) lookupIdentifier(scope *Value, name string) (owner *Value, prop *Property) {
	for s := scope; s != nil; s = s.scopeData.parent {
		if s.scopeData.flavor == scopeWith && s.scopeData.with != nil {
			if p, ok := s.scopeData.with.ownProperty(name); ok {
				return s.scopeData.with, p
			}
			if p, found := findProperty(s.scopeData.with, name); found {
				return s.scopeData.with, p
			}
		}
		if p, ok := s.ownProperty(name); ok {
			return s, p
		}
	}
	return nil, nil
}

// resolveIdentifier evaluates an identifier reference, returning a
// ReferenceError signal (spec's "Accessing an unbound identifier ... raises
// ReferenceError") when name is unbound anywhere in scope or its prototype
// consultation.
func (c *Context) resolveIdentifier(scope *Value, name string) (*Value, signal) {
	_, p := c.lookupIdentifier(scope, name)
	if p == nil {
		return nil, c.ThrowError(ReferenceError, "%s is not defined", name)
	}
	return c.readProperty(p), none
}

// declareBinding creates or overwrites a binding for name directly in
// scope's own properties (no chain walk): used for var hoisting, function
// parameter binding, and let/const/catch-clause declarations.
func (c *Context) declareBinding(scope *Value, name string, value *Value, flags PropertyFlags) {
	c.setOwnProperty(scope, name, value, flags)
}

// assignIdentifier resolves name in the scope chain and overwrites its
// value, or - if it is unbound anywhere - creates an implicit global
// binding on the root scope, per non-strict assignment semantics (spec
// section 5: assignment to an undeclared identifier is not itself a
// redeclaration error; it creates a global).
func (c *Context) assignIdentifier(scope *Value, name string, value *Value) signal {
	owner, p := c.lookupIdentifier(scope, name)
	if p == nil {
		c.setOwnProperty(c.root, name, value, DefaultUserFlags)
		return none
	}
	if !p.Writable() {
		return none
	}
	if owner != nil && owner.kind != kindScope {
		return c.writeProperty(owner, name, value)
	}
	c.setOwnProperty(owner, name, value, p.Flags)
	return none
}
