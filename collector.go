package tinyjs

// The interpreter's reference counting collects acyclic garbage
// immediately (Context.Release). Cycles - most commonly a function value
// closing over a scope that in turn owns that same function as a property
// - need an explicit mark-and-sweep pass, implemented here per spec
// section 4.G. There is no generational or incremental machinery: a sweep
// walks the whole live list in one pass, matching the interpreter's
// strictly single-threaded, synchronous execution model.

// gcRoots returns every value the context treats as reachable regardless
// of refcount: the root scope, every constant singleton, every built-in
// prototype, the in-flight exception slot (if any), and an optional extra
// value the caller wants to
// keep alive across the sweep (e.g. a value mid-construction that hasn't
// been stored anywhere yet).
func (c *Context) gcRoots(extra *Value) []*Value {
	roots := []*Value{
		c.root,
		c.undefinedVal, c.nullVal, c.trueVal, c.falseVal,
		c.nanVal, c.posInfVal, c.negInfVal, c.zeroVal, c.oneVal,
	}
	for _, proto := range c.protoList() {
		roots = append(roots, proto)
	}
	if c.exception != nil {
		roots = append(roots, c.exception)
	}
	if extra != nil {
		roots = append(roots, extra)
	}
	return roots
}

func (c *Context) protoList() []*Value {
	p := c.protos
	if p == nil {
		return nil
	}
	list := []*Value{p.object, p.array, p.function, p.str, p.number, p.boolean, p.regexp, p.errorBase}
	for _, proto := range p.errorByKind {
		list = append(list, proto)
	}
	return list
}

// mark stamps v and everything reachable from it (own properties,
// prototype link, closure scope, accessor get/set) with stamp, stopping
// at anything already carrying the current stamp to keep the walk
// terminating on cycles.
func (c *Context) mark(v *Value, stamp uint32) {
	if v == nil || v.tempID == stamp {
		return
	}
	v.tempID = stamp
	if v.proto != nil {
		c.mark(v.proto, stamp)
	}
	for _, name := range v.propOrder {
		if p := v.props[name]; p != nil {
			c.mark(p.Value, stamp)
		}
	}
	switch v.kind {
	case kindFunction:
		if v.functionData != nil {
			c.mark(v.functionData.scope, stamp)
		}
	case kindAccessor:
		if v.accessorData != nil {
			c.mark(v.accessorData.Get, stamp)
			c.mark(v.accessorData.Set, stamp)
		}
	case kindScope:
		if v.scopeData != nil {
			c.mark(v.scopeData.parent, stamp)
			c.mark(v.scopeData.with, stamp)
			c.mark(v.scopeData.thisVal, stamp)
			c.mark(v.scopeData.argumentsVal, stamp)
		}
	case kindError:
		// error payloads carry no *Value references beyond the common
		// property list and prototype link already marked above.
	}
}

// CollectGarbage runs one mark-and-sweep cycle per spec section 4.G: a
// fresh stamp, a walk from the root set (plus any extra value the caller
// wants protected), then a single pass over the live list destroying
// anything left unmarked. It is never run implicitly; the host decides
// when to call it (the equivalent of the reference design's
// ClearUnreferedVars).
func (c *Context) CollectGarbage(extra *Value) int {
	c.gcStamp++
	stamp := c.gcStamp
	for _, root := range c.gcRoots(extra) {
		c.mark(root, stamp)
	}

	c.sweeping = true
	defer func() { c.sweeping = false }()

	var unreached []*Value
	for v := c.liveHead; v != nil; v = v.next {
		if v.tempID != stamp {
			unreached = append(unreached, v)
		}
	}
	for _, v := range unreached {
		v.propOrder = nil
		v.props = nil
	}
	collected := 0
	for _, v := range unreached {
		c.unlink(v)
		collected++
	}
	if c.Trace != nil {
		c.Trace("gc-sweep", "collected", collected, "live", c.liveCount)
	}
	return collected
}
