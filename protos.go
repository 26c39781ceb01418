package tinyjs

// prototypes holds the built-in prototype objects that give every value of
// a given kind its default behavior (toString, valueOf, method lookup).
// Exactly one instance exists per Context, mirroring the reference design's
// per-context (not process-global) singletons.
type prototypes struct {
	object   *Value
	array    *Value
	function *Value
	str      *Value
	number   *Value
	boolean  *Value
	regexp   *Value

	// one prototype per ErrorKind, all chained to a common Error.prototype
	// except GenericError, which *is* Error.prototype.
	errorBase  *Value
	errorByKind map[ErrorKind]*Value
}

// errorProtoFor returns the prototype object that instanceof checks like
// `e instanceof TypeError` walk through, per spec scenario 4.
func (p *prototypes) errorProtoFor(kind ErrorKind) *Value {
	if p.errorByKind == nil {
		return p.errorBase
	}
	if proto, ok := p.errorByKind[kind]; ok {
		return proto
	}
	return p.errorBase
}

// initPrototypes builds the built-in prototype chain: every prototype
// object (other than Object.prototype itself) chains to Object.prototype,
// the way the teacher's initObject sets vm.BaseObject as the ultimate proto
// of every core type.
func (c *Context) initPrototypes() {
	p := &prototypes{}
	c.protos = p

	p.object = c.bareObject()
	p.object.extensible = true

	mk := func() *Value {
		v := c.bareObject()
		v.proto = c.Retain(p.object)
		return v
	}
	p.array = mk()
	p.function = mk()
	p.str = mk()
	p.number = mk()
	p.boolean = mk()
	p.regexp = mk()

	p.errorBase = mk()
	p.errorByKind = map[ErrorKind]*Value{GenericError: p.errorBase}
	for _, kind := range []ErrorKind{EvalError, RangeError, ReferenceError, SyntaxError, TypeError} {
		proto := c.bareObject()
		proto.proto = c.Retain(p.errorBase)
		p.errorByKind[kind] = proto
	}
}

// bareObject allocates a KindObject value with no properties and no
// prototype set yet; used while bootstrapping the prototype graph itself
// and by Object.create, which sets (or, for null, omits) the prototype.
func (c *Context) bareObject() *Value {
	v := &Value{kind: KindObject, extensible: true, props: make(map[string]*Property)}
	c.link(v)
	return v
}

