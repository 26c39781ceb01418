package tinyjs

import (
	"math"
	"strconv"
	"strings"
)

// NewInt returns the context's memoized integer value for n, truncated to
// signed 32-bit range the way the reference design's integer kind is
// always 32-bit.
func (c *Context) NewInt(n float64) *Value {
	i := float64ToInt32(n)
	if v, ok := c.numberMemo[float64(i)]; ok {
		return v
	}
	v := c.newValue(kindInt)
	v.intData = i
	c.numberMemo[float64(i)] = v
	return v
}

// NewFloat returns a double-kind value for n, storing n as given: it does
// not route NaN or ±Infinity to their dedicated kinds, and an integral
// float like 2.0 is stored as KindFloat too. NewNumber is the constructor
// that picks the canonical kind.
func (c *Context) NewFloat(n float64) *Value {
	v := c.newValue(kindFloat)
	v.floatData = n
	return v
}

// NewNumber picks the canonical kind for n: NaN, ±Infinity, a 32-bit-exact
// integer, or a double, matching the value model's four numeric kinds.
func (c *Context) NewNumber(n float64) *Value {
	switch {
	case math.IsNaN(n):
		return c.nanVal
	case math.IsInf(n, 1):
		return c.posInfVal
	case math.IsInf(n, -1):
		return c.negInfVal
	case n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32:
		return c.NewInt(n)
	default:
		return c.NewFloat(n)
	}
}

func float64ToInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(int64(n))
}

// ToNumber implements to_number for every kind, per spec section 4.C: empty
// string coerces to 0, "Infinity"/"-Infinity" to signed infinity, otherwise
// a parseable numeral or NaN; objects coerce via ToPrimitive with a number
// hint first.
func (c *Context) ToNumber(v *Value) float64 {
	if v == nil {
		return math.NaN()
	}
	switch v.kind {
	case kindUndefined:
		return math.NaN()
	case kindNull:
		return 0
	case kindBool:
		if v.boolData {
			return 1
		}
		return 0
	case kindInt:
		return float64(v.intData)
	case kindFloat:
		return v.floatData
	case kindInfinity:
		return math.Inf(int(v.infSign))
	case kindNaN:
		return math.NaN()
	case kindString:
		return stringToNumber(v.stringData)
	case kindObject, kindArray, kindError, kindRegexp, kindFunction:
		prim, sig := c.ToPrimitive(v, "number")
		if sig.stops() {
			return math.NaN()
		}
		return c.ToNumber(prim)
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToInt32 implements to_int32: ToNumber followed by wraparound truncation to
// 32 bits (NaN/Infinity/0 map to 0).
func (c *Context) ToInt32(v *Value) int32 {
	n := c.ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(uint32(int64(n)))
}

// ToUint32 implements to_uint32.
func (c *Context) ToUint32(v *Value) uint32 {
	return c.toUint32(c.ToNumber(v))
}

func (c *Context) toUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint32(int64(n))
}

// ToBoolean implements to_boolean: false, 0, NaN, "", null, and undefined
// are falsy; every other value (including every object, even an empty one)
// is truthy.
func (c *Context) ToBoolean(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case kindUndefined, kindNull, kindNaN:
		return false
	case kindBool:
		return v.boolData
	case kindInt:
		return v.intData != 0
	case kindFloat:
		return v.floatData != 0
	case kindInfinity:
		return true
	case kindString:
		return v.stringData != ""
	default:
		return true
	}
}

// ToString implements to_string for every kind, falling back to
// ToPrimitive(hint="string") for objects.
func (c *Context) ToString(v *Value) string {
	if v == nil {
		return "undefined"
	}
	switch v.kind {
	case kindUndefined:
		return "undefined"
	case kindNull:
		return "null"
	case kindBool:
		if v.boolData {
			return "true"
		}
		return "false"
	case kindInt:
		return strconv.FormatInt(int64(v.intData), 10)
	case kindFloat:
		return strconv.FormatFloat(v.floatData, 'g', -1, 64)
	case kindInfinity:
		if v.infSign < 0 {
			return "-Infinity"
		}
		return "Infinity"
	case kindNaN:
		return "NaN"
	case kindString:
		return v.stringData
	case kindArray:
		return c.arrayToString(v)
	case kindFunction:
		return c.functionToString(v)
	case kindError:
		return describeError(v)
	case kindRegexp:
		return c.regexpToString(v)
	default:
		prim, sig := c.ToPrimitive(v, "string")
		if sig.stops() {
			return "undefined"
		}
		if prim.kind == kindString {
			return prim.stringData
		}
		return c.ToString(prim)
	}
}

// ToPrimitive implements to_primitive(hint): for a non-object input it is
// the identity; for an object it calls valueOf then toString (or the
// reverse when hint is "string"), via the prototype chain, raising
// TypeError if neither returns a primitive.
func (c *Context) ToPrimitive(v *Value, hint string) (*Value, signal) {
	if v == nil {
		return c.undefinedVal, none
	}
	if !isObjectLikeKind(v.kind) {
		return v, none
	}
	order := [2]string{"valueOf", "toString"}
	if hint == "string" {
		order = [2]string{"toString", "valueOf"}
	}
	for _, name := range order {
		p, ok := findProperty(v, name)
		if !ok {
			continue
		}
		fn := c.readProperty(p)
		if fn == nil || fn.kind != kindFunction {
			continue
		}
		result, sig := c.callFunction(fn, v, nil)
		if sig.stops() {
			return nil, sig
		}
		if !isObjectLikeKind(result.kind) {
			return result, none
		}
	}
	return nil, c.ThrowError(TypeError, "cannot convert object to primitive value")
}

func isObjectLikeKind(k Kind) bool {
	switch k {
	case kindObject, kindArray, kindError, kindRegexp, kindFunction:
		return true
	default:
		return false
	}
}

// StrictEquals implements === per spec: compare kind then bit-equal
// payload; two NaNs are never equal; -0 equals +0.
func (c *Context) StrictEquals(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if numericKind(a.kind) && numericKind(b.kind) {
		if a.kind == kindNaN || b.kind == kindNaN {
			return false
		}
		return c.ToNumber(a) == c.ToNumber(b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindUndefined, kindNull, kindNaN:
		return true
	case kindBool:
		return a.boolData == b.boolData
	case kindString:
		return a.stringData == b.stringData
	default:
		return a == b
	}
}

func numericKind(k Kind) bool {
	switch k {
	case kindInt, kindFloat, kindInfinity, kindNaN:
		return true
	default:
		return false
	}
}

// AbstractEquals implements == per the abstract-equality lattice described
// in spec section 4.C.
func (c *Context) AbstractEquals(a, b *Value) (bool, signal) {
	if a == nil || b == nil {
		return a == b, none
	}
	if (a.kind == kindNull && b.kind == kindUndefined) || (a.kind == kindUndefined && b.kind == kindNull) {
		return true, none
	}
	if numericKind(a.kind) && numericKind(b.kind) {
		return c.StrictEquals(a, b), none
	}
	if a.kind == kindString && numericKind(b.kind) {
		return stringToNumber(a.stringData) == c.ToNumber(b), none
	}
	if numericKind(a.kind) && b.kind == kindString {
		return c.ToNumber(a) == stringToNumber(b.stringData), none
	}
	if a.kind == kindBool {
		return c.AbstractEquals(c.NewNumber(c.ToNumber(a)), b)
	}
	if b.kind == kindBool {
		return c.AbstractEquals(a, c.NewNumber(c.ToNumber(b)))
	}
	if a.kind == kindString && b.kind == kindString {
		return a.stringData == b.stringData, none
	}
	if isObjectLikeKind(a.kind) && !isObjectLikeKind(b.kind) {
		prim, sig := c.ToPrimitive(a, "")
		if sig.stops() {
			return false, sig
		}
		return c.AbstractEquals(prim, b)
	}
	if !isObjectLikeKind(a.kind) && isObjectLikeKind(b.kind) {
		prim, sig := c.ToPrimitive(b, "")
		if sig.stops() {
			return false, sig
		}
		return c.AbstractEquals(a, prim)
	}
	return a == b, none
}

// Compare implements the ordering used by <, <=, >, >=: both operands
// coerce to primitive with a number hint; if both primitives are strings,
// compare lexicographically by byte, otherwise numerically. Returns
// (cmp, numeric-comparison-is-valid, signal) where numeric-comparison-is-valid
// is false when either side is NaN (per spec, NaN makes every relational
// comparison false).
func (c *Context) Compare(a, b *Value) (cmp int, ok bool, sig signal) {
	pa, sig := c.ToPrimitive(a, "number")
	if sig.stops() {
		return 0, false, sig
	}
	pb, sig := c.ToPrimitive(b, "number")
	if sig.stops() {
		return 0, false, sig
	}
	if pa.kind == kindString && pb.kind == kindString {
		return strings.Compare(pa.stringData, pb.stringData), true, none
	}
	na, nb := c.ToNumber(pa), c.ToNumber(pb)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return 0, false, none
	}
	switch {
	case na < nb:
		return -1, true, none
	case na > nb:
		return 1, true, none
	default:
		return 0, true, none
	}
}

// mathsOp implements the arithmetic/bitwise operator dispatch described in
// spec section 4.C. op is the operator's source spelling ("+", "-", "*",
// "/", "%", "&", "|", "^", "<<", ">>", ">>>").
func (c *Context) mathsOp(a, b *Value, op string) (*Value, signal) {
	switch op {
	case "+":
		pa, sig := c.ToPrimitive(a, "")
		if sig.stops() {
			return nil, sig
		}
		pb, sig := c.ToPrimitive(b, "")
		if sig.stops() {
			return nil, sig
		}
		if pa.kind == kindString || pb.kind == kindString {
			return c.NewString(c.ToString(pa) + c.ToString(pb)), none
		}
		return c.NewNumber(c.ToNumber(pa) + c.ToNumber(pb)), none
	case "-":
		return c.NewNumber(c.ToNumber(a) - c.ToNumber(b)), none
	case "*":
		return c.NewNumber(c.ToNumber(a) * c.ToNumber(b)), none
	case "/":
		nb := c.ToNumber(b)
		na := c.ToNumber(a)
		if nb == 0 {
			if na == 0 || math.IsNaN(na) {
				return c.nanVal, none
			}
			if (na < 0) == (math.Signbit(nb)) {
				return c.posInfVal, none
			}
			return c.negInfVal, none
		}
		return c.NewNumber(na / nb), none
	case "%":
		nb := c.ToNumber(b)
		if nb == 0 {
			return c.nanVal, none
		}
		return c.NewNumber(math.Mod(c.ToNumber(a), nb)), none
	case "&":
		return c.NewNumber(float64(c.ToInt32(a) & c.ToInt32(b))), none
	case "|":
		return c.NewNumber(float64(c.ToInt32(a) | c.ToInt32(b))), none
	case "^":
		return c.NewNumber(float64(c.ToInt32(a) ^ c.ToInt32(b))), none
	case "<<":
		return c.NewNumber(float64(c.ToInt32(a) << (c.ToUint32(b) & 31))), none
	case ">>":
		return c.NewNumber(float64(c.ToInt32(a) >> (c.ToUint32(b) & 31))), none
	case ">>>":
		return c.NewNumber(float64(c.ToUint32(a) >> (c.ToUint32(b) & 31))), none
	default:
		return nil, c.ThrowError(TypeError, "unsupported operator %q", op)
	}
}
