package tinyjs

import (
	"strconv"
)

// arrayLengthSlot names the hidden own property in which an array keeps its
// length; "length" itself is not stored as an ordinary property. The length
// invariant (length = 1 + the highest numeric own key, or 0 if none) is
// maintained incrementally in updateArrayLength and read and written through
// arrayLengthValue/setArrayLength, matching the spec's rule that "length" is
// a live, specially-governed property rather than a plain data slot.
const arrayLengthSlot = "__length__"

// NewArray allocates an empty array chained to Array.prototype.
func (c *Context) NewArray() *Value {
	v := c.newValue(kindArray)
	v.proto = c.Retain(c.protos.array)
	c.setOwnProperty(v, arrayLengthSlot, c.NewInt(0), FlagHidden)
	return v
}

// arrayIndex reports whether name is a canonical array index string (no
// leading zeros other than "0" itself, fits in an int32) and returns its
// numeric value.
func arrayIndex(name string) (int64, bool) {
	if name == "" {
		return 0, false
	}
	if name == "0" {
		return 0, true
	}
	if name[0] < '1' || name[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseInt(name, 10, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// updateArrayLength is invoked by setOwnProperty whenever a property is
// added to a KindArray value; it grows the cached length slot when name is
// a numeric index at or beyond the current length.
func (c *Context) updateArrayLength(v *Value, name string) {
	idx, ok := arrayIndex(name)
	if !ok {
		return
	}
	cur := c.rawArrayLength(v)
	if idx+1 > cur {
		c.setOwnProperty(v, arrayLengthSlot, c.NewInt(float64(idx+1)), FlagHidden)
	}
}

func (c *Context) rawArrayLength(v *Value) int64 {
	p, ok := v.ownProperty(arrayLengthSlot)
	if !ok || p.Value == nil {
		return 0
	}
	return int64(p.Value.intData)
}

// arrayLengthValue returns v's current length as a script-visible number.
func (c *Context) arrayLengthValue(v *Value) *Value {
	return c.NewInt(float64(c.rawArrayLength(v)))
}

// setArrayLength implements assignment to arr.length: growing it is a
// no-op beyond recording the new length; shrinking it deletes every own
// property whose index is now out of range, per the truncation rule.
func (c *Context) setArrayLength(v *Value, value *Value) signal {
	n := c.ToNumber(value)
	newLen := int64(c.toUint32(n))
	oldLen := c.rawArrayLength(v)
	if newLen < oldLen {
		for i := newLen; i < oldLen; i++ {
			c.deleteOwnProperty(v, strconv.FormatInt(i, 10))
		}
	}
	c.setOwnProperty(v, arrayLengthSlot, c.NewInt(float64(newLen)), FlagHidden)
	return none
}

// ArrayPush appends value at the end of v and returns the new length,
// grounded on the same index-then-length-bump pattern Array.prototype.push
// uses in the standard library bridge.
func (c *Context) ArrayPush(v *Value, value *Value) int64 {
	idx := c.rawArrayLength(v)
	c.setOwnProperty(v, strconv.FormatInt(idx, 10), value, DefaultUserFlags)
	return c.rawArrayLength(v)
}

// ArrayGet returns the element at idx, or undefined if absent.
func (c *Context) ArrayGet(v *Value, idx int64) *Value {
	return c.GetProperty(v, strconv.FormatInt(idx, 10))
}

// ArrayIndices returns v's own numeric-index property names as integers,
// sorted ascending - the order Array.prototype iteration methods walk.
func (c *Context) ArrayIndices(v *Value) []int64 {
	var out []int64
	for _, name := range v.propOrder {
		if idx, ok := arrayIndex(name); ok {
			out = append(out, idx)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
