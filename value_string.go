package tinyjs

import "strconv"

// NewString returns a string value for s, memoized per context for strings
// of up to 64 bytes; longer strings get a fresh value each call. Strings are
// byte strings (spec section 4.C: `string` (byte string)), so indexing and
// length operate on raw bytes, not runes.
func (c *Context) NewString(s string) *Value {
	if v, ok := c.stringMemo[s]; ok {
		return v
	}
	v := c.newValue(kindString)
	v.stringData = s
	if len(s) <= 64 {
		c.stringMemo[s] = v
	}
	return v
}

// stringSpecialProperty resolves the handful of property names that a
// string value answers itself rather than through String.prototype:
// "length" and numeric byte indices.
func (c *Context) stringSpecialProperty(v *Value, name string) *Value {
	if name == "length" {
		return c.NewInt(float64(len(v.stringData)))
	}
	if idx, ok := arrayIndex(name); ok {
		if idx < 0 || idx >= int64(len(v.stringData)) {
			return c.undefinedVal
		}
		return c.NewString(string(v.stringData[idx]))
	}
	return nil
}

func (c *Context) arrayToString(v *Value) string {
	var b []byte
	for i, idx := range c.ArrayIndices(v) {
		if i > 0 {
			b = append(b, ',')
		}
		el := c.ArrayGet(v, idx)
		if el.kind != kindUndefined && el.kind != kindNull {
			b = append(b, c.ToString(el)...)
		}
	}
	return string(b)
}

func (c *Context) functionToString(v *Value) string {
	if v.functionData == nil {
		return "function () { [native code] }"
	}
	if v.functionData.native != nil {
		return "function " + v.functionData.name + "() { [native code] }"
	}
	return "function " + v.functionData.name + "() { [script code] }"
}

func (c *Context) regexpToString(v *Value) string {
	if v.regexpData == nil {
		return "/(?:)/"
	}
	return "/" + v.regexpData.Source + "/" + v.regexpData.FlagsString()
}

// quoteForIndex renders an integer as a property-name string, used by
// array/arguments indexing.
func quoteForIndex(i int64) string { return strconv.FormatInt(i, 10) }
