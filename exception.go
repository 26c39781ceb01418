package tinyjs

import "fmt"

// ToJSONInterface converts v into a plain Go value built from nil, bool,
// float64, string, []any, and map[string]any - the shapes encoding/json
// already knows how to marshal - so that a JSON.stringify native can be a
// thin wrapper around json.Marshal. Functions, accessors, scopes, and
// regexes have no JSON representation and convert to nil, mirroring
// JSON.stringify's own behavior of omitting or nulling such members. A
// cyclic object graph is rejected with a TypeError, matching
// JSON.stringify's observable failure on a cycle.
func (c *Context) ToJSONInterface(v *Value) (any, error) {
	return c.toJSONInterface(v, map[*Value]bool{})
}

func (c *Context) toJSONInterface(v *Value, seen map[*Value]bool) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch v.kind {
	case kindUndefined, kindFunction, kindRegexp, kindScope, kindAccessor, kindNull, kindInfinity, kindNaN:
		return nil, nil
	case kindBool:
		return v.boolData, nil
	case kindInt:
		return float64(v.intData), nil
	case kindFloat:
		return v.floatData, nil
	case kindString:
		return v.stringData, nil
	case kindError:
		return describeError(v), nil
	case kindArray:
		if seen[v] {
			return nil, &compileError{Kind: TypeError, Message: "cyclic object value"}
		}
		seen[v] = true
		defer delete(seen, v)
		indices := c.ArrayIndices(v)
		out := make([]any, 0, len(indices))
		for _, idx := range indices {
			el, err := c.toJSONInterface(c.ArrayGet(v, idx), seen)
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
		return out, nil
	case kindObject:
		if seen[v] {
			return nil, &compileError{Kind: TypeError, Message: "cyclic object value"}
		}
		seen[v] = true
		defer delete(seen, v)
		out := make(map[string]any, len(v.propOrder))
		for _, name := range v.OwnPropertyNames(true) {
			el, err := c.toJSONInterface(c.GetProperty(v, name), seen)
			if err != nil {
				return nil, err
			}
			out[name] = el
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot serialize value of kind %v", v.kind)
	}
}

// FromJSONInterface builds a *Value tree from a Go value shaped like
// encoding/json's decode output (nil, bool, float64, string, []any,
// map[string]any), the reverse of ToJSONInterface.
func (c *Context) FromJSONInterface(v any) *Value {
	switch t := v.(type) {
	case nil:
		return c.nullVal
	case bool:
		return c.Bool(t)
	case float64:
		return c.NewNumber(t)
	case string:
		return c.NewString(t)
	case []any:
		arr := c.NewArray()
		for _, el := range t {
			c.ArrayPush(arr, c.FromJSONInterface(el))
		}
		return arr
	case map[string]any:
		obj := c.NewObject()
		for k, el := range t {
			c.setOwnProperty(obj, k, c.FromJSONInterface(el), DefaultUserFlags)
		}
		return obj
	default:
		return c.undefinedVal
	}
}
