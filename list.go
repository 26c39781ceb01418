package tinyjs

import "strings"

// installArrayPrototype registers the Array.prototype methods listed in
// spec's domain-stack component: push/pop/shift/unshift/slice/splice/
// indexOf/join/forEach/map/filter/reduce. Each is an ordinary native
// function set on Array.prototype; the evaluator has no special-cased
// support for any of them.
func (c *Context) installArrayPrototype() {
	reg := func(name string, params []string, fn NativeFunc) {
		nf := c.NewNativeFunction("Array."+name, params, fn, nil)
		c.setOwnProperty(c.protos.array, name, nf, DefaultNativeFlags)
	}

	reg("push", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		for _, a := range args {
			c.ArrayPush(this, a)
		}
		return c.arrayLengthValue(this), none
	})

	reg("pop", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		idxs := c.ArrayIndices(this)
		if len(idxs) == 0 {
			return c.undefinedVal, none
		}
		last := idxs[len(idxs)-1]
		v := c.ArrayGet(this, last)
		c.deleteOwnProperty(this, quoteForIndex(last))
		c.setArrayLength(this, c.NewInt(float64(last)))
		return v, none
	})

	reg("shift", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		idxs := c.ArrayIndices(this)
		if len(idxs) == 0 {
			return c.undefinedVal, none
		}
		first := c.ArrayGet(this, idxs[0])
		rest := make([]*Value, 0, len(idxs)-1)
		for _, idx := range idxs[1:] {
			rest = append(rest, c.ArrayGet(this, idx))
			c.deleteOwnProperty(this, quoteForIndex(idx))
		}
		c.setArrayLength(this, c.NewInt(0))
		for _, v := range rest {
			c.ArrayPush(this, v)
		}
		return first, none
	})

	reg("unshift", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		idxs := c.ArrayIndices(this)
		old := make([]*Value, 0, len(idxs))
		for _, idx := range idxs {
			old = append(old, c.ArrayGet(this, idx))
			c.deleteOwnProperty(this, quoteForIndex(idx))
		}
		c.setArrayLength(this, c.NewInt(0))
		for _, a := range args {
			c.ArrayPush(this, a)
		}
		for _, v := range old {
			c.ArrayPush(this, v)
		}
		return c.arrayLengthValue(this), none
	})

	reg("slice", []string{"start", "end"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		idxs := c.ArrayIndices(this)
		n := int64(len(idxs))
		start := sliceBound(c.argNumber(args, 0), n, 0)
		endArg := float64(n)
		if len(args) > 1 && args[1].kind != kindUndefined {
			endArg = c.ToNumber(args[1])
		}
		end := sliceBound(endArg, n, n)
		out := c.NewArray()
		for i := start; i < end; i++ {
			c.ArrayPush(out, c.ArrayGet(this, idxs[i]))
		}
		return out, none
	})

	reg("splice", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		idxs := c.ArrayIndices(this)
		n := int64(len(idxs))
		start := sliceBound(c.argNumber(args, 0), n, 0)
		deleteCount := n - start
		if len(args) > 1 {
			deleteCount = int64(c.ToNumber(args[1]))
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > n {
				deleteCount = n - start
			}
		}
		removed := c.NewArray()
		for i := start; i < start+deleteCount; i++ {
			c.ArrayPush(removed, c.ArrayGet(this, idxs[i]))
		}
		var inserted []*Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		var tail []*Value
		for i := start + deleteCount; i < n; i++ {
			tail = append(tail, c.ArrayGet(this, idxs[i]))
		}
		for _, idx := range idxs[start:] {
			c.deleteOwnProperty(this, quoteForIndex(idx))
		}
		c.setArrayLength(this, c.NewInt(float64(start)))
		for _, v := range inserted {
			c.ArrayPush(this, v)
		}
		for _, v := range tail {
			c.ArrayPush(this, v)
		}
		return removed, none
	})

	reg("indexOf", []string{"searchElement"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		target := c.argOr(args, 0)
		for _, idx := range c.ArrayIndices(this) {
			if c.StrictEquals(c.ArrayGet(this, idx), target) {
				return c.NewInt(float64(idx)), none
			}
		}
		return c.NewInt(-1), none
	})

	reg("join", []string{"separator"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		sep := ","
		if len(args) > 0 && args[0].kind != kindUndefined {
			sep = c.ToString(args[0])
		}
		var parts []string
		for _, idx := range c.ArrayIndices(this) {
			el := c.ArrayGet(this, idx)
			if el.kind == kindUndefined || el.kind == kindNull {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, c.ToString(el))
		}
		return c.NewString(strings.Join(parts, sep)), none
	})

	reg("forEach", []string{"callback"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		cb := c.argOr(args, 0)
		for _, idx := range c.ArrayIndices(this) {
			el := c.ArrayGet(this, idx)
			if _, sig := c.callFunction(cb, c.undefinedVal, []*Value{el, c.NewInt(float64(idx)), this}); sig.stops() {
				return nil, sig
			}
		}
		return c.undefinedVal, none
	})

	reg("map", []string{"callback"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		cb := c.argOr(args, 0)
		out := c.NewArray()
		for _, idx := range c.ArrayIndices(this) {
			el := c.ArrayGet(this, idx)
			v, sig := c.callFunction(cb, c.undefinedVal, []*Value{el, c.NewInt(float64(idx)), this})
			if sig.stops() {
				return nil, sig
			}
			c.ArrayPush(out, v)
		}
		return out, none
	})

	reg("filter", []string{"callback"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		cb := c.argOr(args, 0)
		out := c.NewArray()
		for _, idx := range c.ArrayIndices(this) {
			el := c.ArrayGet(this, idx)
			keep, sig := c.callFunction(cb, c.undefinedVal, []*Value{el, c.NewInt(float64(idx)), this})
			if sig.stops() {
				return nil, sig
			}
			if c.ToBoolean(keep) {
				c.ArrayPush(out, el)
			}
		}
		return out, none
	})

	reg("reduce", []string{"callback", "initialValue"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		cb := c.argOr(args, 0)
		idxs := c.ArrayIndices(this)
		var acc *Value
		start := 0
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(idxs) == 0 {
				return nil, c.ThrowError(TypeError, "reduce of empty array with no initial value")
			}
			acc = c.ArrayGet(this, idxs[0])
			start = 1
		}
		for _, idx := range idxs[start:] {
			el := c.ArrayGet(this, idx)
			v, sig := c.callFunction(cb, c.undefinedVal, []*Value{acc, el, c.NewInt(float64(idx)), this})
			if sig.stops() {
				return nil, sig
			}
			acc = v
		}
		return acc, none
	})
}

func sliceBound(n float64, length, def int64) int64 {
	i := int64(n)
	if n != n { // NaN
		i = def
	}
	if i < 0 {
		i += length
	}
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}
