package tinyjs

import (
	"math"
	"strconv"
)

// installNumberPrototype registers Number.prototype.toString/valueOf/
// toFixed, and the Number constructor with its static properties
// (MAX_VALUE, MIN_VALUE, NaN, POSITIVE_INFINITY, NEGATIVE_INFINITY) and
// static methods (isNaN, isFinite, isInteger).
func (c *Context) installNumberPrototype() {
	numberCtor := c.NewNativeFunction("Number", []string{"value"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if len(args) == 0 {
			return c.zeroVal, none
		}
		return c.NewNumber(c.ToNumber(args[0])), none
	}, nil)
	c.setOwnProperty(numberCtor, "prototype", c.protos.number, FlagWritable)
	c.setOwnProperty(numberCtor, "MAX_VALUE", c.NewFloat(math.MaxFloat64), FlagWritable)
	c.setOwnProperty(numberCtor, "MIN_VALUE", c.NewFloat(math.SmallestNonzeroFloat64), FlagWritable)
	c.setOwnProperty(numberCtor, "NaN", c.nanVal, FlagWritable)
	c.setOwnProperty(numberCtor, "POSITIVE_INFINITY", c.posInfVal, FlagWritable)
	c.setOwnProperty(numberCtor, "NEGATIVE_INFINITY", c.negInfVal, FlagWritable)
	c.setOwnProperty(c.root, "Number", numberCtor, DefaultNativeFlags)

	regCtor := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("Number."+name, nil, fn, nil)
		c.setOwnProperty(numberCtor, name, nf, DefaultNativeFlags)
	}
	regCtor("isNaN", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		v := c.argOr(args, 0)
		return c.Bool(v != nil && v.kind == kindNaN), none
	})
	regCtor("isFinite", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		v := c.argOr(args, 0)
		return c.Bool(v != nil && (v.kind == kindInt || v.kind == kindFloat)), none
	})
	regCtor("isInteger", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		v := c.argOr(args, 0)
		if v == nil {
			return c.falseVal, none
		}
		if v.kind == kindInt {
			return c.trueVal, none
		}
		if v.kind == kindFloat {
			return c.Bool(v.floatData == math.Trunc(v.floatData)), none
		}
		return c.falseVal, none
	})

	reg := func(name string, fn NativeFunc) {
		nf := c.NewNativeFunction("Number."+name, nil, fn, nil)
		c.setOwnProperty(c.protos.number, name, nf, DefaultNativeFlags)
	}

	reg("toString", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(c.ToString(this)), none
	})

	reg("valueOf", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return this, none
	})

	reg("toFixed", func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		digits := int(c.argNumber(args, 0))
		n := c.ToNumber(this)
		return c.NewString(strconv.FormatFloat(n, 'f', digits, 64)), none
	})
}
