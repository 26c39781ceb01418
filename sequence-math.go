package tinyjs

import "math"

// installMath registers the Math object and its methods as native
// functions, per spec's domain-stack component: abs/floor/ceil/round/sqrt/
// pow/max/min/random (plus log/exp/sin/cos/tan and the PI/E constants), all
// backed by the standard math package (and math/rand for random, whose
// generator NewContext creates in context.go).
func (c *Context) installMath() {
	mathObj := c.NewObject()
	c.setOwnProperty(c.root, "Math", mathObj, DefaultNativeFlags)

	unary := func(name string, fn func(float64) float64) {
		nf := c.NewNativeFunction("Math."+name, []string{"x"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
			return c.NewNumber(fn(c.argNumber(args, 0))), none
		}, nil)
		c.setOwnProperty(mathObj, name, nf, DefaultNativeFlags)
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("sqrt", math.Sqrt)
	unary("log", math.Log)
	unary("exp", math.Exp)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)

	powFn := c.NewNativeFunction("Math.pow", []string{"x", "y"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewNumber(math.Pow(c.argNumber(args, 0), c.argNumber(args, 1))), none
	}, nil)
	c.setOwnProperty(mathObj, "pow", powFn, DefaultNativeFlags)

	maxFn := c.NewNativeFunction("Math.max", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if len(args) == 0 {
			return c.negInfVal, none
		}
		best := c.ToNumber(args[0])
		for _, a := range args[1:] {
			if n := c.ToNumber(a); n > best {
				best = n
			}
		}
		return c.NewNumber(best), none
	}, nil)
	c.setOwnProperty(mathObj, "max", maxFn, DefaultNativeFlags)

	minFn := c.NewNativeFunction("Math.min", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		if len(args) == 0 {
			return c.posInfVal, none
		}
		best := c.ToNumber(args[0])
		for _, a := range args[1:] {
			if n := c.ToNumber(a); n < best {
				best = n
			}
		}
		return c.NewNumber(best), none
	}, nil)
	c.setOwnProperty(mathObj, "min", minFn, DefaultNativeFlags)

	randomFn := c.NewNativeFunction("Math.random", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewNumber(c.rng.Float64()), none
	}, nil)
	c.setOwnProperty(mathObj, "random", randomFn, DefaultNativeFlags)

	c.setOwnProperty(mathObj, "PI", c.NewFloat(math.Pi), DefaultNativeFlags)
	c.setOwnProperty(mathObj, "E", c.NewFloat(math.E), DefaultNativeFlags)
}

// argNumber reads args[i] coerced to a number, or NaN if the argument is
// absent - matching how a variadic-tolerant native like Math.abs behaves
// when called with too few arguments.
func (c *Context) argNumber(args []*Value, i int) float64 {
	if i >= len(args) {
		return c.ToNumber(c.undefinedVal)
	}
	return c.ToNumber(args[i])
}

func (c *Context) argOr(args []*Value, i int) *Value {
	if i >= len(args) {
		return c.undefinedVal
	}
	return args[i]
}
