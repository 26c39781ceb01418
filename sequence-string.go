package tinyjs

import "strings"

// installStringPrototype registers the String.prototype methods listed in
// spec's domain-stack component: charAt/indexOf/slice/split/toUpperCase/
// toLowerCase/replace. replace consults the regexp Matcher when its
// pattern argument is a regexp value, exercising that seam end to end
// rather than leaving it inert.
func (c *Context) installStringPrototype() {
	reg := func(name string, params []string, fn NativeFunc) {
		nf := c.NewNativeFunction("String."+name, params, fn, nil)
		c.setOwnProperty(c.protos.str, name, nf, DefaultNativeFlags)
	}

	reg("charAt", []string{"index"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := c.ToString(this)
		i := int(c.argNumber(args, 0))
		if i < 0 || i >= len(s) {
			return c.NewString(""), none
		}
		return c.NewString(string(s[i])), none
	})

	reg("indexOf", []string{"searchValue"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := c.ToString(this)
		needle := c.ToString(c.argOr(args, 0))
		return c.NewInt(float64(strings.Index(s, needle))), none
	})

	reg("slice", []string{"start", "end"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := c.ToString(this)
		n := int64(len(s))
		start := sliceBound(c.argNumber(args, 0), n, 0)
		endArg := float64(n)
		if len(args) > 1 && args[1].kind != kindUndefined {
			endArg = c.ToNumber(args[1])
		}
		end := sliceBound(endArg, n, n)
		if end < start {
			end = start
		}
		return c.NewString(s[start:end]), none
	})

	reg("split", []string{"separator"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := c.ToString(this)
		out := c.NewArray()
		if len(args) == 0 || args[0].kind == kindUndefined {
			c.ArrayPush(out, c.NewString(s))
			return out, none
		}
		if args[0].kind == kindRegexp {
			return c.splitByRegexp(s, args[0]), none
		}
		sep := c.ToString(args[0])
		var parts []string
		if sep == "" {
			for _, ch := range s {
				parts = append(parts, string(ch))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		for _, p := range parts {
			c.ArrayPush(out, c.NewString(p))
		}
		return out, none
	})

	reg("toUpperCase", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(strings.ToUpper(c.ToString(this))), none
	})

	reg("toLowerCase", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(strings.ToLower(c.ToString(this))), none
	})

	reg("replace", []string{"pattern", "replacement"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := c.ToString(this)
		pattern := c.argOr(args, 0)
		repl := c.argOr(args, 1)
		if pattern != nil && pattern.kind == kindRegexp {
			return c.replaceByRegexp(s, pattern, repl), none
		}
		needle := c.ToString(pattern)
		idx := strings.Index(s, needle)
		if idx < 0 {
			return c.NewString(s), none
		}
		replStr := c.ToString(repl)
		return c.NewString(s[:idx] + replStr + s[idx+len(needle):]), none
	})

	reg("toString", nil, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		return c.NewString(c.ToString(this)), none
	})
}

// splitByRegexp implements String.prototype.split(regexp) using the
// regexp value's Matcher, so String.prototype and RegExp share the same
// matching seam.
func (c *Context) splitByRegexp(s string, re *Value) *Value {
	out := c.NewArray()
	d := re.regexpData
	pos := 0
	for pos <= len(s) {
		loc, ok := d.matcher.FindSubmatchIndex(s, pos)
		if !ok || loc[0] >= len(s) {
			break
		}
		if loc[1] == loc[0] {
			if loc[0] >= len(s) {
				break
			}
			loc[1]++
		}
		c.ArrayPush(out, c.NewString(s[pos:loc[0]]))
		pos = loc[1]
	}
	c.ArrayPush(out, c.NewString(s[pos:]))
	return out
}

// replaceByRegexp implements String.prototype.replace(regexp, replacement)
// for a string replacement value: replaces the first match, or every match
// when the regexp carries the 'g' flag.
func (c *Context) replaceByRegexp(s string, re, repl *Value) *Value {
	d := re.regexpData
	replStr := c.ToString(repl)
	var b strings.Builder
	pos := 0
	for pos <= len(s) {
		loc, ok := d.matcher.FindSubmatchIndex(s, pos)
		if !ok {
			break
		}
		b.WriteString(s[pos:loc[0]])
		b.WriteString(replStr)
		next := loc[1]
		if next == loc[0] {
			if next < len(s) {
				b.WriteByte(s[next])
			}
			next++
		}
		pos = next
		if !d.Global {
			break
		}
	}
	if pos <= len(s) {
		b.WriteString(s[pos:])
	}
	return c.NewString(b.String())
}
