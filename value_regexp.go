package tinyjs

import (
	"regexp"
	"strings"
)

// Matcher is the external collaborator a regexp value delegates matching
// to (spec section 1's "optional regex backend"). The core uses the regexp
// package only in this file (goRegexpMatcher and NewRegexp); a host may
// supply its own Matcher (a different engine, a cached/compiled form) for a
// regexp value through WithMatcher.
type Matcher interface {
	// FindSubmatchIndex returns the byte-offset pairs of the match (and its
	// capture groups) found in subject starting no earlier than start, or
	// ok=false if there is no match. Offsets are relative to the start of
	// subject, matching regexp.Regexp.FindSubmatchIndex's convention.
	FindSubmatchIndex(subject string, start int) (indices []int, ok bool)
}

// regexpData is the payload of a KindRegexp value.
type regexpData struct {
	Source string
	Global bool
	IgnoreCase bool
	Multiline bool
	Sticky bool // 'y' flag; exec starts searching at lastIndex, but a match found later in the subject is still accepted

	matcher Matcher

	lastIndex int
}

// FlagsString renders the flags in canonical order, for toString and for
// re-deriving a regexp literal's source text.
func (d *regexpData) FlagsString() string {
	var b strings.Builder
	if d.Global {
		b.WriteByte('g')
	}
	if d.IgnoreCase {
		b.WriteByte('i')
	}
	if d.Multiline {
		b.WriteByte('m')
	}
	if d.Sticky {
		b.WriteByte('y')
	}
	return b.String()
}

// goRegexpMatcher adapts the standard library's regexp package to Matcher;
// this is the default backend used whenever the host does not supply its
// own via WithMatcher.
type goRegexpMatcher struct {
	re *regexp.Regexp
}

func (m *goRegexpMatcher) FindSubmatchIndex(subject string, start int) ([]int, bool) {
	if start > len(subject) {
		return nil, false
	}
	loc := m.re.FindSubmatchIndex([]byte(subject[start:]))
	if loc == nil {
		return nil, false
	}
	out := make([]int, len(loc))
	for i, off := range loc {
		if off < 0 {
			out[i] = -1
			continue
		}
		out[i] = off + start
	}
	return out, true
}

// translateFlags turns JS regex flags into Go regexp syntax prefixes
// ((?i) for ignorecase, (?m) for multiline); 'g' and 'y' govern the
// evaluator's iteration loop rather than the compiled pattern itself.
func translateFlags(source string, ignoreCase, multiline bool) string {
	var prefix string
	if ignoreCase {
		prefix += "i"
	}
	if multiline {
		prefix += "m"
	}
	if prefix == "" {
		return source
	}
	return "(?" + prefix + ")" + source
}

// NewRegexp compiles source/flags into a KindRegexp value using the default
// Go-regexp-backed Matcher. flags is any combination of g, i, m, y.
func (c *Context) NewRegexp(source, flags string) (*Value, signal) {
	d := &regexpData{Source: source}
	for _, f := range flags {
		switch f {
		case 'g':
			d.Global = true
		case 'i':
			d.IgnoreCase = true
		case 'm':
			d.Multiline = true
		case 'y':
			d.Sticky = true
		}
	}
	// Patterns always compile in multiline mode; the 'm' flag is recorded in
	// d.Multiline (for FlagsString) but does not change matching.
	compiled, err := regexp.Compile(translateFlags(source, d.IgnoreCase, true))
	if err != nil {
		return nil, c.ThrowError(SyntaxError, "invalid regular expression: %s", err)
	}
	d.matcher = &goRegexpMatcher{re: compiled}
	v := c.newValue(kindRegexp)
	v.proto = c.Retain(c.protos.regexp)
	v.regexpData = d
	return v, none
}

// WithMatcher replaces v's matching backend with a host-supplied Matcher,
// e.g. to swap in a different regex engine without touching evaluator code.
func (c *Context) WithMatcher(v *Value, m Matcher) {
	if v != nil && v.kind == kindRegexp && v.regexpData != nil {
		v.regexpData.matcher = m
	}
}

// RegexpExec implements RegExp.prototype.exec: searches subject starting at
// lastIndex when global or sticky, returning an array of [match, group1,
// ...] with index/input properties, or null on no match.
func (c *Context) RegexpExec(v *Value, subject string) *Value {
	d := v.regexpData
	start := 0
	if d.Global || d.Sticky {
		start = d.lastIndex
	}
	indices, ok := d.matcher.FindSubmatchIndex(subject, start)
	if !ok {
		if d.Global || d.Sticky {
			d.lastIndex = 0
		}
		return c.nullVal
	}
	if d.Global || d.Sticky {
		d.lastIndex = indices[1]
		if indices[1] == indices[0] {
			d.lastIndex++
		}
	}
	result := c.NewArray()
	for i := 0; i+1 < len(indices); i += 2 {
		if indices[i] < 0 {
			c.ArrayPush(result, c.undefinedVal)
			continue
		}
		c.ArrayPush(result, c.NewString(subject[indices[i]:indices[i+1]]))
	}
	c.setOwnProperty(result, "index", c.NewInt(float64(indices[0])), DefaultUserFlags)
	c.setOwnProperty(result, "input", c.NewString(subject), DefaultUserFlags)
	return result
}

// RegexpTest implements RegExp.prototype.test.
func (c *Context) RegexpTest(v *Value, subject string) bool {
	return c.RegexpExec(v, subject).kind != kindNull
}
