package tinyjs

import (
	"encoding/json"
	"strconv"
	"strings"
)

// InstallStandardLibrary wires the non-core standard-library surface on
// top of the bare interpreter. Each native is built with NewNativeFunction
// and stored on its object or prototype with setOwnProperty, the same two
// steps AddNative performs for a host. It is not called automatically by
// NewContext: a host
// that only needs the core value model and evaluator can skip it entirely,
// per spec's "the standard-library surface... beyond the hooks the core
// must expose" non-goal.
func (c *Context) InstallStandardLibrary() {
	c.installMath()
	c.installJSON()
	c.installGlobalFunctions()
	c.installArrayPrototype()
	c.installStringPrototype()
	c.installObjectPrototype()
	c.installObjectStatics()
	c.installBooleanPrototype()
	c.installNumberPrototype()
	c.installFunctionPrototype()
	c.installRegexpPrototype()
}

// installJSON registers JSON.parse and JSON.stringify as thin wrappers
// around encoding/json, going through ToJSONInterface/FromJSONInterface.
func (c *Context) installJSON() {
	jsonObj := c.NewObject()
	c.setOwnProperty(c.root, "JSON", jsonObj, DefaultNativeFlags)

	parseFn := c.NewNativeFunction("JSON.parse", []string{"text"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		text := c.ToString(c.argOr(args, 0))
		var decoded any
		if err := json.Unmarshal([]byte(text), &decoded); err != nil {
			return nil, c.ThrowError(SyntaxError, "invalid JSON: %s", err)
		}
		return c.FromJSONInterface(decoded), none
	}, nil)
	c.setOwnProperty(jsonObj, "parse", parseFn, DefaultNativeFlags)

	stringifyFn := c.NewNativeFunction("JSON.stringify", []string{"value"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		iface, err := c.ToJSONInterface(c.argOr(args, 0))
		if err != nil {
			return nil, c.ThrowError(TypeError, "%s", err)
		}
		out, err := json.Marshal(iface)
		if err != nil {
			return nil, c.ThrowError(TypeError, "%s", err)
		}
		return c.NewString(string(out)), none
	}, nil)
	c.setOwnProperty(jsonObj, "stringify", stringifyFn, DefaultNativeFlags)
}

// installGlobalFunctions registers parseInt and parseFloat directly on the
// root scope, using strconv the way the reference design's own numeric
// coercion leans on the standard library rather than a hand-rolled parser.
func (c *Context) installGlobalFunctions() {
	parseIntFn := c.NewNativeFunction("parseInt", []string{"s", "radix"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := strings.TrimSpace(c.ToString(c.argOr(args, 0)))
		radix := 10
		if len(args) > 1 && args[1].kind != kindUndefined {
			radix = int(c.ToNumber(args[1]))
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if (radix == 16 || radix == 0) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
			radix = 16
		}
		if radix == 0 {
			radix = 10
		}
		end := 0
		for end < len(s) && isValidDigit(s[end], radix) {
			end++
		}
		if end == 0 {
			return c.nanVal, none
		}
		n, err := strconv.ParseInt(s[:end], radix, 64)
		if err != nil {
			return c.nanVal, none
		}
		if neg {
			n = -n
		}
		return c.NewNumber(float64(n)), none
	}, nil)
	c.setOwnProperty(c.root, "parseInt", parseIntFn, DefaultUserFlags)

	parseFloatFn := c.NewNativeFunction("parseFloat", []string{"s"}, func(c *Context, this *Value, args []*Value, _ any) (*Value, signal) {
		s := strings.TrimSpace(c.ToString(c.argOr(args, 0)))
		end := 0
		seenDot, seenExp := false, false
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		for end < len(s) {
			ch := s[end]
			switch {
			case ch >= '0' && ch <= '9':
				end++
			case ch == '.' && !seenDot && !seenExp:
				seenDot = true
				end++
			case (ch == 'e' || ch == 'E') && !seenExp:
				seenExp = true
				end++
				if end < len(s) && (s[end] == '+' || s[end] == '-') {
					end++
				}
			default:
				n, err := strconv.ParseFloat(s[:end], 64)
				if err != nil {
					return c.nanVal, none
				}
				return c.NewNumber(n), none
			}
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c.nanVal, none
		}
		return c.NewNumber(n), none
	}, nil)
	c.setOwnProperty(c.root, "parseFloat", parseFloatFn, DefaultUserFlags)
}

func isValidDigit(b byte, radix int) bool {
	var v int
	switch {
	case b >= '0' && b <= '9':
		v = int(b - '0')
	case b >= 'a' && b <= 'z':
		v = int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		v = int(b-'A') + 10
	default:
		return false
	}
	return v < radix
}
