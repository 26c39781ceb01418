package tinyjs

import (
	"strings"
)

// AddNative parses a signature of the form "function [Type.]name(a, b, …)"
// and binds fn under that name, per spec section 4.H's add_native hook. A
// bare name (no "Type.") binds the function as a global in the root scope;
// a "Type." prefix attaches it as a method on the named built-in
// prototype (Object, Array, Function, String, Number, Boolean, RegExp,
// Error). userData is threaded through to every invocation of fn
// unchanged, and flags governs how the resulting property link is stored
// (defaulting to DefaultNativeFlags when flags is 0).
func (c *Context) AddNative(signature string, fn NativeFunc, userData any, flags PropertyFlags) error {
	typeName, name, params, err := parseNativeSignature(signature)
	if err != nil {
		return err
	}
	if flags == 0 {
		flags = DefaultNativeFlags
	}
	native := c.NewNativeFunction(name, params, fn, userData)
	target := c.root
	if typeName != "" {
		proto, ok := c.prototypeByName(typeName)
		if !ok {
			return newCompileError(ReferenceError, c.curFile, c.curLine, c.curCol,
				"add_native: unknown type %q", typeName)
		}
		target = proto
	}
	c.setOwnProperty(target, name, native, flags)
	return nil
}

func (c *Context) prototypeByName(name string) (*Value, bool) {
	switch name {
	case "Object":
		return c.protos.object, true
	case "Array":
		return c.protos.array, true
	case "Function":
		return c.protos.function, true
	case "String":
		return c.protos.str, true
	case "Number":
		return c.protos.number, true
	case "Boolean":
		return c.protos.boolean, true
	case "RegExp":
		return c.protos.regexp, true
	case "Error":
		return c.protos.errorBase, true
	default:
		return nil, false
	}
}

// parseNativeSignature parses "function [Type.]name(a, b, c)" into its
// optional receiver type, the bound name, and the declared parameter
// names (informational only - native callbacks read args directly, but
// the names are kept for toString and arity diagnostics).
func parseNativeSignature(sig string) (typeName, name string, params []string, err *compileError) {
	sig = strings.TrimSpace(sig)
	sig = strings.TrimPrefix(sig, "function")
	sig = strings.TrimSpace(sig)
	open := strings.IndexByte(sig, '(')
	close := strings.IndexByte(sig, ')')
	if open < 0 || close < 0 || close < open {
		return "", "", nil, newCompileError(SyntaxError, "", 0, 0, "add_native: malformed signature %q", sig)
	}
	head := strings.TrimSpace(sig[:open])
	if dot := strings.IndexByte(head, '.'); dot >= 0 {
		typeName = strings.TrimSpace(head[:dot])
		name = strings.TrimSpace(head[dot+1:])
	} else {
		name = head
	}
	if name == "" {
		return "", "", nil, newCompileError(SyntaxError, "", 0, 0, "add_native: missing function name in %q", sig)
	}
	if isWellKnownName(name) {
		return "", "", nil, newCompileError(SyntaxError, "", 0, 0, "add_native: %q is reserved", name)
	}
	argList := strings.TrimSpace(sig[open+1 : close])
	if argList != "" {
		for _, p := range strings.Split(argList, ",") {
			params = append(params, strings.TrimSpace(p))
		}
	}
	return typeName, name, params, nil
}
