package tinyjs

import (
	"fmt"
	"math/rand"
	"strings"
)

// Context is a single interpreter instance: it owns the live-value list,
// the unique-ID counter, the constant singletons, the root scope, and the
// registered native functions. Every Value belongs to exactly one Context.
// This is the Go analogue of the reference design's per-embedding context
// object (spec section 4.H, "Host API").
type Context struct {
	root *Value // KindScope / scopeRoot

	liveHead  *Value
	liveCount int
	gcStamp   uint32

	tearingDown bool
	sweeping    bool

	protos *prototypes

	// singleton constants, created once per context (spec's Design Notes:
	// "Constants ... are created once per context - not globally").
	undefinedVal *Value
	nullVal      *Value
	trueVal      *Value
	falseVal     *Value
	nanVal       *Value
	posInfVal    *Value
	negInfVal    *Value
	zeroVal      *Value
	oneVal       *Value

	numberMemo map[float64]*Value
	stringMemo map[string]*Value

	// current source position, updated by the evaluator as it walks
	// tokens; consulted by ThrowError so a native function's error carries
	// a useful location without threading a token through every call.
	curFile string
	curLine int
	curCol  int

	// exception slot: the currently in-flight thrown value, if any. Mostly
	// informational; the authoritative propagation path is the signal
	// return value threaded through the evaluator.
	exception *Value

	// Trace, if set, receives a notification for host-visible interpreter
	// events (GC sweeps, uncaught exceptions). It is nil by default; the
	// debug/trace printer itself is an external collaborator per spec
	// section 1, not part of the core.
	Trace func(event string, kv ...any)

	callDepth    int
	maxCallDepth int

	rng *rand.Rand
}

// NewContext creates and initializes a new interpreter. The returned
// Context is independently disposable: its constants, prototypes, and live
// list are its own, matching the reference design's per-context (not
// process-global) singleton lifecycle.
func NewContext() *Context {
	c := &Context{
		numberMemo:   make(map[float64]*Value, 16),
		stringMemo:   make(map[string]*Value, 16),
		maxCallDepth: 1024,
		rng:          rand.New(rand.NewSource(1)),
	}
	c.initPrototypes()
	c.initConstants()
	c.root = c.newScope(scopeRoot, nil, nil, nil)
	c.installGlobalBindings()
	return c
}

// initConstants allocates the singleton values every context needs
// regardless of what script it runs: undefined, null, true, false, NaN,
// +Infinity, -Infinity, 0, and 1.
func (c *Context) initConstants() {
	c.undefinedVal = c.newValue(KindUndefined)
	c.Retain(c.undefinedVal)
	c.nullVal = c.newValue(KindNull)
	c.Retain(c.nullVal)

	c.trueVal = c.newValue(KindBool)
	c.trueVal.boolData = true
	c.Retain(c.trueVal)
	c.falseVal = c.newValue(KindBool)
	c.falseVal.boolData = false
	c.Retain(c.falseVal)

	c.nanVal = c.newValue(KindNaN)
	c.Retain(c.nanVal)
	c.posInfVal = c.newValue(KindInfinity)
	c.posInfVal.infSign = 1
	c.Retain(c.posInfVal)
	c.negInfVal = c.newValue(KindInfinity)
	c.negInfVal.infSign = -1
	c.Retain(c.negInfVal)

	c.zeroVal = c.NewInt(0)
	c.Retain(c.zeroVal)
	c.oneVal = c.NewInt(1)
	c.Retain(c.oneVal)
}

// ConstKind names the singleton a host can retrieve with ConstScriptVar.
type ConstKind int

const (
	ConstUndefined ConstKind = iota
	ConstNull
	ConstNaN
	ConstTrue
	ConstFalse
	ConstPosInfinity
	ConstNegInfinity
	ConstZero
	ConstOne
)

// ConstScriptVar returns the context's unique singleton for the requested
// constant kind (spec section 4.H).
func (c *Context) ConstScriptVar(kind ConstKind) *Value {
	switch kind {
	case ConstUndefined:
		return c.undefinedVal
	case ConstNull:
		return c.nullVal
	case ConstNaN:
		return c.nanVal
	case ConstTrue:
		return c.trueVal
	case ConstFalse:
		return c.falseVal
	case ConstPosInfinity:
		return c.posInfVal
	case ConstNegInfinity:
		return c.negInfVal
	case ConstZero:
		return c.zeroVal
	case ConstOne:
		return c.oneVal
	default:
		return c.undefinedVal
	}
}

// Undefined, Null, True, and False are shorthand for the corresponding
// ConstScriptVar call; they exist because native function implementations
// reach for them constantly.
func (c *Context) Undefined() *Value { return c.undefinedVal }
func (c *Context) Null() *Value      { return c.nullVal }
func (c *Context) True() *Value      { return c.trueVal }
func (c *Context) False() *Value     { return c.falseVal }

// Bool returns c.True() or c.False() for the given Go bool.
func (c *Context) Bool(b bool) *Value {
	if b {
		return c.trueVal
	}
	return c.falseVal
}

// Root returns the interpreter's global scope (spec's get_root()).
func (c *Context) Root() *Value { return c.root }

// Execute runs source as a top-level program and discards its result,
// returning a non-nil error only for an uncaught exception or a lex/parse
// failure. file and line seed the position reported in error messages and
// stack-free diagnostics (there is no call stack to unwind, per section 5).
func (c *Context) Execute(source, file string, line int) error {
	_, err := c.evaluateComplex(source, file, line)
	return err
}

// Evaluate runs source as a program and returns the string coercion of the
// last expression statement's value (spec's evaluate(...)).
func (c *Context) Evaluate(source, file string, line int) (string, error) {
	v, err := c.evaluateComplex(source, file, line)
	if err != nil {
		return "", err
	}
	return c.ToString(v), nil
}

// EvaluateComplex runs source as a program and returns the last expression
// statement's value as a live reference (spec's evaluate_complex(...)). The
// caller owns the returned reference and must Release it.
func (c *Context) EvaluateComplex(source, file string, line int) (*Value, error) {
	v, err := c.evaluateComplex(source, file, line)
	return c.Retain(v), err
}

func (c *Context) evaluateComplex(source, file string, line int) (*Value, error) {
	tokens, err := Tokenize(source, file, line)
	if err != nil {
		return nil, err
	}
	result, sig := c.evalProgram(tokens, c.root)
	if sig.kind == sigThrow {
		if c.Trace != nil {
			c.Trace("uncaught-exception", "error", describeError(sig.thrown))
		}
		return nil, &RuntimeError{Value: sig.thrown}
	}
	return result, nil
}

// Eval implements the script-level eval() builtin: tokenize and evaluate
// source in the given (already-live) scope chain, per spec section 4.E.
func (c *Context) Eval(source string, scope *Value) (*Value, signal) {
	tokens, err := Tokenize(source, c.curFile, c.curLine)
	if err != nil {
		ce := err.(*compileError)
		return nil, thrown(c.newError(EvalError, ce.Message, ce.File, ce.Line, ce.Col))
	}
	return c.evalProgram(tokens, scope)
}

// installGlobalBindings wires the handful of always-present global names
// (undefined, NaN, Infinity) into the root scope, the way a host would use
// SetSlot on vm.Lobby, generalized to script-visible global identifiers.
func (c *Context) installGlobalBindings() {
	c.setOwnProperty(c.root, "undefined", c.undefinedVal, FlagWritable)
	c.setOwnProperty(c.root, "NaN", c.nanVal, FlagWritable)
	c.setOwnProperty(c.root, "Infinity", c.posInfVal, FlagWritable)
}

// describeCurrentPosition renders the context's current source position for
// diagnostics that don't have a dedicated token at hand.
func (c *Context) describeCurrentPosition() string {
	return fmt.Sprintf("%s:%d:%d", c.curFile, c.curLine, c.curCol)
}

// wellKnownNames lists identifiers the core reserves for its own bookkeeping
// (spec section 6); AddNative rejects attempts to bind these from
// script-visible native registrations.
var wellKnownNames = map[string]bool{
	"__proto__":            true,
	"prototype":            true,
	"constructor":          true,
	"__function_closure__": true,
	"__scope_parent__":     true,
	"__scope_with__":       true,
	"__accessor_get__":     true,
	"__accessor_set__":     true,
	"arguments":            true,
	"return":               true,
}

func isWellKnownName(name string) bool { return wellKnownNames[strings.TrimSpace(name)] }
