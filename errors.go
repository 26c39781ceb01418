package tinyjs

import "fmt"

// ErrorKind identifies the script-catchable exception kinds the evaluator
// can raise. These are exactly the six kinds spec'd for the error model;
// native code reports errors through Context.ThrowError rather than a Go
// panic.
type ErrorKind int

const (
	// GenericError is the catch-all base kind for user-thrown values that
	// don't otherwise fit one of the named kinds below.
	GenericError ErrorKind = iota
	EvalError
	RangeError
	ReferenceError
	SyntaxError
	TypeError
)

var errorKindNames = [...]string{
	GenericError:   "Error",
	EvalError:      "EvalError",
	RangeError:     "RangeError",
	ReferenceError: "ReferenceError",
	SyntaxError:    "SyntaxError",
	TypeError:      "TypeError",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return "Error"
	}
	return errorKindNames[k]
}

// compileError is the Go error type returned by Lex/Tokenize failures, i.e.
// the host-facing surface for a SyntaxError that was detected before there
// was any running script to catch it. Once the evaluator is running,
// equivalent failures become script-catchable *Value exceptions instead
// (see Context.ThrowError).
type compileError struct {
	Kind        ErrorKind
	Message     string
	File        string
	Line, Col   int
}

func (e *compileError) Error() string {
	return fmt.Sprintf("%s: %s at %s:%d:%d", e.Kind, e.Message, e.File, e.Line, e.Col)
}

func newCompileError(kind ErrorKind, file string, line, col int, format string, args ...any) *compileError {
	return &compileError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
		Col:     col,
	}
}

// RuntimeError is returned by Context.Execute/Evaluate when a script raises
// an exception that is never caught. Its String/Error form matches the
// spec's "<Kind>: <message> at <file>:<line>:<col>" contract.
type RuntimeError struct {
	Value *Value
}

func (e *RuntimeError) Error() string {
	return describeError(e.Value)
}

// describeError renders an error-kind value the way an uncaught exception is
// surfaced to the host: "<Kind>: <message> at <file>:<line>:<col>".
func describeError(v *Value) string {
	if v == nil || v.kind != kindError {
		return fmt.Sprintf("Error: %v", v)
	}
	e := v.errorData
	return fmt.Sprintf("%s: %s at %s:%d:%d", e.Kind, e.Message, e.File, e.Line, e.Col)
}

// ThrowError builds an error-kind *Value carrying the given kind, a
// formatted message, and the evaluator's current source position, and
// returns it already wrapped in a sigThrow signal ready to propagate. This
// is the Go equivalent of the reference design's throw_error hook: native
// function bodies return nil, ctx.ThrowError(tinyjs.TypeError, "%s is not
// a function", name) the way a teacher CFunction returns
// vm.RaiseExceptionf(...).
func (c *Context) ThrowError(kind ErrorKind, format string, args ...any) signal {
	v := c.newError(kind, fmt.Sprintf(format, args...), c.curFile, c.curLine, c.curCol)
	return thrown(v)
}

// newError constructs an error-kind value without touching the evaluator's
// current-position bookkeeping; used both by ThrowError and by the
// evaluator itself when it raises errors directly (e.g. ReferenceError on
// an unresolved identifier).
func (c *Context) newError(kind ErrorKind, message, file string, line, col int) *Value {
	v := c.newValue(kindError)
	v.errorData = &errorData{
		Kind:    kind,
		Message: message,
		File:    file,
		Line:    line,
		Col:     col,
	}
	v.proto = c.Retain(c.protos.errorProtoFor(kind))
	return v
}

type errorData struct {
	Kind      ErrorKind
	Message   string
	File      string
	Line, Col int
}
