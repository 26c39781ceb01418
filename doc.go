/*
Package tinyjs implements the core of an embeddable, single-threaded
interpreter for an ECMAScript-like scripting language.

tinyjs is not a full ECMAScript implementation. It lexes and tokenizes a
practical subset of the language (var/let, functions, closures, object and
array literals, destructuring, try/catch/finally, switch, the usual loop and
control-flow forms) and evaluates the result in a tree-walking style against
a dynamically typed, prototype-based object graph.

The interpreter can easily be embedded in another program. Use NewContext to
create an interpreter, Context.AddNative to expose Go functions to scripts,
and Context.Execute or Context.Evaluate to run source text. Values round-trip
through the *Value type; Context.Root returns the global scope so a host can
install its own globals directly.

Basics

Hello World:

	ctx := tinyjs.NewContext()
	ctx.AddNative("function print(s)", func(c *tinyjs.Context, this *tinyjs.Value, args []*tinyjs.Value, _ any) (*tinyjs.Value, tinyjs.Signal) {
		fmt.Println(c.ToString(args[0]))
		return c.Undefined(), tinyjs.Signal{}
	}, nil, 0)
	ctx.Execute(`print("Hello, world!")`, "<hello>", 1)

Values are created through the Context so that every live value is linked
into the context's own bookkeeping from the moment it exists; there is no
free-standing Value constructor. Objects inherit behavior from a prototype
chain: "classes" are just objects with a constructor function and a
prototype object, exactly as in real ECMAScript.

Garbage collection

Ordinary reference counting reclaims acyclic garbage the moment the last
reference disappears. Reference cycles - most commonly a closure that closes
over a scope which, transitively, holds the closure itself - are not
collected until the host calls Context.CollectGarbage, which performs an
ID-stamped mark-and-sweep over the context's live-value list. Nothing is
collected automatically; this mirrors the reference design's "run on
explicit request" contract rather than a generational or incremental
collector.

Scope beyond the core

This package implements only the interpreter core: lexer, tokenizer, value
model, scope chain, evaluator, error model, and garbage collector. The host
CLI, a stdio REPL, a debug/trace printer, a pooled allocator, and most of the
standard library (Math, JSON, parseInt, array methods, ...) are not part of
the core; Context.InstallStandardLibrary wires a small, real implementation
of the latter using exactly the native-registration hooks a host would use,
so that those hooks are exercised rather than left as unused API surface.
*/
package tinyjs
