package core

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// handlerFrame is one entry of the exception-handler chain (spec.md §5):
// a saved unwind target plus whatever process-wide state was captured when
// the frame was pushed, so it can be restored on every exit path.
type handlerFrame struct {
	name       string
	savedOut   io.Writer
	savedIndex int
}

// Context is the explicit "runtime context" spec.md §9's Design Notes call
// for: it threads the two pieces of process-wide mutable state the core
// needs — the current output stream and the exception-handler chain —
// through every entry point instead of using package-level globals.
//
// A Context also owns the symbol-interning table (so that two Values
// constructed from the same name are identity-equal, invariant V2, without
// resorting to an actual Go package-level global) and a logger used for the
// non-fatal diagnostics named in SPEC_FULL.md.
type Context struct {
	out      io.Writer
	handlers []handlerFrame
	log      zerolog.Logger
	symbols  map[string]*Value
	ns       *Namespace
	compiler CompileFunc
}

// CompileFunc is the external trampoline spec.md §6 describes as "compile
// (lambdaInfo)": the one hook core calls out to the first time an
// uncompiled closure is applied. core never looks inside LambdaInfo.Payload
// itself; it only ever forwards it through this function.
type CompileFunc func(*LambdaInfo) (NativeFunc, error)

// WithCompiler installs the compile trampoline.
func WithCompiler(fn CompileFunc) Option {
	return func(c *Context) { c.compiler = fn }
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithOutput sets the context's initial current output stream.
func WithOutput(w io.Writer) Option {
	return func(c *Context) { c.out = w }
}

// WithLogger overrides the context's zerolog.Logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext builds a fresh runtime context. The default output stream is
// os.Stdout and the default logger writes to os.Stderr at info level.
func NewContext(opts ...Option) *Context {
	c := &Context{
		out:     os.Stdout,
		log:     zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
		symbols: make(map[string]*Value),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Output returns the current output stream.
func (c *Context) Output() io.Writer { return c.out }

// Logger returns the context's logger.
func (c *Context) Logger() *zerolog.Logger { return &c.log }

// Namespace returns the root namespace installed by env.Bootstrap, or nil
// if bootstrap has not run yet.
func (c *Context) Namespace() *Namespace { return c.ns }

// SetNamespace installs the root namespace. It is the one call named in
// spec.md §6 ("set_const(module, symbol, value)") collapsed to a single
// assignment, since this core has exactly one module.
func (c *Context) SetNamespace(ns *Namespace) { c.ns = ns }

// Intern returns the unique Symbol value for name, creating it on first
// use. Two calls with the same name return the identical *Value pointer,
// which is what invariant V2 ("symbols with equal names share identity")
// and builtin `is` rely on.
func (c *Context) Intern(name string) *Value {
	if v, ok := c.symbols[name]; ok {
		return v
	}
	v := newSymbol(name)
	c.symbols[name] = v
	return v
}

// WithOutputStream scopes a new current output stream for the duration of
// fn, restoring the previous stream on every exit path (normal return,
// error return, or panic) — the "scoped acquisition" spec.md §9 asks for in
// place of the original's manual save/restore around print.
func (c *Context) WithOutputStream(w io.Writer, fn func() error) (err error) {
	saved := c.out
	c.out = w
	defer func() { c.out = saved }()
	return fn()
}

// Protect pushes a named handler frame, runs fn, and pops the frame on
// every exit path, converting any panic raised by fn into a UserError so
// that callers never observe a raw Go panic — the "unwind protocol" of
// spec.md §5 and §7, minus the longjmp-style control transfer the Design
// Notes say to drop in favor of Go's native error return.
func (c *Context) Protect(name string, fn func() error) (err error) {
	frame := handlerFrame{name: name, savedOut: c.out, savedIndex: len(c.handlers)}
	c.handlers = append(c.handlers, frame)
	defer func() {
		c.handlers = c.handlers[:frame.savedIndex]
		c.out = frame.savedOut
		if r := recover(); r != nil {
			err = wrap(&UserError{Message: fmt.Sprintf("%v", r)})
		}
	}()
	return fn()
}

// compile invokes the installed CompileFunc, raising StateError if none was
// configured — applying an uncompiled closure without a compiler attached
// is a host misconfiguration, not a user-facing error kind of its own.
func (c *Context) compile(li *LambdaInfo) (NativeFunc, error) {
	if c.compiler == nil {
		return nil, wrap(&StateError{Op: "apply", Why: "no compiler installed for uncompiled closure"})
	}
	return c.compiler(li)
}

// HandlerDepth reports how many handler frames are currently pushed; it
// exists mainly so tests can assert the chain is LIFO-balanced after a
// Protect call, per spec.md §5 ("handler scopes are strictly LIFO and
// balanced").
func (c *Context) HandlerDepth() int { return len(c.handlers) }
