package core

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// This file implements spec.md §4.5's print subsystem: one built-in method
// per kind, registered onto a GenericFunction so a later `add_method(print,
// …)` call (scenario 4 of §8) overrides the fallback the normal way — the
// same dispatch machinery genericfunc.go already provides, no special
// casing needed for user overrides. Type values have no counterpart in the
// Value universe (spec.md §3.1's Value table has no Type variant), so
// printing a bare Type is exposed separately as PrintType rather than as a
// dispatchable print method; every other kind in §4.5's table goes through
// the generic function.

// InstallPrintMethods registers the built-in print methods onto gf, in the
// order env.Bootstrap wires them into the root namespace.
func InstallPrintMethods(gf *GenericFunction) {
	gf.AddMethod(NewTupleType(BoolType), printBool)
	gf.AddMethod(NewTupleType(Signed), printSigned)
	gf.AddMethod(NewTupleType(Unsign), printUnsigned)
	gf.AddMethod(NewTupleType(Float32Type), printFloat32)
	gf.AddMethod(NewTupleType(Float64Type), printFloat64)
	gf.AddMethod(NewTupleType(SymbolType), printSymbol)
	gf.AddMethod(NewTupleType(StringType), printString)
	gf.AddMethod(NewTupleType(TupleUniversal), printTuple)
	gf.AddMethod(NewTupleType(FunctionType), printFunction)
}

// PrintValue dispatches v through print's generic function. If no method
// matches and v is some Bits value not covered by Bool/Signed/Unsign/Float
// (reachable only if a caller builds a Bits type outside the built-in set),
// it falls back to printing the payload as an unsigned integer of the
// type's declared width, per §4.5's "any other bits type" rule; any other
// NoMethodError (a struct with no print method, say) falls through to the
// struct/default formatter instead.
func PrintValue(ctx *Context, gf *GenericFunction, v *Value) (*Value, error) {
	result, err := gf.Apply(ctx, []*Value{v})
	if err == nil {
		return result, nil
	}
	if _, ok := underlyingError(err).(*NoMethodError); !ok {
		return nil, err
	}
	switch {
	case v.kind == kindBits:
		fmt.Fprint(ctx.Output(), v.bitsPayload)
		return NewTuple(), nil
	case v.IsStruct():
		return NewTuple(), printStructInstance(ctx, v)
	default:
		return nil, err
	}
}

func underlyingError(err error) error {
	type causer interface{ Cause() error }
	for {
		c, ok := err.(causer)
		if !ok {
			return err
		}
		err = c.Cause()
	}
}

func printBool(ctx *Context, args []*Value) (*Value, error) {
	if args[0].BoolVal() {
		io.WriteString(ctx.Output(), "true")
	} else {
		io.WriteString(ctx.Output(), "false")
	}
	return NewTuple(), nil
}

func printSigned(ctx *Context, args []*Value) (*Value, error) {
	v := args[0]
	var n int64
	switch v.Type() {
	case Int8Type:
		n = int64(v.Int8Val())
	case Int16Type:
		n = int64(v.Int16Val())
	case Int32Type:
		n = int64(v.Int32Val())
	default:
		n = v.Int64Val()
	}
	fmt.Fprintf(ctx.Output(), "%d", n)
	return NewTuple(), nil
}

func printUnsigned(ctx *Context, args []*Value) (*Value, error) {
	v := args[0]
	var n uint64
	switch v.Type() {
	case Uint8Type:
		n = uint64(v.Uint8Val())
	case Uint16Type:
		n = uint64(v.Uint16Val())
	case Uint32Type:
		n = uint64(v.Uint32Val())
	default:
		n = v.Uint64Val()
	}
	fmt.Fprintf(ctx.Output(), "%d", n)
	return NewTuple(), nil
}

func printFloat32(ctx *Context, args []*Value) (*Value, error) {
	io.WriteString(ctx.Output(), formatFloat32(args[0].Float32Val()))
	return NewTuple(), nil
}

func printFloat64(ctx *Context, args []*Value) (*Value, error) {
	io.WriteString(ctx.Output(), formatFloat64(args[0].Float64Val()))
	return NewTuple(), nil
}

func printSymbol(ctx *Context, args []*Value) (*Value, error) {
	io.WriteString(ctx.Output(), "`"+args[0].SymbolName())
	return NewTuple(), nil
}

func printString(ctx *Context, args []*Value) (*Value, error) {
	io.WriteString(ctx.Output(), args[0].StringVal())
	return NewTuple(), nil
}

func printTuple(ctx *Context, args []*Value) (*Value, error) {
	elems := args[0].TupleElems()
	io.WriteString(ctx.Output(), "(")
	for i, e := range elems {
		if i > 0 {
			io.WriteString(ctx.Output(), ",")
		}
		gf := printGFFromElem(ctx)
		if _, err := PrintValue(ctx, gf, e); err != nil {
			return nil, err
		}
	}
	if len(elems) == 1 {
		io.WriteString(ctx.Output(), ",")
	}
	io.WriteString(ctx.Output(), ")")
	return NewTuple(), nil
}

// printGFFromElem retrieves the print generic function bound in the root
// namespace, so nested tuple elements dispatch through the same (possibly
// user-extended) method table as the top-level call.
func printGFFromElem(ctx *Context) *GenericFunction {
	if ns := ctx.Namespace(); ns != nil {
		if gf, ok := ns.PrintFunction(); ok {
			return gf
		}
	}
	// No namespace installed (e.g. a unit test exercising print.go in
	// isolation): fall back to a throwaway table with just the built-ins.
	gf := NewGenericFunction("print")
	InstallPrintMethods(gf)
	return gf
}

func printFunction(ctx *Context, args []*Value) (*Value, error) {
	f := args[0]
	switch f.fnKind {
	case FuncGeneric:
		fmt.Fprintf(ctx.Output(), "#<generic-function %s>", f.generic.Name)
	case FuncClosure:
		io.WriteString(ctx.Output(), "#<closure>")
	case FuncTypeCtor:
		io.WriteString(ctx.Output(), f.typector.body.String())
	}
	return NewTuple(), nil
}

// printStructInstance implements §4.5's `Name(f₁,…,fₙ)` struct formatting.
func printStructInstance(ctx *Context, v *Value) error {
	t := v.Type()
	io.WriteString(ctx.Output(), t.name+"(")
	gf := printGFFromElem(ctx)
	for i, f := range v.StructFields() {
		if i > 0 {
			io.WriteString(ctx.Output(), ",")
		}
		if _, err := PrintValue(ctx, gf, f); err != nil {
			return err
		}
	}
	io.WriteString(ctx.Output(), ")")
	return nil
}

// PrintType implements §4.5's Type formatting. Types are not part of the
// print generic function's dispatchable Value universe (see file doc
// comment), so this is a direct function rather than a registered method;
// Type.String() in type.go already implements the exact same contract
// (name{params}, Union(…), Seq as T…, Function types as "Function"), so
// PrintType simply writes it to the current output stream.
func PrintType(ctx *Context, t *Type) error {
	_, err := io.WriteString(ctx.Output(), t.String())
	return err
}

// formatFloat32 implements §4.5's Float32 rule, including the
// `float32(...)` wrapper non-finite values get that Float64 does not.
func formatFloat32(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "float32(" + signPrefix32(f, true) + "NaN)"
	case math.IsInf(float64(f), 0):
		return "float32(" + signPrefix32(f, false) + "Inf)"
	case f == 0 && math.Signbit(float64(f)):
		return "-0.0"
	default:
		return formatFiniteFloat(float64(f), 32, 8)
	}
}

// formatFloat64 implements §4.5's Float64 rule.
func formatFloat64(f float64) string {
	switch {
	case math.IsNaN(f):
		return signPrefix64(f, true) + "NaN"
	case math.IsInf(f, 0):
		return signPrefix64(f, false) + "Inf"
	case f == 0 && math.Signbit(f):
		return "-0.0"
	default:
		return formatFiniteFloat(f, 64, 16)
	}
}

// signPrefix32/64 read the sign bit directly (rather than trust NaN's
// comparison-useless sign) so `+NaN`/`-NaN` matches the IEEE-754 payload's
// sign bit as §4.5 requires.
func signPrefix32(f float32, nan bool) string {
	bits := math.Float32bits(f)
	if nan {
		if bits&0x80000000 != 0 {
			return "-"
		}
		return "+"
	}
	if f < 0 {
		return "-"
	}
	return "+"
}

func signPrefix64(f float64, nan bool) string {
	bits := math.Float64bits(f)
	if nan {
		if bits&0x8000000000000000 != 0 {
			return "-"
		}
		return "+"
	}
	if f < 0 {
		return "-"
	}
	return "+"
}

// formatFiniteFloat renders f in shortest round-trip decimal form via
// strconv's Ryu-family 'g'/-1 formatter (already the algorithm class §4.5's
// "shortest-decimal" calls for — Non-goals explicitly waive bit-exact
// formatting beyond a conformant decimal representation, so reimplementing
// it would add nothing), re-rendered at minSig precision if the shortest
// form has fewer significant digits, and always given a decimal point.
func formatFiniteFloat(f float64, bitSize, minSig int) string {
	s := strconv.AppendFloat(nil, f, 'g', -1, bitSize)
	if significantDigits(s) < minSig {
		s = strconv.AppendFloat(nil, f, 'g', minSig, bitSize)
	}
	out := string(s)
	if !strings.Contains(out, ".") {
		if i := strings.IndexAny(out, "eE"); i >= 0 {
			out = out[:i] + ".0" + out[i:]
		} else {
			out += ".0"
		}
	}
	return out
}

func significantDigits(s []byte) int {
	n := 0
	started := false
	for _, b := range s {
		switch {
		case b == 'e' || b == 'E':
			return n
		case b >= '0' && b <= '9':
			if b != '0' {
				started = true
			}
			if started {
				n++
			}
		}
	}
	return n
}
