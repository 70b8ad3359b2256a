package core

import "math"

// valueKind is the closed set of heap-value variants (spec.md §3.1).
type valueKind int

const (
	kindTuple valueKind = iota
	kindArray
	kindSymbol
	kindStruct
	kindBits
	kindFunction
	kindExpr
	kindBox
	kindLambda
)

// FunctionKind distinguishes the four things a Function Value can wrap.
type FunctionKind int

const (
	FuncGeneric FunctionKind = iota
	FuncClosure
	FuncTypeCtor
	FuncNative
)

// Closure pairs a (possibly not-yet-compiled) LambdaInfo with a captured
// environment tuple, per spec.md §3.1 ("Function ... a closure over (code,
// env)"). Compiled is filled in lazily by the external trampoline the first
// time the closure is applied (spec.md §6: "calls out to compile
// (lambdaInfo) when first applying an uncompiled closure"); core never
// interprets Info.Payload itself.
type Closure struct {
	Info     *LambdaInfo
	Env      *Value
	Compiled NativeFunc
}

// LambdaInfo is an opaque, compiler-owned code descriptor (spec.md §3.1).
// core only ever stores and forwards it.
type LambdaInfo struct {
	Compiled bool
	Payload  any
}

// Value is a polymorphic heap object (spec.md §3.1): a single closed tagged
// struct, one field set per kind, discriminated by valueKind — the same
// "closed tagged variant" representation used for Type, avoiding the
// raw-pointer payload casting the Design Notes call out as a source
// language pattern to re-architect away from.
type Value struct {
	kind valueKind
	typ  *Type

	tuple []*Value

	arrElem   *Type
	arrInline bool
	arr       []*Value // nil entries are uninitialized reference-array slots

	symbol string

	fields []*Value

	bitsPayload uint64

	fnKind   FunctionKind
	generic  *GenericFunction
	closure  *Closure
	typector *Type
	nativeFn NativeFunc

	exprHead *Value
	exprArgs *Value

	boxVal *Value
	boxSet bool

	lambda *LambdaInfo
}

// Type returns v's type pointer. Invariant V1 (spec.md §3.2) guarantees it
// is never nil for any Value produced by this package's constructors.
func (v *Value) Type() *Type { return v.typ }

// --- construction ----------------------------------------------------------

func newBits(t *Type, payload uint64) *Value {
	return &Value{kind: kindBits, typ: t, bitsPayload: payload}
}

func NewBool(b bool) *Value {
	if b {
		return newBits(BoolType, 1)
	}
	return newBits(BoolType, 0)
}

func NewInt8(x int8) *Value   { return newBits(Int8Type, uint64(uint8(x))) }
func NewInt16(x int16) *Value { return newBits(Int16Type, uint64(uint16(x))) }
func NewInt32(x int32) *Value { return newBits(Int32Type, uint64(uint32(x))) }
func NewInt64(x int64) *Value { return newBits(Int64Type, uint64(x)) }

func NewUint8(x uint8) *Value   { return newBits(Uint8Type, uint64(x)) }
func NewUint16(x uint16) *Value { return newBits(Uint16Type, uint64(x)) }
func NewUint32(x uint32) *Value { return newBits(Uint32Type, uint64(x)) }
func NewUint64(x uint64) *Value { return newBits(Uint64Type, x) }

func NewFloat32(x float32) *Value { return newBits(Float32Type, uint64(math.Float32bits(x))) }
func NewFloat64(x float64) *Value { return newBits(Float64Type, math.Float64bits(x)) }

// BoolVal, Int8Val, ... extract the typed payload back out. Callers are
// expected to check Type() first; these panic (a programmer error, not a
// user-facing error) if called on the wrong kind, the same contract the
// teacher's own `*Basic`/`*Struct` type assertions rely on.
func (v *Value) BoolVal() bool      { v.mustBits(BoolType); return v.bitsPayload != 0 }
func (v *Value) Int8Val() int8      { v.mustBits(Int8Type); return int8(uint8(v.bitsPayload)) }
func (v *Value) Int16Val() int16    { v.mustBits(Int16Type); return int16(uint16(v.bitsPayload)) }
func (v *Value) Int32Val() int32    { v.mustBits(Int32Type); return int32(uint32(v.bitsPayload)) }
func (v *Value) Int64Val() int64    { v.mustBits(Int64Type); return int64(v.bitsPayload) }
func (v *Value) Uint8Val() uint8    { v.mustBits(Uint8Type); return uint8(v.bitsPayload) }
func (v *Value) Uint16Val() uint16  { v.mustBits(Uint16Type); return uint16(v.bitsPayload) }
func (v *Value) Uint32Val() uint32  { v.mustBits(Uint32Type); return uint32(v.bitsPayload) }
func (v *Value) Uint64Val() uint64  { v.mustBits(Uint64Type); return v.bitsPayload }
func (v *Value) Float32Val() float32 {
	v.mustBits(Float32Type)
	return math.Float32frombits(uint32(v.bitsPayload))
}
func (v *Value) Float64Val() float64 {
	v.mustBits(Float64Type)
	return math.Float64frombits(v.bitsPayload)
}

func (v *Value) mustBits(t *Type) {
	if v.kind != kindBits || v.typ != t {
		panic("core: value is not a " + t.Name())
	}
}

// NewTuple implements the `tuple` builtin.
func NewTuple(vals ...*Value) *Value {
	types := make([]*Type, len(vals))
	for i, x := range vals {
		types[i] = x.Type()
	}
	return &Value{kind: kindTuple, typ: NewTupleType(types...), tuple: append([]*Value(nil), vals...)}
}

func (v *Value) IsTuple() bool   { return v.kind == kindTuple }
func (v *Value) TupleLen() int   { return len(v.tuple) }
func (v *Value) TupleElems() []*Value {
	return v.tuple
}

// NewArray implements the storage half of the Array[T] variant: a
// contiguous buffer of length n. Bits-kind elements are eagerly
// zero-initialized (they have no "uninitialized" state); reference-kind
// elements start as nil slots, triggering UndefinedError on arrayref until
// set, per spec.md's table of builtins.
func NewArray(elem *Type, n int) *Value {
	arrType := &Type{kind: KindTag, name: "Array", super: ArrayTag, parameters: []*Type{elem}}
	a := &Value{kind: kindArray, typ: arrType, arrElem: elem, arrInline: elem.IsInline(), arr: make([]*Value, n)}
	if a.arrInline {
		zero := zeroBitsOrStruct(elem)
		for i := range a.arr {
			a.arr[i] = zero
		}
	}
	return a
}

// NewString builds a String value: a byte Array with StringType's distinct
// nominal identity (spec.md §4.5, "String (byte array)"), so print's String
// method matches it and writes the raw bytes; print has no method for other
// Array values.
func NewString(s string) *Value {
	bytes := make([]*Value, len(s))
	for i := 0; i < len(s); i++ {
		bytes[i] = newBits(Uint8Type, uint64(s[i]))
	}
	return &Value{kind: kindArray, typ: StringType, arrElem: Uint8Type, arrInline: true, arr: bytes}
}

// StringVal extracts the raw bytes back out of a String value.
func (v *Value) StringVal() string {
	v.mustString()
	buf := make([]byte, len(v.arr))
	for i, b := range v.arr {
		buf[i] = byte(b.bitsPayload)
	}
	return string(buf)
}

func (v *Value) mustString() {
	if v.kind != kindArray || v.typ != StringType {
		panic("core: value is not a String")
	}
}

func zeroBitsOrStruct(t *Type) *Value {
	if t.kind == KindBits {
		return newBits(t, 0)
	}
	return nil
}

func (v *Value) IsArray() bool   { return v.kind == kindArray }
func (v *Value) ArrayLen() int   { return len(v.arr) }
func (v *Value) ArrayElemType() *Type { return v.arrElem }

// newSymbol is the low-level Symbol constructor used by Context.Intern;
// callers obtain Symbols through Context.Intern so identity (invariant V2)
// is guaranteed.
func newSymbol(name string) *Value {
	return &Value{kind: kindSymbol, typ: SymbolType, symbol: name}
}

func (v *Value) IsSymbol() bool    { return v.kind == kindSymbol }
func (v *Value) SymbolName() string { return v.symbol }

// NewStruct builds a struct instance. fields must already match t's
// declared field types (callers that accept arbitrary values, like the
// generated struct constructor in builtins.go, convert them first).
func NewStruct(t *Type, fields []*Value) *Value {
	return &Value{kind: kindStruct, typ: t, fields: append([]*Value(nil), fields...)}
}

func (v *Value) IsStruct() bool        { return v.kind == kindStruct }
func (v *Value) StructFields() []*Value { return v.fields }

// NewGenericFunctionValue wraps a GenericFunction as a Function Value.
func NewGenericFunctionValue(gf *GenericFunction) *Value {
	return &Value{kind: kindFunction, typ: FunctionType, fnKind: FuncGeneric, generic: gf}
}

// NewClosureValue implements new_closure(li, env).
func NewClosureValue(li *Value, env *Value) *Value {
	return &Value{
		kind: kindFunction, typ: FunctionType, fnKind: FuncClosure,
		closure: &Closure{Info: li.lambda, Env: env},
	}
}

// NewTypeCtorFunctionValue wraps a TypeCtor type as a Function Value.
// Applying it through apply raises TypeError; callers instantiate the
// TypeCtor with InstantiateType instead.
func NewTypeCtorFunctionValue(t *Type) *Value {
	return &Value{kind: kindFunction, typ: FunctionType, fnKind: FuncTypeCtor, typector: t}
}

// NewNativeFunctionValue wraps a plain Go NativeFunc as a callable Function
// Value — used to bind the Value-to-Value-shaped builtins (is, apply,
// tuple, box, …) into the root namespace so they're reachable through
// `apply` exactly like a user-defined generic function or closure would be.
func NewNativeFunctionValue(fn NativeFunc) *Value {
	return &Value{kind: kindFunction, typ: FunctionType, fnKind: FuncNative, nativeFn: fn}
}

func (v *Value) IsFunction() bool { return v.kind == kindFunction }

// NewExpr implements the (head, args) AST-pair Value.
func NewExpr(head *Value, args *Value) *Value {
	return &Value{kind: kindExpr, typ: exprType, exprHead: head, exprArgs: args}
}

var exprType = &Type{kind: KindTag, name: "Expr", super: Any}

func (v *Value) IsExpr() bool { return v.kind == kindExpr }
func (v *Value) ExprHead() *Value { return v.exprHead }
func (v *Value) ExprArgs() *Value { return v.exprArgs }

// NewBox implements box() / box(v).
func NewBox(v *Value) *Value {
	b := &Value{kind: kindBox, typ: boxType}
	if v != nil {
		b.boxVal = v
		b.boxSet = true
	}
	return b
}

var boxType = &Type{kind: KindTag, name: "Box", super: Any}

func (v *Value) IsBox() bool { return v.kind == kindBox }

// NewLambdaInfoValue wraps an opaque LambdaInfo as a Value.
func NewLambdaInfoValue(li *LambdaInfo) *Value {
	return &Value{kind: kindLambda, typ: lambdaInfoType, lambda: li}
}

var lambdaInfoType = &Type{kind: KindTag, name: "LambdaInfo", super: Any}

func (v *Value) IsLambdaInfo() bool { return v.kind == kindLambda }

// Is implements the `is` builtin: identity equality. Every Value is a
// unique heap allocation except interned Symbols (guaranteed equal by
// Context.Intern, invariant V2), so pointer equality is exactly identity.
func Is(a, b *Value) bool { return a == b }
