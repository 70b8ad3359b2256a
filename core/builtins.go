package core

// This file adapts the teacher's types/typexpr.go pattern of "one case per
// builtin name, type-checking a call's arguments" (see builtinCall there)
// into the executing counterpart: one function per entry in spec.md §4.4's
// builtin table, each taking already-evaluated *Value/*Type arguments and
// either returning a result or one of errors.go's error values. The
// out-of-scope interpreter (spec.md §1) is the only caller that ever
// assembles these from source syntax; core itself just exposes the
// operations as plain Go functions.

// TypeOf implements `typeof(x)`.
func TypeOf(x *Value) *Type { return x.Type() }

// IsType implements `istype(x, T)`: x's type is a subtype of T. Per spec.md
// §4.4, when x is a tuple this runs in tuple mode automatically — Subtype
// already does, since a tuple's own Type() is always tuple-shaped.
func IsType(x *Value, T *Type) bool {
	return Subtype(x.Type(), T)
}

// TypeAssert implements `typeassert(x, T)`.
func TypeAssert(x *Value, T *Type) (*Value, error) {
	if !IsType(x, T) {
		return nil, wrap(&AssertionError{Value: x.Type().String(), Want: T.String()})
	}
	return x, nil
}

// Tuple implements the `tuple(...)` builtin.
func Tuple(vals ...*Value) *Value { return NewTuple(vals...) }

// TupleRef implements `tupleref(t, i)`: 1-based indexing per spec.md §3.1.
func TupleRef(t *Value, i int) (*Value, error) {
	if !t.IsTuple() {
		return nil, wrap(&TypeError{Op: "tupleref", Want: "tuple", Got: t.Type().String()})
	}
	if i < 1 || i > t.TupleLen() {
		return nil, wrap(&BoundsError{Op: "tupleref", Index: i, Len: t.TupleLen()})
	}
	return t.TupleElems()[i-1], nil
}

// TupleLen implements `tuplelen(t)`.
func TupleLen(t *Value) (int, error) {
	if !t.IsTuple() {
		return 0, wrap(&TypeError{Op: "tuplelen", Want: "tuple", Got: t.Type().String()})
	}
	return t.TupleLen(), nil
}

// GetField implements `getfield(s, name)`.
func GetField(s *Value, name string) (*Value, error) {
	if !s.IsStruct() {
		return nil, wrap(&FieldError{Type: s.Type().String(), Field: name})
	}
	t := s.Type()
	for i, n := range t.fieldNames {
		if n == name {
			return s.fields[i], nil
		}
	}
	return nil, wrap(&FieldError{Type: t.name, Field: name})
}

// SetField implements `setfield(s, name, v)`: mutates s's field in place
// after checking v against the declared field type, converting when a
// conversion method narrows it, per spec.md §4.4's "TypeError if v doesn't
// match the declared field type" rule relaxed through `convert` the same
// way struct construction is (see structConstructor below).
func SetField(ctx *Context, s *Value, name string, v *Value) error {
	if !s.IsStruct() {
		return wrap(&FieldError{Type: s.Type().String(), Field: name})
	}
	t := s.Type()
	for i, n := range t.fieldNames {
		if n != name {
			continue
		}
		converted, err := Convert(ctx, v, t.fieldTypes[i])
		if err != nil {
			return wrap(&TypeError{Op: "setfield", Want: t.fieldTypes[i].String(), Got: v.Type().String()})
		}
		s.fields[i] = converted
		return nil
	}
	return wrap(&FieldError{Type: t.name, Field: name})
}

// ArrayLen implements `arraylen(a)`.
func ArrayLen(a *Value) (int, error) {
	if !a.IsArray() {
		return 0, wrap(&TypeError{Op: "arraylen", Want: "array", Got: a.Type().String()})
	}
	return a.ArrayLen(), nil
}

// ArrayRef implements `arrayref(a, i)`: 1-based indexing, UndefinedError on
// an unset reference-kind slot (spec.md §3.1 / §4.4).
func ArrayRef(a *Value, i int) (*Value, error) {
	if !a.IsArray() {
		return nil, wrap(&TypeError{Op: "arrayref", Want: "array", Got: a.Type().String()})
	}
	if i < 1 || i > a.ArrayLen() {
		return nil, wrap(&BoundsError{Op: "arrayref", Index: i, Len: a.ArrayLen()})
	}
	v := a.arr[i-1]
	if v == nil {
		return nil, wrap(&UndefinedError{Op: "arrayref"})
	}
	return v, nil
}

// ArraySet implements `arrayset(a, i, v)`.
func ArraySet(ctx *Context, a *Value, i int, v *Value) error {
	if !a.IsArray() {
		return wrap(&TypeError{Op: "arrayset", Want: "array", Got: a.Type().String()})
	}
	if i < 1 || i > a.ArrayLen() {
		return wrap(&BoundsError{Op: "arrayset", Index: i, Len: a.ArrayLen()})
	}
	converted, err := Convert(ctx, v, a.arrElem)
	if err != nil {
		return wrap(&TypeError{Op: "arrayset", Want: a.arrElem.String(), Got: v.Type().String()})
	}
	a.arr[i-1] = converted
	return nil
}

// Box implements both `box()` and `box(v)`.
func Box(v *Value) *Value {
	if v == nil {
		return NewBox(nil)
	}
	return NewBox(v)
}

// Unbox implements `unbox(b)`.
func Unbox(b *Value) (*Value, error) {
	if !b.IsBox() {
		return nil, wrap(&TypeError{Op: "unbox", Want: "box", Got: b.Type().String()})
	}
	if !b.boxSet {
		return nil, wrap(&UndefinedError{Op: "unbox"})
	}
	return b.boxVal, nil
}

// BoxSet implements `boxset(b, v)`.
func BoxSet(b *Value, v *Value) error {
	if !b.IsBox() {
		return wrap(&TypeError{Op: "boxset", Want: "box", Got: b.Type().String()})
	}
	b.boxVal = v
	b.boxSet = true
	return nil
}

// TypeVar implements `typevar(name)` (and the bounded form used internally
// by type-constructor parameters).
func TypeVar(name string) *Type { return NewTypeVar(name) }

// NewClosure implements `new_closure(li, env)`.
func NewClosure(li *Value, env *Value) (*Value, error) {
	if !li.IsLambdaInfo() {
		return nil, wrap(&TypeError{Op: "new_closure", Want: "lambda-info", Got: li.Type().String()})
	}
	if !env.IsTuple() {
		return nil, wrap(&TypeError{Op: "new_closure", Want: "tuple environment", Got: env.Type().String()})
	}
	return NewClosureValue(li, env), nil
}

// AddMethod implements `add_method(gf, signature, body)`.
func AddMethod(gf *GenericFunction, signature *Type, body NativeFunc) error {
	if !IsTupleType(signature) {
		return wrap(&TypeError{Op: "add_method", Want: "tuple-of-types signature", Got: signature.String()})
	}
	gf.AddMethod(signature, body)
	return nil
}

// Apply implements `apply(f, args...)`: each args element must itself be a
// tuple (per spec.md §4.3, apply spreads its tuple arguments), concatenated
// before dispatch.
func Apply(ctx *Context, f *Value, tuples ...*Value) (*Value, error) {
	var args []*Value
	for _, t := range tuples {
		if !t.IsTuple() {
			return nil, wrap(&TypeError{Op: "apply", Want: "tuple", Got: t.Type().String()})
		}
		args = append(args, t.TupleElems()...)
	}
	return callFunction(ctx, f, args)
}

// callFunction dispatches a Function Value by its four FunctionKinds: native
// builtins, generic functions, closures and type constructors. A type-constructor Function is deliberately not reachable through apply:
// instantiate_type returns a Type, not a Value, so the two kinds of "result"
// don't share a return type — callers that hold a TypeCtor Function call
// InstantiateType directly instead.
func callFunction(ctx *Context, f *Value, args []*Value) (*Value, error) {
	if !f.IsFunction() {
		return nil, wrap(&TypeError{Op: "apply", Want: "function", Got: f.Type().String()})
	}
	switch f.fnKind {
	case FuncNative:
		return f.nativeFn(ctx, args)
	case FuncGeneric:
		return f.generic.Apply(ctx, args)
	case FuncClosure:
		c := f.closure
		if c.Compiled == nil {
			compiled, err := ctx.compile(c.Info)
			if err != nil {
				return nil, err
			}
			c.Compiled = compiled
		}
		full := append(append([]*Value(nil), c.Env.TupleElems()...), args...)
		return c.Compiled(ctx, full)
	default: // FuncTypeCtor
		return nil, wrap(&TypeError{Op: "apply", Want: "closure or generic function", Got: "type constructor; use instantiate_type"})
	}
}

// NewGenericFunctionVal implements `new_generic_function(name)`, returning
// the Function Value the namespace binds the name to.
func NewGenericFunctionVal(name string) *Value {
	return NewGenericFunctionValue(NewGenericFunction(name))
}

// NewTagTypeBuiltin implements `new_tag_type`.
func NewTagTypeBuiltin(name string, super *Type, params []*Type) (*Type, error) {
	return NewTagType(name, super, params)
}

// NewStructTypeBuiltin implements `new_struct_type`.
func NewStructTypeBuiltin(name string, super *Type, params []*Type, fieldNames []string) (*Type, error) {
	return NewStructType(name, super, params, fieldNames)
}

// NewStructFieldsBuiltin implements `new_struct_fields`, additionally
// installing the generic constructor spec.md §3.2 says struct-type
// declaration registers: a one-method GenericFunction, named after the
// type, whose single method's signature is the declared field types and
// whose body converts each argument to its field type and builds the
// struct instance (structConstructor below).
func NewStructFieldsBuiltin(t *Type, fieldTypes []*Type) error {
	if err := NewStructFields(t, fieldTypes); err != nil {
		return err
	}
	ctor := NewGenericFunction(t.name)
	ctor.AddMethod(NewTupleType(t.fieldTypes...), structConstructor(t))
	t.ctor = ctor
	return nil
}

// structConstructor builds the NativeFunc registered as a struct type's
// generic constructor method.
func structConstructor(t *Type) NativeFunc {
	return func(ctx *Context, args []*Value) (*Value, error) {
		if len(args) != len(t.fieldTypes) {
			return nil, wrap(&ArityError{Op: t.name, Expected: len(t.fieldTypes), Got: len(args)})
		}
		fields := make([]*Value, len(args))
		for i, a := range args {
			converted, err := Convert(ctx, a, t.fieldTypes[i])
			if err != nil {
				return nil, wrap(&TypeError{Op: t.name, Want: t.fieldTypes[i].String(), Got: a.Type().String()})
			}
			fields[i] = converted
		}
		return NewStruct(t, fields), nil
	}
}

// Constructor returns the generic constructor Function installed for t by
// NewStructFieldsBuiltin, or nil if t has no fields yet or isn't a struct.
func (t *Type) Constructor() *GenericFunction { return t.ctor }

// NewTypeConstructorBuiltin implements `new_type_constructor`.
func NewTypeConstructorBuiltin(params []*Type, body *Type) (*Type, error) {
	return NewTypeConstructor(params, body)
}

// InstantiateType implements `instantiate_type(tc, params...)`: substitutes
// tc's bound TypeVars with the given concrete types throughout tc.body,
// per spec.md §4.4. The substitution walks tc.body once, replacing each
// TypeVar leaf found by identity and rebuilding only the path above it;
// subtrees containing none of tc.ctorParams are shared unchanged. A memo
// keyed by node identity guards against revisiting the same node twice in a
// graph with shared substructure (spec.md's "cyclic type graphs" note).
func InstantiateType(tc *Type, params ...*Type) (*Type, error) {
	if tc.kind != KindTypeCtor {
		return nil, wrap(&TypeError{Op: "instantiate_type", Want: "type constructor", Got: tc.kind.String()})
	}
	if len(params) != len(tc.ctorParams) {
		return nil, wrap(&ArityError{Op: "instantiate_type", Expected: len(tc.ctorParams), Got: len(params)})
	}
	for i, p := range params {
		tv := tc.ctorParams[i]
		if !Subtype(p, tv.upper) || !Subtype(tv.lower, p) {
			return nil, wrap(&SubtypingError{Type: p.String(), Super: tv.upper.String(), Why: "does not satisfy type-variable bound"})
		}
	}
	mapping := make(map[*Type]*Type, len(params))
	for i, tv := range tc.ctorParams {
		mapping[tv] = params[i]
	}
	return substituteType(tc.body, mapping, make(map[*Type]*Type)), nil
}

func substituteType(t *Type, mapping map[*Type]*Type, memo map[*Type]*Type) *Type {
	if repl, ok := mapping[t]; ok {
		return repl
	}
	if done, ok := memo[t]; ok {
		return done
	}
	if !referencesAny(t, mapping, make(map[*Type]bool)) {
		memo[t] = t
		return t
	}

	cp := *t
	memo[t] = &cp // break cycles: later visits of t within its own subtree see the copy

	cp.parameters = substituteList(t.parameters, mapping, memo)
	cp.fieldTypes = substituteList(t.fieldTypes, mapping, memo)
	if t.super != nil {
		cp.super = substituteType(t.super, mapping, memo)
	}
	cp.members = substituteList(t.members, mapping, memo)
	if t.domain != nil {
		cp.domain = substituteType(t.domain, mapping, memo)
	}
	if t.rng != nil {
		cp.rng = substituteType(t.rng, mapping, memo)
	}
	if t.elem != nil {
		cp.elem = substituteType(t.elem, mapping, memo)
	}
	if t.body != nil {
		cp.body = substituteType(t.body, mapping, memo)
	}
	return &cp
}

func substituteList(ts []*Type, mapping map[*Type]*Type, memo map[*Type]*Type) []*Type {
	if ts == nil {
		return nil
	}
	out := make([]*Type, len(ts))
	for i, t := range ts {
		out[i] = substituteType(t, mapping, memo)
	}
	return out
}

// referencesAny reports whether t's subtree contains any key of mapping,
// by identity, guarding against infinite recursion on self-referential
// graphs with a visited set.
func referencesAny(t *Type, mapping map[*Type]*Type, visited map[*Type]bool) bool {
	if _, ok := mapping[t]; ok {
		return true
	}
	if visited[t] {
		return false
	}
	visited[t] = true
	for _, p := range t.parameters {
		if referencesAny(p, mapping, visited) {
			return true
		}
	}
	for _, p := range t.fieldTypes {
		if referencesAny(p, mapping, visited) {
			return true
		}
	}
	if t.super != nil && referencesAny(t.super, mapping, visited) {
		return true
	}
	for _, m := range t.members {
		if referencesAny(m, mapping, visited) {
			return true
		}
	}
	if t.domain != nil && referencesAny(t.domain, mapping, visited) {
		return true
	}
	if t.rng != nil && referencesAny(t.rng, mapping, visited) {
		return true
	}
	if t.elem != nil && referencesAny(t.elem, mapping, visited) {
		return true
	}
	if t.body != nil && referencesAny(t.body, mapping, visited) {
		return true
	}
	return false
}

// Equal implements the supplemental `equal(a, b)` builtin SPEC_FULL.md adds:
// structural value equality, distinct from `is`'s identity equality. Bits
// compare by payload and type, tuples/arrays/structs element-wise, boxes by
// their contents (two unset boxes are equal), everything else falls back to
// identity (Symbols, Functions, Exprs, LambdaInfo have no structural notion
// beyond their own identity in this model).
func Equal(a, b *Value) bool {
	if Is(a, b) {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindBits:
		return a.typ == b.typ && a.bitsPayload == b.bitsPayload
	case kindTuple:
		if len(a.tuple) != len(b.tuple) {
			return false
		}
		for i := range a.tuple {
			if !Equal(a.tuple[i], b.tuple[i]) {
				return false
			}
		}
		return true
	case kindArray:
		if a.ArrayLen() != b.ArrayLen() || a.arrElem != b.arrElem {
			return false
		}
		for i := range a.arr {
			if (a.arr[i] == nil) != (b.arr[i] == nil) {
				return false
			}
			if a.arr[i] != nil && !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case kindStruct:
		if a.typ != b.typ || len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if !Equal(a.fields[i], b.fields[i]) {
				return false
			}
		}
		return true
	case kindBox:
		if a.boxSet != b.boxSet {
			return false
		}
		return !a.boxSet || Equal(a.boxVal, b.boxVal)
	default:
		return false
	}
}
