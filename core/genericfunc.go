package core

// NativeFunc is the shape every method body, builtin, and compiled closure
// takes: the runtime context plus the already-evaluated argument values.
// The interpreter (out of scope, spec.md §1) is the only producer of the
// Values passed in here.
type NativeFunc func(ctx *Context, args []*Value) (*Value, error)

// Method pairs a tuple-of-types signature with a body, per spec.md §3.3.
type Method struct {
	Signature *Type
	Body      NativeFunc
}

// GenericFunction is a named multimethod (spec.md §4.3): an ordered,
// append-only list of methods. The table is kept as a flat slice in
// registration order and scanned linearly on every call; Select picks the
// most specific matching method, not simply the first match. No cache by
// concrete argument-type tuple is kept.
type GenericFunction struct {
	Name    string
	methods []Method
}

// NewGenericFunction implements new_generic_function(name).
func NewGenericFunction(name string) *GenericFunction {
	return &GenericFunction{Name: name}
}

// Methods returns the method table in registration order. Callers must
// treat the returned slice as read-only.
func (gf *GenericFunction) Methods() []Method { return gf.methods }

// AddMethod implements add_method(gf, signature, body): idempotent on an
// exact signature match (replaces the body in place, preserving its
// position so the order-of-definition tie-break in Select is unaffected),
// append otherwise. Method-table insertion is an observable side effect
// (spec.md §3.3): once this returns, Apply sees the new method.
func (gf *GenericFunction) AddMethod(sig *Type, body NativeFunc) {
	for i, m := range gf.methods {
		if typesEqual(m.Signature, sig) {
			gf.methods[i].Body = body
			return
		}
	}
	gf.methods = append(gf.methods, Method{Signature: sig, Body: body})
}

// candidates returns the methods whose signature is satisfied by argTypes
// under tuple-mode subtyping (spec.md §4.3 step 2), together with their
// original registration index (needed for the order-of-definition
// tie-break).
func (gf *GenericFunction) candidates(argTypes *Type) []int {
	var idx []int
	for i, m := range gf.methods {
		if Subtype(argTypes, m.Signature) {
			idx = append(idx, i)
		}
	}
	return idx
}

// minimal returns, among candidate indices, those whose signature has no
// other candidate strictly more specific than it.
func (gf *GenericFunction) minimal(argTypes *Type, idx []int) []int {
	var min []int
	for _, i := range idx {
		dominated := false
		for _, j := range idx {
			if i == j {
				continue
			}
			if moreSpecific(gf.methods[j].Signature, gf.methods[i].Signature) {
				dominated = true
				break
			}
		}
		if !dominated {
			min = append(min, i)
		}
	}
	_ = argTypes
	return min
}

// Select implements spec.md §4.3 steps 2-4, resolving a non-unique minimum
// by the order-of-definition policy chosen in SPEC_FULL.md's Open Question
// decisions: the earliest-registered minimal method wins, and a warning is
// logged through ctx (the "may linearize deterministically and warn"
// allowance in §4.3 step 4).
func (gf *GenericFunction) Select(ctx *Context, argTypes *Type) (*Method, error) {
	idx := gf.candidates(argTypes)
	if len(idx) == 0 {
		return nil, wrap(&NoMethodError{Func: gf.Name, Args: argTypes.String()})
	}
	min := gf.minimal(argTypes, idx)
	if len(min) == 0 {
		min = idx
	}
	chosen := min[0]
	for _, i := range min[1:] {
		if i < chosen {
			chosen = i
		}
	}
	if len(min) > 1 && ctx != nil {
		ctx.Logger().Warn().
			Str("generic_function", gf.Name).
			Str("argtypes", argTypes.String()).
			Int("candidates", len(min)).
			Msg("ambiguous dispatch resolved by order of definition")
	}
	return &gf.methods[chosen], nil
}

// SelectStrict is the same selection as Select but raises AmbiguityError
// instead of silently linearizing, for callers that need the hard error
// spec.md §4.3 names rather than the default deterministic fallback.
func (gf *GenericFunction) SelectStrict(argTypes *Type) (*Method, error) {
	idx := gf.candidates(argTypes)
	if len(idx) == 0 {
		return nil, wrap(&NoMethodError{Func: gf.Name, Args: argTypes.String()})
	}
	min := gf.minimal(argTypes, idx)
	if len(min) != 1 {
		return nil, wrap(&AmbiguityError{Func: gf.Name, Args: argTypes.String()})
	}
	return &gf.methods[min[0]], nil
}

// Apply implements the `apply` contract of spec.md §4.3: compute the
// argument-tuple type, select a method via Select, and invoke its body.
func (gf *GenericFunction) Apply(ctx *Context, args []*Value) (*Value, error) {
	types := make([]*Type, len(args))
	for i, a := range args {
		types[i] = a.Type()
	}
	argTypes := NewTupleType(types...)
	m, err := gf.Select(ctx, argTypes)
	if err != nil {
		return nil, err
	}
	return m.Body(ctx, args)
}
