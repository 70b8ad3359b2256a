package core

// RegisterConversion installs a conversion method on a Bits or Struct
// target type, keyed by the source type it accepts — spec.md §3.2's
// "optional conversion method pointer" / "optional conversion method",
// modeled as a one-argument GenericFunction per target type so several
// source types can each register their own `convert(T, x::Source) = ...`
// method, mirroring the teacher's GenericDecl/GenericUsage bookkeeping in
// types/generics.go (one table per generic symbol, many usages).
func RegisterConversion(t *Type, sourceType *Type, body NativeFunc) error {
	if t.kind != KindBits && t.kind != KindStruct {
		return wrap(&TypeError{Op: "RegisterConversion", Want: "Bits or Struct type", Got: t.kind.String()})
	}
	if t.fconvert == nil {
		t.fconvert = NewGenericFunction("convert:" + t.name)
	}
	t.fconvert.AddMethod(NewTupleType(sourceType), body)
	return nil
}

// Convert implements the `convert` contract of spec.md §4.2.
func Convert(ctx *Context, x *Value, T *Type) (*Value, error) {
	if Subtype(x.Type(), T) {
		return x, nil
	}

	if x.IsTuple() && IsTupleType(T) {
		return convertTuple(ctx, x, T)
	}

	var gf *GenericFunction
	switch T.kind {
	case KindBits:
		gf = T.fconvert
	case KindStruct:
		gf = T.fconvert
	default:
		return nil, wrap(&ConversionError{From: x.Type().String(), To: T.String()})
	}
	if gf == nil {
		return nil, wrap(&ConversionError{From: x.Type().String(), To: T.String()})
	}

	result, err := gf.Apply(ctx, []*Value{x})
	if err != nil {
		return nil, wrap(&ConversionError{From: x.Type().String(), To: T.String()})
	}
	if !Subtype(result.Type(), T) {
		return nil, wrap(&ConversionError{From: x.Type().String(), To: T.String()})
	}
	return result, nil
}

// convertTuple handles Convert's tuple case: element-wise conversion, with
// the last element of T allowed to be a Seq absorbing the remaining source
// elements (spec.md §4.2 step 2).
func convertTuple(ctx *Context, x *Value, T *Type) (*Value, error) {
	src := x.TupleElems()
	dst := T.Parameters()

	seq := len(dst) > 0 && dst[len(dst)-1].kind == KindSeq
	fixed := dst
	if seq {
		fixed = dst[:len(dst)-1]
	}
	if (!seq && len(src) != len(fixed)) || (seq && len(src) < len(fixed)) {
		return nil, wrap(&ConversionError{From: x.Type().String(), To: T.String()})
	}

	out := make([]*Value, len(src))
	for i, s := range src {
		var target *Type
		if i < len(fixed) {
			target = fixed[i]
		} else {
			target = dst[len(dst)-1].elem
		}
		converted, err := Convert(ctx, s, target)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return NewTuple(out...), nil
}
