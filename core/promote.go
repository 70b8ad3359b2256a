package core

// biggerType implements spec.md §4.2's `bigger_type`: the least common
// embedding type along the parametric covariance that makes
// Complex{Int32}/Complex{Float64} promote to Complex{Float64} once
// Int32->Float64 is the wider Bits type. Per §1's Non-goals ("no attempt
// at numeric-tower semantics beyond a width-based ordering for bits-kind
// scalars"), two Bits types are ordered purely by declared bit width; two
// same-width, different-identity Bits types (e.g. Int32 vs Uint32) are the
// open question in §9, resolved as undefined here.
func biggerType(t1, t2 *Type) (*Type, bool) {
	if typesEqual(t1, t2) {
		return t1, true
	}

	if t1.kind == KindBits && t2.kind == KindBits {
		if t1.nbits != t2.nbits {
			if t1.nbits > t2.nbits {
				return t1, true
			}
			return t2, true
		}
		return nil, false
	}

	if t1.kind == t2.kind && t1.name != "" && t1.name == t2.name && len(t1.parameters) == len(t2.parameters) {
		side := 0 // 0 = undecided, 1 = t1, 2 = t2
		for i := range t1.parameters {
			p1, p2 := t1.parameters[i], t2.parameters[i]
			if typesEqual(p1, p2) {
				continue
			}
			bp, ok := biggerType(p1, p2)
			if !ok {
				return nil, false
			}
			var this int
			switch {
			case typesEqual(bp, p1):
				this = 1
			case typesEqual(bp, p2):
				this = 2
			default:
				return nil, false
			}
			if side == 0 {
				side = this
			} else if side != this {
				return nil, false
			}
		}
		if side == 2 {
			return t2, true
		}
		return t1, true
	}

	if subtype(t1, t2, false) && !subtype(t2, t1, false) {
		return t2, true
	}
	if subtype(t2, t1, false) && !subtype(t1, t2, false) {
		return t1, true
	}
	if t1 == Any || t2 == Any {
		return Any, true
	}
	return biggerType(ancestorOf(t1), ancestorOf(t2))
}

// ancestorOf returns t's immediate supertype for nominal kinds, or Any for
// kinds that have no super pointer (Union, Func, TypeVar, TypeCtor, Seq),
// ending the supertype walk bigger_type performs.
func ancestorOf(t *Type) *Type {
	switch t.kind {
	case KindBits, KindStruct, KindTag:
		if t.super != nil {
			return t.super
		}
	}
	return Any
}

// BiggerType is the exported entry point for §4.2's `bigger_type`.
func BiggerType(t1, t2 *Type) (*Type, bool) { return biggerType(t1, t2) }

// Promote implements spec.md §4.2's `promote` contract.
func Promote(ctx *Context, xs ...*Value) (*Value, error) {
	switch len(xs) {
	case 0:
		return NewTuple(), nil
	case 1:
		return NewTuple(xs[0]), nil
	}

	t := xs[0].Type()
	for _, x := range xs[1:] {
		next, ok := biggerType(t, x.Type())
		if !ok {
			types := make([]string, len(xs))
			for i, x := range xs {
				types[i] = x.Type().String()
			}
			return nil, wrap(&PromotionError{Types: types})
		}
		t = next
	}

	out := make([]*Value, len(xs))
	for i, x := range xs {
		converted, err := Convert(ctx, x, t)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return NewTuple(out...), nil
}
