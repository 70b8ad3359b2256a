package core

// moreSpecific implements spec.md §4.1's `more_specific` partial order,
// used by method selection (§4.3) and consistent with subtype: if a is a
// strict subtype of b then moreSpecific(a, b) must hold.
//
// Beyond plain subtyping it breaks ties by (i) more concrete parameter
// bindings, (ii) narrower Union, (iii) fewer Seq absorptions in a signature.
// Two tuple signatures are compared by Seq absorptions first and then
// position by position; otherwise a Union on either side is compared by
// member count, and two same-name nominal types by their parameters.
func moreSpecific(a, b *Type) bool {
	if typesEqual(a, b) {
		return false
	}
	aSub := subtype(a, b, false)
	bSub := subtype(b, a, false)
	if aSub && !bSub {
		return true
	}
	if bSub && !aSub {
		return false
	}

	// Neither is a strict subtype of the other under invariant parameter
	// comparison (e.g. both are Tuple types whose elements individually
	// subtype each other covariantly but not invariantly, or two same-name
	// nominal types with differently-concrete parameters). Apply the
	// tie-break criteria.

	if IsTupleType(a) && IsTupleType(b) {
		return tupleMoreSpecific(a.parameters, b.parameters)
	}

	if a.kind == KindUnion || b.kind == KindUnion {
		return unionMoreSpecific(a, b)
	}

	if a.kind == b.kind && a.name == b.name && len(a.parameters) == len(b.parameters) {
		return paramsMoreSpecific(a.parameters, b.parameters)
	}

	return false
}

// MoreSpecific is the exported entry point.
func MoreSpecific(a, b *Type) bool { return moreSpecific(a, b) }

func seqAbsorptions(params []*Type) int {
	if len(params) > 0 && params[len(params)-1].kind == KindSeq {
		return 1
	}
	return 0
}

func tupleMoreSpecific(a, b []*Type) bool {
	aSeq, bSeq := seqAbsorptions(a), seqAbsorptions(b)
	if aSeq != bSeq {
		// Fewer Seq absorptions is more specific.
		return aSeq < bSeq
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		at, bt := a[i], b[i]
		if at.kind == KindSeq {
			at = at.elem
		}
		if bt.kind == KindSeq {
			bt = bt.elem
		}
		if typesEqual(at, bt) {
			continue
		}
		return moreSpecific(at, bt)
	}
	// Equal on every shared position: the longer fixed-arity signature
	// (fewer absorbed elements) is more specific.
	return len(a) > len(b)
}

func unionMoreSpecific(a, b *Type) bool {
	aN, bN := unionSize(a), unionSize(b)
	if aN != bN {
		return aN < bN
	}
	return false
}

func unionSize(t *Type) int {
	if t.kind == KindUnion {
		return len(t.members)
	}
	return 1
}

func paramsMoreSpecific(a, b []*Type) bool {
	moreConcrete := false
	for i := range a {
		if typesEqual(a[i], b[i]) {
			continue
		}
		aVar := a[i].kind == KindTypeVar
		bVar := b[i].kind == KindTypeVar
		if bVar && !aVar {
			moreConcrete = true
			continue
		}
		if aVar && !bVar {
			return false
		}
		if moreSpecific(a[i], b[i]) {
			moreConcrete = true
		} else if moreSpecific(b[i], a[i]) {
			return false
		}
	}
	return moreConcrete
}
