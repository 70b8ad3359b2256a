package core

// subtype implements the `subtype` contract of spec.md §4.1. Tag/Struct
// parameters are always compared invariantly (structural equality per
// position) — the system is "nominally parametric, not covariant in
// parameters"; the one place covariance applies is promotion's
// `bigger_type`, which computes a *widened* parameter per position rather
// than a yes/no answer, so it is implemented separately in promote.go
// instead of as a mode flag here.
//
// tupleMode is passed through recursive calls but does not change the
// result: element-wise comparison happens only when b is tuple-shaped, and
// a non-tuple a is then rejected either way. Every caller passes false.
func subtype(a, b *Type, tupleMode bool) bool {
	if a == b {
		return true
	}
	if b == Any {
		return true
	}
	if a == Bottom {
		return true
	}

	if b.kind == KindTypeVar {
		return subtype(a, b.upper, tupleMode)
	}
	if a.kind == KindTypeVar {
		return subtype(a.upper, b, tupleMode)
	}

	if b.kind == KindUnion {
		for _, m := range b.members {
			if subtype(a, m, tupleMode) {
				return true
			}
		}
		return false
	}
	if a.kind == KindUnion {
		for _, m := range a.members {
			if !subtype(m, b, tupleMode) {
				return false
			}
		}
		return true
	}

	if a.kind == KindSeq || b.kind == KindSeq {
		// A bare Seq only ever participates in tuple-position comparison,
		// handled by compareTupleParams below; outside that context two
		// Seqs are comparable only via their inner element type.
		if a.kind == KindSeq && b.kind == KindSeq {
			return subtype(a.elem, b.elem, tupleMode)
		}
		return false
	}

	if a.kind == KindFunc && b.kind == KindFunc {
		// contravariant in domain, covariant in range
		return subtype(b.domain, a.domain, tupleMode) &&
			subtype(a.rng, b.rng, tupleMode)
	}
	if a.kind == KindFunc || b.kind == KindFunc {
		return false
	}

	if (tupleMode || IsTupleType(a)) && IsTupleType(b) {
		if !IsTupleType(a) {
			return false
		}
		if b == TupleUniversal {
			// The unparametrized Tuple type is the top of the tuple-shape
			// lattice: it matches any tuple arity/element types, not just
			// the zero-element tuple.
			return true
		}
		return compareTupleParams(a.parameters, b.parameters)
	}
	if IsTupleType(a) != IsTupleType(b) {
		return false
	}

	// Nominal ancestor walk for Tag/Struct/Bits.
	cur := a
	for cur != nil {
		if cur.kind == b.kind && cur.name == b.name && cur.name != "" {
			return compareParams(cur.parameters, b.parameters)
		}
		if cur == Any {
			break
		}
		cur = cur.super
	}
	return false
}

// compareParams compares two nominal types' parameter lists for structural
// equality, position by position.
func compareParams(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// compareTupleParams implements the Seq-absorption rules of spec.md §4.1:
// a trailing Seq on the right absorbs zero or more remaining elements from
// the left; a trailing Seq on both sides pairs them via their inner types.
func compareTupleParams(a, b []*Type) bool {
	bHasSeq := len(b) > 0 && b[len(b)-1].kind == KindSeq
	aHasSeq := len(a) > 0 && a[len(a)-1].kind == KindSeq

	if aHasSeq && bHasSeq {
		fixedA, fixedB := a[:len(a)-1], b[:len(b)-1]
		if len(fixedA) != len(fixedB) {
			return false
		}
		for i := range fixedA {
			if !subtype(fixedA[i], fixedB[i], false) {
				return false
			}
		}
		return subtype(a[len(a)-1].elem, b[len(b)-1].elem, false)
	}

	if bHasSeq {
		fixedB := b[:len(b)-1]
		if len(a) < len(fixedB) {
			return false
		}
		for i, bt := range fixedB {
			if !subtype(a[i], bt, false) {
				return false
			}
		}
		seqElem := b[len(b)-1].elem
		for _, at := range a[len(fixedB):] {
			if !subtype(at, seqElem, false) {
				return false
			}
		}
		return true
	}

	if aHasSeq {
		// A Seq on the left only matches a Seq on the right (handled above);
		// against a fixed-arity right side it cannot be absorbed.
		return false
	}

	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !subtype(a[i], b[i], false) {
			return false
		}
	}
	return true
}

// Subtype is the public, exported entry point for the `subtype` builtin
// (spec.md §4.4): tuples compare element-wise automatically when both sides
// are tuple-shaped, and Tag/Struct parameters compare invariantly.
func Subtype(a, b *Type) bool {
	return subtype(a, b, false)
}

// typesEqual implements `types_equal`: mutual subtyping.
func typesEqual(a, b *Type) bool {
	return subtype(a, b, false) && subtype(b, a, false)
}

// TypesEqual is the exported form of typesEqual.
func TypesEqual(a, b *Type) bool { return typesEqual(a, b) }
