package core

import (
	"sort"
	"strings"
)

// Kind is the closed set of type-lattice node kinds (spec.md §3.2).
type Kind int

const (
	KindBits Kind = iota
	KindStruct
	KindTag
	KindUnion
	KindFunc
	KindTypeVar
	KindTypeCtor
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindBits:
		return "Bits"
	case KindStruct:
		return "Struct"
	case KindTag:
		return "Tag"
	case KindUnion:
		return "Union"
	case KindFunc:
		return "Func"
	case KindTypeVar:
		return "TypeVar"
	case KindTypeCtor:
		return "TypeCtor"
	case KindSeq:
		return "Seq"
	}
	return "?"
}

// Type is a node in the nominal type lattice (spec.md §3.2). It is a single
// closed tagged struct — one field set shared by all kinds, discriminated
// by Kind — per the Design Notes' instruction to avoid payload-pointer
// casting tricks: every *Type is allocated once (by the constructors below)
// and referenced thereafter by pointer identity, which doubles as the
// "arena handle" the Design Notes ask for and is what lets a struct type's
// field types reference the struct type itself through its own TypeCtor.
type Type struct {
	kind Kind

	// Nominal kinds (Bits, Struct, Tag): name, parameters, super.
	name       string
	parameters []*Type // Types or TypeVars, per invariant T1
	super      *Type

	// Bits
	nbits    int
	identity string // distinguishes same-width, different-identity bits types
	fconvert *GenericFunction

	// Struct
	fieldNames     []string
	fieldTypes     []*Type
	fieldsComplete bool
	incomplete     bool // true between new_struct_type and new_struct_fields
	ctor           *GenericFunction // generic constructor installed by NewStructFieldsBuiltin

	// Union
	members []*Type

	// Func
	domain *Type
	rng    *Type

	// TypeVar
	lower *Type
	upper *Type

	// TypeCtor
	ctorParams []*Type
	body       *Type

	// Seq
	elem *Type
}

func (t *Type) Kind() Kind { return t.kind }
func (t *Type) Name() string {
	return t.name
}
func (t *Type) Parameters() []*Type { return t.parameters }
func (t *Type) Super() *Type        { return t.super }
func (t *Type) NBits() int          { return t.nbits }

// Members returns a Union type's normalized member list (empty for any
// other kind).
func (t *Type) Members() []*Type { return t.members }

// IsInline reports whether values of this type are stored inline in an
// Array rather than by reference — the Bits/Struct vs. everything-else
// split spec.md §3.1 calls for in Array[T]'s storage contract, lifted from
// the "mutabl" flag distinction in original_source/builtins.c.
func (t *Type) IsInline() bool {
	return t.kind == KindBits || (t.kind == KindStruct && !t.incomplete)
}

// --- well-known constants -------------------------------------------------

var (
	// Any is the top of the lattice.
	Any = &Type{kind: KindTag, name: "Any"}
	// Bottom is the bottom of the lattice, the empty Union.
	Bottom = &Type{kind: KindUnion, name: "Union", members: nil}
	// SymbolType is the type of interned symbols.
	SymbolType = &Type{kind: KindTag, name: "Symbol", super: Any}
	// TupleUniversal is the universal tuple type (any-length, any-element).
	TupleUniversal = &Type{kind: KindTag, name: "Tuple", super: Any}
	// NTupleTag is the parametric named-length tuple family; NTuple{n,T}
	// is modeled as a Tag type whose parameters are (n's Symbol, T).
	NTupleTag = &Type{kind: KindTag, name: "NTuple", super: TupleUniversal}
	// ArrayTag is the one-parameter array family.
	ArrayTag     = &Type{kind: KindTag, name: "Array", super: Any}
	FunctionType = &Type{kind: KindTag, name: "Function", super: Any}
	TypeTag      = &Type{kind: KindTag, name: "Type", super: Any}

	// Number is the abstract numeric root; all Bits scalar types descend
	// from it, matching spec.md's testable property subtype(Int32,Number).
	Number = &Type{kind: KindTag, name: "Number", super: Any}
	Signed = &Type{kind: KindTag, name: "Signed", super: Number}
	Unsign = &Type{kind: KindTag, name: "Unsigned", super: Number}
	Floats = &Type{kind: KindTag, name: "FloatingPoint", super: Number}

	BoolType = newBitsType("Bool", 1, Any, "bool")

	Int8Type  = newBitsType("Int8", 8, Signed, "i8")
	Int16Type = newBitsType("Int16", 16, Signed, "i16")
	Int32Type = newBitsType("Int32", 32, Signed, "i32")
	Int64Type = newBitsType("Int64", 64, Signed, "i64")

	Uint8Type  = newBitsType("Uint8", 8, Unsign, "u8")
	Uint16Type = newBitsType("Uint16", 16, Unsign, "u16")
	Uint32Type = newBitsType("Uint32", 32, Unsign, "u32")
	Uint64Type = newBitsType("Uint64", 64, Unsign, "u64")

	Float32Type = newBitsType("Float32", 32, Floats, "f32")
	Float64Type = newBitsType("Float64", 64, Floats, "f64")

	// StringType is modeled as a byte Array, per spec.md §4.5 ("String
	// (byte array)"); it is still given a distinct nominal identity so
	// print can special-case it.
	StringType = &Type{kind: KindTag, name: "String", super: Any}

	// BitsKind, StructKind, TagKind, UnionKind, FuncKind are the kind
	// constants spec.md §4.6 asks the bootstrap to install. They are
	// represented as distinguished Tag types carrying the Kind value in
	// their name; builtins.go's typeof never returns these for ordinary
	// values — they exist purely as named constants in the namespace.
	BitsKindConst   = &Type{kind: KindTag, name: "BitsKind", super: Any}
	StructKindConst = &Type{kind: KindTag, name: "StructKind", super: Any}
	TagKindConst    = &Type{kind: KindTag, name: "TagKind", super: Any}
	UnionKindConst  = &Type{kind: KindTag, name: "UnionKind", super: Any}
	FuncKindConst   = &Type{kind: KindTag, name: "FuncKind", super: Any}
)

func newBitsType(name string, nbits int, super *Type, identity string) *Type {
	return &Type{kind: KindBits, name: name, nbits: nbits, super: super, identity: identity}
}

// NewTagType implements new_tag_type (spec.md §4.4): a purely nominal,
// parametric, field-less node.
func NewTagType(name string, super *Type, params []*Type) (*Type, error) {
	if err := checkValidSuper(name, super); err != nil {
		return nil, err
	}
	return &Type{kind: KindTag, name: name, super: super, parameters: params}, nil
}

// NewStructType implements new_struct_type: it returns a partially-built
// (incomplete) Struct type. Field types must be installed afterwards with
// NewStructFields — the explicit two-phase construction the Design Notes
// call for, modeled here as the `incomplete` flag rather than a second
// Go type, since no other code may ever observe a Struct type mid-
// construction except through this same *Type value.
func NewStructType(name string, super *Type, params []*Type, fieldNames []string) (*Type, error) {
	if err := checkValidSuper(name, super); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(fieldNames))
	for _, n := range fieldNames {
		if seen[n] {
			return nil, wrap(&TypeError{Op: "new_struct_type", Want: "unique field names", Got: n})
		}
		seen[n] = true
	}
	return &Type{
		kind:       KindStruct,
		name:       name,
		super:      super,
		parameters: params,
		fieldNames: append([]string(nil), fieldNames...),
		incomplete: true,
	}, nil
}

// NewStructFields implements new_struct_fields: installs field types into a
// struct type exactly once, inheriting the supertype's fields if the super
// is itself a (complete) struct, per spec.md §3.2's "Struct" field rule.
func NewStructFields(t *Type, fieldTypes []*Type) error {
	if t.kind != KindStruct {
		return wrap(&TypeError{Op: "new_struct_fields", Want: "Struct type", Got: t.kind.String()})
	}
	if t.fieldsComplete {
		return wrap(&StateError{Op: "new_struct_fields", Why: "fields already installed for " + t.name})
	}
	inherited := 0
	if t.super != nil && t.super.kind == KindStruct {
		inherited = len(t.super.fieldNames)
	}
	if len(fieldTypes) != len(t.fieldNames)-inherited {
		return wrap(&TypeError{Op: "new_struct_fields", Want: "one type per declared field", Got: "arity mismatch"})
	}
	all := make([]*Type, 0, len(t.fieldNames))
	if inherited > 0 {
		all = append(all, t.super.fieldTypes...)
	}
	all = append(all, fieldTypes...)
	t.fieldTypes = all
	t.fieldsComplete = true
	t.incomplete = false
	return nil
}

// NewTypeConstructor implements new_type_constructor: ∀params. body.
func NewTypeConstructor(params []*Type, body *Type) (*Type, error) {
	for _, p := range params {
		if p.kind != KindTypeVar {
			return nil, wrap(&TypeError{Op: "new_type_constructor", Want: "TypeVar parameters", Got: p.kind.String()})
		}
	}
	return &Type{kind: KindTypeCtor, ctorParams: params, body: body}, nil
}

// NewTypeVar implements typevar(name): a bounded type variable defaulting
// to (Bottom, Any).
func NewTypeVar(name string) *Type {
	return &Type{kind: KindTypeVar, name: name, lower: Bottom, upper: Any}
}

// NewTypeVarBounded is a supplemental constructor (not a separate builtin)
// used internally wherever a bound TypeVar is needed, e.g. TypeCtor params.
func NewTypeVarBounded(name string, lower, upper *Type) *Type {
	return &Type{kind: KindTypeVar, name: name, lower: lower, upper: upper}
}

// NewSeqType implements the `...` Seq binder: "zero or more of elem".
func NewSeqType(elem *Type) *Type {
	return &Type{kind: KindSeq, elem: elem}
}

// NewFuncType builds a Func type (domain -> range).
func NewFuncType(domain, rng *Type) *Type {
	return &Type{kind: KindFunc, domain: domain, rng: rng}
}

// NewTupleType builds a nominal-free tuple-shaped type over elems (the last
// of which may be a Seq, invariant T4).
func NewTupleType(elems ...*Type) *Type {
	return &Type{kind: KindTag, name: "Tuple", super: TupleUniversal, parameters: elems}
}

// IsTupleType reports whether t is a tuple-shaped type (built by
// NewTupleType or equal to TupleUniversal).
func IsTupleType(t *Type) bool {
	return t == TupleUniversal || (t.kind == KindTag && t.name == "Tuple")
}

// checkValidSuper enforces spec.md §4.4's "valid supertype" rule: the
// proposed super must be a Tag or Struct type, and must not be Symbol, Type,
// or a subtype of Array.
func checkValidSuper(name string, super *Type) error {
	if super == nil {
		return nil
	}
	if super.kind != KindTag && super.kind != KindStruct {
		return wrap(&SubtypingError{Type: name, Super: super.name, Why: "supertype must be a tag or struct type"})
	}
	if super == SymbolType {
		return wrap(&SubtypingError{Type: name, Super: super.name, Why: "supertype must not be Symbol"})
	}
	if subtype(super, TypeTag, false) {
		return wrap(&SubtypingError{Type: name, Super: super.name, Why: "supertype must not be a subtype of Type"})
	}
	if subtype(super, ArrayTag, false) {
		return wrap(&SubtypingError{Type: name, Super: super.name, Why: "supertype must not be a subtype of Array"})
	}
	return nil
}

// Union implements the Union(...) builtin: a normalized, flattened,
// duplicate- and sub-type-free set of member types (invariant T3). A
// singleton union collapses to its one member.
func Union(members ...*Type) *Type {
	flat := make([]*Type, 0, len(members))
	var flatten func(*Type)
	flatten = func(t *Type) {
		if t.kind == KindUnion {
			for _, m := range t.members {
				flatten(m)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, m := range members {
		flatten(m)
	}

	// Drop members that are subtypes of another member (T3: pairwise
	// not-subtypes after normalization), and drop exact duplicates.
	kept := make([]*Type, 0, len(flat))
	for i, a := range flat {
		redundant := false
		for j, b := range flat {
			if i == j {
				continue
			}
			if typesEqual(a, b) && i > j {
				redundant = true
				break
			}
			if !typesEqual(a, b) && subtype(a, b, false) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, a)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].String() < kept[j].String() })

	if len(kept) == 0 {
		return Bottom
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &Type{kind: KindUnion, name: "Union", members: kept}
}

// String renders a Type the way the print subsystem's Type method does
// (spec.md §4.5), reused here so error messages stay consistent with what
// users see from `print`.
func (t *Type) String() string {
	switch t.kind {
	case KindUnion:
		if len(t.members) == 0 {
			return "Union()"
		}
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return "Union(" + strings.Join(parts, ",") + ")"
	case KindSeq:
		return t.elem.String() + "..."
	case KindFunc:
		return "Function"
	case KindTypeVar:
		return t.name
	case KindTypeCtor:
		return t.body.String()
	default:
		if len(t.parameters) == 0 {
			return t.name
		}
		parts := make([]string, len(t.parameters))
		for i, p := range t.parameters {
			parts[i] = p.String()
		}
		return t.name + "{" + strings.Join(parts, ",") + "}"
	}
}
