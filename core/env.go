package core

// Namespace is the root namespace spec.md §4.6 asks bootstrap to populate:
// built-in op names, the print generic function, and built-in type names,
// all as constant bindings. A binding is exactly one of a Type, a Function
// Value, or (for the one syntactic binder, `...`) a Seq-type builder —
// never more than one, since the three universes (Type, Value, binder) are
// disjoint in this model.
type Namespace struct {
	bindings map[string]binding
}

type binding struct {
	typ     *Type
	val     *Value
	builder func(*Type) *Type
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{bindings: make(map[string]binding)}
}

func (ns *Namespace) bindType(name string, t *Type)         { ns.bindings[name] = binding{typ: t} }
func (ns *Namespace) bindValue(name string, v *Value)       { ns.bindings[name] = binding{val: v} }
func (ns *Namespace) bindBuilder(name string, f func(*Type) *Type) {
	ns.bindings[name] = binding{builder: f}
}

// LookupType returns the Type bound to name, if any.
func (ns *Namespace) LookupType(name string) (*Type, bool) {
	b, ok := ns.bindings[name]
	if !ok || b.typ == nil {
		return nil, false
	}
	return b.typ, true
}

// LookupValue returns the Value (always a Function, for every builtin op
// name this bootstrap installs) bound to name, if any.
func (ns *Namespace) LookupValue(name string) (*Value, bool) {
	b, ok := ns.bindings[name]
	if !ok || b.val == nil {
		return nil, false
	}
	return b.val, true
}

// PrintFunction returns the root namespace's print GenericFunction.
func (ns *Namespace) PrintFunction() (*GenericFunction, bool) {
	v, ok := ns.LookupValue("print")
	if !ok || v.fnKind != FuncGeneric {
		return nil, false
	}
	return v.generic, true
}

// Names lists every bound name, for tests/tools that want to enumerate the
// bootstrap surface.
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.bindings))
	for n := range ns.bindings {
		names = append(names, n)
	}
	return names
}

// Bootstrap implements spec.md §4.6: builds the root namespace and installs
// it on ctx via Context.SetNamespace, mirroring the teacher's own
// importer.go pattern of building one package-level scope up front and
// handing callers a single root to resolve names against.
//
// Not every builtin operation in §4.4's table can be represented as a
// Value-to-Value callable Function, because Type is not itself a Value
// variant in this model (see print.go's file comment for the same
// tension): `typeof`, `subtype`, `istype`, `typeassert`, `convert`,
// `new_tag_type`, `new_struct_type`, `new_struct_fields`,
// `new_type_constructor`, `instantiate_type`, and `typevar` all take or
// return a bare *Type. Those are exposed as ordinary exported Go functions
// (TypeOf, Subtype, IsType, …) for the out-of-scope interpreter collaborator
// to call directly; only the builtins whose entire signature is Values in,
// Value out are bound into the namespace as apply()-able Function values,
// so that user code routed entirely through apply/tuple/generic-function
// dispatch can reach them uniformly.
func Bootstrap(ctx *Context) *Namespace {
	ns := NewNamespace()

	installTypeNames(ns)
	installValueBuiltins(ns)

	printGF := NewGenericFunction("print")
	InstallPrintMethods(printGF)
	ns.bindValue("print", NewGenericFunctionValue(printGF))

	ctx.SetNamespace(ns)
	return ns
}

func installTypeNames(ns *Namespace) {
	ns.bindType("Any", Any)
	ns.bindType("Bottom", Bottom)
	ns.bindType("Symbol", SymbolType)
	ns.bindType("Bool", BoolType)
	ns.bindType("Int8", Int8Type)
	ns.bindType("Int16", Int16Type)
	ns.bindType("Int32", Int32Type)
	ns.bindType("Int64", Int64Type)
	ns.bindType("Uint8", Uint8Type)
	ns.bindType("Uint16", Uint16Type)
	ns.bindType("Uint32", Uint32Type)
	ns.bindType("Uint64", Uint64Type)
	ns.bindType("Float32", Float32Type)
	ns.bindType("Float64", Float64Type)
	ns.bindType("String", StringType)
	ns.bindType("Number", Number)
	ns.bindType("Signed", Signed)
	ns.bindType("Unsigned", Unsign)
	ns.bindType("FloatingPoint", Floats)
	ns.bindType("Array", ArrayTag)
	ns.bindType("Tuple", TupleUniversal)
	ns.bindType("NTuple", NTupleTag)
	ns.bindType("Type", TypeTag)
	ns.bindType("Function", FunctionType)
	ns.bindType("BitsKind", BitsKindConst)
	ns.bindType("StructKind", StructKindConst)
	ns.bindType("TagKind", TagKindConst)
	ns.bindType("UnionKind", UnionKindConst)
	ns.bindType("FuncKind", FuncKindConst)
	ns.bindBuilder("...", NewSeqType)
}

func installValueBuiltins(ns *Namespace) {
	ns.bindValue("is", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "is", Expected: 2, Got: len(args)})
		}
		return NewBool(Is(args[0], args[1])), nil
	}))
	ns.bindValue("equal", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "equal", Expected: 2, Got: len(args)})
		}
		return NewBool(Equal(args[0], args[1])), nil
	}))
	ns.bindValue("tuple", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		return NewTuple(args...), nil
	}))
	ns.bindValue("tupleref", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "tupleref", Expected: 2, Got: len(args)})
		}
		return TupleRef(args[0], int(indexOf(args[1])))
	}))
	ns.bindValue("tuplelen", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 1 {
			return nil, wrap(&ArityError{Op: "tuplelen", Expected: 1, Got: len(args)})
		}
		n, err := TupleLen(args[0])
		if err != nil {
			return nil, err
		}
		return NewInt64(int64(n)), nil
	}))
	ns.bindValue("getfield", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 || !args[1].IsSymbol() {
			return nil, wrap(&ArityError{Op: "getfield", Expected: 2, Got: len(args)})
		}
		return GetField(args[0], args[1].SymbolName())
	}))
	ns.bindValue("setfield", NewNativeFunctionValue(func(c *Context, args []*Value) (*Value, error) {
		if len(args) != 3 || !args[1].IsSymbol() {
			return nil, wrap(&ArityError{Op: "setfield", Expected: 3, Got: len(args)})
		}
		if err := SetField(c, args[0], args[1].SymbolName(), args[2]); err != nil {
			return nil, err
		}
		return args[0], nil
	}))
	ns.bindValue("arraylen", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		n, err := ArrayLen(args[0])
		if err != nil {
			return nil, err
		}
		return NewInt64(int64(n)), nil
	}))
	ns.bindValue("arrayref", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "arrayref", Expected: 2, Got: len(args)})
		}
		return ArrayRef(args[0], int(indexOf(args[1])))
	}))
	ns.bindValue("arrayset", NewNativeFunctionValue(func(c *Context, args []*Value) (*Value, error) {
		if len(args) != 3 {
			return nil, wrap(&ArityError{Op: "arrayset", Expected: 3, Got: len(args)})
		}
		if err := ArraySet(c, args[0], int(indexOf(args[1])), args[2]); err != nil {
			return nil, err
		}
		return NewTuple(), nil
	}))
	ns.bindValue("box", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		switch len(args) {
		case 0:
			return Box(nil), nil
		case 1:
			return Box(args[0]), nil
		default:
			return nil, wrap(&ArityError{Op: "box", Expected: 1, Got: len(args)})
		}
	}))
	ns.bindValue("unbox", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 1 {
			return nil, wrap(&ArityError{Op: "unbox", Expected: 1, Got: len(args)})
		}
		return Unbox(args[0])
	}))
	ns.bindValue("boxset", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "boxset", Expected: 2, Got: len(args)})
		}
		if err := BoxSet(args[0], args[1]); err != nil {
			return nil, err
		}
		return NewTuple(), nil
	}))
	ns.bindValue("new_closure", NewNativeFunctionValue(func(_ *Context, args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, wrap(&ArityError{Op: "new_closure", Expected: 2, Got: len(args)})
		}
		return NewClosure(args[0], args[1])
	}))
	ns.bindValue("promote", NewNativeFunctionValue(func(c *Context, args []*Value) (*Value, error) {
		return Promote(c, args...)
	}))
	ns.bindValue("apply", NewNativeFunctionValue(func(c *Context, args []*Value) (*Value, error) {
		if len(args) == 0 {
			return nil, wrap(&ArityError{Op: "apply", Expected: 1, Got: 0})
		}
		return Apply(c, args[0], args[1:]...)
	}))
}

// indexOf extracts a Go int from any signed or unsigned Bits Value, the
// representation the (out-of-scope) interpreter is expected to use for
// small integer literals passed to index-taking builtins.
func indexOf(v *Value) int64 {
	switch v.Type() {
	case Int8Type:
		return int64(v.Int8Val())
	case Int16Type:
		return int64(v.Int16Val())
	case Int32Type:
		return int64(v.Int32Val())
	case Int64Type:
		return v.Int64Val()
	case Uint8Type:
		return int64(v.Uint8Val())
	case Uint16Type:
		return int64(v.Uint16Val())
	case Uint32Type:
		return int64(v.Uint32Val())
	case Uint64Type:
		return int64(v.Uint64Val())
	default:
		return 0
	}
}
