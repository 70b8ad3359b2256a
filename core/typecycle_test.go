package core

import "testing"

// A self-referential struct body (a Node{T} whose own "next" field is
// Node{T} again) is spec.md §9's hard case for instantiate_type: the
// substitution walk must not loop forever on the cycle, and the
// self-reference must resolve to the freshly instantiated node rather than
// leaking the uninstantiated generic one. This is a white-box test because
// no exported accessor exposes a struct's field types directly — only the
// unexported fieldTypes slice lets us confirm what the cycle actually
// substituted to, without going through the struct constructor (whose
// NativeFunc closure captures the pre-instantiation *Type and so cannot be
// used to observe this).
func TestInstantiateTypeBreaksCycleInSelfReferentialBody(t *testing.T) {
	tv := NewTypeVar("T")
	nodeType, err := NewStructType("Node", Any, []*Type{tv}, []string{"value", "next"})
	if err != nil {
		t.Fatalf("NewStructType: %v", err)
	}
	if err := NewStructFieldsBuiltin(nodeType, []*Type{tv, nodeType}); err != nil {
		t.Fatalf("NewStructFieldsBuiltin: %v", err)
	}

	tc, err := NewTypeConstructorBuiltin([]*Type{tv}, nodeType)
	if err != nil {
		t.Fatalf("NewTypeConstructorBuiltin: %v", err)
	}

	instantiated, err := InstantiateType(tc, Int32Type)
	if err != nil {
		t.Fatalf("InstantiateType: %v", err)
	}

	if instantiated == nodeType {
		t.Fatal("instantiated type must be a fresh copy, not the generic body itself")
	}
	if got := instantiated.fieldTypes[0]; got != Int32Type {
		t.Errorf("value field = %v, want Int32Type", got)
	}
	next := instantiated.fieldTypes[1]
	if next == nodeType {
		t.Fatal("next field still points at the uninstantiated generic Node: cycle leaked instead of being substituted")
	}
	if next != instantiated {
		t.Errorf("next field = %v, want the instantiated node itself (self-reference preserved)", next)
	}
}
