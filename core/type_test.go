package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

// typeNames maps a slice of *Type to their names for order-insensitive
// comparison; union member order is an implementation detail of Union's
// normalization, not part of its contract (invariant T3 only promises the
// *set* is pairwise-incomparable, not a stable order).
func typeNames(ts []*core.Type) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return names
}

// Scenario 5: Union(Int32, Int32) normalizes to Int32; Union(Int32, Float64)
// has length 2 and is a supertype of both.
func TestUnionNormalization(t *testing.T) {
	single := core.Union(core.Int32Type, core.Int32Type)
	assert.True(t, core.TypesEqual(single, core.Int32Type))
	assert.Equal(t, core.KindBits, single.Kind())

	pair := core.Union(core.Int32Type, core.Float64Type)
	require.Equal(t, core.KindUnion, pair.Kind())
	assert.Len(t, pair.Members(), 2)
	assert.True(t, core.Subtype(core.Int32Type, pair))
	assert.True(t, core.Subtype(core.Float64Type, pair))

	// Union(Float64, Int32) must normalize to the same member set regardless
	// of argument order.
	reordered := core.Union(core.Float64Type, core.Int32Type)
	if diff := cmp.Diff(typeNames(pair.Members()), typeNames(reordered.Members()), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("union member set depends on argument order (-want +got):\n%s", diff)
	}
}

func TestUnionOfSubtypeCollapses(t *testing.T) {
	// Signed is a supertype of Int32, so Union(Int32, Signed) must collapse
	// to Signed alone (invariant T3: pairwise not-subtypes after
	// normalization).
	u := core.Union(core.Int32Type, core.Signed)
	assert.True(t, core.TypesEqual(u, core.Signed))
}

func TestStructTypeDeclaration(t *testing.T) {
	tv := core.NewTypeVar("T")
	structType, err := core.NewStructType("Complex", core.Any, []*core.Type{tv}, []string{"re", "im"})
	require.NoError(t, err)
	assert.False(t, structType.IsInline()) // incomplete struct types are not yet inline-storable

	err = core.NewStructFieldsBuiltin(structType, []*core.Type{tv, tv})
	require.NoError(t, err)
	assert.True(t, structType.IsInline())
	assert.NotNil(t, structType.Constructor())
}

func TestInvalidSuperRejected(t *testing.T) {
	_, err := core.NewTagType("Evil", core.SymbolType, nil)
	require.Error(t, err)
	var subtypingErr *core.SubtypingError
	assert.ErrorAs(t, err, &subtypingErr)
}
