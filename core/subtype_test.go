package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

func TestSubtypeUniversalInvariants(t *testing.T) {
	for _, typ := range []*core.Type{core.Int32Type, core.StringType, core.FunctionType, core.Bottom, core.Any} {
		assert.True(t, core.Subtype(typ, core.Any), "%s <: Any", typ)
		assert.True(t, core.Subtype(core.Bottom, typ), "Bottom <: %s", typ)
		assert.True(t, core.Subtype(typ, typ), "%s <: %s", typ, typ)
	}
}

func TestTypesEqualImpliesMutualSubtype(t *testing.T) {
	a := core.NewTupleType(core.Int32Type, core.Float64Type)
	b := core.NewTupleType(core.Int32Type, core.Float64Type)
	require.True(t, core.TypesEqual(a, b))
	assert.True(t, core.Subtype(a, b))
	assert.True(t, core.Subtype(b, a))
}

// Scenario 3: subtype(Int32, Number) = true; subtype(Tuple(Int32, Int32),
// Tuple(Number, Number...)) = true; subtype(Int32, Tuple) = false.
func TestSubtypeScenario(t *testing.T) {
	assert.True(t, core.Subtype(core.Int32Type, core.Number))

	concrete := core.NewTupleType(core.Int32Type, core.Int32Type)
	withSeq := core.NewTupleType(core.Number, core.NewSeqType(core.Number))
	assert.True(t, core.Subtype(concrete, withSeq))

	assert.False(t, core.Subtype(core.Int32Type, core.TupleUniversal))
}

func TestSubtypeTupleUniversalIsTupleTop(t *testing.T) {
	empty := core.NewTupleType()
	pair := core.NewTupleType(core.Int32Type, core.BoolType)
	assert.True(t, core.Subtype(empty, core.TupleUniversal))
	assert.True(t, core.Subtype(pair, core.TupleUniversal))
}
