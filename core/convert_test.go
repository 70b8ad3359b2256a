package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

func TestConvertIdentityOnOwnType(t *testing.T) {
	ctx := core.NewContext()
	x := core.NewInt32(42)
	y, err := core.Convert(ctx, x, core.Int32Type)
	require.NoError(t, err)
	assert.True(t, core.Is(x, y))
}

func TestConvertResultSatisfiesIsType(t *testing.T) {
	ctx := core.NewContext()
	complexT := buildComplexType(t, "Int32", core.Int32Type)
	require.NoError(t, core.RegisterConversion(complexT, core.Int32Type, func(ctx *core.Context, args []*core.Value) (*core.Value, error) {
		zero := core.NewInt32(0)
		return complexT.Constructor().Apply(ctx, []*core.Value{args[0], zero})
	}))

	y, err := core.Convert(ctx, core.NewInt32(5), complexT)
	require.NoError(t, err)
	assert.True(t, core.IsType(y, complexT))
}

func TestConvertUnregisteredFails(t *testing.T) {
	ctx := core.NewContext()
	_, err := core.Convert(ctx, core.NewInt32(1), core.BoolType)
	require.Error(t, err)
	var convErr *core.ConversionError
	assert.ErrorAs(t, err, &convErr)
}

// buildComplexType builds a `Complex{T}`-shaped struct fixed at a single
// element type (the generic form is exercised in promote_test.go); it
// mirrors scenario 2's `Complex{Int32}` / `Complex{Float64}` declarations.
func buildComplexType(t *testing.T, name string, elem *core.Type) *core.Type {
	t.Helper()
	st, err := core.NewStructType("Complex"+name, core.Any, nil, []string{"re", "im"})
	require.NoError(t, err)
	require.NoError(t, core.NewStructFieldsBuiltin(st, []*core.Type{elem, elem}))
	return st
}
