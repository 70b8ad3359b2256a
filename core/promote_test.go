package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

func TestPromoteUnaryAndNullary(t *testing.T) {
	ctx := core.NewContext()

	single, err := core.Promote(ctx, core.NewInt32(5))
	require.NoError(t, err)
	require.Equal(t, 1, single.TupleLen())

	empty, err := core.Promote(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TupleLen())
}

func TestPromoteWidensToFloat64(t *testing.T) {
	ctx := core.NewContext()
	require.NoError(t, core.RegisterConversion(core.Float64Type, core.Int32Type, func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewFloat64(float64(args[0].Int32Val())), nil
	}))

	result, err := core.Promote(ctx, core.NewInt32(1), core.NewFloat64(2.0))
	require.NoError(t, err)
	elems := result.TupleElems()
	require.Len(t, elems, 2)
	assert.Equal(t, core.Float64Type, elems[0].Type())
	assert.Equal(t, 1.0, elems[0].Float64Val())
	assert.Equal(t, 2.0, elems[1].Float64Val())
}

// complexOf builds a `Complex{elem}` struct sharing the nominal name
// "Complex" across every instantiation, with elem carried as the struct's
// sole type parameter — the shape bigger_type's same-name covariant branch
// in promote.go compares position-by-position.
func complexOf(t *testing.T, elem *core.Type) *core.Type {
	t.Helper()
	st, err := core.NewStructType("Complex", core.Any, []*core.Type{elem}, []string{"re", "im"})
	require.NoError(t, err)
	require.NoError(t, core.NewStructFieldsBuiltin(st, []*core.Type{elem, elem}))
	return st
}

// Scenario 2: promote(Complex{Int32}(1,2), Complex{Float64}(3.0,4.0))
// returns two Complex{Float64} values equal to (1+2i, 3+4i).
func TestPromoteComplexStructs(t *testing.T) {
	ctx := core.NewContext()
	complexInt32 := complexOf(t, core.Int32Type)
	complexFloat64 := complexOf(t, core.Float64Type)

	require.NoError(t, core.RegisterConversion(complexFloat64, complexInt32, func(ctx *core.Context, args []*core.Value) (*core.Value, error) {
		fields := args[0].StructFields()
		re, err := core.Convert(ctx, fields[0], core.Float64Type)
		if err != nil {
			return nil, err
		}
		im, err := core.Convert(ctx, fields[1], core.Float64Type)
		if err != nil {
			return nil, err
		}
		return complexFloat64.Constructor().Apply(ctx, []*core.Value{re, im})
	}))
	require.NoError(t, core.RegisterConversion(core.Float64Type, core.Int32Type, func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewFloat64(float64(args[0].Int32Val())), nil
	}))

	a, err := complexInt32.Constructor().Apply(ctx, []*core.Value{core.NewInt32(1), core.NewInt32(2)})
	require.NoError(t, err)
	b, err := complexFloat64.Constructor().Apply(ctx, []*core.Value{core.NewFloat64(3.0), core.NewFloat64(4.0)})
	require.NoError(t, err)

	result, err := core.Promote(ctx, a, b)
	require.NoError(t, err)
	elems := result.TupleElems()
	require.Len(t, elems, 2)
	assert.Equal(t, complexFloat64, elems[0].Type())
	assert.Equal(t, complexFloat64, elems[1].Type())
	assert.Equal(t, 1.0, elems[0].StructFields()[0].Float64Val())
	assert.Equal(t, 2.0, elems[0].StructFields()[1].Float64Val())
	assert.Equal(t, 3.0, elems[1].StructFields()[0].Float64Val())
	assert.Equal(t, 4.0, elems[1].StructFields()[1].Float64Val())
}
