package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

// After add_method(gf, sig, body), apply(gf, args) dispatches to body
// whenever typeof(args) <: sig and no more-specific method exists.
func TestAddMethodThenApplyDispatches(t *testing.T) {
	ctx := core.NewContext()
	gf := core.NewGenericFunction("describe")

	require.NoError(t, core.AddMethod(gf, core.NewTupleType(core.Number), func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewString("number"), nil
	}))
	require.NoError(t, core.AddMethod(gf, core.NewTupleType(core.Int32Type), func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewString("int32"), nil
	}))

	result, err := gf.Apply(ctx, []*core.Value{core.NewInt32(1)})
	require.NoError(t, err)
	assert.Equal(t, "int32", result.StringVal()) // Int32 is strictly more specific than Number

	result, err = gf.Apply(ctx, []*core.Value{core.NewFloat64(1)})
	require.NoError(t, err)
	assert.Equal(t, "number", result.StringVal())
}

func TestApplyNoMatchingMethodRaisesNoMethodError(t *testing.T) {
	ctx := core.NewContext()
	gf := core.NewGenericFunction("onlyBools")
	require.NoError(t, core.AddMethod(gf, core.NewTupleType(core.BoolType), func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewTuple(), nil
	}))

	_, err := gf.Apply(ctx, []*core.Value{core.NewInt32(1)})
	require.Error(t, err)
	var noMethod *core.NoMethodError
	assert.ErrorAs(t, err, &noMethod)
}

func TestAddMethodIsIdempotentOnExactSignature(t *testing.T) {
	gf := core.NewGenericFunction("f")
	sig := core.NewTupleType(core.Int32Type)
	require.NoError(t, core.AddMethod(gf, sig, func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewInt32(1), nil
	}))
	require.NoError(t, core.AddMethod(gf, sig, func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewInt32(2), nil
	}))

	require.Len(t, gf.Methods(), 1)
	result, err := gf.Apply(core.NewContext(), []*core.Value{core.NewInt32(0)})
	require.NoError(t, err)
	assert.Equal(t, int32(2), result.Int32Val())
}

func TestSelectStrictRaisesAmbiguityError(t *testing.T) {
	// Two incomparable Union signatures, both satisfied by Int32 and
	// neither more specific than the other, force a genuine ambiguity.
	gf2 := core.NewGenericFunction("ambiguous2")
	gf2.AddMethod(core.NewTupleType(core.Union(core.Int32Type, core.Float64Type)), func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewTuple(), nil
	})
	gf2.AddMethod(core.NewTupleType(core.Union(core.Int32Type, core.BoolType)), func(_ *core.Context, args []*core.Value) (*core.Value, error) {
		return core.NewTuple(), nil
	})

	argTypes := core.NewTupleType(core.Int32Type)
	_, err := gf2.SelectStrict(argTypes)
	require.Error(t, err)
	var ambig *core.AmbiguityError
	assert.ErrorAs(t, err, &ambig)
}
