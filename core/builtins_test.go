package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maiven/corelang/core"
)

func TestTupleRoundTrip(t *testing.T) {
	tup := core.Tuple(core.NewInt32(1), core.NewInt32(2), core.NewInt32(3))
	n, err := core.TupleLen(tup)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for i := 1; i <= 3; i++ {
		elem, err := core.TupleRef(tup, i)
		require.NoError(t, err)
		assert.Equal(t, int32(i), elem.Int32Val())
	}
}

func TestTypeOfAndIsType(t *testing.T) {
	v := core.NewInt32(7)
	assert.Equal(t, core.Int32Type, core.TypeOf(v))
	assert.True(t, core.IsType(v, core.Int32Type))
	assert.True(t, core.IsType(v, core.Number))
	assert.False(t, core.IsType(v, core.BoolType))
}

func TestTypeAssert(t *testing.T) {
	v := core.NewInt32(7)
	same, err := core.TypeAssert(v, core.Number)
	require.NoError(t, err)
	assert.True(t, core.Is(v, same))

	_, err = core.TypeAssert(v, core.BoolType)
	require.Error(t, err)
	var assertErr *core.AssertionError
	assert.ErrorAs(t, err, &assertErr)
}

func TestBoxRoundTripAndEmptyUndefined(t *testing.T) {
	b := core.Box(core.NewInt32(9))
	got, err := core.Unbox(b)
	require.NoError(t, err)
	assert.Equal(t, int32(9), got.Int32Val())

	empty := core.Box(nil)
	_, err = core.Unbox(empty)
	require.Error(t, err)
	var undefErr *core.UndefinedError
	assert.ErrorAs(t, err, &undefErr)
}

func TestBoxSetThenUnbox(t *testing.T) {
	b := core.Box(nil)
	require.NoError(t, core.BoxSet(b, core.NewBool(true)))
	got, err := core.Unbox(b)
	require.NoError(t, err)
	assert.True(t, got.BoolVal())
}

// Scenario 6: arrayref(a, 0) on a 3-element array raises BoundsError
// (indices are 1-based); reading an uninitialized reference-array slot
// raises UndefinedError.
func TestArrayBoundsAndUninitialized(t *testing.T) {
	refArray := core.NewArray(core.StringType, 3)

	_, err := core.ArrayRef(refArray, 0)
	require.Error(t, err)
	var boundsErr *core.BoundsError
	assert.ErrorAs(t, err, &boundsErr)

	_, err = core.ArrayRef(refArray, 1)
	require.Error(t, err)
	var undefErr *core.UndefinedError
	assert.ErrorAs(t, err, &undefErr)
}

func TestArraySetThenRef(t *testing.T) {
	ctx := core.NewContext()
	a := core.NewArray(core.Int32Type, 2)
	require.NoError(t, core.ArraySet(ctx, a, 1, core.NewInt32(11)))
	require.NoError(t, core.ArraySet(ctx, a, 2, core.NewInt32(22)))

	v1, err := core.ArrayRef(a, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(11), v1.Int32Val())
}

func TestGetFieldSetField(t *testing.T) {
	ctx := core.NewContext()
	st := complexOf(t, core.Int32Type)
	instance, err := st.Constructor().Apply(ctx, []*core.Value{core.NewInt32(1), core.NewInt32(2)})
	require.NoError(t, err)

	re, err := core.GetField(instance, "re")
	require.NoError(t, err)
	assert.Equal(t, int32(1), re.Int32Val())

	require.NoError(t, core.SetField(ctx, instance, "im", core.NewInt32(9)))
	im, err := core.GetField(instance, "im")
	require.NoError(t, err)
	assert.Equal(t, int32(9), im.Int32Val())

	_, err = core.GetField(instance, "nope")
	require.Error(t, err)
	var fieldErr *core.FieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestEqualVsIs(t *testing.T) {
	a := core.NewInt32(5)
	b := core.NewInt32(5)
	assert.False(t, core.Is(a, b))
	assert.True(t, core.Equal(a, b))

	ta := core.Tuple(core.NewInt32(1), core.NewInt32(2))
	tb := core.Tuple(core.NewInt32(1), core.NewInt32(2))
	assert.True(t, core.Equal(ta, tb))
}

// instantiate_type substitutes a TypeCtor's bound TypeVars with concrete
// params throughout its body.
func TestInstantiateTypeSubstitutesParams(t *testing.T) {
	tv := core.NewTypeVar("T")
	boxType, err := core.NewStructType("Box", core.Any, []*core.Type{tv}, []string{"value"})
	require.NoError(t, err)
	require.NoError(t, core.NewStructFieldsBuiltin(boxType, []*core.Type{tv}))

	tc, err := core.NewTypeConstructorBuiltin([]*core.Type{tv}, boxType)
	require.NoError(t, err)

	instantiated, err := core.InstantiateType(tc, core.Int32Type)
	require.NoError(t, err)
	assert.Equal(t, core.KindStruct, instantiated.Kind())
	assert.Equal(t, "Box{Int32}", instantiated.String())
	require.Len(t, instantiated.Parameters(), 1)
	assert.Same(t, core.Int32Type, instantiated.Parameters()[0])
}

// A param outside a bounded TypeVar's range is rejected before substitution
// runs at all.
func TestInstantiateTypeRejectsOutOfBoundParam(t *testing.T) {
	tv := core.NewTypeVarBounded("T", core.Bottom, core.Signed)
	tc, err := core.NewTypeConstructorBuiltin([]*core.Type{tv}, core.NewTupleType(tv))
	require.NoError(t, err)

	_, err = core.InstantiateType(tc, core.StringType)
	require.Error(t, err)
	var subtypingErr *core.SubtypingError
	assert.ErrorAs(t, err, &subtypingErr)
}

func TestSymbolIdentityViaIntern(t *testing.T) {
	ctx := core.NewContext()
	s1 := ctx.Intern("foo")
	s2 := ctx.Intern("foo")
	assert.True(t, core.Is(s1, s2))

	s3 := ctx.Intern("bar")
	assert.False(t, core.Is(s1, s3))
}
