package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	for _, name := range []string{"binary_min", "binary_max", "clip"} {
		_, ok := DefaultRegistry.Get(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}

	_, ok := DefaultRegistry.Get("does_not_exist")
	assert.False(t, ok)
}

func TestBinaryMinFunc_ToField_ArityMismatch(t *testing.T) {
	schema := testSchema(t)
	_, err := BinaryMinFunc{}.ToField([]Expression{Col("amount")}, schema)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindSchemaMismatch))
}

func TestBinaryMinFunc_ToField_PromotesDtype(t *testing.T) {
	schema := testSchema(t)
	f, err := BinaryMinFunc{}.ToField([]Expression{Col("user_id"), Col("amount")}, schema)
	require.NoError(t, err)
	assert.Equal(t, DtypeFloat64, f.Dtype)
	assert.Equal(t, "user_id", f.Name)
}

func TestBinaryMinFunc_Evaluate_ArityMismatch(t *testing.T) {
	s := NewSeries("a", NewArray([]int32{1}))
	_, err := BinaryMinFunc{}.Evaluate([]Series{s})
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindValueError))
}

func TestBinaryMinFunc_Evaluate(t *testing.T) {
	lhs := NewSeries("a", NewArray([]int32{1, 9}))
	rhs := NewSeries("b", NewArray([]int32{5, 2}))
	out, err := BinaryMinFunc{}.Evaluate([]Series{lhs, rhs})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, out.data.(Array[int32]).Values)
}

func TestClipFunc_ToField_ArityMismatch(t *testing.T) {
	schema := testSchema(t)
	_, err := ClipFunc{}.ToField([]Expression{Col("amount")}, schema)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindSchemaMismatch))
}

func TestClipFunc_ToField_ChainsComparisonOpTwice(t *testing.T) {
	schema, err := NewSchema(
		Field{Name: "x", Dtype: DtypeInt8},
		Field{Name: "lo", Dtype: DtypeInt32},
		Field{Name: "hi", Dtype: DtypeFloat32},
	)
	require.NoError(t, err)

	f, err := ClipFunc{}.ToField([]Expression{Col("x"), Col("lo"), Col("hi")}, schema)
	require.NoError(t, err)
	assert.Equal(t, DtypeFloat32, f.Dtype)
	assert.Equal(t, "x", f.Name)
}

func TestClipFunc_Evaluate_ArityMismatch(t *testing.T) {
	s := NewSeries("a", NewArray([]int32{1}))
	_, err := ClipFunc{}.Evaluate([]Series{s, s})
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindValueError))
}

func TestClipFunc_Evaluate(t *testing.T) {
	x := NewSeries("x", NewArray([]int32{-5, 5, 50}))
	lo := NewSeries("lo", NewArray([]int32{0, 0, 0}))
	hi := NewSeries("hi", NewArray([]int32{10, 10, 10}))

	out, err := ClipFunc{}.Evaluate([]Series{x, lo, hi})
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 5, 10}, out.data.(Array[int32]).Values)
}
