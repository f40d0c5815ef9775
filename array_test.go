package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinIntegers_NullPropagation(t *testing.T) {
	lhs := NewArrayWithValidity([]int32{1, 2, 3}, []bool{true, false, true})
	rhs := NewArray([]int32{5, 5, 5})

	got, err := MinIntegers(lhs, rhs)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true}, got.Valid)
	assert.Equal(t, int32(1), got.Values[0])
	assert.Equal(t, int32(3), got.Values[2])
}

func TestMaxIntegers_Basic(t *testing.T) {
	lhs := NewArray([]int64{1, -5, 10})
	rhs := NewArray([]int64{0, 5, 2})

	got, err := MaxIntegers(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5, 10}, got.Values)
}

func TestMinMaxIntegers_ShapeMismatch(t *testing.T) {
	lhs := NewArray([]int32{1, 2})
	rhs := NewArray([]int32{1, 2, 3})

	_, err := MinIntegers(lhs, rhs)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindShapeMismatch))
}

func TestMinFloats_NaNPropagates(t *testing.T) {
	lhs := NewArray([]float64{1, math.NaN(), 3})
	rhs := NewArray([]float64{2, 5, 2})

	got, err := MinFloats(lhs, rhs)
	require.NoError(t, err)

	assert.Equal(t, float64(1), got.Values[0])
	assert.True(t, math.IsNaN(float64(got.Values[1])))
	assert.Equal(t, float64(2), got.Values[2])
}

func TestMaxFloats_NaNPropagates(t *testing.T) {
	lhs := NewArray([]float32{1, 2})
	rhs := NewArray([]float32{float32(math.NaN()), 1})

	got, err := MaxFloats(lhs, rhs)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(float64(got.Values[0])))
	assert.Equal(t, float32(2), got.Values[1])
}

func TestMinFloats_Commutative(t *testing.T) {
	lhs := NewArray([]float64{1, 7, -3})
	rhs := NewArray([]float64{4, 2, -3})

	ab, err := MinFloats(lhs, rhs)
	require.NoError(t, err)
	ba, err := MinFloats(rhs, lhs)
	require.NoError(t, err)
	assert.Equal(t, ab.Values, ba.Values)
}

func TestConvertArray_WidensPreservingValidity(t *testing.T) {
	a := NewArrayWithValidity([]int8{1, -2, 3}, []bool{true, true, false})
	converted := convertArray[int8, int64](a)

	assert.Equal(t, []int64{1, -2, 0}, converted.Values)
	assert.Equal(t, []bool{true, true, false}, converted.Valid)
}
