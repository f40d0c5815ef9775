package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_CastSameDtypeIsNoop(t *testing.T) {
	s := NewSeries("x", NewArray([]int32{1, 2, 3}))
	out, err := s.Cast(DtypeInt32)
	require.NoError(t, err)
	assert.Equal(t, DtypeInt32, out.Dtype())
}

func TestSeries_CastRejectsNonNumericTarget(t *testing.T) {
	s := NewSeries("x", NewArray([]int32{1}))
	_, err := s.Cast(DtypeUtf8)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindTypeError))
}

func TestSeries_CastRejectsNonNumericSource(t *testing.T) {
	s := NewOpaqueSeries("x", DtypeUtf8, 3)
	_, err := s.Cast(DtypeInt32)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindTypeError))
}

func TestNewOpaqueSeries_PanicsOnNumericDtype(t *testing.T) {
	assert.Panics(t, func() {
		NewOpaqueSeries("x", DtypeInt64, 3)
	})
}

func TestSeries_BinaryMin_PromotesAndComputes(t *testing.T) {
	lhs := NewSeries("a", NewArray([]int8{1, 5, 3}))
	rhs := NewSeries("b", NewArray([]int32{2, 2, 2}))

	out, err := lhs.BinaryMin(rhs)
	require.NoError(t, err)

	assert.Equal(t, DtypeInt32, out.Dtype())
	assert.Equal(t, "a", out.Name)
	assert.Equal(t, []int32{1, 2, 2}, out.data.(Array[int32]).Values)
}

func TestSeries_BinaryMax_MixedSignedness(t *testing.T) {
	lhs := NewSeries("a", NewArray([]int8{-1, 3}))
	rhs := NewSeries("b", NewArray([]uint8{200, 1}))

	out, err := lhs.BinaryMax(rhs)
	require.NoError(t, err)
	assert.Equal(t, DtypeInt16, out.Dtype())
	assert.Equal(t, []int16{200, 3}, out.data.(Array[int16]).Values)
}

func TestSeries_BinaryMin_RejectsNonNumeric(t *testing.T) {
	lhs := NewSeries("a", NewArray([]int32{1}))
	rhs := NewOpaqueSeries("b", DtypeUtf8, 1)

	_, err := lhs.BinaryMin(rhs)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindTypeError))
}

func TestSeries_Clip_WithinRange(t *testing.T) {
	x := NewSeries("x", NewArray([]float64{-5, 0, 3, 12, 100}))
	lo := NewSeries("lo", NewArray([]float64{0, 0, 0, 0, 0}))
	hi := NewSeries("hi", NewArray([]float64{10, 10, 10, 10, 10}))

	out, err := x.Clip(lo, hi)
	require.NoError(t, err)

	want := []float64{0, 0, 3, 10, 10}
	assert.Equal(t, want, out.data.(Array[float64]).Values)
	assert.Equal(t, "x", out.Name)
}

// When hi < lo, clip is numpy-compatible: the result is elementwise equal to
// hi, because min(max(x, lo), hi) always yields hi once max(x, lo) >= lo > hi
// is forced down to hi regardless of x (spec.md §4.3 edge case).
func TestSeries_Clip_InvertedRangeYieldsHi(t *testing.T) {
	x := NewSeries("x", NewArray([]int32{-100, 0, 5, 100}))
	lo := NewSeries("lo", NewArray([]int32{10, 10, 10, 10}))
	hi := NewSeries("hi", NewArray([]int32{1, 1, 1, 1}))

	out, err := x.Clip(lo, hi)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 1, 1, 1}, out.data.(Array[int32]).Values)
}

func TestSeries_Clip_PropagatesDtypePromotion(t *testing.T) {
	x := NewSeries("x", NewArray([]int8{1, 50}))
	lo := NewSeries("lo", NewArray([]int32{0, 0}))
	hi := NewSeries("hi", NewArray([]float64{10, 10}))

	out, err := x.Clip(lo, hi)
	require.NoError(t, err)
	assert.Equal(t, DtypeFloat64, out.Dtype())
}
