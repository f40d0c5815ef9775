package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDtype_IsNumeric(t *testing.T) {
	tests := []struct {
		name string
		dt   Dtype
		want bool
	}{
		{"int8 is numeric", DtypeInt8, true},
		{"uint64 is numeric", DtypeUInt64, true},
		{"float64 is numeric", DtypeFloat64, true},
		{"utf8 is not numeric", DtypeUtf8, false},
		{"boolean is not numeric", DtypeBoolean, false},
		{"null is not numeric", DtypeNull, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dt.IsNumeric())
		})
	}
}

func TestDtype_IsFloatAndSigned(t *testing.T) {
	assert.True(t, DtypeFloat32.IsFloat())
	assert.True(t, DtypeFloat64.IsFloat())
	assert.False(t, DtypeInt32.IsFloat())

	assert.True(t, DtypeInt8.IsSigned())
	assert.False(t, DtypeUInt8.IsSigned())
	assert.False(t, DtypeFloat64.IsSigned())
}

func TestDtype_BitWidth(t *testing.T) {
	tests := []struct {
		dt   Dtype
		want int
	}{
		{DtypeInt8, 8}, {DtypeUInt8, 8},
		{DtypeInt16, 16}, {DtypeUInt16, 16},
		{DtypeInt32, 32}, {DtypeUInt32, 32}, {DtypeFloat32, 32},
		{DtypeInt64, 64}, {DtypeUInt64, 64}, {DtypeFloat64, 64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dt.BitWidth(), tt.dt.String())
	}
}

func TestDtype_String(t *testing.T) {
	assert.Equal(t, "Int64", DtypeInt64.String())
	assert.Equal(t, "Utf8", DtypeUtf8.String())
	assert.Equal(t, "Unknown", Dtype(999).String())
}
