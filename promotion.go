package lattice

import "fmt"

// CastPlan is the triple ComparisonOp returns: the dtype each side must be
// cast to before the typed kernel runs, and the resulting dtype.
type CastPlan struct {
	LhsCast Dtype
	RhsCast Dtype
	Result  Dtype
}

// ComparisonOp computes the common dtype two numeric operands must be cast
// to before a binary kernel can run over them, following the widening rules
// in spec.md §4.1:
//
//  1. either side non-numeric -> TypeError.
//  2. either side Float64 -> Float64.
//  3. either side Float32 -> Float32 (mixing Float32 with Int64/UInt64 still
//     yields Float32; precision loss is accepted by design).
//  4. both integers -> narrowest integer dtype containing both ranges,
//     promoting to signed when mixing signedness of equal width, saturating
//     at 64 bits.
//
// The function is total over numeric x numeric and symmetric: swapping a and
// b swaps LhsCast/RhsCast but leaves Result unchanged.
func ComparisonOp(a, b Dtype) (CastPlan, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return CastPlan{}, NewTypeError(
			fmt.Sprintf("comparison_op requires numeric operands, got %s and %s", a, b))
	}

	result := promotedDtype(a, b)
	return CastPlan{LhsCast: result, RhsCast: result, Result: result}, nil
}

// promotedDtype implements the widening rules; ComparisonOp wraps it with
// the non-numeric check and the CastPlan shape.
func promotedDtype(a, b Dtype) Dtype {
	if a == b {
		return a
	}

	if a == DtypeFloat64 || b == DtypeFloat64 {
		return DtypeFloat64
	}
	if a == DtypeFloat32 || b == DtypeFloat32 {
		return DtypeFloat32
	}

	// Both integers from here on.
	w := max(a.BitWidth(), b.BitWidth())

	if a.IsSigned() == b.IsSigned() {
		if a.IsSigned() {
			return signedOfWidth(w)
		}
		return unsignedOfWidth(w)
	}

	// Mixed signedness: promote to signed wide enough to hold the unsigned
	// side's full range, saturating at 64 bits. At equal 64-bit width this
	// degrades to Int64 with accepted precision loss (spec.md §4.1 rule 4).
	if w == 64 {
		return DtypeInt64
	}
	unsignedWidth := a.BitWidth()
	if a.IsSigned() {
		unsignedWidth = b.BitWidth()
	}
	return signedOfWidth(max(w, unsignedWidth*2))
}



func signedOfWidth(w int) Dtype {
	switch {
	case w <= 8:
		return DtypeInt8
	case w <= 16:
		return DtypeInt16
	case w <= 32:
		return DtypeInt32
	default:
		return DtypeInt64
	}
}

func unsignedOfWidth(w int) Dtype {
	switch {
	case w <= 8:
		return DtypeUInt8
	case w <= 16:
		return DtypeUInt16
	case w <= 32:
		return DtypeUInt32
	default:
		return DtypeUInt64
	}
}
