package lattice

import "fmt"

// seriesData is the boxed payload a Series carries: either a numeric
// Array[T] for one of the ten numeric dtypes, or an opaqueData placeholder
// for the non-numeric variants this core only needs to reject correctly.
type seriesData interface {
	Len() int
	Dtype() Dtype
}

func (a Array[T]) Dtype() Dtype {
	return dtypeOfT[T]()
}

func dtypeOfT[T Numeric]() Dtype {
	var zero T
	switch any(zero).(type) {
	case int8:
		return DtypeInt8
	case int16:
		return DtypeInt16
	case int32:
		return DtypeInt32
	case int64:
		return DtypeInt64
	case uint8:
		return DtypeUInt8
	case uint16:
		return DtypeUInt16
	case uint32:
		return DtypeUInt32
	case uint64:
		return DtypeUInt64
	case float32:
		return DtypeFloat32
	case float64:
		return DtypeFloat64
	default:
		return DtypeNull
	}
}

// opaqueData represents a non-numeric column (strings, booleans, nulls).
// The core never inspects its contents — it only needs enough of a shape to
// participate in a Series and be rejected, typed, by numeric kernels.
type opaqueData struct {
	dtype  Dtype
	length int
}

func (o opaqueData) Len() int     { return o.length }
func (o opaqueData) Dtype() Dtype { return o.dtype }

// Series is a tagged, immutable-after-construction named column (spec.md
// §3). Cloning a Series is cheap: it never copies the underlying buffer,
// only the header.
type Series struct {
	Name string
	data seriesData
}

// NewSeries wraps a numeric Array[T] as a named Series.
func NewSeries[T Numeric](name string, arr Array[T]) Series {
	return Series{Name: name, data: arr}
}

// NewOpaqueSeries constructs a placeholder Series for a non-numeric dtype,
// carrying only a length — this core never reads non-numeric payloads, it
// only needs them to flow through schema inference and be rejected by
// numeric kernels with a typed error.
func NewOpaqueSeries(name string, dtype Dtype, length int) Series {
	if dtype.IsNumeric() {
		panic("NewOpaqueSeries called with a numeric dtype; use NewSeries")
	}
	return Series{Name: name, data: opaqueData{dtype: dtype, length: length}}
}

// Dtype returns the Series' runtime dtype tag.
func (s Series) Dtype() Dtype { return s.data.Dtype() }

// Len returns the number of slots in the Series.
func (s Series) Len() int { return s.data.Len() }

// Cast converts s to the target numeric dtype, preserving nulls. The
// promotion lattice never requests a narrowing cast (spec.md §4.1), so this
// is always used on a widening pair in practice, but the conversion itself
// works either direction.
func (s Series) Cast(to Dtype) (Series, error) {
	if s.Dtype() == to {
		return s, nil
	}
	if !to.IsNumeric() {
		return Series{}, NewTypeError(fmt.Sprintf("cannot cast series %q to non-numeric dtype %s", s.Name, to))
	}
	if !s.Dtype().IsNumeric() {
		return Series{}, NewTypeError(fmt.Sprintf("cannot cast non-numeric series %q (dtype %s)", s.Name, s.Dtype()))
	}

	var (
		out seriesData
		err error
	)
	switch a := s.data.(type) {
	case Array[int8]:
		out, err = castFrom[int8](a, to)
	case Array[int16]:
		out, err = castFrom[int16](a, to)
	case Array[int32]:
		out, err = castFrom[int32](a, to)
	case Array[int64]:
		out, err = castFrom[int64](a, to)
	case Array[uint8]:
		out, err = castFrom[uint8](a, to)
	case Array[uint16]:
		out, err = castFrom[uint16](a, to)
	case Array[uint32]:
		out, err = castFrom[uint32](a, to)
	case Array[uint64]:
		out, err = castFrom[uint64](a, to)
	case Array[float32]:
		out, err = castFrom[float32](a, to)
	case Array[float64]:
		out, err = castFrom[float64](a, to)
	default:
		return Series{}, NewInternalError(fmt.Sprintf("series %q holds an unrecognized numeric payload", s.Name))
	}
	if err != nil {
		return Series{}, err
	}
	return Series{Name: s.Name, data: out}, nil
}

func castFrom[T1 Numeric](a Array[T1], to Dtype) (seriesData, error) {
	switch to {
	case DtypeInt8:
		return convertArray[T1, int8](a), nil
	case DtypeInt16:
		return convertArray[T1, int16](a), nil
	case DtypeInt32:
		return convertArray[T1, int32](a), nil
	case DtypeInt64:
		return convertArray[T1, int64](a), nil
	case DtypeUInt8:
		return convertArray[T1, uint8](a), nil
	case DtypeUInt16:
		return convertArray[T1, uint16](a), nil
	case DtypeUInt32:
		return convertArray[T1, uint32](a), nil
	case DtypeUInt64:
		return convertArray[T1, uint64](a), nil
	case DtypeFloat32:
		return convertArray[T1, float32](a), nil
	case DtypeFloat64:
		return convertArray[T1, float64](a), nil
	default:
		return nil, NewInternalError(fmt.Sprintf("cast target dtype %s is not numeric", to))
	}
}

// BinaryMin computes the elementwise minimum of s and rhs, inferring the
// result dtype via ComparisonOp, casting both sides, and dispatching to the
// dtype-specialised kernel (spec.md §4.3).
func (s Series) BinaryMin(rhs Series) (Series, error) {
	return s.binaryMinMax(rhs, dispatchMin)
}

// BinaryMax computes the elementwise maximum of s and rhs.
func (s Series) BinaryMax(rhs Series) (Series, error) {
	return s.binaryMinMax(rhs, dispatchMax)
}

type kernelFn func(dt Dtype, lhs, rhs seriesData) (seriesData, error)

func (s Series) binaryMinMax(rhs Series, kernel kernelFn) (Series, error) {
	plan, err := ComparisonOp(s.Dtype(), rhs.Dtype())
	if err != nil {
		return Series{}, err
	}

	lhsCast, err := s.Cast(plan.LhsCast)
	if err != nil {
		return Series{}, err
	}
	rhsCast, err := rhs.Cast(plan.RhsCast)
	if err != nil {
		return Series{}, err
	}

	resultData, err := kernel(plan.Result, lhsCast.data, rhsCast.data)
	if err != nil {
		return Series{}, err
	}
	return Series{Name: s.Name, data: resultData}, nil
}

func dispatchMin(dt Dtype, lhs, rhs seriesData) (seriesData, error) {
	switch dt {
	case DtypeInt8:
		return MinIntegers(lhs.(Array[int8]), rhs.(Array[int8]))
	case DtypeInt16:
		return MinIntegers(lhs.(Array[int16]), rhs.(Array[int16]))
	case DtypeInt32:
		return MinIntegers(lhs.(Array[int32]), rhs.(Array[int32]))
	case DtypeInt64:
		return MinIntegers(lhs.(Array[int64]), rhs.(Array[int64]))
	case DtypeUInt8:
		return MinIntegers(lhs.(Array[uint8]), rhs.(Array[uint8]))
	case DtypeUInt16:
		return MinIntegers(lhs.(Array[uint16]), rhs.(Array[uint16]))
	case DtypeUInt32:
		return MinIntegers(lhs.(Array[uint32]), rhs.(Array[uint32]))
	case DtypeUInt64:
		return MinIntegers(lhs.(Array[uint64]), rhs.(Array[uint64]))
	case DtypeFloat32:
		return MinFloats(lhs.(Array[float32]), rhs.(Array[float32]))
	case DtypeFloat64:
		return MinFloats(lhs.(Array[float64]), rhs.(Array[float64]))
	default:
		return nil, NewUnsupportedDtypeError("min", dt)
	}
}

func dispatchMax(dt Dtype, lhs, rhs seriesData) (seriesData, error) {
	switch dt {
	case DtypeInt8:
		return MaxIntegers(lhs.(Array[int8]), rhs.(Array[int8]))
	case DtypeInt16:
		return MaxIntegers(lhs.(Array[int16]), rhs.(Array[int16]))
	case DtypeInt32:
		return MaxIntegers(lhs.(Array[int32]), rhs.(Array[int32]))
	case DtypeInt64:
		return MaxIntegers(lhs.(Array[int64]), rhs.(Array[int64]))
	case DtypeUInt8:
		return MaxIntegers(lhs.(Array[uint8]), rhs.(Array[uint8]))
	case DtypeUInt16:
		return MaxIntegers(lhs.(Array[uint16]), rhs.(Array[uint16]))
	case DtypeUInt32:
		return MaxIntegers(lhs.(Array[uint32]), rhs.(Array[uint32]))
	case DtypeUInt64:
		return MaxIntegers(lhs.(Array[uint64]), rhs.(Array[uint64]))
	case DtypeFloat32:
		return MaxFloats(lhs.(Array[float32]), rhs.(Array[float32]))
	case DtypeFloat64:
		return MaxFloats(lhs.(Array[float64]), rhs.(Array[float64]))
	default:
		return nil, NewUnsupportedDtypeError("max", dt)
	}
}

// Clip computes min(max(s, lo), hi) elementwise. It deliberately does not
// validate lo <= hi: when hi < lo the result is elementwise equal to hi,
// matching numpy's clip semantics (spec.md §4.3).
func (s Series) Clip(lo, hi Series) (Series, error) {
	maxed, err := s.BinaryMax(lo)
	if err != nil {
		return Series{}, err
	}
	return maxed.BinaryMin(hi)
}
