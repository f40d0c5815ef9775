package lattice

import "fmt"

// ScalarFunction is the contract a scalar (non-aggregate) function exposes
// to the planner and to the runtime (spec.md §4.4): a name for registry
// lookup, a planning-time field resolver that raises SchemaMismatch/
// TypeError, and an evaluation-time kernel that raises ValueError on arity
// mismatch.
type ScalarFunction interface {
	Name() string
	ToField(inputs []Expression, schema Schema) (Field, error)
	Evaluate(inputs []Series) (Series, error)
}

// Registry is a name -> ScalarFunction lookup table, grounded on the same
// name-keyed metadata-lookup shape the source schema registry used for
// attribute metadata. Concrete functions self-register via init().
type Registry struct {
	functions map[string]ScalarFunction
}

func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]ScalarFunction)}
}

func (r *Registry) Register(fn ScalarFunction) {
	r.functions[fn.Name()] = fn
}

func (r *Registry) Get(name string) (ScalarFunction, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// DefaultRegistry holds the functions this core ships with: binary_min,
// binary_max, and clip.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(BinaryMinFunc{})
	DefaultRegistry.Register(BinaryMaxFunc{})
	DefaultRegistry.Register(ClipFunc{})
}

func requireArity(fnName string, gotLen, wantLen int) error {
	if gotLen != wantLen {
		return NewSchemaMismatchError(
			fmt.Sprintf("%s expects %d argument(s), got %d", fnName, wantLen, gotLen))
	}
	return nil
}

func requireArityValue(fnName string, gotLen, wantLen int) error {
	if gotLen != wantLen {
		return NewValueError(
			fmt.Sprintf("%s expects %d argument(s), got %d", fnName, wantLen, gotLen))
	}
	return nil
}

// BinaryMinFunc wraps Series.BinaryMin as a ScalarFunction.
type BinaryMinFunc struct{}

func (BinaryMinFunc) Name() string { return "binary_min" }

func (BinaryMinFunc) ToField(inputs []Expression, schema Schema) (Field, error) {
	if err := requireArity("binary_min", len(inputs), 2); err != nil {
		return Field{}, err
	}
	lhs, err := inputs[0].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	rhs, err := inputs[1].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	plan, err := ComparisonOp(lhs.Dtype, rhs.Dtype)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: lhs.Name, Dtype: plan.Result}, nil
}

func (BinaryMinFunc) Evaluate(inputs []Series) (Series, error) {
	if err := requireArityValue("binary_min", len(inputs), 2); err != nil {
		return Series{}, err
	}
	return inputs[0].BinaryMin(inputs[1])
}

// BinaryMaxFunc wraps Series.BinaryMax as a ScalarFunction.
type BinaryMaxFunc struct{}

func (BinaryMaxFunc) Name() string { return "binary_max" }

func (BinaryMaxFunc) ToField(inputs []Expression, schema Schema) (Field, error) {
	if err := requireArity("binary_max", len(inputs), 2); err != nil {
		return Field{}, err
	}
	lhs, err := inputs[0].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	rhs, err := inputs[1].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	plan, err := ComparisonOp(lhs.Dtype, rhs.Dtype)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: lhs.Name, Dtype: plan.Result}, nil
}

func (BinaryMaxFunc) Evaluate(inputs []Series) (Series, error) {
	if err := requireArityValue("binary_max", len(inputs), 2); err != nil {
		return Series{}, err
	}
	return inputs[0].BinaryMax(inputs[1])
}

// ClipFunc wraps Series.Clip as a ScalarFunction: clip(x, lo, hi) =
// min(max(x, lo), hi), inferring its result field by chaining ComparisonOp
// exactly as the two intermediate binary_max/binary_min calls would
// (spec.md §4.4).
type ClipFunc struct{}

func (ClipFunc) Name() string { return "clip" }

func (ClipFunc) ToField(inputs []Expression, schema Schema) (Field, error) {
	if err := requireArity("clip", len(inputs), 3); err != nil {
		return Field{}, err
	}
	x, err := inputs[0].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	lo, err := inputs[1].ToField(schema)
	if err != nil {
		return Field{}, err
	}
	hi, err := inputs[2].ToField(schema)
	if err != nil {
		return Field{}, err
	}

	maxPlan, err := ComparisonOp(x.Dtype, lo.Dtype)
	if err != nil {
		return Field{}, err
	}
	minPlan, err := ComparisonOp(maxPlan.Result, hi.Dtype)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: x.Name, Dtype: minPlan.Result}, nil
}

func (ClipFunc) Evaluate(inputs []Series) (Series, error) {
	if err := requireArityValue("clip", len(inputs), 3); err != nil {
		return Series{}, err
	}
	return inputs[0].Clip(inputs[1], inputs[2])
}
