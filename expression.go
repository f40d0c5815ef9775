package lattice

import "fmt"

// Expression is the opaque tree the planner consumes (spec.md §3). Its
// construction, substitution, and general schema inference live outside this
// core (Non-goals) — this core only needs enough of a contract to resolve a
// column's output Field and a deterministic FieldID for shuffle naming.
type Expression interface {
	// ToField resolves this expression's output Field against schema.
	ToField(schema Schema) (Field, error)
	// SemanticID returns a FieldID derived from this expression's structure,
	// stable across repeated calls and across process restarts.
	SemanticID(schema Schema) FieldID
	// Alias wraps this expression so its output Field is renamed.
	Alias(name string) Expression
	// ExprName returns the name this expression resolves to absent an
	// enclosing Alias (a column's own name, or an aliased name once wrapped).
	ExprName() string
}

// ColumnExpression references a single input column by name.
type ColumnExpression struct {
	Name string
}

func Col(name string) ColumnExpression { return ColumnExpression{Name: name} }

func (c ColumnExpression) ToField(schema Schema) (Field, error) {
	f, ok := schema.FieldByName(c.Name)
	if !ok {
		return Field{}, newError(ErrorKindSchemaMismatch, ErrCodeUnknownFieldName, fmt.Sprintf("unknown column %q", c.Name)).
			WithDetail("column", c.Name)
	}
	return f, nil
}

func (c ColumnExpression) SemanticID(Schema) FieldID {
	return NewFieldID("col:" + c.Name)
}

func (c ColumnExpression) Alias(name string) Expression {
	return AliasExpression{Inner: c, As: name}
}

func (c ColumnExpression) ExprName() string { return c.Name }

// AliasExpression renames the output Field of Inner without changing its
// semantic identity: the same underlying computation under two different
// names still hashes to the same SemanticID (spec.md §3, "semantic_id" note).
type AliasExpression struct {
	Inner Expression
	As    string
}

func (a AliasExpression) ToField(schema Schema) (Field, error) {
	f, err := a.Inner.ToField(schema)
	if err != nil {
		return Field{}, err
	}
	f.Name = a.As
	return f, nil
}

func (a AliasExpression) SemanticID(schema Schema) FieldID {
	return a.Inner.SemanticID(schema)
}

func (a AliasExpression) Alias(name string) Expression {
	return AliasExpression{Inner: a.Inner, As: name}
}

func (a AliasExpression) ExprName() string { return a.As }

// AggKind is the closed set of aggregate wrappers an AggExpr may carry
// (spec.md §3: Count|Sum|Mean|Min|Max|List|Concat).
type AggKind string

const (
	AggCount  AggKind = "count"
	AggSum    AggKind = "sum"
	AggMean   AggKind = "mean"
	AggMin    AggKind = "min"
	AggMax    AggKind = "max"
	AggList   AggKind = "list"
	AggConcat AggKind = "concat"
)

// AggExpr wraps a sub-expression in an aggregate (spec.md §3, §4.5). It is
// not itself an Expression — aggregations only ever appear directly inside a
// LogicalAggregate/PhysicalAggregate node's Aggregations list, never nested
// inside another expression, matching the spec's "over a sub-expression"
// phrasing and the original planner's flat aggregation lists.
type AggExpr struct {
	Kind  AggKind
	Inner Expression
}

func NewAggExpr(kind AggKind, inner Expression) AggExpr {
	return AggExpr{Kind: kind, Inner: inner}
}

// WithInner returns a copy of ae with its wrapped expression replaced — used
// by the planner to re-point the second stage of a two-stage aggregate at the
// first stage's FieldID-named output column (SPEC_FULL.md §4.1).
func (ae AggExpr) WithInner(inner Expression) AggExpr {
	return AggExpr{Kind: ae.Kind, Inner: inner}
}

// ToField resolves this aggregation's output Field. The wrapped expression's
// name (after any Alias) becomes the aggregation's output column name; the
// dtype follows the aggregate kind.
func (ae AggExpr) ToField(schema Schema) (Field, error) {
	innerField, err := ae.Inner.ToField(schema)
	if err != nil {
		return Field{}, err
	}
	dt, err := ae.Kind.resultDtype(innerField.Dtype)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: ae.Inner.ExprName(), Dtype: dt}, nil
}

func (ae AggExpr) SemanticID(schema Schema) FieldID {
	return NewFieldID(fmt.Sprintf("%s(%s)", ae.Kind, ae.Inner.SemanticID(schema)))
}

// resultDtype is a deliberately simplified dtype-inference rule: Count always
// produces Int64, Mean always produces Float64, and the rest (Sum/Min/Max/
// List/Concat) pass the input dtype through unchanged. A production engine
// would widen Sum's accumulator and give List a container dtype of its own;
// this core only needs enough dtype inference to drive schema propagation
// through the planner (Non-goal: full expression-language dtype inference).
// AggregateSchema resolves the output Schema of an aggregation over
// inputSchema: groupBy columns first (in order), then each aggregation's
// output Field. Fields that fail to resolve are silently dropped rather than
// failing the whole Schema() call — callers that need the error should
// resolve each expression themselves; Schema() methods have no error return
// per the LogicalPlan/PhysicalPlan contract (spec.md §3).
func AggregateSchema(inputSchema Schema, groupBy []Expression, aggregations []AggExpr) Schema {
	fields := make([]Field, 0, len(groupBy)+len(aggregations))
	for _, g := range groupBy {
		if f, err := g.ToField(inputSchema); err == nil {
			fields = append(fields, f)
		}
	}
	for _, agg := range aggregations {
		if f, err := agg.ToField(inputSchema); err == nil {
			fields = append(fields, f)
		}
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return Schema{Fields: fields}
	}
	return schema
}

func (k AggKind) resultDtype(input Dtype) (Dtype, error) {
	switch k {
	case AggCount:
		return DtypeInt64, nil
	case AggMean:
		if !input.IsNumeric() {
			return DtypeNull, NewTypeError(fmt.Sprintf("mean requires a numeric operand, got %s", input))
		}
		return DtypeFloat64, nil
	case AggSum, AggMin, AggMax, AggList, AggConcat:
		return input, nil
	default:
		return DtypeNull, NewInternalError(fmt.Sprintf("unknown aggregate kind %q", k))
	}
}
