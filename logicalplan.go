package lattice

// SourceFormat is the closed set of input formats a LogicalSource may read,
// mirroring the scan variants the physical planner lowers to (spec.md §3,
// §4.5: TabularScanParquet|Csv|Json, InMemoryScan).
type SourceFormat int

const (
	FormatInMemory SourceFormat = iota
	FormatParquet
	FormatCsv
	FormatJson
)

// SourceInfo describes where a LogicalSource's rows come from. Paths is
// unused for FormatInMemory.
type SourceInfo struct {
	Format SourceFormat
	Paths  []string
}

// LogicalPlan is the closed tagged union of logical query nodes (spec.md §3):
// Source, Filter, Limit, Sort, Repartition, Distinct, Aggregate. Every
// variant exposes its output Schema and PartitionSpec without needing to
// walk the whole tree to compute them.
type LogicalPlan interface {
	Schema() Schema
	PartitionSpec() PartitionSpec
	Input() LogicalPlan
	isLogicalPlan()
}

// LogicalSource is a leaf: it has no Input and carries its own schema and
// partitioning directly, plus an optional row-count Limit and a list of
// Filters already known to apply at read time (spec.md §3: `Source {
// schema, source_info, partition_spec, limit?, filters[] }`).
type LogicalSource struct {
	SchemaVal        Schema
	Info             SourceInfo
	PartitionSpecVal PartitionSpec
	Limit            *int
	Filters          []Expression
}

func (n LogicalSource) Schema() Schema               { return n.SchemaVal }
func (n LogicalSource) PartitionSpec() PartitionSpec { return n.PartitionSpecVal }
func (n LogicalSource) Input() LogicalPlan           { return nil }
func (LogicalSource) isLogicalPlan()                 {}

// LogicalFilter keeps rows matching Predicate. It changes neither schema nor
// partitioning — a predicate is evaluated row-local.
type LogicalFilter struct {
	InputPlan LogicalPlan
	Predicate Expression
}

func (n LogicalFilter) Schema() Schema               { return n.InputPlan.Schema() }
func (n LogicalFilter) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n LogicalFilter) Input() LogicalPlan           { return n.InputPlan }
func (LogicalFilter) isLogicalPlan()                 {}

// LogicalLimit caps the total row count at Limit. Row-local per partition
// plus a final global cap at physical planning time; it does not itself
// change schema or partitioning.
type LogicalLimit struct {
	InputPlan LogicalPlan
	Limit     int
}

func (n LogicalLimit) Schema() Schema               { return n.InputPlan.Schema() }
func (n LogicalLimit) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n LogicalLimit) Input() LogicalPlan           { return n.InputPlan }
func (LogicalLimit) isLogicalPlan()                 {}

// LogicalSort orders rows by SortBy, tied to Descending by position
// (len(Descending) must equal len(SortBy); the planner enforces this —
// spec.md §4.5 edge case).
type LogicalSort struct {
	InputPlan  LogicalPlan
	SortBy     []Expression
	Descending []bool
}

func (n LogicalSort) Schema() Schema               { return n.InputPlan.Schema() }
func (n LogicalSort) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n LogicalSort) Input() LogicalPlan           { return n.InputPlan }
func (LogicalSort) isLogicalPlan()                 {}

// LogicalRepartition redistributes rows under a new PartitionSpec. Unlike
// every other non-source node, its PartitionSpec() is NOT inherited from
// Input — the new spec is the entire point of the node.
type LogicalRepartition struct {
	InputPlan     LogicalPlan
	NumPartitions uint32
	Scheme        PartitionScheme
	PartitionBy   []Expression
}

func (n LogicalRepartition) Schema() Schema { return n.InputPlan.Schema() }
func (n LogicalRepartition) PartitionSpec() PartitionSpec {
	return PartitionSpec{NumPartitions: n.NumPartitions, Scheme: n.Scheme, PartitionBy: n.PartitionBy}
}
func (n LogicalRepartition) Input() LogicalPlan { return n.InputPlan }
func (LogicalRepartition) isLogicalPlan()        {}

// LogicalDistinct deduplicates rows across the entire row (all columns).
// Its PartitionSpec is inherited: distinctness is a two-stage operation the
// physical planner expresses with a shuffle, not a declared repartition of
// the logical node itself (SPEC_FULL.md §4.1, grounded on the original
// planner's treatment of Distinct).
type LogicalDistinct struct {
	InputPlan LogicalPlan
}

func (n LogicalDistinct) Schema() Schema               { return n.InputPlan.Schema() }
func (n LogicalDistinct) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n LogicalDistinct) Input() LogicalPlan           { return n.InputPlan }
func (LogicalDistinct) isLogicalPlan()                 {}

// LogicalAggregate computes Aggregations, optionally grouped by GroupBy
// (non-empty GroupBy is rejected at physical planning time — spec.md §4.5
// Non-goal). Its PartitionSpec is inherited from Input: the logical node
// does not itself declare the single-partition result a global aggregate
// produces, that reduction is a physical-planning concern (SPEC_FULL.md
// §4.1, grounded on the original planner reading
// `logical_plan.partition_spec().num_partitions` directly off the Aggregate
// node to decide whether a two-stage lowering is needed).
type LogicalAggregate struct {
	InputPlan    LogicalPlan
	Aggregations []AggExpr
	GroupBy      []Expression
}

func (n LogicalAggregate) Schema() Schema {
	return AggregateSchema(n.InputPlan.Schema(), n.GroupBy, n.Aggregations)
}

func (n LogicalAggregate) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n LogicalAggregate) Input() LogicalPlan           { return n.InputPlan }
func (LogicalAggregate) isLogicalPlan()                 {}
