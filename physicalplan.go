package lattice

// PhysicalPlan is the closed tagged union of physical execution nodes the
// planner lowers a LogicalPlan into (spec.md §3, §4.5): the tabular and
// in-memory scans, Filter, Limit, Sort, the shuffle nodes Split/
// FanoutRandom/FanoutByHash/ReduceMerge/Coalesce, and Aggregate.
type PhysicalPlan interface {
	Schema() Schema
	PartitionSpec() PartitionSpec
	Input() PhysicalPlan
	isPhysicalPlan()
}

// PhysicalTabularScan reads Paths in Format (Parquet, Csv, or Json), forward
// carrying the row-count Limit and Filters known at read time (spec.md §3:
// `TabularScanParquet|Csv|Json { schema, external_info, partition_spec,
// limit?, filters[] }`).
type PhysicalTabularScan struct {
	SchemaVal        Schema
	Format           SourceFormat
	Paths            []string
	PartitionSpecVal PartitionSpec
	Limit            *int
	Filters          []Expression
}

func (n PhysicalTabularScan) Schema() Schema               { return n.SchemaVal }
func (n PhysicalTabularScan) PartitionSpec() PartitionSpec { return n.PartitionSpecVal }
func (n PhysicalTabularScan) Input() PhysicalPlan          { return nil }
func (PhysicalTabularScan) isPhysicalPlan()                {}

// PhysicalInMemoryScan reads from an already-materialized in-memory source,
// carrying the same forwarded Limit/Filters as PhysicalTabularScan.
type PhysicalInMemoryScan struct {
	SchemaVal        Schema
	PartitionSpecVal PartitionSpec
	Limit            *int
	Filters          []Expression
}

func (n PhysicalInMemoryScan) Schema() Schema               { return n.SchemaVal }
func (n PhysicalInMemoryScan) PartitionSpec() PartitionSpec { return n.PartitionSpecVal }
func (n PhysicalInMemoryScan) Input() PhysicalPlan          { return nil }
func (PhysicalInMemoryScan) isPhysicalPlan()                {}

// PhysicalFilter, PhysicalLimit, and PhysicalSort are row-local: none of
// them change schema or partitioning.
type PhysicalFilter struct {
	InputPlan PhysicalPlan
	Predicate Expression
}

func (n PhysicalFilter) Schema() Schema               { return n.InputPlan.Schema() }
func (n PhysicalFilter) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n PhysicalFilter) Input() PhysicalPlan          { return n.InputPlan }
func (PhysicalFilter) isPhysicalPlan()                {}

type PhysicalLimit struct {
	InputPlan PhysicalPlan
	Limit     int
}

func (n PhysicalLimit) Schema() Schema               { return n.InputPlan.Schema() }
func (n PhysicalLimit) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n PhysicalLimit) Input() PhysicalPlan          { return n.InputPlan }
func (PhysicalLimit) isPhysicalPlan()                {}

type PhysicalSort struct {
	InputPlan  PhysicalPlan
	SortBy     []Expression
	Descending []bool
}

func (n PhysicalSort) Schema() Schema               { return n.InputPlan.Schema() }
func (n PhysicalSort) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n PhysicalSort) Input() PhysicalPlan          { return n.InputPlan }
func (PhysicalSort) isPhysicalPlan()                {}

// PhysicalSplit increases the partition count with Unknown scheme: every
// input partition is sliced into pieces with no redistribution guarantee
// (spec.md §4.5).
type PhysicalSplit struct {
	InputPlan     PhysicalPlan
	NumPartitions uint32
}

func (n PhysicalSplit) Schema() Schema { return n.InputPlan.Schema() }
func (n PhysicalSplit) PartitionSpec() PartitionSpec {
	return PartitionSpec{NumPartitions: n.NumPartitions, Scheme: SchemeUnknown}
}
func (n PhysicalSplit) Input() PhysicalPlan { return n.InputPlan }
func (PhysicalSplit) isPhysicalPlan()       {}

// PhysicalFanoutRandom scatters each input partition's rows randomly across
// NumPartitions output buckets — the send side of a random shuffle.
type PhysicalFanoutRandom struct {
	InputPlan     PhysicalPlan
	NumPartitions uint32
}

func (n PhysicalFanoutRandom) Schema() Schema { return n.InputPlan.Schema() }
func (n PhysicalFanoutRandom) PartitionSpec() PartitionSpec {
	return PartitionSpec{NumPartitions: n.NumPartitions, Scheme: SchemeRandom}
}
func (n PhysicalFanoutRandom) Input() PhysicalPlan { return n.InputPlan }
func (PhysicalFanoutRandom) isPhysicalPlan()       {}

// PhysicalFanoutByHash scatters each input partition's rows across
// NumPartitions output buckets keyed by hash(PartitionBy) — the send side of
// a hash shuffle.
type PhysicalFanoutByHash struct {
	InputPlan     PhysicalPlan
	NumPartitions uint32
	PartitionBy   []Expression
}

func (n PhysicalFanoutByHash) Schema() Schema { return n.InputPlan.Schema() }
func (n PhysicalFanoutByHash) PartitionSpec() PartitionSpec {
	return PartitionSpec{NumPartitions: n.NumPartitions, Scheme: SchemeHash, PartitionBy: n.PartitionBy}
}
func (n PhysicalFanoutByHash) Input() PhysicalPlan { return n.InputPlan }
func (PhysicalFanoutByHash) isPhysicalPlan()       {}

// PhysicalReduceMerge is the receive side of a shuffle: it gathers every
// fanned-out bucket i, from every original partition, into a single new
// partition i. Its PartitionSpec is inherited directly from the fanout node
// it merges (spec.md §4.5).
type PhysicalReduceMerge struct {
	InputPlan PhysicalPlan
}

func (n PhysicalReduceMerge) Schema() Schema               { return n.InputPlan.Schema() }
func (n PhysicalReduceMerge) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n PhysicalReduceMerge) Input() PhysicalPlan          { return n.InputPlan }
func (PhysicalReduceMerge) isPhysicalPlan()                {}

// PhysicalCoalesce merges an input's partitions down to NumPartitions,
// discarding whatever partitioning guarantee the input had (spec.md §4.5).
type PhysicalCoalesce struct {
	InputPlan     PhysicalPlan
	NumPartitions uint32
}

func (n PhysicalCoalesce) Schema() Schema { return n.InputPlan.Schema() }
func (n PhysicalCoalesce) PartitionSpec() PartitionSpec {
	return PartitionSpec{NumPartitions: n.NumPartitions, Scheme: SchemeUnknown}
}
func (n PhysicalCoalesce) Input() PhysicalPlan { return n.InputPlan }
func (PhysicalCoalesce) isPhysicalPlan()       {}

// PhysicalAggregate computes Aggregations (optionally grouped by GroupBy)
// over each input partition independently. A two-stage global aggregate is
// expressed as two PhysicalAggregate nodes separated by a shuffle
// (FanoutByHash/ReduceMerge for a grouped aggregate, or Coalesce for a
// single-partition global aggregate) — spec.md §4.5, SPEC_FULL.md §4.1/§5.
type PhysicalAggregate struct {
	InputPlan    PhysicalPlan
	Aggregations []AggExpr
	GroupBy      []Expression
}

func (n PhysicalAggregate) Schema() Schema {
	return AggregateSchema(n.InputPlan.Schema(), n.GroupBy, n.Aggregations)
}
func (n PhysicalAggregate) PartitionSpec() PartitionSpec { return n.InputPlan.PartitionSpec() }
func (n PhysicalAggregate) Input() PhysicalPlan          { return n.InputPlan }
func (PhysicalAggregate) isPhysicalPlan()                {}
