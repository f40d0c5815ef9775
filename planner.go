package lattice

import (
	"fmt"

	"go.uber.org/zap"
)

// Plan lowers a LogicalPlan into a PhysicalPlan using cfg's defaults. It is
// the single entry point this core exposes to an external collaborator
// (spec.md §6): everything else — expression construction, schema
// inference beyond what planning needs, execution — is out of scope.
func Plan(logical LogicalPlan, cfg *PlannerConfig) (PhysicalPlan, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &planner{cfg: cfg}
	return p.lower(logical)
}

type planner struct {
	cfg *PlannerConfig
}

func (p *planner) lower(logical LogicalPlan) (PhysicalPlan, error) {
	switch n := logical.(type) {
	case LogicalSource:
		return p.lowerSource(n)
	case LogicalFilter:
		return p.lowerFilter(n)
	case LogicalLimit:
		return p.lowerLimit(n)
	case LogicalSort:
		return p.lowerSort(n)
	case LogicalRepartition:
		return p.lowerRepartition(n)
	case LogicalDistinct:
		return p.lowerDistinct(n)
	case LogicalAggregate:
		return p.lowerAggregate(n)
	default:
		return nil, NewInternalError(fmt.Sprintf("unrecognized logical plan node %T", logical))
	}
}

// lowerSource forwards schema, source_info, partition_spec, limit, and
// filters verbatim — no rewrite (spec.md §4.5 Source-lowering rule).
func (p *planner) lowerSource(n LogicalSource) (PhysicalPlan, error) {
	if n.Info.Format == FormatInMemory {
		return PhysicalInMemoryScan{
			SchemaVal:        n.SchemaVal,
			PartitionSpecVal: n.PartitionSpecVal,
			Limit:            n.Limit,
			Filters:          n.Filters,
		}, nil
	}
	return PhysicalTabularScan{
		SchemaVal:        n.SchemaVal,
		Format:           n.Info.Format,
		Paths:            n.Info.Paths,
		PartitionSpecVal: n.PartitionSpecVal,
		Limit:            n.Limit,
		Filters:          n.Filters,
	}, nil
}

func (p *planner) lowerFilter(n LogicalFilter) (PhysicalPlan, error) {
	if err := validateExpressions(n.InputPlan.Schema(), n.Predicate); err != nil {
		return nil, err
	}
	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}
	return PhysicalFilter{InputPlan: input, Predicate: n.Predicate}, nil
}

func (p *planner) lowerLimit(n LogicalLimit) (PhysicalPlan, error) {
	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}
	return PhysicalLimit{InputPlan: input, Limit: n.Limit}, nil
}

func (p *planner) lowerSort(n LogicalSort) (PhysicalPlan, error) {
	if len(n.SortBy) != len(n.Descending) {
		return nil, newSortArityMismatch(len(n.SortBy), len(n.Descending))
	}
	if err := validateExpressions(n.InputPlan.Schema(), n.SortBy...); err != nil {
		return nil, err
	}
	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}
	return PhysicalSort{InputPlan: input, SortBy: n.SortBy, Descending: n.Descending}, nil
}

// validateExpressions resolves every expr against schema, returning the
// first SchemaMismatch/TypeError encountered. Plan() must call this for
// every expression a lowering step consumes — spec.md §6 promises
// SchemaMismatch "at planning time" for an unresolvable column, and nothing
// downstream (AggregateSchema included) re-checks this once planning
// proceeds.
func validateExpressions(schema Schema, exprs ...Expression) error {
	for _, e := range exprs {
		if _, err := e.ToField(schema); err != nil {
			return err
		}
	}
	return nil
}

// validateAggregations resolves every aggregation's output Field against
// schema, surfacing both unresolvable inner columns and dtype errors (e.g.
// Mean over a non-numeric column) instead of letting AggregateSchema drop
// them silently.
func validateAggregations(schema Schema, aggs []AggExpr) error {
	for _, agg := range aggs {
		if _, err := agg.ToField(schema); err != nil {
			return err
		}
	}
	return nil
}

func newSortArityMismatch(sortByLen, descendingLen int) *Error {
	return (&Error{
		Kind:    ErrorKindSchemaMismatch,
		Code:    ErrCodeSortArityMismatch,
		Message: fmt.Sprintf("sort_by has %d expressions but descending has %d", sortByLen, descendingLen),
	}).WithDetail("sort_by_len", sortByLen).WithDetail("descending_len", descendingLen)
}

// lowerRepartition inserts the shuffle node pair appropriate to the target
// scheme, skipping the shuffle entirely when the input is already
// partitioned the requested way.
func (p *planner) lowerRepartition(n LogicalRepartition) (PhysicalPlan, error) {
	if err := validateExpressions(n.InputPlan.Schema(), n.PartitionBy...); err != nil {
		return nil, err
	}
	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}

	target := PartitionSpec{NumPartitions: n.NumPartitions, Scheme: n.Scheme, PartitionBy: n.PartitionBy}
	if input.PartitionSpec().SamePartitioning(target) {
		zap.S().Debugw("repartition is a no-op, input already matches target partitioning",
			"numPartitions", n.NumPartitions, "scheme", n.Scheme.String())
		return input, nil
	}

	switch n.Scheme {
	case SchemeRandom:
		zap.S().Debugw("lowering repartition to random fanout+reduce",
			"numPartitions", n.NumPartitions)
		fanout := PhysicalFanoutRandom{InputPlan: input, NumPartitions: n.NumPartitions}
		return PhysicalReduceMerge{InputPlan: fanout}, nil
	case SchemeHash:
		zap.S().Debugw("lowering repartition to hash fanout+reduce",
			"numPartitions", n.NumPartitions, "partitionBy", exprNames(n.PartitionBy))
		fanout := PhysicalFanoutByHash{InputPlan: input, NumPartitions: n.NumPartitions, PartitionBy: n.PartitionBy}
		return PhysicalReduceMerge{InputPlan: fanout}, nil
	case SchemeRange:
		return nil, NewNotImplementedError(ErrCodeRangeRepartition,
			"range repartitioning requires sampled boundaries this planner does not compute")
	case SchemeUnknown:
		if uint32(input.PartitionSpec().NumPartitions) == n.NumPartitions {
			return input, nil
		}
		if n.NumPartitions < input.PartitionSpec().NumPartitions {
			zap.S().Debugw("lowering repartition(Unknown, fewer partitions) to coalesce",
				"numPartitions", n.NumPartitions)
			return PhysicalCoalesce{InputPlan: input, NumPartitions: n.NumPartitions}, nil
		}
		zap.S().Debugw("lowering repartition(Unknown, more partitions) to split",
			"numPartitions", n.NumPartitions)
		return PhysicalSplit{InputPlan: input, NumPartitions: n.NumPartitions}, nil
	default:
		return nil, NewInternalError(fmt.Sprintf("unrecognized partition scheme %v", n.Scheme))
	}
}

// lowerDistinct implements distinctness as a group-by-all-columns aggregate
// with no aggregations: a local dedup per partition, then (if the input
// spans more than one partition) a hash shuffle on every column followed by
// a second dedup pass. Both stages reuse the input schema's full column
// list for both the group-by key and the shuffle's partition-by key —
// Distinct has no aggregation outputs to reconcile across the shuffle, only
// the row itself (SPEC_FULL.md §4.1, grounded on the source's reuse of the
// same column list for both roles).
func (p *planner) lowerDistinct(n LogicalDistinct) (PhysicalPlan, error) {
	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}

	cols := schemaColumns(n.InputPlan.Schema())
	firstStage := PhysicalAggregate{InputPlan: input, GroupBy: cols}

	if input.PartitionSpec().NumPartitions <= 1 {
		return firstStage, nil
	}

	zap.S().Debugw("distinct spans multiple partitions, inserting hash shuffle on all columns",
		"numPartitions", input.PartitionSpec().NumPartitions)
	fanout := PhysicalFanoutByHash{
		InputPlan:     firstStage,
		NumPartitions: input.PartitionSpec().NumPartitions,
		PartitionBy:   cols,
	}
	merged := PhysicalReduceMerge{InputPlan: fanout}
	return PhysicalAggregate{InputPlan: merged, GroupBy: cols}, nil
}

func schemaColumns(schema Schema) []Expression {
	cols := make([]Expression, len(schema.Fields))
	for i, f := range schema.Fields {
		cols[i] = Col(f.Name)
	}
	return cols
}

func exprNames(exprs []Expression) []string {
	names := make([]string, len(exprs))
	for i, e := range exprs {
		names[i] = e.ExprName()
	}
	return names
}

// lowerAggregate implements the two-stage global aggregate: a non-empty
// GroupBy is rejected (Non-goal — this planner only lowers global
// aggregates), and a single-partition input needs no shuffle at all. A
// multi-partition input is lowered into a first stage computing partials
// under a stable FieldID-derived name, a Coalesce bringing every partial
// into one partition, and a second stage re-combining the partials with the
// same aggregation kind. Count is rejected by default
// (RejectMultiPartitionCount); otherwise its second stage re-combines the
// partial counts with Sum. Mean over a multi-partition input is always
// rejected (SPEC_FULL.md §5).
func (p *planner) lowerAggregate(n LogicalAggregate) (PhysicalPlan, error) {
	if len(n.GroupBy) != 0 {
		return nil, NewNotImplementedError(ErrCodeGroupByNotImplemented,
			"aggregation with a non-empty group_by is not implemented; only global aggregates are lowered")
	}

	inputSchema := n.InputPlan.Schema()
	if err := validateAggregations(inputSchema, n.Aggregations); err != nil {
		return nil, err
	}

	input, err := p.lower(n.InputPlan)
	if err != nil {
		return nil, err
	}

	if input.PartitionSpec().NumPartitions <= 1 {
		return PhysicalAggregate{InputPlan: input, Aggregations: n.Aggregations}, nil
	}

	for _, agg := range n.Aggregations {
		if agg.Kind == AggCount && p.cfg.RejectMultiPartitionCount {
			return nil, NewNotImplementedError(ErrCodeCountNotImplemented,
				"multi-partition count requires a sum-of-counts second stage, which is disabled by config")
		}
		if agg.Kind == AggMean {
			return nil, NewNotImplementedError(ErrCodeMeanNotImplemented,
				"multi-partition mean is not algebraic under same-kind re-application and has no decomposed implementation")
		}
	}

	zap.S().Debugw("aggregate spans multiple partitions, inserting two-stage lowering",
		"numPartitions", input.PartitionSpec().NumPartitions, "numAggregations", len(n.Aggregations))

	outputSchema := n.Schema()
	firstStageAggs := make([]AggExpr, len(n.Aggregations))
	secondStageAggs := make([]AggExpr, len(n.Aggregations))
	for i, agg := range n.Aggregations {
		fieldID := agg.SemanticID(inputSchema)
		originalName := outputSchema.Fields[i].Name
		zap.S().Debugw("two-stage aggregate intermediate column",
			"kind", string(agg.Kind), "fieldID", fieldID.String())

		firstStageAggs[i] = agg.WithInner(agg.Inner.Alias(fieldID.String()))
		secondStage := agg.WithInner(Col(fieldID.String()).Alias(originalName))
		if agg.Kind == AggCount {
			secondStage.Kind = AggSum
		}
		secondStageAggs[i] = secondStage
	}

	firstStage := PhysicalAggregate{InputPlan: input, Aggregations: firstStageAggs}
	coalesced := PhysicalCoalesce{InputPlan: firstStage, NumPartitions: 1}
	return PhysicalAggregate{InputPlan: coalesced, Aggregations: secondStageAggs}, nil
}
