package lattice

// PartitionScheme is the closed set of ways a PartitionSpec's partitions were
// (or will be) produced (spec.md §3).
type PartitionScheme int

const (
	SchemeUnknown PartitionScheme = iota
	SchemeRandom
	SchemeHash
	SchemeRange
)

func (s PartitionScheme) String() string {
	switch s {
	case SchemeUnknown:
		return "Unknown"
	case SchemeRandom:
		return "Random"
	case SchemeHash:
		return "Hash"
	case SchemeRange:
		return "Range"
	default:
		return "Unrecognized"
	}
}

// PartitionSpec describes how a plan node's output is split across
// partitions: how many, by what scheme, and (for Hash/Range) by which
// expressions (spec.md §3).
type PartitionSpec struct {
	NumPartitions uint32
	Scheme        PartitionScheme
	PartitionBy   []Expression
}

// UnknownSpec is the zero-information PartitionSpec a source with no
// declared partitioning carries.
func UnknownSpec(numPartitions uint32) PartitionSpec {
	return PartitionSpec{NumPartitions: numPartitions, Scheme: SchemeUnknown}
}

// SamePartitioning reports whether two PartitionSpecs describe output that
// is already aligned: same count, same scheme, and (for Hash) the same
// partition-by columns by name. This is the predicate the planner uses to
// decide whether a shuffle is actually necessary before inserting one.
func (p PartitionSpec) SamePartitioning(other PartitionSpec) bool {
	if p.NumPartitions != other.NumPartitions || p.Scheme != other.Scheme {
		return false
	}
	if p.Scheme != SchemeHash {
		return true
	}
	if len(p.PartitionBy) != len(other.PartitionBy) {
		return false
	}
	for i := range p.PartitionBy {
		if p.PartitionBy[i].ExprName() != other.PartitionBy[i].ExprName() {
			return false
		}
	}
	return true
}
