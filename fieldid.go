package lattice

import "github.com/google/uuid"

// fieldIDNamespace anchors every FieldID hash to the same namespace, so two
// runs of the planner hash identical expression structures to identical IDs.
var fieldIDNamespace = uuid.MustParse("7b1c9c0e-7e0a-4a7a-9d9e-2c6f1e9b6a11")

// FieldID is the stable intermediate-column identifier carried across a
// shuffle boundary (spec.md "semantic_id" / FieldID, SPEC_FULL.md §3). It is
// a deterministic function of an expression's structure, never of object
// identity or evaluation order — the same logical computation always hashes
// to the same FieldID, in any process, on any run.
type FieldID struct {
	id string
}

func (f FieldID) String() string { return f.id }

// NewFieldID derives a FieldID from a structural description of an
// expression. uuid.NewSHA1 is a pure hash over (namespace, name) with no
// randomness, which is what makes the result reproducible run to run.
func NewFieldID(structural string) FieldID {
	return FieldID{id: uuid.NewSHA1(fieldIDNamespace, []byte(structural)).String()}
}
