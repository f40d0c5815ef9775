package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lychee-technology/lattice"
	"go.uber.org/zap"
)

func main() {
	scenario := flag.String("scenario", "repartition-hash", "Scenario to plan: repartition-hash, distinct, agg-sum")
	numPartitions := flag.Int("num-partitions", 4, "Input partition count for the scenario's source")
	clip := flag.Bool("clip", false, "Also run a Series.Clip demo and print the result's dtype and length")
	verbose := flag.Bool("verbose", false, "Enable debug logging of planner lowering decisions")

	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if *verbose {
		devLogger, err := zap.NewDevelopment()
		if err != nil {
			logger.Fatalf("building debug logger: %v", err)
		}
		zap.ReplaceGlobals(devLogger)
		logger.Printf("planning scenario %q with %d input partitions", *scenario, *numPartitions)
	}

	schema, err := lattice.NewSchema(
		lattice.Field{Name: "user_id", Dtype: lattice.DtypeInt64},
		lattice.Field{Name: "amount", Dtype: lattice.DtypeFloat64},
	)
	if err != nil {
		logger.Fatalf("building demo schema: %v", err)
	}

	source := lattice.LogicalSource{
		SchemaVal: schema,
		Info:      lattice.SourceInfo{Format: lattice.FormatInMemory},
		PartitionSpecVal: lattice.PartitionSpec{
			NumPartitions: uint32(*numPartitions),
			Scheme:        lattice.SchemeUnknown,
		},
	}

	var logical lattice.LogicalPlan
	switch *scenario {
	case "repartition-hash":
		logical = lattice.LogicalRepartition{
			InputPlan:     source,
			NumPartitions: 8,
			Scheme:        lattice.SchemeHash,
			PartitionBy:   []lattice.Expression{lattice.Col("user_id")},
		}
	case "distinct":
		logical = lattice.LogicalDistinct{InputPlan: source}
	case "agg-sum":
		logical = lattice.LogicalAggregate{
			InputPlan:    source,
			Aggregations: []lattice.AggExpr{lattice.NewAggExpr(lattice.AggSum, lattice.Col("amount"))},
		}
	default:
		logger.Fatalf("unknown scenario %q; supported: repartition-hash, distinct, agg-sum", *scenario)
	}

	physical, err := lattice.Plan(logical, lattice.DefaultConfig())
	if err != nil {
		logger.Fatalf("planning failed: %v", err)
	}

	explain := explainNode(physical)
	out, err := json.MarshalIndent(explain, "", "  ")
	if err != nil {
		logger.Fatalf("marshaling plan: %v", err)
	}
	fmt.Println(string(out))

	if *clip {
		runClipDemo(logger)
	}
}

// explainNode renders a PhysicalPlan tree as a nested map for display — this
// core has no SQL text to print, so the demo binary walks the tree directly
// instead of building a query string the way the source's sample CLI did.
func explainNode(node lattice.PhysicalPlan) map[string]any {
	result := map[string]any{
		"type":          fmt.Sprintf("%T", node),
		"numPartitions": node.PartitionSpec().NumPartitions,
		"scheme":        node.PartitionSpec().Scheme.String(),
	}
	if input := node.Input(); input != nil {
		result["input"] = explainNode(input)
	}
	return result
}

func runClipDemo(logger *log.Logger) {
	values := lattice.NewSeries("amount", lattice.NewArray([]float64{-5, 0, 3, 12, 100}))
	lo := lattice.NewSeries("lo", lattice.NewArray([]float64{0, 0, 0, 0, 0}))
	hi := lattice.NewSeries("hi", lattice.NewArray([]float64{10, 10, 10, 10, 10}))

	clipped, err := values.Clip(lo, hi)
	if err != nil {
		logger.Fatalf("clip demo failed: %v", err)
	}

	arr := clipped
	fmt.Printf("clip(amount, 0, 10) -> dtype=%s len=%d\n", arr.Dtype(), arr.Len())
}
