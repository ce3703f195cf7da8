package ingest

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPair draws both fields from a small address pool (plus blank and
// padded variants) so that duplicates, self-loops, and discards all occur
// with high probability.
func genPair() gopter.Gen {
	addr := gen.OneConstOf(
		"alice@x.com",
		"bob@x.com",
		"carol@x.com",
		" alice@x.com ",
		"",
		"  ",
	)
	return gopter.CombineGens(addr, addr).Map(func(vals []interface{}) Pair {
		return Pair{From: vals[0].(string), To: vals[1].(string)}
	})
}

// survives mirrors the aggregator's discard filters.
func survives(p Pair) bool {
	from, to := strings.TrimSpace(p.From), strings.TrimSpace(p.To)
	return from != "" && to != "" && from != to
}

// TestAggregationInvariants uses property-based testing to verify the
// aggregation invariants that must hold for any raw pair sequence
func TestAggregationInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property 1: total weight equals the number of surviving raw pairs
	properties.Property("aggregation conserves weight", prop.ForAll(
		func(pairs []Pair) bool {
			survivors := 0
			for _, p := range pairs {
				if survives(p) {
					survivors++
				}
			}

			total := 0
			for _, e := range Aggregate(pairs) {
				total += e.Weight
			}
			return total == survivors
		},
		gen.SliceOf(genPair()),
	))

	// Property 2: no self-loops and no blank endpoints in the output
	properties.Property("aggregation excludes self-loops and blanks", prop.ForAll(
		func(pairs []Pair) bool {
			for _, e := range Aggregate(pairs) {
				if e.From == e.To || e.From == "" || e.To == "" {
					return false
				}
				if e.From != strings.TrimSpace(e.From) || e.To != strings.TrimSpace(e.To) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPair()),
	))

	// Property 3: expanding each weight-N edge back into N unit pairs and
	// re-aggregating reproduces the same weighted edge set
	properties.Property("aggregation is idempotent", prop.ForAll(
		func(pairs []Pair) bool {
			first := Aggregate(pairs)

			var expanded []Pair
			for _, e := range first {
				for i := 0; i < e.Weight; i++ {
					expanded = append(expanded, Pair{From: e.From, To: e.To})
				}
			}
			second := Aggregate(expanded)

			if len(first) != len(second) {
				return false
			}
			weights := make(map[Pair]int, len(first))
			for _, e := range first {
				weights[Pair{From: e.From, To: e.To}] = e.Weight
			}
			for _, e := range second {
				if weights[Pair{From: e.From, To: e.To}] != e.Weight {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPair()),
	))

	// Property 4: every distinct surviving (From,To) key appears exactly once
	properties.Property("aggregation emits unique edges", prop.ForAll(
		func(pairs []Pair) bool {
			seen := make(map[Pair]bool)
			for _, e := range Aggregate(pairs) {
				key := Pair{From: e.From, To: e.To}
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		gen.SliceOf(genPair()),
	))

	properties.TestingRun(t)
}
