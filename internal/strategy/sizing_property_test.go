package strategy

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Position sizing must always land in [1, maxContracts] and must never
// commit more budget than the caller supplied once the loss per contract
// is defined.
func TestProperty_SizingAlwaysWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("contracts always in [1, cap]", prop.ForAll(
		func(maxLoss, budget float64, maxContracts int) bool {
			got := SizeContracts(maxLoss, budget, maxContracts)

			bound := maxContracts
			if bound <= 0 {
				bound = DefaultMaxContracts
			}
			if got.Contracts < 1 || got.Contracts > bound {
				t.Logf("out of bounds: maxLoss=%.2f budget=%.2f bound=%d got=%d",
					maxLoss, budget, bound, got.Contracts)
				return false
			}
			return true
		},
		gen.Float64Range(-500, 5000),
		gen.Float64Range(0, 1e6),
		gen.IntRange(-10, 200),
	))

	properties.Property("budget never exceeded above the one-contract floor", prop.ForAll(
		func(maxLoss, budget float64, maxContracts int) bool {
			got := SizeContracts(maxLoss, budget, maxContracts)
			if got.ConservativeFallback || got.Contracts <= 1 {
				return true
			}
			committed := float64(got.Contracts) * maxLoss
			if committed > budget {
				t.Logf("over budget: maxLoss=%.2f budget=%.2f contracts=%d committed=%.2f",
					maxLoss, budget, got.Contracts, committed)
				return false
			}
			return true
		},
		gen.Float64Range(1, 5000),
		gen.Float64Range(0, 1e6),
		gen.IntRange(1, 200),
	))

	properties.Property("fallback exactly when loss per unit is undefined", prop.ForAll(
		func(maxLoss, budget float64) bool {
			got := SizeContracts(maxLoss, budget, 50)
			return got.ConservativeFallback == (maxLoss <= 0)
		},
		gen.Float64Range(-500, 5000),
		gen.Float64Range(0, 1e6),
	))

	properties.TestingRun(t)
}
