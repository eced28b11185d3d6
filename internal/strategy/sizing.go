package strategy

import "math"

// DefaultMaxContracts caps position size when the limits do not specify one.
const DefaultMaxContracts = 50

// Sizing is the outcome of budget-constrained position sizing.
// ConservativeFallback is set when the per-unit max loss was undefined
// (zero or negative) and the sizer returned the minimum of one contract.
type Sizing struct {
	Contracts            int
	ConservativeFallback bool
}

// SizeContracts returns the number of contracts a risk budget affords given
// the max loss per single contract. The result is always in
// [1, maxContracts]; it never returns zero. Undefined-risk inputs
// (maxLossPerUnit <= 0) take the conservative fallback of one contract
// instead of dividing by zero.
func SizeContracts(maxLossPerUnit, riskBudget float64, maxContracts int) Sizing {
	if maxContracts <= 0 {
		maxContracts = DefaultMaxContracts
	}

	if maxLossPerUnit <= 0 {
		return Sizing{Contracts: 1, ConservativeFallback: true}
	}

	size := int(math.Floor(riskBudget / maxLossPerUnit))
	if size < 1 {
		size = 1
	}
	if size > maxContracts {
		size = maxContracts
	}
	return Sizing{Contracts: size}
}
