package strategy

import "github.com/HanzoRazer/emo-options-bot-sub001/internal/models"

// AggregateGreeks sums signed per-leg greeks into trade-level exposure.
// Bought legs contribute their greeks as-is, sold legs negated, scaled by
// contract quantity. Stock legs contribute delta only, at one delta per
// 100 shares so the result stays in contract-equivalent units.
func AggregateGreeks(legs []models.Leg) models.Greeks {
	var total models.Greeks
	for _, leg := range legs {
		sign := 1.0
		if leg.Action == models.ActionSell {
			sign = -1.0
		}
		if leg.IsOption() {
			qty := float64(leg.Quantity)
			total.Delta += sign * leg.Greeks.Delta * qty
			total.Gamma += sign * leg.Greeks.Gamma * qty
			total.Theta += sign * leg.Greeks.Theta * qty
			total.Vega += sign * leg.Greeks.Vega * qty
		} else {
			total.Delta += sign * float64(leg.Quantity) / 100
		}
	}
	return total
}
