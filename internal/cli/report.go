package cli

import (
	"github.com/fatih/color"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

var severityColors = map[models.Severity]*color.Color{
	models.SeverityInfo:     color.New(color.FgCyan),
	models.SeverityWarning:  color.New(color.FgYellow),
	models.SeverityError:    color.New(color.FgRed),
	models.SeverityCritical: color.New(color.FgRed, color.Bold),
}

// renderReport prints the full evaluation report: the synthesized trade,
// the risk gate outcome with per-violation remediation, and the optional
// stress table.
func renderReport(output *Output, result *evaluateResult) {
	trade := result.Trade

	output.Bold("Trade: %s %s", trade.Symbol, trade.Strategy)
	output.Printf("  Expiration: %s (%d DTE)  Quantity: %d\n",
		FormatDate(trade.Expiration), trade.DTE, trade.Quantity)
	output.Println()

	output.Bold("Legs")
	for _, leg := range trade.Legs {
		if leg.IsOption() {
			output.Printf("  %-4s %-5s %s  x%d  bid %s / ask %s  Δ%.3f\n",
				leg.Action, leg.Instrument, FormatStrike(leg.Strike),
				leg.Quantity, FormatCurrency(leg.Bid), FormatCurrency(leg.Ask),
				leg.Greeks.Delta)
		} else {
			output.Printf("  %-4s STOCK x%d\n", leg.Action, leg.Quantity)
		}
	}
	output.Println()

	output.Bold("Metrics")
	premium := "net credit"
	amount := trade.NetCredit
	if amount < 0 {
		premium = "net debit"
		amount = -amount
	}
	output.Printf("  Premium:     %s (%s)\n", FormatCurrency(amount), premium)
	output.Printf("  Max loss:    %s\n", FormatCurrency(trade.MaxLoss))
	output.Printf("  Margin est:  %s\n", FormatCurrency(trade.MarginRequirement))
	output.Printf("  PoP est:     %s\n", FormatPct(trade.ProbabilityOfProfit))
	output.Printf("  Greeks:      Δ%.2f Γ%.3f Θ%.2f V%.2f\n",
		trade.Greeks.Delta, trade.Greeks.Gamma, trade.Greeks.Theta, trade.Greeks.Vega)
	if trade.SizingFallback {
		output.Dim("  Sizing fell back to 1 contract (undefined per-unit risk)")
	}
	if trade.ApproximateStrikes {
		output.Dim("  Strikes approximate (chain carried no delta data)")
	}
	output.Println()

	output.Bold("Kill switches")
	for _, ks := range trade.KillSwitches {
		output.Printf("  %-14s %s\n", ks.Kind, ks.Message)
	}
	output.Println()

	validation := result.Validation
	if validation.Approved {
		output.Success("APPROVED (risk score %.1f)", validation.RiskScore)
	} else {
		output.Error("REJECTED (risk score %.1f)", validation.RiskScore)
	}
	for _, v := range validation.Violations {
		c, ok := severityColors[v.Severity]
		if !ok {
			c = color.New()
		}
		output.Printf("  %s [%s] %s\n", c.Sprintf("%-8s", v.Severity), v.Category, v.Message)
		if v.Remediation != "" {
			output.Dim("           remediation: %s", v.Remediation)
		}
	}

	if result.Stress != nil {
		output.Println()
		output.Bold("Stress scenarios")
		for _, r := range result.Stress.Results {
			output.Printf("  %-30s %s\n", r.Scenario.Name, FormatCurrency(r.EstimatedPnL))
		}
		if result.Stress.Breaches {
			output.Warning("  Worst case exceeds modeled max loss")
		}
	}
}
