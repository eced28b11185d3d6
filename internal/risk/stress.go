package risk

import (
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// Scenario is one market shock applied to a trade: an underlying move, an
// implied volatility shift in points, and calendar days passing.
type Scenario struct {
	Name         string  `json:"name"`
	SpotShockPct float64 `json:"spot_shock_pct"`
	VolShockPts  float64 `json:"vol_shock_pts"`
	DaysForward  float64 `json:"days_forward"`
}

// scenarios is the fixed shock set. It is deliberately small and
// deterministic; stress output feeds human review, not the approval rule.
var scenarios = []Scenario{
	{Name: "spot -5%", SpotShockPct: -5},
	{Name: "spot +5%", SpotShockPct: 5},
	{Name: "spot -10%", SpotShockPct: -10},
	{Name: "spot +10%", SpotShockPct: 10},
	{Name: "vol +5pts", VolShockPts: 5},
	{Name: "vol -5pts", VolShockPts: -5},
	{Name: "7-day decay", DaysForward: 7},
	{Name: "crash: spot -10%, vol +10pts", SpotShockPct: -10, VolShockPts: 10},
}

// StressResult is the estimated P&L of one scenario.
type StressResult struct {
	Scenario     Scenario `json:"scenario"`
	EstimatedPnL float64  `json:"estimated_pnl"`
}

// StressReport summarizes a stress run.
type StressReport struct {
	Results  []StressResult `json:"results"`
	Worst    StressResult   `json:"worst"`
	Breaches bool           `json:"breaches_max_loss"`

	// Approved mirrors the risk gate outcome the report accompanies.
	Approved bool `json:"approved"`
}

// StressTester estimates trade P&L under the fixed shock set using the
// trade's aggregated greeks. It holds no state and is safe for concurrent
// use.
type StressTester struct{}

// NewStressTester creates a stress tester.
func NewStressTester() *StressTester {
	return &StressTester{}
}

// Run estimates P&L for each scenario via a first-order greeks expansion
// (delta and gamma against the spot move, vega against the vol shift,
// theta against days passing). The trade's greeks are already quantity
// scaled; the 100-share contract multiplier converts to dollars.
func (s *StressTester) Run(trade *models.ExecutableTrade, validation *models.ValidationResult) *StressReport {
	report := &StressReport{
		Results: make([]StressResult, 0, len(scenarios)),
	}
	if validation != nil {
		report.Approved = validation.Approved
	}

	for i, sc := range scenarios {
		dS := trade.UnderlyingPrice * sc.SpotShockPct / 100
		pnl := (trade.Greeks.Delta*dS +
			0.5*trade.Greeks.Gamma*dS*dS +
			trade.Greeks.Vega*sc.VolShockPts +
			trade.Greeks.Theta*sc.DaysForward) * 100

		result := StressResult{Scenario: sc, EstimatedPnL: pnl}
		report.Results = append(report.Results, result)
		if i == 0 || result.EstimatedPnL < report.Worst.EstimatedPnL {
			report.Worst = result
		}
	}

	if trade.MaxLoss > 0 && report.Worst.EstimatedPnL < -trade.MaxLoss {
		report.Breaches = true
	}

	return report
}
