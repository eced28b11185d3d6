package models

// PortfolioSnapshot is the caller-supplied view of account state used by the
// risk gate. A fresh snapshot must be supplied for every validation call;
// nothing here is cached by the engine.
type PortfolioSnapshot struct {
	TotalEquity   float64 `json:"total_equity"`
	AvailableCash float64 `json:"available_cash"`

	// Aggregate greeks exposure of existing open positions.
	Greeks Greeks `json:"greeks"`

	// CapitalAtRisk is the summed max loss of existing open positions.
	CapitalAtRisk float64 `json:"capital_at_risk"`

	DailyPnL      float64 `json:"daily_pnl"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	MarginUsed    float64 `json:"margin_used"`
	OpenPositions int     `json:"open_positions"`
}
