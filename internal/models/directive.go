// Package models provides domain models for the options engine.
package models

// Outlook represents the market view driving a directive.
type Outlook string

const (
	OutlookBullish  Outlook = "BULLISH"
	OutlookBearish  Outlook = "BEARISH"
	OutlookNeutral  Outlook = "NEUTRAL"
	OutlookVolatile Outlook = "VOLATILE"
	OutlookCalm     Outlook = "CALM"
)

// StrategyFamily represents a supported multi-leg strategy family.
type StrategyFamily string

const (
	FamilyIronCondor       StrategyFamily = "IRON_CONDOR"
	FamilyPutCreditSpread  StrategyFamily = "PUT_CREDIT_SPREAD"
	FamilyCallCreditSpread StrategyFamily = "CALL_CREDIT_SPREAD"
	FamilyCoveredCall      StrategyFamily = "COVERED_CALL"
	FamilyProtectivePut    StrategyFamily = "PROTECTIVE_PUT"
	FamilyCollar           StrategyFamily = "COLLAR"
	FamilyStraddle         StrategyFamily = "STRADDLE"
	FamilyStrangle         StrategyFamily = "STRANGLE"
)

// DirectiveConstraints holds optional explicit constraints on synthesis.
// Zero values mean "not set".
type DirectiveConstraints struct {
	MinDTE          int     `json:"min_dte,omitempty" validate:"gte=0"`
	MaxDTE          int     `json:"max_dte,omitempty" validate:"gte=0"`
	MinOpenInterest int64   `json:"min_open_interest,omitempty" validate:"gte=0"`
	MaxSpreadWidth  float64 `json:"max_spread_width,omitempty" validate:"gte=0"`
}

// TradeDirective is the immutable input describing what kind of trade to
// synthesize. It is produced by an upstream intent component; this engine
// only checks that required fields are present and non-degenerate.
type TradeDirective struct {
	Symbol   string         `json:"symbol" validate:"required"`
	Outlook  Outlook        `json:"outlook" validate:"required,oneof=BULLISH BEARISH NEUTRAL VOLATILE CALM"`
	Strategy StrategyFamily `json:"strategy" validate:"required"`

	// Risk budget: absolute dollars, equity fraction, or both. At least
	// one must be positive; when both are set the smaller result wins.
	RiskBudget         float64 `json:"risk_budget,omitempty" validate:"gte=0"`
	RiskBudgetFraction float64 `json:"risk_budget_fraction,omitempty" validate:"gte=0,lte=1"`

	HorizonDays int `json:"horizon_days" validate:"gt=0"`

	Constraints DirectiveConstraints `json:"constraints,omitempty"`
}

// EffectiveRiskBudget resolves the directive's risk budget against account
// equity. Returns 0 when neither form is set.
func (d *TradeDirective) EffectiveRiskBudget(equity float64) float64 {
	abs := d.RiskBudget
	frac := 0.0
	if d.RiskBudgetFraction > 0 && equity > 0 {
		frac = d.RiskBudgetFraction * equity
	}
	switch {
	case abs > 0 && frac > 0:
		if frac < abs {
			return frac
		}
		return abs
	case frac > 0:
		return frac
	default:
		return abs
	}
}
