package models

import "time"

// LegAction represents the side of a leg.
type LegAction string

const (
	ActionBuy  LegAction = "BUY"
	ActionSell LegAction = "SELL"
)

// InstrumentKind represents the instrument a leg trades.
type InstrumentKind string

const (
	InstrumentCall  InstrumentKind = "CALL"
	InstrumentPut   InstrumentKind = "PUT"
	InstrumentStock InstrumentKind = "STOCK"
)

// LegRole names a leg's function within its strategy template.
type LegRole string

const (
	RoleShortPut    LegRole = "SHORT_PUT"
	RoleShortCall   LegRole = "SHORT_CALL"
	RoleLongPut     LegRole = "LONG_PUT"
	RoleLongCall    LegRole = "LONG_CALL"
	RolePutWing     LegRole = "PUT_WING"
	RoleCallWing    LegRole = "CALL_WING"
	RoleStock       LegRole = "STOCK"
	RoleCoveredCall LegRole = "COVERED_CALL"
)

// Leg is one option or stock position within a multi-part strategy.
// A Leg has no identity beyond its fields.
type Leg struct {
	Role       LegRole        `json:"role"`
	Action     LegAction      `json:"action"`
	Instrument InstrumentKind `json:"instrument"`
	Strike     float64        `json:"strike,omitempty"`
	Expiration time.Time      `json:"expiration,omitempty"`
	Quantity   int            `json:"quantity"`

	// Pricing and greeks copied from the matching OptionQuote at
	// synthesis time. Zero for stock legs.
	Bid          float64 `json:"bid,omitempty"`
	Ask          float64 `json:"ask,omitempty"`
	Volume       int64   `json:"volume,omitempty"`
	OpenInterest int64   `json:"open_interest,omitempty"`
	Greeks       Greeks  `json:"greeks,omitempty"`
}

// Mid returns the leg's bid/ask midpoint.
func (l Leg) Mid() float64 {
	if l.Bid > 0 && l.Ask > 0 {
		return (l.Bid + l.Ask) / 2
	}
	return l.Bid + l.Ask
}

// IsOption reports whether the leg trades an option contract.
func (l Leg) IsOption() bool {
	return l.Instrument == InstrumentCall || l.Instrument == InstrumentPut
}

// KillSwitchKind classifies a predefined exit condition.
type KillSwitchKind string

const (
	KillSwitchProfitTarget KillSwitchKind = "PROFIT_TARGET"
	KillSwitchStopLoss     KillSwitchKind = "STOP_LOSS"
	KillSwitchTimeDecay    KillSwitchKind = "TIME_DECAY"
	KillSwitchDeltaHedge   KillSwitchKind = "DELTA_REHEDGE"
)

// KillSwitch is a predefined exit rule attached to a trade.
type KillSwitch struct {
	Kind      KillSwitchKind `json:"kind"`
	Threshold float64        `json:"threshold"`
	Message   string         `json:"message"`
}

// ExecutableTrade is the fully specified output of synthesis: concrete legs,
// a uniform contract quantity, aggregate metrics and exit rules. It is
// created once per synthesis call and never edited in place; re-synthesis
// produces a new value.
type ExecutableTrade struct {
	Symbol          string         `json:"symbol"`
	Strategy        StrategyFamily `json:"strategy"`
	Outlook         Outlook        `json:"outlook"`
	Legs            []Leg          `json:"legs"`
	Quantity        int            `json:"quantity"`
	Expiration      time.Time      `json:"expiration"`
	DTE             int            `json:"dte"`
	UnderlyingPrice float64        `json:"underlying_price"`

	// Aggregate metrics. NetCredit is total dollars across all contracts;
	// positive for credit strategies, negative when net premium is paid.
	NetCredit           float64 `json:"net_credit"`
	MaxLoss             float64 `json:"max_loss"`
	MaxLossPerContract  float64 `json:"max_loss_per_contract"`
	Greeks              Greeks  `json:"greeks"`
	MarginRequirement   float64 `json:"margin_requirement"`
	ProbabilityOfProfit float64 `json:"probability_of_profit"`

	KillSwitches []KillSwitch `json:"kill_switches"`

	// Synthesis flags.
	SizingFallback     bool `json:"sizing_fallback,omitempty"`
	ApproximateStrikes bool `json:"approximate_strikes,omitempty"`
}

// IsCredit reports whether the trade collects net premium at entry.
func (t *ExecutableTrade) IsCredit() bool {
	return t.NetCredit > 0
}

// Notional returns the gross notional value of the trade: strike notional
// for option legs plus share value for stock legs.
func (t *ExecutableTrade) Notional() float64 {
	var notional float64
	for _, leg := range t.Legs {
		if leg.IsOption() {
			notional += leg.Strike * 100 * float64(leg.Quantity)
		} else {
			notional += t.UnderlyingPrice * float64(leg.Quantity)
		}
	}
	return notional
}
