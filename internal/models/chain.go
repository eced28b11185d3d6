package models

import (
	"sort"
	"time"
)

// OptionSide distinguishes call and put quote maps.
type OptionSide string

const (
	SideCall OptionSide = "CALL"
	SidePut  OptionSide = "PUT"
)

// Greeks represents per-contract option sensitivities. Values are taken as
// pre-computed inputs; this engine never prices.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// OptionQuote represents one tradable contract at a strike.
type OptionQuote struct {
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Last         float64 `json:"last"`
	Volume       int64   `json:"volume"`
	OpenInterest int64   `json:"open_interest"`
	Greeks       Greeks  `json:"greeks"`
}

// Mid returns the bid/ask midpoint, falling back to last when the book is
// one-sided or empty.
func (q OptionQuote) Mid() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	return q.Last
}

// HasDelta reports whether the quote carries usable delta data.
func (q OptionQuote) HasDelta() bool {
	return q.Greeks.Delta != 0
}

// OptionChainSnapshot is a read-only view of one expiration's contracts.
type OptionChainSnapshot struct {
	Expiration time.Time               `json:"expiration"`
	DTE        int                     `json:"dte"`
	Calls      map[float64]OptionQuote `json:"calls"`
	Puts       map[float64]OptionQuote `json:"puts"`
}

// Empty reports whether the snapshot holds no quotes at all.
func (s *OptionChainSnapshot) Empty() bool {
	return len(s.Calls) == 0 && len(s.Puts) == 0
}

// QuotesFor returns the strike map for the requested side.
func (s *OptionChainSnapshot) QuotesFor(side OptionSide) map[float64]OptionQuote {
	if side == SideCall {
		return s.Calls
	}
	return s.Puts
}

// ChainSet is the full market-data input for one symbol: the underlying
// price plus one snapshot per available expiration. Supplied by an external
// market-data component and never mutated here.
type ChainSet struct {
	Symbol          string                `json:"symbol"`
	UnderlyingPrice float64               `json:"underlying_price"`
	Expirations     []OptionChainSnapshot `json:"expirations"`
}

// Empty reports whether the set holds no quotes across all expirations.
func (c *ChainSet) Empty() bool {
	for i := range c.Expirations {
		if !c.Expirations[i].Empty() {
			return false
		}
	}
	return true
}

// SortedStrikes returns the strikes of a quote map in ascending order.
func SortedStrikes(quotes map[float64]OptionQuote) []float64 {
	strikes := make([]float64, 0, len(quotes))
	for k := range quotes {
		strikes = append(strikes, k)
	}
	sort.Float64s(strikes)
	return strikes
}
