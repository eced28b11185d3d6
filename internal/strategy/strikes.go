package strategy

import (
	"math"

	errs "github.com/HanzoRazer/emo-options-bot-sub001/internal/errors"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// StrikeResult is the outcome of a strike search. Approximate is set when
// the chain carried no delta data and the median strike was used instead.
type StrikeResult struct {
	Strike      float64
	Approximate bool
}

// SelectStrike scans a strike map for the quote whose unsigned delta is
// closest to targetDelta. Exact distance ties prefer the strike closer to
// the underlying price. Quotes without delta data are skipped; if no quote
// carries a delta, the chain's median strike is returned flagged as
// approximate. Fails with ErrEmptyChain for an empty map.
func SelectStrike(quotes map[float64]models.OptionQuote, targetDelta, underlying float64) (StrikeResult, error) {
	if len(quotes) == 0 {
		return StrikeResult{}, errs.ErrEmptyChain
	}

	strikes := models.SortedStrikes(quotes)

	best := 0.0
	bestDist := math.MaxFloat64
	found := false
	for _, strike := range strikes {
		q := quotes[strike]
		if !q.HasDelta() {
			continue
		}
		dist := math.Abs(math.Abs(q.Greeks.Delta) - targetDelta)
		switch {
		case dist < bestDist:
			bestDist = dist
			best = strike
			found = true
		case dist == bestDist && found:
			if math.Abs(strike-underlying) < math.Abs(best-underlying) {
				best = strike
			}
		}
	}

	if !found {
		return StrikeResult{Strike: medianStrike(strikes), Approximate: true}, nil
	}
	return StrikeResult{Strike: best}, nil
}

// medianStrike returns the middle strike of a sorted slice (lower middle
// for even counts, so the result is always an existing strike).
func medianStrike(sorted []float64) float64 {
	return sorted[(len(sorted)-1)/2]
}

// filterByOpenInterest returns the subset of quotes meeting a minimum open
// interest. When the filter would empty the map, the original map is
// returned so selection never silently operates on nothing.
func filterByOpenInterest(quotes map[float64]models.OptionQuote, minOI int64) map[float64]models.OptionQuote {
	if minOI <= 0 {
		return quotes
	}
	filtered := make(map[float64]models.OptionQuote, len(quotes))
	for strike, q := range quotes {
		if q.OpenInterest >= minOI {
			filtered[strike] = q
		}
	}
	if len(filtered) == 0 {
		return quotes
	}
	return filtered
}

// nearestStrikeAtOrBelow returns the largest strike <= limit, or the lowest
// strike when none qualifies.
func nearestStrikeAtOrBelow(quotes map[float64]models.OptionQuote, limit float64) float64 {
	strikes := models.SortedStrikes(quotes)
	result := strikes[0]
	for _, s := range strikes {
		if s <= limit {
			result = s
		}
	}
	return result
}

// nearestStrikeAtOrAbove returns the smallest strike >= limit, or the
// highest strike when none qualifies.
func nearestStrikeAtOrAbove(quotes map[float64]models.OptionQuote, limit float64) float64 {
	strikes := models.SortedStrikes(quotes)
	result := strikes[len(strikes)-1]
	for i := len(strikes) - 1; i >= 0; i-- {
		if strikes[i] >= limit {
			result = strikes[i]
		}
	}
	return result
}
