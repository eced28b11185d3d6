package strategy

import (
	"errors"
	"testing"

	errs "github.com/HanzoRazer/emo-options-bot-sub001/internal/errors"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

func quoteWithDelta(delta float64) models.OptionQuote {
	return models.OptionQuote{
		Bid:          1.00,
		Ask:          1.10,
		Volume:       100,
		OpenInterest: 500,
		Greeks:       models.Greeks{Delta: delta},
	}
}

func TestSelectStrike_ClosestDelta(t *testing.T) {
	puts := map[float64]models.OptionQuote{
		430: quoteWithDelta(-0.05),
		435: quoteWithDelta(-0.08),
		440: quoteWithDelta(-0.16),
		445: quoteWithDelta(-0.30),
		450: quoteWithDelta(-0.50),
	}

	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		{"sixteen delta", 0.16, 440},
		{"thirty delta", 0.30, 445},
		{"five delta", 0.05, 430},
		{"between strikes picks nearest", 0.12, 440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SelectStrike(puts, tt.target, 450)
			if err != nil {
				t.Fatalf("SelectStrike: %v", err)
			}
			if result.Strike != tt.want {
				t.Errorf("target %.2f: got strike %.0f, want %.0f", tt.target, result.Strike, tt.want)
			}
			if result.Approximate {
				t.Error("strike should not be flagged approximate when deltas are present")
			}
		})
	}
}

func TestSelectStrike_TieBreaksTowardUnderlying(t *testing.T) {
	// 440 and 460 are equidistant from a 0.20 target; 460 is closer to
	// the underlying at 455.
	quotes := map[float64]models.OptionQuote{
		440: quoteWithDelta(-0.25),
		460: quoteWithDelta(-0.15),
	}

	result, err := SelectStrike(quotes, 0.20, 455)
	if err != nil {
		t.Fatalf("SelectStrike: %v", err)
	}
	if result.Strike != 460 {
		t.Errorf("got strike %.0f, want 460 (closer to underlying)", result.Strike)
	}
}

func TestSelectStrike_MedianFallbackWithoutDeltas(t *testing.T) {
	quotes := map[float64]models.OptionQuote{
		100: {Bid: 1, Ask: 1.1},
		105: {Bid: 1, Ask: 1.1},
		110: {Bid: 1, Ask: 1.1},
		115: {Bid: 1, Ask: 1.1},
	}

	result, err := SelectStrike(quotes, 0.30, 107)
	if err != nil {
		t.Fatalf("SelectStrike: %v", err)
	}
	if !result.Approximate {
		t.Error("expected Approximate flag when no quote carries delta")
	}
	if result.Strike != 105 {
		t.Errorf("got strike %.0f, want median 105", result.Strike)
	}
}

func TestSelectStrike_EmptyChain(t *testing.T) {
	_, err := SelectStrike(map[float64]models.OptionQuote{}, 0.30, 100)
	if !errors.Is(err, errs.ErrEmptyChain) {
		t.Errorf("got %v, want ErrEmptyChain", err)
	}
}

func TestSelectStrike_Deterministic(t *testing.T) {
	quotes := map[float64]models.OptionQuote{
		430: quoteWithDelta(-0.05),
		440: quoteWithDelta(-0.16),
		445: quoteWithDelta(-0.30),
		450: quoteWithDelta(-0.50),
		455: quoteWithDelta(-0.60),
	}

	first, err := SelectStrike(quotes, 0.16, 450)
	if err != nil {
		t.Fatalf("SelectStrike: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := SelectStrike(quotes, 0.16, 450)
		if err != nil {
			t.Fatalf("SelectStrike: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: got %+v, want %+v", i, again, first)
		}
	}
}

func TestFilterByOpenInterest(t *testing.T) {
	quotes := map[float64]models.OptionQuote{
		100: {OpenInterest: 50},
		105: {OpenInterest: 500},
		110: {OpenInterest: 1000},
	}

	filtered := filterByOpenInterest(quotes, 100)
	if len(filtered) != 2 {
		t.Errorf("got %d strikes, want 2", len(filtered))
	}
	if _, ok := filtered[100]; ok {
		t.Error("strike 100 with OI 50 should be filtered out")
	}

	// A filter that would empty the map returns the original instead.
	unfiltered := filterByOpenInterest(quotes, 10000)
	if len(unfiltered) != 3 {
		t.Errorf("over-strict filter: got %d strikes, want original 3", len(unfiltered))
	}

	// Zero minimum is a no-op.
	if got := filterByOpenInterest(quotes, 0); len(got) != 3 {
		t.Errorf("zero minimum: got %d strikes, want 3", len(got))
	}
}

func TestNearestStrikeHelpers(t *testing.T) {
	quotes := map[float64]models.OptionQuote{
		100: {}, 105: {}, 110: {}, 115: {},
	}

	if got := nearestStrikeAtOrBelow(quotes, 108); got != 105 {
		t.Errorf("at-or-below 108: got %.0f, want 105", got)
	}
	if got := nearestStrikeAtOrBelow(quotes, 90); got != 100 {
		t.Errorf("at-or-below 90: got %.0f, want lowest 100", got)
	}
	if got := nearestStrikeAtOrAbove(quotes, 108); got != 110 {
		t.Errorf("at-or-above 108: got %.0f, want 110", got)
	}
	if got := nearestStrikeAtOrAbove(quotes, 200); got != 115 {
		t.Errorf("at-or-above 200: got %.0f, want highest 115", got)
	}
}
