package risk

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	errs "github.com/HanzoRazer/emo-options-bot-sub001/internal/errors"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

func newTestEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func liquidLeg(action models.LegAction, instrument models.InstrumentKind, strike float64) models.Leg {
	return models.Leg{
		Action:       action,
		Instrument:   instrument,
		Strike:       strike,
		Quantity:     1,
		Bid:          2.50,
		Ask:          2.60,
		Volume:       200,
		OpenInterest: 1000,
	}
}

// cleanTrade is a small put credit spread that passes every default check
// against cleanPortfolio.
func cleanTrade() *models.ExecutableTrade {
	return &models.ExecutableTrade{
		Symbol:   "SPY",
		Strategy: models.FamilyPutCreditSpread,
		Legs: []models.Leg{
			liquidLeg(models.ActionSell, models.InstrumentPut, 445),
			liquidLeg(models.ActionBuy, models.InstrumentPut, 440),
		},
		Quantity:          1,
		DTE:               30,
		UnderlyingPrice:   450,
		NetCredit:         80,
		MaxLoss:           420,
		Greeks:            models.Greeks{Delta: 0.14, Gamma: -0.01, Theta: 0.03, Vega: -0.06},
		MarginRequirement: 8900,
	}
}

func cleanPortfolio() *models.PortfolioSnapshot {
	return &models.PortfolioSnapshot{
		TotalEquity:   1_000_000,
		AvailableCash: 500_000,
		OpenPositions: 3,
	}
}

func TestValidate_ApprovesCleanTrade(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Validate(cleanTrade(), cleanPortfolio(), nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Approved {
		t.Fatalf("expected approval, got violations: %+v", result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("expected no violations, got %d", len(result.Violations))
	}
	if result.RiskScore != 0 {
		t.Errorf("risk score: got %.2f, want 0", result.RiskScore)
	}
}

func TestValidate_DrawdownHaltIsCritical(t *testing.T) {
	engine := newTestEngine()
	portfolio := cleanPortfolio()
	portfolio.DailyPnL = -60_000 // 6% of equity, over the 5% default

	result, err := engine.Validate(cleanTrade(), portfolio, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Approved {
		t.Error("trade must be rejected after the daily loss limit is hit")
	}
	if got := result.WorstSeverity(); got != models.SeverityCritical {
		t.Errorf("worst severity: got %s, want CRITICAL", got)
	}
	byCat := result.ByCategory()
	if len(byCat[models.CategoryDrawdown]) != 1 {
		t.Errorf("expected one drawdown violation, got %+v", byCat)
	}
}

func TestValidate_CapitalChecks(t *testing.T) {
	engine := newTestEngine()

	t.Run("per-trade cap", func(t *testing.T) {
		trade := cleanTrade()
		trade.MaxLoss = 60_000 // 6% of equity, over the 5% default
		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for per-trade capital breach")
		}
		if len(result.ByCategory()[models.CategoryCapital]) == 0 {
			t.Error("expected a CAPITAL violation")
		}
	})

	t.Run("projected portfolio cap", func(t *testing.T) {
		portfolio := cleanPortfolio()
		portfolio.CapitalAtRisk = 199_800 // +420 pushes past the 20% default
		result, err := engine.Validate(cleanTrade(), portfolio, nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for projected portfolio capital breach")
		}
	})
}

func TestValidate_PositionLimits(t *testing.T) {
	engine := newTestEngine()

	t.Run("per-position size", func(t *testing.T) {
		trade := cleanTrade()
		trade.Quantity = 26 // default cap is 25
		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for oversized position")
		}
	})

	t.Run("total open positions", func(t *testing.T) {
		portfolio := cleanPortfolio()
		portfolio.OpenPositions = 20 // at the default cap
		result, err := engine.Validate(cleanTrade(), portfolio, nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection when position slots are exhausted")
		}
	})
}

func TestValidate_GreeksBreachesWarnButScoreCanReject(t *testing.T) {
	engine := newTestEngine()

	t.Run("small breach warns without rejecting", func(t *testing.T) {
		portfolio := cleanPortfolio()
		portfolio.Greeks.Delta = 95
		trade := cleanTrade()
		trade.Greeks.Delta = 10 // projected 105 against the 100 cap

		result, err := engine.Validate(trade, portfolio, nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if !result.Approved {
			t.Errorf("warning-only breach should not reject: %+v", result.Violations)
		}
		greeks := result.ByCategory()[models.CategoryGreeks]
		if len(greeks) != 1 {
			t.Fatalf("expected one greeks violation, got %d", len(greeks))
		}
		if greeks[0].Severity != models.SeverityWarning {
			t.Errorf("severity: got %s, want WARNING", greeks[0].Severity)
		}
		// Warning weight 2 plus 0.2 x overage of 5.
		if result.RiskScore != 3 {
			t.Errorf("risk score: got %.2f, want 3", result.RiskScore)
		}
	})

	t.Run("extreme breach fails via the score ceiling", func(t *testing.T) {
		portfolio := cleanPortfolio()
		portfolio.Greeks.Delta = 300 // overage 200 plus trade delta
		result, err := engine.Validate(cleanTrade(), portfolio, nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Errorf("score %.2f should exceed the default ceiling", result.RiskScore)
		}
		if got := result.WorstSeverity(); got != models.SeverityWarning {
			t.Errorf("worst severity: got %s, want WARNING (rejection came from score)", got)
		}
	})
}

func TestValidate_Concentration(t *testing.T) {
	engine := newTestEngine()
	portfolio := cleanPortfolio()
	portfolio.TotalEquity = 500_000 // spread notional 88,500 is 17.7%

	result, err := engine.Validate(cleanTrade(), portfolio, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Approved {
		t.Error("expected rejection for single-symbol concentration")
	}
	if len(result.ByCategory()[models.CategoryConcentration]) != 1 {
		t.Errorf("expected one concentration violation, got %+v", result.Violations)
	}
}

func TestValidate_Liquidity(t *testing.T) {
	engine := newTestEngine()

	t.Run("thin volume and open interest warn", func(t *testing.T) {
		trade := cleanTrade()
		trade.Legs[0].Volume = 2
		trade.Legs[0].OpenInterest = 40

		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		liq := result.ByCategory()[models.CategoryLiquidity]
		if len(liq) != 2 {
			t.Fatalf("expected volume and OI warnings, got %+v", liq)
		}
		for _, v := range liq {
			if v.Severity != models.SeverityWarning {
				t.Errorf("severity: got %s, want WARNING", v.Severity)
			}
		}
		if !result.Approved {
			t.Error("liquidity warnings alone should not reject")
		}
	})

	t.Run("one-sided market rejects", func(t *testing.T) {
		trade := cleanTrade()
		trade.Legs[0].Bid = 0
		trade.Legs[0].Ask = 0

		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for a leg with no usable market")
		}
	})

	t.Run("wide spread rejects", func(t *testing.T) {
		trade := cleanTrade()
		trade.Legs[0].Bid = 1.00
		trade.Legs[0].Ask = 1.20 // 18% of mid against the 8% default

		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for excessive bid/ask spread")
		}
	})

	t.Run("stock legs are exempt", func(t *testing.T) {
		trade := cleanTrade()
		trade.Legs = append(trade.Legs, models.Leg{
			Action: models.ActionBuy, Instrument: models.InstrumentStock, Quantity: 100,
		})
		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(result.ByCategory()[models.CategoryLiquidity]) != 0 {
			t.Errorf("stock leg produced liquidity violations: %+v", result.Violations)
		}
	})
}

func TestValidate_EventChecks(t *testing.T) {
	engine := newTestEngine()

	t.Run("blackout symbol is critical", func(t *testing.T) {
		limits := config.Default().Limits
		limits.BlackoutSymbols = []string{"SPY"}

		result, err := engine.Validate(cleanTrade(), cleanPortfolio(), &limits)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if result.Approved {
			t.Error("expected rejection for blacked-out symbol")
		}
		if got := result.WorstSeverity(); got != models.SeverityCritical {
			t.Errorf("worst severity: got %s, want CRITICAL", got)
		}
	})

	t.Run("near expiration warns", func(t *testing.T) {
		trade := cleanTrade()
		trade.DTE = 1 // below the default minimum of 2

		result, err := engine.Validate(trade, cleanPortfolio(), nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		events := result.ByCategory()[models.CategoryEvent]
		if len(events) != 1 || events[0].Severity != models.SeverityWarning {
			t.Errorf("expected one event warning, got %+v", events)
		}
		if !result.Approved {
			t.Error("a lone DTE warning should not reject")
		}
	})
}

func TestValidate_MarginUtilization(t *testing.T) {
	engine := newTestEngine()
	portfolio := cleanPortfolio()
	portfolio.MarginUsed = 595_000 // +8,900 pushes past the 60% default

	result, err := engine.Validate(cleanTrade(), portfolio, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Approved {
		t.Error("expected rejection for margin utilization breach")
	}
	if len(result.ByCategory()[models.CategoryMargin]) != 1 {
		t.Errorf("expected one margin violation, got %+v", result.Violations)
	}
}

func TestValidate_ReportsAllViolationsTogether(t *testing.T) {
	engine := newTestEngine()

	trade := cleanTrade()
	trade.MaxLoss = 60_000
	trade.Quantity = 30
	trade.DTE = 1

	portfolio := cleanPortfolio()
	portfolio.DailyPnL = -60_000

	result, err := engine.Validate(trade, portfolio, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Approved {
		t.Error("expected rejection")
	}

	byCat := result.ByCategory()
	for _, want := range []models.ViolationCategory{
		models.CategoryCapital, models.CategoryDrawdown,
		models.CategoryPositionSize, models.CategoryEvent,
	} {
		if len(byCat[want]) == 0 {
			t.Errorf("missing %s violation; checks must not short-circuit", want)
		}
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	engine := newTestEngine()
	limits := config.Default().Limits

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				result, err := engine.Validate(cleanTrade(), cleanPortfolio(), &limits)
				if err != nil {
					done <- err
					return
				}
				if !result.Approved {
					done <- errors.New("clean trade rejected under concurrency")
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

func TestValidate_StructuralErrors(t *testing.T) {
	engine := newTestEngine()

	t.Run("nil trade", func(t *testing.T) {
		_, err := engine.Validate(nil, cleanPortfolio(), nil)
		if err == nil {
			t.Fatal("expected an error for nil trade")
		}
	})

	t.Run("nil portfolio", func(t *testing.T) {
		_, err := engine.Validate(cleanTrade(), nil, nil)
		if !errors.Is(err, errs.ErrInvalidPortfolio) {
			t.Errorf("got %v, want ErrInvalidPortfolio", err)
		}
	})

	t.Run("non-positive equity", func(t *testing.T) {
		portfolio := cleanPortfolio()
		portfolio.TotalEquity = 0
		_, err := engine.Validate(cleanTrade(), portfolio, nil)
		if !errors.Is(err, errs.ErrInvalidPortfolio) {
			t.Errorf("got %v, want ErrInvalidPortfolio", err)
		}
	})
}
