package risk

import (
	"fmt"
	"math"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// checkCapital enforces the per-trade and projected portfolio capital caps.
func (e *Engine) checkCapital(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) []models.Violation {
	var violations []models.Violation
	equity := portfolio.TotalEquity

	tradePct := trade.MaxLoss / equity * 100
	if tradePct > limits.MaxCapitalAtRiskPerTradePct {
		violations = append(violations, models.Violation{
			Category: models.CategoryCapital,
			Severity: models.SeverityError,
			Current:  tradePct,
			Limit:    limits.MaxCapitalAtRiskPerTradePct,
			Message: fmt.Sprintf("trade risks %.1f%% of equity (max %.1f%%)",
				tradePct, limits.MaxCapitalAtRiskPerTradePct),
			Remediation: "reduce contract quantity or choose a narrower spread",
		})
	}

	projectedPct := (portfolio.CapitalAtRisk + trade.MaxLoss) / equity * 100
	if projectedPct > limits.MaxCapitalAtRiskPortfolioPct {
		violations = append(violations, models.Violation{
			Category: models.CategoryCapital,
			Severity: models.SeverityError,
			Current:  projectedPct,
			Limit:    limits.MaxCapitalAtRiskPortfolioPct,
			Message: fmt.Sprintf("portfolio capital at risk would reach %.1f%% (max %.1f%%)",
				projectedPct, limits.MaxCapitalAtRiskPortfolioPct),
			Remediation: "close existing positions before adding new risk",
		})
	}

	return violations
}

// checkDrawdown enforces the daily loss limit. A breach is critical and
// blocks every trade for the day regardless of trade content.
func (e *Engine) checkDrawdown(portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) []models.Violation {
	if portfolio.DailyPnL >= 0 {
		return nil
	}
	lossPct := -portfolio.DailyPnL / portfolio.TotalEquity * 100
	if lossPct < limits.MaxDailyLossPct {
		return nil
	}
	return []models.Violation{{
		Category: models.CategoryDrawdown,
		Severity: models.SeverityCritical,
		Current:  lossPct,
		Limit:    limits.MaxDailyLossPct,
		Message: fmt.Sprintf("daily loss at %.1f%% of equity (limit %.1f%%)",
			lossPct, limits.MaxDailyLossPct),
		Remediation: "halt trading for the remainder of the session",
	}}
}

// checkPositionLimits enforces per-trade size and total open position caps.
func (e *Engine) checkPositionLimits(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) []models.Violation {
	var violations []models.Violation

	if trade.Quantity > limits.MaxSinglePositionSize {
		violations = append(violations, models.Violation{
			Category: models.CategoryPositionSize,
			Severity: models.SeverityError,
			Current:  float64(trade.Quantity),
			Limit:    float64(limits.MaxSinglePositionSize),
			Message: fmt.Sprintf("requested %d contracts (max %d per position)",
				trade.Quantity, limits.MaxSinglePositionSize),
			Remediation: "reduce contract quantity",
		})
	}

	if portfolio.OpenPositions >= limits.MaxTotalPositions {
		violations = append(violations, models.Violation{
			Category: models.CategoryPositionSize,
			Severity: models.SeverityError,
			Current:  float64(portfolio.OpenPositions),
			Limit:    float64(limits.MaxTotalPositions),
			Message: fmt.Sprintf("%d positions already open (max %d)",
				portfolio.OpenPositions, limits.MaxTotalPositions),
			Remediation: "close an existing position first",
		})
	}

	return violations
}

// checkGreeks compares projected portfolio exposure (existing + trade)
// against each configured cap independently. Breaches grade as warnings;
// the returned overage feeds the risk score so extreme breaches still fail
// the gate via the score ceiling.
func (e *Engine) checkGreeks(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) ([]models.Violation, float64) {
	type greekCap struct {
		name      string
		projected float64
		limit     float64
	}

	caps := []greekCap{
		{"delta", portfolio.Greeks.Delta + trade.Greeks.Delta, limits.MaxPortfolioDelta},
		{"gamma", portfolio.Greeks.Gamma + trade.Greeks.Gamma, limits.MaxPortfolioGamma},
		{"theta", portfolio.Greeks.Theta + trade.Greeks.Theta, limits.MaxPortfolioTheta},
		{"vega", portfolio.Greeks.Vega + trade.Greeks.Vega, limits.MaxPortfolioVega},
	}

	var violations []models.Violation
	var overage float64

	for _, c := range caps {
		if c.limit <= 0 {
			continue
		}
		exposure := math.Abs(c.projected)
		if exposure <= c.limit {
			continue
		}
		overage += exposure - c.limit
		violations = append(violations, models.Violation{
			Category: models.CategoryGreeks,
			Severity: models.SeverityWarning,
			Current:  exposure,
			Limit:    c.limit,
			Message: fmt.Sprintf("projected portfolio %s %.2f exceeds cap %.2f",
				c.name, exposure, c.limit),
			Remediation: fmt.Sprintf("hedge %s exposure before entry", c.name),
		})
	}

	return violations, overage
}

// checkConcentration enforces the single-symbol allocation cap on the
// trade's gross notional.
func (e *Engine) checkConcentration(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) []models.Violation {
	allocationPct := trade.Notional() / portfolio.TotalEquity * 100
	if allocationPct <= limits.MaxSingleSymbolAllocationPct {
		return nil
	}
	return []models.Violation{{
		Category: models.CategoryConcentration,
		Severity: models.SeverityError,
		Current:  allocationPct,
		Limit:    limits.MaxSingleSymbolAllocationPct,
		Message: fmt.Sprintf("%s notional is %.1f%% of equity (max %.1f%%)",
			trade.Symbol, allocationPct, limits.MaxSingleSymbolAllocationPct),
		Remediation: "reduce contract quantity or diversify across symbols",
	}}
}

// checkLiquidity enforces per-leg volume, open interest and bid/ask spread
// minimums on every option leg.
func (e *Engine) checkLiquidity(trade *models.ExecutableTrade, limits *config.RiskLimits) []models.Violation {
	var violations []models.Violation

	for _, leg := range trade.Legs {
		if !leg.IsOption() {
			continue
		}

		if leg.Volume < limits.MinVolume {
			violations = append(violations, models.Violation{
				Category: models.CategoryLiquidity,
				Severity: models.SeverityWarning,
				Current:  float64(leg.Volume),
				Limit:    float64(limits.MinVolume),
				Message: fmt.Sprintf("%s %.0f volume %d below minimum %d",
					leg.Instrument, leg.Strike, leg.Volume, limits.MinVolume),
				Remediation: "prefer strikes with active volume",
			})
		}

		if leg.OpenInterest < limits.MinOpenInterest {
			violations = append(violations, models.Violation{
				Category: models.CategoryLiquidity,
				Severity: models.SeverityWarning,
				Current:  float64(leg.OpenInterest),
				Limit:    float64(limits.MinOpenInterest),
				Message: fmt.Sprintf("%s %.0f open interest %d below minimum %d",
					leg.Instrument, leg.Strike, leg.OpenInterest, limits.MinOpenInterest),
				Remediation: "prefer strikes with established open interest",
			})
		}

		mid := leg.Mid()
		if mid <= 0 {
			violations = append(violations, models.Violation{
				Category:    models.CategoryLiquidity,
				Severity:    models.SeverityError,
				Current:     0,
				Limit:       limits.MaxBidAskSpreadPct,
				Message:     fmt.Sprintf("%s %.0f has no usable market", leg.Instrument, leg.Strike),
				Remediation: "skip strikes without a two-sided market",
			})
			continue
		}
		spreadPct := (leg.Ask - leg.Bid) / mid * 100
		if spreadPct > limits.MaxBidAskSpreadPct {
			violations = append(violations, models.Violation{
				Category: models.CategoryLiquidity,
				Severity: models.SeverityError,
				Current:  spreadPct,
				Limit:    limits.MaxBidAskSpreadPct,
				Message: fmt.Sprintf("%s %.0f bid/ask spread %.1f%% of mid exceeds %.1f%%",
					leg.Instrument, leg.Strike, spreadPct, limits.MaxBidAskSpreadPct),
				Remediation: "use limit orders or pick tighter markets",
			})
		}
	}

	return violations
}

// checkEvent enforces the blackout symbol set and the minimum distance to
// expiration.
func (e *Engine) checkEvent(trade *models.ExecutableTrade, limits *config.RiskLimits) []models.Violation {
	var violations []models.Violation

	if limits.IsBlackedOut(trade.Symbol) {
		violations = append(violations, models.Violation{
			Category:    models.CategoryEvent,
			Severity:    models.SeverityCritical,
			Current:     1,
			Limit:       0,
			Message:     fmt.Sprintf("%s is in the event blackout set", trade.Symbol),
			Remediation: "wait until the blackout window passes",
		})
	}

	if trade.DTE < limits.MinDaysToExpiry {
		violations = append(violations, models.Violation{
			Category: models.CategoryEvent,
			Severity: models.SeverityWarning,
			Current:  float64(trade.DTE),
			Limit:    float64(limits.MinDaysToExpiry),
			Message: fmt.Sprintf("%d days to expiration below minimum %d",
				trade.DTE, limits.MinDaysToExpiry),
			Remediation: "roll to a later expiration",
		})
	}

	return violations
}

// checkMargin enforces the projected margin utilization cap.
func (e *Engine) checkMargin(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) []models.Violation {
	projectedPct := (portfolio.MarginUsed + trade.MarginRequirement) / portfolio.TotalEquity * 100
	if projectedPct <= limits.MaxMarginUtilizationPct {
		return nil
	}
	return []models.Violation{{
		Category: models.CategoryMargin,
		Severity: models.SeverityError,
		Current:  projectedPct,
		Limit:    limits.MaxMarginUtilizationPct,
		Message: fmt.Sprintf("margin utilization would reach %.1f%% (max %.1f%%)",
			projectedPct, limits.MaxMarginUtilizationPct),
		Remediation: "free margin or reduce position size",
	}}
}
