// Package risk implements the hard, non-overridable risk gate: an ordered
// set of independent category checks run against every candidate trade, a
// consolidated severity-weighted risk score, and a small stress tester.
package risk

import (
	"github.com/rs/zerolog"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	errs "github.com/HanzoRazer/emo-options-bot-sub001/internal/errors"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/logging"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// Engine runs the risk gate. It holds no mutable state; a single Engine is
// safe for concurrent use with shared limits.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a risk gate engine. Pass zerolog.Nop() to disable
// logging.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Validate runs every category check against the trade and portfolio and
// returns the full result in one pass. No check short-circuits another, so
// all violations are reported together. Violations are business-rule
// outcomes: a rejected trade still returns a populated result with
// Approved=false, never an error. Errors are reserved for structurally
// invalid input (nil trade, non-positive equity).
func (e *Engine) Validate(trade *models.ExecutableTrade, portfolio *models.PortfolioSnapshot, limits *config.RiskLimits) (*models.ValidationResult, error) {
	if trade == nil {
		return nil, errs.Wrap(errs.ErrMalformedDirective, "risk gate: trade is required")
	}
	if portfolio == nil {
		return nil, errs.NewPortfolioError("portfolio", 0, "portfolio snapshot is required")
	}
	if portfolio.TotalEquity <= 0 {
		return nil, errs.NewPortfolioError("total_equity", portfolio.TotalEquity, "equity must be positive")
	}
	if limits == nil {
		defaults := config.Default().Limits
		limits = &defaults
	}

	var violations []models.Violation
	var greeksOverage float64

	violations = append(violations, e.checkCapital(trade, portfolio, limits)...)
	violations = append(violations, e.checkDrawdown(portfolio, limits)...)
	violations = append(violations, e.checkPositionLimits(trade, portfolio, limits)...)

	greeksViolations, overage := e.checkGreeks(trade, portfolio, limits)
	violations = append(violations, greeksViolations...)
	greeksOverage = overage

	violations = append(violations, e.checkConcentration(trade, portfolio, limits)...)
	violations = append(violations, e.checkLiquidity(trade, limits)...)
	violations = append(violations, e.checkEvent(trade, limits)...)
	violations = append(violations, e.checkMargin(trade, portfolio, limits)...)

	score := Score(violations, greeksOverage)

	result := &models.ValidationResult{
		Approved:   approved(violations, score, limits),
		Violations: violations,
		RiskScore:  score,
	}

	logging.LogValidation(e.logger, trade.Symbol, result.Approved, result.RiskScore, len(result.Violations))

	return result, nil
}

// approved implements the gate's approval rule: no violation at error
// severity or above, and a risk score under the configured ceiling.
func approved(violations []models.Violation, score float64, limits *config.RiskLimits) bool {
	for _, v := range violations {
		if v.Severity.AtLeast(models.SeverityError) {
			return false
		}
	}
	return score < limits.MaxOverallRiskScore
}
