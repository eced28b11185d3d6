package strategy

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	errs "github.com/HanzoRazer/emo-options-bot-sub001/internal/errors"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/logging"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// Expiration search window around the template's ideal DTE.
const (
	expirationWindowBelow = 15
	expirationWindowAbove = 30
)

// Synthesizer turns a TradeDirective plus a ChainSet into a fully
// specified ExecutableTrade. It is a pure function of its arguments:
// identical inputs always yield an identical trade, and no wall clock or
// randomness is consulted.
type Synthesizer struct {
	cfg      config.SynthesisConfig
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSynthesizer creates a synthesizer with the given tunables. Pass
// zerolog.Nop() to disable logging.
func NewSynthesizer(cfg config.SynthesisConfig, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Synthesize builds a concrete multi-leg order for the directive against
// the supplied chain. Structural failures (malformed directive, unknown
// family, empty chain, no usable expiration) return an error and no trade;
// risk-limit questions are the risk gate's job, not handled here.
func (s *Synthesizer) Synthesize(directive *models.TradeDirective, chain *models.ChainSet, limits *config.RiskLimits) (*models.ExecutableTrade, error) {
	if directive == nil {
		return nil, errs.NewDirectiveError("directive", nil, "directive is required")
	}
	if err := s.validateDirective(directive); err != nil {
		return nil, err
	}

	template, ok := TemplateFor(directive.Strategy)
	if !ok {
		return nil, errs.NewStrategyError(string(directive.Strategy))
	}

	if chain == nil || chain.Empty() {
		return nil, errs.NewChainError(directive.Symbol, "no option quotes available", errs.ErrEmptyChain)
	}

	if limits == nil {
		defaults := config.Default().Limits
		limits = &defaults
	}

	snapshot, err := s.selectExpiration(directive, chain, template)
	if err != nil {
		return nil, err
	}

	legs, approximate, err := s.buildLegs(directive, chain, snapshot, template)
	if err != nil {
		return nil, err
	}

	// Net premium per contract unit, in per-share terms: credit collected
	// minus debit paid across option legs.
	creditPerShare := 0.0
	for _, leg := range legs {
		if !leg.IsOption() {
			continue
		}
		if leg.Action == models.ActionSell {
			creditPerShare += leg.Mid()
		} else {
			creditPerShare -= leg.Mid()
		}
	}

	maxLossPerUnit := s.maxLossPerUnit(template, legs, creditPerShare)

	sizing := SizeContracts(maxLossPerUnit, directive.EffectiveRiskBudget(0), limits.MaxContracts)
	for i := range legs {
		if legs[i].Instrument == models.InstrumentStock {
			legs[i].Quantity = 100 * sizing.Contracts
		} else {
			legs[i].Quantity = sizing.Contracts
		}
	}

	qty := float64(sizing.Contracts)
	netCredit := creditPerShare * 100 * qty
	maxLoss := math.Max(maxLossPerUnit*qty, 0)

	trade := &models.ExecutableTrade{
		Symbol:              directive.Symbol,
		Strategy:            directive.Strategy,
		Outlook:             directive.Outlook,
		Legs:                legs,
		Quantity:            sizing.Contracts,
		Expiration:          snapshot.Expiration,
		DTE:                 snapshot.DTE,
		UnderlyingPrice:     chain.UnderlyingPrice,
		NetCredit:           netCredit,
		MaxLoss:             maxLoss,
		MaxLossPerContract:  math.Max(maxLossPerUnit, 0),
		Greeks:              AggregateGreeks(legs),
		ProbabilityOfProfit: s.estimatePoP(template, snapshot.DTE),
		SizingFallback:      sizing.ConservativeFallback,
		ApproximateStrikes:  approximate,
	}
	trade.MarginRequirement = s.estimateMargin(trade)
	trade.KillSwitches = s.killSwitches(trade)

	logging.LogSynthesis(s.logger, trade.Symbol, string(trade.Strategy),
		len(trade.Legs), trade.Quantity, trade.MaxLoss, trade.NetCredit)

	return trade, nil
}

// validateDirective applies structural validation; failures map to
// ErrMalformedDirective via DirectiveError.
func (s *Synthesizer) validateDirective(d *models.TradeDirective) error {
	if err := s.validate.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errs.NewDirectiveError(fe.Field(), fe.Value(),
				fmt.Sprintf("failed %q constraint", fe.Tag()))
		}
		return errs.NewDirectiveError("directive", nil, err.Error())
	}
	if d.RiskBudget <= 0 && d.RiskBudgetFraction <= 0 {
		return errs.NewDirectiveError("risk_budget", d.RiskBudget,
			"either an absolute or fractional risk budget is required")
	}
	if d.Constraints.MinDTE > 0 && d.Constraints.MaxDTE > 0 && d.Constraints.MinDTE > d.Constraints.MaxDTE {
		return errs.NewDirectiveError("constraints", d.Constraints, "min_dte exceeds max_dte")
	}
	return nil
}

// selectExpiration picks the chain entry whose DTE is closest to the
// template's ideal (the horizon clamped into the template band), preferring
// entries inside [ideal-15, ideal+30]. Entries outside the directive's
// explicit DTE constraints or without quotes are ineligible. Falls back to
// the numerically closest eligible entry rather than silently picking an
// empty chain.
func (s *Synthesizer) selectExpiration(d *models.TradeDirective, chain *models.ChainSet, t *StrategyTemplate) (*models.OptionChainSnapshot, error) {
	ideal := t.IdealDTE(d.HorizonDays)

	var best, bestInWindow *models.OptionChainSnapshot
	bestDist, bestInWindowDist := math.MaxInt32, math.MaxInt32

	for i := range chain.Expirations {
		snap := &chain.Expirations[i]
		if snap.Empty() {
			continue
		}
		if d.Constraints.MinDTE > 0 && snap.DTE < d.Constraints.MinDTE {
			continue
		}
		if d.Constraints.MaxDTE > 0 && snap.DTE > d.Constraints.MaxDTE {
			continue
		}

		dist := snap.DTE - ideal
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = snap
		}
		if snap.DTE >= ideal-expirationWindowBelow && snap.DTE <= ideal+expirationWindowAbove && dist < bestInWindowDist {
			bestInWindowDist = dist
			bestInWindow = snap
		}
	}

	if bestInWindow != nil {
		return bestInWindow, nil
	}
	if best != nil {
		return best, nil
	}
	return nil, errs.NewChainError(d.Symbol,
		fmt.Sprintf("no usable expiration near %d DTE", ideal), errs.ErrNoExpirationInRange)
}

// buildLegs constructs the template's legs against the selected snapshot:
// delta-targeted strikes for short legs, wing fix-up against the anchor, and
// pricing/greeks copied from the matching quote. Quantities are set later.
func (s *Synthesizer) buildLegs(d *models.TradeDirective, chain *models.ChainSet, snap *models.OptionChainSnapshot, t *StrategyTemplate) ([]models.Leg, bool, error) {
	legs := make([]models.Leg, len(t.Legs))
	strikes := make(map[models.LegRole]float64, len(t.Legs))
	approximate := false

	// Anchor legs first so wings can reference their strikes.
	for pass := 0; pass < 2; pass++ {
		for i, bp := range t.Legs {
			if (pass == 0) == bp.Wing {
				continue
			}

			if bp.Instrument == models.InstrumentStock {
				legs[i] = models.Leg{
					Role:       bp.Role,
					Action:     bp.Action,
					Instrument: models.InstrumentStock,
					Expiration: snap.Expiration,
				}
				continue
			}

			side := models.SideCall
			if bp.Instrument == models.InstrumentPut {
				side = models.SidePut
			}
			quotes := filterByOpenInterest(snap.QuotesFor(side), d.Constraints.MinOpenInterest)
			if len(quotes) == 0 {
				return nil, false, errs.NewChainError(d.Symbol,
					fmt.Sprintf("no %s quotes at %d DTE", side, snap.DTE), errs.ErrEmptyChain)
			}

			target := s.adjustedDelta(bp, d.Outlook)
			result, err := SelectStrike(quotes, target, chain.UnderlyingPrice)
			if err != nil {
				return nil, false, errs.NewChainError(d.Symbol, "strike selection failed", err)
			}
			strike := result.Strike
			approximate = approximate || result.Approximate

			if bp.Wing {
				strike = s.fixWing(bp, t, d, quotes, strikes[bp.AnchorRole], strike)
			}

			q := quotes[strike]
			legs[i] = models.Leg{
				Role:         bp.Role,
				Action:       bp.Action,
				Instrument:   bp.Instrument,
				Strike:       strike,
				Expiration:   snap.Expiration,
				Bid:          q.Bid,
				Ask:          q.Ask,
				Volume:       q.Volume,
				OpenInterest: q.OpenInterest,
				Greeks:       q.Greeks,
			}
			strikes[bp.Role] = strike
		}
	}

	return legs, approximate, nil
}

// adjustedDelta applies the outlook shift: bullish outlooks move put-side
// short strikes further out-of-the-money, bearish outlooks do the symmetric
// adjustment for call-side legs.
func (s *Synthesizer) adjustedDelta(bp LegBlueprint, outlook models.Outlook) float64 {
	if bp.Action != models.ActionSell {
		return bp.TargetDelta
	}
	switch {
	case outlook == models.OutlookBullish && bp.Instrument == models.InstrumentPut:
		return bp.TargetDelta * s.cfg.OutlookShiftMultiplier
	case outlook == models.OutlookBearish && bp.Instrument == models.InstrumentCall:
		return bp.TargetDelta * s.cfg.OutlookShiftMultiplier
	}
	return bp.TargetDelta
}

// fixWing keeps a protective wing on the correct side of its anchor and
// inside the directive's max spread width. When delta selection lands on
// the wrong side, the wing falls back to the template's default width.
func (s *Synthesizer) fixWing(bp LegBlueprint, t *StrategyTemplate, d *models.TradeDirective, quotes map[float64]models.OptionQuote, anchor, selected float64) float64 {
	width := t.WingWidth
	if d.Constraints.MaxSpreadWidth > 0 && d.Constraints.MaxSpreadWidth < width {
		width = d.Constraints.MaxSpreadWidth
	}

	if bp.Instrument == models.InstrumentPut {
		if selected >= anchor {
			selected = nearestStrikeAtOrBelow(quotes, anchor-width)
		}
		if d.Constraints.MaxSpreadWidth > 0 && anchor-selected > d.Constraints.MaxSpreadWidth {
			selected = nearestStrikeAtOrAbove(quotes, anchor-d.Constraints.MaxSpreadWidth)
		}
		return selected
	}

	if selected <= anchor {
		selected = nearestStrikeAtOrAbove(quotes, anchor+width)
	}
	if d.Constraints.MaxSpreadWidth > 0 && selected-anchor > d.Constraints.MaxSpreadWidth {
		selected = nearestStrikeAtOrBelow(quotes, anchor+d.Constraints.MaxSpreadWidth)
	}
	return selected
}

// maxLossPerUnit computes the defined risk of one contract unit: spread
// width x 100 minus credit for credit families, premium paid x 100 for
// debit families. Credit families without a protective wing (covered call)
// have no defined width and resolve to a non-positive value, which the
// sizer treats as the conservative fallback.
func (s *Synthesizer) maxLossPerUnit(t *StrategyTemplate, legs []models.Leg, creditPerShare float64) float64 {
	if !t.Credit {
		return -creditPerShare * 100
	}
	width := maxSpreadWidth(legs)
	return width*100 - creditPerShare*100
}

// maxSpreadWidth returns the widest short-to-wing distance among option
// pairs of the same instrument.
func maxSpreadWidth(legs []models.Leg) float64 {
	var width float64
	for _, short := range legs {
		if !short.IsOption() || short.Action != models.ActionSell {
			continue
		}
		for _, long := range legs {
			if !long.IsOption() || long.Action != models.ActionBuy || long.Instrument != short.Instrument {
				continue
			}
			w := math.Abs(short.Strike - long.Strike)
			if w > width {
				width = w
			}
		}
	}
	return width
}

// estimatePoP is a documented heuristic, not a pricing model: base 50%,
// shifted by strategy family and again at extreme DTE, clamped to [5, 95].
func (s *Synthesizer) estimatePoP(t *StrategyTemplate, dte int) float64 {
	pop := 50.0 + t.PoPAdjust
	switch {
	case dte < 10:
		pop -= 10
	case dte > 60:
		pop += 10
	}
	return math.Min(math.Max(pop, 5), 95)
}

// estimateMargin approximates the broker margin requirement as a fixed
// fraction of short-leg strike notional, floored at the premium paid for
// debit trades.
func (s *Synthesizer) estimateMargin(trade *models.ExecutableTrade) float64 {
	var shortNotional float64
	for _, leg := range trade.Legs {
		if leg.IsOption() && leg.Action == models.ActionSell {
			shortNotional += leg.Strike * 100 * float64(leg.Quantity)
		}
	}
	margin := s.cfg.MarginRate * shortNotional
	if trade.NetCredit < 0 && -trade.NetCredit > margin {
		margin = -trade.NetCredit
	}
	return margin
}

// killSwitches generates the trade's predefined exit rules.
func (s *Synthesizer) killSwitches(trade *models.ExecutableTrade) []models.KillSwitch {
	var switches []models.KillSwitch

	if trade.NetCredit > 0 {
		target := trade.NetCredit * s.cfg.ProfitTargetPct
		switches = append(switches, models.KillSwitch{
			Kind:      models.KillSwitchProfitTarget,
			Threshold: target,
			Message:   fmt.Sprintf("close when %.0f%% of credit is captured ($%.2f)", s.cfg.ProfitTargetPct*100, target),
		})
	}

	if trade.MaxLoss > 0 {
		stop := trade.MaxLoss * s.cfg.StopLossPct
		switches = append(switches, models.KillSwitch{
			Kind:      models.KillSwitchStopLoss,
			Threshold: stop,
			Message:   fmt.Sprintf("exit when loss reaches %.0f%% of max loss ($%.2f)", s.cfg.StopLossPct*100, stop),
		})
	}

	switches = append(switches, models.KillSwitch{
		Kind:      models.KillSwitchTimeDecay,
		Threshold: float64(s.cfg.ReviewDTE),
		Message:   fmt.Sprintf("forced review at %d days to expiration", s.cfg.ReviewDTE),
	})

	if trade.Greeks.Delta != 0 {
		threshold := math.Abs(trade.Greeks.Delta) * s.cfg.DeltaRehedgeMultiple
		switches = append(switches, models.KillSwitch{
			Kind:      models.KillSwitchDeltaHedge,
			Threshold: threshold,
			Message:   fmt.Sprintf("rehedge when net delta exceeds %.2f (%.0fx entry)", threshold, s.cfg.DeltaRehedgeMultiple),
		})
	}

	return switches
}
