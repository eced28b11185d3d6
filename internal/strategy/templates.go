// Package strategy implements option trade synthesis: strategy templates,
// delta-targeted strike selection, budget-constrained sizing, and greeks
// aggregation.
package strategy

import (
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

// LegBlueprint describes one leg of a strategy template.
type LegBlueprint struct {
	Role       models.LegRole
	Action     models.LegAction
	Instrument models.InstrumentKind

	// TargetDelta is the unsigned delta the strike selector aims for.
	// Zero for stock legs.
	TargetDelta float64

	// Wing marks a protective long leg anchored to a short leg of the
	// same instrument; when delta selection lands on the wrong side of
	// the anchor, the wing falls back to the template's wing width.
	Wing       bool
	AnchorRole models.LegRole
}

// StrategyTemplate is the static blueprint for a strategy family: leg
// roles, target deltas, wing width default, and the acceptable DTE band.
// One instance exists per family; templates are never mutated at runtime.
type StrategyTemplate struct {
	Family models.StrategyFamily
	Legs   []LegBlueprint

	WingWidth float64
	MinDTE    int
	MaxDTE    int

	// Credit marks premium-collecting families; the rest are debit.
	Credit bool

	// PoPAdjust is the family's adjustment to the base 50% probability
	// of profit heuristic.
	PoPAdjust float64
}

// IdealDTE clamps the directive horizon into the template's DTE band.
func (t *StrategyTemplate) IdealDTE(horizonDays int) int {
	if horizonDays < t.MinDTE {
		return t.MinDTE
	}
	if horizonDays > t.MaxDTE {
		return t.MaxDTE
	}
	return horizonDays
}

// catalog holds the static template per strategy family. Strategy-specific
// behavior dispatches through this table rather than per-family branches.
var catalog = map[models.StrategyFamily]*StrategyTemplate{
	models.FamilyIronCondor: {
		Family: models.FamilyIronCondor,
		Legs: []LegBlueprint{
			{Role: models.RoleShortPut, Action: models.ActionSell, Instrument: models.InstrumentPut, TargetDelta: 0.16},
			{Role: models.RolePutWing, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.05, Wing: true, AnchorRole: models.RoleShortPut},
			{Role: models.RoleShortCall, Action: models.ActionSell, Instrument: models.InstrumentCall, TargetDelta: 0.16},
			{Role: models.RoleCallWing, Action: models.ActionBuy, Instrument: models.InstrumentCall, TargetDelta: 0.05, Wing: true, AnchorRole: models.RoleShortCall},
		},
		WingWidth: 5,
		MinDTE:    25,
		MaxDTE:    50,
		Credit:    true,
		PoPAdjust: 15,
	},
	models.FamilyPutCreditSpread: {
		Family: models.FamilyPutCreditSpread,
		Legs: []LegBlueprint{
			{Role: models.RoleShortPut, Action: models.ActionSell, Instrument: models.InstrumentPut, TargetDelta: 0.30},
			{Role: models.RolePutWing, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.15, Wing: true, AnchorRole: models.RoleShortPut},
		},
		WingWidth: 5,
		MinDTE:    20,
		MaxDTE:    45,
		Credit:    true,
		PoPAdjust: 15,
	},
	models.FamilyCallCreditSpread: {
		Family: models.FamilyCallCreditSpread,
		Legs: []LegBlueprint{
			{Role: models.RoleShortCall, Action: models.ActionSell, Instrument: models.InstrumentCall, TargetDelta: 0.30},
			{Role: models.RoleCallWing, Action: models.ActionBuy, Instrument: models.InstrumentCall, TargetDelta: 0.15, Wing: true, AnchorRole: models.RoleShortCall},
		},
		WingWidth: 5,
		MinDTE:    20,
		MaxDTE:    45,
		Credit:    true,
		PoPAdjust: 15,
	},
	models.FamilyCoveredCall: {
		Family: models.FamilyCoveredCall,
		Legs: []LegBlueprint{
			{Role: models.RoleStock, Action: models.ActionBuy, Instrument: models.InstrumentStock},
			{Role: models.RoleCoveredCall, Action: models.ActionSell, Instrument: models.InstrumentCall, TargetDelta: 0.30},
		},
		MinDTE:    20,
		MaxDTE:    45,
		Credit:    true,
		PoPAdjust: 15,
	},
	models.FamilyProtectivePut: {
		Family: models.FamilyProtectivePut,
		Legs: []LegBlueprint{
			{Role: models.RoleStock, Action: models.ActionBuy, Instrument: models.InstrumentStock},
			{Role: models.RoleLongPut, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.30},
		},
		MinDTE:    30,
		MaxDTE:    60,
		PoPAdjust: 0,
	},
	models.FamilyCollar: {
		Family: models.FamilyCollar,
		Legs: []LegBlueprint{
			{Role: models.RoleStock, Action: models.ActionBuy, Instrument: models.InstrumentStock},
			{Role: models.RoleLongPut, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.25},
			{Role: models.RoleShortCall, Action: models.ActionSell, Instrument: models.InstrumentCall, TargetDelta: 0.25},
		},
		MinDTE:    30,
		MaxDTE:    60,
		PoPAdjust: 0,
	},
	models.FamilyStraddle: {
		Family: models.FamilyStraddle,
		Legs: []LegBlueprint{
			{Role: models.RoleLongCall, Action: models.ActionBuy, Instrument: models.InstrumentCall, TargetDelta: 0.50},
			{Role: models.RoleLongPut, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.50},
		},
		MinDTE:    20,
		MaxDTE:    40,
		PoPAdjust: -15,
	},
	models.FamilyStrangle: {
		Family: models.FamilyStrangle,
		Legs: []LegBlueprint{
			{Role: models.RoleLongCall, Action: models.ActionBuy, Instrument: models.InstrumentCall, TargetDelta: 0.30},
			{Role: models.RoleLongPut, Action: models.ActionBuy, Instrument: models.InstrumentPut, TargetDelta: 0.30},
		},
		MinDTE:    20,
		MaxDTE:    45,
		PoPAdjust: -15,
	},
}

// TemplateFor returns the static template for a strategy family.
func TemplateFor(family models.StrategyFamily) (*StrategyTemplate, bool) {
	t, ok := catalog[family]
	return t, ok
}

// SupportedFamilies returns all families the catalog knows, in stable order.
func SupportedFamilies() []models.StrategyFamily {
	return []models.StrategyFamily{
		models.FamilyIronCondor,
		models.FamilyPutCreditSpread,
		models.FamilyCallCreditSpread,
		models.FamilyCoveredCall,
		models.FamilyProtectivePut,
		models.FamilyCollar,
		models.FamilyStraddle,
		models.FamilyStrangle,
	}
}
