package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// The serialized trade and validation result are a downstream boundary;
// field names are snake_case and must stay stable.
func TestBoundaryFieldNames(t *testing.T) {
	trade := &ExecutableTrade{
		Symbol:   "SPY",
		Strategy: FamilyIronCondor,
		Legs: []Leg{{
			Role: RoleShortPut, Action: ActionSell, Instrument: InstrumentPut,
			Strike: 440, Quantity: 2, Bid: 2.50, Ask: 2.60, OpenInterest: 500,
		}},
		NetCredit:           590,
		MaxLoss:             1410,
		MaxLossPerContract:  705,
		ProbabilityOfProfit: 65,
		KillSwitches:        []KillSwitch{{Kind: KillSwitchProfitTarget, Threshold: 295}},
	}

	data, err := json.Marshal(trade)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(data)

	for _, key := range []string{
		`"symbol"`, `"strategy"`, `"legs"`, `"quantity"`,
		`"net_credit"`, `"max_loss"`, `"max_loss_per_contract"`,
		`"margin_requirement"`, `"probability_of_profit"`, `"kill_switches"`,
		`"open_interest"`, `"underlying_price"`,
	} {
		if !strings.Contains(payload, key) {
			t.Errorf("missing boundary field %s in %s", key, payload)
		}
	}

	result := &ValidationResult{
		Approved:  false,
		RiskScore: 7,
		Violations: []Violation{{
			Category: CategoryCapital, Severity: SeverityError,
			Current: 6.0, Limit: 5.0, Message: "over", Remediation: "reduce",
		}},
	}
	data, err = json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload = string(data)
	for _, key := range []string{`"approved"`, `"violations"`, `"risk_score"`, `"category"`, `"severity"`, `"remediation"`} {
		if !strings.Contains(payload, key) {
			t.Errorf("missing boundary field %s in %s", key, payload)
		}
	}
}
