package models

// ViolationCategory names the risk check a violation came from.
type ViolationCategory string

const (
	CategoryCapital       ViolationCategory = "CAPITAL"
	CategoryDrawdown      ViolationCategory = "DRAWDOWN"
	CategoryPositionSize  ViolationCategory = "POSITION_SIZE"
	CategoryGreeks        ViolationCategory = "GREEKS"
	CategoryConcentration ViolationCategory = "CONCENTRATION"
	CategoryLiquidity     ViolationCategory = "LIQUIDITY"
	CategoryEvent         ViolationCategory = "EVENT"
	CategoryMargin        ViolationCategory = "MARGIN"
)

// Severity grades how serious a violation is.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// severityRank orders severities for comparisons and score weighting.
var severityRank = map[Severity]int{
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityError:    3,
	SeverityCritical: 4,
}

// Rank returns the numeric order of the severity (info=1 .. critical=4).
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is as severe as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// Violation is one failed risk check. Violations are business-rule
// outcomes, never Go errors.
type Violation struct {
	Category    ViolationCategory `json:"category"`
	Severity    Severity          `json:"severity"`
	Current     float64           `json:"current"`
	Limit       float64           `json:"limit"`
	Message     string            `json:"message"`
	Remediation string            `json:"remediation,omitempty"`
}

// ValidationResult is the full outcome of running a trade through the risk
// gate: approval, the ordered violation list, and an aggregate score.
type ValidationResult struct {
	Approved   bool        `json:"approved"`
	Violations []Violation `json:"violations"`
	RiskScore  float64     `json:"risk_score"`
}

// WorstSeverity returns the highest severity present, or "" when clean.
func (r *ValidationResult) WorstSeverity() Severity {
	var worst Severity
	for _, v := range r.Violations {
		if v.Severity.Rank() > worst.Rank() {
			worst = v.Severity
		}
	}
	return worst
}

// ByCategory groups violations by category, preserving order within each.
func (r *ValidationResult) ByCategory() map[ViolationCategory][]Violation {
	grouped := make(map[ViolationCategory][]Violation)
	for _, v := range r.Violations {
		grouped[v.Category] = append(grouped[v.Category], v)
	}
	return grouped
}
