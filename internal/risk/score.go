package risk

import "github.com/HanzoRazer/emo-options-bot-sub001/internal/models"

// One consolidated severity weight table. The legacy system weighted
// errors and warnings differently per category in different modules; the
// gate uses a single table so scores are comparable across categories.
var severityWeights = map[models.Severity]float64{
	models.SeverityCritical: 4,
	models.SeverityError:    3,
	models.SeverityWarning:  2,
	models.SeverityInfo:     1,
}

// greeksOverageWeight scales the total greeks-cap overage into score points.
const greeksOverageWeight = 0.2

// maxScore caps the aggregate risk score.
const maxScore = 100

// Score computes the aggregate risk score: a severity-weighted sum over
// violations plus a term proportional to how far projected greeks exposure
// breached its caps, capped at 100. Adding a violation never lowers the
// score.
func Score(violations []models.Violation, greeksOverage float64) float64 {
	score := 0.0
	for _, v := range violations {
		score += severityWeights[v.Severity]
	}
	if greeksOverage > 0 {
		score += greeksOverageWeight * greeksOverage
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
