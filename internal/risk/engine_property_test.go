package risk

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/HanzoRazer/emo-options-bot-sub001/internal/config"
	"github.com/HanzoRazer/emo-options-bot-sub001/internal/models"
)

var severityByIndex = []models.Severity{
	models.SeverityInfo,
	models.SeverityWarning,
	models.SeverityError,
	models.SeverityCritical,
}

func violationsFromIndexes(indexes []int) []models.Violation {
	violations := make([]models.Violation, 0, len(indexes))
	for _, idx := range indexes {
		violations = append(violations, models.Violation{
			Category: models.CategoryCapital,
			Severity: severityByIndex[idx%len(severityByIndex)],
		})
	}
	return violations
}

// Adding a violation must never lower the risk score.
func TestProperty_ScoreMonotone(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("score never decreases when a violation is added", prop.ForAll(
		func(indexes []int, extra int, overage float64) bool {
			base := violationsFromIndexes(indexes)
			baseScore := Score(base, overage)

			grown := append(base, violationsFromIndexes([]int{extra})...)
			grownScore := Score(grown, overage)

			if grownScore < baseScore {
				t.Logf("score dropped: %d violations %.2f -> %.2f", len(base), baseScore, grownScore)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.IntRange(0, 3),
		gen.Float64Range(0, 500),
	))

	properties.Property("score stays within [0, 100]", prop.ForAll(
		func(indexes []int, overage float64) bool {
			score := Score(violationsFromIndexes(indexes), overage)
			return score >= 0 && score <= 100
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.Float64Range(-100, 10000),
	))

	properties.TestingRun(t)
}

// The approval rule: any violation at error severity or above rejects, and
// a clean violation list approves exactly when the score is under the
// ceiling.
func TestProperty_ApprovalRule(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	limits := config.Default().Limits

	properties.Property("error or critical severity always rejects", prop.ForAll(
		func(indexes []int, hardIdx int) bool {
			violations := violationsFromIndexes(indexes)
			hard := models.SeverityError
			if hardIdx%2 == 1 {
				hard = models.SeverityCritical
			}
			violations = append(violations, models.Violation{
				Category: models.CategoryEvent,
				Severity: hard,
			})
			return !approved(violations, 0, &limits)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.IntRange(0, 1),
	))

	properties.Property("soft violations approve iff score is under the ceiling", prop.ForAll(
		func(indexes []int, overage float64) bool {
			violations := violationsFromIndexes(indexes)
			for i := range violations {
				if violations[i].Severity.AtLeast(models.SeverityError) {
					violations[i].Severity = models.SeverityWarning
				}
			}
			score := Score(violations, overage)
			want := score < limits.MaxOverallRiskScore
			got := approved(violations, score, &limits)
			if got != want {
				t.Logf("score=%.2f ceiling=%.2f approved=%v", score, limits.MaxOverallRiskScore, got)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.Float64Range(0, 500),
	))

	properties.TestingRun(t)
}
