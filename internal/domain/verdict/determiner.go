// Package verdict converts per-case outcomes and declared risk into an
// overall simulation verdict. Everything here is pure: identical inputs
// always produce identical output.
package verdict

import (
	"fmt"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// Recommendation strings surfaced to the submitter, fixed per branch.
const (
	RecommendationMerge       = "PR appears safe to merge"
	RecommendationReviewMinor = "PR is likely safe; review the failing cases before merging"
	RecommendationCaution     = "PR needs a closer look; several test cases failed"
	RecommendationFix         = "PR requires fixes before merging"
	RecommendationNoTests     = "No tests were executed; investigate before merging"
)

// Determine scores test results against the plan's declared risk level.
//
// Decision table (pass_rate = passed/total):
//
//	empty results            -> fail, high confidence
//	pass_rate == 1.0         -> pass, high confidence
//	pass_rate >= 0.8         -> pass (low risk) / conditional_pass, medium confidence
//	pass_rate >= 0.5         -> conditional_pass (low risk) / fail, medium confidence
//	otherwise                -> fail, high confidence
func Determine(results []model.TestCaseResult, riskLevel model.RiskLevel) *model.ResultDetermination {
	total := len(results)
	if total == 0 {
		return &model.ResultDetermination{
			OverallResult:  model.ResultFail,
			Confidence:     model.ConfidenceHigh,
			RiskAssessment: model.RiskHigh,
			Recommendation: RecommendationNoTests,
			Reasoning:      "No test cases were executed",
			PassRate:       0,
			AIRiskLevel:    riskLevel,
		}
	}

	passed := 0
	for _, r := range results {
		if r.Success {
			passed++
		}
	}
	failed := total - passed
	passRate := float64(passed) / float64(total)

	d := &model.ResultDetermination{
		PassRate:    passRate,
		TotalTests:  total,
		PassedTests: passed,
		FailedTests: failed,
		AIRiskLevel: riskLevel,
	}

	switch {
	case passRate == 1.0:
		d.OverallResult = model.ResultPass
		d.Confidence = model.ConfidenceHigh
		d.Reasoning = fmt.Sprintf("All %d test cases passed", total)
	case passRate >= 0.8:
		if riskLevel == model.RiskLow {
			d.OverallResult = model.ResultPass
		} else {
			d.OverallResult = model.ResultConditionalPass
		}
		d.Confidence = model.ConfidenceMedium
		d.Reasoning = fmt.Sprintf("%d of %d test cases passed (%.0f%%)", passed, total, passRate*100)
	case passRate >= 0.5:
		if riskLevel == model.RiskLow {
			d.OverallResult = model.ResultConditionalPass
		} else {
			d.OverallResult = model.ResultFail
		}
		d.Confidence = model.ConfidenceMedium
		d.Reasoning = fmt.Sprintf("%d of %d test cases passed (%.0f%%)", passed, total, passRate*100)
	default:
		d.OverallResult = model.ResultFail
		d.Confidence = model.ConfidenceHigh
		d.Reasoning = fmt.Sprintf("Only %d of %d test cases passed (%.0f%%)", passed, total, passRate*100)
	}

	d.RiskAssessment = assessRisk(riskLevel, passRate)
	d.Recommendation = recommend(d.OverallResult, passRate)
	return d
}

// assessRisk blends the plan's declared risk with the observed pass rate.
func assessRisk(riskLevel model.RiskLevel, passRate float64) model.RiskLevel {
	switch {
	case riskLevel == model.RiskHigh && passRate < 1.0:
		return model.RiskHigh
	case riskLevel == model.RiskMedium && passRate < 0.8:
		return model.RiskMedium
	case passRate >= 0.9:
		return model.RiskLow
	default:
		return model.RiskMedium
	}
}

func recommend(overall model.OverallResult, passRate float64) string {
	switch overall {
	case model.ResultPass:
		if passRate == 1.0 {
			return RecommendationMerge
		}
		return RecommendationReviewMinor
	case model.ResultConditionalPass:
		return RecommendationCaution
	default:
		return RecommendationFix
	}
}
