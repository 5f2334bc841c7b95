package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

func pass(id string) model.TestCaseResult {
	return model.TestCaseResult{CaseID: id, Success: true}
}

func fail(id, errMsg string) model.TestCaseResult {
	return model.TestCaseResult{CaseID: id, Success: false, Error: errMsg}
}

func TestDetermineAllPass(t *testing.T) {
	results := []model.TestCaseResult{pass("test_001"), pass("test_002")}

	for _, risk := range []model.RiskLevel{model.RiskLow, model.RiskMedium, model.RiskHigh} {
		t.Run(string(risk), func(t *testing.T) {
			d := Determine(results, risk)

			assert.Equal(t, model.ResultPass, d.OverallResult)
			assert.Equal(t, model.ConfidenceHigh, d.Confidence)
			assert.InDelta(t, 1.0, d.PassRate, 0)
			assert.Equal(t, 2, d.PassedTests)
			assert.Equal(t, 0, d.FailedTests)
			assert.Contains(t, d.Reasoning, "All 2 test cases passed")
			assert.Equal(t, RecommendationMerge, d.Recommendation)
			assert.Equal(t, risk, d.AIRiskLevel)
		})
	}
}

func TestDetermineMixedHighRisk(t *testing.T) {
	results := []model.TestCaseResult{pass("test_001"), fail("test_002", "Failed")}

	d := Determine(results, model.RiskHigh)

	assert.Equal(t, model.ResultFail, d.OverallResult)
	assert.InDelta(t, 0.5, d.PassRate, 0)
	assert.Equal(t, model.RiskHigh, d.RiskAssessment)
	assert.Equal(t, model.RiskHigh, d.AIRiskLevel)
	assert.Equal(t, RecommendationFix, d.Recommendation)
}

func TestDetermineConditionalPassLowRisk(t *testing.T) {
	results := []model.TestCaseResult{
		pass("test_001"), pass("test_002"), pass("test_003"), fail("test_004", "Minor failure"),
	}

	d := Determine(results, model.RiskLow)

	assert.Equal(t, model.ResultConditionalPass, d.OverallResult)
	assert.InDelta(t, 0.75, d.PassRate, 0)
	assert.Equal(t, 3, d.PassedTests)
	assert.Equal(t, 1, d.FailedTests)
	assert.Equal(t, model.ConfidenceMedium, d.Confidence)
}

func TestDetermineEmptyResults(t *testing.T) {
	d := Determine(nil, model.RiskMedium)

	assert.Equal(t, model.ResultFail, d.OverallResult)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
	assert.Equal(t, model.RiskHigh, d.RiskAssessment)
	assert.Contains(t, d.Reasoning, "No test cases were executed")
	assert.Equal(t, RecommendationNoTests, d.Recommendation)
}

func TestDetermineHighPassRateBands(t *testing.T) {
	// 4 of 5 passed: pass_rate 0.8.
	results := []model.TestCaseResult{
		pass("a"), pass("b"), pass("c"), pass("d"), fail("e", "boom"),
	}

	t.Run("low risk passes", func(t *testing.T) {
		d := Determine(results, model.RiskLow)
		assert.Equal(t, model.ResultPass, d.OverallResult)
		assert.Equal(t, model.ConfidenceMedium, d.Confidence)
		assert.Equal(t, RecommendationReviewMinor, d.Recommendation)
	})

	t.Run("medium risk downgrades to conditional", func(t *testing.T) {
		d := Determine(results, model.RiskMedium)
		assert.Equal(t, model.ResultConditionalPass, d.OverallResult)
	})
}

func TestDetermineLowPassRate(t *testing.T) {
	results := []model.TestCaseResult{pass("a"), fail("b", "x"), fail("c", "y")}

	d := Determine(results, model.RiskLow)

	assert.Equal(t, model.ResultFail, d.OverallResult)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
	assert.InDelta(t, 1.0/3.0, d.PassRate, 1e-9)
}

func TestDetermineRiskAssessmentLadder(t *testing.T) {
	tests := []struct {
		name     string
		results  []model.TestCaseResult
		risk     model.RiskLevel
		expected model.RiskLevel
	}{
		{"high risk with any failure", []model.TestCaseResult{pass("a"), fail("b", "x")}, model.RiskHigh, model.RiskHigh},
		{"high risk all pass is low", []model.TestCaseResult{pass("a"), pass("b")}, model.RiskHigh, model.RiskLow},
		{"medium risk under 0.8", []model.TestCaseResult{pass("a"), fail("b", "x")}, model.RiskMedium, model.RiskMedium},
		{"low risk high pass rate", []model.TestCaseResult{pass("a"), pass("b")}, model.RiskLow, model.RiskLow},
		{"low risk middling pass rate", []model.TestCaseResult{pass("a"), fail("b", "x")}, model.RiskLow, model.RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Determine(tt.results, tt.risk)
			assert.Equal(t, tt.expected, d.RiskAssessment)
		})
	}
}

func TestDeterminePurity(t *testing.T) {
	results := []model.TestCaseResult{pass("test_001"), fail("test_002", "Failed")}

	first := Determine(results, model.RiskHigh)
	second := Determine(results, model.RiskHigh)

	require.Equal(t, first, second)
}
