package model

import "time"

// TestCaseResult is the outcome of executing a single test case.
type TestCaseResult struct {
	CaseID          string  `json:"case_id"`
	Success         bool    `json:"success"`
	Error           string  `json:"error,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ExecutionResult aggregates the outcome of running a whole test plan.
type ExecutionResult struct {
	Success         bool             `json:"success"`
	Summary         string           `json:"summary"`
	Logs            []string         `json:"logs"`
	TestResults     []TestCaseResult `json:"test_results"`
	DurationSeconds float64          `json:"duration_seconds"`
	PassedCount     int              `json:"passed_count"`
	FailedCount     int              `json:"failed_count"`
}

// OverallResult is the final verdict for a simulation.
type OverallResult string

// Verdicts in descending order of goodness.
const (
	ResultPass            OverallResult = "pass"
	ResultConditionalPass OverallResult = "conditional_pass"
	ResultFail            OverallResult = "fail"
)

// Confidence expresses how sure the determiner is about its verdict.
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ResultDetermination is the deterministic scoring of per-case outcomes
// against the plan's declared risk.
type ResultDetermination struct {
	OverallResult  OverallResult `json:"overall_result"`
	Confidence     Confidence    `json:"confidence"`
	RiskAssessment RiskLevel     `json:"risk_assessment"`
	Recommendation string        `json:"recommendation"`
	Reasoning      string        `json:"reasoning"`
	PassRate       float64       `json:"pass_rate"`
	TotalTests     int           `json:"total_tests"`
	PassedTests    int           `json:"passed_tests"`
	FailedTests    int           `json:"failed_tests"`
	AIRiskLevel    RiskLevel     `json:"ai_risk_level"`
}

// SimulationReport is the terminal artifact attached to a completed or failed
// job record.
type SimulationReport struct {
	Result              string               `json:"result"`
	Summary             string               `json:"summary"`
	ExecutionLogs       []string             `json:"execution_logs"`
	TestPlan            *TestPlan            `json:"test_plan,omitempty"`
	TestResults         []TestCaseResult     `json:"test_results,omitempty"`
	ResultDetermination *ResultDetermination `json:"result_determination,omitempty"`
	Timestamp           time.Time            `json:"timestamp"`
}
