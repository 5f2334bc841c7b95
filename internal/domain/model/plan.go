package model

import (
	"errors"
	"fmt"
)

// TestType classifies what layer a test case exercises.
type TestType string

// Test types understood by the executor.
const (
	TestTypeUI          TestType = "ui"
	TestTypeAPI         TestType = "api"
	TestTypeIntegration TestType = "integration"
	TestTypeUnit        TestType = "unit"
)

// Valid returns true if the TestType is valid.
func (t TestType) Valid() bool {
	return t == TestTypeUI || t == TestTypeAPI || t == TestTypeIntegration || t == TestTypeUnit
}

// Priority ranks a test case.
type Priority string

// Priorities in ascending order of urgency.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the Priority is valid.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ExecutionStrategy tells the executor how to run a plan's cases.
type ExecutionStrategy string

// Execution strategies.
const (
	StrategySequential ExecutionStrategy = "sequential"
	StrategyParallel   ExecutionStrategy = "parallel"
	StrategySkip       ExecutionStrategy = "skip"
)

// Valid returns true if the ExecutionStrategy is valid.
func (s ExecutionStrategy) Valid() bool {
	return s == StrategySequential || s == StrategyParallel || s == StrategySkip
}

// RiskLevel is the plan generator's assessment of change risk.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid returns true if the RiskLevel is valid.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// GeneratedBy identifies which generator produced a plan.
type GeneratedBy string

// Plan generators.
const (
	GeneratedByAgent    GeneratedBy = "agent"
	GeneratedByFallback GeneratedBy = "fallback"
)

// Browser actions a test case may request. Unknown actions are skipped with a
// warning rather than failing the case.
const (
	ActionNavigate          = "navigate"
	ActionNavigateAndVerify = "navigate_and_verify"
	ActionClick             = "click"
	ActionType              = "type"
	ActionVerifyText        = "verify_text"
)

// TestCase is a single executable step within a test plan.
type TestCase struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Type            TestType `json:"test_type"`
	Target          string   `json:"target_element"`
	Action          string   `json:"action"`
	InputText       string   `json:"input_text,omitempty"`
	ExpectedOutcome string   `json:"expected_outcome"`
	Priority        Priority `json:"priority"`
}

// TestPlan is an ordered set of test cases plus execution strategy and risk
// metadata, produced per job run and embedded in the final report.
type TestPlan struct {
	TestCases                []TestCase        `json:"test_cases"`
	ExecutionStrategy        ExecutionStrategy `json:"execution_strategy"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	RiskLevel                RiskLevel         `json:"risk_level"`
	Summary                  string            `json:"summary"`
	Reasoning                string            `json:"reasoning"`
	GeneratedBy              GeneratedBy       `json:"generated_by"`
	AgentModel               string            `json:"agent_model,omitempty"`
}

// Validate checks a plan received from an external generator before it is
// trusted by the executor. Case ids must be unique within the plan.
func (p *TestPlan) Validate() error {
	if !p.ExecutionStrategy.Valid() {
		return fmt.Errorf("invalid execution strategy: %q", p.ExecutionStrategy)
	}
	if !p.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk level: %q", p.RiskLevel)
	}
	seen := make(map[string]bool, len(p.TestCases))
	for i := range p.TestCases {
		tc := &p.TestCases[i]
		if tc.ID == "" {
			return fmt.Errorf("test case %d has no id", i)
		}
		if seen[tc.ID] {
			return fmt.Errorf("duplicate test case id %q", tc.ID)
		}
		seen[tc.ID] = true
		if !tc.Type.Valid() {
			return fmt.Errorf("test case %s: invalid test type %q", tc.ID, tc.Type)
		}
		if !tc.Priority.Valid() {
			return fmt.Errorf("test case %s: invalid priority %q", tc.ID, tc.Priority)
		}
		if tc.Action == "" {
			return fmt.Errorf("test case %s: action is required", tc.ID)
		}
	}
	if p.ExecutionStrategy != StrategySkip && len(p.TestCases) == 0 {
		return errors.New("non-skip plan has no test cases")
	}
	return nil
}
