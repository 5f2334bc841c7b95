package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/myfav-coworker/prverify/internal/domain/model"
	"github.com/myfav-coworker/prverify/internal/mocks"
)

func diffSummary(hasChanges bool) *model.DiffSummary {
	s := &model.DiffSummary{
		BaseRef:   "abc123",
		TargetRef: "def456",
	}
	if hasChanges {
		s.ChangedFiles = []model.FileChange{
			{Status: "M", Path: "src/app.py", ChangeType: model.ChangeTypeModified},
		}
		s.RelevantFiles = s.ChangedFiles
		s.TotalFilesChanged = 1
		s.RelevantFilesChanged = 1
		s.HasChanges = true
		s.DiffContent = "diff --git a/src/app.py b/src/app.py"
	}
	return s
}

func TestAgentPlannerShortCircuitsWithoutChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	reasoning := mocks.NewMockReasoningService(ctrl)
	// No GenerateTestPlan expectation: the service must not be called.

	planner, err := NewAgentPlanner(AgentPlannerOptions{Reasoning: reasoning})
	require.NoError(t, err)

	plan, err := planner.Generate(context.Background(), diffSummary(false))
	require.NoError(t, err)

	assert.Empty(t, plan.TestCases)
	assert.Equal(t, model.StrategySkip, plan.ExecutionStrategy)
	assert.Equal(t, model.RiskLow, plan.RiskLevel)
}

func TestAgentPlannerWrapsExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	reasoning := mocks.NewMockReasoningService(ctrl)
	reasoning.EXPECT().GenerateTestPlan(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("exhausted 3 retries"))

	planner, err := NewAgentPlanner(AgentPlannerOptions{Reasoning: reasoning})
	require.NoError(t, err)

	_, err = planner.Generate(context.Background(), diffSummary(true))
	require.Error(t, err)

	var genErr *PlanGenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, genErr.Error(), "exhausted 3 retries")
}

func TestFallbackPlannerShape(t *testing.T) {
	plan := FallbackPlanner{}.Generate(diffSummary(true), errors.New("agent offline"))

	require.Len(t, plan.TestCases, 1)
	tc := plan.TestCases[0]
	assert.Equal(t, "fallback_001", tc.ID)
	assert.Equal(t, model.TestTypeUI, tc.Type)
	assert.Equal(t, model.ActionNavigateAndVerify, tc.Action)
	assert.Equal(t, "body", tc.Target)
	assert.Equal(t, model.PriorityHigh, tc.Priority)
	assert.Equal(t, "Application loads successfully", tc.ExpectedOutcome)

	assert.Equal(t, model.StrategySequential, plan.ExecutionStrategy)
	assert.Equal(t, 2, plan.EstimatedDurationMinutes)
	assert.Equal(t, model.RiskLow, plan.RiskLevel)
	assert.Equal(t, model.GeneratedByFallback, plan.GeneratedBy)
	assert.Contains(t, plan.Reasoning, "agent offline")

	require.NoError(t, plan.Validate())
}

func TestFallbackPlannerWithoutChanges(t *testing.T) {
	plan := FallbackPlanner{}.Generate(diffSummary(false), nil)

	assert.Empty(t, plan.TestCases)
	assert.Equal(t, model.StrategySkip, plan.ExecutionStrategy)
	assert.Equal(t, model.RiskLow, plan.RiskLevel)
	assert.Equal(t, model.GeneratedByFallback, plan.GeneratedBy)
}

func TestPlanServiceUsesAgentPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	agent := mocks.NewMockPlanGenerator(ctrl)
	want := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityHigh},
		},
		ExecutionStrategy: model.StrategySequential,
		RiskLevel:         model.RiskMedium,
		GeneratedBy:       model.GeneratedByAgent,
	}
	agent.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(want, nil)

	svc, err := NewPlanService(PlanServiceOptions{Agent: agent})
	require.NoError(t, err)

	plan, err := svc.Generate(context.Background(), diffSummary(true))
	require.NoError(t, err)
	assert.Same(t, want, plan)
}

func TestPlanServiceFallsBackOnAgentError(t *testing.T) {
	ctrl := gomock.NewController(t)
	agent := mocks.NewMockPlanGenerator(ctrl)
	agent.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(nil, &PlanGenerationError{Err: errors.New("model timeout")})

	svc, err := NewPlanService(PlanServiceOptions{Agent: agent})
	require.NoError(t, err)

	plan, err := svc.Generate(context.Background(), diffSummary(true))
	require.NoError(t, err)

	assert.Equal(t, model.GeneratedByFallback, plan.GeneratedBy)
	require.Len(t, plan.TestCases, 1)
	assert.Equal(t, "fallback_001", plan.TestCases[0].ID)
	assert.Contains(t, plan.Reasoning, "model timeout")
}

func TestDescribeDiff(t *testing.T) {
	desc := DescribeDiff(diffSummary(true))

	assert.Contains(t, desc, "abc123...def456")
	assert.Contains(t, desc, "1 files changed, 1 relevant to testing")
	assert.Contains(t, desc, "modified src/app.py")
	assert.Contains(t, desc, "diff --git")
}
