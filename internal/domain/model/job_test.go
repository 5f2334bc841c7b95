package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusTransitions(t *testing.T) {
	tests := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobStatusPending, JobStatusRunning, true},
		{JobStatusPending, JobStatusCompleted, false},
		{JobStatusPending, JobStatusFailed, false},
		{JobStatusRunning, JobStatusCompleted, true},
		{JobStatusRunning, JobStatusFailed, true},
		{JobStatusRunning, JobStatusPending, false},
		{JobStatusCompleted, JobStatusRunning, false},
		{JobStatusCompleted, JobStatusFailed, false},
		{JobStatusFailed, JobStatusRunning, false},
		{JobStatusFailed, JobStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusRunning.Terminal())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
}

func TestNewJobRecord(t *testing.T) {
	job := NewJobRecord("user-1", "https://github.com/acme/widgets/pull/7")

	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, "user-1", job.UserID)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Nil(t, job.Report)
	assert.Nil(t, job.CompletedAt)
}

func TestJobRecordValidate(t *testing.T) {
	now := time.Now().UTC()

	t.Run("pending job", func(t *testing.T) {
		job := NewJobRecord("user-1", "https://github.com/acme/widgets/pull/7")
		require.NoError(t, job.Validate())
	})

	t.Run("terminal job requires report and completed_at", func(t *testing.T) {
		job := NewJobRecord("user-1", "https://github.com/acme/widgets/pull/7")
		job.Status = JobStatusCompleted
		require.Error(t, job.Validate())

		job.CompletedAt = &now
		require.Error(t, job.Validate())

		job.Report = &SimulationReport{Result: "pass", Timestamp: now}
		require.NoError(t, job.Validate())
	})

	t.Run("non-terminal job must not carry a report", func(t *testing.T) {
		job := NewJobRecord("user-1", "https://github.com/acme/widgets/pull/7")
		job.Report = &SimulationReport{Result: "pass", Timestamp: now}
		require.Error(t, job.Validate())
	})

	t.Run("missing ids", func(t *testing.T) {
		job := &JobRecord{Status: JobStatusPending}
		require.Error(t, job.Validate())
	})
}

func TestSimulationMessageValidate(t *testing.T) {
	msg := &SimulationMessage{JobID: "job-1", Action: ActionStartSimulation}
	require.NoError(t, msg.Validate())

	require.Error(t, (&SimulationMessage{Action: ActionStartSimulation}).Validate())
	require.Error(t, (&SimulationMessage{JobID: "  "}).Validate())
}

func TestTestPlanValidate(t *testing.T) {
	valid := TestPlan{
		TestCases: []TestCase{{
			ID:              "case_001",
			Description:     "smoke",
			Type:            TestTypeUI,
			Target:          "body",
			Action:          ActionNavigateAndVerify,
			ExpectedOutcome: "Application loads successfully",
			Priority:        PriorityHigh,
		}},
		ExecutionStrategy: StrategySequential,
		RiskLevel:         RiskLow,
		GeneratedBy:       GeneratedByAgent,
	}
	require.NoError(t, valid.Validate())

	t.Run("duplicate case ids", func(t *testing.T) {
		p := valid
		p.TestCases = append([]TestCase{}, valid.TestCases[0], valid.TestCases[0])
		require.Error(t, p.Validate())
	})

	t.Run("skip plan may be empty", func(t *testing.T) {
		p := TestPlan{ExecutionStrategy: StrategySkip, RiskLevel: RiskLow}
		require.NoError(t, p.Validate())
	})

	t.Run("sequential plan may not be empty", func(t *testing.T) {
		p := TestPlan{ExecutionStrategy: StrategySequential, RiskLevel: RiskLow}
		require.Error(t, p.Validate())
	})

	t.Run("bad enums", func(t *testing.T) {
		p := valid
		p.RiskLevel = "severe"
		require.Error(t, p.Validate())

		p = valid
		p.ExecutionStrategy = "bursty"
		require.Error(t, p.Validate())
	})
}
