package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/domain/model"
	"github.com/myfav-coworker/prverify/internal/mocks"
)

func executorConfig() config.ExecutorConfig {
	return config.ExecutorConfig{
		AppURL:          "http://localhost:3000",
		SelectorTimeout: time.Second,
		Parallelism:     2,
	}
}

func newExecutor(t *testing.T, factory *mocks.MockBrowserSessionFactory) *ExecutorService {
	t.Helper()
	svc, err := NewExecutorService(ExecutorServiceOptions{
		Sessions: factory,
		Config:   executorConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestExecuteSkipPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)
	svc := newExecutor(t, factory)

	plan := &model.TestPlan{
		TestCases:         []model.TestCase{},
		ExecutionStrategy: model.StrategySkip,
		RiskLevel:         model.RiskLow,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.TestResults)
	assert.Contains(t, result.Summary, "skipped")
}

func TestExecuteSessionFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)
	factory.EXPECT().NewSession(gomock.Any()).Return(nil, errors.New("driver unreachable"))
	svc := newExecutor(t, factory)

	plan := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityHigh},
			{ID: "test_002", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityHigh},
		},
		ExecutionStrategy: model.StrategySequential,
		RiskLevel:         model.RiskMedium,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	// One overall failure, not per-case failures.
	assert.False(t, result.Success)
	assert.Empty(t, result.TestResults)
	assert.Contains(t, result.Summary, "Failed to start browser session")
}

func TestExecuteSequentialHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)
	session := mocks.NewMockBrowserSession(ctrl)
	factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)

	session.EXPECT().Navigate(gomock.Any(), "http://localhost:3000").Return(nil)
	session.EXPECT().WaitForSelector(gomock.Any(), "body", time.Second).Return(nil)
	session.EXPECT().Title(gomock.Any()).Return("My App", nil)
	session.EXPECT().Click(gomock.Any(), "#submit").Return(nil)
	session.EXPECT().Close(gomock.Any()).Return(nil)

	svc := newExecutor(t, factory)
	plan := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Target: "body", Action: model.ActionNavigateAndVerify, Priority: model.PriorityHigh},
			{ID: "test_002", Type: model.TestTypeUI, Target: "#submit", Action: model.ActionClick, Priority: model.PriorityMedium},
		},
		ExecutionStrategy: model.StrategySequential,
		RiskLevel:         model.RiskLow,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.PassedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Equal(t, "2/2 test cases passed", result.Summary)
	assert.Contains(t, result.Logs, "Navigated to application")
	assert.Contains(t, result.Logs, "Found target element: body")
	assert.Contains(t, result.Logs, "Page loaded with title: My App")
	assert.Contains(t, result.Logs, "Clicked element: #submit")
}

func TestExecuteCaseIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)
	session := mocks.NewMockBrowserSession(ctrl)
	factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)

	session.EXPECT().Click(gomock.Any(), "#broken").Return(errors.New("no element matches selector"))
	session.EXPECT().Fill(gomock.Any(), "input[name=q]", "hello").Return(nil)
	session.EXPECT().Close(gomock.Any()).Return(nil)

	svc := newExecutor(t, factory)
	plan := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Target: "#broken", Action: model.ActionClick, Priority: model.PriorityHigh},
			{ID: "test_002", Type: model.TestTypeUI, Target: "input[name=q]", InputText: "hello", Action: model.ActionType, Priority: model.PriorityLow},
		},
		ExecutionStrategy: model.StrategySequential,
		RiskLevel:         model.RiskMedium,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.TestResults, 2)
	assert.False(t, result.TestResults[0].Success)
	assert.Contains(t, result.TestResults[0].Error, "no element matches selector")
	assert.True(t, result.TestResults[1].Success)
	assert.Contains(t, result.Logs, "Typed text into: input[name=q]")
}

func TestExecuteVerifyText(t *testing.T) {
	t.Run("match passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		factory := mocks.NewMockBrowserSessionFactory(ctrl)
		session := mocks.NewMockBrowserSession(ctrl)
		factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)
		session.EXPECT().TextContent(gomock.Any(), "h1").Return("Welcome back, friend", nil)
		session.EXPECT().Close(gomock.Any()).Return(nil)

		svc := newExecutor(t, factory)
		plan := &model.TestPlan{
			TestCases: []model.TestCase{
				{ID: "test_001", Type: model.TestTypeUI, Target: "h1", Action: model.ActionVerifyText, ExpectedOutcome: "Welcome", Priority: model.PriorityHigh},
			},
			ExecutionStrategy: model.StrategySequential,
			RiskLevel:         model.RiskLow,
		}

		result, err := svc.Execute(context.Background(), plan)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Contains(t, result.Logs, "Text verification passed: Welcome")
	})

	t.Run("mismatch fails the case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		factory := mocks.NewMockBrowserSessionFactory(ctrl)
		session := mocks.NewMockBrowserSession(ctrl)
		factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)
		session.EXPECT().TextContent(gomock.Any(), "h1").Return("Error page", nil)
		session.EXPECT().Close(gomock.Any()).Return(nil)

		svc := newExecutor(t, factory)
		plan := &model.TestPlan{
			TestCases: []model.TestCase{
				{ID: "test_001", Type: model.TestTypeUI, Target: "h1", Action: model.ActionVerifyText, ExpectedOutcome: "Welcome", Priority: model.PriorityHigh},
			},
			ExecutionStrategy: model.StrategySequential,
			RiskLevel:         model.RiskLow,
		}

		result, err := svc.Execute(context.Background(), plan)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.TestResults[0].Error, "text verification failed")
	})
}

func TestExecuteUnknownActionCountsAsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)
	session := mocks.NewMockBrowserSession(ctrl)
	factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)
	session.EXPECT().Close(gomock.Any()).Return(nil)

	svc := newExecutor(t, factory)
	plan := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Action: "teleport", Priority: model.PriorityLow},
		},
		ExecutionStrategy: model.StrategySequential,
		RiskLevel:         model.RiskLow,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Logs, "Unknown action 'teleport' - skipping")
}

func TestExecuteParallelRunsEveryCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBrowserSessionFactory(ctrl)

	// Initial session plus one session per case.
	initial := mocks.NewMockBrowserSession(ctrl)
	factory.EXPECT().NewSession(gomock.Any()).Return(initial, nil)
	initial.EXPECT().Close(gomock.Any()).Return(nil)

	for range 3 {
		session := mocks.NewMockBrowserSession(ctrl)
		factory.EXPECT().NewSession(gomock.Any()).Return(session, nil)
		session.EXPECT().Navigate(gomock.Any(), "http://localhost:3000").Return(nil)
		session.EXPECT().Close(gomock.Any()).Return(nil)
	}

	svc := newExecutor(t, factory)
	plan := &model.TestPlan{
		TestCases: []model.TestCase{
			{ID: "test_001", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityLow},
			{ID: "test_002", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityLow},
			{ID: "test_003", Type: model.TestTypeUI, Action: model.ActionNavigate, Priority: model.PriorityLow},
		},
		ExecutionStrategy: model.StrategyParallel,
		RiskLevel:         model.RiskLow,
	}

	result, err := svc.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.TestResults, 3)
	// Results keep plan order even under concurrency.
	assert.Equal(t, "test_001", result.TestResults[0].CaseID)
	assert.Equal(t, "test_002", result.TestResults[1].CaseID)
	assert.Equal(t, "test_003", result.TestResults[2].CaseID)
}
