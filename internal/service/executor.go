package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// ExecutorServiceOptions groups dependencies for ExecutorService.
type ExecutorServiceOptions struct {
	Sessions core.BrowserSessionFactory // Required: browser session source
	Config   config.ExecutorConfig
	Logger   *slog.Logger // Optional: structured logger
}

// ExecutorService runs a test plan against the live application through
// browser sessions. Case errors are isolated; only a failure to obtain a
// session at all aborts the run.
type ExecutorService struct {
	sessions core.BrowserSessionFactory
	cfg      config.ExecutorConfig
	logger   *slog.Logger
}

// NewExecutorService constructs a new ExecutorService.
func NewExecutorService(opts ExecutorServiceOptions) (*ExecutorService, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("BrowserSessionFactory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecutorService{
		sessions: opts.Sessions,
		cfg:      opts.Config,
		logger:   logger.With("component", "executor_service"),
	}, nil
}

// Execute runs the plan's cases per its execution strategy and aggregates
// the outcome. It returns an error only for invalid input; execution
// failures are reported inside the result.
func (s *ExecutorService) Execute(ctx context.Context, plan *model.TestPlan) (*model.ExecutionResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}
	start := time.Now()

	if plan.ExecutionStrategy == model.StrategySkip || len(plan.TestCases) == 0 {
		return &model.ExecutionResult{
			Success:         true,
			Summary:         "Execution skipped: no test cases",
			Logs:            []string{"Execution skipped: plan contains no test cases"},
			TestResults:     []model.TestCaseResult{},
			DurationSeconds: time.Since(start).Seconds(),
		}, nil
	}

	// Opening the first session proves the driver is reachable. When it
	// fails there is nothing meaningful to report per case.
	session, err := s.sessions.NewSession(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to start browser session", "error", err)
		return &model.ExecutionResult{
			Success:         false,
			Summary:         fmt.Sprintf("Failed to start browser session: %v", err),
			Logs:            []string{fmt.Sprintf("Failed to start browser session: %v", err)},
			TestResults:     []model.TestCaseResult{},
			DurationSeconds: time.Since(start).Seconds(),
		}, nil
	}

	var (
		results []model.TestCaseResult
		logs    []string
	)
	if plan.ExecutionStrategy == model.StrategyParallel {
		results, logs = s.runParallel(ctx, session, plan.TestCases)
	} else {
		results, logs = s.runSequential(ctx, session, plan.TestCases)
	}

	if err := session.Close(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to close browser session", "error", err)
	}

	passed := 0
	for _, r := range results {
		if r.Success {
			passed++
		}
	}
	failed := len(results) - passed

	return &model.ExecutionResult{
		Success:         failed == 0,
		Summary:         fmt.Sprintf("%d/%d test cases passed", passed, len(results)),
		Logs:            logs,
		TestResults:     results,
		DurationSeconds: time.Since(start).Seconds(),
		PassedCount:     passed,
		FailedCount:     failed,
	}, nil
}

func (s *ExecutorService) runSequential(ctx context.Context, session core.BrowserSession, cases []model.TestCase) ([]model.TestCaseResult, []string) {
	results := make([]model.TestCaseResult, 0, len(cases))
	var logs []string
	for i := range cases {
		result, caseLogs := s.runCase(ctx, session, &cases[i])
		results = append(results, result)
		logs = append(logs, caseLogs...)
	}
	return results, logs
}

// runParallel runs each case in its own session so cases cannot interfere
// with each other's page state. The initial session sits idle.
func (s *ExecutorService) runParallel(ctx context.Context, _ core.BrowserSession, cases []model.TestCase) ([]model.TestCaseResult, []string) {
	parallelism := s.cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]model.TestCaseResult, len(cases))
	caseLogs := make([][]string, len(cases))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i := range cases {
		g.Go(func() error {
			tc := &cases[i]
			session, err := s.sessions.NewSession(gctx)
			if err != nil {
				mu.Lock()
				results[i] = model.TestCaseResult{
					CaseID:  tc.ID,
					Success: false,
					Error:   fmt.Sprintf("browser session: %v", err),
				}
				caseLogs[i] = []string{fmt.Sprintf("Case %s: failed to start browser session: %v", tc.ID, err)}
				mu.Unlock()
				return nil
			}

			result, logs := s.runCase(gctx, session, tc)
			if err := session.Close(gctx); err != nil {
				s.logger.WarnContext(gctx, "failed to close browser session", "case_id", tc.ID, "error", err)
			}

			mu.Lock()
			results[i] = result
			caseLogs[i] = logs
			mu.Unlock()
			return nil
		})
	}
	// Goroutines never return errors; case failures live in results.
	_ = g.Wait()

	var logs []string
	for _, l := range caseLogs {
		logs = append(logs, l...)
	}
	return results, logs
}

// runCase executes one test case. An action error fails only this case.
func (s *ExecutorService) runCase(ctx context.Context, session core.BrowserSession, tc *model.TestCase) (model.TestCaseResult, []string) {
	start := time.Now()
	var logs []string

	err := s.performAction(ctx, session, tc, &logs)

	result := model.TestCaseResult{
		CaseID:          tc.ID,
		Success:         err == nil,
		DurationSeconds: time.Since(start).Seconds(),
	}
	if err != nil {
		result.Error = err.Error()
		logs = append(logs, fmt.Sprintf("Case %s failed: %v", tc.ID, err))
		s.logger.WarnContext(ctx, "test case failed",
			"case_id", tc.ID,
			"action", tc.Action,
			"error", err)
	}
	return result, logs
}

func (s *ExecutorService) performAction(ctx context.Context, session core.BrowserSession, tc *model.TestCase, logs *[]string) error {
	switch tc.Action {
	case model.ActionNavigate:
		if err := session.Navigate(ctx, s.cfg.AppURL); err != nil {
			return err
		}
		*logs = append(*logs, "Navigated to application")
		return nil

	case model.ActionNavigateAndVerify:
		if err := session.Navigate(ctx, s.cfg.AppURL); err != nil {
			return err
		}
		*logs = append(*logs, "Navigated to application")
		if tc.Target != "" {
			if err := session.WaitForSelector(ctx, tc.Target, s.cfg.SelectorTimeout); err != nil {
				return err
			}
			*logs = append(*logs, fmt.Sprintf("Found target element: %s", tc.Target))
		}
		title, err := session.Title(ctx)
		if err != nil {
			return err
		}
		*logs = append(*logs, fmt.Sprintf("Page loaded with title: %s", title))
		return nil

	case model.ActionClick:
		if err := session.Click(ctx, tc.Target); err != nil {
			return err
		}
		*logs = append(*logs, fmt.Sprintf("Clicked element: %s", tc.Target))
		return nil

	case model.ActionType:
		if err := session.Fill(ctx, tc.Target, tc.InputText); err != nil {
			return err
		}
		*logs = append(*logs, fmt.Sprintf("Typed text into: %s", tc.Target))
		return nil

	case model.ActionVerifyText:
		text, err := session.TextContent(ctx, tc.Target)
		if err != nil {
			return err
		}
		if !strings.Contains(text, tc.ExpectedOutcome) {
			return fmt.Errorf("text verification failed: %q not found in %q", tc.ExpectedOutcome, text)
		}
		*logs = append(*logs, fmt.Sprintf("Text verification passed: %s", tc.ExpectedOutcome))
		return nil

	default:
		*logs = append(*logs, fmt.Sprintf("Unknown action '%s' - skipping", tc.Action))
		s.logger.WarnContext(ctx, "unknown test case action",
			"case_id", tc.ID,
			"action", tc.Action)
		return nil
	}
}
