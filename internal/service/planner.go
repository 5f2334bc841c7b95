package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// PlanGenerationError reports that the agent-backed generator gave up after
// exhausting its retries. The plan service absorbs it by falling back to the
// deterministic generator; it never surfaces as a job failure on its own.
type PlanGenerationError struct {
	Err error
}

func (e *PlanGenerationError) Error() string {
	return fmt.Sprintf("test plan generation failed: %v", e.Err)
}

func (e *PlanGenerationError) Unwrap() error { return e.Err }

// emptyPlan is the deterministic plan for a change set with no changes.
func emptyPlan(generatedBy model.GeneratedBy) *model.TestPlan {
	return &model.TestPlan{
		TestCases:                []model.TestCase{},
		ExecutionStrategy:        model.StrategySkip,
		EstimatedDurationMinutes: 0,
		RiskLevel:                model.RiskLow,
		Summary:                  "No code changes detected",
		Reasoning:                "The diff contains no changed files, so there is nothing to verify",
		GeneratedBy:              generatedBy,
	}
}

// AgentPlannerOptions groups dependencies for AgentPlanner.
type AgentPlannerOptions struct {
	Reasoning core.ReasoningService // Required: plan-generating service
	Logger    *slog.Logger          // Optional: structured logger
}

// AgentPlanner asks the reasoning service for a plan covering the change set.
// Retry and backoff live inside the reasoning adapter; exhaustion surfaces
// here as a PlanGenerationError.
type AgentPlanner struct {
	reasoning core.ReasoningService
	logger    *slog.Logger
}

var _ core.PlanGenerator = (*AgentPlanner)(nil)

// NewAgentPlanner constructs a new AgentPlanner.
func NewAgentPlanner(opts AgentPlannerOptions) (*AgentPlanner, error) {
	if opts.Reasoning == nil {
		return nil, fmt.Errorf("ReasoningService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentPlanner{reasoning: opts.Reasoning, logger: logger}, nil
}

// Generate produces a plan for the change set. A summary without changes
// short-circuits to the empty skip plan without calling the service.
func (p *AgentPlanner) Generate(ctx context.Context, summary *model.DiffSummary) (*model.TestPlan, error) {
	if !summary.HasChanges {
		p.logger.InfoContext(ctx, "no changes detected, skipping plan generation")
		return emptyPlan(model.GeneratedByAgent), nil
	}

	plan, err := p.reasoning.GenerateTestPlan(ctx, DescribeDiff(summary))
	if err != nil {
		return nil, &PlanGenerationError{Err: err}
	}
	return plan, nil
}

// DescribeDiff renders a DiffSummary as the prose change description sent to
// the reasoning service.
func DescribeDiff(summary *model.DiffSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pull request diff %s...%s\n", summary.BaseRef, summary.TargetRef)
	fmt.Fprintf(&b, "%d files changed, %d relevant to testing.\n\n", summary.TotalFilesChanged, summary.RelevantFilesChanged)

	if len(summary.RelevantFiles) > 0 {
		b.WriteString("Relevant files:\n")
		for _, fc := range summary.RelevantFiles {
			fmt.Fprintf(&b, "  %s %s\n", string(fc.ChangeType), fc.Path)
		}
		b.WriteString("\n")
	}

	const maxDiffChars = 20000
	content := summary.DiffContent
	if len(content) > maxDiffChars {
		content = content[:maxDiffChars] + "\n... (diff truncated)"
	}
	if content != "" {
		b.WriteString("Diff:\n")
		b.WriteString(content)
	}
	return b.String()
}

// FallbackPlanner produces the deterministic smoke-test plan used when the
// agent path fails.
type FallbackPlanner struct{}

// Generate returns the single-case smoke plan, or the empty skip plan when
// the summary has no changes. The triggering error is embedded in the plan's
// reasoning so the report explains why the agent plan is absent.
func (FallbackPlanner) Generate(summary *model.DiffSummary, cause error) *model.TestPlan {
	if summary != nil && !summary.HasChanges {
		return emptyPlan(model.GeneratedByFallback)
	}

	reasoning := "Fallback plan: verifying the application still loads"
	if cause != nil {
		reasoning = fmt.Sprintf("Agent plan generation failed (%v); falling back to a basic availability check", cause)
	}

	return &model.TestPlan{
		TestCases: []model.TestCase{
			{
				ID:              "fallback_001",
				Description:     "Verify the application loads",
				Type:            model.TestTypeUI,
				Target:          "body",
				Action:          model.ActionNavigateAndVerify,
				ExpectedOutcome: "Application loads successfully",
				Priority:        model.PriorityHigh,
			},
		},
		ExecutionStrategy:        model.StrategySequential,
		EstimatedDurationMinutes: 2,
		RiskLevel:                model.RiskLow,
		Summary:                  "Basic availability check",
		Reasoning:                reasoning,
		GeneratedBy:              model.GeneratedByFallback,
	}
}

// PlanServiceOptions groups dependencies for PlanService.
type PlanServiceOptions struct {
	Agent  core.PlanGenerator // Required: primary generator
	Logger *slog.Logger       // Optional: structured logger
}

// PlanService composes the agent planner with the deterministic fallback so
// plan generation never fails the job by itself.
type PlanService struct {
	agent    core.PlanGenerator
	fallback FallbackPlanner
	logger   *slog.Logger
}

var _ core.PlanGenerator = (*PlanService)(nil)

// NewPlanService constructs a new PlanService.
func NewPlanService(opts PlanServiceOptions) (*PlanService, error) {
	if opts.Agent == nil {
		return nil, fmt.Errorf("agent PlanGenerator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{agent: opts.Agent, logger: logger.With("component", "plan_service")}, nil
}

// Generate returns the agent's plan, or the fallback plan when the agent
// path errors. The error itself is never propagated.
func (s *PlanService) Generate(ctx context.Context, summary *model.DiffSummary) (*model.TestPlan, error) {
	plan, err := s.agent.Generate(ctx, summary)
	if err == nil {
		return plan, nil
	}

	s.logger.WarnContext(ctx, "agent plan generation failed, using fallback",
		"error", err)
	return s.fallback.Generate(summary, err), nil
}
