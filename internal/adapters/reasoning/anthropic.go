// Package reasoning generates test plans with the Anthropic Messages API.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

const maxResponseTokens = 4096

// Options configures the Anthropic-backed reasoning service.
type Options struct {
	APIKey         string
	Model          string
	MaxRetries     int
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Service calls the Messages API and decodes the reply into a test plan.
type Service struct {
	client         anthropic.Client
	model          string
	maxRetries     int
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New creates a reasoning Service.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Service{
		client:         anthropic.NewClient(option.WithAPIKey(opts.APIKey)),
		model:          opts.Model,
		maxRetries:     opts.MaxRetries,
		requestTimeout: opts.RequestTimeout,
		logger:         logger,
	}
}

// Model reports the configured model identifier.
func (s *Service) Model() string { return s.model }

// GenerateTestPlan asks the model for a structured plan covering the given
// change description. Transient API failures are retried with exponential
// backoff; a reply that does not decode into a valid plan is an error the
// caller handles with its fallback.
func (s *Service) GenerateTestPlan(ctx context.Context, diffDescription string) (*model.TestPlan, error) {
	prompt := buildPrompt(diffDescription)

	var response *anthropic.Message
	err := s.retryWithBackoff(ctx, "generate_test_plan", func(attemptCtx context.Context) error {
		resp, apiErr := s.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(s.model),
			MaxTokens: maxResponseTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if apiErr != nil {
			return apiErr
		}
		response = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var responseText string
	for _, block := range response.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	plan, err := DecodePlan(responseText)
	if err != nil {
		return nil, err
	}

	plan.GeneratedBy = model.GeneratedByAgent
	plan.AgentModel = s.model
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("model returned invalid plan: %w", err)
	}

	s.logger.InfoContext(ctx, "test plan generated",
		"model", s.model,
		"test_cases", len(plan.TestCases),
		"strategy", string(plan.ExecutionStrategy),
		"risk_level", string(plan.RiskLevel),
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens)
	return plan, nil
}

// retryWithBackoff runs fn up to maxRetries times total, sleeping 2^attempt
// seconds between attempts.
func (s *Service) retryWithBackoff(ctx context.Context, operation string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if s.requestTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		}
		err := fn(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			if attempt > 0 {
				s.logger.InfoContext(ctx, "anthropic call succeeded after retry",
					"operation", operation,
					"attempt", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt == s.maxRetries-1 {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		s.logger.WarnContext(ctx, "anthropic call failed, retrying",
			"operation", operation,
			"attempt", attempt+1,
			"backoff", backoff.String(),
			"error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		}
	}
	return fmt.Errorf("%s: exhausted %d retries: %w", operation, s.maxRetries, lastErr)
}

// DecodePlan parses a model reply into a TestPlan, tolerating markdown code
// fences around the JSON payload.
func DecodePlan(responseText string) (*model.TestPlan, error) {
	text := stripCodeFences(responseText)

	var plan model.TestPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		truncated := text
		if len(truncated) > 500 {
			truncated = truncated[:500] + "... (truncated)"
		}
		return nil, fmt.Errorf("decode plan JSON: %w: %s", err, truncated)
	}
	return &plan, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func buildPrompt(diffDescription string) string {
	return fmt.Sprintf(`You are a QA engineer planning verification for a pull request.
Analyze the change summary below and produce a focused browser test plan for the running application.

%s

Respond with ONLY a JSON object matching this schema, no prose:
{
  "test_cases": [
    {
      "id": "test_001",
      "description": "what this case checks",
      "test_type": "ui",
      "target_element": "css selector or empty",
      "action": "navigate|navigate_and_verify|click|type|verify_text",
      "input_text": "text for type actions, else empty",
      "expected_outcome": "observable outcome",
      "priority": "low|medium|high"
    }
  ],
  "execution_strategy": "sequential|parallel",
  "estimated_duration_minutes": 5,
  "risk_level": "low|medium|high",
  "summary": "one sentence plan summary",
  "reasoning": "why these cases cover the change"
}

Keep the plan small and targeted. Prefer sequential execution unless the cases are fully independent.`, diffDescription)
}
