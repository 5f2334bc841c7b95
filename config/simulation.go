package config

import "time"

// PlannerConfig contains test plan generation configuration.
type PlannerConfig struct {
	// APIKey authenticates against the reasoning service.
	APIKey string `env:"PLANNER_API_KEY"`

	// Model is the reasoning model used for plan generation.
	Model string `env:"PLANNER_MODEL" envDefault:"claude-sonnet-4-5"`

	// MaxRetries is the number of attempts before the agent planner gives up
	// and the fallback planner takes over.
	MaxRetries int `env:"PLANNER_MAX_RETRIES" envDefault:"3"`

	// RequestTimeout bounds a single reasoning service call.
	RequestTimeout time.Duration `env:"PLANNER_REQUEST_TIMEOUT" envDefault:"60s"`
}

// Sanitize applies guardrails to planner configuration values.
func (p *PlannerConfig) Sanitize() {
	if p.MaxRetries < 1 {
		p.MaxRetries = 1
	}
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = 60 * time.Second
	}
}

// ExecutorConfig contains test execution and browser driver configuration.
type ExecutorConfig struct {
	// AppURL is the address of the live application under test.
	AppURL string `env:"EXECUTOR_APP_URL" envDefault:"http://localhost:3000"`

	// DriverURL is the address of the headless browser driver sidecar.
	DriverURL string `env:"EXECUTOR_DRIVER_URL" envDefault:"http://localhost:4444"`

	// ActionTimeout bounds a single browser action (navigate, click, fill).
	ActionTimeout time.Duration `env:"EXECUTOR_ACTION_TIMEOUT" envDefault:"30s"`

	// SelectorTimeout bounds waiting for a target element to appear.
	SelectorTimeout time.Duration `env:"EXECUTOR_SELECTOR_TIMEOUT" envDefault:"5s"`

	// Parallelism bounds concurrent test cases when a plan requests the
	// parallel execution strategy.
	Parallelism int `env:"EXECUTOR_PARALLELISM" envDefault:"4"`
}

// Sanitize applies guardrails to executor configuration values.
func (e *ExecutorConfig) Sanitize() {
	if e.AppURL == "" {
		e.AppURL = "http://localhost:3000"
	}
	if e.DriverURL == "" {
		e.DriverURL = "http://localhost:4444"
	}
	if e.ActionTimeout <= 0 {
		e.ActionTimeout = 30 * time.Second
	}
	if e.SelectorTimeout <= 0 {
		e.SelectorTimeout = 5 * time.Second
	}
	if e.Parallelism < 1 {
		e.Parallelism = 1
	}
}
