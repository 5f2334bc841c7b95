package config

import (
	"reflect"
	"testing"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - worker",
			input: "worker",
			expected: map[ServiceMode]bool{
				ServiceModeWorker: true,
			},
			expectError: false,
		},
		{
			name:  "single service - reaper",
			input: "reaper",
			expected: map[ServiceMode]bool{
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "multiple services",
			input: "worker,reaper",
			expected: map[ServiceMode]bool{
				ServiceModeWorker: true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "whitespace is trimmed",
			input: " worker , reaper ",
			expected: map[ServiceMode]bool{
				ServiceModeWorker: true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "worker,frobnicator",
			expectError: true,
		},
		{
			name:        "only separators",
			input:       ",,,",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got services %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Services != "worker" {
		t.Errorf("Services default = %q, want %q", cfg.Services, "worker")
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port default = %d, want 5432", cfg.Postgres.Port)
	}
	if cfg.Queue.Name != "prverify-simulation-queue" {
		t.Errorf("Queue.Name default = %q", cfg.Queue.Name)
	}
	if !cfg.IsWorkerEnabled() {
		t.Error("worker should be enabled by default")
	}
	if cfg.IsReaperEnabled() {
		t.Error("reaper should not be enabled by default")
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{}
	cfg.Sanitize()

	if cfg.Queue.VisibilityTimeout <= 0 {
		t.Error("visibility timeout should be defaulted")
	}
	if cfg.Repository.MaxSizeMB != 400 {
		t.Errorf("MaxSizeMB = %d, want 400", cfg.Repository.MaxSizeMB)
	}
	if cfg.Planner.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want clamp to 1", cfg.Planner.MaxRetries)
	}
	if cfg.Executor.Parallelism != 1 {
		t.Errorf("Parallelism = %d, want clamp to 1", cfg.Executor.Parallelism)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Error("metrics should be disabled without an address")
	}
}
