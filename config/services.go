package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeWorker runs the job queue worker.
	ServiceModeWorker ServiceMode = "worker"
	// ServiceModeReaper runs the queue visibility reaper.
	ServiceModeReaper ServiceMode = "reaper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeWorker, ServiceModeReaper}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeWorker, ServiceModeReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: worker, reaper)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// QueueConfig contains message queue configuration.
type QueueConfig struct {
	// Name is the logical queue name; Redis keys are derived from it.
	Name string `env:"QUEUE_NAME" envDefault:"prverify-simulation-queue"`

	// VisibilityTimeout is how long a received message stays invisible before
	// the reaper makes it redeliverable. It must cover worst-case job duration.
	VisibilityTimeout time.Duration `env:"QUEUE_VISIBILITY_TIMEOUT" envDefault:"5m"`

	// WaitTime is the long-poll ceiling for a single receive call.
	WaitTime time.Duration `env:"QUEUE_WAIT_TIME" envDefault:"5s"`
}

// Sanitize applies guardrails to queue configuration values.
func (q *QueueConfig) Sanitize() {
	if q.Name == "" {
		q.Name = "prverify-simulation-queue"
	}
	if q.VisibilityTimeout < 30*time.Second {
		q.VisibilityTimeout = 30 * time.Second
	}
	if q.WaitTime <= 0 {
		q.WaitTime = 5 * time.Second
	}
	if q.WaitTime > 20*time.Second {
		q.WaitTime = 20 * time.Second
	}
}

// WorkerConfig contains job queue worker configuration.
type WorkerConfig struct {
	// PollInterval is the idle delay between empty receives.
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"1s"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	if w.PollInterval <= 0 {
		w.PollInterval = time.Second
	}
}

// ReaperConfig contains queue reaper service configuration.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"30s"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	if r.Interval < time.Second {
		r.Interval = time.Second
	}
}
