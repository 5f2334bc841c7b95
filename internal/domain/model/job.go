// Package model defines the core data types and structures used throughout the prverify job system.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the current status of a simulation job.
type JobStatus string

const (
	// JobStatusPending indicates a job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates a job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates a job has finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job has failed to complete.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusRunning || s == JobStatusCompleted ||
		s == JobStatusFailed
}

// Terminal returns true if the status is a terminal state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether a job may move from s to next.
// Status moves only forward: pending -> running -> {completed, failed}.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusRunning
	case JobStatusRunning:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

// JobRecord tracks one request to verify a pull request through its lifecycle.
// Created by the submission path, mutated exclusively by the job queue worker.
type JobRecord struct {
	JobID        string            `json:"job_id"`
	UserID       string            `json:"user_id"`
	PROwner      string            `json:"pr_owner"`
	PRRepo       string            `json:"pr_repo"`
	PRNumber     int               `json:"pr_number"`
	PRURL        string            `json:"pr_url"`
	PRTitle      string            `json:"pr_title,omitempty"`
	PRHeadSHA    string            `json:"pr_head_sha"`
	PRBaseSHA    string            `json:"pr_base_sha"`
	Status       JobStatus         `json:"status"`
	Report       *SimulationReport `json:"report,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// NewJobRecord creates a pending job record with a fresh id.
func NewJobRecord(userID, prURL string) *JobRecord {
	return &JobRecord{
		JobID:     uuid.NewString(),
		UserID:    userID,
		PRURL:     prURL,
		Status:    JobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the invariants a stored job record must hold.
func (j *JobRecord) Validate() error {
	if j.JobID == "" {
		return errors.New("job_id is required")
	}
	if j.UserID == "" {
		return errors.New("user_id is required")
	}
	if !j.Status.Valid() {
		return fmt.Errorf("invalid job status: %q", j.Status)
	}
	if j.Status.Terminal() {
		if j.CompletedAt == nil {
			return fmt.Errorf("terminal job %s has no completed_at", j.JobID)
		}
		if j.Report == nil {
			return fmt.Errorf("terminal job %s has no report", j.JobID)
		}
	} else {
		if j.CompletedAt != nil {
			return fmt.Errorf("non-terminal job %s has completed_at set", j.JobID)
		}
		if j.Report != nil {
			return fmt.Errorf("non-terminal job %s has a report", j.JobID)
		}
	}
	return nil
}

// ActionStartSimulation is the only message action the worker dispatches on.
const ActionStartSimulation = "start_simulation"

// SimulationMessage is the queue message body that triggers job processing.
type SimulationMessage struct {
	JobID     string `json:"job_id"`
	Action    string `json:"action"`
	UserID    string `json:"user_id"`
	PROwner   string `json:"pr_owner"`
	PRRepo    string `json:"pr_repo"`
	PRNumber  int    `json:"pr_number"`
	PRHeadSHA string `json:"pr_head_sha"`
	PRBaseSHA string `json:"pr_base_sha"`
}

// Validate checks the message carries a usable job reference.
func (m *SimulationMessage) Validate() error {
	if strings.TrimSpace(m.JobID) == "" {
		return errors.New("job_id is required")
	}
	if m.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
