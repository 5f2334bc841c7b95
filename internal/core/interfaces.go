// Package core defines the ports (hexagonal architecture) between the job
// pipeline and its collaborators. Service implementations depend on these
// interfaces, never on concrete adapters.
package core

import (
	"context"
	"time"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// JobStore is durable key/value persistence for job records. Put performs a
// full, idempotent overwrite keyed by job_id; callers always round-trip the
// whole record.
type JobStore interface {
	Get(ctx context.Context, jobID string) (*model.JobRecord, error)
	Put(ctx context.Context, job *model.JobRecord) error
}

// QueueMessage is one received message plus the handle needed to ack it.
type QueueMessage struct {
	MessageID     string
	Body          []byte
	ReceiptHandle string
}

// MessageQueue is an at-least-once delivery queue carrying "process this job"
// notices. Messages left undeleted become redeliverable once their visibility
// timeout lapses.
type MessageQueue interface {
	Send(ctx context.Context, body []byte) (string, error)
	Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]QueueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// SourceControlRemote abstracts the git subprocess calls the repository
// service needs. Every call is individually timeout-bounded by the adapter.
type SourceControlRemote interface {
	Clone(ctx context.Context, url, credential, targetDir string) (string, error)
	Fetch(ctx context.Context, repoPath string) error
	Checkout(ctx context.Context, repoPath, ref string) error
	Diff(ctx context.Context, repoPath, base, target string) (nameStatus, fullText string, err error)
	RevParse(ctx context.Context, repoPath, ref string) (string, error)
}

// PlanGenerator produces a test plan from a structured change set.
type PlanGenerator interface {
	Generate(ctx context.Context, summary *model.DiffSummary) (*model.TestPlan, error)
}

// ReasoningService is the opaque external generator behind the agent-backed
// planner. It is constrained to return the TestPlan schema and may time out
// or error.
type ReasoningService interface {
	GenerateTestPlan(ctx context.Context, diffDescription string) (*model.TestPlan, error)
	Model() string
}

// BrowserSession drives one page of a live application. Each call is
// individually timeout-bounded by the adapter.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, text string) error
	TextContent(ctx context.Context, selector string) (string, error)
	Title(ctx context.Context) (string, error)
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	Close(ctx context.Context) error
}

// BrowserSessionFactory opens browser sessions. A factory failure is a
// transport-level error: it aborts the whole run rather than a single case.
type BrowserSessionFactory interface {
	NewSession(ctx context.Context) (BrowserSession, error)
}

// BrowserSessionFactoryFunc adapts a function to the BrowserSessionFactory interface.
type BrowserSessionFactoryFunc func(ctx context.Context) (BrowserSession, error)

// NewSession calls f.
func (f BrowserSessionFactoryFunc) NewSession(ctx context.Context) (BrowserSession, error) {
	return f(ctx)
}

// CredentialProvider resolves a decrypted source-control token for a user.
// Consulted only when cloning a repository not already present locally.
type CredentialProvider interface {
	DecryptedTokenFor(ctx context.Context, userID string) (string, error)
}
