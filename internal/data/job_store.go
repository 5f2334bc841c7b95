package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// Key layout inside job_records. Each job is a single item under a composite
// primary key so the record can be replaced atomically in one statement.
const (
	jobPartitionPrefix = "JOB#"
	jobSortKey         = "METADATA"
)

// JobStoreConfig holds configuration options for the job store.
type JobStoreConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// JobStore persists job records in the job_records table as JSONB documents
// keyed by ("JOB#<id>", "METADATA").
type JobStore struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewJobStore creates a new JobStore with the given database connection and configuration.
func NewJobStore(db *sql.DB, cfg JobStoreConfig) *JobStore {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JobStore{
		DB:           db,
		timeProvider: tp,
		logger:       logger,
	}
}

// JobPartitionKey returns the partition key for a job id.
func JobPartitionKey(jobID string) string {
	return jobPartitionPrefix + jobID
}

// Get loads the job record for the given job id.
func (s *JobStore) Get(ctx context.Context, jobID string) (*model.JobRecord, error) {
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT record FROM job_records WHERE pk = $1 AND sk = $2`,
		JobPartitionKey(jobID), jobSortKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("query job record: %w", classifyPgError(err))
	}

	var job model.JobRecord
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("decode job record %s: %w", jobID, err)
	}
	return &job, nil
}

// Put writes the full job record, replacing any existing item for the same
// job id. The write is idempotent: callers round-trip the whole record.
func (s *JobStore) Put(ctx context.Context, job *model.JobRecord) error {
	if job == nil || job.JobID == "" {
		return ErrJobIDRequired
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job record: %w", err)
	}

	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job record %s: %w", job.JobID, err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO job_records (pk, sk, record, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (pk, sk) DO UPDATE
		 SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at`,
		JobPartitionKey(job.JobID), jobSortKey, raw, s.timeProvider.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert job record %s: %w", job.JobID, classifyPgError(err))
	}

	s.logger.DebugContext(ctx, "job record persisted",
		"job_id", job.JobID,
		"status", string(job.Status))
	return nil
}

// classifyPgError surfaces the Postgres error class in the wrap chain so
// callers can log something more useful than a bare SQLSTATE.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("unique violation on %s: %w", pgErr.ConstraintName, err)
	case pgerrcode.UndefinedTable:
		return fmt.Errorf("job_records table missing (run migrations): %w", err)
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("transient conflict: %w", err)
	default:
		return err
	}
}
