package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/myfav-coworker/prverify/internal/data"
	"github.com/myfav-coworker/prverify/internal/domain/model"
)

const adminCommandTimeout = 30 * time.Second

type submitJobOptions struct {
	UserID   string
	Owner    string
	Repo     string
	PRNumber int
	Title    string
	HeadSHA  string
	BaseSHA  string
}

func parseSubmitJobFlags(args []string) (submitJobOptions, error) {
	fs := flag.NewFlagSet("submit-job", flag.ContinueOnError)
	opts := submitJobOptions{}
	fs.StringVar(&opts.UserID, "user", "", "submitting user id (required)")
	fs.StringVar(&opts.Owner, "owner", "", "repository owner (required)")
	fs.StringVar(&opts.Repo, "repo", "", "repository name (required)")
	fs.IntVar(&opts.PRNumber, "pr", 0, "pull request number (required)")
	fs.StringVar(&opts.Title, "title", "", "pull request title")
	fs.StringVar(&opts.HeadSHA, "head-sha", "", "pull request head commit (required)")
	fs.StringVar(&opts.BaseSHA, "base-sha", "", "pull request base commit (required)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.UserID == "" || opts.Owner == "" || opts.Repo == "" {
		return opts, errors.New("-user, -owner, and -repo are required")
	}
	if opts.PRNumber <= 0 {
		return opts, errors.New("-pr must be a positive pull request number")
	}
	if opts.HeadSHA == "" || opts.BaseSHA == "" {
		return opts, errors.New("-head-sha and -base-sha are required")
	}
	return opts, nil
}

func runSubmitJob(cmdCtx *commandContext, args []string) error {
	opts, err := parseSubmitJobFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, adminCommandTimeout)
	defer cancel()

	db, err := connectDB(cmdCtx.Logger, &cmdCtx.Config)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "db", db)

	redisClient, err := connectRedis(cmdCtx.Logger, &cmdCtx.Config)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "redis", redisClient)

	prURL := fmt.Sprintf("https://github.com/%s/%s/pull/%d", opts.Owner, opts.Repo, opts.PRNumber)
	job := model.NewJobRecord(opts.UserID, prURL)
	job.PROwner = opts.Owner
	job.PRRepo = opts.Repo
	job.PRNumber = opts.PRNumber
	job.PRTitle = opts.Title
	job.PRHeadSHA = opts.HeadSHA
	job.PRBaseSHA = opts.BaseSHA

	store := data.NewJobStore(db, data.JobStoreConfig{Logger: cmdCtx.Logger})
	if err := store.Put(ctx, job); err != nil {
		return fmt.Errorf("persist job: %w", err)
	}

	body, err := json.Marshal(model.SimulationMessage{
		JobID:     job.JobID,
		Action:    model.ActionStartSimulation,
		UserID:    job.UserID,
		PROwner:   job.PROwner,
		PRRepo:    job.PRRepo,
		PRNumber:  job.PRNumber,
		PRHeadSHA: job.PRHeadSHA,
		PRBaseSHA: job.PRBaseSHA,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	queue := data.NewRedisQueue(redisClient, data.RedisQueueConfig{
		Name:              cmdCtx.Config.Queue.Name,
		VisibilityTimeout: cmdCtx.Config.Queue.VisibilityTimeout,
		Logger:            cmdCtx.Logger,
	})
	messageID, err := queue.Send(ctx, body)
	if err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}

	return writef(os.Stdout, "submitted job %s (message %s)\n", job.JobID, messageID)
}

func runJobStatus(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("job-status", flag.ContinueOnError)
	jobID := fs.String("job", "", "job id to look up (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jobID == "" {
		return errors.New("-job is required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, adminCommandTimeout)
	defer cancel()

	db, err := connectDB(cmdCtx.Logger, &cmdCtx.Config)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "db", db)

	store := data.NewJobStore(db, data.JobStoreConfig{Logger: cmdCtx.Logger})
	job, err := store.Get(ctx, *jobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	out, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return writef(os.Stdout, "%s\n", out)
}

func runQueueStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("queue-stats", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, adminCommandTimeout)
	defer cancel()

	redisClient, err := connectRedis(cmdCtx.Logger, &cmdCtx.Config)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "redis", redisClient)

	queue := data.NewRedisQueue(redisClient, data.RedisQueueConfig{
		Name:              cmdCtx.Config.Queue.Name,
		VisibilityTimeout: cmdCtx.Config.Queue.VisibilityTimeout,
		Logger:            cmdCtx.Logger,
	})
	stats, err := queue.Stats(ctx)
	if err != nil {
		return fmt.Errorf("queue stats: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "QUEUE\tPENDING\tIN-FLIGHT\n"); err != nil {
		return err
	}
	if err := writef(w, "%s\t%d\t%d\n", cmdCtx.Config.Queue.Name, stats.Pending, stats.InFlight); err != nil {
		return err
	}
	return w.Flush()
}
