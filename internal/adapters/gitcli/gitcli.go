// Package gitcli shells out to the git binary with per-operation timeouts.
package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"strings"
	"time"
)

const allowedRemotePrefix = "https://github.com/"

// OperationError carries the failing git operation and its trimmed stderr.
// Remote URLs are redacted before they can reach an error message.
type OperationError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Timeouts bounds each git subprocess individually.
type Timeouts struct {
	Clone    time.Duration
	Fetch    time.Duration
	Checkout time.Duration
	Diff     time.Duration
	RevParse time.Duration
}

// Options configures the Client.
type Options struct {
	Timeouts Timeouts
	Logger   *slog.Logger
}

// Client runs git subprocesses. It is safe for concurrent use; every call
// spawns an independent process.
type Client struct {
	timeouts Timeouts
	logger   *slog.Logger
}

// New creates a git Client.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{timeouts: opts.Timeouts, logger: logger}
}

// Clone clones the remote into targetDir and returns targetDir. Only
// https://github.com/ remotes are accepted; when credential is non-empty it
// is embedded as x-access-token basic-auth userinfo on the remote URL.
func (c *Client) Clone(ctx context.Context, remoteURL, credential, targetDir string) (string, error) {
	if !strings.HasPrefix(remoteURL, allowedRemotePrefix) {
		return "", &OperationError{Op: "clone", Err: fmt.Errorf("remote must start with %s", allowedRemotePrefix)}
	}

	authURL := remoteURL
	if credential != "" {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", &OperationError{Op: "clone", Err: fmt.Errorf("parse remote url: %w", err)}
		}
		u.User = url.UserPassword("x-access-token", credential)
		authURL = u.String()
	}

	if _, err := c.run(ctx, "clone", c.timeouts.Clone, "", "clone", authURL, targetDir); err != nil {
		return "", err
	}
	return targetDir, nil
}

// Fetch updates all remotes for the repository at repoPath.
func (c *Client) Fetch(ctx context.Context, repoPath string) error {
	_, err := c.run(ctx, "fetch", c.timeouts.Fetch, repoPath, "fetch", "--all", "--prune")
	return err
}

// Checkout switches the working tree to ref.
func (c *Client) Checkout(ctx context.Context, repoPath, ref string) error {
	_, err := c.run(ctx, "checkout", c.timeouts.Checkout, repoPath, "checkout", ref)
	return err
}

// Diff returns the name-status listing and the full unified diff between
// base and target, using three-dot notation so only the target side's
// changes count.
func (c *Client) Diff(ctx context.Context, repoPath, base, target string) (string, string, error) {
	spec := base + "..." + target

	nameStatus, err := c.run(ctx, "diff", c.timeouts.Diff, repoPath, "diff", "--name-status", spec)
	if err != nil {
		return "", "", err
	}
	fullText, err := c.run(ctx, "diff", c.timeouts.Diff, repoPath, "diff", spec)
	if err != nil {
		return "", "", err
	}
	return nameStatus, fullText, nil
}

// RevParse resolves ref to a full commit SHA.
func (c *Client) RevParse(ctx context.Context, repoPath, ref string) (string, error) {
	out, err := c.run(ctx, "rev-parse", c.timeouts.RevParse, repoPath, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) run(ctx context.Context, op string, timeout time.Duration, dir string, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s", timeout)
		}
		return "", &OperationError{Op: op, Stderr: redact(stderr.String()), Err: err}
	}

	c.logger.DebugContext(ctx, "git subprocess finished",
		"op", op,
		"duration_ms", elapsed.Milliseconds())
	return stdout.String(), nil
}

// redact strips basic-auth userinfo from any URL that git echoed back.
func redact(s string) string {
	s = strings.TrimSpace(s)
	const marker = "@github.com"

	var b strings.Builder
	for {
		at := strings.Index(s, marker)
		if at < 0 {
			b.WriteString(s)
			return b.String()
		}
		scheme := strings.LastIndex(s[:at], "https://")
		if scheme < 0 {
			b.WriteString(s[:at+len(marker)])
		} else {
			b.WriteString(s[:scheme+len("https://")])
			b.WriteString("***")
			b.WriteString(marker)
		}
		s = s[at+len(marker):]
	}
}
