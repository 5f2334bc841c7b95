package service

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/domain/diff"
	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// RepositoryServiceOptions groups dependencies for RepositoryService.
type RepositoryServiceOptions struct {
	Git         core.SourceControlRemote // Required: source control adapter
	Credentials core.CredentialProvider  // Required: token source for clones
	Config      config.RepositoryConfig
	Logger      *slog.Logger // Optional: structured logger
}

// RepositoryService maintains the local checkout cache and computes diffs.
// Checkouts are keyed by (owner, repo): created on first need, reused
// thereafter, never evicted by the pipeline.
type RepositoryService struct {
	git         core.SourceControlRemote
	credentials core.CredentialProvider
	cfg         config.RepositoryConfig
	logger      *slog.Logger
}

// NewRepositoryService constructs a new RepositoryService.
func NewRepositoryService(opts RepositoryServiceOptions) (*RepositoryService, error) {
	if opts.Git == nil {
		return nil, fmt.Errorf("SourceControlRemote is required")
	}
	if opts.Credentials == nil {
		return nil, fmt.Errorf("CredentialProvider is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RepositoryService{
		git:         opts.Git,
		credentials: opts.Credentials,
		cfg:         opts.Config,
		logger:      logger.With("component", "repository_service"),
	}, nil
}

// PathFor returns the deterministic cache path for a repository.
func (s *RepositoryService) PathFor(owner, repo string) string {
	return filepath.Join(s.cfg.BasePath, owner+"_"+repo)
}

// CloneURL returns the https remote for a repository.
func CloneURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
}

// EnsureClone returns a local checkout of the repository, cloning on first
// use with a credential resolved for userID. An existing checkout is reused
// without consulting the credential provider.
func (s *RepositoryService) EnsureClone(ctx context.Context, owner, repo, userID string) (string, error) {
	path := s.PathFor(owner, repo)

	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		s.logger.InfoContext(ctx, "reusing cached repository",
			"owner", owner,
			"repo", repo,
			"path", path)
		s.logSizeWarnings(ctx, path)
		return path, nil
	}

	token, err := s.credentials.DecryptedTokenFor(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolve credential for user %s: %w", userID, err)
	}

	if err := os.MkdirAll(s.cfg.BasePath, 0o755); err != nil {
		return "", fmt.Errorf("create repository base dir: %w", err)
	}

	s.logger.InfoContext(ctx, "cloning repository",
		"owner", owner,
		"repo", repo,
		"path", path)
	if _, err := s.git.Clone(ctx, CloneURL(owner, repo), token, path); err != nil {
		return "", fmt.Errorf("clone %s/%s: %w", owner, repo, err)
	}

	s.logSizeWarnings(ctx, path)
	return path, nil
}

// Checkout moves the working tree to ref. Refs are fetched first; a fetch
// failure is only a warning since the ref may already be local.
func (s *RepositoryService) Checkout(ctx context.Context, path, ref string) error {
	if err := s.git.Fetch(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "fetch failed, trying checkout anyway",
			"path", path,
			"error", err)
	}

	if err := s.git.Checkout(ctx, path, ref); err != nil {
		return fmt.Errorf("checkout %s: %w", ref, err)
	}
	return nil
}

// Diff computes the structured change set between base and target.
func (s *RepositoryService) Diff(ctx context.Context, path, base, target string) (*model.DiffSummary, error) {
	nameStatus, fullText, err := s.git.Diff(ctx, path, base, target)
	if err != nil {
		return nil, fmt.Errorf("diff %s...%s: %w", base, target, err)
	}

	summary := diff.Analyze(base, target, nameStatus, fullText)
	s.logger.InfoContext(ctx, "diff computed",
		"base", base,
		"target", target,
		"total_files", summary.TotalFilesChanged,
		"relevant_files", summary.RelevantFilesChanged)
	return summary, nil
}

// RemoveClone deletes a cached checkout. Operator tooling only; the pipeline
// itself never evicts.
func (s *RepositoryService) RemoveClone(owner, repo string) error {
	path := s.PathFor(owner, repo)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove clone %s: %w", path, err)
	}
	return nil
}

// SizeBytes walks the checkout and sums regular file sizes.
func (s *RepositoryService) SizeBytes(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", path, err)
	}
	return total, nil
}

// SizeValidation reports a checkout's size against the configured cap.
type SizeValidation struct {
	Valid    bool
	SizeMB   float64
	Warnings []string
}

// ValidateSize checks a checkout against maxMB. Over the cap yields an
// "exceeds limit" warning and invalid; at 80% of the cap an "approaching
// limit" warning fires (both fire together when over).
func (s *RepositoryService) ValidateSize(path string, maxMB int) (SizeValidation, error) {
	bytes, err := s.SizeBytes(path)
	if err != nil {
		return SizeValidation{}, err
	}

	sizeMB := float64(bytes) / (1024 * 1024)
	v := SizeValidation{Valid: true, SizeMB: sizeMB}

	if sizeMB > float64(maxMB) {
		v.Valid = false
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("repository size %.1f MB exceeds limit of %d MB", sizeMB, maxMB))
	}
	if sizeMB >= 0.8*float64(maxMB) {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("repository size %.1f MB approaching limit of %d MB", sizeMB, maxMB))
	}
	return v, nil
}

func (s *RepositoryService) logSizeWarnings(ctx context.Context, path string) {
	v, err := s.ValidateSize(path, s.cfg.MaxSizeMB)
	if err != nil {
		s.logger.WarnContext(ctx, "repository size check failed", "path", path, "error", err)
		return
	}
	for _, warning := range v.Warnings {
		s.logger.WarnContext(ctx, warning, "path", path)
	}
}
