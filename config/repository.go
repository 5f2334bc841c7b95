package config

import "time"

// RepositoryConfig contains local repository cache configuration.
type RepositoryConfig struct {
	// BasePath is the directory under which clones are cached, keyed by owner/repo.
	BasePath string `env:"REPO_BASE_PATH" envDefault:"/tmp/prverify-repos"`

	// MaxSizeMB is the size cap used by clone validation warnings.
	MaxSizeMB int `env:"REPO_MAX_SIZE_MB" envDefault:"400"`

	// CloneTimeout bounds a single git clone subprocess.
	CloneTimeout time.Duration `env:"REPO_CLONE_TIMEOUT" envDefault:"300s"`

	// FetchTimeout bounds a single git fetch subprocess.
	FetchTimeout time.Duration `env:"REPO_FETCH_TIMEOUT" envDefault:"60s"`

	// CheckoutTimeout bounds a single git checkout subprocess.
	CheckoutTimeout time.Duration `env:"REPO_CHECKOUT_TIMEOUT" envDefault:"30s"`

	// DiffTimeout bounds a single git diff subprocess.
	DiffTimeout time.Duration `env:"REPO_DIFF_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to repository configuration values.
func (r *RepositoryConfig) Sanitize() {
	if r.BasePath == "" {
		r.BasePath = "/tmp/prverify-repos"
	}
	if r.MaxSizeMB < 1 {
		r.MaxSizeMB = 400
	}
	if r.CloneTimeout <= 0 {
		r.CloneTimeout = 300 * time.Second
	}
	if r.FetchTimeout <= 0 {
		r.FetchTimeout = 60 * time.Second
	}
	if r.CheckoutTimeout <= 0 {
		r.CheckoutTimeout = 30 * time.Second
	}
	if r.DiffTimeout <= 0 {
		r.DiffTimeout = 30 * time.Second
	}
}
