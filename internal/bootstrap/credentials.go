package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/myfav-coworker/prverify/internal/core"
)

// githubTokenEnvVar is the environment variable the static provider reads.
const githubTokenEnvVar = "GITHUB_TOKEN"

// StaticCredentialProvider hands out a single token for every user. It backs
// development and single-tenant deployments; a per-user encrypted store can
// replace it behind the same port.
type StaticCredentialProvider struct {
	token string
}

var _ core.CredentialProvider = (*StaticCredentialProvider)(nil)

// DecryptedTokenFor returns the configured token regardless of user.
func (p *StaticCredentialProvider) DecryptedTokenFor(_ context.Context, userID string) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("no source-control token configured for user %s (set %s)", userID, githubTokenEnvVar)
	}
	return p.token, nil
}

// CreateCredentialProvider builds the credential provider from the environment.
//
//nolint:ireturn // returning the port keeps the provider swappable.
func CreateCredentialProvider(logger *slog.Logger) core.CredentialProvider {
	token := os.Getenv(githubTokenEnvVar)
	if token == "" && logger != nil {
		logger.Warn("no source-control token configured; cloning private repositories will fail",
			"env_var", githubTokenEnvVar)
	}
	return &StaticCredentialProvider{token: token}
}
