package bootstrap

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfav-coworker/prverify/config"
)

func TestValidateServiceConfig(t *testing.T) {
	tests := []struct {
		name     string
		services string
		wantErr  bool
	}{
		{name: "worker only", services: "worker"},
		{name: "worker and reaper", services: "worker,reaper"},
		{name: "empty", services: "", wantErr: true},
		{name: "unknown service", services: "worker,scheduler", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{Services: tt.services}
			err := ValidateServiceConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateServiceConfigNil(t *testing.T) {
	require.Error(t, ValidateServiceConfig(nil))
}

func TestGetEnabledServices(t *testing.T) {
	cfg := &config.AppConfig{Services: "reaper,worker"}
	got := GetEnabledServices(cfg)
	sort.Strings(got)
	assert.Equal(t, []string{"reaper", "worker"}, got)

	assert.Empty(t, GetEnabledServices(nil))
	assert.Empty(t, GetEnabledServices(&config.AppConfig{Services: "bogus"}))
}

func TestStaticCredentialProvider(t *testing.T) {
	t.Run("returns the configured token", func(t *testing.T) {
		p := &StaticCredentialProvider{token: "ghp_token"}
		token, err := p.DecryptedTokenFor(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "ghp_token", token)
	})

	t.Run("errors when no token is configured", func(t *testing.T) {
		p := &StaticCredentialProvider{}
		_, err := p.DecryptedTokenFor(context.Background(), "user-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	})
}

func TestLaunchBackgroundSkipsDisabledModes(t *testing.T) {
	deps := &serviceStartupDeps{
		ctx:             context.Background(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeWorker: true},
	}

	done := launchBackground(deps, backgroundService{
		mode:  config.ServiceModeReaper,
		name:  "queue reaper",
		start: func(context.Context) error { return nil },
	})
	assert.Nil(t, done)
}
