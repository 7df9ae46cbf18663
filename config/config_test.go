package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
}

func TestLoadWithEnv_FromYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
env:
  env: test
  serviceName: markeep
  log:
    level: debug
http:
  port: 8080
token:
  secret: yaml-secret
  accessTTL: 15m
naverOAuth:
  clientId: naver-id
  clientSecret: naver-secret
  state: naver-state
`)

	cfg, err := LoadWithEnv[Config]("config", dir)
	require.NoError(t, err)

	assert.Equal(t, "markeep", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "yaml-secret", cfg.Token.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, "naver-id", cfg.NaverOAuth.ClientID)
	assert.Equal(t, "naver-state", cfg.NaverOAuth.State)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
token:
  secret: yaml-secret
  accessTTL: 15m
`)

	t.Setenv("TOKEN_SECRET", "env-secret")

	cfg, err := LoadWithEnv[Config]("config", dir)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Token.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("config", t.TempDir())
	assert.Error(t, err)
}
