package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		viper.Reset()
	})
	viper.Reset()
	return dir
}

func TestLoadConfig_EnvironmentOnly(t *testing.T) {
	chdirTemp(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("INTAKE_SAVE_URL", "http://save.local/api/save_data")
	t.Setenv("INTAKE_SESSION_IDLE", "5m")
	t.Setenv("INTAKE_SAVE_SECRET", "save-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://save.local/api/save_data", cfg.Intake.SaveURL)
	assert.Equal(t, 5*time.Minute, cfg.Intake.SessionIdle)
	assert.Equal(t, "save-secret", cfg.Intake.SaveSecret)
	assert.Equal(t, 15*time.Second, cfg.Intake.SaveTimeout)
	assert.Equal(t, 2, cfg.Intake.SaveRetries)
	assert.Equal(t, time.Duration(0), cfg.Intake.StateTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	env := "JWT_SECRET=from-file\nAPP_PORT=9090\nREDIS_DB=3\nJWT_ACCESS_EXPIRY=1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	chdirTemp(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
