package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, "HolisticAgro", cfg.Mongo.Database)
	assert.Equal(t, 240*time.Hour, cfg.Token.TTL)
	assert.Equal(t, "local", cfg.Storage.Disk)
	assert.Equal(t, "files", cfg.Storage.LocalRoot)
	assert.Equal(t, 200, cfg.HTTP.RateLimitPerMinute)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("AGRO_TEST_ONLY=1\nADMIN_PHONES=01700000000,01800000000\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("AGRO_TEST_ONLY")
		os.Unsetenv("ADMIN_PHONES")
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"01700000000", "01800000000"}, cfg.App.AdminPhones)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownDisk(t *testing.T) {
	t.Setenv("STORAGE_DISK", "ftp")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "unsupported STORAGE_DISK")
}

func TestLoadS3RequiresBucket(t *testing.T) {
	t.Setenv("STORAGE_DISK", "s3")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "S3_BUCKET")
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "ACCESS_KEY_TOKEN")

	t.Setenv("ACCESS_KEY_TOKEN", "a-real-secret")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
}
