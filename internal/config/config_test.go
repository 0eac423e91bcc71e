package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("BUCKET", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8081", cfg.Port)
		assert.Equal(t, "s3", cfg.Storage.Type)
		assert.Equal(t, "dynamodb", cfg.Storage.TableBackend)
		assert.Equal(t, 3, cfg.AWS.MaxAttempts)
		assert.Equal(t, 5*time.Second, cfg.AWS.MaxBackoff)
		assert.Equal(t, "./data/cdkapp.db", cfg.Database.Path)
		assert.Empty(t, cfg.Environment)
		assert.Empty(t, cfg.Bucket)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "PRD")
		t.Setenv("BUCKET", "prd-mys3bucket42")
		t.Setenv("REGION", "us-west-2")
		t.Setenv("TABLE", "PRD-User")
		t.Setenv("TABLE_BACKEND", "sqlite")
		t.Setenv("AWS_MAX_ATTEMPTS", "5")
		t.Setenv("AWS_FORCE_PATH_STYLE", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "PRD", cfg.Environment)
		assert.Equal(t, "prd-mys3bucket42", cfg.Bucket)
		assert.Equal(t, "us-west-2", cfg.Region)
		assert.Equal(t, "PRD-User", cfg.Table)
		assert.Equal(t, "sqlite", cfg.Storage.TableBackend)
		assert.Equal(t, 5, cfg.AWS.MaxAttempts)
		assert.True(t, cfg.AWS.ForcePathStyle)
		assert.Equal(t, "PRD-", cfg.TablePrefix())
	})
}

func TestAdaptConfigForServerless(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Type: "mock", TableBackend: "sqlite"},
		Log:     LogConfig{Format: "text"},
	}

	if !IsServerlessMode() {
		adapted := AdaptConfigForServerless(cfg)
		assert.Equal(t, "sqlite", adapted.Storage.TableBackend, "config must be untouched outside Lambda")
		return
	}

	adapted := AdaptConfigForServerless(cfg)
	assert.Equal(t, "dynamodb", adapted.Storage.TableBackend)
	assert.Equal(t, "s3", adapted.Storage.Type)
	assert.Equal(t, "json", adapted.Log.Format)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(LogConfig{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = NewLogger(LogConfig{Level: "bogus"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
