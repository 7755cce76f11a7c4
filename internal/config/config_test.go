package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, "product_catalog", cfg.Database.Database)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Host)
	assert.Equal(t, "product-catalog", cfg.MinIO.Bucket)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, int64(5), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 5, cfg.Upload.MaxAdditionalImages)
	assert.Equal(t, int64(32)<<20, cfg.Upload.MultipartMemoryLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("UPLOAD_MAX_ADDITIONAL_IMAGES", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Upload.MaxAdditionalImages)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate_ProductionRejectsDefaultCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty db password",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "default minio access key",
			mutate:  func(c *Config) { c.MinIO.AccessKey = "minioadmin" },
			wantErr: "MINIO",
		},
		{
			name:    "default minio secret key",
			mutate:  func(c *Config) { c.MinIO.SecretKey = "minioadmin" },
			wantErr: "MINIO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				App:      AppConfig{Environment: "production"},
				Database: DatabaseConfig{Password: "secret"},
				MinIO:    MinIOConfig{AccessKey: "real-key", SecretKey: "real-secret"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DevelopmentAllowsDefaults(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Environment: "development"},
		MinIO: MinIOConfig{AccessKey: "minioadmin", SecretKey: "minioadmin"},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeAdditionalImageLimit(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Environment: "development"},
		Upload: UploadConfig{MaxAdditionalImages: -1},
	}
	assert.Error(t, cfg.Validate())
}
