package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ACCESS_TOKEN_DURATION", "not-a-duration")
	t.Setenv("MAX_UPLOAD_SIZE", "-1")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ENDPOINT", "files.local:9000")
	t.Setenv("MINIO_PUBLIC_URL", "")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "", cfg.MinIO.PublicURL)
}

func TestLoadMinIO_PublicURLFallback(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "files.local:9000")
	t.Setenv("MINIO_USE_SSL", "false")

	minio := LoadMinIO()

	assert.Equal(t, "http://files.local:9000", minio.PublicURL)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BAD_INT", "x")
	t.Setenv("SOME_BOOL", "yes")

	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("SOME_BAD_INT", 1))
	assert.True(t, getEnvBool("SOME_BOOL", true))
	assert.Equal(t, "fallback", getEnv("SOME_MISSING_KEY_FOR_TEST", "fallback"))
}
