package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type DB struct {
	DbHOST       string
	DbPORT       string
	DbUSER       string
	DbPASSWORD   string
	DbNAME       string
	DbSSLMODE    string
	MaxOpenConns int
	MaxIdleConns int
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	// PublicURL is prepended to object names when building media links.
	PublicURL string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Log                  Log
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	RunMigrations        bool
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:       getEnv("DB_HOST", "localhost"),
		DbPORT:       getEnv("DB_PORT", "5432"),
		DbUSER:       getEnv("DB_USER", "postgres"),
		DbPASSWORD:   getEnv("DB_PASSWORD", "password"),
		DbNAME:       getEnv("DB_NAME", "social"),
		DbSSLMODE:    getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
	}
}

func LoadLog() Log {
	return Log{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Log:                  LoadLog(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
	}
}
