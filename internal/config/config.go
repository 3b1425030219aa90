package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	DocStore  DocStoreConfig
	BlobStore BlobStoreConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RemoteTimeout      time.Duration
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type DocStoreConfig struct {
	Driver             string // "firestore", "mongo", "postgres" or "memory"
	FirestoreProjectID string
	FirestoreCreds     string
	MongoURI           string
	MongoDatabase      string
	MongoUsername      string
	MongoPassword      string
}

type BlobStoreConfig struct {
	Driver         string // "minio" or "memory"
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
	PresignTTL     time.Duration
}

type APIKeys struct {
	JwtSecret string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			RemoteTimeout:      getEnvAsDuration("REMOTE_TIMEOUT", 10*time.Second),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		DocStore: DocStoreConfig{
			Driver:             strings.ToLower(getEnv("DOCSTORE_DRIVER", "memory")),
			FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
			FirestoreCreds:     getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:      getEnv("MONGO_DATABASE", "medstory"),
			MongoUsername:      getEnv("MONGO_USERNAME", ""),
			MongoPassword:      getEnv("MONGO_PASSWORD", ""),
		},
		BlobStore: BlobStoreConfig{
			Driver:         strings.ToLower(getEnv("BLOBSTORE_DRIVER", "memory")),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:    getEnv("MINIO_BUCKET", "medstory"),
			MinioRegion:    getEnv("MINIO_REGION", ""),
			MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			PresignTTL:     getEnvAsDuration("PRESIGN_TTL", 15*time.Minute),
		},
		Keys: APIKeys{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}
