package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Oracle   OracleConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	S3       S3Config
	Qdrant   QdrantConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type OracleConfig struct {
	Provider   string
	Timeout    time.Duration
	MaxRetries int
	RPS        float64
	Burst      int
	ChunkSize  int
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RedisConfig struct {
	URL             string
	KeywordCacheTTL time.Duration
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "ats_analyzer"),
			SQLitePath: getEnv("SQLITE_PATH", "./ats_analyzer.db"),
		},
		Oracle: OracleConfig{
			Provider:   getEnv("ORACLE_PROVIDER", ProviderGemini),
			Timeout:    getEnvAsDuration("ORACLE_TIMEOUT", "45s"),
			MaxRetries: getEnvAsInt("ORACLE_MAX_RETRIES", 2),
			RPS:        getEnvAsFloat("ORACLE_RPS", 2),
			Burst:      getEnvAsInt("ORACLE_BURST", 4),
			ChunkSize:  getEnvAsInt("ORACLE_CHUNK_SIZE", 12000),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Redis: RedisConfig{
			URL:             getEnv("REDIS_URL", ""),
			KeywordCacheTTL: getEnvAsDuration("KEYWORD_CACHE_TTL", "24h"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("ANALYSIS_EXCHANGE", "analysis_events"),
		},
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "auto"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "job_descriptions"),
			VectorSize: uint64(getEnvAsInt("QDRANT_VECTOR_SIZE", 768)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("INDEX_WORKERS", 2),
			RetryMaxAttempts:  getEnvAsInt("INDEX_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("INDEX_RETRY_DELAY", "2s"),
		},
	}
}

// Validate fails fast on settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Oracle.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when ORACLE_PROVIDER=gemini"))
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when ORACLE_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ORACLE_PROVIDER %q", c.Oracle.Provider))
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}

	if c.Qdrant.URL != "" && c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required for job description embeddings when QDRANT_URL is set"))
	}

	if c.Storage.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
