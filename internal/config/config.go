package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string
	Client   Client
	Server   Server
}

// Client configures how the application service is reached
type Client struct {
	UseMockData bool
	APIBaseURL  string
	MockDelay   time.Duration
	Timeout     time.Duration
	Retries     int
	RateLimit   float64 // requests per second, 0 disables
}

// Server configures the reference backend
type Server struct {
	Port       string
	Repository string // memory | postgres
	Database   Database
	Redis      Redis
	Storage    Storage
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq connection string
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Enabled reports whether a Redis address was configured
func (r Redis) Enabled() bool { return r.Addr != "" }

type Storage struct {
	Driver string // local | s3
	Dir    string
	Region string
	Bucket string
	Prefix string
}

const (
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"
	StorageLocal       = "local"
	StorageS3          = "s3"
)

// Load reads .env when present, then the environment
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		logx.Debug("No .env file found")
	}

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Client: Client{
			UseMockData: getBool("USE_MOCK_DATA", false),
			APIBaseURL:  getEnv("API_BASE_URL", ""),
			MockDelay:   getDuration("MOCK_DELAY", 500*time.Millisecond),
			Timeout:     getDuration("HTTP_TIMEOUT", 30*time.Second),
			Retries:     getInt("HTTP_RETRIES", 1),
			RateLimit:   getFloat("HTTP_RATE_LIMIT", 0),
		},
		Server: Server{
			Port:       getEnv("PORT", "8080"),
			Repository: getEnv("REPOSITORY", RepositoryMemory),
			Database: Database{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASS", "postgres"),
				Name:     getEnv("DB_NAME", "hireflow"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
			Redis: Redis{
				Addr:     getEnv("REDIS_ADDR", ""),
				Password: getEnv("REDIS_PASS", ""),
				DB:       getInt("REDIS_DB", 0),
				Key:      getEnv("REDIS_JOB_POSITIONS_KEY", "hireflow:job_positions"),
			},
			Storage: Storage{
				Driver: getEnv("STORAGE", StorageLocal),
				Dir:    getEnv("STORAGE_DIR", "./data"),
				Region: getEnv("AWS_REGION", "us-east-1"),
				Bucket: getEnv("AWS_BUCKET", ""),
				Prefix: getEnv("AWS_PREFIX", ""),
			},
		},
	}
}

// Validate checks the client settings
func (c Client) Validate() error {
	if !c.UseMockData && c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required when USE_MOCK_DATA is false")
	}
	if c.Retries < 0 {
		return fmt.Errorf("HTTP_RETRIES must not be negative, got %d", c.Retries)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// Validate checks the backend settings
func (s Server) Validate() error {
	switch s.Repository {
	case RepositoryMemory, RepositoryPostgres:
	default:
		return fmt.Errorf("unknown REPOSITORY %q", s.Repository)
	}

	switch s.Storage.Driver {
	case StorageLocal:
		if s.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for local storage")
		}
	case StorageS3:
		if s.Storage.Bucket == "" {
			return fmt.Errorf("AWS_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE %q", s.Storage.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
