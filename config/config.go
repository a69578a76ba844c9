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
	Port        string
	Env         string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	BcryptCost  int
	// Serve /v1/swagger; disable in locked-down deployments
	SwaggerEnabled bool
	// Resume parser service
	ResumeParserURL        string
	ResumeParserTimeout    time.Duration // 0 disables the transport timeout
	ResumeParserMaxRetries int
	ExperienceCapYears     int
	// Resume uploads
	ResumeMaxSizeMB     int
	ResumeAllowedMIMEs  []string
	StorageDriver       string // "local" or "s3"
	UploadDir           string
	S3Provider          string
	S3AccessKeyID       string
	S3SecretAccessKey   string
	S3Region            string
	S3Bucket            string
	S3Endpoint          string
	ClamAVAddress       string
	UploadRatePerMinute int
	UploadRatePerDay    int
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		BcryptCost:     getEnvInt("BCRYPT_COST", 12),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		// Trailing slash trimmed so the client can append /parse-resume/
		ResumeParserURL:        strings.TrimRight(getEnv("RESUME_PARSER_URL", "http://127.0.0.1:8000"), "/"),
		ResumeParserTimeout:    getEnvDuration("RESUME_PARSER_TIMEOUT", 60*time.Second),
		ResumeParserMaxRetries: getEnvInt("RESUME_PARSER_MAX_RETRIES", 1),
		ExperienceCapYears:     getEnvInt("EXPERIENCE_CAP_YEARS", 10),
		ResumeMaxSizeMB:        getEnvInt("RESUME_MAX_SIZE_MB", 5),
		ResumeAllowedMIMEs:     getEnvList("RESUME_ALLOWED_MIME_TYPES", []string{"application/pdf"}),
		StorageDriver:          getEnv("STORAGE_DRIVER", "local"),
		UploadDir:              getEnv("UPLOAD_DIR", "uploads"),
		S3Provider:             getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:          getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:      getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:               getEnv("S3_REGION", "us-east-1"),
		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3Endpoint:             getEnv("S3_ENDPOINT", ""),
		ClamAVAddress:          getEnv("CLAMAV_ADDRESS", ""),
		UploadRatePerMinute:    getEnvInt("UPLOAD_RATE_PER_MINUTE", 10),
		UploadRatePerDay:       getEnvInt("UPLOAD_RATE_PER_DAY", 50),
		UpstashRedisURL:        getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword:   getEnv("UPSTASH_REDIS_PASSWORD", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. All authenticated requests will be rejected.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Upload rate limiting will use in-memory fallback.")
	}
	if cfg.StorageDriver == "s3" && cfg.S3Bucket == "" {
		log.Println("WARNING: STORAGE_DRIVER=s3 but S3_BUCKET is empty.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResumeMaxBytes is the upload size ceiling in bytes.
func (c *Config) ResumeMaxBytes() int64 {
	return int64(c.ResumeMaxSizeMB) << 20
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
