package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Geocoder     GeocoderConfig
	Storage      StorageConfig
	Notification NotificationConfig
	Captcha      CaptchaConfig
	Triage       TriageConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines staff authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// GeocoderConfig points at the Nominatim-compatible lookup endpoint.
type GeocoderConfig struct {
	BaseURL        string
	Locality       string
	TimeoutSeconds int
}

// StorageConfig points at the object storage API used for ticket photos.
type StorageConfig struct {
	BaseURL string
	Bucket  string
	APIKey  string
}

// NotificationConfig configures the transactional email provider.
type NotificationConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// CaptchaConfig configures human-verification token checks. With an empty
// secret only the non-empty-token precondition is enforced.
type CaptchaConfig struct {
	VerifyURL string
	Secret    string
}

// TriageConfig optionally overrides the built-in classifier vocabulary.
type TriageConfig struct {
	KeywordsFile string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "citypulse-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			Locality:       getEnv("GEOCODER_LOCALITY", "Jerusalem"),
			TimeoutSeconds: getEnvAsInt("GEOCODER_TIMEOUT_SECONDS", 4),
		},
		Storage: StorageConfig{
			BaseURL: os.Getenv("STORAGE_BASE_URL"),
			Bucket:  getEnv("STORAGE_BUCKET", "ticket-images"),
			APIKey:  os.Getenv("STORAGE_API_KEY"),
		},
		Notification: NotificationConfig{
			Endpoint:   os.Getenv("NOTIFY_ENDPOINT"),
			ServiceID:  os.Getenv("NOTIFY_SERVICE_ID"),
			TemplateID: os.Getenv("NOTIFY_TEMPLATE_ID"),
			PublicKey:  os.Getenv("NOTIFY_PUBLIC_KEY"),
		},
		Captcha: CaptchaConfig{
			VerifyURL: getEnv("CAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Secret:    os.Getenv("CAPTCHA_SECRET"),
		},
		Triage: TriageConfig{
			KeywordsFile: os.Getenv("TRIAGE_KEYWORDS_FILE"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the geocoder call timeout duration.
func (g GeocoderConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 4 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
