package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the API server and the maintenance commands.
type Config struct {
	Env         string
	Port        string
	CORSOrigins string
	LogLevel    string
	LogFormat   string

	// AuthRateLimit is the number of register/login attempts allowed per IP each minute
	AuthRateLimit int

	DB    DBConfig
	Redis RedisConfig

	JWTSecret string
	TokenTTL  time.Duration

	Storage StorageConfig

	AllowSelfTip       bool
	SignupTokenBalance int64
	SummaryCacheTTL    time.Duration
	CleanupSchedule    string
}

// DBConfig holds the PostgreSQL DSN parts and connection pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig selects the blob storage driver ("local" or "s3").
type StorageConfig struct {
	Driver       string
	LocalDir     string
	PublicPrefix string
	S3Bucket     string
	S3Region     string
}

// DefaultJWTSecret is the development signing secret. Validate refuses it in production.
const DefaultJWTSecret = "piclips"

var defaults = map[string]interface{}{
	"ENV":                   "development",
	"PORT":                  "3000",
	"CORS_ORIGINS":          "http://localhost:5173",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
	"AUTH_RATE_LIMIT":       5,
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "piclips",
	"DB_SSLMODE":            "disable",
	"DB_MAX_IDLE_CONNS":     10,
	"DB_MAX_OPEN_CONNS":     100,
	"DB_CONN_MAX_LIFETIME":  "1h",
	"DB_CONN_MAX_IDLE_TIME": "30m",
	"REDIS_ENABLED":         true,
	"REDIS_HOST":            "localhost",
	"REDIS_PORT":            "6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"JWT_SECRET":            DefaultJWTSecret,
	"TOKEN_TTL":             "24h",
	"STORAGE_DRIVER":        "local",
	"UPLOAD_DIR":            "uploads",
	"UPLOAD_PUBLIC_PREFIX":  "/uploads",
	"AWS_REGION":            "us-east-1",
	"S3_BUCKET":             "",
	"TIP_ALLOW_SELF":        false,
	"SIGNUP_TOKEN_BALANCE":  0,
	"SUMMARY_CACHE_TTL":     "5m",
	"CLEANUP_SCHEDULE":      "",
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() *Config {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	return &Config{
		Env:         v.GetString("ENV"),
		Port:        v.GetString("PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),

		AuthRateLimit: v.GetInt("AUTH_RATE_LIMIT"),
		DB: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),
		Storage: StorageConfig{
			Driver:       v.GetString("STORAGE_DRIVER"),
			LocalDir:     v.GetString("UPLOAD_DIR"),
			PublicPrefix: v.GetString("UPLOAD_PUBLIC_PREFIX"),
			S3Bucket:     v.GetString("S3_BUCKET"),
			S3Region:     v.GetString("AWS_REGION"),
		},
		AllowSelfTip:       v.GetBool("TIP_ALLOW_SELF"),
		SignupTokenBalance: v.GetInt64("SIGNUP_TOKEN_BALANCE"),
		SummaryCacheTTL:    v.GetDuration("SUMMARY_CACHE_TTL"),
		CleanupSchedule:    v.GetString("CLEANUP_SCHEDULE"),
	}
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are only acceptable outside production.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in production")
	}
	return nil
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

// Addr returns host:port for the Redis client.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}
