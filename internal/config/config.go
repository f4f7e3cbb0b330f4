package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// JWTConfig holds the symmetric signing key and token claim settings
type JWTConfig struct {
	// Key is the HS256 signing key; must be overridden outside development
	Key      string
	Issuer   string
	Audience string
	// ExpiresInMinutes is the token lifetime in minutes
	ExpiresInMinutes int
}

type StorageConfig struct {
	// Mode selects the storage backend: "local" or "azure"
	Mode                  string
	LocalBasePath         string
	LocalBaseURL          string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout  int
	WriteTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	// Use "*" to allow all origins (not recommended for production)
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting for the login endpoint
type RateLimitConfig struct {
	Enabled        bool
	LoginPerMinute int
}

// SeedConfig controls development data seeding
type SeedConfig struct {
	Enabled       bool
	AdminUsername string
	AdminPassword string
	AdminRole     string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// TokenTTL returns the JWT lifetime as duration
func (j *JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.ExpiresInMinutes) * time.Minute
}

// MaxUploadBytes returns the upload size cap in bytes
func (s *StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadSizeMB * 1024 * 1024
}

const devSigningKey = "dev-only-signing-key-do-not-use-in-production"

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Sensitive values come from environment when not in the config file
	if cfg.JWT.Key == "" {
		cfg.JWT.Key = v.GetString("JWT_KEY")
	}
	if cfg.Storage.CloudConnectionString == "" {
		cfg.Storage.CloudConnectionString = v.GetString("STORAGE_CLOUDCONNECTIONSTRING")
	}
	if cfg.Seed.AdminPassword == "" {
		cfg.Seed.AdminPassword = v.GetString("SEED_ADMINPASSWORD")
	}

	if cfg.App.Environment != "development" && cfg.JWT.Key == devSigningKey {
		return nil, fmt.Errorf("JWT_KEY must be configured outside development")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Indigo POS API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pos")
	v.SetDefault("database.user", "pos_user")
	v.SetDefault("database.password", "pos_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// JWT defaults
	v.SetDefault("jwt.key", devSigningKey)
	v.SetDefault("jwt.issuer", "indigo-pos-api")
	v.SetDefault("jwt.audience", "indigo-pos-client")
	v.SetDefault("jwt.expiresInMinutes", 60)

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.localBaseURL", "/uploads")
	v.SetDefault("storage.cloudContainer", "product-images")
	v.SetDefault("storage.maxUploadSizeMB", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type"})
	v.SetDefault("cors.exposedHeaders", []string{"Location"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Rate limiting defaults (login endpoint)
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.loginPerMinute", 20)

	// Seed defaults (development only)
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.adminUsername", "admin")
	v.SetDefault("seed.adminPassword", "admin123")
	v.SetDefault("seed.adminRole", "Admin")
}
