package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Service names accepted by Validate.
const (
	ServiceAuth     = "auth"
	ServiceEmployee = "employee"
	ServicePayroll  = "payroll"
	ServiceGateway  = "gateway"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Redis        RedisConfig
	AuthClient   AuthClientConfig
	Services     ServicesConfig
	Payroll      PayrollConfig
	Storage      StorageConfig
	CORS         CORSConfig
	OAuth2Google OAuth2GoogleConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	Version         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds the RS256 key material and token lifetimes.
// PublicKeyPath may be empty when the private key is present; the public half is derived from it.
type JWTConfig struct {
	PrivateKeyPath    string
	PublicKeyPath     string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// AuthClientConfig configures the remote calls to the auth service.
type AuthClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServicesConfig holds the upstream addresses the gateway forwards to.
type ServicesConfig struct {
	AuthURL     string
	EmployeeURL string
	PayrollURL  string
}

type PayrollConfig struct {
	DeductionRatePerMinute decimal.Decimal
	Currency               string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	FrontendURL  string
}

// Load reads configuration from the environment. A .env file is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_SHUTDOWN_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Version:         getEnv("APP_VERSION", "v1.0.0"),
		ShutdownTimeout: shutdownTimeout,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// JWT configuration
	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	refreshExp, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		PrivateKeyPath:    getEnv("JWT_PRIVATE_KEY_PATH", ""),
		PublicKeyPath:     getEnv("JWT_PUBLIC_KEY_PATH", ""),
		AccessExpiration:  accessExp,
		RefreshExpiration: refreshExp,
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Username: getEnv("REDIS_USER", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Remote authorization
	authTimeout, err := time.ParseDuration(getEnv("AUTH_CLIENT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_CLIENT_TIMEOUT: %w", err)
	}

	config.AuthClient = AuthClientConfig{
		BaseURL: strings.TrimRight(getEnv("AUTH_SERVICE_URL", "http://localhost:8081"), "/"),
		Timeout: authTimeout,
	}

	config.Services = ServicesConfig{
		AuthURL:     getEnv("AUTH_SERVICE_URL", "http://localhost:8081"),
		EmployeeURL: getEnv("EMPLOYEE_SERVICE_URL", "http://localhost:8082"),
		PayrollURL:  getEnv("PAYROLL_SERVICE_URL", "http://localhost:8083"),
	}

	// Payroll configuration
	rate, err := decimal.NewFromString(getEnv("DEDUCTION_RATE_PER_MINUTE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUCTION_RATE_PER_MINUTE: %w", err)
	}

	config.Payroll = PayrollConfig{
		DeductionRatePerMinute: rate,
		Currency:               getEnv("PAYROLL_CURRENCY", "IDR"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8082/uploads"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES", "email"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	return config, nil
}

// Validate checks the keys the given service cannot start without.
func (c *Config) Validate(service string) error {
	switch service {
	case ServiceAuth:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.JWT.PrivateKeyPath == "" {
			return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
		}
		if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
			return fmt.Errorf("JWT expiration times must be positive")
		}
	case ServiceEmployee, ServicePayroll:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.AuthClient.BaseURL == "" {
			return fmt.Errorf("AUTH_SERVICE_URL is required")
		}
		if service == ServicePayroll && c.Payroll.DeductionRatePerMinute.IsNegative() {
			return fmt.Errorf("DEDUCTION_RATE_PER_MINUTE must be non-negative")
		}
	case ServiceGateway:
		if c.Services.AuthURL == "" || c.Services.EmployeeURL == "" || c.Services.PayrollURL == "" {
			return fmt.Errorf("AUTH_SERVICE_URL, EMPLOYEE_SERVICE_URL and PAYROLL_SERVICE_URL are required")
		}
	default:
		return fmt.Errorf("unknown service %q", service)
	}

	if c.AuthClient.Timeout <= 0 {
		return fmt.Errorf("AUTH_CLIENT_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// OAuthEnabled reports whether Google login is configured.
func (c *Config) OAuthEnabled() bool {
	return c.OAuth2Google.ClientID != "" && c.OAuth2Google.ClientSecret != "" && c.OAuth2Google.RedirectURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
