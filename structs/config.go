package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Storage   *StorageConfig
	Auth      *AuthConfig
	Email     *EmailConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // CBLLS
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	ServerURL      string        // public API base URL, used in email links
	FrontendURL    string        // storefront base URL, used in email links
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

// StorageConfig selects and tunes the durable document backend.
type StorageConfig struct {
	Driver     string // file, redis or postgres
	QuotaBytes int64  // max serialized size per document; 0 disables the quota

	// file driver
	DataDir string

	// redis driver
	RedisAddress  string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxRetries    int
	PoolSize      int
	MinIdleConns  int

	// postgres driver
	PostgresDSN string
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	AdminEmails        []string // allow-list granting the admin role
	MinPasswordLength  int
}

type EmailConfig struct {
	Enabled                 bool
	ApiKey                  string
	From                    string
	SupportEmail            string
	VerificationTokenExpiry time.Duration
	ResetTokenExpiry        time.Duration
}

type RateLimitConfig struct {
	Enabled         bool
	AuthLimit       int
	AuthWindow      time.Duration
	AdminLimit      int
	AdminWindow     time.Duration
	ExpensiveLimit  int
	ExpensiveWindow time.Duration
	GeneralLimit    int
	GeneralWindow   time.Duration
}
