package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Presence  PresenceConfig  `yaml:"presence"`
	Leads     LeadsConfig     `yaml:"leads"`
	Activity  ActivityConfig  `yaml:"activity"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"Content-Disposition,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxUploadBytes caps the size of a spreadsheet upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every query server-side; spreadsheet imports
	// run in one transaction and are the longest statements the API issues.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
	AppName          string        `yaml:"app_name"          env:"DATABASE_APP_NAME"          env-default:"leadflow-api"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// RedisConfig holds the dashboard cache connection. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// Enabled reports whether a redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig holds authentication and OAuth settings.
type AuthConfig struct {
	JWTSecret           string        `yaml:"jwt_secret"           env:"AUTH_JWT_SECRET"           env-required:"true"`
	JWTIssuer           string        `yaml:"jwt_issuer"           env:"AUTH_JWT_ISSUER"           env-default:"leadflow"`
	TokenTTL            time.Duration `yaml:"token_ttl"            env:"AUTH_TOKEN_TTL"            env-default:"12h"`
	PasswordHashCost    int           `yaml:"password_hash_cost"   env:"AUTH_PASSWORD_HASH_COST"   env-default:"10"`
	PasswordMinLength   int           `yaml:"password_min_length"  env:"AUTH_PASSWORD_MIN_LENGTH"  env-default:"6"`
	RegistrationEnabled bool          `yaml:"registration_enabled" env:"AUTH_REGISTRATION_ENABLED" env-default:"true"`
	GoogleClientID      string        `yaml:"google_client_id"     env:"AUTH_GOOGLE_CLIENT_ID"`
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c AuthConfig) GoogleEnabled() bool { return strings.TrimSpace(c.GoogleClientID) != "" }

// PresenceConfig controls the Active/Inactive status in the user list.
type PresenceConfig struct {
	ActiveWindow time.Duration `yaml:"active_window" env:"PRESENCE_ACTIVE_WINDOW" env-default:"15m"`
}

// LeadsConfig holds lead listing and bulk I/O limits.
type LeadsConfig struct {
	DefaultPageSize int           `yaml:"default_page_size" env:"LEADS_DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int           `yaml:"max_page_size"     env:"LEADS_MAX_PAGE_SIZE"     env-default:"100"`
	ExportMaxRows   int           `yaml:"export_max_rows"   env:"LEADS_EXPORT_MAX_ROWS"   env-default:"10000"`
	ImportMaxRows   int           `yaml:"import_max_rows"   env:"LEADS_IMPORT_MAX_ROWS"   env-default:"5000"`
	ImportChunkSize int           `yaml:"import_chunk_size" env:"LEADS_IMPORT_CHUNK_SIZE" env-default:"200"`
	RecentLimit     int           `yaml:"recent_limit"      env:"LEADS_RECENT_LIMIT"      env-default:"5"`
	StatsCacheTTL   time.Duration `yaml:"stats_cache_ttl"   env:"LEADS_STATS_CACHE_TTL"   env-default:"30s"`
}

// ActivityConfig holds audit log settings.
type ActivityConfig struct {
	ReadLimit    int           `yaml:"read_limit"    env:"ACTIVITY_READ_LIMIT"    env-default:"100"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ACTIVITY_WRITE_TIMEOUT" env-default:"3s"`
}

// RateLimitConfig throttles the unauthenticated auth endpoints per client.
type RateLimitConfig struct {
	AuthPerMinute int           `yaml:"auth_per_minute" env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"30"`
	IdleTTL       time.Duration `yaml:"idle_ttl"        env:"RATE_LIMIT_IDLE_TTL"        env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	// File appends records to a file instead of stderr. The agent sets it
	// so log lines do not interleave with its prompt.
	File string `yaml:"file" env:"LOG_FILE"`
}
