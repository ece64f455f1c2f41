package config

import (
	"time"
)

// Config is the root server configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
	CORS          CORSConfig          `yaml:"cors"`
	Redis         RedisConfig         `yaml:"redis"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Retention     RetentionConfig     `yaml:"retention"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps mutations per caller. Zero disables the limit.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds access token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"journey-planner"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RedisConfig holds the notification count cache settings.
// An empty URL disables the cache.
type RedisConfig struct {
	URL       string        `yaml:"url"        env:"REDIS_URL"`
	KeyPrefix string        `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"journey:"`
	CountTTL  time.Duration `yaml:"count_ttl"  env:"REDIS_COUNT_TTL"  env-default:"30s"`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// NotificationsConfig holds notification settings shared by server and client.
type NotificationsConfig struct {
	RecentWindow time.Duration `yaml:"recent_window" env:"NOTIFICATIONS_RECENT_WINDOW" env-default:"168h"`
	PollInterval time.Duration `yaml:"poll_interval" env:"NOTIFICATIONS_POLL_INTERVAL" env-default:"5m"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"NOTIFICATIONS_FETCH_TIMEOUT" env-default:"10s"`
}

// RetentionConfig bounds how long the cleanup command keeps history.
// A zero duration keeps rows forever.
type RetentionConfig struct {
	DeclinedInvitations time.Duration `yaml:"declined_invitations" env:"RETENTION_DECLINED_INVITATIONS" env-default:"2160h"`
	AuditLog            time.Duration `yaml:"audit_log"            env:"RETENTION_AUDIT_LOG"            env-default:"8760h"`
}

// ClientConfig configures the planner client kit used by command line tools.
type ClientConfig struct {
	BaseURL        string              `yaml:"base_url"        env:"PLANNER_BASE_URL"        env-default:"http://localhost:8080"`
	Token          string              `yaml:"token"           env:"PLANNER_TOKEN"           env-required:"true"`
	RequestTimeout time.Duration       `yaml:"request_timeout" env:"PLANNER_REQUEST_TIMEOUT" env-default:"15s"`
	Log            LogConfig           `yaml:"log"`
	Notifications  NotificationsConfig `yaml:"notifications"`
}
