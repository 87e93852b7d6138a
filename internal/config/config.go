package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	INaturalist INaturalistConfig `yaml:"inaturalist"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Geocoder    GeocoderConfig    `yaml:"geocoder"`
	GeoIP       GeoIPConfig       `yaml:"geoip"`
	Wikipedia   WikipediaConfig   `yaml:"wikipedia"`
	Chat        ChatConfig        `yaml:"chat"`
	Redis       RedisConfig       `yaml:"redis"`
	Lifelist    LifelistConfig    `yaml:"lifelist"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
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
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout caps every query server-side. Zero leaves the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds settings for verifying tokens issued by the identity provider.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"   env:"AUTH_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string `yaml:"jwt_issuer"   env:"AUTH_JWT_ISSUER"`
	JWTAudience string `yaml:"jwt_audience" env:"AUTH_JWT_AUDIENCE" env-default:"authenticated"`
}

// INaturalistConfig configures the live observation provider.
type INaturalistConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"INATURALIST_BASE_URL"   env-default:"https://api.inaturalist.org/v1"`
	UserAgent string        `yaml:"user_agent" env:"INATURALIST_USER_AGENT" env-default:"WildlifeExplorer/1.0"`
	Timeout   time.Duration `yaml:"timeout"    env:"INATURALIST_TIMEOUT"    env-default:"10s"`
}

// ResolverConfig tunes the species resolution pipeline and its result cache.
type ResolverConfig struct {
	DefaultDistanceKm float64       `yaml:"default_distance_km" env:"RESOLVER_DEFAULT_DISTANCE_KM" env-default:"50"`
	BridgeLimit       int           `yaml:"bridge_limit"        env:"RESOLVER_BRIDGE_LIMIT"        env-default:"30"`
	BridgeTimeout     time.Duration `yaml:"bridge_timeout"      env:"RESOLVER_BRIDGE_TIMEOUT"      env-default:"8s"`
	CacheTTL          time.Duration `yaml:"cache_ttl"           env:"RESOLVER_CACHE_TTL"           env-default:"5m"`
	CacheCleanup      time.Duration `yaml:"cache_cleanup"       env:"RESOLVER_CACHE_CLEANUP"       env-default:"30m"`
	PersistLive       bool          `yaml:"persist_live"        env:"RESOLVER_PERSIST_LIVE"        env-default:"true"`
	LiveRetention     time.Duration `yaml:"live_retention"      env:"RESOLVER_LIVE_RETENTION"      env-default:"24h"`
	LabelTimeout      time.Duration `yaml:"label_timeout"       env:"RESOLVER_LABEL_TIMEOUT"       env-default:"1500ms"`
}

// GeocoderConfig configures reverse geocoding for location labels.
type GeocoderConfig struct {
	BaseURL        string        `yaml:"base_url"         env:"GEOCODER_BASE_URL"         env-default:"https://nominatim.openstreetmap.org"`
	UserAgent      string        `yaml:"user_agent"       env:"GEOCODER_USER_AGENT"       env-default:"WildlifeExplorer/1.0"`
	Timeout        time.Duration `yaml:"timeout"          env:"GEOCODER_TIMEOUT"          env-default:"5s"`
	RequestsPerSec float64       `yaml:"requests_per_sec" env:"GEOCODER_REQUESTS_PER_SEC" env-default:"1"`
	CacheTTL       time.Duration `yaml:"cache_ttl"        env:"GEOCODER_CACHE_TTL"        env-default:"30m"`
}

// GeoIPConfig points at an optional MaxMind GeoLite2 City database.
type GeoIPConfig struct {
	DBPath string `yaml:"db_path" env:"GEOIP_DB_PATH"`
}

// WikipediaConfig configures article excerpt fetching.
type WikipediaConfig struct {
	Enabled     bool          `yaml:"enabled"       env:"WIKIPEDIA_ENABLED"       env-default:"true"`
	Timeout     time.Duration `yaml:"timeout"       env:"WIKIPEDIA_TIMEOUT"       env-default:"5s"`
	MaxExcerpt  int           `yaml:"max_excerpt"   env:"WIKIPEDIA_MAX_EXCERPT"   env-default:"1200"`
	UserAgent   string        `yaml:"user_agent"    env:"WIKIPEDIA_USER_AGENT"    env-default:"WildlifeExplorer/1.0"`
	AllowedHost string        `yaml:"allowed_host"  env:"WIKIPEDIA_ALLOWED_HOST"  env-default:"wikipedia.org"`
}

// ChatConfig configures the species Q&A assistant.
type ChatConfig struct {
	APIKey    string        `yaml:"api_key"    env:"CHAT_API_KEY"`
	Model     string        `yaml:"model"      env:"CHAT_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64         `yaml:"max_tokens" env:"CHAT_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout"    env:"CHAT_TIMEOUT"    env-default:"30s"`
}

// Enabled reports whether an API key is configured.
func (c ChatConfig) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

// RedisConfig enables the shared cache when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

// Enabled reports whether a redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// LifelistConfig holds lifelist limits.
type LifelistConfig struct {
	MaxEntriesPerUser int `yaml:"max_entries_per_user" env:"LIFELIST_MAX_ENTRIES_PER_USER" env-default:"5000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits requests per client IP.
type RateLimitConfig struct {
	Enabled        bool          `yaml:"enabled"         env:"RATE_LIMIT_ENABLED"         env-default:"true"`
	RequestsPerMin int           `yaml:"requests_per_min" env:"RATE_LIMIT_REQUESTS_PER_MIN" env-default:"120"`
	CleanupEvery   time.Duration `yaml:"cleanup_every"   env:"RATE_LIMIT_CLEANUP_EVERY"   env-default:"5m"`
}
