package config

import (
	"strings"
	"time"

	"github.com/handboekai/handboek-api/common/env"
)

var (
	// SystemName is reported by the status endpoint and used in outbound headers.
	SystemName = env.String("SYSTEM_NAME", "Handboek API")
	// ServerAddress is the externally visible base URL, used to build share links.
	ServerAddress = strings.TrimRight(env.String("SERVER_ADDRESS", "http://localhost:3000"), "/")
	// ServerPort overrides the --port flag when running inside container or PaaS environments.
	ServerPort = strings.TrimSpace(env.String("PORT", ""))
	// GinMode allows forcing Gin into release mode (or other modes) without recompiling.
	GinMode = strings.TrimSpace(env.String("GIN_MODE", ""))

	// DebugEnabled toggles verbose structured logging when DEBUG=true.
	DebugEnabled = env.Bool("DEBUG", false)
	// DebugSQLEnabled toggles per-query SQL logging when DEBUG_SQL=true.
	DebugSQLEnabled = env.Bool("DEBUG_SQL", false)

	// SQLDSN selects PostgreSQL when it starts with postgres://; empty means SQLite.
	SQLDSN = env.String("SQL_DSN", "")
	// SQLitePath is the fallback database location when no DSN is configured.
	SQLitePath = env.String("SQLITE_PATH", "handboek-api.db")
	// SQLiteBusyTimeout sets the SQLite busy handler timeout (milliseconds).
	SQLiteBusyTimeout = env.Int("SQLITE_BUSY_TIMEOUT", 3000)

	// RedisConnString enables Redis-backed rate limiting and caching when set.
	RedisConnString = env.String("REDIS_CONN_STRING", "")
	// RedisPassword is only used in Redis cluster mode.
	RedisPassword = env.String("REDIS_PASSWORD", "")
	// RedisMasterName switches the Redis client into cluster/sentinel mode when set.
	RedisMasterName = env.String("REDIS_MASTER_NAME", "")

	// UpstreamBaseURL is the chat-completions provider endpoint (OpenRouter-compatible).
	UpstreamBaseURL = strings.TrimRight(env.String("UPSTREAM_BASE_URL", "https://openrouter.ai/api/v1"), "/")
	// UpstreamAPIKey authenticates requests against the upstream provider.
	UpstreamAPIKey = env.String("UPSTREAM_API_KEY", "")
	// GenerationModel is the default model used for chapter generation.
	GenerationModel = env.String("GENERATION_MODEL", "google/gemini-2.5-flash")
	// RelayTimeout bounds upstream HTTP requests (seconds) before aborting them.
	RelayTimeout = env.Int("RELAY_TIMEOUT", 300)
	// ConnectTimeout bounds the upstream connection attempt (seconds); a request
	// that cannot produce response headers within this window fails with 504.
	ConnectTimeout = env.Int("CONNECT_TIMEOUT", 30)

	// ApproximateTokenEnabled replaces tiktoken encoding with a cheap byte-ratio
	// approximation for prompt accounting.
	ApproximateTokenEnabled = env.Bool("APPROXIMATE_TOKEN", false)

	// DefaultItemsPerPage and MaxItemsPerPage bound list endpoint page sizes.
	DefaultItemsPerPage = env.Int("DEFAULT_ITEMS_PER_PAGE", 10)
	MaxItemsPerPage     = env.Int("MAX_ITEMS_PER_PAGE", 100)

	// GlobalApiRateLimitNum caps requests per client on the authenticated API surface.
	GlobalApiRateLimitNum = env.Int("GLOBAL_API_RATE_LIMIT", 480)
	// GlobalApiRateLimitDuration is the window (seconds) for GlobalApiRateLimitNum.
	GlobalApiRateLimitDuration int64 = 3 * 60

	// GenerateRateLimitNum caps generation requests per token; generation is the
	// expensive path so the window is deliberately tight.
	GenerateRateLimitNum = env.Int("GENERATE_RATE_LIMIT", 10)
	// GenerateRateLimitDuration is the window (seconds) for GenerateRateLimitNum.
	GenerateRateLimitDuration int64 = 60

	// PublicRateLimitNum caps anonymous requests on shared handbook pages, per IP.
	PublicRateLimitNum = env.Int("PUBLIC_RATE_LIMIT", 120)
	// PublicRateLimitDuration is the window (seconds) for PublicRateLimitNum.
	PublicRateLimitDuration int64 = 60

	// RateLimitKeyExpirationDuration bounds how long rate limit bookkeeping is retained.
	RateLimitKeyExpirationDuration = 20 * time.Minute

	// ShareLinkSecret signs share-link tokens; generated at startup when unset,
	// which invalidates outstanding links on restart.
	ShareLinkSecret = env.String("SHARE_LINK_SECRET", "")
	// ShareLinkTTLHours is the default validity window for share links.
	ShareLinkTTLHours = env.Int("SHARE_LINK_TTL_HOURS", 24*30)

	// ShareCacheTTL controls how long resolved share links stay in the TTL cache.
	ShareCacheTTL = time.Second * time.Duration(env.Int("SHARE_CACHE_TTL", 60))

	// LogRetentionDays deletes mirrored log files older than this; 0 disables cleanup.
	LogRetentionDays = env.Int("LOG_RETENTION_DAYS", 30)

	// EnablePrometheusMetrics exposes the /metrics endpoint for Prometheus scrapers when true.
	EnablePrometheusMetrics = env.Bool("ENABLE_PROMETHEUS_METRICS", true)
)
