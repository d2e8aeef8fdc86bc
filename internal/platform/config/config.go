package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "vkyc/pkg/platform/strings"
)

// Server captures process level configuration. Built once in main and
// passed down; packages never read the environment themselves.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Log             LogConfig
	Auth            AuthConfig
	Redis           RedisConfig
	Postgres        PostgresConfig
	Kafka           KafkaConfig
	Workflow        WorkflowConfig
	Readiness       ReadinessConfig
	Audit           AuditConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// AuthConfig configures agent bearer tokens.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

// RedisConfig configures the live session store. Empty URL selects the
// in-memory store.
type RedisConfig struct {
	URL          string
	SessionTTL   time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the submission archive and audit trail. Empty
// DSN selects in-memory stores.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures the submission hand-off. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string
	SubmissionsTopic  string
	ClientID          string
	EnsureTopic       bool
	TopicPartitions   int32
	ReplicationFactor int16
}

// WorkflowConfig selects the catalog and submit policy.
type WorkflowConfig struct {
	CatalogFile   string
	SubmitPolicy  string
	MinEvaluated  int
	RequiredSteps []string
}

// ReadinessConfig sets quality thresholds for pre-call checks.
type ReadinessConfig struct {
	GoodThreshold int
	FairThreshold int
}

// AuditConfig sizes the async ops audit buffer.
type AuditConfig struct {
	BufferSize int
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var errs []string
	e := envReader{errs: &errs}

	cfg := Server{
		Addr:            e.str("VKYC_ADDR", ":8080"),
		RequestTimeout:  e.duration("REQUEST_TIMEOUT", 15*time.Second),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			// default is for development only
			JWTSigningKey: e.str("JWT_SIGNING_KEY", devSigningKey),
			Issuer:        e.str("JWT_ISSUER", "vkyc"),
			Audience:      e.str("JWT_AUDIENCE", "vkyc-agents"),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			SessionTTL:   e.duration("SESSION_TTL", 2*time.Hour),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:             e.str("DATABASE_URL", ""),
			MaxOpenConns:    e.integer("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    e.integer("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:           e.list("KAFKA_BROKERS"),
			SubmissionsTopic:  e.str("KAFKA_SUBMISSIONS_TOPIC", "vkyc.submissions"),
			ClientID:          e.str("KAFKA_CLIENT_ID", "vkyc-server"),
			EnsureTopic:       e.boolean("KAFKA_ENSURE_TOPIC", true),
			TopicPartitions:   int32(e.integer("KAFKA_TOPIC_PARTITIONS", 3)),
			ReplicationFactor: int16(e.integer("KAFKA_REPLICATION_FACTOR", 1)),
		},
		Workflow: WorkflowConfig{
			CatalogFile:   e.str("CATALOG_FILE", ""),
			SubmitPolicy:  e.str("SUBMIT_POLICY", "min_evaluated"),
			MinEvaluated:  e.integer("SUBMIT_MIN_EVALUATED", 1),
			RequiredSteps: e.list("SUBMIT_REQUIRED_STEPS"),
		},
		Readiness: ReadinessConfig{
			GoodThreshold: e.integer("READINESS_GOOD_THRESHOLD", 80),
			FairThreshold: e.integer("READINESS_FAIR_THRESHOLD", 60),
		},
		Audit: AuditConfig{
			BufferSize: e.integer("AUDIT_BUFFER_SIZE", 1024),
		},
	}

	if len(errs) > 0 {
		return Server{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (s Server) UsesDevSigningKey() bool {
	return s.Auth.JWTSigningKey == devSigningKey
}

type envReader struct {
	errs *[]string
}

func (e envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e envReader) integer(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Sprintf("%s: not an integer", key))
		return def
	}
	return v
}

func (e envReader) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Sprintf("%s: not a boolean", key))
		return def
	}
	return v
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Sprintf("%s: not a duration", key))
		return def
	}
	return v
}

func (e envReader) list(key string) []string {
	return platformstrings.SplitList(e.str(key, ""))
}
