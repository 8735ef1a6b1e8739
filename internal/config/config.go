package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDataSource      = SourceRemote
	defaultLocalBackend    = BackendSQLite
	defaultLocalDSN        = "guides_local.db"
	defaultRedisAddr       = "localhost:6379"
	defaultMongoURI        = "mongodb://127.0.0.1:27017"
	defaultMongoDatabase   = "guidemarket"
	defaultSeedOnStart     = "false"
	defaultShutdownTimeout = "10s"
	defaultAdminToken      = "change-me-admin-token"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// ErrRemoteNotConfigured marks a missing or placeholder remote store setting.
var ErrRemoteNotConfigured = errors.New("remote store not configured")

// placeholderValues are the sample values shipped in example env files.
var placeholderValues = []string{
	"your-anon-key-here",
	"your-project-url",
	"change-me",
	"changeme",
	"placeholder",
}

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DataSource      string
	Remote          RemoteConfig
	Local           LocalConfig
	AdminToken      string
	CORSOrigins     []string
	SeedOnStart     bool
	ShutdownTimeout time.Duration
}

// RemoteConfig is the two-setting surface of the remote store: where it is and
// the credential to reach it.
type RemoteConfig struct {
	URL string
	Key string
}

type LocalConfig struct {
	Backend       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DataSource = strings.ToLower(strings.TrimSpace(getEnv("DATA_SOURCE", defaultDataSource)))
	cfg.Remote = RemoteConfig{
		URL: strings.TrimSpace(os.Getenv("REMOTE_STORE_URL")),
		Key: strings.TrimSpace(os.Getenv("REMOTE_STORE_KEY")),
	}

	redisDB, err := parseIntEnv("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}
	cfg.Local = LocalConfig{
		Backend:       strings.ToLower(strings.TrimSpace(getEnv("LOCAL_STORE_BACKEND", defaultLocalBackend))),
		DSN:           strings.TrimSpace(getEnv("LOCAL_STORE_DSN", defaultLocalDSN)),
		RedisAddr:     strings.TrimSpace(getEnv("REDIS_ADDR", defaultRedisAddr)),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		MongoURI:      strings.TrimSpace(getEnv("MONGODB_URI", defaultMongoURI)),
		MongoDatabase: strings.TrimSpace(getEnv("MONGODB_DATABASE", defaultMongoDatabase)),
	}

	cfg.AdminToken = strings.TrimSpace(getEnv("ADMIN_TOKEN", defaultAdminToken))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.SeedOnStart = parseBoolEnv("SEED_ON_START", defaultSeedOnStart)

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DataSource != SourceRemote && cfg.DataSource != SourceLocal {
		return fmt.Errorf("DATA_SOURCE must be one of: remote, local")
	}
	switch cfg.Local.Backend {
	case BackendSQLite, BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("LOCAL_STORE_BACKEND must be one of: sqlite, redis, mongo, memory")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if IsProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.AdminToken, defaultAdminToken) {
		return fmt.Errorf("in prod/release ADMIN_TOKEN must be set and not default")
	}
	// remote settings are deliberately not validated here: a missing or
	// placeholder value degrades reads instead of stopping the process
	return nil
}

// Check reports why the remote store cannot be used, or nil when both settings
// look real.
func (r RemoteConfig) Check() error {
	if r.URL == "" {
		return fmt.Errorf("%w: REMOTE_STORE_URL is empty", ErrRemoteNotConfigured)
	}
	if r.Key == "" {
		return fmt.Errorf("%w: REMOTE_STORE_KEY is empty", ErrRemoteNotConfigured)
	}
	if IsPlaceholder(r.URL) {
		return fmt.Errorf("%w: REMOTE_STORE_URL is a placeholder", ErrRemoteNotConfigured)
	}
	if IsPlaceholder(r.Key) {
		return fmt.Errorf("%w: REMOTE_STORE_KEY is a placeholder", ErrRemoteNotConfigured)
	}
	return nil
}

// DSN returns the connection string with the credential applied. Postgres URLs
// get the key as their password; any other DSN (sqlite file) is used verbatim.
func (r RemoteConfig) DSN() (string, error) {
	if err := r.Check(); err != nil {
		return "", err
	}
	if !IsPostgresURL(r.URL) {
		return r.URL, nil
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid REMOTE_STORE_URL: %v", ErrRemoteNotConfigured, err)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, r.Key)
	return u.String(), nil
}

func IsPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// IsPlaceholder matches values copied from example env files.
func IsPlaceholder(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, p := range placeholderValues {
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
