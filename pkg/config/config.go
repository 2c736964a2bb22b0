package config

import (
	"fmt"
	"os"
	"pediacenter/pkg/client"
	"pediacenter/pkg/logger"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	StoreBackend   string
	CatalogBackend string
	BookingsFile   string
	ScheduleFile   string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LockBackend     string
	LockTTL         time.Duration
	LockWaitTimeout time.Duration

	EventsEnabled bool

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the configuration from the environment and exits the process
// when it is invalid.
func Load(serviceName string) *Config {
	cfg := FromEnv(serviceName)

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func FromEnv(serviceName string) *Config {
	cfg := &Config{
		Port:      getEnvStr(EnvPort, DefaultPort),
		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		StoreBackend:   strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),
		CatalogBackend: strings.ToLower(getEnvStr(EnvCatalogBackend, DefaultCatalogBackend)),
		BookingsFile:   getEnvStr(EnvBookingsFile, DefaultBookingsFile),
		ScheduleFile:   getEnvStr(EnvScheduleFile, DefaultScheduleFile),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		PostgresDSN: getEnvStr(EnvPostgresDSN, ""),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, 0),

		LockBackend:     strings.ToLower(getEnvStr(EnvLockBackend, DefaultLockBackend)),
		LockTTL:         getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockWaitTimeout: getEnvDuration(EnvLockWaitTimeout, DefaultLockWaitTimeout),

		EventsEnabled: getEnvBool(EnvEventsEnabled, false),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Client: client.NewClient(),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})
	return cfg
}

// UsesMongo reports whether any configured backend needs a Mongo connection.
func (cfg *Config) UsesMongo() bool {
	return cfg.StoreBackend == StoreMongo || cfg.CatalogBackend == CatalogMongo || cfg.LockBackend == LockMongo
}

func (cfg *Config) SetMongo() {
	if err := cfg.Client.SetMongo(cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err, "uri", redactMongoURI(cfg.MongoURI))
	}
	cfg.Log.Info("Successfully connected to MongoDB")
}

func (cfg *Config) SetPostgres() {
	if err := cfg.Client.SetPostgres(cfg.PostgresDSN, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to Postgres", "error", err)
	}
	cfg.Log.Info("Successfully connected to Postgres")
}

func (cfg *Config) SetRedis() {
	if err := cfg.Client.SetRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		cfg.Log.Fatal("Failed to connect to Redis", "error", err, "addr", cfg.RedisAddr)
	}
	cfg.Log.Info("Successfully connected to Redis")
}

// Connect opens every client the configured backends need.
func (cfg *Config) Connect() {
	if cfg.UsesMongo() {
		cfg.SetMongo()
	}
	if cfg.StoreBackend == StorePostgres {
		cfg.SetPostgres()
	}
	if cfg.LockBackend == LockRedis {
		cfg.SetRedis()
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreBackend {
	case StoreFile:
		if cfg.BookingsFile == "" {
			errors = append(errors, "BookingsFile cannot be empty when STORE_BACKEND=file")
		}
	case StoreMemory, StoreMongo:
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			errors = append(errors, "PostgresDSN cannot be empty when STORE_BACKEND=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of file, memory, mongo, postgres, got: %s", cfg.StoreBackend))
	}

	switch cfg.CatalogBackend {
	case CatalogFile:
		if cfg.ScheduleFile == "" {
			errors = append(errors, "ScheduleFile cannot be empty when CATALOG_BACKEND=file")
		}
	case CatalogMongo, CatalogStatic:
	default:
		errors = append(errors, fmt.Sprintf("CatalogBackend must be one of file, mongo, static, got: %s", cfg.CatalogBackend))
	}

	switch cfg.LockBackend {
	case LockLocal, LockMongo:
	case LockRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when LOCK_BACKEND=redis")
		}
	default:
		errors = append(errors, fmt.Sprintf("LockBackend must be one of local, mongo, redis, got: %s", cfg.LockBackend))
	}

	if cfg.UsesMongo() {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.LockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("LockTTL must be positive, got: %s", cfg.LockTTL))
	}
	// mongo and redis holders expire after LockTTL; a request must not outlive its lock
	if cfg.LockBackend != LockLocal && cfg.LockTTL > 0 && cfg.LockTTL < cfg.RequestTimeout {
		errors = append(errors, fmt.Sprintf("LockTTL must be at least RequestTimeout (%s) when LOCK_BACKEND=%s, got: %s", cfg.RequestTimeout, cfg.LockBackend, cfg.LockTTL))
	}
	if cfg.LockWaitTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("LockWaitTimeout must be positive, got: %s", cfg.LockWaitTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"catalog_backend", cfg.CatalogBackend,
		"bookings_file", cfg.BookingsFile,
		"schedule_file", cfg.ScheduleFile,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"postgres_dsn_set", cfg.PostgresDSN != "",
		"redis_addr", cfg.RedisAddr,
		"lock_backend", cfg.LockBackend,
		"lock_ttl", cfg.LockTTL,
		"lock_wait_timeout", cfg.LockWaitTimeout,
		"events_enabled", cfg.EventsEnabled,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func (cfg *Config) GracefulShutdown() {
	if err := cfg.Client.GracefulShutdown(); err != nil {
		cfg.Log.Error("Failed to close clients", "error", err)
		return
	}
	cfg.Log.Info("Clients closed")
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
