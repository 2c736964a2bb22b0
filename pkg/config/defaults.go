package config

import "time"

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	CatalogFile   = "file"
	CatalogMongo  = "mongo"
	CatalogStatic = "static"

	LockLocal = "local"
	LockMongo = "mongo"
	LockRedis = "redis"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultStoreBackend   = StoreFile
	DefaultCatalogBackend = CatalogFile
	DefaultBookingsFile   = "bookings.json"
	DefaultScheduleFile   = "schedule.json"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "pediacenter"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"

	DefaultLockBackend     = LockLocal
	DefaultLockTTL         = 45 * time.Second
	DefaultLockWaitTimeout = 5 * time.Second

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
