// Package bootstrap assembles the scheduling services from configuration.
// The HTTP service and the operator CLI share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"pediacenter/internal/bookings/events"
	"pediacenter/internal/bookings/handler"
	"pediacenter/internal/bookings/service"
	"pediacenter/internal/bookings/store"
	"pediacenter/internal/bookings/validator"
	"pediacenter/internal/catalog"
	"pediacenter/internal/slots"
	"pediacenter/pkg/clock"
	"pediacenter/pkg/config"
	"pediacenter/pkg/kafka"
	kafka_config "pediacenter/pkg/kafka/config"
	kafka_middleware "pediacenter/pkg/kafka/middleware"
	"pediacenter/pkg/lock"
	"pediacenter/pkg/metrics"
)

type Services struct {
	Store     store.Store
	Catalog   catalog.Catalog
	Locker    lock.Locker
	Validator *validator.BookingValidator
	Slots     *slots.Service
	Bookings  service.BookingService
	Checks    []handler.ReadinessCheck

	closers []func() error
}

// Options override pieces normally derived from the configuration.
type Options struct {
	Clock     clock.Clock
	Publisher events.Publisher
}

// Build wires the store, catalog, locker and publisher selected by cfg. The
// clients cfg needs must already be connected.
func Build(ctx context.Context, cfg *config.Config, m *metrics.Metrics, opts Options) (*Services, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}

	s := &Services{}

	st, err := s.newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.Store = st

	cat, err := newCatalog(cfg)
	if err != nil {
		return nil, err
	}
	s.Catalog = cat

	locker, err := newLocker(cfg)
	if err != nil {
		return nil, err
	}
	s.Locker = lock.NewMetered(locker, m, cfg.LockWaitTimeout)

	publisher := opts.Publisher
	if publisher == nil {
		publisher, err = s.newPublisher(cfg, m)
		if err != nil {
			return nil, err
		}
	}

	s.Validator = validator.NewBookingValidator(cfg.Log)
	s.Slots = slots.NewService(s.Catalog, s.Store, s.Locker, clk, cfg.Log, m)
	s.Bookings = service.NewBookingService(s.Store, s.Locker, publisher, s.Validator, clk, cfg.Log, m)
	s.Checks = readinessChecks(cfg)

	cfg.Log.Info("Scheduling services initialized",
		"store_backend", cfg.StoreBackend,
		"catalog_backend", cfg.CatalogBackend,
		"lock_backend", cfg.LockBackend,
		"events_enabled", cfg.EventsEnabled,
	)
	return s, nil
}

// Close releases what Build opened, newest first. Clients owned by cfg are
// closed by cfg.GracefulShutdown.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Services) newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreFile:
		return store.NewFileStore(cfg.BookingsFile, cfg.Log), nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreMongo:
		if cfg.Client.Mongo == nil {
			return nil, fmt.Errorf("store backend %q: mongo client not connected", cfg.StoreBackend)
		}
		return store.NewMongoStore(cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.MongoConnTimeout, cfg.Log), nil
	case config.StorePostgres:
		if cfg.Client.Postgres == nil {
			return nil, fmt.Errorf("store backend %q: postgres client not connected", cfg.StoreBackend)
		}
		pg := store.NewPostgresStore(cfg.Client.Postgres)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newCatalog(cfg *config.Config) (catalog.Catalog, error) {
	switch cfg.CatalogBackend {
	case config.CatalogFile:
		return catalog.NewFileCatalog(cfg.ScheduleFile), nil
	case config.CatalogStatic:
		return catalog.NewStaticCatalog(catalog.DefaultTemplates()), nil
	case config.CatalogMongo:
		if cfg.Client.Mongo == nil {
			return nil, fmt.Errorf("catalog backend %q: mongo client not connected", cfg.CatalogBackend)
		}
		db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
		return catalog.NewMongoCatalog(db, cfg.MongoConnTimeout), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
}

func newLocker(cfg *config.Config) (lock.Locker, error) {
	switch cfg.LockBackend {
	case config.LockLocal:
		return lock.NewLocal(), nil
	case config.LockMongo:
		if cfg.Client.Mongo == nil {
			return nil, fmt.Errorf("lock backend %q: mongo client not connected", cfg.LockBackend)
		}
		db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
		return lock.NewMongo(db, lock.DefaultKey, cfg.LockTTL), nil
	case config.LockRedis:
		if cfg.Client.Redis == nil {
			return nil, fmt.Errorf("lock backend %q: redis client not connected", cfg.LockBackend)
		}
		return lock.NewRedis(cfg.Client.Redis, lock.DefaultKey, cfg.LockTTL), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.LockBackend)
	}
}

func (s *Services) newPublisher(cfg *config.Config, m *metrics.Metrics) (events.Publisher, error) {
	if !cfg.EventsEnabled {
		return events.NopPublisher{}, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("load kafka config: %w", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}
	s.closers = append(s.closers, producer.Close)

	return events.NewKafkaPublisher(producer), nil
}

func readinessChecks(cfg *config.Config) []handler.ReadinessCheck {
	var checks []handler.ReadinessCheck
	if cfg.Client == nil {
		return checks
	}
	if cfg.Client.Mongo != nil {
		mongoClient := cfg.Client.Mongo
		checks = append(checks, handler.ReadinessCheck{
			Name:  "mongo",
			Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		})
	}
	if cfg.Client.Postgres != nil {
		db := cfg.Client.Postgres
		checks = append(checks, handler.ReadinessCheck{
			Name:  "postgres",
			Check: db.PingContext,
		})
	}
	if cfg.Client.Redis != nil {
		redisClient := cfg.Client.Redis
		checks = append(checks, handler.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return checks
}
