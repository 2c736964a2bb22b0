package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"pediacenter/internal/bookings/store"
	"pediacenter/internal/catalog"
	mongoMigration "pediacenter/internal/migrations/mongo"
	"pediacenter/pkg/config"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const JobName = "migrate"

// EnvSeedTemplates, when true, replaces the Provider_templates collection
// with the providers from SCHEDULE_FILE.
const EnvSeedTemplates = "MIGRATE_SEED_TEMPLATES"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Connect()
	defer cfg.GracefulShutdown()
	cfg.Log.Info("Starting migration job")

	if cfg.UsesMongo() {
		migrateMongo(ctx, cfg)
	}
	if cfg.StoreBackend == config.StorePostgres {
		migratePostgres(ctx, cfg)
	}
	if seed, _ := strconv.ParseBool(os.Getenv(EnvSeedTemplates)); seed {
		seedTemplates(ctx, cfg)
	}
	fmt.Println("Migration completed successfully.")
}

func migrateMongo(ctx context.Context, cfg *config.Config) {
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Mongo migration failed", "error", err)
	}
}

func migratePostgres(ctx context.Context, cfg *config.Config) {
	if err := store.NewPostgresStore(cfg.Client.Postgres).EnsureSchema(ctx); err != nil {
		cfg.Log.Fatal("Postgres migration failed", "error", err)
	}
	cfg.Log.Info("Postgres schema ensured", "table", store.TableName)
}

func seedTemplates(ctx context.Context, cfg *config.Config) {
	if cfg.Client.Mongo == nil {
		cfg.Log.Fatal("Seeding templates requires CATALOG_BACKEND=mongo")
	}

	templates, err := catalog.NewFileCatalog(cfg.ScheduleFile).RecurringSlotsFor(ctx, "")
	if err != nil {
		cfg.Log.Fatal("Failed to read schedule file", "error", err, "path", cfg.ScheduleFile)
	}

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := catalog.NewMongoCatalog(db, cfg.MongoConnTimeout).Seed(ctx, templates); err != nil {
		cfg.Log.Fatal("Failed to seed provider templates", "error", err)
	}
	cfg.Log.Info("Provider templates seeded", "providers", len(templates))
}
