package main

import (
	"context"
	"log"
	"pediacenter/internal/bookings/handler"
	"pediacenter/internal/bootstrap"
	"pediacenter/pkg/app"
	"pediacenter/pkg/config"
	"pediacenter/pkg/metrics"

	"github.com/joho/godotenv"
)

const ServiceName = "scheduler"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load(ServiceName)
	cfg.Connect()

	cfg.Log.Info("Starting Scheduler service")
	m := metrics.New(nil)
	services, err := bootstrap.Build(context.Background(), cfg, m, bootstrap.Options{})
	if err != nil {
		cfg.Log.Fatal("Failed to initialize services", "error", err)
	}

	serverApp := app.NewApplication(cfg, m, nil)
	serverApp.OnShutdown(services.Close)
	serverApp.SetApp(
		handler.NewBookingHandler(services.Bookings, services.Slots, services.Validator, cfg.Log),
		handler.NewHealthHandler(cfg.Log, services.Checks...),
	)
	serverApp.Run()
}
