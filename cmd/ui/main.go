package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"statcalc/internal/config"
	"statcalc/internal/container"
	"statcalc/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	app, err := ui.NewApp(ui.Config{
		Engine:      c.Engine,
		Calculators: c.Calculators,
		Logger:      c.Logger,
	})
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, ":"+appConfig.Server.UIPort, appConfig.Server.ShutdownTimeout); err != nil {
		log.Fatalf("UI stopped: %v", err)
	}
}
