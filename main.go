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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	server, err := ui.NewServer(ui.ServerConfig{
		Engine:   c.Engine,
		Store:    c.Store,
		Decimals: appConfig.Calculators.DecimalPlaces,
		Logger:   c.Logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, ":"+appConfig.Server.Port, appConfig.Server.ShutdownTimeout)
	})
	g.Go(func() error {
		return c.Store.RunJanitor(gctx, appConfig.Server.SweepInterval, appConfig.Server.SessionTTL)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	c.Logger.Info("server stopped")
}
