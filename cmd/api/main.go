package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption-hub/internal/cli"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/platform/logger"
)

// @title Pet Adoption Hub API
// @version 1.0
// @description Backend-for-frontend local del motor de adopciones.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "petadopt-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg, log); err != nil {
		log.Error("server error", logger.Fields{"err": err})
		os.Exit(1)
	}
}
