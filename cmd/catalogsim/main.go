package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/catalogsim"
	"pet-adoption-hub/internal/platform/logger"
)

func main() {
	var (
		addr   string
		apiKey string
		seed   bool
	)

	cmd := &cobra.Command{
		Use:   "catalogsim",
		Short: "Local stand-in for the remote pet catalog and auth service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewFromEnv().With(logger.Fields{"app": "catalogsim"})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sim, err := catalogsim.New(ctx, catalogsim.Options{APIKey: apiKey, Seed: seed, Log: log})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           sim.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("catalogsim listening", logger.Fields{"addr": addr, "seed": seed, "api_key": apiKey != ""})
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(sctx)
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "Listen address")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("CATALOG_API_KEY"), "Required X-Noroff-API-Key for writes (empty disables the check)")
	cmd.Flags().BoolVar(&seed, "seed", true, "Load sample pets")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
