package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/bootstrap"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/tracing"
	"pet-adoption-hub/internal/router"
)

func newServeCmd(rt *runtime) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API over the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, cfg, rt.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default APP_ADDR)")
	return cmd
}

// Serve arma el motor y atiende HTTP hasta que ctx se cancela.
func Serve(ctx context.Context, cfg config.Config, log logger.Logger) error {
	log = logger.OrNop(log)

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint, "petadopt-api", log)
	if err != nil {
		log.Warn("tracing setup failed", logger.Fields{"err": err})
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	eng, err := bootstrap.New(ctx, bootstrap.Options{Config: cfg, Log: log})
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.NewRouter(router.Options{Service: eng.Service, Log: log}),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.Fields{"addr": cfg.Addr, "storage": cfg.StorageDriver, "catalog": cfg.CatalogBaseURL})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(sctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
