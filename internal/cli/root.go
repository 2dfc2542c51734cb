// Package cli es la interfaz de línea de comandos del motor. Cada invocación
// arma un motor nuevo sobre el mismo storage durable, así la sesión y las
// solicitudes sobreviven entre comandos.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/bootstrap"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/platform/logger"
)

const version = "0.1.0"

// runtime es lo que comparten los subcomandos durante una invocación.
type runtime struct {
	getenv func(string) string

	cfg    config.Config
	log    logger.Logger
	engine *bootstrap.Engine

	jsonOut bool
}

func (rt *runtime) svc() *app.Service { return rt.engine.Service }

// NewRootCmd arma el árbol de comandos. getenv permite inyectar el entorno en tests.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	if getenv == nil {
		getenv = os.Getenv
	}
	rt := &runtime{getenv: getenv}

	root := &cobra.Command{
		Use:     "petadopt",
		Short:   "petadopt",
		Long:    `petadopt keeps a local session, pet catalog and adoption requests in sync with the pet service`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.engine == nil {
				return nil
			}
			return rt.engine.Close()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newServeCmd(rt),
		newRegisterCmd(rt),
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
		newPetsCmd(rt),
		newAdoptCmd(rt),
		newRequestsCmd(rt),
		newAlertsCmd(rt),
		newThemeCmd(rt),
	)
	return root
}

func Execute() error {
	return NewRootCmd(os.Getenv).Execute()
}

func (rt *runtime) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFromEnv(rt.getenv)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(firstNonEmpty(cfg.LogLevel, "warn")),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "petadopt",
		Output: cmd.ErrOrStderr(),
	})

	// serve arma su propio motor
	if cmd.Name() == "serve" {
		return nil
	}

	eng, err := bootstrap.New(cmdContext(cmd), bootstrap.Options{Config: cfg, Log: rt.log})
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	rt.engine = eng
	return nil
}

// print escribe v como JSON con --json, o delega en table.
func (rt *runtime) print(w io.Writer, v any, table func(io.Writer)) error {
	if rt.jsonOut || table == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(w)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
