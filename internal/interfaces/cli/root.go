// Package cli comandos de la herramienta taxonomy: seed, verify, reset y token.
package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/BrandoCommando/product-taxonomy/internal/app"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
	"github.com/BrandoCommando/product-taxonomy/pkg/logger"
)

// options flags globales; vacíos = lo que diga la configuración.
type options struct {
	driver   string
	logLevel string
	dataDir  string
}

// NewRootCmd construye el árbol de comandos.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "taxonomy",
		Short: "Siembra y verificación del catálogo de taxonomía de productos",
		Long: `taxonomy carga las definiciones de propiedades y categorías en el almacenamiento
configurado (STORE_DRIVER) y verifica que lo guardado sea igual a las definiciones.

Estructura de datos esperada:
  attributes/attributes.yml
  categories/*.yml          (un archivo por vertical)`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "almacenamiento: memory, postgres, sqlite, redis (por defecto STORE_DRIVER)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn, error (por defecto LOG_LEVEL)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data", "", "directorio de definiciones (por defecto DATA_DIR)")

	root.AddCommand(newSeedCmd(opts), newVerifyCmd(opts), newResetCmd(opts), newTokenCmd())
	return root
}

// Execute corre la CLI con los argumentos del proceso.
func Execute() error {
	return NewRootCmd().Execute()
}

// bootstrap carga la configuración, aplica los flags y arma las dependencias.
// Los logs van a stderr para que stdout quede con el JSON del resultado.
func bootstrap(ctx context.Context, cmd *cobra.Command, opts *options) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.driver != "" {
		cfg.Store.Driver = opts.driver
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	if opts.dataDir != "" {
		cfg.Source.Kind = config.SourceFS
		cfg.Source.Dir = opts.dataDir
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
	return app.New(ctx, cfg, log)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
