package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
)

// errVerification la verificación encontró diferencias (sale con estado distinto de cero).
var errVerification = errors.New("la verificación encontró diferencias")

func newSeedCmd(opts *options) *cobra.Command {
	var in dto.SeedRequest
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Importa propiedades y categorías",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.SeedUC.Run(ctx, in)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, out); err != nil {
				return err
			}
			if out.Verification != nil && !out.Verification.OK {
				return errVerification
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&in.Reset, "reset", false, "vaciar el catálogo antes de importar")
	cmd.Flags().BoolVar(&in.Verify, "verify", false, "verificar el catálogo después de importar")
	return cmd
}

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compara el catálogo almacenado con las definiciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.SeedUC.Verify(ctx)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, out); err != nil {
				return err
			}
			if !out.OK {
				return errVerification
			}
			return nil
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Elimina todas las propiedades y categorías",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.SeedUC.Reset(ctx); err != nil {
				return err
			}
			a.Log.Info().Msg("catálogo vaciado")
			return nil
		},
	}
}
