package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandoCommando/product-taxonomy/pkg/config"
	pkgjwt "github.com/BrandoCommando/product-taxonomy/pkg/jwt"
)

// newTokenCmd emite un JWT firmado con JWT_SECRET para llamar a /api/seed.
func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token de acceso para la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET es obligatorio para emitir tokens")
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			token, err := pkgjwt.Generate(cfg.JWT.Secret, subject, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "taxonomy-cli", "subject del token")
	cmd.Flags().StringVar(&role, "role", pkgjwt.RoleAdmin, "rol del token")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
