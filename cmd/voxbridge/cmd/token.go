package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukasbauer/voxbridge/internal/httpapi"
)

var (
	tokenSubject string
	tokenExpiry  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, expiresAt, err := httpapi.GenerateToken(cfg.JWTSecret, tokenSubject, tokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "voxbridge-cli", "token subject")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", cfg.JWTExpiry, "token lifetime")
	tokenCmd.Flags().StringVar(&cfg.JWTSecret, "secret", cfg.JWTSecret, "signing secret (default: JWT_SECRET)")
	rootCmd.AddCommand(tokenCmd)
}
