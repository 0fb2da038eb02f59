package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/core"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a principal",
	Long: `Sign a JWT for --principal with the secret of the resolved config
(auth.jwt_secret or NOTEBOX_JWT_SECRET). The server must run in jwt mode to accept it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if principal == "" {
			fatal("Error minting token", errors.New("--principal is required"))
		}

		cfg, _, err := loadConfig(afero.NewOsFs())
		if err != nil {
			fatal("Failed to load config", err)
		}

		authn, err := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		if err != nil {
			fatal("Failed to create authenticator", err)
		}

		signed, err := authn.IssueToken(core.Principal(principal), tokenTTL)
		if err != nil {
			fatal("Error minting token", err)
		}
		fmt.Println(signed)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime (0 for no expiry)")
}
