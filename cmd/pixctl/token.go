package main

import (
	"errors"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd(opts *globalOpts) *cobra.Command {
	var (
		userID string
		email  string
		admin  bool
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an API token with the configured JWT secret",
		Long: `Sign a bearer token for an existing operator, e.g. for scripts or
smoke tests. The user is not looked up; the id must match a registered user
for charge ownership to line up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("jwt.secret is not configured")
			}
			id, err := uuid.Parse(userID)
			if err != nil {
				return errors.New("--user-id must be a UUID")
			}
			if expiry <= 0 {
				expiry = cfg.JWT.Expiry
			}

			tokens := service.NewJWTTokenService(cfg.JWT.Secret, expiry, cfg.JWT.Issuer)
			token, expiresAt, err := tokens.Generate(&domain.User{ID: id, Email: email, IsAdmin: admin})
			if err != nil {
				return err
			}

			out := struct {
				Token     string `json:"token"`
				ExpiresAt int64  `json:"expires_at"`
			}{token, expiresAt.Unix()}
			return opts.print(cmd.OutOrStdout(), out, []field{
				{"token", token},
				{"expires_at", expiresAt.UTC().Format(time.RFC3339)},
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "operator id (required)")
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().BoolVar(&admin, "admin", false, "mark the token as administrator")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default jwt.expiry)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
