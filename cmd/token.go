package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/doctasks/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func (a *app) tokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an admin token for the serve routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.JWTSecret == "" {
				return &exitError{code: 2, err: errors.New("JWT_SECRET is not set")}
			}
			if ttl <= 0 {
				return &exitError{code: 2, err: errors.New("--ttl must be positive")}
			}

			token, err := middleware.SignAdminToken(a.cfg.JWTSecret, subject, jwt.MapClaims{
				"exp": time.Now().Add(ttl).Unix(),
			})
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "ops", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 4*time.Hour, "token lifetime")
	return cmd
}
