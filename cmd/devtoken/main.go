// Command devtoken mints HS256 bearer tokens for local development.
// Production tokens come from the identity provider that shares JWT_SECRET.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var subject string
	var role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a bearer token for the job board API",
		Long: `Mint a bearer token signed with JWT_SECRET (read from the environment or .env).
Refuses to run when APP_ENV=production.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return errors.New("devtoken is disabled in production")
			}
			token, err := mintToken(cfg.JWTSecret, subject, role, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "User id placed in the sub claim")
	cmd.Flags().StringVar(&role, "role", domain.RoleCandidate, "candidate | recruiter")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}

func mintToken(secret, subject, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	if role != domain.RoleCandidate && role != domain.RoleRecruiter {
		return "", fmt.Errorf("unknown role %q", role)
	}
	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
