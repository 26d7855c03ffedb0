package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/studyprofile-server/internal/config"
	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/service"
	"github.com/dtroode/studyprofile-server/internal/token"
)

func newTokenCommand() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for a user, for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig(envFile)
			if err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}

			log := logger.NewWithFormat(os.Stderr, cfg.LogLevel, cfg.LogFormat)

			tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL), log)
			accessToken, err := tokenService.Issue(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), accessToken)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "profile id encoded in the token subject")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
