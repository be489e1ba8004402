package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"socialfeed/config"
	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
)

func tokenCmd() *cobra.Command {
	var id models.Identity
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a development identity token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			tok, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, id, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVarP(&id.ID, "user", "u", "", "User ID (required)")
	cmd.Flags().StringVar(&id.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&id.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&id.ImageURL, "image-url", "", "Avatar URL")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
