package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/bootstrap"
	"socialfeed/config"
	"socialfeed/database"
	"socialfeed/internal/logger"
)

var (
	timeoutFlag time.Duration
	rootCmd     = &cobra.Command{
		Use:   "feedctl",
		Short: "Maintenance commands for the socialfeed backend",
	}
)

// connect loads the service config and opens the database with indexes ensured.
func connect(ctx context.Context) (*config.Config, *database.Store, *mongo.Database, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, zerolog.Nop(), err
	}
	lg := logger.New("feedctl", cfg.LogLevel, true)

	store := database.NewStore(cfg.MongoURI, cfg.MongoDB, cfg.ConnectTimeout, lg)
	db, err := store.DB(ctx)
	if err != nil {
		return nil, nil, nil, lg, err
	}
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		_ = store.Close(ctx)
		return nil, nil, nil, lg, err
	}
	return cfg, store, db, lg, nil
}

func main() {
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Overall command timeout")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "indexes",
		Short: "Create the collection indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
			defer cancel()

			_, store, _, lg, err := connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)
			lg.Info().Msg("indexes ensured")
			return nil
		},
	})
	rootCmd.AddCommand(tokenCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
