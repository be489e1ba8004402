// @title                       socialfeed API
// @version                     1.0
// @description                 Posts, comments, likes, direct messages and CVs.
// @host                        localhost:3000
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"socialfeed/bootstrap"
	"socialfeed/config"
	"socialfeed/database"
	_ "socialfeed/docs"
	"socialfeed/internal/logger"
	"socialfeed/internal/repository"
	"socialfeed/internal/routes"
	"socialfeed/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	lg := logger.New("socialfeed", cfg.LogLevel, cfg.LogPretty)

	store := database.NewStore(cfg.MongoURI, cfg.MongoDB, cfg.ConnectTimeout, lg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout*2)
	db, err := store.DB(ctx)
	if err != nil {
		cancel()
		lg.Fatal().Err(err).Msg("connect mongo")
	}
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		cancel()
		lg.Fatal().Err(err).Msg("ensure indexes failed")
	}
	cancel()

	app := routes.NewApp(routes.Deps{
		Posts: services.NewPostService(
			repository.NewPostRepository(db),
			repository.NewCommentRepository(db),
			cfg.CommentDeletePolicy,
			lg,
		),
		Messages: services.NewMessageService(
			repository.NewMessageRepository(db),
			repository.NewContactRepository(db),
			lg,
		),
		CVs:            services.NewCVService(repository.NewCVRepository(db), lg),
		Store:          store,
		JWTSecret:      cfg.JWTSecret,
		JWTIssuer:      cfg.JWTIssuer,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    strings.Join(cfg.CORSOrigins, ","),
		Log:            lg,
	})

	go func() {
		lg.Info().Str("port", cfg.Port).Msg("listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		lg.Error().Err(err).Msg("fiber shutdown")
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer closeCancel()
	if err := store.Close(closeCtx); err != nil {
		lg.Error().Err(err).Msg("close mongo")
	}
}
