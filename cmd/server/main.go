package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bayou-blog/internal/ai"
	"bayou-blog/internal/auth"
	"bayou-blog/internal/autoreply"
	"bayou-blog/internal/config"
	"bayou-blog/internal/database"
	"bayou-blog/internal/handlers"
	"bayou-blog/internal/middleware"
	"bayou-blog/internal/moderation"
	"bayou-blog/internal/service"
	"bayou-blog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := database.NewMongoDB(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return err
	}
	defer db.Close(ctx)
	logger.Info("connected to MongoDB", "database", cfg.Database.Name)

	aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.APIKey, logger)
	gate := moderation.NewGate(cfg.AI.ValidationEnabled, aiClient, logger)

	system := actor.NewActorSystem()
	responder := autoreply.NewAutoResponder(system, db, aiClient,
		cfg.Scheduler.ReplyWorkers, cfg.Scheduler.MisfireGrace, logger)
	defer responder.Stop()

	tokens := auth.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.TokenLifetime)
	statistics := service.NewStatisticsService(db)
	users := service.NewUserService(db, logger)
	posts := service.NewPostService(db, gate, logger)
	comments := service.NewCommentService(db, gate, statistics, responder, logger)

	metrics := utils.NewMetricsCollector()
	server := handlers.NewServer(users, posts, comments, statistics, tokens, metrics, logger)

	handler := middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(
		middleware.Logging(logger, metrics)(
			server.Routes(db),
		),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
