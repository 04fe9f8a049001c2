package main

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Themed-Tic-Tac-Toe/internal/bot"
	"ctchen222/Themed-Tic-Tac-Toe/internal/config"
	"ctchen222/Themed-Tic-Tac-Toe/internal/db"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"ctchen222/Themed-Tic-Tac-Toe/internal/logger"
	"ctchen222/Themed-Tic-Tac-Toe/internal/repository"
	"ctchen222/Themed-Tic-Tac-Toe/internal/server"
	"ctchen222/Themed-Tic-Tac-Toe/internal/session"
	"ctchen222/Themed-Tic-Tac-Toe/internal/telemetry"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until a shutdown signal. Every resource it
// opens is released before it returns, on success or failure.
func run() error {
	conf, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, conf.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(conf.LogLevel)

	// Create export sinks
	sinks, reader, closers, err := buildArchive(ctx, conf.Export)
	if err != nil {
		return fmt.Errorf("failed to initialize export archive: %w", err)
	}
	defer closeAll(closers)

	// Create the session
	mode, _ := session.ParseMode(conf.Game.Mode)
	difficulty, _ := bot.ParseDifficulty(conf.Game.Difficulty)
	sess := session.New(bot.NewCalculator(nil), session.Options{
		Mode:          mode,
		Difficulty:    difficulty,
		ComputerDelay: conf.Game.ComputerDelay,
	})
	sessionCtx, stopSession := context.WithCancel(context.Background())
	go sess.Run(sessionCtx)
	defer func() {
		stopSession()
		<-sess.Done()
	}()

	// Create services and the Gin-based server
	gameService := service.NewGameService(sess, export.NewArchiver(sinks...), reader)
	srv := server.NewServer(sess, gameService, conf.StaticDir)

	httpServer := &http.Server{
		Addr:    conf.HTTPAddr,
		Handler: otelhttp.NewHandler(srv.Engine(), "http.server"),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "http.addr", conf.HTTPAddr, "session.id", sess.ID)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("ListenAndServe: %w", err)
		}
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
	return nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			slog.Error("error closing archive store", "error", err)
		}
	}
}

// buildArchive opens every configured snapshot store. The first database
// backed store also serves archive lookups.
// On error the stores opened so far are closed and nothing is returned.
func buildArchive(ctx context.Context, conf config.Export) (sinks []export.Sink, reader service.SnapshotReader, closers []io.Closer, err error) {
	defer func() {
		if err != nil {
			closeAll(closers)
			sinks, reader, closers = nil, nil, nil
		}
	}()

	if conf.SQLitePath != "" {
		DB, err := db.Connect(ctx, conf.SQLitePath)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, DB)
		if err := db.InitializeDB(ctx, DB); err != nil {
			return nil, nil, closers, err
		}
		repo := repository.NewSQLiteSnapshotRepository(DB)
		sinks = append(sinks, repo)
		reader = repo
	}

	if conf.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, conf.RedisAddr)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, rdb)
		repo := repository.NewRedisSnapshotRepository(rdb, conf.RedisTTL)
		sinks = append(sinks, repo)
		if reader == nil {
			reader = repo
		}
	}

	if conf.Dir != "" {
		sinks = append(sinks, export.NewDirSink(conf.Dir))
	}

	for _, s := range sinks {
		slog.InfoContext(ctx, "snapshot archive enabled", "sink", s.Name())
	}
	return sinks, reader, closers, nil
}
