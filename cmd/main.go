/*
Package main is the entry point for the chatroom server.

It loads configuration, initializes the global logger, builds the chat engine and
the HTTP routes, and shuts everything down gracefully on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chatroom/internal/app/chat"
	"chatroom/internal/app/user"
	"chatroom/internal/configs"
	"chatroom/internal/handler"
	"chatroom/internal/pkg/auth/jwt"
	"chatroom/internal/pkg/logx"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	// A missing .env is fine; the environment may already carry everything.
	envErr := godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	if envErr != nil {
		logx.Debug("No .env file loaded", "error", envErr.Error())
	}
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("default_room", cfg.DefaultRoom).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := chat.NewEngine(chat.DefaultHistorySize)
	store := user.NewStore(user.DefaultIdleTTL)
	go store.RunSweeper(ctx, sessionSweepInterval)

	sessions := jwt.NewSessionManager(store, cfg.SessionSecret, !cfg.IsDevelopment(), cfg.DefaultRoom)

	router := handler.Router(&handler.AppDeps{
		Engine:   engine,
		Config:   cfg,
		Sessions: sessions,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Chatroom server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Hijacked WebSocket connections are not tracked by Shutdown; the engine closes them.
	engine.Shutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
