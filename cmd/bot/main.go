// cmd/bot/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/dialogue"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/intent"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/pokedex"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/bot/session"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/config"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/database"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/observability"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/llm"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/pokeapi"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/server"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/transport/wppconnect"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pokedex bot...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level/format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Optional upstream response cache ---
	var cache pokeapi.Cache
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		defer rdb.Close()

		if err := rdb.Ping(ctx); err != nil {
			zapLog.Warn("redis unreachable, caching disabled", zap.Error(err))
		} else {
			cache = pokeapi.NewRedisCache(rdb, time.Duration(cfg.PokeAPI.CacheTTLSec)*time.Second, log)
			zapLog.Info("redis cache enabled", zap.String("address", cfg.Redis.Address))
		}
	}

	// --- Data source ---
	dataSource := pokeapi.NewClient(
		cfg.PokeAPI.BaseURL,
		time.Duration(cfg.PokeAPI.TimeoutMS)*time.Millisecond,
		cache,
		log,
	)

	// --- Language model ---
	gemini, err := llm.NewGeminiClient(
		ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		time.Duration(cfg.Gemini.TimeoutMS)*time.Millisecond,
		log,
	)
	if err != nil {
		zapLog.Fatal("gemini client failed", zap.Error(err))
	}

	// Startup probe, non-fatal: the bot still answers suggestion-less messages
	// with apologies if the model is down at boot.
	if err := gemini.Verify(ctx); err != nil {
		zapLog.Warn("gemini connectivity check failed", zap.Error(err))
	} else {
		zapLog.Info("gemini connectivity check OK", zap.String("model", cfg.Gemini.Model))
	}

	classifier, err := intent.NewClassifier(gemini, log)
	if err != nil {
		zapLog.Fatal("classifier init failed", zap.Error(err))
	}

	// --- Core services ---
	pokedexService := pokedex.NewService(dataSource, log)
	sessions := session.NewStore()
	dialogueHandler := dialogue.NewHandler(classifier, pokedexService, sessions, log)

	// --- Transport ---
	sender := wppconnect.NewClient(
		cfg.WPPConnect.BaseURL,
		time.Duration(cfg.WPPConnect.TimeoutMS)*time.Millisecond,
		time.Duration(cfg.WPPConnect.SendDelayMS)*time.Millisecond,
		log,
	)

	// --- HTTP server ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(cfg.Server.VerifyToken, dialogueHandler, sender, obs, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Engine(),
	}

	go func() {
		zapLog.Info("webhook server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("bot stopped")
}
