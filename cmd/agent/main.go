package main

import (
	"context"
	"log"
	"time"

	"marketsync-agent/internal/core/cache"
	"marketsync-agent/internal/core/config"
	"marketsync-agent/internal/core/logger"
	"marketsync-agent/internal/core/server"
	marketadapter "marketsync-agent/internal/features/marketplaces/adapters"
	syncadapter "marketsync-agent/internal/features/sync/adapters"
	synchandler "marketsync-agent/internal/features/sync/handler"
	syncports "marketsync-agent/internal/features/sync/ports"
	syncservice "marketsync-agent/internal/features/sync/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Marketsync Agent API
// @version 1.0
// @description Local agent API that synchronizes marketplace catalogs and orders with the central panel.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Agent starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("agent_version", syncservice.AgentVersion),
	)

	panelClient, err := syncadapter.NewPanelClient(cfg.Panel.URL, cfg.Panel.Token)
	if err != nil {
		l.Fatal("Invalid panel configuration", zap.Error(err))
	}

	// The status store is optional: without Redis the agent still syncs, it
	// just cannot answer "what happened last time".
	var statusStore syncports.StatusStore
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			cancel()
			l.Fatal("Redis ping failed", zap.Error(err))
		}
		cancel()

		statusStore = syncadapter.NewStatusStore(redisCache)
		l.Info("Status store connected")
	} else {
		l.Info("No REDIS_URL configured, last-sync status disabled")
	}

	registry := marketadapter.NewRegistry()
	syncSvc := syncservice.NewSyncService(panelClient, registry, statusStore)
	syncHdl := synchandler.NewSyncHandler(syncSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "version": syncservice.AgentVersion})
	})
	srv.App.Post("/api/sync/:provider", syncHdl.SyncNow)
	srv.App.Post("/api/test/:provider", syncHdl.TestConnection)
	srv.App.Get("/api/config/:provider", syncHdl.SafeConfig)
	srv.App.Get("/api/status/:provider", syncHdl.Status)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
