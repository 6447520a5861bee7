package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bagrada/mythmeta/internal/api"
	"github.com/bagrada/mythmeta/internal/factory"
	redisstorage "github.com/bagrada/mythmeta/internal/storage/redis"
	"github.com/bagrada/mythmeta/internal/web"
	"github.com/bagrada/mythmeta/internal/web/sse"
)

func main() {
	configPath := flag.String("config", "metaserver.toml", "path to the daemon configuration file")
	flag.Parse()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	userCfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration",
			slog.String("path", *configPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	applyEnv(&userCfg)

	// Build factory config
	cfg := factory.Config{
		Logger:      logger,
		StorageType: userCfg.Storage.Backend,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if userCfg.Redis.URL != "" {
			redisCfg.URL = userCfg.Redis.URL
		}
		if userCfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = userCfg.Redis.PoolSize
		}
		if userCfg.Redis.MinIdleConns > 0 {
			redisCfg.MinIdleConns = userCfg.Redis.MinIdleConns
		}
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// One hub serves both surfaces: the dashboard subscribes to it and
	// the API notifies it after logins, logouts and room moves.
	hub := sse.NewHub(logger)
	go hub.Run()
	defer hub.Close()

	broadcaster := sse.NewBroadcaster(hub, app.SessionService, logger)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionService: app.SessionService,
		LedgerService:  app.LedgerService,
		Presence:       broadcaster,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionService: app.SessionService,
		Hub:            hub,
		StaticDir:      resolveStaticDir(userCfg.Web.StaticDir),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = userCfg.Server.Host
	if userCfg.Server.Port != 0 {
		serverConfig.Port = userCfg.Server.Port
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("metaserver started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		// Close the hub first: Shutdown waits for idle connections, and
		// dashboard streams only end once their send channels close.
		hub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("metaserver stopped")
}

// resolveStaticDir picks the static asset directory to serve. An
// explicit directory wins; otherwise the usual checkout locations are
// probed, and an empty result disables static serving.
func resolveStaticDir(configured string) string {
	if configured != "" {
		return configured
	}

	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
