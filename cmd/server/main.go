// Package main is the entry point for the fly-mcp server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flyops/fly-mcp/internal/auth"
	"github.com/flyops/fly-mcp/internal/config"
	"github.com/flyops/fly-mcp/internal/fly"
	"github.com/flyops/fly-mcp/internal/graphql"
	"github.com/flyops/fly-mcp/internal/mcptools"
	"github.com/flyops/fly-mcp/internal/safety"
	"github.com/flyops/fly-mcp/internal/service"
	"github.com/flyops/fly-mcp/internal/tools"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const defaultConfigPath = "/config/config.yaml"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	cfg := loadConfig(logger)
	config.ApplyEnvOverrides(cfg)

	tokenBefore := cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		logger.Warn("could not generate auth token, running without authentication", zap.Error(err))
	} else if tokenBefore == "" {
		logger.Info("generated auth token (set FLY_MCP_AUTH_TOKEN to persist)", zap.String("token", token))
	}

	// Open audit log writer if enabled.
	var auditLogger *safety.AuditLogger
	if cfg.Audit.Enabled {
		f, err := os.OpenFile(cfg.Audit.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			logger.Warn("could not open audit log, audit logging disabled",
				zap.String("path", cfg.Audit.LogPath), zap.Error(err))
		} else {
			auditLogger = safety.NewAuditLogger(f)
			defer f.Close()
		}
	}

	// Build the GraphQL transport and the typed API on top of it.
	gqlClient, err := graphql.NewHTTPClient(cfg.Fly)
	if err != nil {
		logger.Fatal("failed to create GraphQL client", zap.Error(err))
	}
	api := fly.NewAPI(gqlClient)

	appFilter := safety.NewFilter(
		cfg.Safety.Apps.Allowlist,
		cfg.Safety.Apps.Denylist,
	)

	svc := service.NewFlyService(api, logger, appFilter)

	// Verify upstream connectivity. A failure is reported but must not take
	// the host down; the health check will keep flagging the subsystem.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.OnStart(startupCtx); err != nil {
		logger.Warn("startup connectivity check failed", zap.Error(err))
	}
	cancelStartup()

	// Build MCP server and register all tools.
	mcpServer := server.NewMCPServer(
		"fly-mcp",
		service.Version,
		server.WithToolCapabilities(false),
	)

	var registrations []tools.Registration
	registrations = append(registrations, mcptools.ServiceTools(svc, auditLogger)...)
	registrations = append(registrations, graphql.GraphQLTools(gqlClient, auditLogger)...)
	tools.RegisterAll(mcpServer, registrations)

	// Build Streamable HTTP server and wrap with auth middleware.
	httpHandler := server.NewStreamableHTTPServer(mcpServer)
	authMiddleware := auth.NewAuthMiddleware(cfg.Server.AuthToken)
	wrappedHandler := authMiddleware(httpHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           wrappedHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("fly-mcp listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// loadConfig attempts to read the config file from the path specified by
// FLY_MCP_CONFIG_PATH or the default /config/config.yaml. If the file cannot
// be read, DefaultConfig is returned.
func loadConfig(logger *zap.Logger) *config.Config {
	path := os.Getenv("FLY_MCP_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Info("could not load config, using defaults",
			zap.String("path", path), zap.Error(err))
		return config.DefaultConfig()
	}

	logger.Info("loaded config", zap.String("path", path))
	return cfg
}
