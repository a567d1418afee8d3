package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"statement_insight/pkg/api"
	"statement_insight/pkg/api/chat"
	"statement_insight/pkg/api/health"
	"statement_insight/pkg/api/statement"
	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/config"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/core/pdftext"
	"statement_insight/pkg/core/pipeline"
	"statement_insight/pkg/core/prompt"
)

// In-flight model calls get this long to finish after a stop signal.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := cfg.ResourcesDir
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), cfg.ResourcesDir)
	}
	registry := prompt.Get()
	if n, err := registry.LoadFromDirectory(resourcesPath); err != nil {
		logger.Log.WithError(err).Warn("Failed to load prompt library, falling back to built-in prompts")
	} else {
		logger.Log.WithFields(logrus.Fields{"loaded": n, "total": registry.Count(), "ids": registry.ListPrompts(), "path": resourcesPath}).Info("Prompt library ready")
	}

	agentCfg, err := cfg.LoadModels()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid models config")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agentMgr := agent.NewManager(ctx, agentCfg, cfg.Credentials())
	if err := agentMgr.Ready(agent.AgentExtraction); err != nil {
		logger.Log.WithError(err).Warn("AI service unavailable; upload and chat endpoints will return 503")
	} else {
		logger.Log.WithFields(logrus.Fields{
			"provider": agentMgr.ProviderName(agent.AgentExtraction),
			"model":    agentMgr.ModelName(agent.AgentExtraction),
		}).Info("AI service ready")
	}

	svc := pipeline.NewService(
		pdftext.NewExtractor(),
		agentMgr,
		prompt.NewBuilder(registry, cfg.CompanyName, cfg.CompanyContext),
		cfg.ExtractionCacheTTL,
	)

	handler := api.NewRouter(api.Deps{
		Statements:     statement.NewHandler(svc),
		Chat:           chat.NewHandler(svc),
		Health:         health.NewHandler(agentMgr),
		StaticDir:      cfg.StaticDir,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// No write timeout: model calls run to completion.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Log.WithField("address", server.Addr).Info("API server starting")
	logger.Log.Info("  - POST /api/process-pdf")
	logger.Log.Info("  - POST /api/chat")
	logger.Log.Info("  - POST /api/export/xlsx")
	logger.Log.Info("  - GET  /api/health")
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.WithError(err).Fatal("Server failed to start")
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down API server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Server shutdown did not complete")
	}
	if err := agentMgr.Close(); err != nil {
		logger.Log.WithError(err).Warn("Error closing model clients")
	}
}
