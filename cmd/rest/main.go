package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medstory-be/internal/bootstrap"
	"medstory-be/internal/config"
	"medstory-be/internal/pkg/logger"
	"medstory-be/internal/server"
	"medstory-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Loggers
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	defer wsLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint, sysLogger)

	// 4. Stores and clients
	infra, err := bootstrap.OpenInfrastructure(ctx, cfg, sysLogger)
	if err != nil {
		log.Fatalf("Unable to open stores: %v", err)
	}

	// 5. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, infra, sysLogger, wsLogger)
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Unable to start background services: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Warn("MAIN", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := container.Close(shutdownCtx); err != nil {
		sysLogger.Warn("MAIN", "Closing stores failed", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("MAIN", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
