package main

import (
	"fmt"

	"github.com/deppfellow/filesubmit/internal/config"
	"github.com/deppfellow/filesubmit/internal/handler"
	"github.com/deppfellow/filesubmit/internal/logger"
	"github.com/deppfellow/filesubmit/internal/router"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
)

// buildApp loads config and wires server, handlers and router.
func buildApp() (*server.Server, *echo.Echo, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv))

	return srv, r, nil
}
