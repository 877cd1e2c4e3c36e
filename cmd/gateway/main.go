package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	"github.com/AiDinaAgustin/microservice-payroll/internal/gateway"
	appHTTP "github.com/AiDinaAgustin/microservice-payroll/internal/handler/http"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/authclient"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App, config.ServiceGateway)
	if err := run(cfg, log); err != nil {
		log.Error("gateway stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(config.ServiceGateway); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	router, err := gateway.NewRouter(opts, authclient.New(cfg.AuthClient.BaseURL, cfg.AuthClient.Timeout, log), gateway.Upstreams{
		Auth:     cfg.Services.AuthURL,
		Employee: cfg.Services.EmployeeURL,
		Payroll:  cfg.Services.PayrollURL,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx, router, server.Options{
		Addr:            fmt.Sprintf(":%d", cfg.App.Port),
		ShutdownTimeout: cfg.App.ShutdownTimeout,
	}, log)
}
