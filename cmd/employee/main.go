package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	appHTTP "github.com/AiDinaAgustin/microservice-payroll/internal/handler/http"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/authclient"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/server"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/storage"
	"github.com/AiDinaAgustin/microservice-payroll/internal/repository/postgresql"
	contractService "github.com/AiDinaAgustin/microservice-payroll/internal/service/contract"
	employeeService "github.com/AiDinaAgustin/microservice-payroll/internal/service/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/service/file"
	"github.com/AiDinaAgustin/microservice-payroll/internal/service/master"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App, config.ServiceEmployee)
	if err := run(cfg, log); err != nil {
		log.Error("employee service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(config.ServiceEmployee); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	gormDB, err := database.NewGormDB(db)
	if err != nil {
		return err
	}

	var fileStorage *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)

	refs := employeeService.References{
		Positions:     postgresql.NewPositionRepository(gormDB),
		Departments:   postgresql.NewDepartmentRepository(gormDB),
		ContractTypes: postgresql.NewContractTypeRepository(gormDB),
	}

	fileSvc := file.NewFileService(fileStorage)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, contractRepo, refs, fileSvc, log)
	contractSvc := contractService.NewContractService(tx, contractRepo, employeeRepo, refs.ContractTypes, log)

	routes := appHTTP.EmployeeRoutes{
		Employees:     appHTTP.NewEmployeeHandler(employeeSvc, contractSvc),
		Positions:     appHTTP.NewMasterHandler(master.NewPositionService(refs.Positions), "Position", "Positions"),
		Departments:   appHTTP.NewMasterHandler(master.NewDepartmentService(refs.Departments), "Department", "Departments"),
		ContractTypes: appHTTP.NewMasterHandler(master.NewContractTypeService(refs.ContractTypes), "Contract type", "Contract types"),
		UploadsDir:    fileStorage.Dir(),
	}

	authorizer := authclient.New(cfg.AuthClient.BaseURL, cfg.AuthClient.Timeout, log)
	opts := appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	router := appHTTP.NewEmployeeRouter(opts, authorizer, routes)

	return server.Run(ctx, router, server.Options{
		Addr:            fmt.Sprintf(":%d", cfg.App.Port),
		ShutdownTimeout: cfg.App.ShutdownTimeout,
	}, log)
}
