package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	appHTTP "github.com/AiDinaAgustin/microservice-payroll/internal/handler/http"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/authclient"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/server"
	"github.com/AiDinaAgustin/microservice-payroll/internal/repository/postgresql"
	attendanceService "github.com/AiDinaAgustin/microservice-payroll/internal/service/attendance"
	payrollService "github.com/AiDinaAgustin/microservice-payroll/internal/service/payroll"
	salaryService "github.com/AiDinaAgustin/microservice-payroll/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App, config.ServicePayroll)
	if err := run(cfg, log); err != nil {
		log.Error("payroll service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(config.ServicePayroll); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	settingsRepo := postgresql.NewPayrollSettingsRepository(db)

	rate := cfg.Payroll.DeductionRatePerMinute
	policy := payroll.NewSettingsPolicy(settingsRepo, payroll.NewFixedRatePolicy(rate))

	payrollSvc := payrollService.NewPayrollService(tx, payrollService.Repositories{
		Employees:   employeeRepo,
		Attendances: attendanceRepo,
		Salaries:    salaryRepo,
		Deductions:  postgresql.NewDeductionRepository(db),
		Payslips:    postgresql.NewPayslipRepository(db),
		Settings:    settingsRepo,
	}, policy, rate, log)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, log)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo)

	authorizer := authclient.New(cfg.AuthClient.BaseURL, cfg.AuthClient.Timeout, log)
	opts := appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	router := appHTTP.NewPayrollRouter(opts, authorizer,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc, salarySvc),
	)

	return server.Run(ctx, router, server.Options{
		Addr:            fmt.Sprintf(":%d", cfg.App.Port),
		ShutdownTimeout: cfg.App.ShutdownTimeout,
	}, log)
}
