package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	appHTTP "github.com/AiDinaAgustin/microservice-payroll/internal/handler/http"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/cache"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/cron"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/oauth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/server"
	"github.com/AiDinaAgustin/microservice-payroll/internal/repository/memory"
	"github.com/AiDinaAgustin/microservice-payroll/internal/repository/postgresql"
	redisRepo "github.com/AiDinaAgustin/microservice-payroll/internal/repository/redis"
	serviceAuth "github.com/AiDinaAgustin/microservice-payroll/internal/service/auth"
	permissionService "github.com/AiDinaAgustin/microservice-payroll/internal/service/permission"
	roleService "github.com/AiDinaAgustin/microservice-payroll/internal/service/role"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App, config.ServiceAuth)
	if err := run(cfg, log); err != nil {
		log.Error("auth service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(config.ServiceAuth); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var revocations auth.RevocationStore
	if rdb != nil {
		defer rdb.Close()
		revocations = redisRepo.NewRevocationStore(rdb)
	} else {
		log.Warn("REDIS_ADDR is not set, revoked access tokens are tracked in process memory")
		revocations = memory.NewRevocationStore()
	}

	jwtService, err := jwt.LoadJWTService(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return err
	}

	var googleService oauth.GoogleService
	if cfg.OAuthEnabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	authSvc := serviceAuth.NewAuthService(tx, userRepo, permissionRepo, refreshTokenRepo, revocations, jwtService, log)
	roleSvc := roleService.NewRoleService(tx, roleRepo, permissionRepo)
	permissionSvc := permissionService.NewPermissionService(permissionRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.OAuth2Google.FrontendURL, log)
	roleHandler := appHTTP.NewRoleHandler(roleSvc, permissionSvc)

	opts := appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	router := appHTTP.NewAuthRouter(opts, authSvc, authHandler, roleHandler)

	scheduler := cron.NewScheduler(log)
	scheduler.AddJob("purge-expired-refresh-tokens", 6*time.Hour, func(ctx context.Context) error {
		return authSvc.PurgeExpiredSessions(ctx, 24*time.Hour)
	})
	jobsCtx, stopJobs := context.WithCancel(ctx)
	scheduler.Start(jobsCtx)
	defer func() {
		stopJobs()
		scheduler.Wait()
	}()

	return server.Run(ctx, router, server.Options{
		Addr:            fmt.Sprintf(":%d", cfg.App.Port),
		ShutdownTimeout: cfg.App.ShutdownTimeout,
	}, log)
}
