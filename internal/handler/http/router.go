package http

import (
	"log/slog"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

// NewBaseRouter returns a router with the middleware stack shared by every service.
func NewBaseRouter(opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.TenantHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	return r
}

// Authorizer is what the auth service's own routes need from the auth service.
type Authorizer interface {
	middleware.Authenticator
	middleware.PermissionChecker
}

func NewAuthRouter(opts RouterOptions, authorizer Authorizer, authHandler AuthHandler, roleHandler RoleHandler) *chi.Mux {
	r := NewBaseRouter(opts)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.RefreshToken)
		r.Route("/oauth", func(r chi.Router) {
			r.Get("/google", authHandler.LoginWithGoogle)
			r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authorizer))

			r.Post("/verify-token", authHandler.VerifyToken)
			r.Post("/check-permission", authHandler.CheckPermission)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authorizer, opts.Logger))

				r.Route("/roles", func(r chi.Router) {
					r.Get("/", roleHandler.ListRoles)
					r.Post("/", roleHandler.CreateRole)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", roleHandler.GetRole)
						r.Put("/", roleHandler.UpdateRole)
						r.Delete("/", roleHandler.DeleteRole)
						r.Get("/permissions", roleHandler.RolePermissions)
						r.Put("/permissions", roleHandler.AssignPermissions)
					})
				})
				r.Get("/permissions", roleHandler.ListPermissions)
				r.Get("/permissions/tree", roleHandler.PermissionTree)
			})
		})
	})

	return r
}

type EmployeeRoutes struct {
	Employees     EmployeeHandler
	Positions     MasterHandler
	Departments   MasterHandler
	ContractTypes MasterHandler
	// UploadsDir is served read-only under /uploads.
	UploadsDir string
}

func masterRoutes(h MasterHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.With(middleware.RequireTenant).Get("/", h.List)
		r.With(middleware.RequireTenant).Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	}
}

func NewEmployeeRouter(opts RouterOptions, authorizer middleware.RemoteAuthorizer, routes EmployeeRoutes) *chi.Mux {
	r := NewBaseRouter(opts)

	if routes.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(routes.UploadsDir))))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RemoteAuthorization(authorizer, opts.Logger))

		h := routes.Employees
		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.RequireTenant).Get("/", h.ListEmployees)
			r.With(middleware.RequireTenant).Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetEmployee)
				r.Put("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)
				r.Get("/manager-chain", h.ManagerChain)
				r.Post("/avatar", h.UploadAvatar)

				r.Route("/contracts", func(r chi.Router) {
					r.With(middleware.RequireTenant).Get("/", h.ListContracts)
					r.With(middleware.RequireTenant).Post("/", h.CreateContract)
					r.Get("/{contractID}", h.GetContract)
					r.Put("/{contractID}", h.UpdateContract)
					r.Delete("/{contractID}", h.DeleteContract)
				})
			})
		})

		r.Route("/positions", masterRoutes(routes.Positions))
		r.Route("/departments", masterRoutes(routes.Departments))
		r.Route("/contract-types", masterRoutes(routes.ContractTypes))
	})

	return r
}

func NewPayrollRouter(opts RouterOptions, authorizer middleware.RemoteAuthorizer, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := NewBaseRouter(opts)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RemoteAuthorization(authorizer, opts.Logger))

		r.Route("/attendances", func(r chi.Router) {
			r.With(middleware.RequireTenant).Get("/", attendanceHandler.List)
			r.With(middleware.RequireTenant).Post("/", attendanceHandler.Create)
			r.Get("/{id}", attendanceHandler.Get)
			r.Put("/{id}", attendanceHandler.Update)
			r.Delete("/{id}", attendanceHandler.Delete)
		})

		r.Route("/salaries", func(r chi.Router) {
			r.With(middleware.RequireTenant).Get("/", payrollHandler.ListSalaries)
			r.With(middleware.RequireTenant).Post("/", payrollHandler.CreateSalary)
			r.Get("/{id}", payrollHandler.GetSalary)
			r.Put("/{id}", payrollHandler.UpdateSalary)
			r.Delete("/{id}", payrollHandler.DeleteSalary)
		})

		r.Route("/deductions", func(r chi.Router) {
			r.With(middleware.RequireTenant).Get("/", payrollHandler.ListDeductions)
			r.With(middleware.RequireTenant).Post("/calculate", payrollHandler.CalculateDeduction)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.With(middleware.RequireTenant).Get("/", payrollHandler.ListPayslips)
			r.With(middleware.RequireTenant).Post("/", payrollHandler.CreatePayslip)
			r.With(middleware.RequireTenant).Post("/generate", payrollHandler.GeneratePayslip)
			r.With(middleware.RequireTenant).Get("/export", payrollHandler.ExportPayslips)
			r.Get("/{id}", payrollHandler.GetPayslip)
			r.Delete("/{id}", payrollHandler.DeletePayslip)
			r.Get("/{id}/pdf", payrollHandler.DownloadPayslip)
		})

		r.Route("/payroll/settings", func(r chi.Router) {
			r.Get("/", payrollHandler.GetSettings)
			r.Put("/", payrollHandler.UpdateSettings)
		})
	})

	return r
}
