// Package gateway fronts the auth, employee and payroll services behind one origin.
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	appHTTP "github.com/AiDinaAgustin/microservice-payroll/internal/handler/http"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/middleware"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type Upstreams struct {
	Auth     string
	Employee string
	Payroll  string
}

var (
	employeePrefixes = []string{"/v1/employees", "/v1/positions", "/v1/departments", "/v1/contract-types"}
	payrollPrefixes  = []string{"/v1/attendances", "/v1/salaries", "/v1/deductions", "/v1/payslips", "/v1/payroll"}
)

func newProxy(name, rawURL string, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(rawURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid %s upstream url %q", name, rawURL)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "upstream request failed",
				slog.String("upstream", name),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			response.Error(w, http.StatusBadGateway, "Upstream service unavailable")
		},
	}, nil
}

// NewRouter builds the gateway. Requests under /v1/auth and /uploads pass straight through since
// the auth service guards its own routes and uploads are public. Everything else must clear
// remote authorization before it is forwarded.
func NewRouter(opts appHTTP.RouterOptions, authorizer middleware.RemoteAuthorizer, upstreams Upstreams) (*chi.Mux, error) {
	authProxy, err := newProxy("auth", upstreams.Auth, opts.Logger)
	if err != nil {
		return nil, err
	}
	employeeProxy, err := newProxy("employee", upstreams.Employee, opts.Logger)
	if err != nil {
		return nil, err
	}
	payrollProxy, err := newProxy("payroll", upstreams.Payroll, opts.Logger)
	if err != nil {
		return nil, err
	}

	r := appHTTP.NewBaseRouter(opts)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Handle("/v1/auth/*", authProxy)
	r.Handle("/uploads/*", employeeProxy)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RemoteAuthorization(authorizer, opts.Logger))
		mount(r, employeePrefixes, employeeProxy)
		mount(r, payrollPrefixes, payrollProxy)
	})

	return r, nil
}

func mount(r chi.Router, prefixes []string, h http.Handler) {
	for _, p := range prefixes {
		r.Handle(p, h)
		r.Handle(p+"/*", h)
	}
}
