package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

// PermissionChecker answers whether the identity's role may call an endpoint.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, identity requestctx.Identity, req permission.CheckPermissionRequest) error
}

// RequirePermission checks the normalized request path and method against the caller's role.
// It must run after Authenticate. Lookup failures deny the request.
func RequirePermission(checker PermissionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := requestctx.IdentityFrom(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			err := checker.CheckPermission(r.Context(), identity, permission.CheckPermissionRequest{
				Endpoint: permission.NormalizeEndpoint(r.URL.Path),
				Method:   r.Method,
			})
			if err != nil {
				if response.StatusOf(err) != http.StatusForbidden {
					logger.ErrorContext(r.Context(), "permission lookup failed", slog.Any("error", err))
				}
				response.Forbidden(w, "You do not have permission to access this endpoint")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
