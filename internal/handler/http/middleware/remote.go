package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/authclient"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

// RemoteAuthorizer is the auth service seen from another process.
type RemoteAuthorizer interface {
	VerifyToken(ctx context.Context, authorization string) (requestctx.Identity, error)
	CheckPermission(ctx context.Context, authorization, endpoint, method string) error
}

// RemoteAuthorization gates a request on two calls to the auth service: token verification, then
// the permission check for the normalized path and method. Any failure rejects the request.
// A rejected verification is answered with the auth service's own status and body; an unreachable
// auth service yields 401 at verification and 403 at the permission check.
func RemoteAuthorization(authorizer RemoteAuthorizer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authorization := r.Header.Get("Authorization")
			if _, err := jwt.ExtractBearer(authorization); err != nil {
				response.HandleError(w, err)
				return
			}

			identity, err := authorizer.VerifyToken(ctx, authorization)
			if err != nil {
				var rejected *authclient.RejectedError
				if errors.As(err, &rejected) {
					response.Raw(w, rejected.StatusCode, rejected.ContentType, rejected.Body)
					return
				}
				logger.WarnContext(ctx, "token verification unavailable", slog.Any("error", err))
				response.Unauthorized(w, "Unable to verify token")
				return
			}

			endpoint := permission.NormalizeEndpoint(r.URL.Path)
			if err := authorizer.CheckPermission(ctx, authorization, endpoint, r.Method); err != nil {
				var rejected *authclient.RejectedError
				if !errors.As(err, &rejected) {
					logger.WarnContext(ctx, "permission check unavailable", slog.Any("error", err))
				}
				response.Forbidden(w, "You do not have permission to access this endpoint")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestctx.WithIdentity(ctx, identity)))
		})
	}
}
