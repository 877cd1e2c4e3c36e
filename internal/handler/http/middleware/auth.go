package middleware

import (
	"context"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

// Authenticator resolves an Authorization header value. Implemented by the auth service.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (auth.Principal, error)
}

type principalKey struct{}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

// Authenticate rejects the request with 401 unless it carries a valid, unexpired access token
// of a user that still exists.
func Authenticate(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticator.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := requestctx.WithIdentity(r.Context(), principal.Identity)
			ctx = context.WithValue(ctx, principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
