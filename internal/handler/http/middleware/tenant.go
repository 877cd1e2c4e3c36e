package middleware

import (
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const TenantHeader = "tenant-id"

// RequireTenant demands a tenant-id header holding a UUID that matches the verified token's tenant.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantHeader)
		if tenantID == "" {
			response.BadRequest(w, "tenant-id header is required")
			return
		}
		if !validator.IsValidUUID(tenantID) {
			response.BadRequest(w, "tenant-id header must be a valid UUID")
			return
		}

		identity, ok := requestctx.IdentityFrom(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		if identity.TenantID != tenantID {
			response.Forbidden(w, "tenant-id does not match the authenticated tenant")
			return
		}

		next.ServeHTTP(w, r.WithContext(requestctx.WithTenant(r.Context(), tenantID)))
	})
}
