// Package requestctx carries the verified caller identity through a request context.
package requestctx

import "context"

type Identity struct {
	UserID   string `json:"uid"`
	TenantID string `json:"tenant_id"`
	RoleID   string `json:"role_id"`
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

type tenantKey struct{}

// WithTenant stores the tenant resolved from the tenant-id header.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// TenantFrom returns the tenant of the request. The header value wins over the token tenant.
func TenantFrom(ctx context.Context) (string, bool) {
	if tenantID, ok := ctx.Value(tenantKey{}).(string); ok && tenantID != "" {
		return tenantID, true
	}
	if id, ok := IdentityFrom(ctx); ok && id.TenantID != "" {
		return id.TenantID, true
	}
	return "", false
}
