package auth

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	// LoginWithGoogle signs in an existing user by the verified Google email.
	LoginWithGoogle(ctx context.Context, email, googleID string, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, principal Principal, refreshToken string) error

	// Authenticate resolves an Authorization header value to the calling principal.
	Authenticate(ctx context.Context, authorization string) (Principal, error)
	CheckPermission(ctx context.Context, identity requestctx.Identity, req permission.CheckPermissionRequest) error
	Me(ctx context.Context, identity requestctx.Identity) (MeResponse, error)
}
