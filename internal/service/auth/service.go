package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/user"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type AuthServiceImpl struct {
	tx            database.Transactor
	users         user.UserRepository
	permissions   permission.PermissionRepository
	refreshTokens auth.RefreshTokenRepository
	revocations   auth.RevocationStore
	tokens        jwt.Service
	logger        *slog.Logger
	now           func() time.Time
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	permissionRepository permission.PermissionRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	revocationStore auth.RevocationStore,
	jwtService jwt.Service,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		tx:            tx,
		users:         userRepository,
		permissions:   permissionRepository,
		refreshTokens: refreshTokenRepository,
		revocations:   revocationStore,
		tokens:        jwtService,
		logger:        logger,
		now:           time.Now,
	}
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	u, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !u.CanLogin() || !u.HasPassword() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, u, session)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, googleID string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !u.CanLogin() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	switch {
	case u.GoogleID == nil:
		if err := a.users.LinkGoogleAccount(ctx, u.ID, googleID); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	case *u.GoogleID != googleID:
		return auth.TokenResponse{}, user.ErrOAuthProviderIDExists
	}

	return a.issueTokens(ctx, u, session)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var resp auth.TokenResponse

	err := a.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		access, accessClaims, err := a.tokens.GenerateAccessToken(u.ID, u.TenantID, u.RoleID)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		refresh, refreshClaims, err := a.tokens.GenerateRefreshToken(u.ID, u.TenantID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.refreshTokens.Create(txCtx, u.ID, refresh, refreshClaims.ExpiresAt, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}

		resp = auth.TokenResponse{
			AccessToken:           access,
			AccessTokenExpiresIn:  a.secondsUntil(accessClaims.ExpiresAt),
			RefreshToken:          refresh,
			RefreshTokenExpiresIn: a.secondsUntil(refreshClaims.ExpiresAt),
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	a.logger.InfoContext(ctx, "user logged in", slog.String("user_id", u.ID), slog.String("tenant_id", u.TenantID))
	return resp, nil
}

func (a *AuthServiceImpl) secondsUntil(t time.Time) int64 {
	return int64(t.Sub(a.now()).Seconds())
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	claims, err := a.tokens.Verify(req.RefreshToken)
	if err != nil || claims.Type != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if claims.Expired(a.now()) {
		return auth.AccessTokenResponse{}, auth.ErrTokenExpired
	}

	revoked, err := a.refreshTokens.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := a.activeUser(ctx, claims.UserID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	access, accessClaims, err := a.tokens.GenerateAccessToken(u.ID, u.TenantID, u.RoleID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          access,
		AccessTokenExpiresIn: a.secondsUntil(accessClaims.ExpiresAt),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, principal auth.Principal, refreshToken string) error {
	if err := a.revocations.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	if refreshToken != "" {
		if err := a.refreshTokens.Revoke(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, authorization string) (auth.Principal, error) {
	raw, err := jwt.ExtractBearer(authorization)
	if err != nil {
		return auth.Principal{}, err
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.Type != jwt.TokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	if claims.Expired(a.now()) {
		return auth.Principal{}, auth.ErrTokenExpired
	}

	if claims.ID != "" {
		revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return auth.Principal{}, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return auth.Principal{}, auth.ErrTokenRevoked
		}
	}

	u, err := a.activeUser(ctx, claims.UserID)
	if err != nil {
		return auth.Principal{}, err
	}

	return auth.Principal{
		Identity: requestctx.Identity{
			UserID:   u.ID,
			TenantID: u.TenantID,
			RoleID:   u.RoleID,
		},
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// activeUser re-resolves the token subject so deleted accounts lose access immediately.
func (a *AuthServiceImpl) activeUser(ctx context.Context, userID string) (user.User, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.CanLogin() {
		return user.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

// PurgeExpiredSessions deletes refresh tokens that expired more than retention ago.
// Run periodically by the auth binary.
func (a *AuthServiceImpl) PurgeExpiredSessions(ctx context.Context, retention time.Duration) error {
	n, err := a.refreshTokens.DeleteExpired(ctx, a.now().Add(-retention))
	if err != nil {
		return err
	}
	if n > 0 {
		a.logger.InfoContext(ctx, "purged expired refresh tokens", slog.Int64("count", n))
	}
	return nil
}

// CheckPermission implements auth.AuthService.
func (a *AuthServiceImpl) CheckPermission(ctx context.Context, identity requestctx.Identity, req permission.CheckPermissionRequest) error {
	endpoint := permission.NormalizeEndpoint(req.Endpoint)
	method := permission.NormalizeMethod(req.Method)

	allowed, err := a.permissions.RoleHasEndpoint(ctx, identity.TenantID, identity.RoleID, endpoint, method)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		a.logger.DebugContext(ctx, "permission denied",
			slog.String("role_id", identity.RoleID),
			slog.String("endpoint", endpoint),
			slog.String("method", method),
		)
		return permission.ErrPermissionDenied
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, identity requestctx.Identity) (auth.MeResponse, error) {
	var (
		u     user.User
		perms []permission.Permission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, err = a.activeUser(gctx, identity.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		perms, err = a.permissions.ListByRole(gctx, identity.TenantID, identity.RoleID)
		if err != nil {
			return fmt.Errorf("failed to list role permissions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return auth.MeResponse{}, err
	}

	menus, err := permission.BuildTree(perms)
	if err != nil {
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		User:        user.ToResponse(u),
		Menus:       menus,
		Permissions: permission.FlattenEndpoints(perms),
	}, nil
}
