package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/middleware"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/oauth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

const (
	refreshCookieName = "refresh_token"
	stateCookieName   = "oauth_state"
	googleCallback    = "/v1/auth/oauth/callback/google"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	VerifyToken(w http.ResponseWriter, r *http.Request)
	CheckPermission(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	logger        *slog.Logger
}

// NewAuthHandler builds the handler. googleService may be nil when Google login is not configured.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, logger *slog.Logger) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		logger:        logger,
	}
}

func session(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{IPAddress: r.RemoteAddr, UserAgent: r.UserAgent()}
}

func (a *AuthHandlerImpl) setRefreshCookie(w http.ResponseWriter, tokens auth.TokenResponse) {
	expiresAt := time.Now().Add(time.Duration(tokens.RefreshTokenExpiresIn) * time.Second)
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, expiresAt))
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tokens, err := a.authService.Login(r.Context(), req, session(r))
	if err != nil {
		a.logger.InfoContext(r.Context(), "login failed", slog.String("email", req.Email), slog.Any("error", err))
		response.HandleError(w, err)
		return
	}

	a.setRefreshCookie(w, tokens)
	response.Success(w, "Login successful", tokens)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrOAuthNotConfigured)
		return
	}

	state, err := a.googleService.NewState()
	if err != nil {
		response.HandleError(w, fmt.Errorf("failed to create oauth state: %w", err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     googleCallback,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(reason string) {
		target := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(reason))
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}

	if a.googleService == nil {
		response.HandleError(w, auth.ErrOAuthNotConfigured)
		return
	}

	query := r.URL.Query()
	if e := query.Get("error"); e != "" {
		redirectWithError(e)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
		a.logger.WarnContext(r.Context(), "oauth state mismatch", slog.Any("error", auth.ErrOAuthStateMismatch))
		redirectWithError("state_mismatch")
		return
	}

	code := query.Get("code")
	if code == "" {
		redirectWithError("code_empty")
		return
	}

	profile, err := a.googleService.Identify(r.Context(), code)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "failed to identify google user", slog.Any("error", err))
		redirectWithError("user_verification_failed")
		return
	}

	tokens, err := a.authService.LoginWithGoogle(r.Context(), profile.Email, profile.GoogleID, session(r))
	if err != nil {
		a.logger.InfoContext(r.Context(), "google login failed", slog.Any("error", err))
		redirectWithError("login_failed")
		return
	}

	a.setRefreshCookie(w, tokens)
	target := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokens.AccessToken),
		tokens.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest

	// the cookie wins over the body
	if c, err := r.Cookie(refreshCookieName); err == nil && c.Value != "" {
		req.RefreshToken = c.Value
		if err := req.Validate(); err != nil {
			response.HandleError(w, err)
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	tokens, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Token refreshed successfully", tokens)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var refreshToken string
	if c, err := r.Cookie(refreshCookieName); err == nil {
		refreshToken = c.Value
	}

	if err := a.authService.Logout(r.Context(), principal, refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	cleared := a.jwtService.RefreshTokenCookie("", time.Unix(0, 0))
	cleared.MaxAge = -1
	http.SetCookie(w, cleared)
	response.Success(w, "Logged out successfully", nil)
}

// VerifyToken implements AuthHandler. Authenticate has already done the work.
func (a *AuthHandlerImpl) VerifyToken(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	response.Success(w, "Token is valid", auth.VerifyTokenResponse{
		UserID:    principal.UserID,
		TenantID:  principal.TenantID,
		RoleID:    principal.RoleID,
		ExpiresAt: principal.ExpiresAt.Unix(),
	})
}

// CheckPermission implements AuthHandler.
func (a *AuthHandlerImpl) CheckPermission(w http.ResponseWriter, r *http.Request) {
	identity, ok := requestctx.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req permission.CheckPermissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := a.authService.CheckPermission(r.Context(), identity, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Permission granted", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requestctx.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	me, err := a.authService.Me(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Profile retrieved", me)
}
