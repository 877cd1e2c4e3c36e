package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt/jwttest"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "0196a000-0000-7000-8000-000000000001"
	testTenantID = "0196a000-0000-7000-8000-0000000000aa"
	testRoleID   = "0196a000-0000-7000-8000-0000000000bb"
)

type fakeAuthService struct {
	auth.AuthService
	// allowed holds "METHOD /normalized/endpoint" grants.
	allowed   map[string]bool
	loggedOut []string
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if req.Email != "hr@acme.test" || req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{
		AccessToken:           "good",
		AccessTokenExpiresIn:  900,
		RefreshToken:          "refresh-1",
		RefreshTokenExpiresIn: 86400,
	}, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, authorization string) (auth.Principal, error) {
	raw, err := jwt.ExtractBearer(authorization)
	if err != nil {
		return auth.Principal{}, err
	}
	switch raw {
	case "good":
		return auth.Principal{
			Identity:  requestctx.Identity{UserID: testUserID, TenantID: testTenantID, RoleID: testRoleID},
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	case "expired":
		return auth.Principal{}, auth.ErrTokenExpired
	}
	return auth.Principal{}, auth.ErrInvalidToken
}

func (f *fakeAuthService) CheckPermission(ctx context.Context, identity requestctx.Identity, req permission.CheckPermissionRequest) error {
	if f.allowed[req.Method+" "+permission.NormalizeEndpoint(req.Endpoint)] {
		return nil
	}
	return permission.ErrPermissionDenied
}

func (f *fakeAuthService) Logout(ctx context.Context, principal auth.Principal, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, principal.TokenID, refreshToken)
	return nil
}

func testOptions() RouterOptions {
	return RouterOptions{
		Logger:         logger.Nop(),
		LogLevel:       slog.LevelError,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func newAuthRouter(t *testing.T, svc *fakeAuthService) *chi.Mux {
	t.Helper()
	h := NewAuthHandler(jwttest.NewService(t, time.Minute), svc, nil, "http://localhost:3000", logger.Nop())
	return NewAuthRouter(testOptions(), svc, h, NewRoleHandler(nil, nil))
}

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Total   *int64            `json:"total"`
	Errors  []json.RawMessage `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func serve(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodPost, "/v1/auth/login", `{"email":"hr@acme.test","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens auth.TokenResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &tokens))
	assert.Equal(t, "good", tokens.AccessToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_Failures(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodPost, "/v1/auth/login", `{"email":"hr@acme.test","password":"wrong-password"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodPost, "/v1/auth/login", `{"email":"nope","password":"x"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode(t, rec).Errors, 2)

	rec = serve(router, http.MethodPost, "/v1/auth/login", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyToken(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantMessage   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Token good", http.StatusUnauthorized, "Authorization header must be in the form 'Bearer <token>'"},
		{"expired", "Bearer expired", http.StatusUnauthorized, "Token has expired"},
		{"garbage", "Bearer garbage", http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer good", http.StatusOK, "Token is valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.authorization != "" {
				headers["Authorization"] = tt.authorization
			}
			rec := serve(router, http.MethodPost, "/v1/auth/verify-token", "", headers)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decode(t, rec).Message)
		})
	}
}

func TestVerifyToken_ReturnsIdentity(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodPost, "/v1/auth/verify-token", "", bearer("good"))
	require.Equal(t, http.StatusOK, rec.Code)

	var got auth.VerifyTokenResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, testUserID, got.UserID)
	assert.Equal(t, testTenantID, got.TenantID)
	assert.Equal(t, testRoleID, got.RoleID)
	assert.Greater(t, got.ExpiresAt, time.Now().Unix())
}

func TestCheckPermission(t *testing.T) {
	svc := &fakeAuthService{allowed: map[string]bool{"DELETE /v1/employees/:id": true}}
	router := newAuthRouter(t, svc)

	rec := serve(router, http.MethodPost, "/v1/auth/check-permission",
		`{"endpoint":"/v1/employees/0196a000-0000-7000-8000-00000000cafe","method":"delete"}`, bearer("good"))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodPost, "/v1/auth/check-permission", `{"endpoint":"/v1/payslips","method":"POST"}`, bearer("good"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(router, http.MethodPost, "/v1/auth/check-permission", `{"endpoint":"","method":"FETCH"}`, bearer("good"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode(t, rec).Errors, 2)

	rec = serve(router, http.MethodPost, "/v1/auth/check-permission", `{"endpoint":"/v1/payslips","method":"GET"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_RevokesAndClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"jti-1", "refresh-1"}, svc.loggedOut)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRoleRoutes_RequirePermission(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodGet, "/v1/auth/roles", "", bearer("good"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(router, http.MethodGet, "/v1/auth/permissions/tree", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodGet, "/v1/auth/oauth/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newAuthRouter(t, &fakeAuthService{})

	rec := serve(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
