package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/user"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database/dbtest"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt/jwttest"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"github.com/AiDinaAgustin/microservice-payroll/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byID map[string]user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) LinkGoogleAccount(ctx context.Context, id, googleID string) error {
	u := f.byID[id]
	u.GoogleID = &googleID
	f.byID[id] = u
	return nil
}

type fakePermissions struct {
	perms   []permission.Permission
	grants  map[permission.Endpoint]bool
	listErr error
}

func (f *fakePermissions) List(ctx context.Context) ([]permission.Permission, error) {
	return f.perms, nil
}

func (f *fakePermissions) ListByRole(ctx context.Context, tenantID, roleID string) ([]permission.Permission, error) {
	return f.perms, f.listErr
}

func (f *fakePermissions) RoleHasEndpoint(ctx context.Context, tenantID, roleID, endpoint, method string) (bool, error) {
	return f.grants[permission.Endpoint{Path: endpoint, Method: method}], nil
}

func (f *fakePermissions) CountExisting(ctx context.Context, ids []string) (int, error) {
	return len(ids), nil
}

type fakeRefreshTokens struct {
	stored  map[string]bool
	revoked map[string]bool
	failOn  error
	cutoffs []time.Time
}

func (f *fakeRefreshTokens) Create(ctx context.Context, userID, token string, expiresAt time.Time, session auth.SessionTrackingRequest) error {
	if f.failOn != nil {
		return f.failOn
	}
	f.stored[token] = true
	return nil
}

func (f *fakeRefreshTokens) IsRevoked(ctx context.Context, token string) (bool, error) {
	return !f.stored[token] || f.revoked[token], nil
}

func (f *fakeRefreshTokens) Revoke(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeRefreshTokens) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, nil
}

type fixture struct {
	svc     *AuthServiceImpl
	users   *fakeUsers
	perms   *fakePermissions
	refresh *fakeRefreshTokens
	tx      *dbtest.Transactor
	tokens  *jwt.JWTService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	f := &fixture{
		users: &fakeUsers{byID: map[string]user.User{
			"u1":   {ID: "u1", TenantID: "t1", RoleID: "r1", Email: "hr@example.com", PasswordHash: &h},
			"gone": {ID: "gone", TenantID: "t1", RoleID: "r1", Email: "gone@example.com", PasswordHash: &h, IsDeleted: true},
		}},
		perms:   &fakePermissions{grants: map[permission.Endpoint]bool{}},
		refresh: &fakeRefreshTokens{stored: map[string]bool{}, revoked: map[string]bool{}},
		tx:      &dbtest.Transactor{},
		tokens:  jwttest.NewService(t, time.Hour),
	}
	f.svc = NewAuthService(f.tx, f.users, f.perms, f.refresh, memory.NewRevocationStore(), f.tokens, logger.Nop())
	return f
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "hr@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, f.refresh.stored[resp.RefreshToken])
	assert.InDelta(t, time.Hour.Seconds(), float64(resp.AccessTokenExpiresIn), 2)
	assert.Equal(t, 1, f.tx.Commits)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "hr@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "gone@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_RollsBackWhenRefreshTokenCannotBeStored(t *testing.T) {
	f := newFixture(t)
	f.refresh.failOn = errors.New("db down")

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "hr@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.Error(t, err)
	assert.Equal(t, 1, f.tx.Rollbacks)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	access, _, err := f.tokens.GenerateAccessToken("u1", "t1", "r1")
	require.NoError(t, err)

	principal, err := f.svc.Authenticate(ctx, "Bearer "+access)
	require.NoError(t, err)
	assert.Equal(t, requestctx.Identity{UserID: "u1", TenantID: "t1", RoleID: "r1"}, principal.Identity)

	_, err = f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = f.svc.Authenticate(ctx, "Token "+access)
	assert.ErrorIs(t, err, jwt.ErrMalformedToken)

	_, err = f.svc.Authenticate(ctx, "Bearer not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	refresh, _, err := f.tokens.GenerateRefreshToken("u1", "t1")
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, "Bearer "+refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	access, _, err := f.tokens.GenerateAccessToken("u1", "t1", "r1")
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = f.svc.Authenticate(context.Background(), "Bearer "+access)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestAuthenticate_UserNoLongerExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, uid := range []string{"gone", "missing"} {
		access, _, err := f.tokens.GenerateAccessToken(uid, "t1", "r1")
		require.NoError(t, err)

		_, err = f.svc.Authenticate(ctx, "Bearer "+access)
		assert.ErrorIs(t, err, auth.ErrUserNotFound, uid)
	}
}

func TestLogout_RevokesAccessAndRefreshTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tokens, err := f.svc.Login(ctx, auth.LoginRequest{Email: "hr@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	principal, err := f.svc.Authenticate(ctx, "Bearer "+tokens.AccessToken)
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, principal, tokens.RefreshToken))

	_, err = f.svc.Authenticate(ctx, "Bearer "+tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_RejectsAccessTokens(t *testing.T) {
	f := newFixture(t)
	access, _, err := f.tokens.GenerateAccessToken("u1", "t1", "r1")
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: access})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestCheckPermission(t *testing.T) {
	f := newFixture(t)
	f.perms.grants[permission.Endpoint{Path: "/v1/employees/:id", Method: "GET"}] = true
	id := requestctx.Identity{UserID: "u1", TenantID: "t1", RoleID: "r1"}
	ctx := context.Background()

	err := f.svc.CheckPermission(ctx, id, permission.CheckPermissionRequest{
		Endpoint: "/v1/employees/0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b",
		Method:   "get",
	})
	assert.NoError(t, err)

	err = f.svc.CheckPermission(ctx, id, permission.CheckPermissionRequest{Endpoint: "/v1/employees/42", Method: "DELETE"})
	assert.ErrorIs(t, err, permission.ErrPermissionDenied)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	endpoint, method := "/v1/payslips", "GET"
	parent := "payroll"
	f.perms.perms = []permission.Permission{
		{ID: "payroll", Name: "Payroll", Code: "payroll", Type: permission.TypeMenu},
		{ID: "payslip.list", Name: "List payslips", Code: "payslip.list", ParentID: &parent, Type: permission.TypeAction, Endpoint: &endpoint, Method: &method},
	}

	me, err := f.svc.Me(context.Background(), requestctx.Identity{UserID: "u1", TenantID: "t1", RoleID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", me.User.Email)
	require.Len(t, me.Menus, 1)
	assert.Len(t, me.Menus[0].Submenus, 1)
	assert.Equal(t, []permission.Endpoint{{Path: "/v1/payslips", Method: "GET"}}, me.Permissions)

	f.perms.listErr = errors.New("db down")
	_, err = f.svc.Me(context.Background(), requestctx.Identity{UserID: "u1", TenantID: "t1", RoleID: "r1"})
	assert.Error(t, err)
}

func TestLoginWithGoogle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LoginWithGoogle(ctx, "hr@example.com", "g-1", auth.SessionTrackingRequest{})
	require.NoError(t, err)
	require.NotNil(t, f.users.byID["u1"].GoogleID)

	_, err = f.svc.LoginWithGoogle(ctx, "hr@example.com", "g-2", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrOAuthProviderIDExists)

	_, err = f.svc.LoginWithGoogle(ctx, "stranger@example.com", "g-3", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestPurgeExpiredSessions_KeepsRetentionWindow(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	require.NoError(t, f.svc.PurgeExpiredSessions(context.Background(), 24*time.Hour))
	require.Len(t, f.refresh.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), f.refresh.cutoffs[0])
}
