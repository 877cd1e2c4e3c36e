package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeyPEM(t *testing.T) ([]byte, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return privatePEM, publicPEM
}

func newTestService(t *testing.T, accessExp time.Duration) *JWTService {
	t.Helper()
	privatePEM, publicPEM := generateKeyPEM(t)
	svc, err := NewJWTService(privatePEM, publicPEM, accessExp, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, issued, err := svc.GenerateAccessToken("user-1", "tenant-1", "role-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "role-1", claims.RoleID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.False(t, claims.Expired(time.Now()))
}

func TestVerify_DoesNotRejectExpiredTokens(t *testing.T) {
	svc := newTestService(t, -time.Minute)

	token, _, err := svc.GenerateAccessToken("user-1", "tenant-1", "role-1")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	issuer := newTestService(t, time.Hour)
	other := newTestService(t, time.Hour)

	token, _, err := issuer.GenerateAccessToken("user-1", "tenant-1", "role-1")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsTamperedPayload(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, _, err := svc.GenerateAccessToken("user-1", "tenant-1", "role-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "AA"

	_, err = svc.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewJWTService_DerivesPublicKey(t *testing.T) {
	privatePEM, _ := generateKeyPEM(t)
	svc, err := NewJWTService(privatePEM, nil, time.Hour, time.Hour)
	require.NoError(t, err)

	token, _, err := svc.GenerateRefreshToken("user-1", "tenant-1")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.RoleID)

	_, err = NewJWTService([]byte("not a key"), nil, time.Hour, time.Hour)
	assert.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"empty", "", "", ErrMissingToken},
		{"no token", "Bearer ", "", ErrMalformedToken},
		{"no space", "Bearerabc", "", ErrMalformedToken},
		{"wrong scheme", "Basic abc", "", ErrMalformedToken},
		{"lowercase scheme", "bearer abc", "", ErrMalformedToken},
		{"extra part", "Bearer abc def", "", ErrMalformedToken},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractBearer(c.header)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}
