package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrMissingToken   = errors.New("missing bearer token")
	ErrMalformedToken = errors.New("authorization header must be in the form 'Bearer <token>'")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims is the decoded payload of an access or refresh token.
type Claims struct {
	ID        string
	UserID    string
	TenantID  string
	RoleID    string
	Type      string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp lies before now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

type Service interface {
	GenerateAccessToken(userID, tenantID, roleID string) (token string, claims Claims, err error)
	GenerateRefreshToken(userID, tenantID string) (token string, claims Claims, err error)
	// Verify checks the signature and decodes the claims. Expiry is left to the caller.
	Verify(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt time.Time) *http.Cookie
}

type JWTService struct {
	publicKey                 jwk.Key
	accessTokenExpirationTime time.Duration
	refreshTokenExpiration    time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

// NewJWTService builds an RS256 service from PEM encoded keys.
// publicPEM may be nil, in which case the public key is derived from the private one.
func NewJWTService(privatePEM, publicPEM []byte, accessExp, refreshExp time.Duration) (*JWTService, error) {
	privateKey, err := jwk.ParseKey(privatePEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	var publicKey jwk.Key
	if len(publicPEM) > 0 {
		publicKey, err = jwk.ParseKey(publicPEM, jwk.WithPEM(true))
	} else {
		publicKey, err = jwk.PublicKeyOf(privateKey)
	}
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &JWTService{
		publicKey:                 publicKey,
		accessTokenExpirationTime: accessExp,
		refreshTokenExpiration:    refreshExp,
		tokenAuth:                 jwtauth.New(string(jwa.RS256), privateKey, publicKey),
	}, nil
}

// LoadJWTService reads the key files and builds the service.
func LoadJWTService(privateKeyPath, publicKeyPath string, accessExp, refreshExp time.Duration) (*JWTService, error) {
	privatePEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	var publicPEM []byte
	if publicKeyPath != "" {
		publicPEM, err = os.ReadFile(publicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read public key: %w", err)
		}
	}

	return NewJWTService(privatePEM, publicPEM, accessExp, refreshExp)
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, tenantID, roleID string) (string, Claims, error) {
	claims := Claims{
		ID:        uuid.NewString(),
		UserID:    userID,
		TenantID:  tenantID,
		RoleID:    roleID,
		Type:      TokenTypeAccess,
		ExpiresAt: time.Now().Add(j.accessTokenExpirationTime).Truncate(time.Second),
	}
	token, err := j.encode(claims)
	return token, claims, err
}

func (j *JWTService) GenerateRefreshToken(userID, tenantID string) (string, Claims, error) {
	claims := Claims{
		ID:        uuid.NewString(),
		UserID:    userID,
		TenantID:  tenantID,
		Type:      TokenTypeRefresh,
		ExpiresAt: time.Now().Add(j.refreshTokenExpiration).Truncate(time.Second),
	}
	token, err := j.encode(claims)
	return token, claims, err
}

func (j *JWTService) encode(c Claims) (string, error) {
	payload := map[string]interface{}{
		"jti":  c.ID,
		"uid":  c.UserID,
		"tid":  c.TenantID,
		"type": c.Type,
		"exp":  c.ExpiresAt.Unix(),
	}
	if c.RoleID != "" {
		payload["rid"] = c.RoleID
	}

	_, tokenString, err := j.tokenAuth.Encode(payload)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (j *JWTService) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrMissingToken
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKey(jwa.RS256, j.publicKey), jwt.WithValidate(false))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return ClaimsFromToken(token)
}

// ClaimsFromToken reads the private claims of an already verified token.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	claims := Claims{
		ID:        token.JwtID(),
		ExpiresAt: token.Expiration(),
	}

	var ok bool
	if claims.UserID, ok = stringClaim(token, "uid"); !ok || claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: uid claim missing", ErrInvalidToken)
	}
	if claims.Type, ok = stringClaim(token, "type"); !ok {
		return Claims{}, fmt.Errorf("%w: type claim missing", ErrInvalidToken)
	}
	if claims.ExpiresAt.IsZero() {
		return Claims{}, fmt.Errorf("%w: exp claim missing", ErrInvalidToken)
	}
	claims.TenantID, _ = stringClaim(token, "tid")
	claims.RoleID, _ = stringClaim(token, "rid")

	return claims, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	v, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", ErrMalformedToken
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedToken
	}
	return token, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/v1/auth",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}
