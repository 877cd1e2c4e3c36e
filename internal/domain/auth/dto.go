package auth

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/user"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"notblank,min=8,max=255"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"notblank"`
}

func (r *RefreshTokenRequest) Validate() error {
	return validator.Struct(r).Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

// Principal is the caller behind a verified, unexpired, unrevoked access token.
type Principal struct {
	requestctx.Identity
	TokenID   string
	ExpiresAt time.Time
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

type VerifyTokenResponse struct {
	UserID    string `json:"uid"`
	TenantID  string `json:"tenant_id"`
	RoleID    string `json:"role_id"`
	ExpiresAt int64  `json:"exp"`
}

type MeResponse struct {
	User        user.UserResponse      `json:"user"`
	Menus       []*permission.TreeNode `json:"menus"`
	Permissions []permission.Endpoint  `json:"permissions"`
}
