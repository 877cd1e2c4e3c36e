package user

import "context"

type UserRepository interface {
	// GetByID returns soft-deleted users too so callers can tell "gone" from "never existed".
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	LinkGoogleAccount(ctx context.Context, id, googleID string) error
}
