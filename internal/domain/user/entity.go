package user

import "time"

type User struct {
	ID           string
	TenantID     string
	RoleID       string
	EmployeeID   *string
	Username     string
	Email        string
	PasswordHash *string
	GoogleID     *string
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin reports whether the account is still usable.
func (u *User) CanLogin() bool {
	return !u.IsDeleted
}

// HasPassword reports whether password login is set up. Google-only accounts have none.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
