package role

import "time"

type Role struct {
	ID          string
	TenantID    string
	Name        string
	Description *string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
