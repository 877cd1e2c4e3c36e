package permission

import "time"

type Type string

const (
	TypeMenu   Type = "menu"
	TypeAction Type = "action"
)

// Permission is one node of the permission tree. Action nodes carry the endpoint and method they guard.
type Permission struct {
	ID        string
	Name      string
	Code      string
	ParentID  *string
	Type      Type
	Endpoint  *string
	Method    *string
	SortOrder int
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Permission) IsMenu() bool {
	return p.Type == TypeMenu
}

// Endpoint is a (normalized path, HTTP method) pair a role may call.
type Endpoint struct {
	Path   string `json:"endpoint"`
	Method string `json:"method"`
}
