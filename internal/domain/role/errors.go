package role

import "errors"

var (
	ErrRoleNotFound         = errors.New("role not found")
	ErrRoleNameExists       = errors.New("role with this name already exists")
	ErrRoleInUse            = errors.New("role is still assigned to users")
	ErrUnknownPermissionIDs = errors.New("one or more permission ids do not exist")
)
