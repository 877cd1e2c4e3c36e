package permission

import "errors"

var (
	ErrPermissionNotFound    = errors.New("permission not found")
	ErrPermissionDenied      = errors.New("you do not have permission to access this endpoint")
	ErrPermissionCycle       = errors.New("permission tree contains a cycle")
	ErrPermissionTreeTooDeep = errors.New("permission tree exceeds maximum depth")
)
