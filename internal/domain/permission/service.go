package permission

import "context"

type PermissionService interface {
	List(ctx context.Context) ([]PermissionResponse, error)
	Tree(ctx context.Context) ([]*TreeNode, error)
}
