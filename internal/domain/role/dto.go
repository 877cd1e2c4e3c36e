package role

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (r *CreateRoleRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateRoleRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (r *UpdateRoleRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name == nil && r.Description == nil {
		errs.Add("body", "at least one field must be provided")
	}
	return errs.Err()
}

type AssignPermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" validate:"required,dive,uuid"`
}

func (r *AssignPermissionsRequest) Validate() error {
	return validator.Struct(r).Err()
}

type RoleResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
