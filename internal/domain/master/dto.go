package master

import (
	"strings"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type CreateRequest struct {
	Name        string  `json:"name" validate:"notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (r *CreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).Err()
}

type UpdateRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (r *UpdateRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	errs := validator.Struct(r)
	if r.Name == nil && r.Description == nil {
		errs.Add("body", "at least one field must be provided")
	}
	return errs.Err()
}

type Response struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(b *Base) Response {
	return Response{
		ID:          b.ID,
		TenantID:    b.TenantID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
