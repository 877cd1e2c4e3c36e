package permission

import "github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"

type CheckPermissionRequest struct {
	Endpoint string `json:"endpoint" validate:"notblank,max=255"`
	Method   string `json:"method" validate:"notblank,oneof=GET POST PUT PATCH DELETE"`
}

func (r *CheckPermissionRequest) Validate() error {
	r.Method = NormalizeMethod(r.Method)
	return validator.Struct(r).Err()
}

type PermissionResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	ParentID  *string `json:"parent_id"`
	Type      Type    `json:"type"`
	Endpoint  *string `json:"endpoint,omitempty"`
	Method    *string `json:"method,omitempty"`
	SortOrder int     `json:"sort_order"`
}

func ToResponse(p Permission) PermissionResponse {
	return PermissionResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		ParentID:  p.ParentID,
		Type:      p.Type,
		Endpoint:  p.Endpoint,
		Method:    p.Method,
		SortOrder: p.SortOrder,
	}
}

func ToResponses(perms []Permission) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, ToResponse(p))
	}
	return out
}
