package user

import "time"

type UserResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	RoleID     string    `json:"role_id"`
	EmployeeID *string   `json:"employee_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		TenantID:   u.TenantID,
		RoleID:     u.RoleID,
		EmployeeID: u.EmployeeID,
		Username:   u.Username,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
