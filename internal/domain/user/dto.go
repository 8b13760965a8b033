package user

import "time"

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employee_code"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	LeaveBalance float64 `json:"leave_balance"`
	IsAdmin      bool    `json:"is_admin"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		Position:     u.Position,
		LeaveBalance: u.LeaveBalance,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
}
