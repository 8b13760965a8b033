package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	EmployeeCode string
	PasswordHash *string
	Department   *string
	Position     *string
	LeaveBalance float64
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.IsAdmin
}
