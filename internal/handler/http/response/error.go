package response

import (
	"errors"
	"net/http"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/auth"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance workflow guards
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "ALREADY_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "NOT_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrBreakAlreadyStarted):
		BadRequest(w, "BREAK_ALREADY_STARTED", err.Error())
	case errors.Is(err, attendance.ErrNoBreakStarted):
		BadRequest(w, "NO_BREAK_STARTED", err.Error())
	case errors.Is(err, attendance.ErrBreakAlreadyEnded):
		BadRequest(w, "BREAK_ALREADY_ENDED", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, "ALREADY_CHECKED_OUT", err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "INSUFFICIENT_LEAVE_BALANCE", err.Error())
	case errors.Is(err, leave.ErrOverlappingRequest):
		BadRequest(w, "OVERLAPPING_LEAVE_REQUEST", err.Error())
	case errors.Is(err, leave.ErrNotPending):
		BadRequest(w, "NOT_PENDING", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
