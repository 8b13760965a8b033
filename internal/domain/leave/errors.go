package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingRequest  = errors.New("a leave request already exists for this period")
	ErrNotPending          = errors.New("only pending leave requests can be modified")
)
