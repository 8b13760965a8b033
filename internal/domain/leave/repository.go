package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate locks the request row so a status transition cannot
	// race another approve/reject/cancel on the same request.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateStatus persists an approve/reject decision.
	UpdateStatus(ctx context.Context, request LeaveRequest) error

	Delete(ctx context.Context, id string) error

	// ListByUser returns the user's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)

	// HasOverlapping reports whether any non-rejected request for the user
	// intersects [startDate, endDate], bounds inclusive.
	HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
}
