package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/pkg/clock"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
	"github.com/staffclock/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	transactor database.Transactor
	leave.LeaveRequestRepository
	user.UserRepository
	clock clock.Clock
}

func claimsFromContext(ctx context.Context) (userID string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false, fmt.Errorf("user_id claim is missing or invalid")
	}

	isAdmin, _ = claims["is_admin"].(bool)
	return userID, isAdmin, nil
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	var errs validator.ValidationErrors
	today := clock.Today(s.clock.Now().UTC())
	if startDate.Before(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be in the past",
		})
	}
	if endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if len(errs) > 0 {
		return leave.RequestResponse{}, errs
	}

	totalDays := leave.TotalDaysBetween(startDate, endDate)

	var result leave.LeaveRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// Lock the user row so concurrent submissions see a consistent
		// balance and overlap set.
		u, err := s.UserRepository.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if float64(totalDays) > u.LeaveBalance {
			return leave.ErrInsufficientBalance
		}

		overlapping, err := s.LeaveRequestRepository.HasOverlapping(ctx, userID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}

		request := leave.LeaveRequest{
			UserID:    userID,
			Type:      leave.Type(req.LeaveType),
			StartDate: startDate,
			EndDate:   endDate,
			TotalDays: totalDays,
			Reason:    req.Reason,
			Status:    leave.StatusPending,
		}

		result, err = s.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Cancel implements leave.LeaveService. Only the owner may cancel, and
// only while the request is still pending.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id string) error {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if request.UserID != userID {
			return leave.ErrRequestNotFound
		}
		if !request.IsPending() {
			return leave.ErrNotPending
		}

		if err := s.LeaveRequestRepository.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete leave request: %w", err)
		}
		return nil
	})
}

// Approve implements leave.LeaveService. The approved days come out of
// the requester's balance in the same transaction as the status change.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	approverID, isAdmin, err := claimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !isAdmin {
		return leave.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	var result leave.LeaveRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		if !request.IsPending() {
			return leave.ErrNotPending
		}

		// Balance is re-checked at decision time, not at submission.
		u, err := s.UserRepository.GetByIDForUpdate(ctx, request.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if float64(request.TotalDays) > u.LeaveBalance {
			return leave.ErrInsufficientBalance
		}

		now := s.clock.Now()
		request.Status = leave.StatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now
		request.AdminNotes = req.AdminNotes

		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		if err := s.UserRepository.AdjustLeaveBalance(ctx, request.UserID, -float64(request.TotalDays)); err != nil {
			return fmt.Errorf("failed to deduct leave balance: %w", err)
		}

		result = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Reject implements leave.LeaveService. Rejection never touches the
// requester's balance.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	approverID, isAdmin, err := claimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !isAdmin {
		return leave.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	var result leave.LeaveRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		if !request.IsPending() {
			return leave.ErrNotPending
		}

		now := s.clock.Now()
		request.Status = leave.StatusRejected
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now
		request.AdminNotes = req.AdminNotes

		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		result = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Get implements leave.LeaveService. Non-admins only see their own
// requests; anything else reads as not found.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.RequestResponse, error) {
	userID, isAdmin, err := claimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if !isAdmin && request.UserID != userID {
		return leave.RequestResponse{}, leave.ErrRequestNotFound
	}

	return leave.ToResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.RequestResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}

	return responses, nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}

	return leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

func NewLeaveService(
	transactor database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		transactor:             transactor,
		LeaveRequestRepository: leaveRepo,
		UserRepository:         userRepo,
		clock:                  clk,
	}
}
