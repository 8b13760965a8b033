package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/pkg/clock"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	transactor database.Transactor
	attendance.AttendanceRepository
	clock clock.Clock

	// expectedCheckIn is the time of day after which a check-in counts
	// as late.
	expectedCheckIn time.Time
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now()
	today := clock.Today(now)

	var result attendance.Record
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByUserAndDateForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if existing != nil && existing.CheckIn != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		if existing == nil {
			record := attendance.Record{
				UserID:  userID,
				Date:    today,
				CheckIn: &now,
				Status:  attendance.ClassifyCheckIn(now, a.expectedCheckIn),
			}
			result, err = a.AttendanceRepository.Create(ctx, record)
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			return nil
		}

		existing.CheckIn = &now
		existing.Status = attendance.ClassifyCheckIn(now, a.expectedCheckIn)
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		result = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// BreakStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now()
	today := clock.Today(now)

	var result attendance.Record
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByUserAndDateForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if record == nil || record.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if record.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if record.BreakStart != nil {
			return attendance.ErrBreakAlreadyStarted
		}

		record.BreakStart = &now
		if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		result = *record
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// BreakEnd implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now()
	today := clock.Today(now)

	var result attendance.Record
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByUserAndDateForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if record == nil || record.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if record.BreakStart == nil {
			return attendance.ErrNoBreakStarted
		}
		if record.BreakEnd != nil {
			return attendance.ErrBreakAlreadyEnded
		}

		record.BreakEnd = &now
		record.TotalBreakMinutes += int(now.Sub(*record.BreakStart).Minutes())
		record.TotalWorkMinutes = record.WorkMinutes()
		if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		result = *record
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := a.clock.Now()
	today := clock.Today(now)

	var result attendance.Record
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByUserAndDateForUpdate(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if record == nil || record.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if record.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		// A break left open stays open; only counted break time reduces
		// the work total.
		record.CheckOut = &now
		record.TotalWorkMinutes = record.WorkMinutes()
		if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		result = *record
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (*attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, clock.Today(a.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	normalizePage(&filter.Page, &filter.Limit)

	records, total, err := a.AttendanceRepository.History(ctx, userID, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	normalizePage(&filter.Page, &filter.Limit)

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 || *limit > 100 {
		*limit = 20
	}
}

func NewAttendanceService(
	transactor database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	expectedCheckIn time.Time,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		transactor:           transactor,
		AttendanceRepository: attendanceRepo,
		clock:                clk,
		expectedCheckIn:      expectedCheckIn,
	}
}
