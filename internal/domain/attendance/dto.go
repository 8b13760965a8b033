package attendance

import (
	"time"

	"github.com/staffclock/attendance-backend-go/internal/pkg/validator"
)

type RecordResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	UserName          *string `json:"user_name,omitempty"`
	Date              string  `json:"date"`
	CheckIn           *string `json:"check_in"`
	CheckOut          *string `json:"check_out"`
	BreakStart        *string `json:"break_start"`
	BreakEnd          *string `json:"break_end"`
	TotalBreakMinutes int     `json:"total_break_minutes"`
	TotalWorkMinutes  *int    `json:"total_work_minutes"`
	Status            string  `json:"status"`
	Notes             *string `json:"notes,omitempty"`
}

// HistoryFilter narrows the caller's own attendance history.
type HistoryFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter is the admin-side filter across all users.
type ListFilter struct {
	UserID    *string
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: absent, present, late",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		UserName:          r.UserName,
		Date:              r.Date.Format("2006-01-02"),
		CheckIn:           timePtrToString(r.CheckIn),
		CheckOut:          timePtrToString(r.CheckOut),
		BreakStart:        timePtrToString(r.BreakStart),
		BreakEnd:          timePtrToString(r.BreakEnd),
		TotalBreakMinutes: r.TotalBreakMinutes,
		TotalWorkMinutes:  r.TotalWorkMinutes,
		Status:            string(r.Status),
		Notes:             r.Notes,
	}
}
