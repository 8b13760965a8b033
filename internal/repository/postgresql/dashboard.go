package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/dashboard"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// CountAttendanceByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountAttendanceByStatus(ctx context.Context, date time.Time) (dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*)
		FROM attendances
		WHERE date = $1
	`

	var counts dashboard.StatusCounts
	err := q.QueryRow(ctx, query, date).Scan(&counts.Present, &counts.Late, &counts.Total)
	if err != nil {
		return dashboard.StatusCounts{}, fmt.Errorf("failed to count attendance by status: %w", err)
	}

	return counts, nil
}

// RecentAttendance implements dashboard.DashboardRepository.
func (r *dashboardRepository) RecentAttendance(ctx context.Context, limit int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `,
			   u.name AS user_name
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// RecentAttendanceByUser implements dashboard.DashboardRepository.
func (r *dashboardRepository) RecentAttendanceByUser(ctx context.Context, userID string, limit int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent attendance for user: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// PendingLeaveRequests implements dashboard.DashboardRepository.
func (r *dashboardRepository) PendingLeaveRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   u.name AS user_name,
			   approver.name AS approver_name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		LEFT JOIN users approver ON approver.id = lr.approved_by
		WHERE lr.status = 'pending'
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// PendingLeaveRequestsByUser implements dashboard.DashboardRepository.
func (r *dashboardRepository) PendingLeaveRequestsByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1
		  AND lr.status = 'pending'
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending leave requests for user: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}
