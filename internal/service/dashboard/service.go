package dashboard

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/dashboard"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/pkg/clock"
)

const recentAttendanceLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
}

// AdminSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminSummary(ctx context.Context) (dashboard.AdminSummary, error) {
	today := clock.Today(s.clock.Now())

	counts, err := s.DashboardRepository.CountAttendanceByStatus(ctx, today)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to count attendance: %w", err)
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to count users: %w", err)
	}

	pending, err := s.DashboardRepository.PendingLeaveRequests(ctx)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	recent, err := s.DashboardRepository.RecentAttendance(ctx, recentAttendanceLimit)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to list recent attendance: %w", err)
	}

	// Everyone without a record today counts as absent.
	absent := totalUsers - counts.Total
	if absent < 0 {
		absent = 0
	}

	pendingResponses := make([]leave.RequestResponse, 0, len(pending))
	for _, request := range pending {
		pendingResponses = append(pendingResponses, leave.ToResponse(request))
	}

	recentResponses := make([]attendance.RecordResponse, 0, len(recent))
	for _, record := range recent {
		recentResponses = append(recentResponses, attendance.ToResponse(record))
	}

	return dashboard.AdminSummary{
		Date:             today.Format("2006-01-02"),
		PresentCount:     counts.Present,
		LateCount:        counts.Late,
		AbsentCount:      absent,
		PendingRequests:  pendingResponses,
		RecentAttendance: recentResponses,
	}, nil
}

// EmployeeOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EmployeeOverview(ctx context.Context) (dashboard.EmployeeOverview, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return dashboard.EmployeeOverview{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	today := clock.Today(s.clock.Now())

	todayRecord, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	recent, err := s.DashboardRepository.RecentAttendanceByUser(ctx, userID, recentAttendanceLimit)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to list recent attendance: %w", err)
	}

	pending, err := s.DashboardRepository.PendingLeaveRequestsByUser(ctx, userID)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to get user: %w", err)
	}

	var todayResponse *attendance.RecordResponse
	if todayRecord != nil {
		resp := attendance.ToResponse(*todayRecord)
		todayResponse = &resp
	}

	recentResponses := make([]attendance.RecordResponse, 0, len(recent))
	for _, record := range recent {
		recentResponses = append(recentResponses, attendance.ToResponse(record))
	}

	pendingResponses := make([]leave.RequestResponse, 0, len(pending))
	for _, request := range pending {
		pendingResponses = append(pendingResponses, leave.ToResponse(request))
	}

	return dashboard.EmployeeOverview{
		TodayAttendance:  todayResponse,
		RecentAttendance: recentResponses,
		PendingRequests:  pendingResponses,
		LeaveBalance:     u.LeaveBalance,
	}, nil
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepo,
		userRepo:            userRepo,
		attendanceRepo:      attendanceRepo,
		clock:               clk,
	}
}
