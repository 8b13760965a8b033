package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffclock/attendance-backend-go/internal/config"
	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/auth"
	"github.com/staffclock/attendance-backend-go/internal/domain/dashboard"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/handler/http/response"
	"github.com/staffclock/attendance-backend-go/internal/pkg/jwt"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"

	handlerTestUserID = "3c9720ef-64a7-4bbd-9b41-1d71d0bfae2f"
)

// stubAttendanceService returns canned results so handler tests can focus
// on routing, auth, and error mapping.
type stubAttendanceService struct {
	checkInResult attendance.RecordResponse
	checkInErr    error
	todayResult   *attendance.RecordResponse
}

func (s *stubAttendanceService) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	return s.checkInResult, s.checkInErr
}

func (s *stubAttendanceService) BreakStart(ctx context.Context) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
}

func (s *stubAttendanceService) BreakEnd(ctx context.Context) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, attendance.ErrNoBreakStarted
}

func (s *stubAttendanceService) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
}

func (s *stubAttendanceService) Today(ctx context.Context) (*attendance.RecordResponse, error) {
	return s.todayResult, nil
}

func (s *stubAttendanceService) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}
	return attendance.ListResponse{Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *stubAttendanceService) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	return attendance.ListResponse{}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

func (stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidToken
}

func (stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

type stubLeaveService struct{}

func (stubLeaveService) Submit(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	return leave.RequestResponse{Status: "pending"}, nil
}

func (stubLeaveService) Cancel(ctx context.Context, id string) error {
	return leave.ErrRequestNotFound
}

func (stubLeaveService) Approve(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, leave.ErrNotPending
}

func (stubLeaveService) Reject(ctx context.Context, req leave.ReviewRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, leave.ErrNotPending
}

func (stubLeaveService) Get(ctx context.Context, id string) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, leave.ErrRequestNotFound
}

func (stubLeaveService) ListMine(ctx context.Context) ([]leave.RequestResponse, error) {
	return nil, nil
}

func (stubLeaveService) List(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	return leave.ListResponse{}, nil
}

type stubDashboardService struct{}

func (stubDashboardService) AdminSummary(ctx context.Context) (dashboard.AdminSummary, error) {
	return dashboard.AdminSummary{}, nil
}

func (stubDashboardService) EmployeeOverview(ctx context.Context) (dashboard.EmployeeOverview, error) {
	return dashboard.EmployeeOverview{}, nil
}

type stubUserService struct{}

func (stubUserService) Me(ctx context.Context) (user.UserResponse, error) {
	return user.UserResponse{ID: handlerTestUserID}, nil
}

func (stubUserService) List(ctx context.Context) ([]user.UserResponse, error) {
	return nil, nil
}

func newTestRouter(attendanceSvc attendance.AttendanceService) (http.Handler, jwt.Service) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)

	router := NewRouter(cfg, jwtService, Handlers{
		Auth:       NewAuthHandler(jwtService, stubAuthService{}),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Leave:      NewLeaveHandler(stubLeaveService{}),
		Dashboard:  NewDashboardHandler(stubDashboardService{}),
		User:       NewUserHandler(stubUserService{}),
	})

	return router, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, isAdmin bool) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(handlerTestUserID, "jane@example.com", isAdmin)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope response.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestCheckIn_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(&stubAttendanceService{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/attendance/check-in", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, envelope.Success)
}

func TestCheckIn_Success(t *testing.T) {
	checkIn := "09:00:00"
	svc := &stubAttendanceService{
		checkInResult: attendance.RecordResponse{
			ID:      "rec-1",
			UserID:  handlerTestUserID,
			Date:    "2026-03-09",
			CheckIn: &checkIn,
			Status:  "present",
		},
	}
	router, jwtService := newTestRouter(svc)

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/attendance/check-in", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	svc := &stubAttendanceService{checkInErr: attendance.ErrAlreadyCheckedIn}
	router, jwtService := newTestRouter(svc)

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/attendance/check-in", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ALREADY_CHECKED_IN", envelope.Error.Code)
}

func TestAttendanceList_NonAdminForbidden(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	rec, envelope := doRequest(t, router, http.MethodGet, "/api/v1/attendance", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestAttendanceList_AdminAllowed(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance", accessToken(t, jwtService, true), "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitLeave_ValidationError(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	body := `{"leave_type":"sabbatical","start_date":"bad","end_date":"2026-01-10","reason":""}`
	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/leave-requests", accessToken(t, jwtService, false), body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "leave_type")
	assert.Contains(t, envelope.Error.Details, "start_date")
	assert.Contains(t, envelope.Error.Details, "reason")
}

func TestCancelLeave_NotFound(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/leave-requests/some-id/cancel", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestApproveLeave_NonAdminForbidden(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	rec, _ := doRequest(t, router, http.MethodPut, "/api/v1/leave-requests/some-id/approve", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(&stubAttendanceService{})

	body := `{"email":"jane@example.com","password":"wrong"}`
	rec, envelope := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestToday_NullWhenNoRecord(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{todayResult: nil})

	rec, envelope := doRequest(t, router, http.MethodGet, "/api/v1/attendance/today", accessToken(t, jwtService, false), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Data)
}

func TestRefreshTokenRejectedOnProtectedRoute(t *testing.T) {
	router, jwtService := newTestRouter(&stubAttendanceService{})

	// A refresh token must not pass the access-token gate.
	refreshToken, _, err := jwtService.GenerateRefreshToken(handlerTestUserID)
	require.NoError(t, err)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance/today", refreshToken, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
