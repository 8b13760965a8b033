package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/pkg/clock"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	requests map[string]*leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.New().String()
	stored := request
	r.requests[request.ID] = &stored
	return request, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	stored, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return *stored, nil
}

func (r *fakeLeaveRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLeaveRepo) UpdateStatus(ctx context.Context, request leave.LeaveRequest) error {
	stored, ok := r.requests[request.ID]
	if !ok {
		return leave.ErrRequestNotFound
	}
	stored.Status = request.Status
	stored.ApprovedBy = request.ApprovedBy
	stored.ApprovedAt = request.ApprovedAt
	stored.AdminNotes = request.AdminNotes
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return leave.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.UserID != userID || req.Status == leave.StatusRejected {
			continue
		}
		if leave.Overlaps(req.StartDate, req.EndDate, startDate, endDate) {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		stored := u
		repo.users[u.ID] = &stored
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = uuid.New().String()
	stored := u
	r.users[u.ID] = &stored
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return *stored, nil
}

func (r *fakeUserRepo) GetByIDForUpdate(ctx context.Context, id string) (user.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AdjustLeaveBalance(ctx context.Context, id string, delta float64) error {
	stored, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.LeaveBalance += delta
	return nil
}

const (
	employeeID = "0f1c3f0a-8e57-4b5c-b6a8-2a46cb4e97d1"
	adminID    = "9f4b6a0d-1f2e-4b55-9c38-64f4db1f2a44"
)

func authedContext(t *testing.T, userID string, isAdmin bool) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"is_admin": isAdmin,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// "Today" for every test.
var testNow = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

func newTestService(balance float64) (leave.LeaveService, *fakeLeaveRepo, *fakeUserRepo) {
	leaveRepo := newFakeLeaveRepo()
	userRepo := newFakeUserRepo(
		user.User{ID: employeeID, Name: "Jane Employee", Email: "jane@example.com", LeaveBalance: balance},
		user.User{ID: adminID, Name: "Sam Admin", Email: "sam@example.com", LeaveBalance: 20, IsAdmin: true},
	)
	svc := NewLeaveService(fakeTransactor{}, leaveRepo, userRepo, clock.Fixed{Time: testNow})
	return svc, leaveRepo, userRepo
}

func submitRequest(t *testing.T, svc leave.LeaveService, start, end string) leave.RequestResponse {
	t.Helper()
	resp, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "vacation",
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit_Success(t *testing.T) {
	svc, _, _ := newTestService(10)

	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	assert.Equal(t, employeeID, resp.UserID)
	assert.Equal(t, 6, resp.TotalDays)
	assert.Equal(t, "pending", resp.Status)
}

func TestSubmit_SingleDay(t *testing.T) {
	svc, _, _ := newTestService(10)

	resp := submitRequest(t, svc, "2026-01-05", "2026-01-05")

	assert.Equal(t, 1, resp.TotalDays)
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	svc, _, _ := newTestService(5)

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "vacation",
		StartDate: "2026-01-05",
		EndDate:   "2026-01-10",
		Reason:    "family trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmit_OverlappingRequest(t *testing.T) {
	svc, _, _ := newTestService(20)
	submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "sick",
		StartDate: "2026-01-08",
		EndDate:   "2026-01-12",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestSubmit_AdjacentRangesDoNotOverlap(t *testing.T) {
	svc, _, _ := newTestService(20)
	submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "personal",
		StartDate: "2026-01-11",
		EndDate:   "2026-01-15",
		Reason:    "moving house",
	})
	assert.NoError(t, err)
}

func TestSubmit_StartDateInPast(t *testing.T) {
	svc, _, _ := newTestService(10)

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "vacation",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-03",
		Reason:    "family trip",
	})
	assert.Error(t, err)
}

func TestSubmit_EndBeforeStart(t *testing.T) {
	svc, _, _ := newTestService(10)

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "vacation",
		StartDate: "2026-01-10",
		EndDate:   "2026-01-05",
		Reason:    "family trip",
	})
	assert.Error(t, err)
}

func TestSubmit_InvalidType(t *testing.T) {
	svc, _, _ := newTestService(10)

	_, err := svc.Submit(authedContext(t, employeeID, false), leave.CreateRequestRequest{
		LeaveType: "sabbatical",
		StartDate: "2026-01-05",
		EndDate:   "2026-01-06",
		Reason:    "long break",
	})
	assert.Error(t, err)
}

func TestApprove_DeductsBalance(t *testing.T) {
	svc, _, userRepo := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	approved, err := svc.Approve(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID})

	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, adminID, *approved.ApprovedBy)

	u, err := userRepo.GetByID(context.Background(), employeeID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, u.LeaveBalance, 1e-9)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	svc, _, _ := newTestService(20)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Approve(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID})
	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Approve(authedContext(t, employeeID, false), leave.ReviewRequest{ID: resp.ID})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestReject_KeepsBalance(t *testing.T) {
	svc, _, userRepo := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	notes := "coverage too thin that week"
	rejected, err := svc.Reject(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID, AdminNotes: &notes})

	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.AdminNotes)

	u, err := userRepo.GetByID(context.Background(), employeeID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, u.LeaveBalance, 1e-9)
}

func TestReject_ThenResubmitSamePeriod(t *testing.T) {
	svc, _, _ := newTestService(20)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Reject(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID})
	require.NoError(t, err)

	// Rejected requests do not block the period.
	submitRequest(t, svc, "2026-01-05", "2026-01-10")
}

func TestCancel_PendingOwnRequest(t *testing.T) {
	svc, leaveRepo, _ := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	err := svc.Cancel(authedContext(t, employeeID, false), resp.ID)

	require.NoError(t, err)
	_, err = leaveRepo.GetByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestCancel_ApprovedRequest(t *testing.T) {
	svc, _, _ := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Approve(authedContext(t, adminID, true), leave.ReviewRequest{ID: resp.ID})
	require.NoError(t, err)

	err = svc.Cancel(authedContext(t, employeeID, false), resp.ID)
	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestCancel_SomeoneElsesRequest(t *testing.T) {
	svc, _, _ := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	err := svc.Cancel(authedContext(t, adminID, false), resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestGet_OwnerScoped(t *testing.T) {
	svc, _, _ := newTestService(10)
	resp := submitRequest(t, svc, "2026-01-05", "2026-01-10")

	_, err := svc.Get(authedContext(t, employeeID, false), resp.ID)
	assert.NoError(t, err)

	// A different non-admin user cannot see it.
	_, err = svc.Get(authedContext(t, "c1f2a3b4-0000-4000-8000-000000000001", false), resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)

	// Admins can.
	_, err = svc.Get(authedContext(t, adminID, true), resp.ID)
	assert.NoError(t, err)
}

func TestList_FiltersByStatus(t *testing.T) {
	svc, _, _ := newTestService(20)
	first := submitRequest(t, svc, "2026-01-05", "2026-01-06")
	submitRequest(t, svc, "2026-02-02", "2026-02-03")

	_, err := svc.Approve(authedContext(t, adminID, true), leave.ReviewRequest{ID: first.ID})
	require.NoError(t, err)

	status := "pending"
	resp, err := svc.List(authedContext(t, adminID, true), leave.ListFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
}

func TestTotalDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, leave.TotalDaysBetween(start, end))
	assert.Equal(t, 1, leave.TotalDaysBetween(start, start))
}
