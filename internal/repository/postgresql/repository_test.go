package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
	"github.com/staffclock/attendance-backend-go/internal/domain/user"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
)

var testDB *database.DB

// testInit connects once per process. Tests are skipped entirely when
// TEST_DATABASE_URL is not set.
func testInit(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testDB != nil {
		return
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, table := range []string{"refresh_tokens", "leave_requests", "attendances", "users"} {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestUser(t *testing.T, ctx context.Context, balance float64) user.User {
	t.Helper()
	repo := NewUserRepository(testDB)
	suffix := time.Now().UnixNano()
	u, err := repo.Create(ctx, user.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("user-%d@example.com", suffix),
		EmployeeCode: fmt.Sprintf("EMP%d", suffix%1000000),
		LeaveBalance: balance,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := NewUserRepository(testDB)
	created := createTestUser(t, ctx, 12.5)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.InDelta(t, 12.5, got.LeaveBalance, 1e-9)

	got, err = repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, repo.AdjustLeaveBalance(ctx, created.ID, -3))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.5, got.LeaveBalance, 1e-9)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := NewUserRepository(testDB)
	created := createTestUser(t, ctx, 10)

	_, err := repo.Create(ctx, user.User{
		Name:         "Other User",
		Email:        created.Email,
		EmployeeCode: "EMP999999",
		LeaveBalance: 10,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAttendanceRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	u := createTestUser(t, ctx, 10)

	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	created, err := repo.Create(ctx, attendance.Record{
		UserID:  u.ID,
		Date:    day,
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByUserAndDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, attendance.StatusPresent, got.Status)

	checkOut := day.Add(17 * time.Hour)
	got.CheckOut = &checkOut
	got.TotalWorkMinutes = got.WorkMinutes()
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, *got))

	got, err = repo.GetByUserAndDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got.TotalWorkMinutes)
	assert.Equal(t, 480, *got.TotalWorkMinutes)

	none, err := repo.GetByUserAndDate(ctx, u.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none)

	records, total, err := repo.History(ctx, u.ID, attendance.HistoryFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}

func TestLeaveRequestRepository_Overlap(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := NewLeaveRequestRepository(testDB)
	u := createTestUser(t, ctx, 20)

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, leave.LeaveRequest{
		UserID:    u.ID,
		Type:      leave.TypeVacation,
		StartDate: start,
		EndDate:   end,
		TotalDays: 6,
		Reason:    "family trip",
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	// Intersecting range.
	overlapping, err := repo.HasOverlapping(ctx, u.ID,
		time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, overlapping)

	// Adjacent range.
	overlapping, err = repo.HasOverlapping(ctx, u.ID,
		time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, overlapping)

	// Rejected requests stop blocking the period.
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	got.Status = leave.StatusRejected
	require.NoError(t, repo.UpdateStatus(ctx, got))

	overlapping, err = repo.HasOverlapping(ctx, u.ID,
		time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, overlapping)
}

func TestLeaveRequestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	repo := NewLeaveRequestRepository(testDB)
	u := createTestUser(t, ctx, 20)

	created, err := repo.Create(ctx, leave.LeaveRequest{
		UserID:    u.ID,
		Type:      leave.TypeSick,
		StartDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		TotalDays: 2,
		Reason:    "flu",
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), leave.ErrRequestNotFound)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	testInit(t)
	truncateTables(t, ctx)

	userRepo := NewUserRepository(testDB)
	transactor := NewTransactor(testDB)
	u := createTestUser(t, ctx, 10)

	sentinel := fmt.Errorf("boom")
	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := userRepo.AdjustLeaveBalance(ctx, u.ID, -5); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	got, err := userRepo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got.LeaveBalance, 1e-9)
}
