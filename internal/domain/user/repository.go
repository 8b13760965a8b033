package user

import "context"

type UserRepository interface {
	// Create inserts a new user and returns it with ID and timestamps set
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	// GetByIDForUpdate retrieves the user row with a row-level lock. Leave
	// submission and approval take this lock so balance checks cannot race.
	GetByIDForUpdate(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	List(ctx context.Context) ([]User, error)

	Count(ctx context.Context) (int64, error)

	// AdjustLeaveBalance adds delta (negative to deduct) to the user's
	// leave balance.
	AdjustLeaveBalance(ctx context.Context, id string, delta float64) error
}
