package user

import "context"

type UserService interface {
	// Me returns the calling user's own profile.
	Me(ctx context.Context) (UserResponse, error)

	List(ctx context.Context) ([]UserResponse, error)
}
