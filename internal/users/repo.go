package users

import "context"

// UsersRepo defines persistence operations for accounts. Emails are unique.
type UsersRepo interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
