package repositories

import (
	"context"
	"errors"

	"bux/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository handles user lookup and registration.
type UserRepository interface {
	// CreateWithAccount inserts the user together with their funded
	// account in one database transaction.
	CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	IncrementTokenVersion(ctx context.Context, userID uint) error
}
