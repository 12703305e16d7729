package user

import (
	"context"
	"errors"

	"bux/internal/models"
	"bux/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// OpeningBalance is granted to every new account at registration.
var OpeningBalance = decimal.NewFromInt(1000)

type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// List returns the user directory for picking a counterparty.
	List(ctx context.Context) ([]models.PublicUser, error)
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, errors.New("username is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	existing, _ := s.repo.GetByUsername(ctx, input.Username)
	if existing != nil {
		return nil, errors.New("username is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     "user",
	}
	account := &models.Account{
		Balance: OpeningBalance,
	}
	if err := s.repo.CreateWithAccount(ctx, user, account); err != nil {
		return nil, err
	}

	user.Account = account
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}
