package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/blog-platform/internal/auth"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
)

const bcryptCost = 12

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(database *db.Database) *UserService {
	return &UserService{users: repository.NewUserRepository(database.Gorm)}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserPage struct {
	Users       []repository.UserSummary `json:"users"`
	TotalPages  int                      `json:"totalPages"`
	CurrentPage int                      `json:"currentPage"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*repository.UserSummary, error) {
	taken, err := s.users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &repository.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

// ListUsers is admin-only.
func (s *UserService) ListUsers(ctx context.Context, caller auth.Identity, page, limit int) (*UserPage, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	rows, err := s.users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users:       rows,
		TotalPages:  int((count + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}
