package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal/core/common/page"
)

// Repository is the credential store. Lookups return internal.ErrUserNotFound
// when nothing matches.
type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	FindAll(ctx context.Context, req page.Request) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SortableFields maps public sort keys to user columns.
var SortableFields = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"createdAt": "created_at",
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*View, error) {
	u, err := s.repo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	v := u.ToView()
	return &v, nil
}

func (s *Service) List(ctx context.Context, req page.Request) (*page.Page[View], error) {
	users, total, err := s.repo.FindAll(ctx, req)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]View, len(users))
	for i, u := range users {
		views[i] = u.ToView()
	}
	return page.New(views, req, total), nil
}
