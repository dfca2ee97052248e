package service

import (
	"context"
	"errors"
	"fmt"

	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/models"

	"github.com/rs/zerolog"
)

// UserService manages the user directory.
type UserService struct {
	users  domain.UserStore
	logger *zerolog.Logger
}

func NewUserService(users domain.UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	user := &models.User{Name: name, Email: email}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("persist user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, fmt.Errorf("resolve user %d: %w", id, err)
	}
	return user, nil
}

// PatchUserInput updates only the fields that are set.
type PatchUserInput struct {
	Name  *string
	Email *string
}

func (s *UserService) Patch(ctx context.Context, id int64, in PatchUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return domain.ErrNoSuchUser
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
