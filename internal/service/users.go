package service

import (
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/metrics"
	"bitwise74/files-api/pkg/security"
	"bitwise74/files-api/pkg/validators"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type UserService struct {
	users UserRepo
	argon *security.ArgonHash
	queue queue.Enqueuer
}

func NewUserService(users UserRepo, argon *security.ArgonHash, q queue.Enqueuer) *UserService {
	return &UserService{
		users: users,
		argon: argon,
		queue: q,
	}
}

// Register creates a new account and schedules the welcome job
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if err := validators.EmailValidator(email); err != nil {
		return nil, invalid(err.Error())
	}

	if err := validators.PasswordValidator(password); err != nil {
		return nil, invalid(err.Error())
	}

	found, err := s.users.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if found {
		return nil, invalid("Already exist")
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	if err := s.queue.EnqueueWelcome(ctx, queue.WelcomeJob{UserID: user.ID}); err != nil {
		metrics.EnqueueFailures.WithLabelValues(queue.TypeWelcome).Inc()
		zap.L().Error("Failed to enqueue welcome job", zap.Error(err), zap.Uint("user_id", user.ID))
	}

	return user, nil
}

// Me returns the user behind a resolved session
func (s *UserService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}

		return nil, fmt.Errorf("failed to find user, %w", err)
	}

	return user, nil
}
