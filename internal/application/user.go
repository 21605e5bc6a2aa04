package app

import (
	"context"
	"fmt"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetNavigation сохраняет состояние экрана. Пользователь создаётся, если его ещё нет.
func (s *UserService) SetNavigation(ctx context.Context, userID, chatID int64, nav entity.NavigationState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateNavigation(ctx, userID, nav); err != nil {
		return nil, fmt.Errorf("update navigation: %w", err)
	}

	user.SetNavigation(nav)
	return user, nil
}

// Reset заводит пользователю чистую запись: главная без слоёв
func (s *UserService) Reset(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	user := entity.NewUser(userID, chatID)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
