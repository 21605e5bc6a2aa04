package storage

import (
	"context"
	"sync"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает копию пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		cp := *user
		return &cp, nil
	}

	newUser := entity.NewUser(userID, chatID)

	r.mu.Lock()
	// Другой запрос мог успеть создать пользователя
	if existing, ok := r.users[userID]; ok {
		r.mu.Unlock()
		cp := *existing
		return &cp, nil
	}
	stored := *newUser
	r.users[userID] = &stored
	r.mu.Unlock()

	return newUser, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	cp := *user

	r.mu.Lock()
	r.users[user.ID] = &cp
	r.mu.Unlock()

	return nil
}

// UpdateNavigation обновляет состояние экрана пользователя
func (r *MemoryUserRepository) UpdateNavigation(ctx context.Context, userID int64, nav entity.NavigationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.SetNavigation(nav)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
