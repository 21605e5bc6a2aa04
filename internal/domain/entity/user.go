package entity

// User представляет пользователя бота
type User struct {
	ID         int64           // Telegram User ID
	ChatID     int64           // Telegram Chat ID
	Navigation NavigationState // Что сейчас на экране у пользователя
}

// NewUser создаёт нового пользователя на главной вкладке
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:         userID,
		ChatID:     chatID,
		Navigation: NewNavigationState(),
	}
}

// SetNavigation обновляет состояние экрана пользователя
func (u *User) SetNavigation(nav NavigationState) {
	u.Navigation = nav
}
