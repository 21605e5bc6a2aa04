package entity

import "strings"

// Tab вкладка нижней навигации
type Tab string

const (
	TabHome    Tab = "home"    // Главная лента
	TabAssets  Tab = "assets"  // Ассеты
	TabRetouch Tab = "retouch" // Инструменты ретуши
	TabGallery Tab = "gallery" // Галерея / профиль
	TabShoot   Tab = "shoot"   // Кнопка съёмки (открывает меню режимов)
)

// Tabs возвращает вкладки в порядке нижней панели
func Tabs() []Tab {
	return []Tab{TabHome, TabAssets, TabShoot, TabRetouch, TabGallery}
}

// ParseTab разбирает имя вкладки. "profile" это старое имя галереи.
func ParseTab(s string) (Tab, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return TabHome, true
	case "assets":
		return TabAssets, true
	case "retouch":
		return TabRetouch, true
	case "gallery", "profile":
		return TabGallery, true
	case "shoot":
		return TabShoot, true
	}
	return "", false
}

// HostsFeatures сообщает, может ли вкладка открывать экраны функций
func (t Tab) HostsFeatures() bool {
	return t == TabHome || t == TabRetouch
}

// Overlay полноэкранный слой поверх навигации
type Overlay string

const (
	OverlayNone      Overlay = ""
	OverlayShootMenu Overlay = "shoot_menu" // Выбор режима съёмки
	OverlayCamera    Overlay = "camera"     // Поток съёмки
	OverlayGroupShot Overlay = "group_shot" // Групповой снимок
)

// IsFlow возвращает true для слоёв, за которыми стоит живой поток
func (o Overlay) IsFlow() bool {
	return o == OverlayCamera || o == OverlayGroupShot
}

// ShootMode режим, с которым открывается камера
type ShootMode string

const (
	ShootModeModel   ShootMode = "model"
	ShootModeProduct ShootMode = "product"
	ShootModeOutfit  ShootMode = "outfit"
)

// ShootModes возвращает режимы в порядке меню
func ShootModes() []ShootMode {
	return []ShootMode{ShootModeModel, ShootModeProduct, ShootModeOutfit}
}

// ParseShootMode разбирает режим съёмки
func ParseShootMode(s string) (ShootMode, bool) {
	m := ShootMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ShootModes() {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Label возвращает подпись режима
func (m ShootMode) Label() string {
	switch m {
	case ShootModeModel:
		return "Модель"
	case ShootModeProduct:
		return "Товар"
	case ShootModeOutfit:
		return "Образ"
	}
	return string(m)
}

// NavigationState то, что сейчас на экране
type NavigationState struct {
	ActiveTab       Tab       // Активная вкладка (никогда не shoot)
	SelectedFeature Feature   // Открытый экран функции, пусто если нет
	Overlay         Overlay   // Открытый полноэкранный слой
	ShootMode       ShootMode // Режим камеры, пока открыт OverlayCamera
}

// NewNavigationState создаёт начальное состояние: главная без слоёв
func NewNavigationState() NavigationState {
	return NavigationState{ActiveTab: TabHome}
}
