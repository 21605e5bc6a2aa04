package app

import "brandcam-bot/internal/domain/entity"

// ViewStateController единственный источник правды о том, что на экране.
// Все переходы тотальны: недопустимое действие ничего не меняет и возвращает false.
type ViewStateController struct {
	state entity.NavigationState
}

// NewViewStateController создаёт контроллер из сохранённого состояния
func NewViewStateController(state entity.NavigationState) *ViewStateController {
	if state.ActiveTab == "" || state.ActiveTab == entity.TabShoot {
		state.ActiveTab = entity.TabHome
	}
	return &ViewStateController{state: state}
}

// State возвращает текущее состояние
func (c *ViewStateController) State() entity.NavigationState {
	return c.state
}

// SelectTab переключает вкладку. Вкладка shoot открывает меню режимов съёмки.
func (c *ViewStateController) SelectTab(tab entity.Tab) bool {
	if _, ok := entity.ParseTab(string(tab)); !ok {
		return false
	}
	// Поверх живого потока нижней панели нет
	if c.state.Overlay.IsFlow() {
		return false
	}

	if tab == entity.TabShoot {
		if c.state.Overlay == entity.OverlayShootMenu {
			return false
		}
		c.state.Overlay = entity.OverlayShootMenu
		return true
	}

	prev := c.state
	c.state.Overlay = entity.OverlayNone
	c.state.ActiveTab = tab
	c.state.SelectedFeature = ""
	return prev != c.state
}

// NavigateToFeature открывает экран функции с главной или с ретуши.
// Групповой снимок открывается слоем и не трогает вкладку и экран.
func (c *ViewStateController) NavigateToFeature(feature entity.Feature) bool {
	if c.state.Overlay != entity.OverlayNone || !c.state.ActiveTab.HostsFeatures() {
		return false
	}
	info, ok := entity.LookupFeature(feature)
	if !ok || info.Host != c.state.ActiveTab {
		return false
	}

	if feature.IsOverlay() {
		c.state.Overlay = entity.OverlayGroupShot
		return true
	}
	if c.state.SelectedFeature == feature {
		return false
	}
	c.state.SelectedFeature = feature
	return true
}

// GoBack закрывает слой, а без слоя закрывает экран функции
func (c *ViewStateController) GoBack() bool {
	if c.state.Overlay != entity.OverlayNone {
		c.closeOverlay()
		return true
	}
	if c.state.SelectedFeature != "" {
		c.state.SelectedFeature = ""
		return true
	}
	return false
}

// ChooseShootMode закрывает меню режимов и открывает камеру
func (c *ViewStateController) ChooseShootMode(mode entity.ShootMode) bool {
	if c.state.Overlay != entity.OverlayShootMenu {
		return false
	}
	if _, ok := entity.ParseShootMode(string(mode)); !ok {
		return false
	}
	c.state.Overlay = entity.OverlayCamera
	c.state.ShootMode = mode
	return true
}

// CloseFlow возвращает из слоя потока к экрану под ним
func (c *ViewStateController) CloseFlow() bool {
	if !c.state.Overlay.IsFlow() {
		return false
	}
	c.closeOverlay()
	return true
}

// Title заголовок экрана
func (c *ViewStateController) Title() string {
	if c.state.SelectedFeature != "" {
		if info, ok := entity.LookupFeature(c.state.SelectedFeature); ok {
			return info.Title
		}
	}
	if c.state.ActiveTab == entity.TabRetouch {
		return "AI Toolbox"
	}
	return "BrandCam"
}

// ShowBack сообщает, нужна ли кнопка «назад»
func (c *ViewStateController) ShowBack() bool {
	return c.state.SelectedFeature != "" || c.state.Overlay != entity.OverlayNone
}

func (c *ViewStateController) closeOverlay() {
	c.state.Overlay = entity.OverlayNone
	c.state.ShootMode = ""
}
