package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// Локальный терминал всегда работает от имени одного пользователя
const (
	localUserID int64 = 1
	localChatID int64 = 1
)

var tabKeys = map[string]entity.Tab{
	"1": entity.TabHome,
	"2": entity.TabAssets,
	"3": entity.TabShoot,
	"4": entity.TabRetouch,
	"5": entity.TabGallery,
}

var tabOrder = []entity.Tab{entity.TabHome, entity.TabAssets, entity.TabShoot, entity.TabRetouch, entity.TabGallery}

// screenMsg результат действия над студией
type screenMsg struct {
	screen *app.Screen
	err    error
	status string
	failed bool
}

// Model экран студии в терминале
type Model struct {
	studio  *app.StudioService
	screen  *app.Screen
	spinner spinner.Model
	cursor  int
	status  string
	failed  bool
	shots   int
}

// NewModel создаёт модель поверх сервиса студии
func NewModel(studio *app.StudioService) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = busyStyle
	return Model{studio: studio, spinner: s, status: "Загрузка..."}
}

// Run запускает терминальный интерфейс и подключает его к событиям потоков
func Run(ctx context.Context, studio *app.StudioService) error {
	n := &Notifier{}
	studio.SetNotifier(n)
	defer studio.SetNotifier(nil)

	p := tea.NewProgram(NewModel(studio), tea.WithAltScreen(), tea.WithContext(ctx))
	n.program = p
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.spinner.Tick)
}

// start открывает главную
func (m Model) start() tea.Cmd {
	return m.act("Добро пожаловать в BrandCam", func(ctx context.Context) (*app.Screen, error) {
		return m.studio.Start(ctx, localUserID, localChatID)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screenMsg:
		if msg.err != nil {
			m.status = describeError(msg.err)
			m.failed = true
			return m, nil
		}
		if m.screen == nil || !sameView(m.screen, msg.screen) {
			m.cursor = 0
		}
		m.screen = msg.screen
		m.status = msg.status
		m.failed = msg.failed
		m.clampCursor()
		return m, nil

	case flowEventMsg:
		status, failed := describeEvent(msg.event)
		return m, func() tea.Msg {
			scr, err := m.studio.Screen(context.Background(), localUserID, localChatID)
			return screenMsg{screen: scr, err: err, status: status, failed: failed}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, nil
	case "esc", "b":
		return m, m.act("", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.Back(ctx, localUserID, localChatID)
		})
	case "x":
		return m, m.act("Операция отменена", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.CancelFlow(ctx, localUserID, localChatID)
		})
	}

	if tab, ok := tabKeys[key]; ok {
		return m, m.act("", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.SelectTab(ctx, localUserID, localChatID, tab)
		})
	}
	if m.screen == nil {
		return m, nil
	}

	switch m.screen.Navigation.Overlay {
	case entity.OverlayShootMenu:
		if key == "enter" {
			mode := entity.ShootModes()[m.cursor]
			return m, m.act("Режим: "+mode.Label(), func(ctx context.Context) (*app.Screen, error) {
				return m.studio.ChooseShootMode(ctx, localUserID, localChatID, mode)
			})
		}
	case entity.OverlayCamera:
		return m.handleCameraKey(key)
	case entity.OverlayGroupShot:
		return m.handleGroupShotKey(key)
	case entity.OverlayNone:
		features := entity.FeaturesFor(m.screen.Navigation.ActiveTab)
		if key == "enter" && m.screen.Navigation.SelectedFeature == "" && m.cursor < len(features) {
			feature := features[m.cursor].ID
			return m, m.act("", func(ctx context.Context) (*app.Screen, error) {
				return m.studio.OpenFeature(ctx, localUserID, localChatID, feature)
			})
		}
	}
	return m, nil
}

func (m Model) handleCameraKey(key string) (tea.Model, tea.Cmd) {
	if m.screen.Shoot == nil {
		return m, nil
	}
	category := entity.Categories()[m.cursor%len(entity.Categories())]

	switch key {
	case " ", "space", "enter":
		if m.screen.Shoot.Step != entity.StepCamera {
			return m, nil
		}
		m.shots++
		photo := entity.Photo{Ref: entity.ImageRef(fmt.Sprintf("tui-shot-%d", m.shots))}
		return m, m.act("Снимок сделан", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.Capture(ctx, localUserID, localChatID, photo)
		})
	case "a":
		return m, m.act("Образ дособран", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.AutoFillOutfit(ctx, localUserID, localChatID)
		})
	case "r":
		return m, m.act("Заменено: "+category.Label(), func(ctx context.Context) (*app.Screen, error) {
			return m.studio.ReplaceSlot(ctx, localUserID, localChatID, category)
		})
	case "d":
		return m, m.act("Снято: "+category.Label(), func(ctx context.Context) (*app.Screen, error) {
			return m.studio.ClearSlot(ctx, localUserID, localChatID, category)
		})
	case "g":
		return m, m.act("Генерация запущена", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.ConfirmAndGenerate(ctx, localUserID, localChatID)
		})
	}
	return m, nil
}

func (m Model) handleGroupShotKey(key string) (tea.Model, tea.Cmd) {
	group := m.screen.GroupShot
	if group == nil {
		return m, nil
	}

	switch key {
	case "u":
		return m, m.act("Образец загружен", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.UploadGroupPhoto(ctx, localUserID, localChatID, "")
		})
	case "t":
		mode := entity.GroupModeMultiAngle
		if group.Mode == entity.GroupModeMultiAngle {
			mode = entity.GroupModeRandom
		}
		return m, m.act("Режим: "+mode.Label(), func(ctx context.Context) (*app.Screen, error) {
			return m.studio.SetGroupShotMode(ctx, localUserID, localChatID, mode)
		})
	case "g", "enter":
		return m, m.act("Генерация запущена", func(ctx context.Context) (*app.Screen, error) {
			return m.studio.StartGroupShot(ctx, localUserID, localChatID)
		})
	}
	return m, nil
}

// act выполняет действие над студией вне цикла отрисовки
func (m Model) act(status string, fn func(context.Context) (*app.Screen, error)) tea.Cmd {
	return func() tea.Msg {
		scr, err := fn(context.Background())
		return screenMsg{screen: scr, err: err, status: status}
	}
}

// itemCount число строк, по которым ходит курсор
func (m Model) itemCount() int {
	if m.screen == nil {
		return 0
	}
	nav := m.screen.Navigation
	switch nav.Overlay {
	case entity.OverlayShootMenu:
		return len(entity.ShootModes())
	case entity.OverlayCamera:
		if m.screen.Shoot != nil && m.screen.Shoot.Step == entity.StepResult {
			return len(entity.Categories())
		}
		return 0
	case entity.OverlayNone:
		if nav.SelectedFeature == "" {
			return len(entity.FeaturesFor(nav.ActiveTab))
		}
	}
	return 0
}

func (m *Model) clampCursor() {
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// sameView сообщает, что экран тот же и курсор можно сохранить
func sameView(a, b *app.Screen) bool {
	if b == nil {
		return true
	}
	return a.Navigation == b.Navigation
}

func (m Model) View() string {
	if m.screen == nil {
		return m.renderStatus()
	}

	var b strings.Builder
	title := m.screen.Title
	if m.screen.ShowBack {
		title = "◀ " + title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderBody()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) renderTabs() string {
	labels := map[entity.Tab]string{
		entity.TabHome:    "1 Главная",
		entity.TabAssets:  "2 Ассеты",
		entity.TabShoot:   "3 Съёмка",
		entity.TabRetouch: "4 Ретушь",
		entity.TabGallery: "5 Галерея",
	}
	cells := make([]string, 0, len(tabOrder))
	for _, tab := range tabOrder {
		style := tabStyle
		if tab == m.screen.Navigation.ActiveTab {
			style = activeTabStyle
		}
		cells = append(cells, style.Render(labels[tab]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderBody() string {
	nav := m.screen.Navigation
	switch nav.Overlay {
	case entity.OverlayShootMenu:
		lines := []string{"Выберите режим съёмки:"}
		for i, mode := range entity.ShootModes() {
			lines = append(lines, m.item(i, mode.Label()))
		}
		return strings.Join(lines, "\n")
	case entity.OverlayCamera:
		return m.renderShoot()
	case entity.OverlayGroupShot:
		return m.renderGroupShot()
	}

	if nav.SelectedFeature != "" {
		info, _ := entity.LookupFeature(nav.SelectedFeature)
		return info.Description + "\n" + dimStyle.Render("Загрузите изображение и настройте параметры.")
	}

	features := entity.FeaturesFor(nav.ActiveTab)
	if len(features) == 0 {
		return dimStyle.Render("Функция в разработке...")
	}
	lines := make([]string, 0, len(features))
	for i, f := range features {
		lines = append(lines, m.item(i, f.Title+"  "+dimStyle.Render(f.Description)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderShoot() string {
	s := m.screen.Shoot
	if s == nil {
		return dimStyle.Render("Нет активной съёмки")
	}

	lines := []string{"Режим: " + s.Mode.Label()}
	if s.LastError != nil {
		lines = append(lines, errorStyle.Render("⚠ "+s.LastError.Error()))
	}
	switch s.Step {
	case entity.StepCamera:
		lines = append(lines, "Наведите камеру и нажмите пробел")
	case entity.StepProcessing:
		lines = append(lines, m.busy("Распознаю товар..."))
	case entity.StepResult:
		if s.Identified != nil {
			lines = append(lines, "Распознано: "+s.Identified.Label())
		}
		for i, c := range entity.Categories() {
			ref := string(s.Outfit[c])
			if ref == "" {
				ref = dimStyle.Render("—")
			}
			lines = append(lines, m.item(i, fmt.Sprintf("%-16s %s", c.Label(), ref)))
		}
		if s.Generating {
			lines = append(lines, m.busy("Генерирую образ..."))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderGroupShot() string {
	g := m.screen.GroupShot
	if g == nil {
		return dimStyle.Render("Нет активной съёмки")
	}

	lines := []string{"Групповой снимок"}
	if g.LastError != nil {
		lines = append(lines, errorStyle.Render("⚠ "+g.LastError.Error()))
	}
	uploaded := dimStyle.Render("не загружено")
	if g.Uploaded != nil {
		uploaded = string(*g.Uploaded)
	}
	lines = append(lines, "Фото: "+uploaded, "Режим: "+g.Mode.Label())
	if g.Processing {
		lines = append(lines, m.busy("Генерирую групповой снимок..."))
	}
	return strings.Join(lines, "\n")
}

// busy строка ожидания ответа сервиса
func (m Model) busy(text string) string {
	return m.spinner.View() + " " + busyStyle.Render(text)
}

func (m Model) item(i int, text string) string {
	if i == m.cursor {
		return cursorStyle.Render("› ") + text
	}
	return "  " + text
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return errorStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}

func (m Model) helpText() string {
	base := "1-5 вкладки • b назад • x отмена • q выход"
	if m.screen == nil {
		return base
	}
	switch m.screen.Navigation.Overlay {
	case entity.OverlayShootMenu:
		return "↑/↓ режим • enter выбрать • " + base
	case entity.OverlayCamera:
		if s := m.screen.Shoot; s != nil && s.Step == entity.StepResult {
			if s.Outfit.Complete() {
				return "↑/↓ слот • r заменить • d снять • g генерировать • " + base
			}
			return "↑/↓ слот • r заменить • d снять • a дособрать • g генерировать • " + base
		}
		return "пробел снять • " + base
	case entity.OverlayGroupShot:
		return "u образец • t режим • g начать • " + base
	}
	return "↑/↓ выбор • enter открыть • " + base
}

func describeError(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoFlow):
		return "Нет активной съёмки, откройте вкладку 3"
	case errors.Is(err, entity.ErrInvalidInput):
		return "Сначала загрузите фото (u) или соберите образ"
	case errors.Is(err, entity.ErrEmptyPool):
		return "В каталоге нет образцов для этой категории"
	case errors.Is(err, entity.ErrInvalidState):
		return "Сейчас это действие недоступно"
	}
	return err.Error()
}

func describeEvent(ev port.FlowEvent) (string, bool) {
	switch ev.Kind {
	case port.EventRecognized:
		if ev.Shoot != nil && ev.Shoot.Identified != nil {
			return "Распознано: " + ev.Shoot.Identified.Label(), false
		}
		return "Товар распознан", false
	case port.EventGenerated:
		return "Образ готов!", false
	case port.EventGroupShotDone:
		return "Групповой снимок готов!", false
	case port.EventRecognitionFailed:
		return "Не удалось распознать товар, сделайте другое фото", true
	}
	return "Не удалось сгенерировать результат, попробуйте ещё раз", true
}
