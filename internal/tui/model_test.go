package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
	"brandcam-bot/internal/infrastructure/generation"
	"brandcam-bot/internal/infrastructure/library"
	"brandcam-bot/internal/infrastructure/scheduler"
	"brandcam-bot/internal/infrastructure/storage"
	"brandcam-bot/internal/infrastructure/vision"
)

type eventQueue struct {
	mu     sync.Mutex
	events []port.FlowEvent
}

func (q *eventQueue) NotifyFlow(ctx context.Context, ev port.FlowEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []port.FlowEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func newTestModel(t *testing.T) (Model, *scheduler.Manual, *eventQueue) {
	t.Helper()

	clock := scheduler.NewManual()
	deps := app.FlowDeps{
		Classifier: vision.NewMockClassifier(entity.CategoryShoes),
		Generator:  generation.NewMockGenerator(),
		Library:    library.NewMockLibrary(),
		Random:     app.NewRandomSource(3),
		Scheduler:  clock,
		Timing:     app.FlowTiming{Recognition: time.Second, Generation: time.Second, GroupShot: time.Second, Timeout: time.Second},
	}
	queue := &eventQueue{}
	studio := app.NewStudioService(app.NewUserService(storage.NewMemoryUserRepository()), deps, queue)

	m := NewModel(studio)
	m = apply(t, m, m.start()())
	require.NotNil(t, m.screen)
	return m, clock, queue
}

// apply прогоняет сообщение и синхронно выполняет полученную команду
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestModel_StartsOnHome(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, entity.TabHome, m.screen.Navigation.ActiveTab)
	assert.Contains(t, m.View(), "Model Studio")
	assert.Contains(t, m.View(), "BrandCam")
}

func TestModel_OpenFeatureAndBack(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = apply(t, m, down)
	m = apply(t, m, enter)
	assert.Equal(t, entity.FeatureProductShowcase, m.screen.Navigation.SelectedFeature)
	assert.Contains(t, m.View(), "Product Showcase")

	m = apply(t, m, keys("b"))
	assert.Empty(t, m.screen.Navigation.SelectedFeature)
}

func TestModel_ShootFlow(t *testing.T) {
	m, clock, queue := newTestModel(t)

	m = apply(t, m, keys("3"))
	require.Equal(t, entity.OverlayShootMenu, m.screen.Navigation.Overlay)

	m = apply(t, m, down)
	m = apply(t, m, down)
	m = apply(t, m, enter)
	require.NotNil(t, m.screen.Shoot)
	assert.Equal(t, entity.ShootModeOutfit, m.screen.Shoot.Mode)

	m = apply(t, m, space)
	assert.Equal(t, entity.StepProcessing, m.screen.Shoot.Step)

	clock.Advance(time.Second)
	events := queue.drain()
	require.Len(t, events, 1)
	m = apply(t, m, flowEventMsg{event: events[0]})
	assert.Equal(t, entity.StepResult, m.screen.Shoot.Step)
	assert.Equal(t, "Распознано: Обувь", m.status)
	assert.Equal(t, entity.ImageRef("tui-shot-1"), m.screen.Shoot.Outfit[entity.CategoryShoes])

	m = apply(t, m, keys("a"))
	assert.True(t, m.screen.Shoot.Outfit.Complete())

	m = apply(t, m, keys("d"))
	_, hasHat := m.screen.Shoot.Outfit[entity.CategoryHat]
	assert.False(t, hasHat)

	m = apply(t, m, keys("g"))
	assert.True(t, m.screen.Shoot.Generating)

	clock.Advance(time.Second)
	events = queue.drain()
	require.Len(t, events, 1)
	m = apply(t, m, flowEventMsg{event: events[0]})
	assert.Nil(t, m.screen.Shoot)
	assert.Equal(t, entity.OverlayNone, m.screen.Navigation.Overlay)
	assert.Equal(t, "Образ готов!", m.status)
	assert.False(t, m.failed)
}

func TestModel_ErrorStatus(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = apply(t, m, keys("1"))
	// групповой снимок последний на главной
	for i := 0; i < len(entity.FeaturesFor(entity.TabHome))-1; i++ {
		m = apply(t, m, down)
	}
	m = apply(t, m, enter)
	require.NotNil(t, m.screen.GroupShot)

	m = apply(t, m, keys("g"))
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "загрузите фото")

	m = apply(t, m, keys("u"))
	m = apply(t, m, keys("t"))
	assert.False(t, m.failed)
	assert.NotNil(t, m.screen.GroupShot.Uploaded)
	assert.Equal(t, entity.GroupModeMultiAngle, m.screen.GroupShot.Mode)
}

func TestModel_CancelFlow(t *testing.T) {
	m, clock, queue := newTestModel(t)

	m = apply(t, m, keys("3"))
	m = apply(t, m, enter)
	m = apply(t, m, space)
	m = apply(t, m, keys("x"))

	clock.Advance(time.Minute)
	assert.Empty(t, queue.drain())
	assert.Nil(t, m.screen.Shoot)
	assert.Equal(t, "Операция отменена", m.status)
}

func TestModel_SpinnerWhileProcessing(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = apply(t, m, keys("3"))
	m = apply(t, m, enter)
	m = apply(t, m, space)
	require.Equal(t, entity.StepProcessing, m.screen.Shoot.Step)

	frame := m.spinner.View()
	assert.Contains(t, m.View(), frame+" ")
	assert.Contains(t, m.View(), "Распознаю товар...")

	next, cmd := m.Update(m.spinner.Tick())
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.NotEqual(t, frame, m.spinner.View())
	assert.Contains(t, m.View(), m.spinner.View()+" ")
}

func TestModel_HelpHidesAutofillWhenComplete(t *testing.T) {
	m, clock, queue := newTestModel(t)

	m = apply(t, m, keys("3"))
	m = apply(t, m, enter)
	m = apply(t, m, space)
	clock.Advance(time.Second)
	events := queue.drain()
	require.Len(t, events, 1)
	m = apply(t, m, flowEventMsg{event: events[0]})
	assert.Contains(t, m.helpText(), "a дособрать")

	m = apply(t, m, keys("a"))
	require.True(t, m.screen.Shoot.Outfit.Complete())
	assert.NotContains(t, m.helpText(), "a дособрать")
}
