package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// Screen всё, что нужно шеллу для отрисовки экрана пользователя
type Screen struct {
	Navigation entity.NavigationState
	Title      string
	ShowBack   bool
	Shoot      *entity.ShootSession     // открытый поток съёмки
	GroupShot  *entity.GroupShotSession // открытый групповой снимок
}

// StudioService владеет навигацией пользователей и их живыми потоками.
// У пользователя не больше одного потока: новый отменяет предыдущий.
type StudioService struct {
	users    *UserService
	deps     FlowDeps
	notifier port.FlowNotifier

	mu    sync.Mutex
	flows map[int64]*userFlows
}

type userFlows struct {
	capture *CaptureFlow
	group   *GroupShotFlow
}

// NewStudioService создаёт сервис. notifier может быть nil.
func NewStudioService(users *UserService, deps FlowDeps, notifier port.FlowNotifier) *StudioService {
	return &StudioService{
		users:    users,
		deps:     deps,
		notifier: notifier,
		flows:    make(map[int64]*userFlows),
	}
}

// SetNotifier подключает шелл, который получает события потоков
func (s *StudioService) SetNotifier(n port.FlowNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Screen возвращает текущий экран пользователя
func (s *StudioService) Screen(ctx context.Context, userID, chatID int64) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.screenLocked(userID, NewViewStateController(user.Navigation)), nil
}

// Start сбрасывает пользователя на главную и отменяет его поток
func (s *StudioService) Start(ctx context.Context, userID, chatID int64) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelFlowsLocked(userID)
	user, err := s.users.Reset(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.screenLocked(userID, NewViewStateController(user.Navigation)), nil
}

// SelectTab переключает вкладку
func (s *StudioService) SelectTab(ctx context.Context, userID, chatID int64, tab entity.Tab) (*Screen, error) {
	return s.navigate(ctx, userID, chatID, func(c *ViewStateController) bool {
		return c.SelectTab(tab)
	})
}

// OpenFeature открывает экран функции. Групповой снимок запускает свой поток.
func (s *StudioService) OpenFeature(ctx context.Context, userID, chatID int64, feature entity.Feature) (*Screen, error) {
	return s.navigate(ctx, userID, chatID, func(c *ViewStateController) bool {
		if !c.NavigateToFeature(feature) {
			return false
		}
		if c.State().Overlay == entity.OverlayGroupShot {
			s.openGroupShotLocked(userID, chatID)
		}
		return true
	})
}

// Back закрывает слой или экран функции. Живой поток при этом отменяется.
func (s *StudioService) Back(ctx context.Context, userID, chatID int64) (*Screen, error) {
	return s.navigate(ctx, userID, chatID, func(c *ViewStateController) bool {
		if c.State().Overlay.IsFlow() {
			s.cancelFlowsLocked(userID)
		}
		return c.GoBack()
	})
}

// ChooseShootMode открывает камеру в выбранном режиме
func (s *StudioService) ChooseShootMode(ctx context.Context, userID, chatID int64, mode entity.ShootMode) (*Screen, error) {
	return s.navigate(ctx, userID, chatID, func(c *ViewStateController) bool {
		if !c.ChooseShootMode(mode) {
			return false
		}
		s.openCaptureLocked(userID, chatID, mode)
		return true
	})
}

// CancelFlow отменяет поток или закрывает меню режимов
func (s *StudioService) CancelFlow(ctx context.Context, userID, chatID int64) (*Screen, error) {
	return s.navigate(ctx, userID, chatID, func(c *ViewStateController) bool {
		s.cancelFlowsLocked(userID)
		if c.State().Overlay == entity.OverlayNone {
			return false
		}
		return c.GoBack()
	})
}

// Capture передаёт снимок в поток съёмки
func (s *StudioService) Capture(ctx context.Context, userID, chatID int64, photo entity.Photo) (*Screen, error) {
	return s.withCapture(ctx, userID, chatID, func(f *CaptureFlow) error {
		return f.Capture(photo)
	})
}

// AutoFillOutfit дособирает образ
func (s *StudioService) AutoFillOutfit(ctx context.Context, userID, chatID int64) (*Screen, error) {
	return s.withCapture(ctx, userID, chatID, func(f *CaptureFlow) error {
		return f.AutoFillOutfit()
	})
}

// ReplaceSlot меняет вещь в слоте
func (s *StudioService) ReplaceSlot(ctx context.Context, userID, chatID int64, category entity.ProductCategory) (*Screen, error) {
	return s.withCapture(ctx, userID, chatID, func(f *CaptureFlow) error {
		return f.ReplaceSlot(category)
	})
}

// ClearSlot освобождает слот
func (s *StudioService) ClearSlot(ctx context.Context, userID, chatID int64, category entity.ProductCategory) (*Screen, error) {
	return s.withCapture(ctx, userID, chatID, func(f *CaptureFlow) error {
		return f.ClearSlot(category)
	})
}

// ConfirmAndGenerate запускает генерацию образа
func (s *StudioService) ConfirmAndGenerate(ctx context.Context, userID, chatID int64) (*Screen, error) {
	return s.withCapture(ctx, userID, chatID, func(f *CaptureFlow) error {
		return f.ConfirmAndGenerate()
	})
}

// UploadGroupPhoto загружает фото для группового снимка. Пустая ссылка означает образец.
func (s *StudioService) UploadGroupPhoto(ctx context.Context, userID, chatID int64, ref entity.ImageRef) (*Screen, error) {
	return s.withGroupShot(ctx, userID, chatID, func(f *GroupShotFlow) error {
		return f.Upload(ref)
	})
}

// SetGroupShotMode меняет режим группового снимка
func (s *StudioService) SetGroupShotMode(ctx context.Context, userID, chatID int64, mode entity.GroupShotMode) (*Screen, error) {
	return s.withGroupShot(ctx, userID, chatID, func(f *GroupShotFlow) error {
		return f.SetMode(mode)
	})
}

// StartGroupShot запускает генерацию группового снимка
func (s *StudioService) StartGroupShot(ctx context.Context, userID, chatID int64) (*Screen, error) {
	return s.withGroupShot(ctx, userID, chatID, func(f *GroupShotFlow) error {
		return f.Start()
	})
}

// navigate применяет переход к контроллеру и сохраняет результат, если он что-то изменил
func (s *StudioService) navigate(ctx context.Context, userID, chatID int64, apply func(*ViewStateController) bool) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	ctrl := NewViewStateController(user.Navigation)
	if apply(ctrl) {
		if _, err := s.users.SetNavigation(ctx, userID, chatID, ctrl.State()); err != nil {
			return nil, fmt.Errorf("save navigation: %w", err)
		}
	}
	return s.screenLocked(userID, ctrl), nil
}

func (s *StudioService) withCapture(ctx context.Context, userID, chatID int64, op func(*CaptureFlow) error) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uf := s.flows[userID]
	if uf == nil || uf.capture == nil {
		return nil, entity.ErrNoFlow
	}
	if err := op(uf.capture); err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.screenLocked(userID, NewViewStateController(user.Navigation)), nil
}

func (s *StudioService) withGroupShot(ctx context.Context, userID, chatID int64, op func(*GroupShotFlow) error) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uf := s.flows[userID]
	if uf == nil || uf.group == nil {
		return nil, entity.ErrNoFlow
	}
	if err := op(uf.group); err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.screenLocked(userID, NewViewStateController(user.Navigation)), nil
}

func (s *StudioService) openCaptureLocked(userID, chatID int64, mode entity.ShootMode) {
	s.cancelFlowsLocked(userID)

	var flow *CaptureFlow
	flow = NewCaptureFlow(s.deps, mode, func(kind port.FlowEventKind, snap entity.ShootSession, exited bool) {
		s.onCaptureEvent(userID, chatID, flow, kind, snap, exited)
	})
	s.flows[userID] = &userFlows{capture: flow}
	log.Printf("User %d opened capture flow %s (mode=%s)", userID, flow.ID(), mode)
}

func (s *StudioService) openGroupShotLocked(userID, chatID int64) {
	s.cancelFlowsLocked(userID)

	var flow *GroupShotFlow
	flow = NewGroupShotFlow(s.deps, func(kind port.FlowEventKind, snap entity.GroupShotSession, exited bool) {
		s.onGroupShotEvent(userID, chatID, flow, kind, snap, exited)
	})
	s.flows[userID] = &userFlows{group: flow}
	log.Printf("User %d opened group shot flow %s", userID, flow.ID())
}

func (s *StudioService) cancelFlowsLocked(userID int64) {
	uf := s.flows[userID]
	if uf == nil {
		return
	}
	if uf.capture != nil {
		uf.capture.Cancel()
		log.Printf("User %d cancelled capture flow %s", userID, uf.capture.ID())
	}
	if uf.group != nil {
		uf.group.Cancel()
		log.Printf("User %d cancelled group shot flow %s", userID, uf.group.ID())
	}
	delete(s.flows, userID)
}

func (s *StudioService) onCaptureEvent(userID, chatID int64, flow *CaptureFlow, kind port.FlowEventKind, snap entity.ShootSession, exited bool) {
	s.mu.Lock()
	uf := s.flows[userID]
	if uf == nil || uf.capture != flow {
		s.mu.Unlock()
		return
	}
	if exited {
		s.closeFlowLocked(userID, chatID)
	}
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.NotifyFlow(context.Background(), port.FlowEvent{
			Kind: kind, UserID: userID, ChatID: chatID, Shoot: &snap, Exited: exited,
		})
	}
}

func (s *StudioService) onGroupShotEvent(userID, chatID int64, flow *GroupShotFlow, kind port.FlowEventKind, snap entity.GroupShotSession, exited bool) {
	s.mu.Lock()
	uf := s.flows[userID]
	if uf == nil || uf.group != flow {
		s.mu.Unlock()
		return
	}
	if exited {
		s.closeFlowLocked(userID, chatID)
	}
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.NotifyFlow(context.Background(), port.FlowEvent{
			Kind: kind, UserID: userID, ChatID: chatID, GroupShot: &snap, Exited: exited,
		})
	}
}

// closeFlowLocked убирает завершившийся поток и закрывает его слой
func (s *StudioService) closeFlowLocked(userID, chatID int64) {
	delete(s.flows, userID)

	ctx := context.Background()
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		log.Printf("Error getting user %d: %v", userID, err)
		return
	}
	ctrl := NewViewStateController(user.Navigation)
	if ctrl.CloseFlow() {
		if _, err := s.users.SetNavigation(ctx, userID, chatID, ctrl.State()); err != nil {
			log.Printf("Error saving navigation for user %d: %v", userID, err)
		}
	}
}

func (s *StudioService) screenLocked(userID int64, ctrl *ViewStateController) *Screen {
	scr := &Screen{
		Navigation: ctrl.State(),
		Title:      ctrl.Title(),
		ShowBack:   ctrl.ShowBack(),
	}
	if uf := s.flows[userID]; uf != nil {
		if uf.capture != nil {
			snap := uf.capture.Snapshot()
			scr.Shoot = &snap
		}
		if uf.group != nil {
			snap := uf.group.Snapshot()
			scr.GroupShot = &snap
		}
	}
	return scr
}
