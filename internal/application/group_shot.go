package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// GroupShotListener получает события группового снимка
type GroupShotListener func(kind port.FlowEventKind, snap entity.GroupShotSession, exited bool)

// GroupShotFlow поток idle → processing → выход
type GroupShotFlow struct {
	mu       sync.Mutex
	deps     FlowDeps
	session  *entity.GroupShotSession
	pending  pendingStep
	closed   bool
	listener GroupShotListener
}

// NewGroupShotFlow открывает групповой снимок в состоянии idle
func NewGroupShotFlow(deps FlowDeps, listener GroupShotListener) *GroupShotFlow {
	return &GroupShotFlow{
		deps:     deps,
		session:  entity.NewGroupShotSession(uuid.NewString()),
		pending:  pendingStep{scheduler: deps.Scheduler},
		listener: listener,
	}
}

// ID идентификатор экземпляра потока
func (f *GroupShotFlow) ID() string {
	return f.session.ID
}

// Snapshot возвращает копию сессии
func (f *GroupShotFlow) Snapshot() entity.GroupShotSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

// Closed сообщает, что поток завершён или отменён
func (f *GroupShotFlow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Upload запоминает исходное фото. Пустая ссылка означает образец из каталога.
func (f *GroupShotFlow) Upload(ref entity.ImageRef) error {
	if ref == "" {
		ref = f.deps.Library.GroupSample()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("upload"); err != nil {
		return err
	}
	f.session.Uploaded = &ref
	f.session.LastError = nil
	return nil
}

// SetMode меняет режим, пока поток в idle
func (f *GroupShotFlow) SetMode(mode entity.GroupShotMode) error {
	if _, ok := entity.ParseGroupShotMode(string(mode)); !ok {
		return fmt.Errorf("group shot mode %q: %w", mode, entity.ErrInvalidInput)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("set mode"); err != nil {
		return err
	}
	f.session.Mode = mode
	return nil
}

// Start запускает генерацию. Без загруженного фото ничего не делает.
func (f *GroupShotFlow) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("start"); err != nil {
		return err
	}
	if f.session.Uploaded == nil {
		return fmt.Errorf("start without upload: %w", entity.ErrInvalidInput)
	}

	f.session.Processing = true
	f.session.LastError = nil
	req := entity.GenerationRequest{
		Kind:   entity.GenerationGroupShot,
		Images: []entity.ImageRef{*f.session.Uploaded},
		Mode:   string(f.session.Mode),
	}
	f.pending.arm(f.deps.Timing.GroupShot, func(token string) {
		f.complete(token, req)
	})
	return nil
}

func (f *GroupShotFlow) complete(token string, req entity.GenerationRequest) {
	f.mu.Lock()
	if f.closed || !f.pending.current(token) {
		f.mu.Unlock()
		return
	}
	ctx := f.pending.begin(f.deps.Timing.Timeout)
	f.mu.Unlock()

	res, err := callBounded(ctx, func(ctx context.Context) (*entity.GenerationResult, error) {
		return f.deps.Generator.Generate(ctx, req)
	})

	f.mu.Lock()
	if f.closed || !f.pending.current(token) {
		f.mu.Unlock()
		return
	}
	f.pending.finish()

	kind := port.EventGroupShotDone
	exited := false
	f.session.Processing = false
	if err != nil {
		log.Printf("Group shot failed for flow %s: %v", f.session.ID, err)
		kind = port.EventGroupShotFailed
		f.session.LastError = flowError(entity.ReasonGenerationFailed, entity.ErrGenerationFailed, err)
	} else {
		if res == nil {
			res = &entity.GenerationResult{}
		}
		r := res.Clone()
		f.session.Result = &r
		f.closed = true
		exited = true
	}
	snap := f.session.Clone()
	f.mu.Unlock()

	if f.listener != nil {
		f.listener(kind, snap, exited)
	}
}

// Cancel немедленно закрывает поток
func (f *GroupShotFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.pending.disarm()
	f.closed = true
}

func (f *GroupShotFlow) requireIdle(action string) error {
	if f.closed || f.session.Processing {
		return fmt.Errorf("group shot %s: %w", action, entity.ErrInvalidState)
	}
	return nil
}
