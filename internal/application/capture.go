package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// FlowDeps зависимости потоков
type FlowDeps struct {
	Classifier port.Classifier
	Generator  port.Generator
	Library    port.Library
	Random     port.RandomSource
	Scheduler  port.Scheduler
	Timing     FlowTiming
}

// CaptureListener получает события отложенных шагов. Вызывается без блокировок потока.
type CaptureListener func(kind port.FlowEventKind, snap entity.ShootSession, exited bool)

// CaptureFlow поток camera → processing → result для одной сессии съёмки
type CaptureFlow struct {
	mu       sync.Mutex
	deps     FlowDeps
	session  *entity.ShootSession
	pending  pendingStep
	closed   bool
	listener CaptureListener
}

// NewCaptureFlow открывает сессию на шаге камеры
func NewCaptureFlow(deps FlowDeps, mode entity.ShootMode, listener CaptureListener) *CaptureFlow {
	return &CaptureFlow{
		deps:     deps,
		session:  entity.NewShootSession(uuid.NewString(), mode),
		pending:  pendingStep{scheduler: deps.Scheduler},
		listener: listener,
	}
}

// ID идентификатор экземпляра потока
func (f *CaptureFlow) ID() string {
	return f.session.ID
}

// Snapshot возвращает копию сессии
func (f *CaptureFlow) Snapshot() entity.ShootSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

// Closed сообщает, что поток завершён или отменён
func (f *CaptureFlow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Capture запоминает снимок и запускает распознавание. Работает только на шаге камеры.
func (f *CaptureFlow) Capture(photo entity.Photo) error {
	if photo.Ref == "" {
		return fmt.Errorf("capture: %w", entity.ErrInvalidInput)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.session.Step != entity.StepCamera {
		return fmt.Errorf("capture in %s: %w", f.session.Step, entity.ErrInvalidState)
	}

	ref := photo.Ref
	f.session.Captured = &ref
	f.session.Step = entity.StepProcessing
	f.session.LastError = nil
	f.pending.arm(f.deps.Timing.Recognition, func(token string) {
		f.completeRecognition(token, photo)
	})
	return nil
}

func (f *CaptureFlow) completeRecognition(token string, photo entity.Photo) {
	f.mu.Lock()
	if f.closed || !f.pending.current(token) {
		f.mu.Unlock()
		return
	}
	ctx := f.pending.begin(f.deps.Timing.Timeout)
	f.mu.Unlock()

	res, err := callBounded(ctx, func(ctx context.Context) (*entity.Classification, error) {
		return f.deps.Classifier.Classify(ctx, photo)
	})
	if err == nil && (res == nil || !res.Category.Valid()) {
		err = errors.New("classifier returned no usable category")
	}

	f.mu.Lock()
	if f.closed || !f.pending.current(token) {
		f.mu.Unlock()
		return
	}
	f.pending.finish()

	kind := port.EventRecognized
	if err != nil {
		log.Printf("Recognition failed for flow %s: %v", f.session.ID, err)
		kind = port.EventRecognitionFailed
		f.session.Step = entity.StepCamera
		f.session.Captured = nil
		f.session.LastError = flowError(entity.ReasonRecognitionFailed, entity.ErrRecognitionFailed, err)
	} else {
		category := res.Category
		f.session.Identified = &category
		f.session.Outfit = entity.Outfit{category: photo.Ref}
		f.session.Step = entity.StepResult
		f.session.Generating = false
	}
	snap := f.session.Clone()
	f.mu.Unlock()

	f.emit(kind, snap, false)
}

// AutoFillOutfit заполняет пустые слоты случайными образцами. Занятые слоты не трогает.
func (f *CaptureFlow) AutoFillOutfit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("autofill"); err != nil {
		return err
	}
	for _, c := range entity.Categories() {
		if f.session.Outfit[c] != "" {
			continue
		}
		pool := f.deps.Library.Pool(c)
		if len(pool) == 0 {
			continue
		}
		f.session.Outfit[c] = pool[f.deps.Random.Intn(len(pool))]
	}
	f.session.LastError = nil
	return nil
}

// ReplaceSlot ставит в слот следующий образец, отличный от текущего.
// Пустой слот получает случайный образец.
func (f *CaptureFlow) ReplaceSlot(category entity.ProductCategory) error {
	if !category.Valid() {
		return fmt.Errorf("replace %q: %w", category, entity.ErrUnknownCategory)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("replace"); err != nil {
		return err
	}
	pool := f.deps.Library.Pool(category)
	if len(pool) == 0 {
		return fmt.Errorf("replace %s: %w", category, entity.ErrEmptyPool)
	}

	f.session.LastError = nil
	current := f.session.Outfit[category]
	if current == "" {
		f.session.Outfit[category] = pool[f.deps.Random.Intn(len(pool))]
		return nil
	}
	f.session.Outfit[category] = nextCandidate(pool, current)
	return nil
}

// nextCandidate ищет после текущего первый отличный образец, по кругу.
// Если отличных нет, возвращает первый.
func nextCandidate(pool []entity.ImageRef, current entity.ImageRef) entity.ImageRef {
	idx := -1
	for i, ref := range pool {
		if ref == current {
			idx = i
			break
		}
	}
	for i := 1; i <= len(pool); i++ {
		cand := pool[(idx+i+len(pool))%len(pool)]
		if cand != current {
			return cand
		}
	}
	return pool[0]
}

// ClearSlot снимает вещь с манекена
func (f *CaptureFlow) ClearSlot(category entity.ProductCategory) error {
	if !category.Valid() {
		return fmt.Errorf("clear %q: %w", category, entity.ErrUnknownCategory)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("clear"); err != nil {
		return err
	}
	delete(f.session.Outfit, category)
	return nil
}

// ConfirmAndGenerate запускает генерацию образа. По завершении поток выходит.
func (f *CaptureFlow) ConfirmAndGenerate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireIdle("generate"); err != nil {
		return err
	}
	if len(f.session.Outfit) == 0 {
		return fmt.Errorf("generate with empty outfit: %w", entity.ErrInvalidInput)
	}

	f.session.Generating = true
	f.session.LastError = nil
	req := entity.GenerationRequest{
		Kind:   entity.GenerationOutfit,
		Mode:   string(f.session.Mode),
		Outfit: f.session.Outfit.Clone(),
	}
	if f.session.Captured != nil {
		req.Images = []entity.ImageRef{*f.session.Captured}
	}
	f.pending.arm(f.deps.Timing.Generation, func(token string) {
		f.completeGeneration(token, req)
	})
	return nil
}

func (f *CaptureFlow) completeGeneration(token string, req entity.GenerationRequest) {
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

	kind := port.EventGenerated
	exited := false
	f.session.Generating = false
	if err != nil {
		log.Printf("Generation failed for flow %s: %v", f.session.ID, err)
		kind = port.EventGenerationFailed
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

	f.emit(kind, snap, exited)
}

// Cancel немедленно закрывает поток. После него колбэки не срабатывают.
func (f *CaptureFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.pending.disarm()
	f.closed = true
}

func (f *CaptureFlow) requireIdle(action string) error {
	if f.closed || !f.session.Idle() {
		return fmt.Errorf("%s in %s: %w", action, f.session.Step, entity.ErrInvalidState)
	}
	return nil
}

func (f *CaptureFlow) emit(kind port.FlowEventKind, snap entity.ShootSession, exited bool) {
	if f.listener != nil {
		f.listener(kind, snap, exited)
	}
}
