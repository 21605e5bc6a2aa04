package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
	"brandcam-bot/internal/infrastructure/generation"
	"brandcam-bot/internal/infrastructure/library"
	"brandcam-bot/internal/infrastructure/scheduler"
	"brandcam-bot/internal/infrastructure/vision"
)

var testTiming = FlowTiming{
	Recognition: 2 * time.Second,
	Generation:  3 * time.Second,
	GroupShot:   3 * time.Second,
	Timeout:     time.Second,
}

// sequenceRandom возвращает заданные индексы по кругу
type sequenceRandom struct {
	seq []int
	pos int
}

func (r *sequenceRandom) Intn(n int) int {
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.pos%len(r.seq)] % n
	r.pos++
	return v
}

type failingClassifier struct{}

func (failingClassifier) Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error) {
	return nil, errors.New("nothing recognisable")
}

// stuckBackend никогда не отвечает и игнорирует контекст
type stuckBackend struct {
	release chan struct{}
}

func (b *stuckBackend) Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error) {
	<-b.release
	return nil, errors.New("released")
}

func (b *stuckBackend) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error) {
	<-b.release
	return nil, errors.New("released")
}

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error) {
	return nil, errors.New("backend unavailable")
}

type recordedEvent struct {
	kind   port.FlowEventKind
	exited bool
}

type eventLog struct {
	mu     sync.Mutex
	events []recordedEvent
	shoot  []entity.ShootSession
}

func (l *eventLog) capture(kind port.FlowEventKind, snap entity.ShootSession, exited bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, recordedEvent{kind, exited})
	l.shoot = append(l.shoot, snap)
}

func (l *eventLog) group(kind port.FlowEventKind, snap entity.GroupShotSession, exited bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, recordedEvent{kind, exited})
}

func (l *eventLog) kinds() []port.FlowEventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]port.FlowEventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.kind)
	}
	return out
}

// notifierLog реализует port.FlowNotifier для тестов сервиса
type notifierLog struct {
	mu     sync.Mutex
	events []port.FlowEvent
}

func (n *notifierLog) NotifyFlow(ctx context.Context, ev port.FlowEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *notifierLog) all() []port.FlowEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]port.FlowEvent(nil), n.events...)
}

func testDeps(sched port.Scheduler) FlowDeps {
	return FlowDeps{
		Classifier: vision.NewMockClassifier(entity.CategoryOuter),
		Generator:  generation.NewMockGenerator(),
		Library:    library.NewMockLibrary(),
		Random:     &sequenceRandom{seq: []int{1}},
		Scheduler:  sched,
		Timing:     testTiming,
	}
}

func newManual() *scheduler.Manual {
	return scheduler.NewManual()
}
