// Package scheduler содержит планировщики отложенных шагов потоков.
package scheduler

import (
	"sort"
	"sync"
	"time"

	"brandcam-bot/internal/domain/port"
)

// Real планирует задачи на time.AfterFunc
type Real struct{}

// NewReal создаёт планировщик на реальном времени
func NewReal() Real {
	return Real{}
}

// AfterFunc запускает fn в отдельной горутине через d
func (Real) AfterFunc(d time.Duration, fn func()) port.Timer {
	return time.AfterFunc(d, fn)
}

// Manual планировщик с ручным временем. Задачи выполняются в Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManual создаёт планировщик с нулевым временем
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc регистрирует задачу на now+d
func (m *Manual) AfterFunc(d time.Duration, fn func()) port.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance сдвигает время и выполняет созревшие задачи по порядку
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()

	for {
		t := m.nextDue(now)
		if t == nil {
			return
		}
		t.fn()
	}
}

// Pending возвращает число задач, которые ещё выполнятся
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(now time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at == m.tasks[j].at {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].at < m.tasks[j].at
	})
	for i, t := range m.tasks {
		if t.at > now {
			break
		}
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
		return t
	}
	return nil
}

// Stop отменяет задачу, если она ещё не выполнена
func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

var (
	_ port.Scheduler = Real{}
	_ port.Scheduler = (*Manual)(nil)
)
