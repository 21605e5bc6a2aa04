package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// FlowTiming задержки имитации бэкенда и предел ожидания
type FlowTiming struct {
	Recognition time.Duration
	Generation  time.Duration
	GroupShot   time.Duration
	Timeout     time.Duration
}

// DefaultFlowTiming задержки прототипа
func DefaultFlowTiming() FlowTiming {
	return FlowTiming{
		Recognition: 2 * time.Second,
		Generation:  3 * time.Second,
		GroupShot:   3 * time.Second,
		Timeout:     15 * time.Second,
	}
}

// pendingStep единственный отложенный шаг потока.
// Защищается мьютексом владельца.
type pendingStep struct {
	scheduler port.Scheduler
	timer     port.Timer
	token     string
	cancel    context.CancelFunc
}

// arm планирует fn через d и возвращает токен, который fn должна проверить
func (p *pendingStep) arm(d time.Duration, fn func(token string)) string {
	p.disarm()
	token := uuid.NewString()
	p.token = token
	p.timer = p.scheduler.AfterFunc(d, func() { fn(token) })
	return token
}

// current проверяет, что токен ещё действителен
func (p *pendingStep) current(token string) bool {
	return token != "" && p.token == token
}

// begin создаёт контекст вызова бэкенда, отменяемый через disarm
func (p *pendingStep) begin(timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	p.cancel = cancel
	return ctx
}

// finish освобождает шаг после применения результата
func (p *pendingStep) finish() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.timer = nil
	p.token = ""
}

// disarm отменяет таймер и вызов бэкенда, токен становится недействительным
func (p *pendingStep) disarm() {
	if p.timer != nil {
		p.timer.Stop()
	}
	p.finish()
}

// callBounded вызывает бэкенд и бросает его, когда истекает ctx,
// даже если бэкенд контекст игнорирует.
func callBounded[T any](ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := call(ctx)
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// flowError переводит ошибку бэкенда в некритичную ошибку потока.
// base всегда остаётся в цепочке, чтобы errors.Is находил его и при таймауте.
func flowError(reason entity.ReasonCode, base, err error) *entity.FlowError {
	if errors.Is(err, context.DeadlineExceeded) {
		reason = entity.ReasonTimeout
	}
	if !errors.Is(err, base) {
		err = fmt.Errorf("%w: %w", base, err)
	}
	return &entity.FlowError{Reason: reason, Err: err}
}
