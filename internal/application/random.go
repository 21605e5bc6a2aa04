package app

import (
	"math/rand"
	"sync"
	"time"

	"brandcam-bot/internal/domain/port"
)

// lockedRandom делает *rand.Rand безопасным для нескольких потоков
type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource создаёт источник случайности. При seed == 0 берёт текущее время.
func NewRandomSource(seed int64) port.RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandom{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
