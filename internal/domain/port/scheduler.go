package port

import "time"

// Timer отложенная задача, которую можно отменить
type Timer interface {
	// Stop отменяет задачу. false, если она уже запущена или остановлена.
	Stop() bool
}

// Scheduler планировщик отложенных шагов потоков
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
