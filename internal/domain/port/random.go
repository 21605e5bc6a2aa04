package port

// RandomSource источник случайных индексов. *rand.Rand его реализует.
type RandomSource interface {
	Intn(n int) int
}
