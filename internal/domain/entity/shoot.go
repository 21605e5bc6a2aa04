package entity

// ShootStep шаг потока съёмки
type ShootStep string

const (
	StepCamera     ShootStep = "camera"     // Ожидание снимка
	StepProcessing ShootStep = "processing" // Распознавание категории
	StepResult     ShootStep = "result"     // Сборка образа
)

// Outfit раскладка образа: не больше одного изображения на категорию
type Outfit map[ProductCategory]ImageRef

// Clone возвращает независимую копию
func (o Outfit) Clone() Outfit {
	out := make(Outfit, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Complete сообщает, что заполнены все категории
func (o Outfit) Complete() bool {
	for _, c := range Categories() {
		if o[c] == "" {
			return false
		}
	}
	return true
}

// ShootSession состояние одной сессии съёмки
type ShootSession struct {
	ID         string            // идентификатор экземпляра потока
	Mode       ShootMode         // режим, выбранный в меню
	Step       ShootStep         // текущий шаг
	Captured   *ImageRef         // сделанный снимок
	Identified *ProductCategory  // распознанная категория
	Outfit     Outfit            // слоты манекена
	Generating bool              // result/generating
	LastError  *FlowError        // последняя некритичная ошибка
	Result     *GenerationResult // итог генерации, если поток завершился
}

// NewShootSession создаёт сессию на шаге камеры
func NewShootSession(id string, mode ShootMode) *ShootSession {
	return &ShootSession{
		ID:     id,
		Mode:   mode,
		Step:   StepCamera,
		Outfit: make(Outfit),
	}
}

// Idle сообщает, что сессия в result/idle
func (s *ShootSession) Idle() bool {
	return s.Step == StepResult && !s.Generating
}

// Clone возвращает глубокую копию для отрисовки
func (s *ShootSession) Clone() ShootSession {
	out := *s
	if s.Captured != nil {
		ref := *s.Captured
		out.Captured = &ref
	}
	if s.Identified != nil {
		c := *s.Identified
		out.Identified = &c
	}
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	if s.Result != nil {
		r := s.Result.Clone()
		out.Result = &r
	}
	out.Outfit = s.Outfit.Clone()
	return out
}
