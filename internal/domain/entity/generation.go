package entity

// GenerationKind что именно синтезируется
type GenerationKind string

const (
	GenerationOutfit    GenerationKind = "outfit"
	GenerationGroupShot GenerationKind = "group_shot"
)

// GenerationRequest запрос к бэкенду синтеза
type GenerationRequest struct {
	Kind   GenerationKind
	Images []ImageRef // исходные снимки
	Mode   string     // режим съёмки или группового снимка
	Outfit Outfit     // раскладка образа для GenerationOutfit
}

// GenerationResult ответ бэкенда синтеза
type GenerationResult struct {
	Images []ImageRef
}

// Clone возвращает копию результата
func (r GenerationResult) Clone() GenerationResult {
	return GenerationResult{Images: append([]ImageRef(nil), r.Images...)}
}
