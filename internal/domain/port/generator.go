package port

import (
	"context"

	"brandcam-bot/internal/domain/entity"
)

// Generator интерфейс бэкенда синтеза изображений
type Generator interface {
	// Generate синтезирует итоговые изображения по запросу
	Generate(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error)
}
