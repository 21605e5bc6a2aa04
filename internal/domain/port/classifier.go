package port

import (
	"context"

	"brandcam-bot/internal/domain/entity"
)

// Classifier интерфейс распознавания категории товара на снимке
type Classifier interface {
	// Classify определяет категорию и область товара
	Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error)
}
