package vision

import (
	"context"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// MockClassifier всегда распознаёт одну и ту же категорию
type MockClassifier struct {
	Category entity.ProductCategory
}

// NewMockClassifier создаёт заглушку. Пустая категория означает верхнюю одежду.
func NewMockClassifier(category entity.ProductCategory) *MockClassifier {
	if !category.Valid() {
		category = entity.CategoryOuter
	}
	return &MockClassifier{Category: category}
}

// Classify возвращает заданную категорию на весь кадр
func (c *MockClassifier) Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entity.Classification{Category: c.Category, Confidence: 1}, nil
}

var (
	_ port.Classifier = (*MockClassifier)(nil)
	_ port.Classifier = (*GoCVClassifier)(nil)
)
