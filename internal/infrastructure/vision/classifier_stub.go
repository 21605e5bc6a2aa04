//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"brandcam-bot/internal/domain/entity"
)

// GoCVClassifier заглушка для сборки без OpenCV
type GoCVClassifier struct{}

// NewGoCVClassifier создаёт классификатор-заглушку (без OpenCV).
func NewGoCVClassifier() *GoCVClassifier {
	return &GoCVClassifier{}
}

// Classify возвращает ошибку, если сборка без тега gocv.
func (c *GoCVClassifier) Classify(ctx context.Context, photo entity.Photo) (*entity.Classification, error) {
	_ = ctx
	_ = photo
	return nil, errors.Join(entity.ErrRecognitionFailed, errors.New("gocv build tag is not enabled"))
}
