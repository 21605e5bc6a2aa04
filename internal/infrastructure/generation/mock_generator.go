// Package generation содержит реализации бэкенда синтеза.
package generation

import (
	"context"
	"fmt"
	"log"

	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// MockGenerator заглушка синтеза: всегда успешна и ничего не создаёт
type MockGenerator struct{}

// NewMockGenerator создаёт заглушку генератора
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate проверяет запрос и возвращает пустой результат
func (g *MockGenerator) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Images) == 0 && len(req.Outfit) == 0 {
		return nil, fmt.Errorf("%s: %w", req.Kind, entity.ErrInvalidInput)
	}

	log.Printf("Mock generation %s: %d images, %d slots, mode=%q", req.Kind, len(req.Images), len(req.Outfit), req.Mode)
	return &entity.GenerationResult{}, nil
}

var _ port.Generator = (*MockGenerator)(nil)
