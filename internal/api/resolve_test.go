package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brandcam-bot/internal/domain/entity"
)

func TestResolveFeature(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tab   entity.Tab
		want  entity.Feature
		found bool
	}{
		{"exact id", "pose-control", entity.TabHome, entity.FeaturePoseControl, true},
		{"title", "Group Shot", entity.TabHome, entity.FeatureGroupShot, true},
		{"typo", "grup shot", entity.TabHome, entity.FeatureGroupShot, true},
		{"other tab", "product studio", entity.TabHome, "", false},
		{"retouch tab", "product studio", entity.TabRetouch, entity.FeatureProductStudio, true},
		{"garbage", "что-то другое", entity.TabHome, "", false},
		{"empty", "  ", entity.TabHome, "", false},
		{"no features", "model studio", entity.TabGallery, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveFeature(tt.input, tt.tab)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		input string
		want  entity.ProductCategory
		found bool
	}{
		{"hat", entity.CategoryHat, true},
		{"Брюки", entity.CategoryPants, true},
		{"брюкм", entity.CategoryPants, true},
		{"shoe", entity.CategoryShoes, true},
		{"шарф", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := resolveCategory(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
