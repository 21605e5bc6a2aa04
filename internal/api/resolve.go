package telegram

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"brandcam-bot/internal/domain/entity"
)

// maxTypoDistance допустимое число опечаток для имени длины n
func maxTypoDistance(n int) int {
	if n <= 4 {
		return 1
	}
	return n / 4
}

// closest ищет кандидата с наименьшим расстоянием Левенштейна.
// Возвращает -1, если ничего не похоже.
func closest(input string, names [][]string) int {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return -1
	}

	best, bestDist := -1, 0
	for i, aliases := range names {
		for _, alias := range aliases {
			d := levenshtein.ComputeDistance(input, strings.ToLower(alias))
			if d > maxTypoDistance(len([]rune(alias))) {
				continue
			}
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best
}

// resolveFeature находит функцию вкладки по идентификатору или названию с опечатками
func resolveFeature(input string, tab entity.Tab) (entity.Feature, bool) {
	features := entity.FeaturesFor(tab)
	names := make([][]string, len(features))
	for i, f := range features {
		names[i] = []string{string(f.ID), f.Title}
	}
	idx := closest(input, names)
	if idx < 0 {
		return "", false
	}
	return features[idx].ID, true
}

// resolveCategory находит категорию по ключу или русскому названию
func resolveCategory(input string) (entity.ProductCategory, bool) {
	if c, ok := entity.ParseCategory(input); ok {
		return c, true
	}
	cats := entity.Categories()
	names := make([][]string, len(cats))
	for i, c := range cats {
		names[i] = []string{string(c), c.Label()}
	}
	idx := closest(input, names)
	if idx < 0 {
		return "", false
	}
	return cats[idx], true
}
