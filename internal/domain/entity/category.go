package entity

import "strings"

// ImageRef ссылка на изображение (URL или Telegram file_id)
type ImageRef string

// Photo снимок, переданный в поток съёмки
type Photo struct {
	Ref  ImageRef // ссылка, которая попадёт в образ
	Data []byte   // байты изображения, если шелл их скачал
}

// ProductCategory категория товара на манекене
type ProductCategory string

const (
	CategoryHat   ProductCategory = "hat"
	CategoryOuter ProductCategory = "outer"
	CategoryInner ProductCategory = "inner"
	CategoryPants ProductCategory = "pants"
	CategoryShoes ProductCategory = "shoes"
)

// Categories возвращает категории сверху вниз по манекену
func Categories() []ProductCategory {
	return []ProductCategory{CategoryHat, CategoryOuter, CategoryInner, CategoryPants, CategoryShoes}
}

// ParseCategory разбирает категорию по ключу или подписи
func ParseCategory(s string) (ProductCategory, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if s == string(c) || s == strings.ToLower(c.Label()) {
			return c, true
		}
	}
	return "", false
}

// Label возвращает подпись категории
func (c ProductCategory) Label() string {
	switch c {
	case CategoryHat:
		return "Головной убор"
	case CategoryOuter:
		return "Верхняя одежда"
	case CategoryInner:
		return "Кофта"
	case CategoryPants:
		return "Брюки"
	case CategoryShoes:
		return "Обувь"
	}
	return string(c)
}

// Valid проверяет, что категория из закрытого списка
func (c ProductCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
