package port

import "brandcam-bot/internal/domain/entity"

// Library каталог образцов для слотов манекена
type Library interface {
	// Pool возвращает упорядоченный список кандидатов категории
	Pool(category entity.ProductCategory) []entity.ImageRef

	// GroupSample возвращает образец для группового снимка
	GroupSample() entity.ImageRef
}
