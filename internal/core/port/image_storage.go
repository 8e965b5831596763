package port

import (
	"context"

	"imagery-service/internal/core/domain"
)

// ImageStoragePort - доступ к каталогу снимков. Каталог для сервиса read-only.
type ImageStoragePort interface {
	// FindWithFilters выполняет COUNT и выборку страницы под одним и тем же
	// набором предикатов (оба запроса обязаны видеть одно состояние каталога)
	FindWithFilters(ctx context.Context, filters domain.ImageSearchFilters, limit, offset int) (*domain.ImagePage, error)

	// GetByID - точный поиск по catalog_id, без частичных совпадений.
	// Для неизвестного id возвращает domain.ErrImageNotFound
	GetByID(ctx context.Context, catalogID string) (*domain.CatalogImage, error)
}
