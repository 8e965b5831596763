package port

import (
	"context"

	"imagery-service/internal/core/domain"
)

// OrderStoragePort - хранилище заказов.
type OrderStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.OrderListFilters, limit, offset int) (*domain.OrderPage, error)

	// Insert сохраняет новый заказ. Нарушение внешнего ключа на image_id
	// транслируется в domain.ErrImageNotFound: ограничение БД - последняя
	// инстанция против гонки "снимок удалили между проверкой и вставкой"
	Insert(ctx context.Context, order domain.Order) error
}
