package port

import (
	"context"

	"imagery-service/internal/core/domain"
)

// OrderEventsPort - публикация событий о созданных заказах.
// Публикация не входит в транзакцию заказа: ошибка здесь
// логируется, но клиенту не возвращается.
type OrderEventsPort interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}
