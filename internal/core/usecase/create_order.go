package usecase

import (
	"context"
	"fmt"
	"time"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderUseCase struct {
	images port.ImageStoragePort
	orders port.OrderStoragePort
	// events может быть nil - тогда события просто не публикуются
	events port.OrderEventsPort
}

func NewCreateOrderUseCase(images port.ImageStoragePort, orders port.OrderStoragePort, events port.OrderEventsPort) *CreateOrderUseCase {
	return &CreateOrderUseCase{images: images, orders: orders, events: events}
}

// Execute создает заказ. Id и created_at назначаются сервером, клиентским
// значениям не доверяем. Проверка существования снимка дает внятную ошибку,
// но последнее слово - за внешним ключом в БД: если снимок исчез между
// проверкой и вставкой, Insert вернет тот же ErrImageNotFound.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateOrder",
		"image_id": req.ImageID,
	})

	if req.ImageID == "" {
		return nil, fmt.Errorf("%w: imageId is required", domain.ErrInvalidInput)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not a decimal number", domain.ErrInvalidInput, req.Price)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive, got %s", domain.ErrInvalidInput, price)
	}

	if _, err := uc.images.GetByID(ctx, req.ImageID); err != nil {
		ucLogger.Warn("Referenced image is not in the catalog", nil)
		return nil, err
	}

	order := domain.Order{
		ID:        uuid.New(),
		ImageID:   req.ImageID,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.orders.Insert(ctx, order); err != nil {
		ucLogger.Error("Failed to persist order", err, port.Fields{"order_id": order.ID.String()})
		return nil, err
	}

	ucLogger.Info("Order created", port.Fields{
		"order_id": order.ID.String(),
		"price":    order.Price.String(),
	})

	if uc.events != nil {
		if err := uc.events.PublishOrderCreated(ctx, order); err != nil {
			// Заказ уже сохранен, событие - best effort
			ucLogger.Error("Failed to publish order.created event", err, port.Fields{"order_id": order.ID.String()})
		}
	}

	return &order, nil
}
