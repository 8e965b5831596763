package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
	"imagery-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderCreatedDTO - для сообщения о созданном заказе
type OrderCreatedDTO struct {
	OrderID   uuid.UUID `json:"order_id"`
	ImageID   string    `json:"image_id"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderEventsAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewOrderEventsAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*OrderEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &OrderEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *OrderEventsAdapter) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	// 1. Извлекаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "OrderEventsAdapter",
		"routing_key": a.routingKey,
		"order_id":    order.ID.String(),
	})

	dto := OrderCreatedDTO{
		OrderID:   order.ID,
		ImageID:   order.ImageID,
		Price:     order.Price.String(),
		CreatedAt: order.CreatedAt,
	}

	body, _ := json.Marshal(dto)

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Устанавливаем таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second) // Таймаут 10 секунд на публикацию
	defer cancel()

	adapterLogger.Info("Publishing order created event", port.Fields{"image_id": dto.ImageID})
	err := a.producer.Publish(publishCtx, a.routingKey, msg)
	if err != nil {
		adapterLogger.Error("Failed to publish order event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for order %s: %w", order.ID, err)
	}

	adapterLogger.Info("Successfully published order event", nil)
	return nil
}
