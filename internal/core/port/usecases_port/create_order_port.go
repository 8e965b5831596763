package usecases_port

import (
	"context"

	"imagery-service/internal/core/domain"
)

type CreateOrderUseCase interface {
	Execute(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
}
