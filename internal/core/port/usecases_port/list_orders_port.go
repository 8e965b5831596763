package usecases_port

import (
	"context"

	"imagery-service/internal/core/domain"
)

type ListOrdersUseCase interface {
	Execute(ctx context.Context, req domain.OrderListRequest) (*domain.OrderPage, error)
}
