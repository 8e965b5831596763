package usecases_port

import (
	"context"

	"imagery-service/internal/core/domain"
)

type GetImageByIDUseCase interface {
	Execute(ctx context.Context, catalogID string) (*domain.CatalogImage, error)
}
