package usecases_port

import (
	"context"

	"imagery-service/internal/core/domain"
)

type SearchImagesUseCase interface {
	Execute(ctx context.Context, req domain.ImageSearchRequest) (*domain.ImagePage, error)
}
