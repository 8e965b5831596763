package usecase

import (
	"context"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
)

type GetImageByIDUseCase struct {
	storage port.ImageStoragePort
}

func NewGetImageByIDUseCase(storage port.ImageStoragePort) *GetImageByIDUseCase {
	return &GetImageByIDUseCase{storage: storage}
}

func (uc *GetImageByIDUseCase) Execute(ctx context.Context, catalogID string) (*domain.CatalogImage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetImageByID",
		"catalog_id": catalogID,
	})

	if catalogID == "" {
		return nil, domain.ErrInvalidInput
	}

	image, err := uc.storage.GetByID(ctx, catalogID)
	if err != nil {
		ucLogger.Warn("Catalog lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	return image, nil
}
