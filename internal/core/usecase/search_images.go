package usecase

import (
	"context"
	"fmt"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
)

type SearchImagesUseCase struct {
	storage port.ImageStoragePort
}

func NewSearchImagesUseCase(storage port.ImageStoragePort) *SearchImagesUseCase {
	return &SearchImagesUseCase{storage: storage}
}

// Execute валидирует сырые параметры поиска и выполняет запрос к каталогу.
// Порядок строгий: пагинация -> даты -> геометрия. Любая ошибка валидации
// прерывает обработку до первого обращения к хранилищу.
func (uc *SearchImagesUseCase) Execute(ctx context.Context, req domain.ImageSearchRequest) (*domain.ImagePage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "SearchImages"})

	pagination, err := domain.NormalizePagination(req.Page, req.Limit)
	if err != nil {
		ucLogger.Warn("Rejected pagination parameters", port.Fields{"page": req.Page, "limit": req.Limit})
		return nil, err
	}

	startDate, err := domain.ParseDateBound("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := domain.ParseDateBound("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	filters := domain.ImageSearchFilters{
		StartDate: startDate,
		EndDate:   endDate,
	}

	if req.Area != "" {
		area, err := domain.ParseAreaFilter(req.Area)
		if err != nil {
			ucLogger.Warn("Rejected area filter", port.Fields{"error": err.Error()})
			return nil, err
		}
		filters.Area = area
		ucLogger = ucLogger.WithFields(port.Fields{"aoi_geohash": area.CenterGeohash()})
	}

	ucLogger.Debug("Searching catalog", port.Fields{
		"page":  pagination.Page,
		"limit": pagination.Limit,
	})

	result, err := uc.storage.FindWithFilters(ctx, filters, pagination.Limit, pagination.Offset)
	if err != nil {
		ucLogger.Error("Catalog search failed", err, nil)
		return nil, fmt.Errorf("search images: %w", err)
	}

	result.CurrentPage = pagination.Page
	result.Limit = pagination.Limit
	result.TotalPages = domain.TotalPages(result.TotalCount, pagination.Limit)

	ucLogger.Info("Catalog search finished", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Images),
	})

	return result, nil
}
