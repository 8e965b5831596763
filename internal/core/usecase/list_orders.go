package usecase

import (
	"context"
	"fmt"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"

	"github.com/shopspring/decimal"
)

type ListOrdersUseCase struct {
	storage port.OrderStoragePort
}

func NewListOrdersUseCase(storage port.OrderStoragePort) *ListOrdersUseCase {
	return &ListOrdersUseCase{storage: storage}
}

// Execute отдает страницу заказов под тем же контрактом пагинации,
// что и поиск снимков. Фильтры здесь только по цене и дате создания.
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req domain.OrderListRequest) (*domain.OrderPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListOrders"})

	pagination, err := domain.NormalizePagination(req.Page, req.Limit)
	if err != nil {
		ucLogger.Warn("Rejected pagination parameters", port.Fields{"page": req.Page, "limit": req.Limit})
		return nil, err
	}

	filters := domain.OrderListFilters{}

	filters.MinPrice, err = parsePriceBound("minPrice", req.MinPrice)
	if err != nil {
		return nil, err
	}
	filters.MaxPrice, err = parsePriceBound("maxPrice", req.MaxPrice)
	if err != nil {
		return nil, err
	}

	filters.StartDate, err = domain.ParseDateBound("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	filters.EndDate, err = domain.ParseDateBound("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	result, err := uc.storage.FindWithFilters(ctx, filters, pagination.Limit, pagination.Offset)
	if err != nil {
		ucLogger.Error("Order listing failed", err, nil)
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result.CurrentPage = pagination.Page
	result.Limit = pagination.Limit
	result.TotalPages = domain.TotalPages(result.TotalCount, pagination.Limit)

	ucLogger.Info("Order listing finished", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Orders),
	})

	return result, nil
}

func parsePriceBound(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a decimal number", domain.ErrInvalidInput, name, raw)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, name)
	}
	return &d, nil
}
