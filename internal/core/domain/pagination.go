package domain

import (
	"fmt"
	"strconv"
)

// Единые значения пагинации для всех списочных эндпоинтов.
const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// Pagination - нормализованные параметры страницы.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// NormalizePagination разбирает сырые query-параметры page/limit.
// Пустое значение заменяется дефолтом. Явно переданное значение, которое
// не парсится или меньше 1, отклоняется: молчаливый clamp прятал бы баги
// клиента, поэтому возвращаем ErrInvalidPagination, и обработчик обязан
// прерваться до похода в хранилище.
func NormalizePagination(pageRaw, limitRaw string) (Pagination, error) {
	page := DefaultPage
	if pageRaw != "" {
		parsed, err := strconv.Atoi(pageRaw)
		if err != nil {
			return Pagination{}, fmt.Errorf("%w: page %q is not an integer", ErrInvalidPagination, pageRaw)
		}
		if parsed < 1 {
			return Pagination{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidPagination, parsed)
		}
		page = parsed
	}

	limit := DefaultLimit
	if limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			return Pagination{}, fmt.Errorf("%w: limit %q is not an integer", ErrInvalidPagination, limitRaw)
		}
		if parsed < 1 {
			return Pagination{}, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidPagination, parsed)
		}
		limit = parsed
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, nil
}

// TotalPages считает количество страниц. Для пустого результата возвращаем 1,
// чтобы пагинация на клиенте всегда была определена.
func TotalPages(total, limit int) int {
	if total <= 0 {
		return 1
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
