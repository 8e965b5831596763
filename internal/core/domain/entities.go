package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogImage - снимок из каталога. Записи неизменяемые: их создает только
// импорт каталога, сервис их никогда не обновляет и не удаляет.
type CatalogImage struct {
	CatalogID string
	// Geometry - покрытие снимка в GeoJSON (SRID 4326), как его отдает ST_AsGeoJSON
	Geometry  json.RawMessage
	CreatedAt time.Time
}

// Order - заказ на один снимок каталога.
type Order struct {
	ID      uuid.UUID
	ImageID string
	// Цена хранится как точный decimal (в БД - текст), float к деньгам не подпускаем
	Price     decimal.Decimal
	CreatedAt time.Time
}

// ImageSearchRequest - сырые параметры поиска снимков, как они пришли
// в query string. Живет один запрос, никогда не сохраняется.
type ImageSearchRequest struct {
	Page      string
	Limit     string
	StartDate string
	EndDate   string
	Area      string
}

// OrderListRequest - сырые параметры списка заказов.
type OrderListRequest struct {
	Page      string
	Limit     string
	MinPrice  string
	MaxPrice  string
	StartDate string
	EndDate   string
}

// CreateOrderRequest - данные на создание заказа из тела запроса.
// Price приходит строкой, чтобы цена не проходила через float.
type CreateOrderRequest struct {
	ImageID string
	Price   string
}

// ImageSearchFilters - уже провалидированные фильтры поиска снимков.
type ImageSearchFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Area      *AreaFilter
}

// OrderListFilters - фильтры списка заказов.
type OrderListFilters struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
}

// ImagePage - страница результатов поиска снимков.
type ImagePage struct {
	Images      []CatalogImage
	TotalCount  int
	CurrentPage int
	TotalPages  int
	Limit       int
}

// OrderPage - страница списка заказов.
type OrderPage struct {
	Orders      []Order
	TotalCount  int
	CurrentPage int
	TotalPages  int
	Limit       int
}
