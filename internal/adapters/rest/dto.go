package rest

import (
	"encoding/json"
	"time"
)

// ImageResponse - DTO снимка в списке. Наружу уходят только catalogId,
// геометрия и дата создания, внутренние колонки не протекают.
type ImageResponse struct {
	CatalogID string          `json:"catalogId"`
	Geometry  json.RawMessage `json:"geometry"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ImageDetailsResponse - DTO для GET /images/{id}.
type ImageDetailsResponse struct {
	CatalogID string          `json:"catalogId"`
	Geometry  json.RawMessage `json:"geometry"`
}

// OrderResponse - DTO заказа. Цена сериализуется строкой,
// чтобы не терять точность на клиенте.
type OrderResponse struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// PageMetadata - блок метаданных пагинации, общий для всех списков.
type PageMetadata struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}

// PaginatedImagesResponse - ответ GET /images.
type PaginatedImagesResponse struct {
	Data     []ImageResponse `json:"data"`
	Metadata PageMetadata    `json:"metadata"`
}

// PaginatedOrdersResponse - ответ GET /orders.
type PaginatedOrdersResponse struct {
	Data     []OrderResponse `json:"data"`
	Metadata PageMetadata    `json:"metadata"`
}

// ImageDataResponse оборачивает одиночный снимок в конверт {data: ...}.
type ImageDataResponse struct {
	Data ImageDetailsResponse `json:"data"`
}

// OrderDataResponse оборачивает созданный заказ.
type OrderDataResponse struct {
	Data OrderResponse `json:"data"`
}
