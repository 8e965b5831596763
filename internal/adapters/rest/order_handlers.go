package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/contracts"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
	"imagery-service/internal/core/port/usecases_port"
)

type OrderHandler struct {
	createOrderUC usecases_port.CreateOrderUseCase
	listOrdersUC  usecases_port.ListOrdersUseCase
}

func NewOrderHandler(createOrderUC usecases_port.CreateOrderUseCase, listOrdersUC usecases_port.ListOrdersUseCase) *OrderHandler {
	return &OrderHandler{
		createOrderUC: createOrderUC,
		listOrdersUC:  listOrdersUC,
	}
}

// ListOrders обрабатывает GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	req := domain.OrderListRequest{
		Page:      query.Get("page"),
		Limit:     query.Get("limit"),
		MinPrice:  query.Get("minPrice"),
		MaxPrice:  query.Get("maxPrice"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "ListOrders"})
	handlerLogger.Debug("Processing order listing request", nil)

	page, err := h.listOrdersUC.Execute(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	response := PaginatedOrdersResponse{
		Data: make([]OrderResponse, len(page.Orders)),
		Metadata: PageMetadata{
			Total:       page.TotalCount,
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
			Limit:       page.Limit,
		},
	}
	for i, ord := range page.Orders {
		response.Data[i] = OrderResponse{
			ID:        ord.ID.String(),
			ImageID:   ord.ImageID,
			Price:     ord.Price.String(),
			CreatedAt: ord.CreatedAt,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// createOrderBody - тело POST /orders. Цена может прийти и числом, и строкой,
// json.Number сохраняет исходную запись без прохода через float64
type createOrderBody struct {
	ImageID string      `json:"imageId"`
	Price   json.Number `json:"price"`
}

// CreateOrder обрабатывает POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "CreateOrder"})

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Сначала контракт (схема), потом разбор: структурные ошибки
	// отлавливаются до какой-либо работы с данными
	if err := contracts.ValidateOrderCreate(rawBody); err != nil {
		handlerLogger.Warn("Order body failed schema validation", port.Fields{"error": err.Error()})
		WriteDomainError(w, err)
		return
	}

	var body createOrderBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	order, err := h.createOrderUC.Execute(r.Context(), domain.CreateOrderRequest{
		ImageID: body.ImageID,
		Price:   body.Price.String(),
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, OrderDataResponse{
		Data: OrderResponse{
			ID:        order.ID.String(),
			ImageID:   order.ImageID,
			Price:     order.Price.String(),
			CreatedAt: order.CreatedAt,
		},
	})
}
