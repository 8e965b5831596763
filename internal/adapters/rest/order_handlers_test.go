package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imagery-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeCreateOrderUC struct {
	lastReq domain.CreateOrderRequest
	calls   int
	order   *domain.Order
	err     error
}

func (f *fakeCreateOrderUC) Execute(_ context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakeListOrdersUC struct {
	lastReq domain.OrderListRequest
	page    *domain.OrderPage
	err     error
}

func (f *fakeListOrdersUC) Execute(_ context.Context, req domain.OrderListRequest) (*domain.OrderPage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func newOrderRouter(create *fakeCreateOrderUC, list *fakeListOrdersUC) http.Handler {
	h := NewOrderHandler(create, list)
	r := chi.NewRouter()
	r.Get("/api/orders", h.ListOrders)
	r.Post("/api/orders", h.CreateOrder)
	return r
}

func TestListOrdersHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns paginated envelope with string prices", func(t *testing.T) {
		orderID := uuid.New()
		list := &fakeListOrdersUC{page: &domain.OrderPage{
			Orders: []domain.Order{{
				ID:        orderID,
				ImageID:   "103401008B2340",
				Price:     decimal.RequireFromString("299.99"),
				CreatedAt: time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC),
			}},
			TotalCount:  1,
			CurrentPage: 1,
			TotalPages:  1,
			Limit:       5,
		}}
		router := newOrderRouter(&fakeCreateOrderUC{}, list)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?minPrice=100&maxPrice=500", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		if list.lastReq.MinPrice != "100" || list.lastReq.MaxPrice != "500" {
			t.Fatalf("price filters were not passed through: %+v", list.lastReq)
		}

		var resp PaginatedOrdersResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(resp.Data) != 1 || resp.Data[0].Price != "299.99" {
			t.Fatalf("unexpected data: %+v", resp.Data)
		}
		if resp.Data[0].ID != orderID.String() {
			t.Fatalf("expected order id %s, got %s", orderID, resp.Data[0].ID)
		}
	})

	t.Run("invalid filters map to 400", func(t *testing.T) {
		router := newOrderRouter(&fakeCreateOrderUC{}, &fakeListOrdersUC{err: domain.ErrInvalidInput})

		req := httptest.NewRequest(http.MethodGet, "/api/orders?minPrice=cheap", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCreateOrderHandler(t *testing.T) {
	t.Parallel()

	newOrder := func() *domain.Order {
		return &domain.Order{
			ID:        uuid.New(),
			ImageID:   "103401008B2340",
			Price:     decimal.RequireFromString("299.99"),
			CreatedAt: time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("creates an order from a numeric price", func(t *testing.T) {
		create := &fakeCreateOrderUC{order: newOrder()}
		router := newOrderRouter(create, &fakeListOrdersUC{})

		body := `{"imageId": "103401008B2340", "price": 299.99}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
		if create.lastReq.Price != "299.99" {
			t.Fatalf("expected price passed as 299.99, got %q", create.lastReq.Price)
		}

		var resp OrderDataResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Data.ImageID != "103401008B2340" || resp.Data.Price != "299.99" {
			t.Fatalf("unexpected data: %+v", resp.Data)
		}
	})

	t.Run("accepts a string price", func(t *testing.T) {
		create := &fakeCreateOrderUC{order: newOrder()}
		router := newOrderRouter(create, &fakeListOrdersUC{})

		body := `{"imageId": "103401008B2340", "price": "449.99"}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
		if create.lastReq.Price != "449.99" {
			t.Fatalf("expected price passed as 449.99, got %q", create.lastReq.Price)
		}
	})

	t.Run("schema violations are rejected before the use case", func(t *testing.T) {
		cases := map[string]string{
			"missing imageId":     `{"price": 10}`,
			"missing price":       `{"imageId": "a"}`,
			"unknown field":       `{"imageId": "a", "price": 10, "status": "paid"}`,
			"empty imageId":       `{"imageId": "", "price": 10}`,
			"non-decimal price":   `{"imageId": "a", "price": "lots"}`,
			"malformed JSON body": `{"imageId":`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				create := &fakeCreateOrderUC{order: newOrder()}
				router := newOrderRouter(create, &fakeListOrdersUC{})

				req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
				}
				if create.calls != 0 {
					t.Fatalf("use case must not be called on schema violation")
				}
			})
		}
	})

	t.Run("unknown image maps to 404", func(t *testing.T) {
		create := &fakeCreateOrderUC{err: domain.ErrImageNotFound}
		router := newOrderRouter(create, &fakeListOrdersUC{})

		body := `{"imageId": "missing", "price": 10}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
