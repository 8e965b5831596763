package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"imagery-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSearchImagesUC struct {
	lastReq domain.ImageSearchRequest
	page    *domain.ImagePage
	err     error
}

func (f *fakeSearchImagesUC) Execute(_ context.Context, req domain.ImageSearchRequest) (*domain.ImagePage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeGetImageUC struct {
	image *domain.CatalogImage
	err   error
}

func (f *fakeGetImageUC) Execute(_ context.Context, _ string) (*domain.CatalogImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

func newImageRouter(search *fakeSearchImagesUC, get *fakeGetImageUC) http.Handler {
	h := NewImageHandler(search, get)
	r := chi.NewRouter()
	r.Get("/api/images", h.SearchImages)
	r.Get("/api/images/{imageID}", h.GetImageByID)
	return r
}

func TestSearchImagesHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns paginated envelope", func(t *testing.T) {
		search := &fakeSearchImagesUC{page: &domain.ImagePage{
			Images: []domain.CatalogImage{{
				CatalogID: "103401008B2340",
				Geometry:  json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
				CreatedAt: time.Date(2025, 1, 30, 11, 30, 0, 0, time.UTC),
			}},
			TotalCount:  11,
			CurrentPage: 2,
			TotalPages:  3,
			Limit:       5,
		}}
		router := newImageRouter(search, &fakeGetImageUC{})

		req := httptest.NewRequest(http.MethodGet, "/api/images?page=2&limit=5&startDate=2025-01-01", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		if search.lastReq.Page != "2" || search.lastReq.StartDate != "2025-01-01" {
			t.Fatalf("query parameters were not passed through: %+v", search.lastReq)
		}

		var resp PaginatedImagesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(resp.Data) != 1 || resp.Data[0].CatalogID != "103401008B2340" {
			t.Fatalf("unexpected data: %+v", resp.Data)
		}
		if resp.Metadata.Total != 11 || resp.Metadata.CurrentPage != 2 || resp.Metadata.TotalPages != 3 || resp.Metadata.Limit != 5 {
			t.Fatalf("unexpected metadata: %+v", resp.Metadata)
		}
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		search := &fakeSearchImagesUC{err: domain.ErrInvalidPagination}
		router := newImageRouter(search, &fakeGetImageUC{})

		req := httptest.NewRequest(http.MethodGet, "/api/images?page=0", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("storage failures map to 500 without details", func(t *testing.T) {
		search := &fakeSearchImagesUC{err: domain.ErrStoreUnavailable}
		router := newImageRouter(search, &fakeGetImageUC{})

		req := httptest.NewRequest(http.MethodGet, "/api/images", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp["error"] != "Internal server error" {
			t.Fatalf("internal details leaked: %q", resp["error"])
		}
	})
}

func TestGetImageByIDHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns the image envelope", func(t *testing.T) {
		get := &fakeGetImageUC{image: &domain.CatalogImage{
			CatalogID: "103401008B2340",
			Geometry:  json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
		}}
		router := newImageRouter(&fakeSearchImagesUC{}, get)

		req := httptest.NewRequest(http.MethodGet, "/api/images/103401008B2340", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var resp ImageDataResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Data.CatalogID != "103401008B2340" {
			t.Fatalf("unexpected data: %+v", resp.Data)
		}
	})

	t.Run("unknown image maps to 404", func(t *testing.T) {
		router := newImageRouter(&fakeSearchImagesUC{}, &fakeGetImageUC{err: domain.ErrImageNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/images/nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
