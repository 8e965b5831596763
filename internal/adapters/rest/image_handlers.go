package rest

import (
	"net/http"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
	"imagery-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ImageHandler struct {
	searchImagesUC usecases_port.SearchImagesUseCase
	getImageUC     usecases_port.GetImageByIDUseCase
}

func NewImageHandler(searchImagesUC usecases_port.SearchImagesUseCase, getImageUC usecases_port.GetImageByIDUseCase) *ImageHandler {
	return &ImageHandler{
		searchImagesUC: searchImagesUC,
		getImageUC:     getImageUC,
	}
}

// SearchImages обрабатывает GET /api/images
func (h *ImageHandler) SearchImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	req := domain.ImageSearchRequest{
		Page:      query.Get("page"),
		Limit:     query.Get("limit"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		Area:      query.Get("area"),
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "SearchImages"})
	handlerLogger.Debug("Processing catalog search request", nil)

	page, err := h.searchImagesUC.Execute(r.Context(), req)
	if err != nil {
		// Валидация и хранилище уже разобраны ядром, здесь только мапим статус
		WriteDomainError(w, err)
		return
	}

	response := PaginatedImagesResponse{
		Data: make([]ImageResponse, len(page.Images)),
		Metadata: PageMetadata{
			Total:       page.TotalCount,
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
			Limit:       page.Limit,
		},
	}
	for i, img := range page.Images {
		response.Data[i] = ImageResponse{
			CatalogID: img.CatalogID,
			Geometry:  img.Geometry,
			CreatedAt: img.CreatedAt,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetImageByID обрабатывает GET /api/images/{imageID}
func (h *ImageHandler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	imageID := chi.URLParam(r, "imageID")

	handlerLogger := logger.WithFields(port.Fields{
		"handler":  "GetImageByID",
		"image_id": imageID,
	})
	handlerLogger.Debug("Processing catalog lookup request", nil)

	image, err := h.getImageUC.Execute(r.Context(), imageID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, ImageDataResponse{
		Data: ImageDetailsResponse{
			CatalogID: image.CatalogID,
			Geometry:  image.Geometry,
		},
	})
}
