package postgres

import (
	"context"
	"errors"
	"fmt"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImageStorageAdapter реализует ImageStoragePort для PostgreSQL/PostGIS.
type ImageStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewImageStorageAdapter(pool *pgxpool.Pool) (*ImageStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ImageStorageAdapter{pool: pool}, nil
}

// FindWithFilters ищет снимки по набору фильтров с пагинацией.
// COUNT и выборка страницы выполняются в одной транзакции под одним и тем же
// набором предикатов от queryBuilder, поэтому видят одно состояние каталога.
func (a *ImageStorageAdapter) FindWithFilters(ctx context.Context, filters domain.ImageSearchFilters, limit, offset int) (*domain.ImagePage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ImageStorageAdapter",
		"method":    "FindWithFilters",
		"limit":     limit,
		"offset":    offset,
	})

	qb := applyImageFilters(filters)
	whereClause, args := qb.build()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM satellite_images %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count catalog images", err, nil)
		return nil, fmt.Errorf("%w: failed to count catalog images", domain.ErrStoreUnavailable)
	}

	// Если ничего не найдено, нет смысла делать второй запрос
	if totalCount == 0 {
		return &domain.ImagePage{Images: []domain.CatalogImage{}, TotalCount: 0}, nil
	}

	limitPh, offsetPh := qb.nextPlaceholders()
	// catalog_id ASC - стабильный порядок: страницы не дрожат
	// даже при одинаковых created_at
	dataQuery := fmt.Sprintf(`
		SELECT catalog_id, ST_AsGeoJSON(coverage_area), created_at
		FROM satellite_images
		%s
		ORDER BY catalog_id ASC
		LIMIT $%d OFFSET $%d`, whereClause, limitPh, offsetPh)

	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to fetch catalog page", err, nil)
		return nil, fmt.Errorf("%w: failed to fetch catalog page", domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	images := make([]domain.CatalogImage, 0, limit)
	for rows.Next() {
		var img domain.CatalogImage
		var geometry string
		if err := rows.Scan(&img.CatalogID, &geometry, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan catalog image", domain.ErrStoreUnavailable)
		}
		img.Geometry = []byte(geometry)
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog rows", domain.ErrStoreUnavailable)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction", domain.ErrStoreUnavailable)
	}

	repoLogger.Debug("Catalog page fetched", port.Fields{
		"total_count": totalCount,
		"count":       len(images),
	})

	return &domain.ImagePage{
		Images:     images,
		TotalCount: int(totalCount),
	}, nil
}

// GetByID возвращает один снимок по точному catalog_id.
func (a *ImageStorageAdapter) GetByID(ctx context.Context, catalogID string) (*domain.CatalogImage, error) {
	query := `
		SELECT catalog_id, ST_AsGeoJSON(coverage_area), created_at
		FROM satellite_images
		WHERE catalog_id = $1`

	var img domain.CatalogImage
	var geometry string
	err := a.pool.QueryRow(ctx, query, catalogID).Scan(&img.CatalogID, &geometry, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("%w: failed to get catalog image", domain.ErrStoreUnavailable)
	}
	img.Geometry = []byte(geometry)

	return &img, nil
}
