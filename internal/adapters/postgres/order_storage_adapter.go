package postgres

import (
	"context"
	"errors"
	"fmt"

	"imagery-service/internal/contextkeys"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Код PostgreSQL для нарушения внешнего ключа
const pgForeignKeyViolation = "23503"

// OrderStorageAdapter реализует OrderStoragePort для PostgreSQL.
type OrderStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewOrderStorageAdapter(pool *pgxpool.Pool) (*OrderStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OrderStorageAdapter{pool: pool}, nil
}

// FindWithFilters отдает страницу заказов. Как и в каталоге, COUNT и выборка
// идут в одной транзакции под одним набором предикатов.
func (a *OrderStorageAdapter) FindWithFilters(ctx context.Context, filters domain.OrderListFilters, limit, offset int) (*domain.OrderPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "OrderStorageAdapter",
		"method":    "FindWithFilters",
		"limit":     limit,
		"offset":    offset,
	})

	qb := applyOrderFilters(filters)
	whereClause, args := qb.build()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count orders", err, nil)
		return nil, fmt.Errorf("%w: failed to count orders", domain.ErrStoreUnavailable)
	}

	if totalCount == 0 {
		return &domain.OrderPage{Orders: []domain.Order{}, TotalCount: 0}, nil
	}

	limitPh, offsetPh := qb.nextPlaceholders()
	// Свежие заказы первыми; id как вторичный ключ, чтобы страницы
	// оставались стабильными при совпадающих created_at
	dataQuery := fmt.Sprintf(`
		SELECT id, image_id, price, created_at
		FROM orders
		%s
		ORDER BY created_at DESC, id ASC
		LIMIT $%d OFFSET $%d`, whereClause, limitPh, offsetPh)

	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to fetch orders page", err, nil)
		return nil, fmt.Errorf("%w: failed to fetch orders page", domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	for rows.Next() {
		var ord domain.Order
		var price string
		if err := rows.Scan(&ord.ID, &ord.ImageID, &price, &ord.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan order", domain.ErrStoreUnavailable)
		}
		ord.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: stored price %q is not a decimal", domain.ErrStoreUnavailable, price)
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read order rows", domain.ErrStoreUnavailable)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction", domain.ErrStoreUnavailable)
	}

	return &domain.OrderPage{
		Orders:     orders,
		TotalCount: int(totalCount),
	}, nil
}

// Insert сохраняет новый заказ. Нарушение внешнего ключа image_id -> каталог
// транслируется в ErrImageNotFound: ограничение БД закрывает гонку между
// проверкой существования снимка и вставкой.
func (a *OrderStorageAdapter) Insert(ctx context.Context, order domain.Order) error {
	logger := contextkeys.LoggerFromContext(ctx)

	query := `
		INSERT INTO orders (id, image_id, price, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := a.pool.Exec(ctx, query, order.ID, order.ImageID, order.Price.String(), order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrImageNotFound
		}
		logger.Error("Failed to insert order", err, port.Fields{
			"component": "OrderStorageAdapter",
			"order_id":  order.ID.String(),
		})
		return fmt.Errorf("%w: failed to insert order", domain.ErrStoreUnavailable)
	}

	return nil
}
