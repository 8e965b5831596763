package postgres

import (
	"fmt"
	"strings"
	"time"

	"imagery-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// queryBuilder собирает WHERE-часть запроса из опциональных предикатов.
// Один и тот же экземпляр отдает условия и для COUNT, и для выборки
// страницы - так оба запроса физически не могут разойтись по фильтрам.
type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddTimeRange добавляет границы по временному полю (обе опциональны)
func (qb *queryBuilder) AddTimeRange(fieldName string, from, to *time.Time) {
	if from != nil {
		qb.addCondition("%s >= $%d", fieldName, *from)
	}
	if to != nil {
		qb.addCondition("%s <= $%d", fieldName, *to)
	}
}

// AddDecimalRange сравнивает текстовую decimal-колонку через ::numeric,
// чтобы сравнение было числовым, а хранение - точным
func (qb *queryBuilder) AddDecimalRange(fieldName string, min, max *decimal.Decimal) {
	if min != nil {
		qb.addCondition("%s::numeric >= $%d::numeric", fieldName, min.String())
	}
	if max != nil {
		qb.addCondition("%s::numeric <= $%d::numeric", fieldName, max.String())
	}
}

// AddIntersects добавляет пространственный предикат пересечения с AOI.
// Геометрия аргумента приводится к SRID 4326, тому же, в котором
// хранится coverage_area
func (qb *queryBuilder) AddIntersects(fieldName string, geoJSON []byte) {
	qb.addCondition("ST_Intersects(%s, ST_SetSRID(ST_GeomFromGeoJSON($%d), 4326))", fieldName, string(geoJSON))
}

// build создает финальную WHERE-часть запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// nextPlaceholders отдает номера плейсхолдеров под LIMIT/OFFSET,
// идущие следом за аргументами фильтров
func (qb *queryBuilder) nextPlaceholders() (int, int) {
	return qb.argId, qb.argId + 1
}

// applyImageFilters разбирает фильтры поиска снимков и строит запрос
func applyImageFilters(filters domain.ImageSearchFilters) *queryBuilder {
	qb := newQueryBuilder()

	qb.AddTimeRange("created_at", filters.StartDate, filters.EndDate)

	if filters.Area != nil {
		qb.AddIntersects("coverage_area", filters.Area.GeoJSON)
	}

	return qb
}

// applyOrderFilters разбирает фильтры списка заказов
func applyOrderFilters(filters domain.OrderListFilters) *queryBuilder {
	qb := newQueryBuilder()

	qb.AddDecimalRange("price", filters.MinPrice, filters.MaxPrice)
	qb.AddTimeRange("created_at", filters.StartDate, filters.EndDate)

	return qb
}
