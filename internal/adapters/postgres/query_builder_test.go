package postgres

import (
	"strings"
	"testing"
	"time"

	"imagery-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

func TestQueryBuilder(t *testing.T) {
	t.Parallel()

	t.Run("no filters produce empty where clause", func(t *testing.T) {
		qb := newQueryBuilder()
		where, args := qb.build()
		if where != "" {
			t.Fatalf("expected empty where clause, got %q", where)
		}
		if len(args) != 0 {
			t.Fatalf("expected no args, got %v", args)
		}
	})

	t.Run("time range renders both bounds in order", func(t *testing.T) {
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

		qb := newQueryBuilder()
		qb.AddTimeRange("created_at", &from, &to)
		where, args := qb.build()

		expected := "WHERE created_at >= $1 AND created_at <= $2"
		if where != expected {
			t.Fatalf("expected %q, got %q", expected, where)
		}
		if len(args) != 2 || args[0] != from || args[1] != to {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("decimal range compares through numeric cast", func(t *testing.T) {
		min := decimal.RequireFromString("100.50")
		qb := newQueryBuilder()
		qb.AddDecimalRange("price", &min, nil)
		where, args := qb.build()

		if where != "WHERE price::numeric >= $1::numeric" {
			t.Fatalf("unexpected where clause: %q", where)
		}
		if len(args) != 1 || args[0] != "100.5" {
			t.Fatalf("expected the decimal as string, got %v", args)
		}
	})

	t.Run("intersects binds geometry with SRID 4326", func(t *testing.T) {
		qb := newQueryBuilder()
		qb.AddIntersects("coverage_area", []byte(`{"type":"Polygon"}`))
		where, args := qb.build()

		if !strings.Contains(where, "ST_Intersects(coverage_area, ST_SetSRID(ST_GeomFromGeoJSON($1), 4326))") {
			t.Fatalf("unexpected where clause: %q", where)
		}
		if len(args) != 1 || args[0] != `{"type":"Polygon"}` {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("placeholders continue after filter args", func(t *testing.T) {
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		qb := newQueryBuilder()
		qb.AddTimeRange("created_at", &from, nil)

		limitPh, offsetPh := qb.nextPlaceholders()
		if limitPh != 2 || offsetPh != 3 {
			t.Fatalf("expected placeholders 2 and 3, got %d and %d", limitPh, offsetPh)
		}
	})
}

func TestApplyImageFilters(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	area, err := domain.ParseAreaFilter(`{
		"type": "Polygon",
		"coordinates": [[
			[11.559, 48.155],
			[11.558, 48.152],
			[11.562, 48.152],
			[11.559, 48.155]
		]]
	}`)
	if err != nil {
		t.Fatalf("parse area: %v", err)
	}

	qb := applyImageFilters(domain.ImageSearchFilters{StartDate: &start, Area: area})
	where, args := qb.build()

	if !strings.HasPrefix(where, "WHERE created_at >= $1 AND ST_Intersects(coverage_area") {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestApplyOrderFilters(t *testing.T) {
	t.Parallel()

	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("20")
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	qb := applyOrderFilters(domain.OrderListFilters{MinPrice: &min, MaxPrice: &max, StartDate: &start})
	where, args := qb.build()

	expected := "WHERE price::numeric >= $1::numeric AND price::numeric <= $2::numeric AND created_at >= $3"
	if where != expected {
		t.Fatalf("expected %q, got %q", expected, where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}
