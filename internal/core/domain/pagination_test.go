package domain

import (
	"errors"
	"testing"
)

func TestNormalizePagination(t *testing.T) {
	t.Parallel()

	t.Run("empty values fall back to defaults", func(t *testing.T) {
		p, err := NormalizePagination("", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Page != DefaultPage || p.Limit != DefaultLimit {
			t.Fatalf("expected defaults %d/%d, got %d/%d", DefaultPage, DefaultLimit, p.Page, p.Limit)
		}
		if p.Offset != 0 {
			t.Fatalf("expected offset 0, got %d", p.Offset)
		}
	})

	t.Run("explicit values produce offset", func(t *testing.T) {
		p, err := NormalizePagination("3", "10")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Page != 3 || p.Limit != 10 || p.Offset != 20 {
			t.Fatalf("expected 3/10/20, got %d/%d/%d", p.Page, p.Limit, p.Offset)
		}
	})

	t.Run("rejects non-integer page", func(t *testing.T) {
		_, err := NormalizePagination("abc", "")
		if !errors.Is(err, ErrInvalidPagination) {
			t.Fatalf("expected ErrInvalidPagination, got %v", err)
		}
	})

	t.Run("rejects zero and negative values", func(t *testing.T) {
		for _, args := range [][2]string{{"0", ""}, {"-1", ""}, {"", "0"}, {"", "-5"}} {
			_, err := NormalizePagination(args[0], args[1])
			if !errors.Is(err, ErrInvalidPagination) {
				t.Fatalf("page=%q limit=%q: expected ErrInvalidPagination, got %v", args[0], args[1], err)
			}
		}
	})

	t.Run("rejects fractional limit", func(t *testing.T) {
		_, err := NormalizePagination("", "2.5")
		if !errors.Is(err, ErrInvalidPagination) {
			t.Fatalf("expected ErrInvalidPagination, got %v", err)
		}
	})
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		total  int
		limit  int
		expect int
	}{
		{"empty result still has one page", 0, 5, 1},
		{"exact division", 10, 5, 2},
		{"remainder adds a page", 11, 5, 3},
		{"single item", 1, 5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.total, tc.limit); got != tc.expect {
				t.Fatalf("TotalPages(%d, %d) = %d, expected %d", tc.total, tc.limit, got, tc.expect)
			}
		})
	}
}
