package domain

import (
	"fmt"
	"time"
)

// Принимаем RFC 3339 и короткую дату. Остальное - ошибка клиента,
// а не "Invalid Date" где-то в глубине запроса.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDateBound разбирает необязательную границу диапазона дат.
// Пустая строка означает отсутствие границы.
func ParseDateBound(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q is not a valid date (want RFC 3339 or YYYY-MM-DD)", ErrInvalidInput, name, raw)
}
