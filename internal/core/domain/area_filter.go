package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// AreaFilter - провалидированный полигон области интереса (AOI).
// Семантика предиката: "покрытие снимка пересекает этот полигон",
// вычисляется хранилищем в той же системе координат (SRID 4326).
type AreaFilter struct {
	// GeoJSON - нормализованная геометрия, готовая для ST_GeomFromGeoJSON
	GeoJSON []byte

	polygon *geom.Polygon
}

// crsProbe - для проверки нестандартного члена "crs". Сам GeoJSON (RFC 7946)
// его запретил, но старые клиенты всё еще присылают.
type crsProbe struct {
	CRS *struct {
		Type       string          `json:"type"`
		Properties json.RawMessage `json:"properties"`
	} `json:"crs"`
}

// Имена CRS, которые считаем эквивалентом WGS84. Все остальные отклоняем:
// перепроецировать молча - значит тихо искажать запрос пользователя.
var acceptedCRSNames = map[string]struct{}{
	"urn:ogc:def:crs:OGC:1.3:CRS84": {},
	"urn:ogc:def:crs:EPSG::4326":    {},
	"EPSG:4326":                     {},
	"CRS84":                         {},
}

// ParseAreaFilter разбирает пользовательский AOI-полигон из строки GeoJSON.
// Любая синтаксическая или структурная проблема - это ошибка клиента
// (ErrInvalidGeometry), а не сбой сервиса.
func ParseAreaFilter(raw string) (*AreaFilter, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty area", ErrInvalidGeometry)
	}

	var probe crsProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if probe.CRS != nil {
		if err := checkCRS(probe.CRS.Properties); err != nil {
			return nil, err
		}
	}

	var g geom.T
	if err := geojson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	polygon, ok := g.(*geom.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: expected a Polygon, got %T", ErrInvalidGeometry, g)
	}
	if err := validateRings(polygon); err != nil {
		return nil, err
	}

	// Перемаршаливаем, чтобы в хранилище ушла чистая геометрия
	// без посторонних членов вроде "crs"
	normalized, err := geojson.Marshal(polygon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	return &AreaFilter{GeoJSON: normalized, polygon: polygon}, nil
}

func checkCRS(properties json.RawMessage) error {
	var props struct {
		Name string `json:"name"`
	}
	if len(properties) > 0 {
		if err := json.Unmarshal(properties, &props); err != nil {
			return fmt.Errorf("%w: malformed crs member", ErrInvalidGeometry)
		}
	}
	if _, ok := acceptedCRSNames[props.Name]; !ok {
		return fmt.Errorf("%w: unsupported CRS %q, only WGS84 (EPSG:4326) is accepted", ErrInvalidGeometry, props.Name)
	}
	return nil
}

func validateRings(polygon *geom.Polygon) error {
	if polygon.NumLinearRings() == 0 {
		return fmt.Errorf("%w: polygon has no rings", ErrInvalidGeometry)
	}
	for i := 0; i < polygon.NumLinearRings(); i++ {
		ring := polygon.LinearRing(i)
		n := ring.NumCoords()
		if n < 4 {
			return fmt.Errorf("%w: ring %d has %d positions, need at least 4", ErrInvalidGeometry, i, n)
		}
		first, last := ring.Coord(0), ring.Coord(n-1)
		if first[0] != last[0] || first[1] != last[1] {
			return fmt.Errorf("%w: ring %d is not closed", ErrInvalidGeometry, i)
		}
		for j := 0; j < n; j++ {
			c := ring.Coord(j)
			if c[0] < -180 || c[0] > 180 || c[1] < -90 || c[1] > 90 {
				return fmt.Errorf("%w: position %d of ring %d is outside WGS84 bounds", ErrInvalidGeometry, j, i)
			}
		}
	}
	return nil
}

// CenterGeohash возвращает geohash центра bounding box полигона.
// Используется только как метка в логах, в запросы не попадает.
func (f *AreaFilter) CenterGeohash() string {
	bounds := f.polygon.Bounds()
	lng := (bounds.Min(0) + bounds.Max(0)) / 2
	lat := (bounds.Min(1) + bounds.Max(1)) / 2
	return geohash.EncodeWithPrecision(lat, lng, 6)
}
