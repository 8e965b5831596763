package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	logger_adapter "imagery-service/internal/adapters/logger"
	"imagery-service/internal/configs"
	"imagery-service/internal/core/domain"
	"imagery-service/internal/core/port"
	"imagery-service/pkg/postgres"

	"github.com/google/uuid"
)

// importFeature - одна запись каталога из входного файла.
// Геометрию держим сырой: её разбором и валидацией занимается domain.
type importFeature struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties struct {
		CatalogID string `json:"catalogId"`
		CreatedAt string `json:"createdAt"`
	} `json:"properties"`
}

// catalogID выбирает идентификатор снимка: свойство catalogId, затем id
// фичи, в крайнем случае - новый uuid
func (f importFeature) catalogID() string {
	if f.Properties.CatalogID != "" {
		return f.Properties.CatalogID
	}
	if f.ID != "" {
		return f.ID
	}
	return uuid.NewString()
}

type importFile struct {
	Type     string          `json:"type"`
	Features []importFeature `json:"features"`
}

func main() {
	inputPath := flag.String("input", "", "path to a GeoJSON FeatureCollection with catalog images")
	envPath := flag.String("env", "", "optional path to a .env file")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("usage: catalog-import -input <file.geojson> [-env <path>]")
	}

	var cfg *configs.AppConfig
	var err error
	if *envPath != "" {
		cfg, err = configs.LoadConfig(*envPath)
	} else {
		cfg, err = configs.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    slog.LevelInfo,
		IsJSON:   false,
		UseColor: true,
	}).WithFields(port.Fields{"component": "catalog-import"})

	if err := run(cfg, logger, *inputPath); err != nil {
		logger.Error("Import failed", err, nil)
		os.Exit(1)
	}
}

func run(cfg *configs.AppConfig, logger port.LoggerPort, inputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var file importFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if file.Type != "FeatureCollection" {
		return fmt.Errorf("expected a FeatureCollection, got %q", file.Type)
	}

	ctx := context.Background()
	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Connected to PostgreSQL, starting import", port.Fields{"features": len(file.Features)})

	inserted, skipped, rejected := 0, 0, 0
	for i, feature := range file.Features {
		catalogID := feature.catalogID()
		featureLogger := logger.WithFields(port.Fields{"feature_index": i, "catalog_id": catalogID})

		// Пропускаем геометрию через ту же валидацию, что и поисковый AOI
		area, err := domain.ParseAreaFilter(string(feature.Geometry))
		if err != nil {
			featureLogger.Warn("Skipping feature with invalid geometry", port.Fields{"reason": err.Error()})
			rejected++
			continue
		}

		createdAt := time.Now().UTC()
		if feature.Properties.CreatedAt != "" {
			parsed, err := domain.ParseDateBound("created_at", feature.Properties.CreatedAt)
			if err != nil {
				featureLogger.Warn("Skipping feature with invalid created_at", port.Fields{"reason": err.Error()})
				rejected++
				continue
			}
			createdAt = *parsed
		}

		tag, err := dbPool.Exec(ctx, `
			INSERT INTO satellite_images (catalog_id, coverage_area, created_at)
			VALUES ($1, ST_SetSRID(ST_GeomFromGeoJSON($2), 4326), $3)
			ON CONFLICT (catalog_id) DO NOTHING`,
			catalogID, string(area.GeoJSON), createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert image %q: %w", catalogID, err)
		}

		if tag.RowsAffected() == 0 {
			featureLogger.Debug("Image already present, skipped", nil)
			skipped++
			continue
		}

		featureLogger.Info("Image imported", port.Fields{"aoi_geohash": area.CenterGeohash()})
		inserted++
	}

	logger.Info("Import finished", port.Fields{
		"inserted": inserted,
		"skipped":  skipped,
		"rejected": rejected,
	})
	return nil
}
