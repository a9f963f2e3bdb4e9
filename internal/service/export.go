package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
)

// колонки выгрузки; выгруженный CSV можно загрузить обратно
var exportColumns = append(append([]string{}, validation.RequiredFields...),
	"remote_id", "member_id", "agent_name", "accuracies", "created_at", "updated_at")

// exportProperties - свойства участка в выгрузке GeoJSON вместе с результатом анализа
type exportProperties struct {
	ID uuid.UUID `json:"id"`
	models.Properties
	PolygonType models.GeometryType    `json:"polygon_type"`
	Analysis    *models.AnalysisResult `json:"analysis"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type exportFeature struct {
	Type       string           `json:"type"`
	Geometry   models.Geometry  `json:"geometry"`
	Properties exportProperties `json:"properties"`
}

type exportCollection struct {
	Type     string          `json:"type"`
	Features []exportFeature `json:"features"`
}

func writeCSV(w io.Writer, farms []*models.FarmRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("service: could not write csv header: %w", err)
	}
	for _, farm := range farms {
		row, err := csvRow(farm)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("service: could not write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(farm *models.FarmRecord) ([]string, error) {
	polygon := "[]"
	if farm.HasPolygon() {
		raw, err := json.Marshal(farm.Polygon)
		if err != nil {
			return nil, fmt.Errorf("service: could not encode polygon of farm %s: %w", farm.ID, err)
		}
		polygon = string(raw)
	}
	accuracies := ""
	if len(farm.Accuracies) > 0 {
		raw, err := json.Marshal(farm.Accuracies)
		if err != nil {
			return nil, fmt.Errorf("service: could not encode accuracies of farm %s: %w", farm.ID, err)
		}
		accuracies = string(raw)
	}

	values := map[string]string{
		"farmer_name":     farm.FarmerName,
		"farm_size":       formatFloat(farm.FarmSize),
		"collection_site": farm.CollectionSite,
		"farm_district":   farm.FarmDistrict,
		"farm_village":    farm.FarmVillage,
		"latitude":        formatFloat(farm.Latitude),
		"longitude":       formatFloat(farm.Longitude),
		"polygon":         polygon,
		"commodity":       farm.Commodity,
		"remote_id":       deref(farm.RemoteID),
		"member_id":       deref(farm.MemberID),
		"agent_name":      deref(farm.AgentName),
		"accuracies":      accuracies,
		"created_at":      farm.CreatedAt.Format(time.RFC3339),
		"updated_at":      farm.UpdatedAt.Format(time.RFC3339),
	}
	row := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		row[i] = values[col]
	}
	return row, nil
}

func writeGeoJSON(w io.Writer, farms []*models.FarmRecord) error {
	out := exportCollection{Type: "FeatureCollection", Features: make([]exportFeature, len(farms))}
	for i, farm := range farms {
		feature := geometry.RecordToFeature(farm)
		out.Features[i] = exportFeature{
			Type:     "Feature",
			Geometry: feature.Geometry,
			Properties: exportProperties{
				ID:          farm.ID,
				Properties:  feature.Properties,
				PolygonType: farm.PolygonType,
				Analysis:    farm.Analysis,
				CreatedAt:   farm.CreatedAt,
				UpdatedAt:   farm.UpdatedAt,
			},
		}
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("service: could not encode geojson export: %w", err)
	}
	return nil
}

func writeGeoJSONTemplate(w io.Writer) error {
	size, lat, lon := 4.5, -1.9, 30.1
	fc := models.NewFeatureCollection(false)
	fc.Features = append(fc.Features, models.Feature{
		Type: "Feature",
		Geometry: models.Geometry{
			Type:    models.GeometryPolygon,
			Polygon: [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}, {30.0, -1.9}}},
		},
		Properties: models.Properties{
			FarmerName:     "Farmer name",
			FarmSize:       &size,
			CollectionSite: "Collection site",
			FarmVillage:    "Village",
			FarmDistrict:   "District",
			Latitude:       &lat,
			Longitude:      &lon,
			Commodity:      "Coffee",
		},
	})
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("service: could not encode geojson template: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
