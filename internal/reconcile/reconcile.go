package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

// DefaultCommodity - культура участка, если она не указана
const DefaultCommodity = "Coffee"

// CommodityRiskKeys - поле провайдера, задающее уровень риска для культуры
var CommodityRiskKeys = map[string]string{
	"Coffee":    "risk_pcrop",
	"Cocoa":     "risk_pcrop",
	"Rubber":    "risk_acrop",
	"Oil palm":  "risk_acrop",
	"Soy":       "risk_acrop",
	"Livestock": "risk_livestock",
	"Timber":    "risk_timber",
}

// Reconcile строит записи участков из коллекции и ответов провайдера.
// records[i] должен соответствовать fc.Features[i]; порядок результата совпадает с порядком участков.
func Reconcile(fc models.FeatureCollection, records []models.AnalysisRecord, fileID uuid.UUID) ([]*models.FarmRecord, error) {
	if len(records) != len(fc.Features) {
		return nil, fmt.Errorf("reconcile: %d features but %d analysis records", len(fc.Features), len(records))
	}
	out := make([]*models.FarmRecord, len(fc.Features))
	for i, feature := range fc.Features {
		out[i] = Record(feature, records[i], fileID)
	}
	return out, nil
}

// Record собирает одну запись участка
func Record(feature models.Feature, analysis models.AnalysisRecord, fileID uuid.UUID) *models.FarmRecord {
	props := feature.Properties
	commodity := strings.TrimSpace(props.Commodity)
	if commodity == "" {
		commodity = DefaultCommodity
	}

	rec := &models.FarmRecord{
		FileID:         fileID,
		RemoteID:       optional(props.RemoteID),
		FarmerName:     props.FarmerName,
		FarmSize:       farmSize(props, analysis),
		CollectionSite: props.CollectionSite,
		AgentName:      optional(props.AgentName),
		MemberID:       optional(props.MemberID),
		FarmVillage:    props.FarmVillage,
		FarmDistrict:   props.FarmDistrict,
		Commodity:      commodity,
		PolygonType:    feature.Geometry.Type,
		Accuracies:     props.Accuracies,
		Geoid:          optional(props.Geoid),
		Analysis:       Analysis(analysis, commodity),
	}
	if rec.FarmDistrict == "" {
		rec.FarmDistrict = string(analysis.AdminLevel1)
	}
	if rec.Geoid == nil {
		rec.Geoid = optional(string(analysis.GeoID))
	}

	switch feature.Geometry.Type {
	case models.GeometryPoint:
		if len(feature.Geometry.Point) >= 2 {
			rec.Longitude, rec.Latitude = feature.Geometry.Point[0], feature.Geometry.Point[1]
		}
		rec.Polygon = [][][]float64{}
	case models.GeometryMultiPolygon:
		rec.Polygon = geometry.FlattenMultiPolygon(feature.Geometry.MultiPolygon)
		rec.Latitude, rec.Longitude = centroid(props, analysis)
	default:
		rec.Polygon = feature.Geometry.Polygon
		rec.Latitude, rec.Longitude = centroid(props, analysis)
	}
	return rec
}

// Analysis переводит поля провайдера в нормализованный результат.
// Отсутствующие числовые индикаторы дают 0, отсутствующие булевы - false.
func Analysis(r models.AnalysisRecord, commodity string) *models.AnalysisResult {
	tmfDef := r.TMFDefAfter2020.Or(0)
	tmfDeg := r.TMFDegAfter2020.Or(0)

	result := &models.AnalysisResult{
		IsInProtectedAreas:        r.InProtectedArea(),
		IsInWaterBody:             r.InWaterbody.True(),
		ForestChangeLossAfter2020: r.GFCLossAfter2020.Or(0) + tmfDef + tmfDeg,
		FireAfter2020:             firstNonZero(r.MODISFireAfter2020, r.ESAFireAfter2020),
		RaddAfter2020:             r.RADDAfter2020.Or(0),
		TMFDeforestationAfter2020: tmfDef,
		TMFDegradationAfter2020:   tmfDeg,
		TreeCoverLoss:             firstNonZero(r.GFCLossBefore2020, r.TMFDefBefore2020),
		Commodities:               r.Commodities.True(),
		DisturbanceBefore2020:     r.DisturbanceBefore2020.True(),
		DisturbanceAfter2020:      r.DisturbanceAfter2020.True(),
		EUDRRiskLevel:             RiskLevel(r, commodity),
	}

	switch {
	case r.TMFDisturbed.Valid:
		result.TMFDisturbed = r.TMFDisturbed.Value
	case r.TMFUndisturbed.Valid:
		result.TMFDisturbed = !r.TMFUndisturbed.Value
	default:
		result.TMFDisturbed = tmfDef > 0 || tmfDeg > 0
	}
	return result
}

// RiskLevel выбирает уровень риска по культуре. Нет поля или значение вне перечисления - nil.
func RiskLevel(r models.AnalysisRecord, commodity string) *models.RiskLevel {
	if commodity == "" {
		commodity = DefaultCommodity
	}
	field, ok := CommodityRiskKeys[commodity]
	if !ok {
		return nil
	}
	raw := strings.ToLower(strings.TrimSpace(string(r.Risk(field))))
	level, ok := models.ParseRiskLevel(raw)
	if !ok {
		return nil
	}
	return &level
}

func farmSize(props models.Properties, r models.AnalysisRecord) float64 {
	if props.FarmSize != nil {
		return *props.FarmSize
	}
	if r.PlotAreaHa.Valid {
		return r.PlotAreaHa.Value
	}
	return r.Area.Or(0)
}

func centroid(props models.Properties, r models.AnalysisRecord) (lat, lon float64) {
	if r.CentroidLat.Valid {
		lat = r.CentroidLat.Value
	} else if props.Latitude != nil {
		lat = *props.Latitude
	}
	if r.CentroidLon.Valid {
		lon = r.CentroidLon.Value
	} else if props.Longitude != nil {
		lon = *props.Longitude
	}
	return lat, lon
}

func firstNonZero(measures ...models.Measure) float64 {
	for _, m := range measures {
		if m.Valid && m.Value != 0 {
			return m.Value
		}
	}
	return 0
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
