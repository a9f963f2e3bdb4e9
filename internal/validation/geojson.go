package validation

import (
	"encoding/json"
	"fmt"

	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

type propKind int

const (
	kindString propKind = iota
	kindNumber
)

// обязательные свойства участка GeoJSON и их типы
var requiredProperties = []struct {
	name string
	kind propKind
}{
	{"farmer_name", kindString},
	{"collection_site", kindString},
	{"farm_village", kindString},
	{"farm_district", kindString},
	{"farm_size", kindNumber},
	{"latitude", kindNumber},
	{"longitude", kindNumber},
	{"commodity", kindString},
}

// Validate выбирает правила проверки по формату запроса
func Validate(req models.IngestRequest) Errors {
	switch req.Format {
	case models.FormatCSV:
		return ValidateCSV(req.Rows)
	case models.FormatGeoJSON:
		return ValidateGeoJSON(req.GeoJSON)
	default:
		return Errors{batchError(fmt.Sprintf("Unsupported format %q. Must be csv or geojson", req.Format))}
	}
}

// ValidateFeatureCollection проверяет уже построенную коллекцию (синхронизация устройств)
func ValidateFeatureCollection(fc models.FeatureCollection) Errors {
	data, err := json.Marshal(fc)
	if err != nil {
		return Errors{batchError(fmt.Sprintf("Invalid GeoJSON. %v", err))}
	}
	return ValidateGeoJSON(data)
}

// ValidateGeoJSON проверяет FeatureCollection. Проверка идет ярусами:
// ошибка верхнего яруса отменяет проверки более глубоких.
func ValidateGeoJSON(data []byte) Errors {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Errors{batchError("Invalid GeoJSON. Must be a valid JSON document")}
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return Errors{batchError("Invalid GeoJSON. Must be a dictionary")}
	}

	var errs Errors
	if doc["type"] != "FeatureCollection" {
		errs = append(errs, batchError("Invalid GeoJSON type. Must be FeatureCollection"))
	}
	features, ok := doc["features"].([]any)
	if !ok {
		errs = append(errs, batchError("Invalid GeoJSON features. Must be a list"))
	}
	if len(errs) > 0 {
		return errs
	}
	if len(features) == 0 {
		return Errors{batchError("GeoJSON has no features.")}
	}

	for i, f := range features {
		errs = append(errs, validateFeature(i, f)...)
	}
	return errs
}

func validateFeature(index int, raw any) Errors {
	feature, ok := raw.(map[string]any)
	if !ok || feature["type"] != "Feature" {
		return Errors{featureError(index, "type", "Invalid GeoJSON feature. Must be Feature")}
	}
	props, ok := feature["properties"].(map[string]any)
	if !ok {
		return Errors{featureError(index, "properties", "Invalid GeoJSON properties. Must be a dictionary")}
	}

	var errs Errors
	for _, p := range requiredProperties {
		valid := false
		switch p.kind {
		case kindString:
			_, valid = props[p.name].(string)
		case kindNumber:
			_, valid = props[p.name].(float64)
		}
		if !valid {
			errs = append(errs, featureError(index, p.name,
				fmt.Sprintf("Invalid GeoJSON properties. Missing or invalid %q", p.name)))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	farmSize := props["farm_size"].(float64)

	geometry, ok := feature["geometry"].(map[string]any)
	if !ok {
		return Errors{featureError(index, "geometry", "Invalid GeoJSON geometry. Must be a dictionary")}
	}
	coordinates := geometry["coordinates"]

	var reason string
	switch geometry["type"] {
	case string(models.GeometryPoint):
		reason = checkPoint(coordinates, farmSize)
	case string(models.GeometryPolygon):
		reason = checkPolygon(coordinates)
	case string(models.GeometryMultiPolygon):
		reason = checkMultiPolygon(coordinates)
	default:
		reason = "Invalid GeoJSON geometry type. Must be Point, Polygon or MultiPolygon"
	}
	if reason != "" {
		return Errors{featureError(index, "geometry", reason)}
	}
	return nil
}

func checkPoint(coordinates any, farmSize float64) string {
	pair, ok := coordinates.([]any)
	if !ok || len(pair) != 2 {
		return "Invalid GeoJSON coordinates. Must be a list of 2 numbers"
	}
	if !allNumbers(pair) {
		return "Invalid GeoJSON coordinates. Must be a list of numbers"
	}
	if farmSize >= PolygonRequiredHectares {
		return fmt.Sprintf("Invalid GeoJSON geometry. Farms of %g hectares or more must be a Polygon", PolygonRequiredHectares)
	}
	return ""
}

func checkPolygon(coordinates any) string {
	rings, ok := coordinates.([]any)
	if !ok || len(rings) < 1 {
		return "Invalid GeoJSON coordinates. Must be a list of lists"
	}
	outer, ok := rings[0].([]any)
	if !ok || len(outer) < 4 {
		return "Invalid GeoJSON coordinates. Must be a list of lists with at least 4 coordinates"
	}
	for _, c := range outer {
		pair, ok := c.([]any)
		if !ok || len(pair) != 2 {
			return "Invalid GeoJSON coordinates. Must be a list of lists with 2 coordinates"
		}
		if !allNumbers(pair) {
			return "Invalid GeoJSON coordinates. Must be a list of lists with numbers"
		}
	}
	return ""
}

func checkMultiPolygon(coordinates any) string {
	polygons, ok := coordinates.([]any)
	if !ok || len(polygons) < 1 {
		return "Invalid GeoJSON coordinates. Must be a list of polygons"
	}
	for i, p := range polygons {
		if reason := checkPolygon(p); reason != "" {
			return fmt.Sprintf("Polygon %d: %s", i, reason)
		}
	}
	return ""
}

func allNumbers(values []any) bool {
	for _, v := range values {
		if _, ok := v.(float64); !ok {
			return false
		}
	}
	return true
}
