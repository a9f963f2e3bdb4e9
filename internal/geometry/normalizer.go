package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

// ErrMalformedGeometry - литерал полигона не удалось разобрать
var ErrMalformedGeometry = errors.New("malformed geometry")

// RecordError - ошибка нормализации конкретной строки CSV (нумерация с 1)
type RecordError struct {
	Record int
	Field  string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("Record %d: %q %v", e.Record, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Header нормализует заголовок CSV: обрезает пробелы и BOM первой колонки
func Header(row []string) []string {
	header := make([]string, len(row))
	for i, h := range row {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}

// ZipRow сопоставляет значения строки с колонками заголовка
func ZipRow(header, row []string) map[string]string {
	record := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			record[name] = strings.TrimSpace(row[i])
		} else {
			record[name] = ""
		}
	}
	return record
}

// IsBlankRow - пустая строка (обычно завершающий перевод строки в файле)
func IsBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// IsEmptyPolygonLiteral - пустая строка или "[]" означают отсутствие контура
func IsEmptyPolygonLiteral(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "[]"
}

// ParsePolygonLiteral разбирает литерал вида [[lon,lat],...] в один внешний контур.
// Литерал, уже содержащий список контуров [[[lon,lat],...]], принимается как есть.
func ParsePolygonLiteral(s string) ([][][]float64, error) {
	if IsEmptyPolygonLiteral(s) {
		return nil, nil
	}
	literal := strings.NewReplacer("(", "[", ")", "]").Replace(strings.TrimSpace(s))

	var ring [][]float64
	if err := json.Unmarshal([]byte(literal), &ring); err == nil {
		return [][][]float64{ring}, nil
	}
	var rings [][][]float64
	if err := json.Unmarshal([]byte(literal), &rings); err == nil {
		return rings, nil
	}
	return nil, fmt.Errorf("%w: %q is not a list of coordinate pairs", ErrMalformedGeometry, s)
}

// ParseNumber разбирает числовую ячейку CSV; пустая ячейка дает значение по умолчанию
func ParseNumber(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// NormalizeCSV превращает строки CSV в FeatureCollection.
// Ошибки разбора отдельных строк собираются и не прерывают обработку.
func NormalizeCSV(rows [][]string) (models.FeatureCollection, []error) {
	fc := models.NewFeatureCollection(false)
	if len(rows) == 0 {
		return fc, nil
	}
	header := Header(rows[0])

	var errs []error
	for i, row := range rows[1:] {
		recordNo := i + 1
		if IsBlankRow(row) {
			continue
		}
		record := ZipRow(header, row)
		if _, ok := record["latitude"]; !ok {
			continue
		}
		if _, ok := record["longitude"]; !ok {
			continue
		}

		feature, err := featureFromCSV(recordNo, record)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc, errs
}

func featureFromCSV(recordNo int, record map[string]string) (models.Feature, error) {
	lat, err := ParseNumber(record["latitude"], 0)
	if err != nil {
		return models.Feature{}, &RecordError{Record: recordNo, Field: "latitude", Err: err}
	}
	lon, err := ParseNumber(record["longitude"], 0)
	if err != nil {
		return models.Feature{}, &RecordError{Record: recordNo, Field: "longitude", Err: err}
	}

	props := models.Properties{
		FarmerName:     record["farmer_name"],
		CollectionSite: record["collection_site"],
		FarmVillage:    record["farm_village"],
		FarmDistrict:   record["farm_district"],
		Commodity:      record["commodity"],
		RemoteID:       record["remote_id"],
		MemberID:       record["member_id"],
		AgentName:      record["agent_name"],
		Latitude:       &lat,
		Longitude:      &lon,
	}
	if raw := record["farm_size"]; raw != "" {
		size, err := ParseNumber(raw, 0)
		if err != nil {
			return models.Feature{}, &RecordError{Record: recordNo, Field: "farm_size", Err: err}
		}
		props.FarmSize = &size
	}
	accuracies := record["accuracies"]
	if accuracies == "" {
		accuracies = record["accuracyArray"]
	}
	if !IsEmptyPolygonLiteral(accuracies) {
		if err := json.Unmarshal([]byte(accuracies), &props.Accuracies); err != nil {
			return models.Feature{}, &RecordError{Record: recordNo, Field: "accuracies", Err: err}
		}
	}

	rings, err := ParsePolygonLiteral(record["polygon"])
	if err != nil {
		return models.Feature{}, &RecordError{Record: recordNo, Field: "polygon", Err: err}
	}

	feature := models.Feature{Type: "Feature", Properties: props}
	if len(rings) == 0 {
		feature.Geometry = models.Geometry{Type: models.GeometryPoint, Point: []float64{lon, lat}}
	} else {
		feature.Geometry = models.Geometry{Type: models.GeometryPolygon, Polygon: rings}
	}
	return feature, nil
}

// IsDegeneratePolygon - нет контура, либо один контур из единственной пары координат
func IsDegeneratePolygon(rings [][][]float64) bool {
	if len(rings) == 0 {
		return true
	}
	if len(rings) == 1 && len(rings[0]) <= 1 {
		return true
	}
	for _, ring := range rings {
		if len(ring) > 0 {
			return false
		}
	}
	return true
}

// RecordsToFeatureCollection строит FeatureCollection из сохраненных записей
// (повторный анализ и синхронизация устройств). Вырожденный контур заменяется точкой.
func RecordsToFeatureCollection(records []*models.FarmRecord, generateGeoids bool) models.FeatureCollection {
	fc := models.NewFeatureCollection(generateGeoids)
	for _, rec := range records {
		fc.Features = append(fc.Features, RecordToFeature(rec))
	}
	return fc
}

// RecordToFeature преобразует одну сохраненную запись
func RecordToFeature(rec *models.FarmRecord) models.Feature {
	size := rec.FarmSize
	lat, lon := rec.Latitude, rec.Longitude
	props := models.Properties{
		FarmerName:     rec.FarmerName,
		FarmSize:       &size,
		CollectionSite: rec.CollectionSite,
		FarmVillage:    rec.FarmVillage,
		FarmDistrict:   rec.FarmDistrict,
		Latitude:       &lat,
		Longitude:      &lon,
		Commodity:      rec.Commodity,
		RemoteID:       deref(rec.RemoteID),
		MemberID:       deref(rec.MemberID),
		AgentName:      deref(rec.AgentName),
		Geoid:          deref(rec.Geoid),
		Accuracies:     rec.Accuracies,
	}

	feature := models.Feature{Type: "Feature", Properties: props}
	if IsDegeneratePolygon(rec.Polygon) {
		feature.Geometry = models.Geometry{Type: models.GeometryPoint, Point: []float64{lon, lat}}
	} else {
		feature.Geometry = models.Geometry{Type: models.GeometryPolygon, Polygon: rec.Polygon}
	}
	return feature
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
