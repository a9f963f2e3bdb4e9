package models

import (
	"encoding/json"
	"fmt"
)

// GeometryType - тип геометрии GeoJSON, поддерживаемый конвейером
type GeometryType string

const (
	GeometryPoint        GeometryType = "Point"
	GeometryPolygon      GeometryType = "Polygon"
	GeometryMultiPolygon GeometryType = "MultiPolygon"
)

// Geometry - геометрия участка. Координаты в порядке [lon, lat].
// Заполнено ровно одно поле координат, соответствующее Type.
type Geometry struct {
	Type         GeometryType
	Point        []float64
	Polygon      [][][]float64
	MultiPolygon [][][][]float64
}

type geometryJSON struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// MarshalJSON кодирует геометрию в форму {"type": ..., "coordinates": ...}
func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.Type {
	case GeometryPoint:
		coords = g.Point
	case GeometryPolygon:
		coords = g.Polygon
	case GeometryMultiPolygon:
		coords = g.MultiPolygon
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geometryJSON{Type: g.Type, Coordinates: raw})
}

// UnmarshalJSON разбирает координаты в зависимости от типа геометрии
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var aux geometryJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	out := Geometry{Type: aux.Type}
	var target any
	switch aux.Type {
	case GeometryPoint:
		target = &out.Point
	case GeometryPolygon:
		target = &out.Polygon
	case GeometryMultiPolygon:
		target = &out.MultiPolygon
	default:
		return fmt.Errorf("unsupported geometry type %q", aux.Type)
	}
	if err := json.Unmarshal(aux.Coordinates, target); err != nil {
		return fmt.Errorf("invalid %s coordinates: %w", aux.Type, err)
	}
	*g = out
	return nil
}

// Properties - атрибуты участка. Необязательные числовые поля - указатели,
// чтобы отличать отсутствие значения от нуля.
type Properties struct {
	FarmerName     string    `json:"farmer_name,omitempty"`
	FarmSize       *float64  `json:"farm_size,omitempty"`
	CollectionSite string    `json:"collection_site,omitempty"`
	FarmVillage    string    `json:"farm_village,omitempty"`
	FarmDistrict   string    `json:"farm_district,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Commodity      string    `json:"commodity,omitempty"`
	RemoteID       string    `json:"remote_id,omitempty"`
	MemberID       string    `json:"member_id,omitempty"`
	AgentName      string    `json:"agent_name,omitempty"`
	Geoid          string    `json:"geoid,omitempty"`
	Accuracies     []float64 `json:"accuracies,omitempty"`
}

// Feature - единица геометрия + атрибуты
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// FeatureCollection - канонический набор участков
type FeatureCollection struct {
	Type           string    `json:"type"`
	Features       []Feature `json:"features"`
	GenerateGeoids bool      `json:"generateGeoids,string"`
}

// NewFeatureCollection создает пустую коллекцию
func NewFeatureCollection(generateGeoids bool) FeatureCollection {
	return FeatureCollection{
		Type:           "FeatureCollection",
		Features:       make([]Feature, 0),
		GenerateGeoids: generateGeoids,
	}
}
