package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

// FlattenMultiPolygon склеивает все контуры всех полигонов в один внешний контур.
// Упрощение с потерей информации: используется только для провайдера анализа и хранения.
func FlattenMultiPolygon(multi [][][][]float64) [][][]float64 {
	ring := make([][]float64, 0)
	for _, polygon := range multi {
		for _, r := range polygon {
			ring = append(ring, r...)
		}
	}
	return [][][]float64{ring}
}

// FlattenGeometry возвращает Polygon вместо MultiPolygon, остальные типы без изменений
func FlattenGeometry(g models.Geometry) models.Geometry {
	if g.Type != models.GeometryMultiPolygon {
		return g
	}
	return models.Geometry{Type: models.GeometryPolygon, Polygon: FlattenMultiPolygon(g.MultiPolygon)}
}

// FlattenCollection возвращает копию коллекции без MultiPolygon. Вход не изменяется.
func FlattenCollection(fc models.FeatureCollection) models.FeatureCollection {
	out := models.FeatureCollection{
		Type:           fc.Type,
		Features:       make([]models.Feature, len(fc.Features)),
		GenerateGeoids: fc.GenerateGeoids,
	}
	for i, f := range fc.Features {
		f.Geometry = FlattenGeometry(f.Geometry)
		out.Features[i] = f
	}
	return out
}

// PolygonWKT кодирует контуры в WKT POLYGON для реестра geo-ID.
// Незамкнутый контур замыкается первой точкой; точка без двух координат
// или контур короче трех точек дают ErrMalformedGeometry.
func PolygonWKT(rings [][][]float64) (string, error) {
	if len(rings) == 0 {
		return "", fmt.Errorf("%w: polygon has no rings", ErrMalformedGeometry)
	}
	polygon := make(orb.Polygon, 0, len(rings))
	for i, ring := range rings {
		r := make(orb.Ring, 0, len(ring)+1)
		for j, pair := range ring {
			if len(pair) < 2 {
				return "", fmt.Errorf("%w: ring %d point %d has %d ordinates", ErrMalformedGeometry, i, j, len(pair))
			}
			r = append(r, orb.Point{pair[0], pair[1]})
		}
		if len(r) > 0 && !r.Closed() {
			r = append(r, r[0])
		}
		if len(r) < 4 {
			return "", fmt.Errorf("%w: ring %d has fewer than 3 points", ErrMalformedGeometry, i)
		}
		polygon = append(polygon, r)
	}
	return wkt.MarshalString(polygon), nil
}
