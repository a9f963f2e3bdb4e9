package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel - категория риска EUDR
type RiskLevel string

const (
	RiskLow            RiskLevel = "low"
	RiskMedium         RiskLevel = "medium"
	RiskHigh           RiskLevel = "high"
	RiskMoreInfoNeeded RiskLevel = "more_info_needed"
)

// ParseRiskLevel возвращает false для значений вне перечисления
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskMoreInfoNeeded:
		return RiskLevel(s), true
	}
	return "", false
}

// AnalysisResult - нормализованный результат анализа риска вырубки
type AnalysisResult struct {
	IsInProtectedAreas        bool       `json:"is_in_protected_areas"`
	IsInWaterBody             bool       `json:"is_in_water_body"`
	ForestChangeLossAfter2020 float64    `json:"forest_change_loss_after_2020"`
	FireAfter2020             float64    `json:"fire_after_2020"`
	RaddAfter2020             float64    `json:"radd_after_2020"`
	TMFDeforestationAfter2020 float64    `json:"tmf_deforestation_after_2020"`
	TMFDegradationAfter2020   float64    `json:"tmf_degradation_after_2020"`
	TreeCoverLoss             float64    `json:"tree_cover_loss"`
	TMFDisturbed              bool       `json:"tmf_disturbed"`
	Commodities               bool       `json:"commodities"`
	DisturbanceBefore2020     bool       `json:"disturbance_before_2020"`
	DisturbanceAfter2020      bool       `json:"disturbance_after_2020"`
	EUDRRiskLevel             *RiskLevel `json:"eudr_risk_level"`
}

// FarmRecord - сохраненный участок фермера
type FarmRecord struct {
	ID             uuid.UUID       `json:"id"`
	FileID         uuid.UUID       `json:"file_id" validate:"required"`
	RemoteID       *string         `json:"remote_id"`
	FarmerName     string          `json:"farmer_name" validate:"required,max=255"`
	FarmSize       float64         `json:"farm_size" validate:"gte=0"`
	CollectionSite string          `json:"collection_site" validate:"required,max=255"`
	AgentName      *string         `json:"agent_name"`
	MemberID       *string         `json:"member_id"`
	FarmVillage    string          `json:"farm_village" validate:"required,max=255"`
	FarmDistrict   string          `json:"farm_district" validate:"required,max=255"`
	Commodity      string          `json:"commodity" validate:"required,max=255"`
	Latitude       float64         `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64         `json:"longitude" validate:"gte=-180,lte=180"`
	Polygon        [][][]float64   `json:"polygon"`
	PolygonType    GeometryType    `json:"polygon_type" validate:"oneof=Point Polygon MultiPolygon"`
	Accuracies     []float64       `json:"accuracies"`
	Geoid          *string         `json:"geoid"`
	Analysis       *AnalysisResult `json:"analysis"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// HasPolygon сообщает, есть ли у участка непустой контур
func (f *FarmRecord) HasPolygon() bool {
	for _, ring := range f.Polygon {
		if len(ring) > 0 {
			return true
		}
	}
	return false
}

// RiskLevel возвращает уровень риска или пустую строку, если анализа нет
func (f *FarmRecord) RiskLevel() RiskLevel {
	if f.Analysis == nil || f.Analysis.EUDRRiskLevel == nil {
		return ""
	}
	return *f.Analysis.EUDRRiskLevel
}
