package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flag - булев индикатор провайдера. Провайдер присылает bool, число или строку
// ("yes", "true", "1"); нераспознанное значение считается false.
type Flag struct {
	Valid bool
	Value bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag{}
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		f.Value = t
	case float64:
		f.Value = t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			f.Value = n != 0
		} else {
			f.Value = s == "yes" || s == "true"
		}
	}
	f.Valid = true
	return nil
}

// True - индикатор присутствует и истинен
func (f Flag) True() bool { return f.Valid && f.Value }

// Measure - числовой индикатор провайдера; строка с числом тоже принимается
type Measure struct {
	Valid bool
	Value float64
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Measure{}
	switch t := v.(type) {
	case float64:
		*m = Measure{Valid: true, Value: t}
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			*m = Measure{Valid: true, Value: n}
		}
	}
	return nil
}

// Or возвращает значение или def, если индикатора нет
func (m Measure) Or(def float64) float64 {
	if m.Valid {
		return m.Value
	}
	return def
}

// Label - строковое поле провайдера; значения других типов дают пустую строку
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s, _ := v.(string)
	*l = Label(s)
	return nil
}

// AnalysisRecord - ответ провайдера анализа для одного участка.
// Провайдер возвращает либо плоский объект, либо Feature с полем properties;
// значения из properties перекрывают поля верхнего уровня.
type AnalysisRecord struct {
	PlotAreaHa  Measure `json:"Plot_area_ha"`
	Area        Measure `json:"Area"`
	CentroidLat Measure `json:"Centroid_lat"`
	CentroidLon Measure `json:"Centroid_lon"`
	AdminLevel1 Label   `json:"Admin_Level_1"`
	GeoID       Label   `json:"Geo_id"`

	GFCLossAfter2020   Measure `json:"GFC_loss_after_2020"`
	GFCLossBefore2020  Measure `json:"GFC_loss_before_2020"`
	TMFDefAfter2020    Measure `json:"TMF_def_after_2020"`
	TMFDefBefore2020   Measure `json:"TMF_def_before_2020"`
	TMFDegAfter2020    Measure `json:"TMF_deg_after_2020"`
	MODISFireAfter2020 Measure `json:"MODIS_fire_after_2020"`
	ESAFireAfter2020   Measure `json:"ESA_fire_after_2020"`
	RADDAfter2020      Measure `json:"RADD_after_2020"`

	InWaterbody           Flag `json:"In_waterbody"`
	TMFDisturbed          Flag `json:"TMF_disturbed"`
	TMFUndisturbed        Flag `json:"TMF_undist"`
	Commodities           Flag `json:"Ind_02_commodities"`
	DisturbanceBefore2020 Flag `json:"Ind_03_disturbance_before_2020"`
	DisturbanceAfter2020  Flag `json:"Ind_04_disturbance_after_2020"`

	// охраняемые территории: достаточно любого из полей
	ProtectedArea         Flag `json:"protected_area"`
	ProtectedAreaLegacy   Flag `json:"Protected_Area"`
	IFL2020               Flag `json:"IFL_2020"`
	EuropeanPrimaryForest Flag `json:"European_Primary_Forest"`
	WDPA                  Flag `json:"WDPA"`

	RiskPcrop     Label `json:"risk_pcrop"`
	RiskAcrop     Label `json:"risk_acrop"`
	RiskLivestock Label `json:"risk_livestock"`
	RiskTimber    Label `json:"risk_timber"`
}

// UnmarshalJSON накладывает properties поверх полей верхнего уровня
func (r *AnalysisRecord) UnmarshalJSON(data []byte) error {
	type plain AnalysisRecord
	var wrapped struct {
		plain
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if props := bytes.TrimSpace(wrapped.Properties); len(props) > 0 && props[0] == '{' {
		if err := json.Unmarshal(props, &wrapped.plain); err != nil {
			return err
		}
	}
	*r = AnalysisRecord(wrapped.plain)
	return nil
}

// InProtectedArea - хотя бы один из индикаторов охраняемой территории истинен
func (r AnalysisRecord) InProtectedArea() bool {
	return r.ProtectedArea.True() || r.ProtectedAreaLegacy.True() || r.IFL2020.True() ||
		r.EuropeanPrimaryForest.True() || r.WDPA.True()
}

// Risk возвращает поле риска провайдера по его имени
func (r AnalysisRecord) Risk(field string) Label {
	switch field {
	case "risk_pcrop":
		return r.RiskPcrop
	case "risk_acrop":
		return r.RiskAcrop
	case "risk_livestock":
		return r.RiskLivestock
	case "risk_timber":
		return r.RiskTimber
	}
	return ""
}
