package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SourceFormat - формат входных данных
type SourceFormat string

const (
	FormatCSV     SourceFormat = "csv"
	FormatGeoJSON SourceFormat = "geojson"
)

// BatchState - состояние пакета загрузки
type BatchState string

const (
	BatchValidating BatchState = "validating"
	BatchAnalyzing  BatchState = "analyzing"
	BatchPersisting BatchState = "persisting"
	BatchCommitted  BatchState = "committed"
	BatchRolledBack BatchState = "rolled_back"
)

// IngestRequest - запрос на загрузку файла CSV или GeoJSON
type IngestRequest struct {
	Format     SourceFormat
	Rows       [][]string      // для CSV: первая строка - заголовок
	GeoJSON    json.RawMessage // для GeoJSON
	FileName   string
	UploadedBy string
}

// SyncRecord - запись участка, присланная мобильным устройством
type SyncRecord struct {
	DeviceID       string
	RemoteID       string
	FarmerName     string
	FarmSize       float64
	CollectionSite string
	FarmVillage    string
	FarmDistrict   string
	Latitude       float64
	Longitude      float64
	Polygon        [][][]float64
	Commodity      string
	MemberID       string
	AgentName      string
	Accuracies     []float64
}

// SyncRequest - пакет синхронизации с устройства
type SyncRequest struct {
	Records    []SyncRecord
	UploadedBy string
}

// UpsertResult - результат сохранения одной записи
type UpsertResult struct {
	Record  *FarmRecord
	Created bool
}

// BatchResult - итог обработки пакета
type BatchResult struct {
	FileID  uuid.UUID
	State   BatchState
	Results []UpsertResult
}

// Records возвращает сохраненные записи в порядке входных участков
func (b *BatchResult) Records() []*FarmRecord {
	out := make([]*FarmRecord, len(b.Results))
	for i, r := range b.Results {
		out[i] = r.Record
	}
	return out
}
