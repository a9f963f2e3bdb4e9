package v1

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

// SyncRecordRequest DTO записи участка с мобильного устройства
// @Description DTO записи участка с мобильного устройства
type SyncRecordRequest struct {
	DeviceID       string          `json:"device_id" validate:"required"`
	RemoteID       string          `json:"remote_id" validate:"required"`
	FarmerName     string          `json:"farmer_name" validate:"required,max=255"`
	FarmSize       float64         `json:"farm_size" validate:"gte=0"`
	CollectionSite string          `json:"collection_site" validate:"required,max=255"`
	FarmVillage    string          `json:"farm_village" validate:"required,max=255"`
	FarmDistrict   string          `json:"farm_district" validate:"required,max=255"`
	Latitude       float64         `json:"latitude" validate:"latitude"`
	Longitude      float64         `json:"longitude" validate:"longitude"`
	Polygon        json.RawMessage `json:"polygon,omitempty" swaggertype:"array,number"`
	Commodity      string          `json:"commodity,omitempty"`
	MemberID       string          `json:"member_id,omitempty"`
	AgentName      string          `json:"agent_name,omitempty"`
	Accuracies     []float64       `json:"accuracies,omitempty"`
}

// SyncRequest DTO пакета синхронизации
// @Description DTO пакета синхронизации
type SyncRequest struct {
	UploadedBy string              `json:"uploaded_by,omitempty"`
	Records    []SyncRecordRequest `json:"records" validate:"required,min=1,dive"`
}

// AnalysisSettingsRequest DTO для изменения размера чанка
// @Description DTO для изменения размера чанка
type AnalysisSettingsRequest struct {
	ChunkSize int `json:"chunk_size" validate:"required,gte=1,lte=5000"`
}

// AnalysisSettingsResponse DTO с действующим размером чанка
// @Description DTO с действующим размером чанка
type AnalysisSettingsResponse struct {
	ChunkSize int       `json:"chunk_size"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// FarmResponse DTO для ответа с информацией об участке
// @Description DTO для ответа с информацией об участке
type FarmResponse struct {
	ID             uuid.UUID              `json:"id"`
	FileID         uuid.UUID              `json:"file_id"`
	RemoteID       *string                `json:"remote_id,omitempty"`
	FarmerName     string                 `json:"farmer_name"`
	FarmSize       float64                `json:"farm_size"`
	CollectionSite string                 `json:"collection_site"`
	AgentName      *string                `json:"agent_name,omitempty"`
	MemberID       *string                `json:"member_id,omitempty"`
	FarmVillage    string                 `json:"farm_village"`
	FarmDistrict   string                 `json:"farm_district"`
	Commodity      string                 `json:"commodity"`
	Latitude       float64                `json:"latitude"`
	Longitude      float64                `json:"longitude"`
	Polygon        [][][]float64          `json:"polygon"`
	PolygonType    models.GeometryType    `json:"polygon_type"`
	Accuracies     []float64              `json:"accuracies,omitempty"`
	Geoid          *string                `json:"geoid,omitempty"`
	Analysis       *models.AnalysisResult `json:"analysis,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// FileResponse DTO для ответа с информацией о загруженном файле
// @Description DTO для ответа с информацией о загруженном файле
type FileResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	DeviceID   *string   `json:"device_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BatchResponse DTO с итогом обработки пакета
// @Description DTO с итогом обработки пакета
type BatchResponse struct {
	FileID  uuid.UUID       `json:"file_id"`
	State   string          `json:"state"`
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Farms   []*FarmResponse `json:"farms"`
}

// ErrorResponse DTO ошибки; для ошибок проверки заполнен Errors
// @Description DTO ошибки
type ErrorResponse struct {
	Error  string            `json:"error"`
	State  string            `json:"state,omitempty"`
	Errors []ValidationIssue `json:"errors,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidationIssue DTO одной ошибки проверки
// @Description DTO одной ошибки проверки
type ValidationIssue struct {
	Scope   string `json:"scope,omitempty"`
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
