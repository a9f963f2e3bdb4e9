package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile - пакет загрузки (файл или синхронизация устройства), которому принадлежат участки
type UploadedFile struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	UploadedBy string    `json:"uploaded_by"`
	DeviceID   *string   `json:"device_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnalysisSetting - настройка размера чанка для провайдера анализа
type AnalysisSetting struct {
	ChunkSize int       `json:"chunk_size"`
	UpdatedAt time.Time `json:"updated_at"`
}
