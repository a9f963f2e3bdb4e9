package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// FileRepository определяет контракт для работы с загруженными файлами
type FileRepository interface {
	CreateFile(ctx context.Context, file *models.UploadedFile) error
	FindFileByName(ctx context.Context, fileName string) (*models.UploadedFile, error)
	FindFileByDevice(ctx context.Context, deviceID string) (*models.UploadedFile, error)
	GetFile(ctx context.Context, id uuid.UUID) (*models.UploadedFile, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
	ListFiles(ctx context.Context, page, pageSize int) ([]*models.UploadedFile, error)
}

// FarmRepository определяет контракт для работы с бд участков
type FarmRepository interface {
	BeginBatch(ctx context.Context) (FarmBatch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error)
	ListFarms(ctx context.Context, page, pageSize int) ([]*models.FarmRecord, error)
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]*models.FarmRecord, error)
	ListByRiskLevel(ctx context.Context, level models.RiskLevel) ([]*models.FarmRecord, error)
	SetGeoid(ctx context.Context, id uuid.UUID, geoid string) error
}

// FarmBatch - транзакция записи одного пакета участков
type FarmBatch interface {
	LockIdentity(ctx context.Context, key string) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error)
	FindByRemoteID(ctx context.Context, remoteID string) (*models.FarmRecord, error)
	FindCandidates(ctx context.Context, farmerName, collectionSite string) ([]*models.FarmRecord, error)
	Insert(ctx context.Context, farm *models.FarmRecord) error
	Update(ctx context.Context, farm *models.FarmRecord) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SettingsRepository хранит настройки анализа, изменяемые без перезапуска
type SettingsRepository interface {
	GetAnalysisSetting(ctx context.Context) (*models.AnalysisSetting, error)
	SaveAnalysisSetting(ctx context.Context, setting *models.AnalysisSetting) error
}

// Analyzer - провайдер анализа риска вырубки
type Analyzer interface {
	Analyze(ctx context.Context, fc models.FeatureCollection, chunkSize int) ([]models.AnalysisRecord, error)
}

// RiskLayerCache - кэш слоев карты по уровню риска. Промах - (nil, gen, nil);
// слой, построенный после промаха, сохраняется под тем же поколением gen.
type RiskLayerCache interface {
	GetLayer(ctx context.Context, level models.RiskLevel) (*models.FeatureCollection, int64, error)
	SetLayer(ctx context.Context, level models.RiskLevel, gen int64, layer *models.FeatureCollection) error
}
