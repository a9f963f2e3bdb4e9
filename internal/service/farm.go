package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=farm.go -destination=mocks/farm.go -package=mocks

// MaxChunkSize - верхняя граница размера чанка, принимаемая из настроек
const MaxChunkSize = 5000

// FarmService определяет контракт чтения участков, выгрузки и настроек анализа
type FarmService interface {
	GetFarm(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error)
	ListFarms(ctx context.Context, page, pageSize int) ([]*models.FarmRecord, error)
	GetFile(ctx context.Context, id uuid.UUID) (*models.UploadedFile, error)
	ListFiles(ctx context.Context, page, pageSize int) ([]*models.UploadedFile, error)
	ListFileFarms(ctx context.Context, fileID uuid.UUID) ([]*models.FarmRecord, error)
	Export(ctx context.Context, fileID uuid.UUID, format models.SourceFormat, w io.Writer) error
	Template(format models.SourceFormat, w io.Writer) error
	RiskLayer(ctx context.Context, level models.RiskLevel) (*models.FeatureCollection, error)
	GetAnalysisSettings(ctx context.Context) (*models.AnalysisSetting, error)
	UpdateAnalysisSettings(ctx context.Context, chunkSize int) (*models.AnalysisSetting, error)
}

type farmService struct {
	files     FileRepository
	farms     FarmRepository
	settings  SettingsRepository
	layers    RiskLayerCache
	logger    *logrus.Logger
	chunkSize int
}

func NewFarmService(
	files FileRepository,
	farms FarmRepository,
	settings SettingsRepository,
	layers RiskLayerCache,
	logger *logrus.Logger,
	defaultChunkSize int,
) FarmService {
	return &farmService{
		files:     files,
		farms:     farms,
		settings:  settings,
		layers:    layers,
		logger:    logger,
		chunkSize: defaultChunkSize,
	}
}

// GetFarm получает участок по ID
func (s *farmService) GetFarm(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error) {
	farm, err := s.farms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get farm: %w", err)
	}
	return farm, nil
}

// ListFarms возвращает участки с пагинацией
func (s *farmService) ListFarms(ctx context.Context, page, pageSize int) ([]*models.FarmRecord, error) {
	page, pageSize = normalizePage(page, pageSize)

	log := s.logger.WithFields(logrus.Fields{
		"service":   "farm",
		"method":    "ListFarms",
		"page":      page,
		"page_size": pageSize,
	})

	farms, err := s.farms.ListFarms(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list farms from repository")
		return nil, fmt.Errorf("service: could not list farms: %w", err)
	}
	log.WithField("count", len(farms)).Debug("Farms listed successfully")
	return farms, nil
}

// GetFile получает загруженный файл по ID
func (s *farmService) GetFile(ctx context.Context, id uuid.UUID) (*models.UploadedFile, error) {
	file, err := s.files.GetFile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get file: %w", err)
	}
	return file, nil
}

// ListFiles возвращает загруженные файлы с пагинацией
func (s *farmService) ListFiles(ctx context.Context, page, pageSize int) ([]*models.UploadedFile, error) {
	page, pageSize = normalizePage(page, pageSize)
	files, err := s.files.ListFiles(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("service: could not list files: %w", err)
	}
	return files, nil
}

// ListFileFarms возвращает все участки файла
func (s *farmService) ListFileFarms(ctx context.Context, fileID uuid.UUID) ([]*models.FarmRecord, error) {
	if _, err := s.files.GetFile(ctx, fileID); err != nil {
		return nil, fmt.Errorf("service: could not get file: %w", err)
	}
	farms, err := s.farms.ListByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list farms of file: %w", err)
	}
	return farms, nil
}

// Export выгружает участки файла в CSV или GeoJSON
func (s *farmService) Export(ctx context.Context, fileID uuid.UUID, format models.SourceFormat, w io.Writer) error {
	farms, err := s.ListFileFarms(ctx, fileID)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"service": "farm",
		"method":  "Export",
		"file_id": fileID,
		"format":  format,
		"count":   len(farms),
	}).Info("Exporting farms")

	switch format {
	case models.FormatCSV:
		return writeCSV(w, farms)
	case models.FormatGeoJSON:
		return writeGeoJSON(w, farms)
	default:
		return unsupportedFormat(format)
	}
}

// Template отдает пустой шаблон для загрузки
func (s *farmService) Template(format models.SourceFormat, w io.Writer) error {
	switch format {
	case models.FormatCSV:
		return writeCSV(w, nil)
	case models.FormatGeoJSON:
		return writeGeoJSONTemplate(w)
	default:
		return unsupportedFormat(format)
	}
}

// RiskLayer возвращает слой карты с участками заданного уровня риска. Слой кэшируется
// в поколении, прочитанном до запроса к базе, и не переживает следующую фиксацию пакета.
func (s *farmService) RiskLayer(ctx context.Context, level models.RiskLevel) (*models.FeatureCollection, error) {
	if _, ok := models.ParseRiskLevel(string(level)); !ok {
		return nil, validation.Errors{{
			Index:  -1,
			Field:  "level",
			Reason: fmt.Sprintf("Invalid risk level %q. Must be low, medium, high or more_info_needed", level),
		}}
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "farm",
		"method":  "RiskLayer",
		"level":   level,
	})

	layer, gen, cacheErr := s.layers.GetLayer(ctx, level)
	if cacheErr != nil {
		log.WithError(cacheErr).Warn("Failed to read risk layer from cache")
	}
	if layer != nil {
		return layer, nil
	}

	farms, err := s.farms.ListByRiskLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("service: could not list farms by risk level: %w", err)
	}
	fc := geometry.RecordsToFeatureCollection(farms, false)
	// без поколения слой не кэшируется: его нельзя отличить от устаревшего
	if cacheErr == nil {
		if err := s.layers.SetLayer(ctx, level, gen, &fc); err != nil {
			log.WithError(err).Warn("Failed to cache risk layer")
		}
	}
	log.WithField("count", len(farms)).Info("Risk layer computed")
	return &fc, nil
}

// GetAnalysisSettings возвращает действующий размер чанка
func (s *farmService) GetAnalysisSettings(ctx context.Context) (*models.AnalysisSetting, error) {
	setting, err := s.settings.GetAnalysisSetting(ctx)
	if err != nil {
		if isNotFound(err) {
			return &models.AnalysisSetting{ChunkSize: s.chunkSize}, nil
		}
		return nil, fmt.Errorf("service: could not get analysis settings: %w", err)
	}
	return setting, nil
}

// UpdateAnalysisSettings меняет размер чанка; применяется со следующего пакета
func (s *farmService) UpdateAnalysisSettings(ctx context.Context, chunkSize int) (*models.AnalysisSetting, error) {
	if chunkSize < 1 || chunkSize > MaxChunkSize {
		return nil, validation.Errors{{
			Index:  -1,
			Field:  "chunk_size",
			Reason: fmt.Sprintf(`"chunk_size" must be between 1 and %d.`, MaxChunkSize),
		}}
	}
	setting := &models.AnalysisSetting{ChunkSize: chunkSize, UpdatedAt: time.Now().UTC()}
	if err := s.settings.SaveAnalysisSetting(ctx, setting); err != nil {
		return nil, fmt.Errorf("service: could not save analysis settings: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"service":    "farm",
		"method":     "UpdateAnalysisSettings",
		"chunk_size": chunkSize,
	}).Info("Analysis chunk size updated")
	return setting, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func unsupportedFormat(format models.SourceFormat) error {
	return validation.Errors{{
		Index:  -1,
		Field:  "format",
		Reason: fmt.Sprintf("Unsupported format %q. Must be csv or geojson", format),
	}}
}
