package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/metrics"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/reconcile"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=ingestion.go -destination=mocks/ingestion.go -package=mocks

// IngestionService определяет контракт конвейера загрузки участков
type IngestionService interface {
	Ingest(ctx context.Context, req models.IngestRequest) (*models.BatchResult, error)
	Sync(ctx context.Context, req models.SyncRequest) (*models.BatchResult, error)
	Reanalyze(ctx context.Context, fileID uuid.UUID) (*models.BatchResult, error)
}

type ingestionService struct {
	files     FileRepository
	farms     FarmRepository
	settings  SettingsRepository
	analyzer  Analyzer
	store     *FarmStore
	publisher events.Publisher
	cfg       *config.Config
	logger    *logrus.Logger
	metrics   *metrics.Metrics
}

func NewIngestionService(
	files FileRepository,
	farms FarmRepository,
	settings SettingsRepository,
	analyzer Analyzer,
	publisher events.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
	m *metrics.Metrics,
) IngestionService {
	return &ingestionService{
		files:     files,
		farms:     farms,
		settings:  settings,
		analyzer:  analyzer,
		store:     NewFarmStore(farms, publisher, logger, m),
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
	}
}

// batch - состояние одного пакета загрузки
type batch struct {
	log         *logrus.Entry
	source      string
	result      *models.BatchResult
	file        *models.UploadedFile
	fileCreated bool
}

func (b *batch) transition(state models.BatchState) {
	b.result.State = state
	b.log.WithField("state", state).Info("Batch state changed")
}

// Ingest загружает файл CSV или GeoJSON: проверка, анализ, сохранение.
// Пакет либо фиксируется целиком, либо откатывается вместе с созданным для него файлом.
func (s *ingestionService) Ingest(ctx context.Context, req models.IngestRequest) (*models.BatchResult, error) {
	ctx = detach(ctx)
	b := s.newBatch("Ingest", string(req.Format))
	b.log = b.log.WithField("file_name", req.FileName)

	b.transition(models.BatchValidating)
	if errs := validation.Validate(req); len(errs) > 0 {
		return s.fail(ctx, b, fmt.Errorf("service: batch rejected: %w", errs))
	}
	fc, err := normalize(req)
	if err != nil {
		return s.fail(ctx, b, fmt.Errorf("service: batch rejected: %w", err))
	}

	fileName := fmt.Sprintf("%s.%s", req.FileName, req.Format)
	if err := s.locateFile(ctx, b, fileName, req.UploadedBy, ""); err != nil {
		return s.fail(ctx, b, err)
	}

	farms, err := s.analyze(ctx, b, fc)
	if err != nil {
		return s.fail(ctx, b, err)
	}
	return s.persist(ctx, b, farms)
}

// Sync принимает записи с мобильного устройства. Все записи пакета должны иметь один device_id;
// файл устройства создается при первой синхронизации.
func (s *ingestionService) Sync(ctx context.Context, req models.SyncRequest) (*models.BatchResult, error) {
	ctx = detach(ctx)
	b := s.newBatch("Sync", "sync")

	b.transition(models.BatchValidating)
	if errs := validateSync(req); len(errs) > 0 {
		return s.fail(ctx, b, fmt.Errorf("service: sync rejected: %w", errs))
	}
	deviceID := req.Records[0].DeviceID
	b.log = b.log.WithField("device_id", deviceID)

	fc := geometry.RecordsToFeatureCollection(syncFarms(req.Records), true)
	if errs := validation.ValidateFeatureCollection(fc); len(errs) > 0 {
		return s.fail(ctx, b, fmt.Errorf("service: sync rejected: %w", errs))
	}

	fileName := fmt.Sprintf("%s_%s.json", req.Records[0].CollectionSite, deviceID)
	if err := s.locateFile(ctx, b, fileName, req.UploadedBy, deviceID); err != nil {
		return s.fail(ctx, b, err)
	}

	farms, err := s.analyze(ctx, b, fc)
	if err != nil {
		return s.fail(ctx, b, err)
	}
	return s.persist(ctx, b, farms)
}

// Reanalyze повторно анализирует сохраненные участки файла и обновляет их результаты.
// При ошибке файл и прежние записи не удаляются.
func (s *ingestionService) Reanalyze(ctx context.Context, fileID uuid.UUID) (*models.BatchResult, error) {
	ctx = detach(ctx)
	b := s.newBatch("Reanalyze", "reanalysis")
	b.log = b.log.WithField("file_id", fileID)

	b.transition(models.BatchValidating)
	file, err := s.files.GetFile(ctx, fileID)
	if err != nil {
		return s.fail(ctx, b, fmt.Errorf("service: could not get file %s: %w", fileID, err))
	}
	b.file = file
	b.result.FileID = file.ID

	existing, err := s.farms.ListByFile(ctx, fileID)
	if err != nil {
		return s.fail(ctx, b, fmt.Errorf("service: could not list farms of file %s: %w", fileID, err))
	}

	fc := geometry.RecordsToFeatureCollection(existing, false)
	reconciled, err := s.analyze(ctx, b, fc)
	if err != nil {
		return s.fail(ctx, b, err)
	}
	for i, farm := range existing {
		farm.Analysis = reconciled[i].Analysis
	}
	return s.persist(ctx, b, existing)
}

// detach отвязывает пакет от отмены вызывающего: начатый пакет доводится
// до фиксации или отката, значения контекста сохраняются
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (s *ingestionService) newBatch(method, source string) *batch {
	return &batch{
		log: s.logger.WithFields(logrus.Fields{
			"service": "ingestion",
			"method":  method,
			"source":  source,
		}),
		source: source,
		result: &models.BatchResult{},
	}
}

// locateFile находит файл пакета по имени (или устройству) либо создает новый
func (s *ingestionService) locateFile(ctx context.Context, b *batch, fileName, uploadedBy, deviceID string) error {
	var (
		file *models.UploadedFile
		err  error
	)
	if deviceID != "" {
		file, err = s.files.FindFileByDevice(ctx, deviceID)
	} else {
		file, err = s.files.FindFileByName(ctx, fileName)
	}

	switch {
	case err == nil:
		b.log.WithField("file_id", file.ID).Info("Using existing uploaded file")
	case errors.Is(err, ErrNotFound):
		file = &models.UploadedFile{FileName: fileName, UploadedBy: uploadedBy}
		if deviceID != "" {
			file.DeviceID = &deviceID
		}
		if err := s.files.CreateFile(ctx, file); err != nil {
			return fmt.Errorf("service: could not create uploaded file: %w", err)
		}
		b.fileCreated = true
		b.log.WithField("file_id", file.ID).Info("Uploaded file created")
	default:
		return fmt.Errorf("service: could not look up uploaded file: %w", err)
	}

	b.file = file
	b.result.FileID = file.ID
	return nil
}

// analyze отправляет коллекцию провайдеру и сводит ответы в записи участков
func (s *ingestionService) analyze(ctx context.Context, b *batch, fc models.FeatureCollection) ([]*models.FarmRecord, error) {
	b.transition(models.BatchAnalyzing)

	chunkSize := s.chunkSize(ctx, b.log)
	records, err := s.analyzer.Analyze(ctx, fc, chunkSize)
	if err != nil {
		return nil, fmt.Errorf("service: analysis failed: %w", err)
	}
	farms, err := reconcile.Reconcile(fc, records, b.file.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return farms, nil
}

func (s *ingestionService) persist(ctx context.Context, b *batch, farms []*models.FarmRecord) (*models.BatchResult, error) {
	b.transition(models.BatchPersisting)

	results, err := s.store.Upsert(ctx, farms)
	if err != nil {
		return s.fail(ctx, b, fmt.Errorf("service: could not persist farms: %w", err))
	}
	b.result.Results = results
	b.transition(models.BatchCommitted)
	s.metrics.BatchFinished(b.source, string(models.BatchCommitted))

	s.registerGeoids(ctx, b, results)
	return b.result, nil
}

// fail откатывает пакет: файл, созданный этим пакетом, удаляется (записи участков удаляются каскадно)
func (s *ingestionService) fail(ctx context.Context, b *batch, cause error) (*models.BatchResult, error) {
	b.log.WithError(cause).WithField("state", b.result.State).Warn("Batch failed, rolling back")

	if b.fileCreated && b.file != nil {
		if err := s.files.DeleteFile(ctx, b.file.ID); err != nil {
			b.log.WithError(err).Error("Failed to delete uploaded file during rollback")
			cause = errors.Join(cause, fmt.Errorf("service: rollback failed: %w", err))
		}
	}

	b.transition(models.BatchRolledBack)
	s.metrics.BatchFinished(b.source, string(models.BatchRolledBack))
	return b.result, cause
}

// chunkSize читает размер чанка при каждом пакете, чтобы изменения применялись без перезапуска
func (s *ingestionService) chunkSize(ctx context.Context, log *logrus.Entry) int {
	setting, err := s.settings.GetAnalysisSetting(ctx)
	if err != nil || setting == nil || setting.ChunkSize < 1 {
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warn("Failed to read analysis settings, using configured chunk size")
		}
		return s.cfg.AnalysisChunkSize
	}
	return setting.ChunkSize
}

// registerGeoids ставит в очередь регистрации новые участки с контуром и без geo-ID
func (s *ingestionService) registerGeoids(ctx context.Context, b *batch, results []models.UpsertResult) {
	queued := 0
	for _, r := range results {
		if !r.Created || r.Record.Geoid != nil || !r.Record.HasPolygon() {
			continue
		}
		req := events.GeoidRequest{FarmID: r.Record.ID, Polygon: r.Record.Polygon}
		if err := s.publisher.EnqueueGeoid(ctx, req); err != nil {
			b.log.WithError(err).WithField("farm_id", r.Record.ID).Warn("Failed to enqueue geoid registration")
			continue
		}
		queued++
	}
	if queued > 0 {
		b.log.WithField("queued", queued).Info("Geoid registration queued")
	}
}

func normalize(req models.IngestRequest) (models.FeatureCollection, error) {
	switch req.Format {
	case models.FormatCSV:
		fc, errs := geometry.NormalizeCSV(req.Rows)
		if len(errs) > 0 {
			return fc, errors.Join(errs...)
		}
		return fc, nil
	default:
		var doc struct {
			Features []models.Feature `json:"features"`
		}
		if err := json.Unmarshal(req.GeoJSON, &doc); err != nil {
			return models.FeatureCollection{}, fmt.Errorf("%w: %v", geometry.ErrMalformedGeometry, err)
		}
		fc := models.NewFeatureCollection(false)
		fc.Features = append(fc.Features, doc.Features...)
		return fc, nil
	}
}

func validateSync(req models.SyncRequest) validation.Errors {
	if len(req.Records) == 0 {
		return validation.Errors{{Index: -1, Reason: "No records to sync."}}
	}
	deviceID := req.Records[0].DeviceID
	var errs validation.Errors
	for i, r := range req.Records {
		switch {
		case r.DeviceID == "":
			errs = append(errs, validation.ValidationError{
				Scope: validation.ScopeRecord, Index: i + 1, Field: "device_id", Reason: `"device_id" is required.`,
			})
		case r.DeviceID != deviceID:
			errs = append(errs, validation.ValidationError{
				Scope: validation.ScopeRecord, Index: i + 1, Field: "device_id", Reason: `"device_id" must match the first record.`,
			})
		}
	}
	return errs
}

func syncFarms(records []models.SyncRecord) []*models.FarmRecord {
	farms := make([]*models.FarmRecord, len(records))
	for i, r := range records {
		if r.Commodity == "" {
			r.Commodity = reconcile.DefaultCommodity
		}
		farms[i] = &models.FarmRecord{
			RemoteID:       optionalString(r.RemoteID),
			FarmerName:     r.FarmerName,
			FarmSize:       r.FarmSize,
			CollectionSite: r.CollectionSite,
			AgentName:      optionalString(r.AgentName),
			MemberID:       optionalString(r.MemberID),
			FarmVillage:    r.FarmVillage,
			FarmDistrict:   r.FarmDistrict,
			Commodity:      r.Commodity,
			Latitude:       r.Latitude,
			Longitude:      r.Longitude,
			Polygon:        r.Polygon,
			Accuracies:     r.Accuracies,
		}
	}
	return farms
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
