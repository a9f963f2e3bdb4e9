package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/analysis"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	event_mocks "github.com/shenikar/eudr_ingestion_system/internal/events/mocks"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/shenikar/eudr_ingestion_system/internal/service/mocks"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const squarePolygon = "[[30.0,-1.9],[30.1,-1.9],[30.1,-2.0],[30.0,-1.9]]"

var csvHeader = []string{
	"farmer_name", "farm_size", "collection_site", "farm_district", "farm_village",
	"latitude", "longitude", "polygon", "commodity",
}

type ingestionMocks struct {
	files     *mocks.MockFileRepository
	farms     *mocks.MockFarmRepository
	batch     *mocks.MockFarmBatch
	settings  *mocks.MockSettingsRepository
	analyzer  *mocks.MockAnalyzer
	publisher *event_mocks.MockPublisher
}

// newTestIngestionService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIngestionService(t *testing.T) (service.IngestionService, *ingestionMocks) {
	ctrl := gomock.NewController(t)
	m := &ingestionMocks{
		files:     mocks.NewMockFileRepository(ctrl),
		farms:     mocks.NewMockFarmRepository(ctrl),
		batch:     mocks.NewMockFarmBatch(ctrl),
		settings:  mocks.NewMockSettingsRepository(ctrl),
		analyzer:  mocks.NewMockAnalyzer(ctrl),
		publisher: event_mocks.NewMockPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{AnalysisChunkSize: 500}

	svc := service.NewIngestionService(m.files, m.farms, m.settings, m.analyzer, m.publisher, logger, cfg, nil)
	return svc, m
}

func csvRequest(rows ...[]string) models.IngestRequest {
	return models.IngestRequest{
		Format:     models.FormatCSV,
		Rows:       append([][]string{csvHeader}, rows...),
		FileName:   "cooperative",
		UploadedBy: "agent@example.com",
	}
}

func aliceRow() []string {
	return []string{"Alice", "5", "Site A", "District A", "Village A", "-1.9", "30.1", squarePolygon, "Coffee"}
}

func lowRisk() []models.AnalysisRecord {
	return []models.AnalysisRecord{{
		RiskPcrop:   "low",
		CentroidLat: models.Measure{Valid: true, Value: -1.9},
		CentroidLon: models.Measure{Valid: true, Value: 30.05},
	}}
}

// expectNewFile - файл с таким именем еще не загружался
func expectNewFile(m *ingestionMocks, fileID uuid.UUID) {
	m.files.EXPECT().
		FindFileByName(gomock.Any(), "cooperative.csv").
		Return(nil, service.ErrNotFound).
		Times(1)
	m.files.EXPECT().
		CreateFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, f *models.UploadedFile) error {
			f.ID = fileID
			return nil
		}).Times(1)
}

func expectInsert(m *ingestionMocks) {
	m.batch.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, farm *models.FarmRecord) error {
			farm.ID = uuid.New()
			farm.CreatedAt = time.Now()
			farm.UpdatedAt = farm.CreatedAt
			return nil
		}).Times(1)
}

func TestIngest_CSVEndToEnd(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	fileID := uuid.New()

	// Ожидания
	// 1. Создание файла пакета
	expectNewFile(m, fileID)

	// 2. Размер чанка из настроек
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(&models.AnalysisSetting{ChunkSize: 250}, nil).Times(1)

	// 3. Анализ одним чанком
	m.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), 250).
		DoAndReturn(func(ctx context.Context, fc models.FeatureCollection, chunkSize int) ([]models.AnalysisRecord, error) {
			require.Len(t, fc.Features, 1)
			assert.Equal(t, models.GeometryPolygon, fc.Features[0].Geometry.Type)
			return lowRisk(), nil
		}).Times(1)

	// 4. Транзакция: совпадений нет, вставка
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), "farm:alice|site a").Return(nil).Times(1)
	m.batch.EXPECT().FindCandidates(gomock.Any(), "Alice", "Site A").Return(nil, nil).Times(1)
	expectInsert(m)
	m.batch.EXPECT().Commit(gomock.Any()).Return(nil).Times(1)

	// 5. Событие фиксации и регистрация geo-ID нового участка
	m.publisher.EXPECT().
		PublishCommit(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, event events.CommitEvent) {
			assert.Equal(t, fileID, event.FileID)
			assert.Len(t, event.Created, 1)
			assert.Empty(t, event.Updated)
		}).Return(nil).Times(1)
	m.publisher.EXPECT().EnqueueGeoid(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	result, err := svc.Ingest(ctx, csvRequest(aliceRow()))

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.BatchCommitted, result.State)
	assert.Equal(t, fileID, result.FileID)
	require.Len(t, result.Results, 1)
	farm := result.Results[0].Record
	assert.True(t, result.Results[0].Created)
	assert.Equal(t, fileID, farm.FileID)
	assert.Equal(t, models.RiskLow, farm.RiskLevel())
	assert.Equal(t, models.GeometryPolygon, farm.PolygonType)
}

func TestIngest_ValidationErrorPersistsNothing(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	noCommodity := csvHeader[:8]
	req := models.IngestRequest{
		Format:   models.FormatCSV,
		Rows:     [][]string{noCommodity, {"Alice", "5", "Site A", "District A", "Village A", "-1.9", "30.1", "[]"}},
		FileName: "cooperative",
	}

	// Ожидания
	m.files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).Times(0)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Times(0)

	// Действие
	result, err := svc.Ingest(context.Background(), req)

	// Проверки
	require.Error(t, err)
	assert.Equal(t, models.BatchRolledBack, result.State)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs)
}

func TestIngest_LargeFarmWithoutPolygonRejected(t *testing.T) {
	svc, _ := newTestIngestionService(t)
	row := []string{"Alice", "5", "Site A", "District A", "Village A", "-1.9", "30.1", "[]", "Coffee"}

	result, err := svc.Ingest(context.Background(), csvRequest(row))

	require.Error(t, err)
	assert.Equal(t, models.BatchRolledBack, result.State)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "polygon", verrs[0].Field)
}

func TestIngest_ProviderFailureDeletesCreatedFile(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	fileID := uuid.New()
	providerErr := &analysis.ProviderError{Chunk: 2, StatusCode: 502, Err: analysis.ErrProviderUnavailable}

	// Ожидания
	expectNewFile(m, fileID)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return(nil, providerErr).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Times(0)
	m.files.EXPECT().DeleteFile(gomock.Any(), fileID).Return(nil).Times(1)

	// Действие
	result, err := svc.Ingest(context.Background(), csvRequest(aliceRow()))

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrProviderUnavailable)
	assert.Equal(t, models.BatchRolledBack, result.State)
	assert.Empty(t, result.Results)
}

func TestIngest_ProviderFailureKeepsExistingFile(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	existing := &models.UploadedFile{ID: uuid.New(), FileName: "cooperative.csv"}

	// Ожидания
	m.files.EXPECT().FindFileByName(gomock.Any(), "cooperative.csv").Return(existing, nil).Times(1)
	m.files.EXPECT().CreateFile(gomock.Any(), gomock.Any()).Times(0)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, errors.New("redis down")).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return(nil, analysis.ErrProviderTimeout).Times(1)
	m.files.EXPECT().DeleteFile(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.Ingest(context.Background(), csvRequest(aliceRow()))

	// Проверки
	assert.ErrorIs(t, err, analysis.ErrProviderTimeout)
	assert.Equal(t, models.BatchRolledBack, result.State)
	assert.Equal(t, existing.ID, result.FileID)
}

func TestIngest_SecondUploadUpdatesExistingFarm(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	file := &models.UploadedFile{ID: uuid.New(), FileName: "cooperative.csv"}
	geoid := "geo-123"
	stored := &models.FarmRecord{
		ID:             uuid.New(),
		FileID:         file.ID,
		FarmerName:     "Alice",
		CollectionSite: "Site A",
		Latitude:       -1.9,
		Longitude:      30.05,
		Polygon:        [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}, {30.0, -1.9}}},
		Geoid:          &geoid,
		CreatedAt:      time.Now().Add(-time.Hour),
	}

	// Ожидания
	m.files.EXPECT().FindFileByName(gomock.Any(), "cooperative.csv").Return(file, nil).Times(1)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(&models.AnalysisSetting{ChunkSize: 500}, nil).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return(lowRisk(), nil).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.batch.EXPECT().FindCandidates(gomock.Any(), "Alice", "Site A").Return([]*models.FarmRecord{stored}, nil).Times(1)
	m.batch.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)
	m.batch.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, farm *models.FarmRecord) {
			assert.Equal(t, stored.ID, farm.ID)
			assert.Equal(t, stored.CreatedAt, farm.CreatedAt)
		}).Return(nil).Times(1)
	m.batch.EXPECT().Commit(gomock.Any()).Return(nil).Times(1)
	m.publisher.EXPECT().
		PublishCommit(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, event events.CommitEvent) {
			assert.Equal(t, []uuid.UUID{stored.ID}, event.Updated)
		}).Return(nil).Times(1)
	// Обновленный участок уже имеет geo-ID
	m.publisher.EXPECT().EnqueueGeoid(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.Ingest(context.Background(), csvRequest(aliceRow()))

	// Проверки
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Created)
	require.NotNil(t, result.Results[0].Record.Geoid)
	assert.Equal(t, geoid, *result.Results[0].Record.Geoid)
}

func TestIngest_PersistenceFailureRollsBack(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	fileID := uuid.New()
	bob := []string{"Bob", "1", "Site B", "District B", "Village B", "-1.5", "29.8", "", "Cocoa"}
	records := append(lowRisk(), models.AnalysisRecord{RiskPcrop: "high"})

	// Ожидания
	expectNewFile(m, fileID)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return(records, nil).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.batch.EXPECT().FindCandidates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	gomock.InOrder(
		m.batch.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		m.batch.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(fmt.Errorf("duplicate key")),
	)
	m.batch.EXPECT().Commit(gomock.Any()).Times(0)
	m.batch.EXPECT().Rollback(gomock.Any()).Return(nil).Times(1)
	m.publisher.EXPECT().PublishCommit(gomock.Any(), gomock.Any()).Times(0)
	m.files.EXPECT().DeleteFile(gomock.Any(), fileID).Return(nil).Times(1)

	// Действие
	result, err := svc.Ingest(context.Background(), csvRequest(aliceRow(), bob))

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPersistence)
	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	// номер записи в пакете считается с единицы
	assert.Equal(t, 2, perr.Index)
	assert.Contains(t, perr.Error(), "Record 2: ")
	assert.Equal(t, models.BatchRolledBack, result.State)
}

func TestIngest_CallerCancellationDoesNotAbortBatch(t *testing.T) {
	// Подготовка
	_, m := newTestIngestionService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fileID := uuid.New()

	var calls int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// клиент отключается, пока первый чанк у провайдера
			cancel()
		}
		var body struct {
			Features []json.RawMessage `json:"features"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data := make([]map[string]any, len(body.Features))
		for i := range data {
			data[i] = map[string]any{"risk_pcrop": "low"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	defer provider.Close()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{AnalysisURL: provider.URL, AnalysisTimeout: 5 * time.Second, AnalysisChunkSize: 500}
	svc := service.NewIngestionService(m.files, m.farms, m.settings, analysis.NewClient(cfg, logger, nil), m.publisher, logger, cfg, nil)

	rows := make([][]string, 0, 4)
	for _, name := range []string{"Alice", "Bob", "Carol", "Dan"} {
		rows = append(rows, []string{name, "1", "Site A", "District A", "Village A", "-1.9", "30.1", "", "Coffee"})
	}

	// Ожидания
	expectNewFile(m, fileID)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(&models.AnalysisSetting{ChunkSize: 2}, nil).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	m.batch.EXPECT().FindCandidates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(4)
	m.batch.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	m.batch.EXPECT().
		Commit(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			assert.NoError(t, ctx.Err())
			return nil
		}).Times(1)
	m.batch.EXPECT().Rollback(gomock.Any()).Times(0)
	m.publisher.EXPECT().PublishCommit(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.files.EXPECT().DeleteFile(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.Ingest(ctx, csvRequest(rows...))

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.BatchCommitted, result.State)
	assert.Len(t, result.Results, 4)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.Error(t, ctx.Err())
}

func TestIngest_InvalidRecordAbortsBeforeTransaction(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	fileID := uuid.New()
	data, err := json.Marshal(map[string]any{
		"type": "FeatureCollection",
		"features": []any{map[string]any{
			"type": "Feature",
			"properties": map[string]any{
				"farmer_name": "Alice", "collection_site": "Site A", "farm_village": "V", "farm_district": "D",
				"farm_size": 1.0, "latitude": 120.0, "longitude": 30.0, "commodity": "Coffee",
			},
			"geometry": map[string]any{"type": "Point", "coordinates": []float64{30.0, 120.0}},
		}},
	})
	require.NoError(t, err)

	// Ожидания
	m.files.EXPECT().FindFileByName(gomock.Any(), "plots.geojson").Return(nil, service.ErrNotFound).Times(1)
	m.files.EXPECT().
		CreateFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, f *models.UploadedFile) error {
			f.ID = fileID
			return nil
		}).Times(1)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return([]models.AnalysisRecord{{}}, nil).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Times(0)
	m.files.EXPECT().DeleteFile(gomock.Any(), fileID).Return(nil).Times(1)

	// Действие
	result, err := svc.Ingest(context.Background(), models.IngestRequest{
		Format:   models.FormatGeoJSON,
		GeoJSON:  data,
		FileName: "plots",
	})

	// Проверки
	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "lte", perr.Fields["Latitude"])
	assert.Equal(t, models.BatchRolledBack, result.State)
}

func syncRecord(deviceID, remoteID string) models.SyncRecord {
	return models.SyncRecord{
		DeviceID:       deviceID,
		RemoteID:       remoteID,
		FarmerName:     "Alice",
		FarmSize:       2,
		CollectionSite: "Site A",
		FarmVillage:    "Village A",
		FarmDistrict:   "District A",
		Latitude:       -1.9,
		Longitude:      30.1,
	}
}

func TestSync_UpsertsByRemoteID(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	deviceFile := &models.UploadedFile{ID: uuid.New(), FileName: "Site A_device-1.json"}
	stored := &models.FarmRecord{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)}

	// Ожидания
	m.files.EXPECT().FindFileByDevice(gomock.Any(), "device-1").Return(deviceFile, nil).Times(1)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)
	m.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), 500).
		DoAndReturn(func(ctx context.Context, fc models.FeatureCollection, chunkSize int) ([]models.AnalysisRecord, error) {
			assert.True(t, fc.GenerateGeoids)
			return []models.AnalysisRecord{{}, {}}, nil
		}).Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), "remote:r-1").Return(nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), "remote:r-2").Return(nil).Times(1)
	m.batch.EXPECT().FindByRemoteID(gomock.Any(), "r-1").Return(stored, nil).Times(1)
	m.batch.EXPECT().FindByRemoteID(gomock.Any(), "r-2").Return(nil, service.ErrNotFound).Times(1)
	m.batch.EXPECT().FindCandidates(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.batch.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	expectInsert(m)
	m.batch.EXPECT().Commit(gomock.Any()).Return(nil).Times(1)
	m.publisher.EXPECT().PublishCommit(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	// Точечные участки не регистрируются в реестре geo-ID
	m.publisher.EXPECT().EnqueueGeoid(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.Sync(context.Background(), models.SyncRequest{
		Records: []models.SyncRecord{syncRecord("device-1", "r-1"), syncRecord("device-1", "r-2")},
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.BatchCommitted, result.State)
	require.Len(t, result.Results, 2)
	assert.False(t, result.Results[0].Created)
	assert.True(t, result.Results[1].Created)
	assert.Equal(t, "Coffee", result.Results[1].Record.Commodity)
	assert.Equal(t, deviceFile.ID, result.Results[1].Record.FileID)
}

func TestSync_RejectsMixedDevices(t *testing.T) {
	svc, m := newTestIngestionService(t)
	m.files.EXPECT().FindFileByDevice(gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.Sync(context.Background(), models.SyncRequest{
		Records: []models.SyncRecord{syncRecord("device-1", "r-1"), syncRecord("device-2", "r-2")},
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 2, verrs[0].Index)
	assert.Equal(t, models.BatchRolledBack, result.State)
}

func TestReanalyze_UpdatesAnalysisOnly(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	file := &models.UploadedFile{ID: uuid.New()}
	farm := &models.FarmRecord{
		ID:             uuid.New(),
		FileID:         file.ID,
		FarmerName:     "Alice",
		FarmSize:       5,
		CollectionSite: "Site A",
		FarmVillage:    "Village A",
		FarmDistrict:   "District A",
		Commodity:      "Rubber",
		Latitude:       -1.9,
		Longitude:      30.05,
		Polygon:        [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}, {30.0, -1.9}}},
		PolygonType:    models.GeometryMultiPolygon,
	}

	// Ожидания
	m.files.EXPECT().GetFile(gomock.Any(), file.ID).Return(file, nil).Times(1)
	m.farms.EXPECT().ListByFile(gomock.Any(), file.ID).Return([]*models.FarmRecord{farm}, nil).Times(1)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(&models.AnalysisSetting{ChunkSize: 100}, nil).Times(1)
	m.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), 100).
		Return([]models.AnalysisRecord{{RiskAcrop: "high", RiskPcrop: "low"}}, nil).
		Times(1)
	m.farms.EXPECT().BeginBatch(gomock.Any()).Return(m.batch, nil).Times(1)
	m.batch.EXPECT().LockIdentity(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.batch.EXPECT().FindByID(gomock.Any(), farm.ID).Return(farm, nil).Times(1)
	m.batch.EXPECT().Update(gomock.Any(), farm).Return(nil).Times(1)
	m.batch.EXPECT().Commit(gomock.Any()).Return(nil).Times(1)
	m.publisher.EXPECT().PublishCommit(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	result, err := svc.Reanalyze(context.Background(), file.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.BatchCommitted, result.State)
	assert.Equal(t, models.RiskHigh, farm.RiskLevel())
	assert.Equal(t, models.GeometryMultiPolygon, farm.PolygonType)
}

func TestReanalyze_FailureKeepsFile(t *testing.T) {
	svc, m := newTestIngestionService(t)
	file := &models.UploadedFile{ID: uuid.New()}

	m.files.EXPECT().GetFile(gomock.Any(), file.ID).Return(file, nil).Times(1)
	m.farms.EXPECT().ListByFile(gomock.Any(), file.ID).Return(nil, nil).Times(1)
	m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), 500).Return(nil, analysis.ErrNoFeatures).Times(1)
	m.files.EXPECT().DeleteFile(gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.Reanalyze(context.Background(), file.ID)

	assert.ErrorIs(t, err, analysis.ErrNoFeatures)
	assert.Equal(t, models.BatchRolledBack, result.State)
}
