package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/shenikar/eudr_ingestion_system/internal/service/mocks"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type farmMocks struct {
	files    *mocks.MockFileRepository
	farms    *mocks.MockFarmRepository
	settings *mocks.MockSettingsRepository
	layers   *mocks.MockRiskLayerCache
}

func newTestFarmService(t *testing.T) (service.FarmService, *farmMocks) {
	ctrl := gomock.NewController(t)
	m := &farmMocks{
		files:    mocks.NewMockFileRepository(ctrl),
		farms:    mocks.NewMockFarmRepository(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
		layers:   mocks.NewMockRiskLayerCache(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return service.NewFarmService(m.files, m.farms, m.settings, m.layers, logger, 500), m
}

func storedFarms(fileID uuid.UUID) []*models.FarmRecord {
	high := models.RiskHigh
	remote := "r-1"
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []*models.FarmRecord{
		{
			ID:             uuid.New(),
			FileID:         fileID,
			FarmerName:     "Alice",
			FarmSize:       5,
			CollectionSite: "Site A",
			FarmVillage:    "Village A",
			FarmDistrict:   "District A",
			Commodity:      "Coffee",
			Latitude:       -1.9,
			Longitude:      30.05,
			Polygon:        ring,
			PolygonType:    models.GeometryPolygon,
			Analysis:       &models.AnalysisResult{EUDRRiskLevel: &high},
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		{
			ID:             uuid.New(),
			FileID:         fileID,
			RemoteID:       &remote,
			FarmerName:     "Bob",
			FarmSize:       1.5,
			CollectionSite: "Site B",
			FarmVillage:    "Village B",
			FarmDistrict:   "District B",
			Commodity:      "Cocoa",
			Latitude:       -1.5,
			Longitude:      29.8,
			Polygon:        [][][]float64{},
			PolygonType:    models.GeometryPoint,
			Accuracies:     []float64{3.5, 4},
			CreatedAt:      created,
			UpdatedAt:      created,
		},
	}
}

func TestFarmService_ExportCSVIsReuploadable(t *testing.T) {
	// Подготовка
	svc, m := newTestFarmService(t)
	fileID := uuid.New()
	var buf bytes.Buffer

	// Ожидания
	m.files.EXPECT().GetFile(gomock.Any(), fileID).Return(&models.UploadedFile{ID: fileID}, nil).Times(1)
	m.farms.EXPECT().ListByFile(gomock.Any(), fileID).Return(storedFarms(fileID), nil).Times(1)

	// Действие
	err := svc.Export(context.Background(), fileID, models.FormatCSV, &buf)

	// Проверки
	require.NoError(t, err)
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "[[[30,-1.9],[30.1,-1.9],[30.1,-2],[30,-1.9]]]", rows[1][7])
	assert.Equal(t, "[]", rows[2][7])
	assert.Empty(t, validation.ValidateCSV(rows))
}

func TestFarmService_ExportGeoJSON(t *testing.T) {
	// Подготовка
	svc, m := newTestFarmService(t)
	fileID := uuid.New()
	farms := storedFarms(fileID)
	var buf bytes.Buffer

	// Ожидания
	m.files.EXPECT().GetFile(gomock.Any(), fileID).Return(&models.UploadedFile{ID: fileID}, nil).Times(1)
	m.farms.EXPECT().ListByFile(gomock.Any(), fileID).Return(farms, nil).Times(1)

	// Действие
	err := svc.Export(context.Background(), fileID, models.FormatGeoJSON, &buf)

	// Проверки
	require.NoError(t, err)
	var doc struct {
		Features []struct {
			Geometry   models.Geometry `json:"geometry"`
			Properties struct {
				ID       uuid.UUID              `json:"id"`
				Farmer   string                 `json:"farmer_name"`
				Analysis *models.AnalysisResult `json:"analysis"`
			} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Features, 2)
	assert.Equal(t, farms[0].ID, doc.Features[0].Properties.ID)
	assert.Equal(t, models.GeometryPolygon, doc.Features[0].Geometry.Type)
	require.NotNil(t, doc.Features[0].Properties.Analysis)
	assert.Equal(t, models.RiskHigh, *doc.Features[0].Properties.Analysis.EUDRRiskLevel)
	assert.Equal(t, models.GeometryPoint, doc.Features[1].Geometry.Type)
	assert.Equal(t, []float64{29.8, -1.5}, doc.Features[1].Geometry.Point)
	assert.Empty(t, validation.ValidateGeoJSON(buf.Bytes()))
}

func TestFarmService_ExportUnknownFile(t *testing.T) {
	svc, m := newTestFarmService(t)
	fileID := uuid.New()

	m.files.EXPECT().GetFile(gomock.Any(), fileID).Return(nil, service.ErrNotFound).Times(1)
	m.farms.EXPECT().ListByFile(gomock.Any(), gomock.Any()).Times(0)

	err := svc.Export(context.Background(), fileID, models.FormatCSV, &bytes.Buffer{})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestFarmService_Templates(t *testing.T) {
	svc, _ := newTestFarmService(t)

	var csvBuf bytes.Buffer
	require.NoError(t, svc.Template(models.FormatCSV, &csvBuf))
	rows, err := csv.NewReader(&csvBuf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Subset(t, rows[0], validation.RequiredFields)

	var geoBuf bytes.Buffer
	require.NoError(t, svc.Template(models.FormatGeoJSON, &geoBuf))
	assert.Empty(t, validation.ValidateGeoJSON(geoBuf.Bytes()))

	err = svc.Template("xlsx", &bytes.Buffer{})
	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
}

func TestFarmService_RiskLayerCacheHit(t *testing.T) {
	// Подготовка
	svc, m := newTestFarmService(t)
	cached := models.NewFeatureCollection(false)

	// Ожидания
	m.layers.EXPECT().GetLayer(gomock.Any(), models.RiskHigh).Return(&cached, int64(3), nil).Times(1)
	m.layers.EXPECT().SetLayer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.farms.EXPECT().ListByRiskLevel(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	layer, err := svc.RiskLayer(context.Background(), models.RiskHigh)

	// Проверки
	require.NoError(t, err)
	assert.Same(t, &cached, layer)
}

func TestFarmService_RiskLayerCacheMiss(t *testing.T) {
	// Подготовка
	svc, m := newTestFarmService(t)
	farms := storedFarms(uuid.New())[:1]

	// Ожидания
	m.layers.EXPECT().GetLayer(gomock.Any(), models.RiskHigh).Return(nil, int64(7), nil).Times(1)
	m.farms.EXPECT().ListByRiskLevel(gomock.Any(), models.RiskHigh).Return(farms, nil).Times(1)
	// слой сохраняется в поколении, прочитанном до запроса к базе
	m.layers.EXPECT().
		SetLayer(gomock.Any(), models.RiskHigh, int64(7), gomock.Any()).
		Do(func(ctx context.Context, level models.RiskLevel, gen int64, layer *models.FeatureCollection) {
			assert.Len(t, layer.Features, 1)
		}).Return(nil).Times(1)

	// Действие
	layer, err := svc.RiskLayer(context.Background(), models.RiskHigh)

	// Проверки
	require.NoError(t, err)
	require.Len(t, layer.Features, 1)
	assert.Equal(t, "Alice", layer.Features[0].Properties.FarmerName)
}

func TestFarmService_RiskLayerCacheDown(t *testing.T) {
	// Подготовка
	svc, m := newTestFarmService(t)
	farms := storedFarms(uuid.New())[:1]

	// Ожидания
	m.layers.EXPECT().GetLayer(gomock.Any(), models.RiskHigh).Return(nil, int64(0), errors.New("redis down")).Times(1)
	m.farms.EXPECT().ListByRiskLevel(gomock.Any(), models.RiskHigh).Return(farms, nil).Times(1)
	m.layers.EXPECT().SetLayer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	layer, err := svc.RiskLayer(context.Background(), models.RiskHigh)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, layer.Features, 1)
}

func TestFarmService_RiskLayerInvalidLevel(t *testing.T) {
	svc, m := newTestFarmService(t)
	m.layers.EXPECT().GetLayer(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.RiskLayer(context.Background(), "extreme")

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "level", verrs[0].Field)
}

func TestFarmService_AnalysisSettings(t *testing.T) {
	t.Run("default when nothing stored", func(t *testing.T) {
		svc, m := newTestFarmService(t)
		m.settings.EXPECT().GetAnalysisSetting(gomock.Any()).Return(nil, service.ErrNotFound).Times(1)

		setting, err := svc.GetAnalysisSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 500, setting.ChunkSize)
	})

	t.Run("update saves valid size", func(t *testing.T) {
		svc, m := newTestFarmService(t)
		m.settings.EXPECT().
			SaveAnalysisSetting(gomock.Any(), gomock.Any()).
			Do(func(ctx context.Context, s *models.AnalysisSetting) {
				assert.Equal(t, 1000, s.ChunkSize)
			}).Return(nil).Times(1)

		setting, err := svc.UpdateAnalysisSettings(context.Background(), 1000)

		require.NoError(t, err)
		assert.Equal(t, 1000, setting.ChunkSize)
	})

	for _, size := range []int{0, -1, service.MaxChunkSize + 1} {
		svc, m := newTestFarmService(t)
		m.settings.EXPECT().SaveAnalysisSetting(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.UpdateAnalysisSettings(context.Background(), size)

		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs, "chunk size %d", size)
	}
}

func TestFarmService_ListFarmsNormalizesPage(t *testing.T) {
	svc, m := newTestFarmService(t)
	m.farms.EXPECT().ListFarms(gomock.Any(), 1, 20).Return(nil, nil).Times(1)

	_, err := svc.ListFarms(context.Background(), 0, 1000)

	require.NoError(t, err)
}
