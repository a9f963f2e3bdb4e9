package geoid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/geoid"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var square = [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}, {30.0, -1.9}}}

// registry - заглушка реестра; statuses задают ответы по порядку, последний повторяется
func registry(t *testing.T, calls *int32, statuses ...int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(calls, 1)) - 1
		status := statuses[min(n, len(statuses)-1)]

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		polygon, err := wkt.UnmarshalPolygon(body["wkt"])
		require.NoError(t, err)
		assert.Equal(t, orb.Polygon{{{30, -1.9}, {30.1, -1.9}, {30.1, -2}, {30, -1.9}}}, polygon)

		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"Geo Id": "geo-123"}`))
		}
	}))
}

func newTestWorker(t *testing.T, url string) (*geoid.Worker, *mocks.MockFarmRepository) {
	ctrl := gomock.NewController(t)
	farms := mocks.NewMockFarmRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		GeoidRegistryURL: url,
		GeoidTimeout:     time.Second,
		GeoidMaxRetries:  3,
		GeoidBaseDelay:   time.Millisecond,
	}
	return geoid.NewWorker(nil, farms, logger, cfg, nil), farms
}

func TestRegister_StoresGeoid(t *testing.T) {
	// Подготовка
	var calls int32
	srv := registry(t, &calls, http.StatusOK)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	farmID := uuid.New()

	// Ожидания
	farms.EXPECT().SetGeoid(gomock.Any(), farmID, "geo-123").Return(nil).Times(1)

	// Действие
	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: farmID, Polygon: square})

	// Проверки
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRegister_RetriesServerErrors(t *testing.T) {
	// Подготовка
	var calls int32
	srv := registry(t, &calls, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusOK)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)

	// Ожидания
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), "geo-123").Return(nil).Times(1)

	// Действие
	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: square})

	// Проверки
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestRegister_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := registry(t, &calls, http.StatusInternalServerError)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: square})

	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestRegister_RejectedIsNotRetried(t *testing.T) {
	var calls int32
	srv := registry(t, &calls, http.StatusBadRequest)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: square})

	assert.ErrorIs(t, err, geoid.ErrRejected)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRegister_MissingGeoid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matched geo ids": []}`))
	}))
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: square})

	assert.ErrorIs(t, err, geoid.ErrNoGeoid)
}

func TestRegister_SkipsWithoutRegistryURL(t *testing.T) {
	worker, farms := newTestWorker(t, "")
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: square})

	assert.NoError(t, err)
}

func TestRegister_OpenRingIsClosed(t *testing.T) {
	// Подготовка
	var calls int32
	srv := registry(t, &calls, http.StatusOK)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	open := [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}}}

	// Ожидания
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), "geo-123").Return(nil).Times(1)

	// Действие
	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: open})

	// Проверки
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRegister_MalformedPolygonSkipsRegistry(t *testing.T) {
	// Подготовка
	var calls int32
	srv := registry(t, &calls, http.StatusOK)
	defer srv.Close()
	worker, farms := newTestWorker(t, srv.URL)
	short := [][][]float64{{{1, 2}, {3}, {5, 6}, {1, 2}}}

	// Ожидания
	farms.EXPECT().SetGeoid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := worker.Register(context.Background(), events.GeoidRequest{FarmID: uuid.New(), Polygon: short})

	// Проверки
	assert.ErrorIs(t, err, geometry.ErrMalformedGeometry)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}
