package tilecache_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/tilecache"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*tilecache.Cache, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return tilecache.NewCache(client, time.Hour, logger), srv
}

func layerOf(names ...string) *models.FeatureCollection {
	fc := models.NewFeatureCollection(false)
	for _, name := range names {
		fc.Features = append(fc.Features, models.Feature{
			Type:       "Feature",
			Geometry:   models.Geometry{Type: models.GeometryPoint, Point: []float64{30.1, -1.9}},
			Properties: models.Properties{FarmerName: name},
		})
	}
	return &fc
}

func TestKey(t *testing.T) {
	assert.Equal(t, "risk_layer:0:high", tilecache.Key(0, models.RiskHigh))
	assert.Equal(t, "risk_layer:12:more_info_needed", tilecache.Key(12, models.RiskMoreInfoNeeded))
	assert.Len(t, tilecache.Levels, 4)
}

func TestCache_MissThenHit(t *testing.T) {
	// Подготовка
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// Действие
	layer, gen, err := cache.GetLayer(ctx, models.RiskHigh)
	require.NoError(t, err)
	require.Nil(t, layer)
	require.NoError(t, cache.SetLayer(ctx, models.RiskHigh, gen, layerOf("Alice")))
	cached, _, err := cache.GetLayer(ctx, models.RiskHigh)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Len(t, cached.Features, 1)
	assert.Equal(t, "Alice", cached.Features[0].Properties.FarmerName)
}

func TestCache_InvalidateDropsAllLevels(t *testing.T) {
	// Подготовка
	cache, _ := newTestCache(t)
	ctx := context.Background()
	for _, level := range tilecache.Levels {
		require.NoError(t, cache.SetLayer(ctx, level, 0, layerOf("Alice")))
	}

	// Действие
	require.NoError(t, cache.Invalidate(ctx))

	// Проверки
	for _, level := range tilecache.Levels {
		layer, gen, err := cache.GetLayer(ctx, level)
		require.NoError(t, err)
		assert.Nil(t, layer, level)
		assert.EqualValues(t, 1, gen)
	}
}

func TestCache_LayerBuiltBeforeCommitIsNotServed(t *testing.T) {
	// Подготовка
	cache, srv := newTestCache(t)
	ctx := context.Background()

	// Ожидания
	// Запрос слоя: промах, поколение прочитано до запроса к базе
	_, gen, err := cache.GetLayer(ctx, models.RiskHigh)
	require.NoError(t, err)

	// Действие
	// Пока слой строится, фиксируется пакет, затем устаревший слой записывается
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.SetLayer(ctx, models.RiskHigh, gen, layerOf("stale")))

	// Проверки
	layer, current, err := cache.GetLayer(ctx, models.RiskHigh)
	require.NoError(t, err)
	assert.Nil(t, layer)
	assert.Equal(t, gen+1, current)
	// устаревший слой доживает только до TTL
	assert.True(t, srv.Exists(tilecache.Key(gen, models.RiskHigh)))
	assert.Equal(t, time.Hour, srv.TTL(tilecache.Key(gen, models.RiskHigh)))
}

func TestGetLayer_UnreachableRedisIsNotAMiss(t *testing.T) {
	// Подготовка
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	cache := tilecache.NewCache(client, time.Minute, logger)

	// Действие
	layer, _, err := cache.GetLayer(context.Background(), models.RiskHigh)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, layer)
}
