package tilecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Levels - уровни риска, для которых строятся слои карты
var Levels = []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskMoreInfoNeeded}

// GenerationKey - счетчик поколений слоев; каждая фиксация пакета увеличивает его
const GenerationKey = "risk_layer:gen"

// Key возвращает ключ Redis для слоя уровня риска в заданном поколении
func Key(gen int64, level models.RiskLevel) string {
	return fmt.Sprintf("risk_layer:%d:%s", gen, level)
}

// Cache - кэш слоев риска в Redis. Слой строится лениво при первом запросе.
// Фиксация пакета начинает новое поколение, поэтому слой, собранный до нее,
// попадает под ключ старого поколения и больше не читается.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCache(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// Generation возвращает текущее поколение; 0, пока не было ни одной фиксации
func (c *Cache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.redisClient.Get(ctx, GenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get risk layer generation: %w", err)
	}
	return gen, nil
}

// GetLayer читает слой текущего поколения. Промах - (nil, gen, nil);
// gen передается в SetLayer после построения слоя.
func (c *Cache) GetLayer(ctx context.Context, level models.RiskLevel) (*models.FeatureCollection, int64, error) {
	gen, err := c.Generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	val, err := c.redisClient.Get(ctx, Key(gen, level)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, fmt.Errorf("failed to get risk layer from cache: %w", err)
	}

	layer := &models.FeatureCollection{}
	if err := json.Unmarshal(val, layer); err != nil {
		return nil, gen, fmt.Errorf("failed to unmarshal risk layer from cache: %w", err)
	}
	return layer, gen, nil
}

// SetLayer сохраняет слой под поколением, прочитанным до запроса к базе
func (c *Cache) SetLayer(ctx context.Context, level models.RiskLevel, gen int64, layer *models.FeatureCollection) error {
	val, err := json.Marshal(layer)
	if err != nil {
		return fmt.Errorf("failed to marshal risk layer for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, Key(gen, level), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set risk layer in cache: %w", err)
	}
	return nil
}

// Invalidate начинает новое поколение; слои старых поколений истекают по TTL
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.redisClient.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate risk layer cache: %w", err)
	}
	return nil
}

// Listen подписывается на события фиксации и сбрасывает слои после каждого пакета
func (c *Cache) Listen(ctx context.Context) {
	c.logger.Info("Starting risk layer invalidation listener...")
	pubsub := c.redisClient.Subscribe(ctx, events.CommitChannel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Stopping risk layer invalidation listener.")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event events.CommitEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					c.logger.WithError(err).Error("Failed to unmarshal commit event")
					continue
				}
				if err := c.Invalidate(ctx); err != nil {
					c.logger.WithError(err).Error("Failed to invalidate risk layers")
					continue
				}
				c.logger.WithFields(logrus.Fields{
					"file_id": event.FileID,
					"created": len(event.Created),
					"updated": len(event.Updated),
				}).Debug("Risk layers invalidated")
			}
		}
	}()
}
