package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

const (
	// CommitChannel - канал Pub/Sub с событиями фиксации пакетов
	CommitChannel = "farms:committed"
	// GeoidQueueKey - очередь участков, ожидающих регистрации geo-ID
	GeoidQueueKey = "geoid_registration"
)

// CommitEvent - пакет участков успешно зафиксирован в хранилище
type CommitEvent struct {
	FileID    uuid.UUID   `json:"file_id"`
	Created   []uuid.UUID `json:"created"`
	Updated   []uuid.UUID `json:"updated"`
	Timestamp time.Time   `json:"timestamp"`
}

// GeoidRequest - задание на регистрацию контура участка в реестре geo-ID
type GeoidRequest struct {
	FarmID  uuid.UUID     `json:"farm_id"`
	Polygon [][][]float64 `json:"polygon"`
}

// Publisher - интерфейс для публикации событий конвейера
type Publisher interface {
	PublishCommit(ctx context.Context, event CommitEvent) error
	EnqueueGeoid(ctx context.Context, req GeoidRequest) error
}

// RedisPublisher - реализация Publisher, использующая Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// PublishCommit рассылает событие фиксации подписчикам (кэш слоев риска)
func (p *RedisPublisher) PublishCommit(ctx context.Context, event CommitEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal commit event: %w", err)
	}
	if err := p.redisClient.Publish(ctx, CommitChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish commit event to Redis: %w", err)
	}
	return nil
}

// EnqueueGeoid ставит участок в очередь регистрации geo-ID
func (p *RedisPublisher) EnqueueGeoid(ctx context.Context, req GeoidRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal geoid request: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает через BRPOP
	if err := p.redisClient.LPush(ctx, GeoidQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue geoid request to Redis: %w", err)
	}
	return nil
}
