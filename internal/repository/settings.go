package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
)

const settingsCacheKey = "settings:analysis"

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetAnalysisSetting читает единственную строку настроек анализа
func (r *SettingsRepository) GetAnalysisSetting(ctx context.Context) (*models.AnalysisSetting, error) {
	setting := &models.AnalysisSetting{}
	query := `SELECT chunk_size, updated_at FROM analysis_settings WHERE id = 1;`
	if err := r.db.QueryRow(ctx, query).Scan(&setting.ChunkSize, &setting.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("analysis settings: %w", service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis settings: %w", err)
	}
	return setting, nil
}

// SaveAnalysisSetting создает или обновляет строку настроек
func (r *SettingsRepository) SaveAnalysisSetting(ctx context.Context, setting *models.AnalysisSetting) error {
	query := `
		INSERT INTO analysis_settings (id, chunk_size, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET chunk_size = EXCLUDED.chunk_size, updated_at = NOW()
		RETURNING updated_at;
	`
	if err := r.db.QueryRow(ctx, query, setting.ChunkSize).Scan(&setting.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save analysis settings: %w", err)
	}
	return nil
}

// CachedSettingsRepository кэширует настройки в Redis, чтобы не читать бд на каждый пакет
type CachedSettingsRepository struct {
	next        service.SettingsRepository
	redisClient *redis.Client
	ttl         time.Duration
}

func NewCachedSettingsRepository(next service.SettingsRepository, redisClient *redis.Client, ttl time.Duration) service.SettingsRepository {
	return &CachedSettingsRepository{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (r *CachedSettingsRepository) GetAnalysisSetting(ctx context.Context) (*models.AnalysisSetting, error) {
	val, err := r.redisClient.Get(ctx, settingsCacheKey).Bytes()
	if err == nil {
		setting := &models.AnalysisSetting{}
		if err := json.Unmarshal(val, setting); err == nil {
			return setting, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis недоступен: читаем напрямую из бд
		return r.next.GetAnalysisSetting(ctx)
	}

	setting, err := r.next.GetAnalysisSetting(ctx)
	if err != nil {
		return nil, err
	}
	if val, err := json.Marshal(setting); err == nil {
		r.redisClient.Set(ctx, settingsCacheKey, val, r.ttl)
	}
	return setting, nil
}

// SaveAnalysisSetting сохраняет настройку и сбрасывает кэш
func (r *CachedSettingsRepository) SaveAnalysisSetting(ctx context.Context, setting *models.AnalysisSetting) error {
	if err := r.next.SaveAnalysisSetting(ctx, setting); err != nil {
		return err
	}
	if err := r.redisClient.Del(ctx, settingsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analysis settings cache: %w", err)
	}
	return nil
}
