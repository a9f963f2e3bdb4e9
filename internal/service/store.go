package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/metrics"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/sirupsen/logrus"
)

// FarmStore сохраняет пакет участков в одной транзакции
type FarmStore struct {
	repo      FarmRepository
	publisher events.Publisher
	validate  *validator.Validate
	logger    *logrus.Logger
	metrics   *metrics.Metrics
}

func NewFarmStore(repo FarmRepository, publisher events.Publisher, logger *logrus.Logger, m *metrics.Metrics) *FarmStore {
	return &FarmStore{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
		metrics:   m,
	}
}

// Upsert сохраняет записи: обновляет совпавшие по ключу и вставляет новые.
// Любая ошибка откатывает весь пакет. После фиксации публикуется событие для инвалидации кэша.
func (s *FarmStore) Upsert(ctx context.Context, farms []*models.FarmRecord) ([]models.UpsertResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "farm_store",
		"method":  "Upsert",
		"records": len(farms),
	})

	for i, farm := range farms {
		if err := s.validate.Struct(farm); err != nil {
			log.WithError(err).WithField("record", i+1).Warn("Farm record failed validation")
			return nil, newPersistenceError(i+1, err)
		}
	}

	batch, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not begin farm batch: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := batch.Rollback(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Error("Failed to roll back farm batch")
		}
	}()

	results := make([]models.UpsertResult, len(farms))
	created, updated := 0, 0
	for i, farm := range farms {
		if err := batch.LockIdentity(ctx, IdentityKey(farm)); err != nil {
			return nil, newPersistenceError(i+1, err)
		}
		existing, err := s.resolve(ctx, batch, farm)
		if err != nil {
			return nil, newPersistenceError(i+1, err)
		}

		if existing != nil {
			farm.ID = existing.ID
			farm.CreatedAt = existing.CreatedAt
			if farm.Geoid == nil {
				farm.Geoid = existing.Geoid
			}
			if err := batch.Update(ctx, farm); err != nil {
				return nil, newPersistenceError(i+1, err)
			}
			updated++
		} else {
			if err := batch.Insert(ctx, farm); err != nil {
				return nil, newPersistenceError(i+1, err)
			}
			created++
		}
		results[i] = models.UpsertResult{Record: farm, Created: existing == nil}
	}

	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("service: could not commit farm batch: %w", err)
	}
	committed = true
	s.metrics.Upserted(created, updated)
	log.WithFields(logrus.Fields{"created": created, "updated": updated}).Info("Farm batch committed")

	s.publishCommit(ctx, log, results)
	return results, nil
}

// resolve ищет существующую запись: по ID (повторный анализ), по remote_id (синхронизация)
// или по нестрогому ключу (загрузка файла). nil означает вставку.
func (s *FarmStore) resolve(ctx context.Context, batch FarmBatch, farm *models.FarmRecord) (*models.FarmRecord, error) {
	if farm.ID != uuid.Nil {
		existing, err := batch.FindByID(ctx, farm.ID)
		if err != nil {
			return nil, fmt.Errorf("lookup farm %s: %w", farm.ID, err)
		}
		return existing, nil
	}

	if farm.RemoteID != nil && *farm.RemoteID != "" {
		existing, err := batch.FindByRemoteID(ctx, *farm.RemoteID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lookup remote_id %s: %w", *farm.RemoteID, err)
		}
		return existing, nil
	}

	candidates, err := batch.FindCandidates(ctx, farm.FarmerName, farm.CollectionSite)
	if err != nil {
		return nil, fmt.Errorf("lookup candidates: %w", err)
	}
	if ranked := RankCandidates(farm, candidates); len(ranked) > 0 {
		return ranked[0], nil
	}
	return nil, nil
}

func (s *FarmStore) publishCommit(ctx context.Context, log *logrus.Entry, results []models.UpsertResult) {
	if len(results) == 0 {
		return
	}
	event := events.CommitEvent{
		FileID:    results[0].Record.FileID,
		Created:   make([]uuid.UUID, 0),
		Updated:   make([]uuid.UUID, 0),
		Timestamp: time.Now().UTC(),
	}
	for _, r := range results {
		if r.Created {
			event.Created = append(event.Created, r.Record.ID)
		} else {
			event.Updated = append(event.Updated, r.Record.ID)
		}
	}
	// пакет уже зафиксирован, ошибка публикации не откатывает его
	if err := s.publisher.PublishCommit(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish commit event")
	}
}
