package geoid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/events"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/metrics"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoGeoid - реестр ответил без поля "Geo Id"
	ErrNoGeoid = errors.New("registry response has no geo id")
	// ErrRejected - реестр отклонил контур (4xx), повтор не поможет
	ErrRejected = errors.New("registry rejected boundary")
)

// FarmUpdater сохраняет выданный geo-ID
type FarmUpdater interface {
	SetGeoid(ctx context.Context, id uuid.UUID, geoid string) error
}

type registerRequest struct {
	WKT string `json:"wkt"`
}

type registerResponse struct {
	GeoID string `json:"Geo Id"`
}

// Worker - обработчик очереди регистрации контуров участков в реестре geo-ID
type Worker struct {
	redisClient *redis.Client
	farms       FarmUpdater
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	metrics     *metrics.Metrics
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, farms FarmUpdater, logger *logrus.Logger, cfg *config.Config, m *metrics.Metrics) *Worker {
	return &Worker{
		redisClient: redisClient,
		farms:       farms,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.GeoidTimeout,
		},
		metrics: m,
	}
}

// Start запускает горутину для обработки очереди регистрации
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting geoid worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping geoid worker.")
				return
			default:
				// BRPOP забирает задание из правой части списка, 0 - бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, events.GeoidQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop geoid request from Redis")
					sleep(ctx, w.cfg.GeoidBaseDelay)
					continue
				}

				// result[0] - ключ, result[1] - значение
				var req events.GeoidRequest
				if err := json.Unmarshal([]byte(result[1]), &req); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal geoid request from Redis")
					continue
				}

				if err := w.Register(ctx, req); err != nil {
					w.logger.WithError(err).WithField("farm_id", req.FarmID).Error("Geoid registration failed")
				}
			}
		}
	}()
}

// Register регистрирует контур участка и сохраняет geo-ID.
// Сетевые ошибки и ответы 5xx повторяются с экспоненциальной задержкой.
func (w *Worker) Register(ctx context.Context, req events.GeoidRequest) error {
	log := w.logger.WithField("farm_id", req.FarmID)

	if w.cfg.GeoidRegistryURL == "" {
		log.Warn("Geoid registry URL is not configured. Skipping registration.")
		return nil
	}
	if len(req.Polygon) == 0 {
		return fmt.Errorf("farm %s has no polygon", req.FarmID)
	}

	polygon, err := geometry.PolygonWKT(req.Polygon)
	if err != nil {
		// ошибка кодирования окончательна, реестр не вызывается
		w.metrics.GeoidRegistered(false)
		return fmt.Errorf("farm %s: %w", req.FarmID, err)
	}

	payload, err := json.Marshal(registerRequest{WKT: polygon})
	if err != nil {
		return fmt.Errorf("failed to marshal geoid registration: %w", err)
	}

	maxRetries := max(w.cfg.GeoidMaxRetries, 1)
	delay := w.cfg.GeoidBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		geoid, err := w.post(ctx, payload)
		if err == nil {
			w.metrics.GeoidRegistered(true)
			if err := w.farms.SetGeoid(ctx, req.FarmID, geoid); err != nil {
				return fmt.Errorf("failed to store geoid: %w", err)
			}
			log.WithField("geoid", geoid).Info("Geoid registered successfully.")
			return nil
		}

		w.metrics.GeoidRegistered(false)
		lastErr = err
		if errors.Is(err, ErrRejected) || errors.Is(err, ErrNoGeoid) {
			break
		}
		if i < maxRetries-1 {
			log.WithError(err).Warnf("Geoid registration failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2 // Экспоненциальная задержка
		}
	}
	return fmt.Errorf("geoid registration for farm %s: %w", req.FarmID, lastErr)
}

func (w *Worker) post(ctx context.Context, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.GeoidRegistryURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("registry returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var body registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode registry response: %w", err)
	}
	if body.GeoID == "" {
		return "", ErrNoGeoid
	}
	return body.GeoID, nil
}

// sleep ждет d или отмены контекста; false означает отмену
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
